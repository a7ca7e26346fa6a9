// Copyright (c) 2025 BVK Chaitanya

package hyperliquid

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bvk/hlmigrate/hyperliquid/internal"
	"github.com/bvk/hlmigrate/quantize"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Spot order prices carry at most 8-szDecimals decimal places and 5
// significant figures.
const (
	spotPriceDecimals = 8
	priceSigFigs      = 5
)

// Exchange submits signed actions to the /exchange endpoint on behalf
// of one account.
type Exchange struct {
	client *Client

	meta *SpotMetadata

	key *ecdsa.PrivateKey

	prevNonce atomic.Int64
}

// NewExchange returns an exchange instance for the account holding the
// given secp256k1 secret key in hex form.
func NewExchange(client *Client, meta *SpotMetadata, secretKey string) (*Exchange, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(secretKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("could not parse secret key: %w", err)
	}
	e := &Exchange{
		client: client,
		meta:   meta,
		key:    key,
	}
	e.prevNonce.Store(time.Now().UnixMilli())
	return e, nil
}

// MarketSell submits an immediate-or-cancel sell on the named spot
// pair, priced slippageBps basis points below the current best bid so
// that it fills against resting liquidity and cancels any remainder.
// The venue's acknowledgement is returned verbatim.
func (e *Exchange) MarketSell(ctx context.Context, pair string, size decimal.Decimal, slippageBps int64) (json.RawMessage, error) {
	asset, err := e.meta.PairAssetID(pair)
	if err != nil {
		return nil, err
	}
	base, _, ok := strings.Cut(pair, "/")
	if !ok {
		base = pair
	}
	szDecimals, _, err := e.meta.TokenDecimals(base)
	if err != nil {
		return nil, err
	}

	bid, _, err := e.client.GetBestBidAsk(ctx, pair)
	if err != nil {
		return nil, err
	}
	px := slippagePrice(bid, slippageBps, szDecimals)
	if !px.IsPositive() {
		return nil, fmt.Errorf("slippage price %s derived from bid %s is not positive", px, bid)
	}

	nonce := e.nextNonce()
	action := &internal.OrderAction{
		Type: "order",
		Orders: []*internal.OrderWire{
			{
				Asset:   asset,
				IsBuy:   false,
				LimitPx: wireAmount(px),
				Size:    wireAmount(size),
				Type: &internal.OrderTypeWire{
					Limit: &internal.LimitOrderType{Tif: "Ioc"},
				},
				Cloid: newCloid(),
			},
		},
		Grouping: "na",
	}
	sig, err := signL1Action(e.key, action, uint64(nonce), e.client.opts.isTestnet())
	if err != nil {
		return nil, err
	}

	slog.Info("submitting ioc sell order", "pair", pair, "size", wireAmount(size), "price", wireAmount(px))
	return e.post(ctx, action, nonce, sig)
}

// TransferToPerps moves the given USDC amount from the spot ledger to
// the perpetuals ledger.
func (e *Exchange) TransferToPerps(ctx context.Context, amount decimal.Decimal) (json.RawMessage, error) {
	nonce := e.nextNonce()
	action := &internal.UsdClassTransferAction{
		Type:             "usdClassTransfer",
		HyperliquidChain: e.client.opts.hyperliquidChain(),
		SignatureChainID: e.client.opts.SignatureChainID,
		Amount:           wireAmount(amount),
		ToPerp:           true,
		Nonce:            uint64(nonce),
	}
	sig, err := signUsdClassTransfer(e.key, action)
	if err != nil {
		return nil, err
	}

	slog.Info("submitting spot to perps transfer", "amount", action.Amount)
	return e.post(ctx, action, nonce, sig)
}

// Withdraw requests a withdrawal of the given USDC amount through the
// bridge to an external address.
func (e *Exchange) Withdraw(ctx context.Context, amount decimal.Decimal, destination string) (json.RawMessage, error) {
	nonce := e.nextNonce()
	action := &internal.WithdrawAction{
		Type:             "withdraw3",
		HyperliquidChain: e.client.opts.hyperliquidChain(),
		SignatureChainID: e.client.opts.SignatureChainID,
		Destination:      destination,
		Amount:           wireAmount(amount),
		Time:             uint64(nonce),
	}
	sig, err := signWithdraw(e.key, action)
	if err != nil {
		return nil, err
	}

	slog.Info("submitting withdrawal", "amount", action.Amount, "destination", destination)
	return e.post(ctx, action, nonce, sig)
}

func (e *Exchange) post(ctx context.Context, action any, nonce int64, sig *internal.Signature) (json.RawMessage, error) {
	addrURL := e.client.exchangeURL()
	request := &internal.ExchangeRequest{
		Action:    action,
		Nonce:     uint64(nonce),
		Signature: sig,
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(request); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addrURL.String(), &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.client.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not perform exchange post request", "url", addrURL, "err", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		slog.Error("exchange post returned unsuccessful status code", "status-code", resp.StatusCode, "response", string(data))
		return nil, fmt.Errorf("http POST returned %d: %s", resp.StatusCode, data)
	}

	var ack internal.ExchangeResponse
	if err := json.Unmarshal(data, &ack); err != nil {
		slog.Error("could not decode exchange response", "response", string(data), "err", err)
		return nil, err
	}
	if ack.Status != "ok" {
		slog.Error("exchange rejected the action", "status", ack.Status, "response", string(data))
		return nil, fmt.Errorf("exchange returned status %q: %s", ack.Status, ack.Response)
	}
	return json.RawMessage(data), nil
}

// nextNonce returns strictly increasing unix millisecond timestamps.
func (e *Exchange) nextNonce() int64 {
	for {
		prev := e.prevNonce.Load()
		curr := time.Now().UnixMilli()
		if curr <= prev {
			curr = prev + 1
		}
		if e.prevNonce.CompareAndSwap(prev, curr) {
			return curr
		}
	}
}

func newCloid() string {
	id := uuid.New()
	return "0x" + hex.EncodeToString(id[:])
}

// slippagePrice derives the IOC sell limit price: the best bid reduced
// by the slippage tolerance, rounded to the venue's spot price
// precision of 5 significant figures and 8-szDecimals decimal places.
func slippagePrice(bid decimal.Decimal, slippageBps int64, szDecimals int) decimal.Decimal {
	px := bid.Mul(decimal.New(10000-slippageBps, -4))
	px = roundSigFigs(px, priceSigFigs)
	return quantize.Size(px, spotPriceDecimals-szDecimals)
}

func roundSigFigs(d decimal.Decimal, figs int32) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	places := figs - d.Exponent() - int32(d.NumDigits())
	return d.Round(places)
}

// wireAmount renders an amount the way the venue expects on the wire:
// a plain decimal string with trailing zeros removed.
func wireAmount(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}
