// Copyright (c) 2025 BVK Chaitanya

// Package hyperliquid implements a minimal Hyperliquid API client: the
// public info queries used for metadata, balances and order books, and
// the signed exchange actions used for orders, spot-to-perps transfers
// and withdrawals.
package hyperliquid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/bvk/hlmigrate/hyperliquid/internal"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// infoLimiter spaces out info requests across all clients in the
// process; the venue weighs info queries against a shared budget.
var infoLimiter = rate.NewLimiter(rate.Every(50*time.Millisecond), 1)

type Client struct {
	opts Options

	client http.Client
}

// New returns a new client instance.
func New(opts *Options) (*Client, error) {
	if opts == nil {
		opts = new(Options)
	}
	opts.setDefaults()
	if err := opts.Check(); err != nil {
		return nil, err
	}
	c := &Client{
		opts: *opts,
		client: http.Client{
			Timeout: opts.HttpClientTimeout,
		},
	}
	return c, nil
}

func (c *Client) infoURL() *url.URL {
	return &url.URL{
		Scheme: c.opts.RestURL.Scheme,
		Host:   c.opts.RestURL.Host,
		Path:   path.Join(c.opts.RestURL.Path, "/info"),
	}
}

func (c *Client) exchangeURL() *url.URL {
	return &url.URL{
		Scheme: c.opts.RestURL.Scheme,
		Host:   c.opts.RestURL.Host,
		Path:   path.Join(c.opts.RestURL.Path, "/exchange"),
	}
}

func (c *Client) GetSpotMeta(ctx context.Context) (*internal.SpotMeta, error) {
	addrURL := c.infoURL()
	req := &internal.InfoRequest{Type: "spotMeta"}
	resp := new(internal.SpotMeta)
	if err := httpPostJSON(ctx, c, addrURL, req, resp); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get spot metadata", "url", addrURL, "err", err)
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetSpotMetaAndAssetCtxs(ctx context.Context) (*internal.SpotMetaAndAssetCtxs, error) {
	addrURL := c.infoURL()
	req := &internal.InfoRequest{Type: "spotMetaAndAssetCtxs"}
	resp := new(internal.SpotMetaAndAssetCtxs)
	if err := httpPostJSON(ctx, c, addrURL, req, resp); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get spot metadata with asset contexts", "url", addrURL, "err", err)
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetSpotClearinghouseState(ctx context.Context, user string) (*internal.SpotClearinghouseState, error) {
	addrURL := c.infoURL()
	req := &internal.InfoRequest{Type: "spotClearinghouseState", User: user}
	resp := new(internal.SpotClearinghouseState)
	if err := httpPostJSON(ctx, c, addrURL, req, resp); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get spot clearinghouse state", "url", addrURL, "user", user, "err", err)
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetOrderBook(ctx context.Context, pair string) (*internal.OrderBook, error) {
	addrURL := c.infoURL()
	req := &internal.InfoRequest{Type: "l2Book", Coin: pair}
	resp := new(internal.OrderBook)
	if err := httpPostJSON(ctx, c, addrURL, req, resp); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get order book", "url", addrURL, "pair", pair, "err", err)
		}
		return nil, err
	}
	return resp, nil
}

// GetBestBidAsk returns the top-of-book prices for the pair.
func (c *Client) GetBestBidAsk(ctx context.Context, pair string) (bid, ask decimal.Decimal, err error) {
	book, err := c.GetOrderBook(ctx, pair)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if len(book.Levels) != 2 || len(book.Levels[0]) == 0 || len(book.Levels[1]) == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("order book for %q has no liquidity on one or both sides", pair)
	}
	return book.Levels[0][0].Px, book.Levels[1][0].Px, nil
}

func httpPostJSON[PT *T, T any](ctx context.Context, c *Client, addrURL *url.URL, request any, response PT) error {
	if err := infoLimiter.Wait(ctx); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(request); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addrURL.String(), &body)
	if err != nil {
		slog.Error("could not create http post request with context", "url", addrURL, "err", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	s := time.Now()
	resp, err := c.client.Do(req)
	if d := time.Now().Sub(s); d > c.opts.HttpClientTimeout {
		slog.Warn(fmt.Sprintf("post request took %s which is more than the http client timeout %s", d, c.opts.HttpClientTimeout))
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not perform http post request", "url", addrURL, "err", err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("http post returned unsuccessful status code", "status-code", resp.StatusCode)
		if body, err := io.ReadAll(resp.Body); err == nil {
			log.Printf("server response was %s", body)
		}
		return fmt.Errorf("http POST returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, response); err != nil {
		slog.Error("could not decode response to json", "response", string(data), "err", err)
		return err
	}
	return nil
}
