// Copyright (c) 2025 BVK Chaitanya

package internal

import (
	"encoding/json"
)

// Action hashing for L1 actions is defined over the msgpack encoding of
// the action value, so field order in these structs must match the
// order the venue's reference client serializes them in. Keep the
// msgpack tags and field order unchanged.

type LimitOrderType struct {
	Tif string `json:"tif" msgpack:"tif"`
}

type OrderTypeWire struct {
	Limit *LimitOrderType `json:"limit,omitempty" msgpack:"limit,omitempty"`
}

type OrderWire struct {
	Asset      int64          `json:"a" msgpack:"a"`
	IsBuy      bool           `json:"b" msgpack:"b"`
	LimitPx    string         `json:"p" msgpack:"p"`
	Size       string         `json:"s" msgpack:"s"`
	ReduceOnly bool           `json:"r" msgpack:"r"`
	Type       *OrderTypeWire `json:"t" msgpack:"t"`
	Cloid      string         `json:"c,omitempty" msgpack:"c,omitempty"`
}

type OrderAction struct {
	Type     string       `json:"type" msgpack:"type"`
	Orders   []*OrderWire `json:"orders" msgpack:"orders"`
	Grouping string       `json:"grouping" msgpack:"grouping"`
}

// UsdClassTransferAction moves USDC between the spot and perpetuals
// ledgers. It is a user-signed action; the signature chain id is part
// of the signed payload.
type UsdClassTransferAction struct {
	Type             string `json:"type" msgpack:"type"`
	HyperliquidChain string `json:"hyperliquidChain" msgpack:"hyperliquidChain"`
	SignatureChainID string `json:"signatureChainId" msgpack:"signatureChainId"`
	Amount           string `json:"amount" msgpack:"amount"`
	ToPerp           bool   `json:"toPerp" msgpack:"toPerp"`
	Nonce            uint64 `json:"nonce" msgpack:"nonce"`
}

// WithdrawAction requests a withdrawal to an external address through
// the bridge. Also user-signed.
type WithdrawAction struct {
	Type             string `json:"type" msgpack:"type"`
	HyperliquidChain string `json:"hyperliquidChain" msgpack:"hyperliquidChain"`
	SignatureChainID string `json:"signatureChainId" msgpack:"signatureChainId"`
	Destination      string `json:"destination" msgpack:"destination"`
	Amount           string `json:"amount" msgpack:"amount"`
	Time             uint64 `json:"time" msgpack:"time"`
}

type Signature struct {
	R string `json:"r"`
	S string `json:"s"`
	V int    `json:"v"`
}

type ExchangeRequest struct {
	Action any `json:"action"`

	Nonce uint64 `json:"nonce"`

	Signature *Signature `json:"signature"`

	// VaultAddress stays null for direct account actions.
	VaultAddress *string `json:"vaultAddress"`
}

type ExchangeResponse struct {
	Status string `json:"status"`

	Response json.RawMessage `json:"response"`
}
