// Copyright (c) 2025 BVK Chaitanya

// Package internal defines the wire types for the Hyperliquid info and
// exchange endpoints.
package internal

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// InfoRequest is the POST body for the /info endpoint. The Type field
// selects the query; User and Coin are set only for the queries that
// take them.
type InfoRequest struct {
	Type string `json:"type"`

	User string `json:"user,omitempty"`

	Coin string `json:"coin,omitempty"`
}

type SpotToken struct {
	Name string `json:"name"`

	// SzDecimals bounds order size precision; WeiDecimals is the
	// token's on-chain precision bounding transfer amounts.
	SzDecimals  int `json:"szDecimals"`
	WeiDecimals int `json:"weiDecimals"`

	Index       int    `json:"index"`
	TokenID     string `json:"tokenId"`
	IsCanonical bool   `json:"isCanonical"`
}

type SpotPair struct {
	Name string `json:"name"`

	// Tokens holds the [base, quote] token indexes.
	Tokens []int `json:"tokens"`

	Index       int  `json:"index"`
	IsCanonical bool `json:"isCanonical"`
}

type SpotMeta struct {
	Universe []*SpotPair  `json:"universe"`
	Tokens   []*SpotToken `json:"tokens"`
}

type SpotAssetCtx struct {
	Coin string `json:"coin"`

	// MidPx is null when the book is empty.
	MidPx *decimal.Decimal `json:"midPx"`

	MarkPx      decimal.Decimal `json:"markPx"`
	PrevDayPx   decimal.Decimal `json:"prevDayPx"`
	DayNtlVlm   decimal.Decimal `json:"dayNtlVlm"`
	CircSupply  decimal.Decimal `json:"circulatingSupply"`
	TotalSupply decimal.Decimal `json:"totalSupply"`
	DayBaseVlm  decimal.Decimal `json:"dayBaseVlm"`
}

// SpotMetaAndAssetCtxs decodes the two-element array response of the
// spotMetaAndAssetCtxs query.
type SpotMetaAndAssetCtxs struct {
	Meta *SpotMeta

	AssetCtxs []*SpotAssetCtx
}

func (v *SpotMetaAndAssetCtxs) UnmarshalJSON(data []byte) error {
	var parts [2]json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("could not split spotMetaAndAssetCtxs array: %w", err)
	}
	if err := json.Unmarshal(parts[0], &v.Meta); err != nil {
		return fmt.Errorf("could not unmarshal spot metadata element: %w", err)
	}
	if err := json.Unmarshal(parts[1], &v.AssetCtxs); err != nil {
		return fmt.Errorf("could not unmarshal asset contexts element: %w", err)
	}
	return nil
}

type SpotBalance struct {
	Coin string `json:"coin"`

	Token int `json:"token"`

	Total    decimal.Decimal `json:"total"`
	Hold     decimal.Decimal `json:"hold"`
	EntryNtl decimal.Decimal `json:"entryNtl"`
}

type SpotClearinghouseState struct {
	Balances []*SpotBalance `json:"balances"`
}

type BookLevel struct {
	Px decimal.Decimal `json:"px"`
	Sz decimal.Decimal `json:"sz"`
	N  int             `json:"n"`
}

// OrderBook is the l2Book response; Levels[0] holds bids and Levels[1]
// holds asks, best first.
type OrderBook struct {
	Coin string `json:"coin"`

	Time int64 `json:"time"`

	Levels [][]*BookLevel `json:"levels"`
}
