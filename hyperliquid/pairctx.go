// Copyright (c) 2025 BVK Chaitanya

package hyperliquid

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// PairContext holds the published price context of one spot pair.
type PairContext struct {
	Pair string

	// MidPx is nil when the book is empty.
	MidPx *decimal.Decimal

	MarkPx    decimal.Decimal
	PrevDayPx decimal.Decimal
	DayNtlVlm decimal.Decimal
}

// GetPairContext fetches the price context of the named spot pair.
// Asset contexts align with the metadata universe by position.
func (c *Client) GetPairContext(ctx context.Context, pair string) (*PairContext, error) {
	v, err := c.GetSpotMetaAndAssetCtxs(ctx)
	if err != nil {
		return nil, err
	}
	for i, p := range v.Meta.Universe {
		if p.Name != pair {
			continue
		}
		if i >= len(v.AssetCtxs) {
			return nil, fmt.Errorf("no asset context for pair %q at index %d", pair, i)
		}
		actx := v.AssetCtxs[i]
		return &PairContext{
			Pair:      pair,
			MidPx:     actx.MidPx,
			MarkPx:    actx.MarkPx,
			PrevDayPx: actx.PrevDayPx,
			DayNtlVlm: actx.DayNtlVlm,
		}, nil
	}
	return nil, fmt.Errorf("pair %q is not listed in spot metadata: %w", pair, os.ErrNotExist)
}
