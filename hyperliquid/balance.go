// Copyright (c) 2025 BVK Chaitanya

package hyperliquid

import (
	"context"

	"github.com/shopspring/decimal"
)

// GetFreeBalance returns the spot ledger balance of the token that is
// not held by open orders, i.e. total minus hold. A token absent from
// the clearinghouse state has a free balance of exactly zero; that is
// not an error.
func (c *Client) GetFreeBalance(ctx context.Context, user, token string) (decimal.Decimal, error) {
	state, err := c.GetSpotClearinghouseState(ctx, user)
	if err != nil {
		return decimal.Zero, err
	}
	for _, b := range state.Balances {
		if b.Coin == token {
			return b.Total.Sub(b.Hold), nil
		}
	}
	return decimal.Zero, nil
}

// Balance is one spot ledger entry.
type Balance struct {
	Coin string

	Total decimal.Decimal
	Hold  decimal.Decimal
}

// Free returns the portion of the balance not reserved by open orders.
func (b *Balance) Free() decimal.Decimal {
	return b.Total.Sub(b.Hold)
}

func (c *Client) GetSpotBalances(ctx context.Context, user string) ([]*Balance, error) {
	state, err := c.GetSpotClearinghouseState(ctx, user)
	if err != nil {
		return nil, err
	}
	var balances []*Balance
	for _, b := range state.Balances {
		balances = append(balances, &Balance{
			Coin:  b.Coin,
			Total: b.Total,
			Hold:  b.Hold,
		})
	}
	return balances, nil
}
