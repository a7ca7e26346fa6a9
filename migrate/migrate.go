// Copyright (c) 2025 BVK Chaitanya

// Package migrate sequences a spot-to-perps asset migration: sell the
// base token into the quote token on the spot book, wait for the venue
// ledger to settle, move the proceeds to the perpetuals ledger, and
// optionally withdraw to an external address. Each mode runs once and
// stops at the first failure; there is no rollback and re-running the
// same mode is the recovery path.
package migrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bvk/hlmigrate/quantize"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientBalance indicates a free balance of zero or less
	// at a step that needs funds.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAmountTooSmall indicates quantization reduced a requested
	// amount to zero.
	ErrAmountTooSmall = errors.New("amount is too small")
)

// Withdrawal precision is a protocol constant, independent of the
// token listing metadata.
const withdrawDecimals = 8

type BalanceReader interface {
	GetFreeBalance(ctx context.Context, user, token string) (decimal.Decimal, error)
}

type Gateway interface {
	MarketSell(ctx context.Context, pair string, size decimal.Decimal, slippageBps int64) (json.RawMessage, error)

	TransferToPerps(ctx context.Context, amount decimal.Decimal) (json.RawMessage, error)

	Withdraw(ctx context.Context, amount decimal.Decimal, destination string) (json.RawMessage, error)
}

type Config struct {
	// Address holds the account's EVM address for balance queries.
	Address string

	// Pair is the spot pair name, e.g. "PURR/USDC".
	Pair string

	// BaseToken and QuoteToken name the two legs of the pair.
	BaseToken  string
	QuoteToken string

	// BaseSizeDecimals bounds the sell order size precision;
	// QuoteWeiDecimals bounds the transfer amount precision.
	BaseSizeDecimals int
	QuoteWeiDecimals int

	// SlippageBps is the acceptable price cushion below the best bid
	// for the sell, in basis points.
	SlippageBps int64

	// SettleWait is the blocking pause between the sell submission and
	// the post-sell balance read. It must be long enough for the venue
	// ledger to reflect the fill.
	SettleWait time.Duration

	// SellSize, TransferAmount and WithdrawAmount are optional
	// explicit amounts. When nil, sell and transfer use everything
	// available; withdrawal has no such fallback.
	SellSize       *decimal.Decimal
	TransferAmount *decimal.Decimal
	WithdrawAmount *decimal.Decimal

	// WithdrawDestination is the external address for the Withdraw
	// mode.
	WithdrawDestination string
}

func (v *Config) setDefaults() {
	if v.SlippageBps == 0 {
		v.SlippageBps = 30
	}
	if v.SettleWait == 0 {
		v.SettleWait = 1200 * time.Millisecond
	}
}

func (v *Config) Check() error {
	if len(v.Address) == 0 {
		return fmt.Errorf("account address cannot be empty: %w", os.ErrInvalid)
	}
	if len(v.Pair) == 0 || len(v.BaseToken) == 0 || len(v.QuoteToken) == 0 {
		return fmt.Errorf("pair and token names cannot be empty: %w", os.ErrInvalid)
	}
	if v.BaseSizeDecimals < 0 || v.QuoteWeiDecimals < 0 {
		return fmt.Errorf("token decimals cannot be negative: %w", os.ErrInvalid)
	}
	if v.SlippageBps < 0 || v.SlippageBps >= 10000 {
		return fmt.Errorf("slippage %d bps is out of range: %w", v.SlippageBps, os.ErrInvalid)
	}
	if v.SellSize != nil && !v.SellSize.IsPositive() {
		return fmt.Errorf("explicit sell size must be positive: %w", os.ErrInvalid)
	}
	if v.TransferAmount != nil && !v.TransferAmount.IsPositive() {
		return fmt.Errorf("explicit transfer amount must be positive: %w", os.ErrInvalid)
	}
	if v.WithdrawAmount != nil && !v.WithdrawAmount.IsPositive() {
		return fmt.Errorf("explicit withdraw amount must be positive: %w", os.ErrInvalid)
	}
	return nil
}

// Result records what each executed step did, with the venue
// acknowledgements kept verbatim.
type Result struct {
	SoldSize     decimal.Decimal
	SellResponse json.RawMessage

	TransferredAmount decimal.Decimal
	TransferResponse  json.RawMessage

	WithdrawnAmount  decimal.Decimal
	WithdrawResponse json.RawMessage
}

type Migrator struct {
	cfg Config

	balances BalanceReader

	gateway Gateway
}

func New(cfg *Config, balances BalanceReader, gateway Gateway) (*Migrator, error) {
	c := *cfg
	c.setDefaults()
	if err := c.Check(); err != nil {
		return nil, err
	}
	m := &Migrator{
		cfg:      c,
		balances: balances,
		gateway:  gateway,
	}
	return m, nil
}

// SellAndTransfer sells the base token and moves the quote proceeds to
// the perpetuals ledger.
func (m *Migrator) SellAndTransfer(ctx context.Context) (*Result, error) {
	result := new(Result)
	if err := m.sell(ctx, result); err != nil {
		return result, err
	}

	slog.Info("waiting for the venue ledger to settle", "wait", m.cfg.SettleWait)
	if err := sleep(ctx, m.cfg.SettleWait); err != nil {
		return result, err
	}

	if err := m.transfer(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}

// TransferOnly moves the quote token from the spot ledger to the
// perpetuals ledger without selling anything.
func (m *Migrator) TransferOnly(ctx context.Context) (*Result, error) {
	result := new(Result)
	if err := m.transfer(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}

// Withdraw sends an explicit quote token amount to the configured
// external address. Both the amount and the destination are required;
// there is no use-all-available fallback for withdrawals.
func (m *Migrator) Withdraw(ctx context.Context) (*Result, error) {
	if len(m.cfg.WithdrawDestination) == 0 {
		return nil, fmt.Errorf("withdraw destination is required: %w", os.ErrInvalid)
	}
	if m.cfg.WithdrawAmount == nil {
		return nil, fmt.Errorf("withdraw amount is required: %w", os.ErrInvalid)
	}

	amount := quantize.Size(*m.cfg.WithdrawAmount, withdrawDecimals)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("withdraw amount %s quantizes to nothing: %w", m.cfg.WithdrawAmount, ErrAmountTooSmall)
	}

	result := new(Result)
	resp, err := m.gateway.Withdraw(ctx, amount, m.cfg.WithdrawDestination)
	if err != nil {
		return result, fmt.Errorf("could not withdraw %s %s: %w", amount, m.cfg.QuoteToken, err)
	}
	result.WithdrawnAmount = amount
	result.WithdrawResponse = resp
	return result, nil
}

func (m *Migrator) sell(ctx context.Context, result *Result) error {
	free, err := m.balances.GetFreeBalance(ctx, m.cfg.Address, m.cfg.BaseToken)
	if err != nil {
		return fmt.Errorf("could not read %s balance: %w", m.cfg.BaseToken, err)
	}
	if !free.IsPositive() {
		return fmt.Errorf("no free %s balance to sell: %w", m.cfg.BaseToken, ErrInsufficientBalance)
	}

	desired := free
	if m.cfg.SellSize != nil {
		desired = decimal.Min(*m.cfg.SellSize, free)
	}
	size := quantize.Size(desired, m.cfg.BaseSizeDecimals)
	if !size.IsPositive() {
		return fmt.Errorf("sell size %s quantizes to nothing: %w", desired, ErrAmountTooSmall)
	}

	resp, err := m.gateway.MarketSell(ctx, m.cfg.Pair, size, m.cfg.SlippageBps)
	if err != nil {
		return fmt.Errorf("could not sell %s %s: %w", size, m.cfg.BaseToken, err)
	}
	result.SoldSize = size
	result.SellResponse = resp
	return nil
}

func (m *Migrator) transfer(ctx context.Context, result *Result) error {
	free, err := m.balances.GetFreeBalance(ctx, m.cfg.Address, m.cfg.QuoteToken)
	if err != nil {
		return fmt.Errorf("could not read %s balance: %w", m.cfg.QuoteToken, err)
	}
	if !free.IsPositive() {
		return fmt.Errorf("no free %s balance to transfer: %w", m.cfg.QuoteToken, ErrInsufficientBalance)
	}

	desired := free
	if m.cfg.TransferAmount != nil {
		desired = decimal.Min(*m.cfg.TransferAmount, free)
	}
	amount := quantize.WithMargin(desired, m.cfg.QuoteWeiDecimals)
	if !amount.IsPositive() {
		return fmt.Errorf("transfer amount %s quantizes to nothing: %w", desired, ErrAmountTooSmall)
	}

	resp, err := m.gateway.TransferToPerps(ctx, amount)
	if err != nil {
		return fmt.Errorf("could not transfer %s %s to perps: %w", amount, m.cfg.QuoteToken, err)
	}
	result.TransferredAmount = amount
	result.TransferResponse = resp
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	sctx, scancel := context.WithTimeout(ctx, d)
	<-sctx.Done()
	scancel()
	if ctx.Err() != nil {
		return context.Cause(ctx)
	}
	return nil
}
