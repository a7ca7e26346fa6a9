// Copyright (c) 2025 BVK Chaitanya

package migrate

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

// fakeVenue implements BalanceReader and Gateway against fixed
// balances and records every submission.
type fakeVenue struct {
	balances map[string]decimal.Decimal

	soldPair    string
	soldSize    decimal.Decimal
	slippageBps int64

	transferred decimal.Decimal

	withdrawn    decimal.Decimal
	withdrawDest string

	sellCalls, transferCalls, withdrawCalls int
}

func (f *fakeVenue) GetFreeBalance(ctx context.Context, user, token string) (decimal.Decimal, error) {
	return f.balances[token], nil
}

func (f *fakeVenue) MarketSell(ctx context.Context, pair string, size decimal.Decimal, slippageBps int64) (json.RawMessage, error) {
	f.sellCalls++
	f.soldPair, f.soldSize, f.slippageBps = pair, size, slippageBps
	return json.RawMessage(`{"status":"ok"}`), nil
}

func (f *fakeVenue) TransferToPerps(ctx context.Context, amount decimal.Decimal) (json.RawMessage, error) {
	f.transferCalls++
	f.transferred = amount
	return json.RawMessage(`{"status":"ok"}`), nil
}

func (f *fakeVenue) Withdraw(ctx context.Context, amount decimal.Decimal, destination string) (json.RawMessage, error) {
	f.withdrawCalls++
	f.withdrawn, f.withdrawDest = amount, destination
	return json.RawMessage(`{"status":"ok"}`), nil
}

func testConfig() *Config {
	return &Config{
		Address:          "0x1111111111111111111111111111111111111111",
		Pair:             "PURR/USDC",
		BaseToken:        "PURR",
		QuoteToken:       "USDC",
		BaseSizeDecimals: 0,
		QuoteWeiDecimals: 8,
		SettleWait:       time.Millisecond,
	}
}

func TestSellAndTransferUsesEverything(t *testing.T) {
	venue := &fakeVenue{
		balances: map[string]decimal.Decimal{
			"PURR": d("123.7"),
			"USDC": d("50.00000003"),
		},
	}
	m, err := New(testConfig(), venue, venue)
	if err != nil {
		t.Fatal(err)
	}

	result, err := m.SellAndTransfer(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := d("123"); !result.SoldSize.Equal(want) {
		t.Errorf("sold size: want %s got %s", want, result.SoldSize)
	}
	if venue.soldPair != "PURR/USDC" {
		t.Errorf("sold pair: want PURR/USDC got %s", venue.soldPair)
	}
	if venue.slippageBps != 30 {
		t.Errorf("slippage: want default 30 bps got %d", venue.slippageBps)
	}
	if want := d("50.00000002"); !result.TransferredAmount.Equal(want) {
		t.Errorf("transferred amount: want %s got %s", want, result.TransferredAmount)
	}
	if result.SellResponse == nil || result.TransferResponse == nil {
		t.Errorf("venue acknowledgements were not recorded")
	}
}

func TestSellClampsExplicitSize(t *testing.T) {
	venue := &fakeVenue{
		balances: map[string]decimal.Decimal{
			"PURR": d("100.5"),
			"USDC": d("10"),
		},
	}
	cfg := testConfig()
	cfg.SellSize = dp("500")
	m, err := New(cfg, venue, venue)
	if err != nil {
		t.Fatal(err)
	}

	result, err := m.SellAndTransfer(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := d("100"); !result.SoldSize.Equal(want) {
		t.Errorf("sold size: want %s got %s", want, result.SoldSize)
	}
}

func TestSellWithoutBalance(t *testing.T) {
	venue := &fakeVenue{
		balances: map[string]decimal.Decimal{},
	}
	m, err := New(testConfig(), venue, venue)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.SellAndTransfer(context.Background()); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("want ErrInsufficientBalance, got %v", err)
	}
	if venue.sellCalls != 0 {
		t.Errorf("sell was submitted with no balance")
	}
}

func TestTransferSkippedWhenSellDidNotFill(t *testing.T) {
	venue := &fakeVenue{
		balances: map[string]decimal.Decimal{
			"PURR": d("10"),
		},
	}
	m, err := New(testConfig(), venue, venue)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.SellAndTransfer(context.Background()); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("want ErrInsufficientBalance, got %v", err)
	}
	if venue.sellCalls != 1 {
		t.Errorf("sell call count: want 1 got %d", venue.sellCalls)
	}
	if venue.transferCalls != 0 {
		t.Errorf("transfer was submitted after an unfilled sell")
	}
}

func TestSellSizeTooSmall(t *testing.T) {
	venue := &fakeVenue{
		balances: map[string]decimal.Decimal{
			"PURR": d("0.9"),
			"USDC": d("10"),
		},
	}
	m, err := New(testConfig(), venue, venue)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.SellAndTransfer(context.Background()); !errors.Is(err, ErrAmountTooSmall) {
		t.Fatalf("want ErrAmountTooSmall, got %v", err)
	}
	if venue.sellCalls != 0 {
		t.Errorf("sell was submitted with a non-actionable size")
	}
}

func TestTransferOnly(t *testing.T) {
	venue := &fakeVenue{
		balances: map[string]decimal.Decimal{
			"USDC": d("25.5"),
		},
	}
	m, err := New(testConfig(), venue, venue)
	if err != nil {
		t.Fatal(err)
	}

	result, err := m.TransferOnly(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := d("25.49999999"); !result.TransferredAmount.Equal(want) {
		t.Errorf("transferred amount: want %s got %s", want, result.TransferredAmount)
	}
	if venue.sellCalls != 0 {
		t.Errorf("transfer-only mode submitted a sell")
	}
}

func TestTransferClampsExplicitAmount(t *testing.T) {
	venue := &fakeVenue{
		balances: map[string]decimal.Decimal{
			"USDC": d("10"),
		},
	}
	cfg := testConfig()
	cfg.TransferAmount = dp("100")
	m, err := New(cfg, venue, venue)
	if err != nil {
		t.Fatal(err)
	}

	result, err := m.TransferOnly(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := d("9.99999999"); !result.TransferredAmount.Equal(want) {
		t.Errorf("transferred amount: want %s got %s", want, result.TransferredAmount)
	}
}

func TestWithdrawRequiresDestination(t *testing.T) {
	venue := &fakeVenue{
		balances: map[string]decimal.Decimal{
			"USDC": d("100"),
		},
	}
	cfg := testConfig()
	cfg.WithdrawAmount = dp("10")
	m, err := New(cfg, venue, venue)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Withdraw(context.Background()); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want os.ErrInvalid, got %v", err)
	}
	if venue.withdrawCalls != 0 {
		t.Errorf("withdrawal was submitted without a destination")
	}
}

func TestWithdrawRequiresAmount(t *testing.T) {
	venue := &fakeVenue{
		balances: map[string]decimal.Decimal{},
	}
	cfg := testConfig()
	cfg.WithdrawDestination = "0x2222222222222222222222222222222222222222"
	m, err := New(cfg, venue, venue)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Withdraw(context.Background()); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want os.ErrInvalid, got %v", err)
	}
	if venue.withdrawCalls != 0 {
		t.Errorf("withdrawal was submitted without an amount")
	}
}

func TestWithdrawQuantizesPlainFloor(t *testing.T) {
	venue := &fakeVenue{
		balances: map[string]decimal.Decimal{},
	}
	cfg := testConfig()
	cfg.WithdrawDestination = "0x2222222222222222222222222222222222222222"
	cfg.WithdrawAmount = dp("12.345678999")
	m, err := New(cfg, venue, venue)
	if err != nil {
		t.Fatal(err)
	}

	result, err := m.Withdraw(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := d("12.34567899"); !result.WithdrawnAmount.Equal(want) {
		t.Errorf("withdrawn amount: want %s got %s", want, result.WithdrawnAmount)
	}
	if venue.withdrawDest != cfg.WithdrawDestination {
		t.Errorf("withdraw destination: want %s got %s", cfg.WithdrawDestination, venue.withdrawDest)
	}
}

func TestConfigCheck(t *testing.T) {
	venue := &fakeVenue{balances: map[string]decimal.Decimal{}}

	cfg := testConfig()
	cfg.Address = ""
	if _, err := New(cfg, venue, venue); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("empty address: want os.ErrInvalid, got %v", err)
	}

	cfg = testConfig()
	cfg.SlippageBps = 10000
	if _, err := New(cfg, venue, venue); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("out of range slippage: want os.ErrInvalid, got %v", err)
	}

	cfg = testConfig()
	cfg.SellSize = dp("-1")
	if _, err := New(cfg, venue, venue); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("negative sell size: want os.ErrInvalid, got %v", err)
	}
}
