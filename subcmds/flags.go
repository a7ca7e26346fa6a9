// Copyright (c) 2025 BVK Chaitanya

// Package subcmds implements the command line interface: the move,
// transfer, withdraw and status commands and their shared flags.
package subcmds

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/bvk/hlmigrate/hyperliquid"
	"github.com/bvk/hlmigrate/migrate"
	"github.com/bvk/hlmigrate/telegram"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Flags are common to all commands. Credentials never come from flags;
// they are read from the environment, optionally populated from an env
// file.
type Flags struct {
	apiURL string

	envFile string

	pair       string
	baseToken  string
	quoteToken string

	notify bool
}

func (f *Flags) SetFlags(fset *flag.FlagSet) {
	fset.StringVar(&f.apiURL, "api-url", "", "API base URL; empty selects mainnet")
	fset.StringVar(&f.envFile, "env-file", ".env", "env file with credentials")
	fset.StringVar(&f.pair, "pair", "PURR/USDC", "spot pair to operate on")
	fset.StringVar(&f.baseToken, "base", "PURR", "base token of the pair")
	fset.StringVar(&f.quoteToken, "quote", "USDC", "quote token of the pair")
	fset.BoolVar(&f.notify, "notify", false, "send the outcome as a telegram message")
}

func (f *Flags) check() error {
	if len(f.pair) == 0 || len(f.baseToken) == 0 || len(f.quoteToken) == 0 {
		return fmt.Errorf("pair, base and quote names cannot be empty: %w", os.ErrInvalid)
	}
	if len(f.apiURL) != 0 {
		if _, err := url.Parse(f.apiURL); err != nil {
			return fmt.Errorf("invalid api url %q: %w", f.apiURL, err)
		}
	}
	return nil
}

// loadEnv populates the process environment from the env file. A
// missing file is not an error; the environment may already carry the
// credentials.
func (f *Flags) loadEnv() error {
	if err := godotenv.Load(f.envFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("could not load env file %q: %w", f.envFile, err)
		}
	}
	return nil
}

func (f *Flags) clientOptions() (*hyperliquid.Options, error) {
	opts := &hyperliquid.Options{
		SignatureChainID: os.Getenv("HL_SIGNATURE_CHAIN_ID"),
	}
	apiURL := f.apiURL
	if len(apiURL) == 0 {
		apiURL = os.Getenv("HL_API_URL")
	}
	if len(apiURL) != 0 {
		u, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid api url %q: %w", apiURL, err)
		}
		opts.RestURL = u
	}
	return opts, nil
}

// session holds the connected client state shared by the commands.
type session struct {
	client *hyperliquid.Client

	meta *hyperliquid.SpotMetadata

	exchange *hyperliquid.Exchange

	address string
}

// connect loads credentials, creates the API client and fetches the
// metadata snapshot. When withSigner is false only the account address
// is required, not the secret key.
func (f *Flags) connect(ctx context.Context, withSigner bool) (*session, error) {
	if err := f.loadEnv(); err != nil {
		return nil, err
	}

	address := os.Getenv("HL_ACCOUNT_ADDRESS")
	if len(address) == 0 {
		return nil, fmt.Errorf("HL_ACCOUNT_ADDRESS is not set: %w", os.ErrInvalid)
	}
	if !strings.HasPrefix(address, "0x") {
		return nil, fmt.Errorf("account address must be a 0x-prefixed EVM address: %w", os.ErrInvalid)
	}

	opts, err := f.clientOptions()
	if err != nil {
		return nil, err
	}
	client, err := hyperliquid.New(opts)
	if err != nil {
		return nil, err
	}

	meta, err := client.GetSpotMetadata(ctx)
	if err != nil {
		return nil, err
	}

	s := &session{
		client:  client,
		meta:    meta,
		address: address,
	}
	if withSigner {
		secretKey := os.Getenv("HL_SECRET_KEY")
		if len(secretKey) == 0 {
			return nil, fmt.Errorf("HL_SECRET_KEY is not set: %w", os.ErrInvalid)
		}
		exchange, err := hyperliquid.NewExchange(client, meta, secretKey)
		if err != nil {
			return nil, err
		}
		s.exchange = exchange
	}
	return s, nil
}

// migratorConfig resolves the pair and token metadata into an
// orchestrator config. Resolution failures surface here, before any
// order or transfer is attempted.
func (f *Flags) migratorConfig(s *session) (*migrate.Config, error) {
	if _, err := s.meta.PairAssetID(f.pair); err != nil {
		return nil, err
	}
	baseSz, _, err := s.meta.TokenDecimals(f.baseToken)
	if err != nil {
		return nil, err
	}
	_, quoteWei, err := s.meta.TokenDecimals(f.quoteToken)
	if err != nil {
		return nil, err
	}
	cfg := &migrate.Config{
		Address:          s.address,
		Pair:             f.pair,
		BaseToken:        f.baseToken,
		QuoteToken:       f.quoteToken,
		BaseSizeDecimals: baseSz,
		QuoteWeiDecimals: quoteWei,
	}
	return cfg, nil
}

// notifyOutcome sends the message over telegram when -notify is set.
// Notification failures are logged and ignored; the migration outcome
// is already final.
func (f *Flags) notifyOutcome(ctx context.Context, message string) {
	if !f.notify {
		return
	}
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if len(token) == 0 || len(chatID) == 0 {
		slog.Warn("telegram credentials are not set; skipping notification")
		return
	}
	if err := telegram.Notify(ctx, token, chatID, message); err != nil {
		slog.Error("could not send telegram notification (ignored)", "err", err)
	}
}

// parseAmount parses an optional amount flag value. Empty means the
// flag was not given.
func parseAmount(name, value string) (*decimal.Decimal, error) {
	if len(value) == 0 {
		return nil, nil
	}
	v, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	if !v.IsPositive() {
		return nil, fmt.Errorf("%s value must be positive: %w", name, os.ErrInvalid)
	}
	return &v, nil
}
