// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/bvk/hlmigrate/migrate"
	"github.com/visvasity/cli"
)

// Move sells the base token on the spot book and transfers the quote
// proceeds to the perpetuals ledger.
type Move struct {
	Flags

	size   string
	amount string

	slippageBps int64

	settleWait time.Duration
}

func (c *Move) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	if err := c.check(); err != nil {
		return err
	}
	size, err := parseAmount("size", c.size)
	if err != nil {
		return err
	}
	amount, err := parseAmount("amount", c.amount)
	if err != nil {
		return err
	}

	s, err := c.connect(ctx, true /* withSigner */)
	if err != nil {
		return err
	}
	cfg, err := c.migratorConfig(s)
	if err != nil {
		return err
	}
	cfg.SellSize = size
	cfg.TransferAmount = amount
	cfg.SlippageBps = c.slippageBps
	cfg.SettleWait = c.settleWait

	m, err := migrate.New(cfg, s.client, s.exchange)
	if err != nil {
		return err
	}
	result, err := m.SellAndTransfer(ctx)
	if err != nil {
		c.notifyOutcome(ctx, fmt.Sprintf("hlmigrate move failed: %v", err))
		return err
	}

	jsdata, _ := json.MarshalIndent(result, "", "  ")
	fmt.Printf("%s\n", jsdata)
	c.notifyOutcome(ctx, fmt.Sprintf("hlmigrate: sold %s %s and moved %s %s to perps",
		result.SoldSize, c.baseToken, result.TransferredAmount, c.quoteToken))
	return nil
}

func (c *Move) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("move", flag.ContinueOnError)
	c.Flags.SetFlags(fset)
	fset.StringVar(&c.size, "size", "", "base token size to sell; empty sells everything")
	fset.StringVar(&c.amount, "amount", "", "quote amount to transfer; empty transfers everything")
	fset.Int64Var(&c.slippageBps, "slippage-bps", 30, "price cushion below the best bid in basis points")
	fset.DurationVar(&c.settleWait, "settle-wait", 1200*time.Millisecond, "pause between the sell and the balance re-read")
	return "move", fset, cli.CmdFunc(c.run)
}

func (c *Move) Purpose() string {
	return "Sells the base token and moves the proceeds to the perps ledger"
}

func (c *Move) CommandHelp() string {
	return `

Command "move" sells the base token into the quote token with an
immediate-or-cancel order, waits for the venue ledger to settle and then
transfers the free quote balance from the spot ledger to the perpetuals
ledger. Without -size and -amount it uses everything available at both
steps.

The settle wait is a fixed pause, not a fill check. If the venue settles
slower than -settle-wait, the balance re-read can undercount and the
transfer moves less than the sale produced; re-running "transfer" picks
up the remainder.

Credentials are read from HL_ACCOUNT_ADDRESS and HL_SECRET_KEY, loaded
from the -env-file when present.

`
}
