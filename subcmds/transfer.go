// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/bvk/hlmigrate/migrate"
	"github.com/visvasity/cli"
)

// Transfer moves the quote token from the spot ledger to the
// perpetuals ledger without selling anything.
type Transfer struct {
	Flags

	amount string
}

func (c *Transfer) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	if err := c.check(); err != nil {
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
	cfg.TransferAmount = amount

	m, err := migrate.New(cfg, s.client, s.exchange)
	if err != nil {
		return err
	}
	result, err := m.TransferOnly(ctx)
	if err != nil {
		c.notifyOutcome(ctx, fmt.Sprintf("hlmigrate transfer failed: %v", err))
		return err
	}

	jsdata, _ := json.MarshalIndent(result, "", "  ")
	fmt.Printf("%s\n", jsdata)
	c.notifyOutcome(ctx, fmt.Sprintf("hlmigrate: moved %s %s to perps",
		result.TransferredAmount, c.quoteToken))
	return nil
}

func (c *Transfer) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("transfer", flag.ContinueOnError)
	c.Flags.SetFlags(fset)
	fset.StringVar(&c.amount, "amount", "", "quote amount to transfer; empty transfers everything")
	return "transfer", fset, cli.CmdFunc(c.run)
}

func (c *Transfer) Purpose() string {
	return "Moves the free quote balance from spot to the perps ledger"
}
