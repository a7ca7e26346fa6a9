// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bvk/hlmigrate/migrate"
	"github.com/visvasity/cli"
)

// Withdraw sends quote tokens from the spot ledger to an external
// address through the bridge.
type Withdraw struct {
	Flags

	amount string

	destination string
}

// checkWithdraw validates the withdrawal parameters before anything
// touches the network. Withdrawals are deliberate: both the amount and
// the destination must be explicit.
func (c *Withdraw) checkWithdraw() error {
	if len(c.destination) == 0 {
		return fmt.Errorf("-dest flag is required: %w", os.ErrInvalid)
	}
	if !strings.HasPrefix(c.destination, "0x") {
		return fmt.Errorf("destination must be a 0x-prefixed EVM address: %w", os.ErrInvalid)
	}
	if len(c.amount) == 0 {
		return fmt.Errorf("-amount flag is required: %w", os.ErrInvalid)
	}
	return nil
}

func (c *Withdraw) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	if err := c.check(); err != nil {
		return err
	}
	if err := c.checkWithdraw(); err != nil {
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
	cfg.WithdrawAmount = amount
	cfg.WithdrawDestination = c.destination

	m, err := migrate.New(cfg, s.client, s.exchange)
	if err != nil {
		return err
	}
	result, err := m.Withdraw(ctx)
	if err != nil {
		c.notifyOutcome(ctx, fmt.Sprintf("hlmigrate withdraw failed: %v", err))
		return err
	}

	jsdata, _ := json.MarshalIndent(result, "", "  ")
	fmt.Printf("%s\n", jsdata)
	c.notifyOutcome(ctx, fmt.Sprintf("hlmigrate: withdrew %s %s to %s",
		result.WithdrawnAmount, c.quoteToken, c.destination))
	return nil
}

func (c *Withdraw) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("withdraw", flag.ContinueOnError)
	c.Flags.SetFlags(fset)
	fset.StringVar(&c.amount, "amount", "", "quote amount to withdraw")
	fset.StringVar(&c.destination, "dest", "", "destination EVM address")
	return "withdraw", fset, cli.CmdFunc(c.run)
}

func (c *Withdraw) Purpose() string {
	return "Withdraws quote tokens to an external address"
}
