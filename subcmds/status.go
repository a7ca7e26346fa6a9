// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/visvasity/cli"
)

// Status prints the account's spot balances and the pair's price
// context. It needs the account address but not the secret key.
type Status struct {
	Flags
}

func (c *Status) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	if err := c.check(); err != nil {
		return err
	}

	s, err := c.connect(ctx, false /* withSigner */)
	if err != nil {
		return err
	}

	pctx, err := s.client.GetPairContext(ctx, c.pair)
	if err != nil {
		return err
	}
	fmt.Printf("pair: %s\n", pctx.Pair)
	if pctx.MidPx != nil {
		fmt.Printf("mid price: %s\n", pctx.MidPx)
	} else {
		fmt.Printf("mid price: (empty book)\n")
	}
	fmt.Printf("mark price: %s\n", pctx.MarkPx)
	fmt.Printf("prev day price: %s\n", pctx.PrevDayPx)
	fmt.Printf("day volume: %s\n", pctx.DayNtlVlm)
	fmt.Println()

	balances, err := s.client.GetSpotBalances(ctx, s.address)
	if err != nil {
		return err
	}
	if len(balances) == 0 {
		fmt.Printf("no spot balances for %s\n", s.address)
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "COIN\tTOTAL\tHOLD\tFREE\n")
	for _, b := range balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.Coin, b.Total, b.Hold, b.Free())
	}
	return tw.Flush()
}

func (c *Status) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("status", flag.ContinueOnError)
	c.Flags.SetFlags(fset)
	return "status", fset, cli.CmdFunc(c.run)
}

func (c *Status) Purpose() string {
	return "Prints spot balances and pair price context"
}
