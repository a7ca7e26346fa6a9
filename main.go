// Copyright (c) 2025 BVK Chaitanya

// Command hlmigrate moves assets from the Hyperliquid spot ledger to
// the perpetuals ledger: it sells a base token into USDC, transfers
// the proceeds and can withdraw USDC to an external address.
package main

import (
	"context"
	"log"
	"os"

	"github.com/bvk/hlmigrate/subcmds"

	"github.com/visvasity/cli"
)

func main() {
	cmds := []cli.Command{
		new(subcmds.Move),
		new(subcmds.Transfer),
		new(subcmds.Withdraw),
		new(subcmds.Status),
	}
	if err := cli.Run(context.Background(), cmds, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
