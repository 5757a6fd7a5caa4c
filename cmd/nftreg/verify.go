package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/thirupathireddy27/NFT-smart-contract/commit"
	"github.com/thirupathireddy27/NFT-smart-contract/eventstore"
)

func verify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	expect := fs.String("root", "", "Expected commitment root (hex); verification fails on mismatch")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nftreg verify [options]

Rebuild registry state from the stored notice log, re-check the
data-model invariants, and print the log's commitment root.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := eventstore.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	r, err := eventstore.Rebuild(ctx, store, cfg.registryConfig())
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	if v := r.Constraints(); len(v) > 0 {
		for _, violation := range v {
			fmt.Fprintf(os.Stderr, "violation %s: %s\n", violation.Name, violation.Detail)
		}
		return fmt.Errorf("rebuilt state violates %d invariant(s)", len(v))
	}

	stored, err := store.Read(ctx, 0)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	chain := commit.NewChain()
	for _, e := range stored {
		n, err := e.Notice()
		if err != nil {
			return fmt.Errorf("decode seq %d: %w", e.Seq, err)
		}
		if _, err := chain.Absorb(n); err != nil {
			return fmt.Errorf("commit seq %d: %w", e.Seq, err)
		}
	}

	fmt.Printf("log      %d notices\n", chain.Len())
	fmt.Printf("supply   %d/%d\n", r.TotalSupply(), r.SupplyCap())
	fmt.Printf("paused   %v\n", r.Paused())
	fmt.Printf("admin    %s\n", r.Admin())
	fmt.Printf("root     %s\n", chain.RootHex())

	if *expect != "" && *expect != chain.RootHex() {
		return fmt.Errorf("commitment mismatch: expected %s", *expect)
	}
	fmt.Println("ok")
	return nil
}
