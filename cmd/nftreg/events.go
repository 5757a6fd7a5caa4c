package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/thirupathireddy27/NFT-smart-contract/eventstore"
	"github.com/thirupathireddy27/NFT-smart-contract/registry"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	kindFilter := fs.String("kind", "", "Filter by notice kind")
	from := fs.Uint64("from", 0, "First sequence number to show")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nftreg events [options]

Display the stored notice timeline.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Show all notices
  nftreg events

  # Only transfers, starting at sequence 10
  nftreg events --kind Transfer --from 10
`)
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

	stored, err := store.Read(ctx, *from)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	if len(stored) == 0 {
		fmt.Println("No notices recorded")
		return nil
	}

	shown := 0
	for _, e := range stored {
		if *kindFilter != "" && e.Kind != *kindFilter {
			continue
		}
		n, err := e.Notice()
		if err != nil {
			return fmt.Errorf("decode seq %d: %w", e.Seq, err)
		}
		fmt.Printf("#%-6d %-16s %s\n", n.Seq, n.Kind, describe(n))
		shown++
	}
	if shown == 0 {
		fmt.Printf("No notices of kind %q\n", *kindFilter)
	}
	return nil
}

func describe(n registry.Notice) string {
	switch n.Kind {
	case registry.NoticeTransfer:
		switch {
		case n.From.IsZero():
			return fmt.Sprintf("mint #%s -> %s", n.TokenID.Dec(), n.To)
		case n.To.IsZero():
			return fmt.Sprintf("burn #%s from %s", n.TokenID.Dec(), n.From)
		default:
			return fmt.Sprintf("#%s %s -> %s", n.TokenID.Dec(), n.From, n.To)
		}
	case registry.NoticeApproval:
		if n.Spender.IsZero() {
			return fmt.Sprintf("#%s approval revoked by %s", n.TokenID.Dec(), n.Owner)
		}
		return fmt.Sprintf("#%s %s approves %s", n.TokenID.Dec(), n.Owner, n.Spender)
	case registry.NoticeApprovalForAll:
		if n.Approved {
			return fmt.Sprintf("%s grants operator %s", n.Owner, n.Operator)
		}
		return fmt.Sprintf("%s revokes operator %s", n.Owner, n.Operator)
	case registry.NoticeBaseURIUpdated:
		return fmt.Sprintf("base uri -> %s", n.URI)
	case registry.NoticePaused:
		if n.Paused {
			return "paused"
		}
		return "unpaused"
	case registry.NoticeAdminChanged:
		return fmt.Sprintf("admin %s -> %s", n.From, n.To)
	default:
		return string(n.Kind)
	}
}
