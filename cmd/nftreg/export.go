package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/thirupathireddy27/NFT-smart-contract/auditlog"
	"github.com/thirupathireddy27/NFT-smart-contract/eventstore"
	"github.com/thirupathireddy27/NFT-smart-contract/registry"
)

func export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "jsonl", "Export format: jsonl or csv")
	output := fs.String("output", "", "Output file (default stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nftreg export [options]

Export the stored notice log for external audit tooling.

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

	stored, err := store.Read(ctx, 0)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	notices := make([]registry.Notice, 0, len(stored))
	for _, e := range stored {
		n, err := e.Notice()
		if err != nil {
			return fmt.Errorf("decode seq %d: %w", e.Seq, err)
		}
		notices = append(notices, n)
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("create %s: %w", *output, err)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "jsonl":
		if err := auditlog.WriteJSONL(w, notices); err != nil {
			return err
		}
	case "csv":
		if err := auditlog.WriteCSV(w, notices); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want jsonl or csv)", *format)
	}

	if *output != "" {
		fmt.Fprintf(os.Stderr, "wrote %d notices to %s\n", len(notices), *output)
	}
	return nil
}
