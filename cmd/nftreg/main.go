package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "demo":
		if err := demo(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "events":
		if err := events(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "export":
		if err := export(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "verify":
		if err := verify(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("nftreg version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`nftreg - supply-capped ownable-asset registry

Usage:
  nftreg <command> [options]

Commands:
  demo       Run a scripted token lifecycle against the configured store
  events     Show the stored notice timeline
  export     Export the stored notice log as JSONL or CSV
  verify     Rebuild state from the log and check invariants and commitment
  help       Show this help message
  version    Show version information

Configuration (environment):
  NFTREG_DB         Database path (default nftreg.db)
  NFTREG_ADMIN      Admin identity (default admin)
  NFTREG_CAP        Supply cap (default 100)
  NFTREG_BASE_URI   Metadata prefix (default https://tokens.example/)

Examples:
  # Run the demo lifecycle and persist its notices
  nftreg demo

  # Inspect the log
  nftreg events --kind Transfer

  # Export for external audit
  nftreg export --format csv --output log.csv

  # Check the log against the rebuilt state
  nftreg verify`)
}
