package main

import (
	"fmt"
	"os"

	openapifixer "github.com/rafactx/openapi-fixer-v2"
	"github.com/rafactx/openapi-fixer-v2/cmd/openapi-fixer/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("openapi-fixer v%s\n", openapifixer.Version())
	case "help", "-h", "--help":
		printUsage()
	case "rename":
		if err := commands.HandleRename(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "correct":
		if err := commands.HandleCorrect(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "hydrate":
		if err := commands.HandleHydrate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`openapi-fixer - OpenAPI correction and hydration toolkit

Usage:
  openapi-fixer <command> [options]

Commands:
  rename      Rename whitespace-bearing schemas and rewrite their $refs
  correct     Apply declarative correction rules and run semantic checks
  hydrate     Enrich a document from a hydration config
  version     Show version information
  help        Show this help message

Examples:
  openapi-fixer rename openapi.json
  openapi-fixer correct --config rules.yaml openapi.json
  openapi-fixer correct --export-config rules.yaml
  openapi-fixer hydrate --config config.yaml openapi.json

Run 'openapi-fixer <command> --help' for more information on a command.`)
}
