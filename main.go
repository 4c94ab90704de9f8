package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/mindbridge/internal/commands"
	"github.com/gerunddev/mindbridge/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "convert":
		commands.Convert(os.Args[2:])
	case "outline", "tree":
		commands.Outline(os.Args[2:])
	case "diff":
		commands.Diff(os.Args[2:])
	case "validate", "check":
		commands.Validate(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("mindbridge v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`mindbridge - Convert Freeplane mind maps to a typed tree and back

Usage:
  mindbridge <command> [options]

Commands:
  convert     Normalize a map file through a conversion round trip
  outline     Render the node structure (text, yaml or markdown)
  diff        Show what normalization would change
  validate    Convert and report every finding (--strict to fail fast)
  version     Show version information
  help        Show this help message

Examples:
  mindbridge convert notes.mm
  mindbridge convert notes.mm -o normalized.mm
  mindbridge outline notes.mm --format yaml
  mindbridge outline notes.mm --depth 2
  mindbridge diff notes.mm
  mindbridge validate notes.mm --strict

Configuration:
  Config file: %s

For more information, visit: https://github.com/gerunddev/mindbridge
`, config.ConfigPath())
	fmt.Print(usage)
}
