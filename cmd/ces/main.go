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
	case "create":
		if err := create(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "compile":
		if err := compile(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "show":
		if err := show(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "list":
		if err := list(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("ces version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ces - cause-effect structure compiler

Usage:
  ces <command> [options]

Commands:
  create     Create an AST document from a structure template
  compile    Resolve an AST document into a cause-effect structure
  validate   Check a compiled structure for coherence issues
  show       Print a structure saved in a database
  list       List structures saved in a database
  help       Show this help message
  version    Show version information

Examples:
  # Create a model from a template
  ces create --template cycle --params "size=5" --output ring.ast.json

  # Compile an AST document to a structure
  ces compile model.ast.json --output structure.json

  # Compile under the strict coherence policy and persist
  ces compile model.ast.json --strict --db ces.db

  # Validate a compiled structure
  ces validate model.ast.json --json

  # Inspect the database
  ces list --db ces.db
  ces show --db ces.db --name Main

For command-specific help, run:
  ces <command> --help`)
}
