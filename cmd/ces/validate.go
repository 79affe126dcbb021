package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ceslang/go-ces/parser"
	"github.com/ceslang/go-ces/resolve"
	"github.com/ceslang/go-ces/validation"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	outputJSON := fs.Bool("json", false, "Output results as JSON")
	outputFile := fs.String("output", "", "Write JSON results to file")
	strict := fs.Bool("strict", false, "Treat candidate dangling nodes as errors")
	root := fs.String("root", resolve.DefaultRoot, "Root structure name")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ces validate <model.ast.json> [options]

Compile an AST document and report coherence issues in the result.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Checks performed:
  - Structural integrity (empty structures, zero link weights)
  - Coherence (nodes that only send or only receive)

Examples:
  # Basic validation
  ces validate model.ast.json

  # Strict coherence policy
  ces validate model.ast.json --strict

  # Save validation report
  ces validate model.ast.json --json --output report.json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model file required")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read model: %w", err)
	}
	file, err := parser.FromJSON(data)
	if err != nil {
		return fmt.Errorf("parse model: %w", err)
	}

	// Resolve permissively so incoherent structures still produce a report;
	// the policy only decides how the report judges them.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	structure, err := resolve.NewResolver(
		resolve.WithRoot(*root),
		resolve.WithLogger(logger),
	).Resolve(file)
	if err != nil {
		return err
	}

	policy := validation.Permissive
	if *strict {
		policy = validation.Strict
	}
	result := validation.Validate(structure, policy)

	if *outputJSON || *outputFile != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		if *outputFile != "" {
			if err := os.WriteFile(*outputFile, data, 0644); err != nil {
				return fmt.Errorf("write file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Validation results written to %s\n", *outputFile)
		} else {
			fmt.Println(string(data))
		}
	} else {
		printValidationResults(result)
	}

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}

func printValidationResults(result *validation.Result) {
	fmt.Println("=== Cause-Effect Structure Validation ===")

	fmt.Printf("Structure: %d nodes, %d links, %d inhibitors\n",
		result.Summary.Nodes,
		result.Summary.Links,
		result.Summary.Inhibitors)
	if result.Summary.Coherent {
		fmt.Println("Coherence: every connected node both sends and receives")
	} else {
		fmt.Println("Coherence: candidate dangling nodes present")
	}
	fmt.Println()

	printIssues("Errors", result.Errors)
	printIssues("Warnings", result.Warnings)
	printIssues("Info", result.Info)

	fmt.Println("───────────────────────────────────")
	if result.Valid {
		fmt.Println("Validation PASSED")
	} else {
		fmt.Println("Validation FAILED")
		fmt.Printf("  %d error(s) must be fixed\n", len(result.Errors))
	}
}

func printIssues(heading string, issues []validation.Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Printf("%s (%d):\n", heading, len(issues))
	for _, issue := range issues {
		fmt.Printf("  [%s] %s\n", issue.Category, issue.Message)
		if len(issue.Location) > 0 {
			fmt.Printf("    Nodes: %v\n", issue.Location)
		}
		if issue.Suggestion != "" {
			fmt.Printf("    Suggestion: %s\n", issue.Suggestion)
		}
		fmt.Println()
	}
}
