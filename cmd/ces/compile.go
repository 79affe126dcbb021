package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ceslang/go-ces/config"
	"github.com/ceslang/go-ces/parser"
	"github.com/ceslang/go-ces/resolve"
	"github.com/ceslang/go-ces/store"
)

func compile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	configFile := fs.String("config", "ces.yaml", "Configuration file (YAML or JSON)")
	root := fs.String("root", "", "Root structure name (default from config, usually Main)")
	strict := fs.Bool("strict", false, "Reject structures with candidate dangling nodes")
	dbPath := fs.String("db", "", "Save the compiled structure to this SQLite database")
	outputFile := fs.String("output", "", "Write the compiled structure JSON to file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ces compile <model.ast.json> [options]

Resolve an AST document into a single cause-effect structure: instantiate
templates from the root, normalize fat rules to thin rules, derive ports
and links, and merge context declarations.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Compile to stdout
  ces compile model.ast.json

  # Compile a non-Main root and save the result
  ces compile model.ast.json --root Pipeline --output pipeline.json

  # Strict coherence and database persistence
  ces compile model.ast.json --strict --db ces.db
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model file required")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *root != "" {
		cfg.Root = *root
	}
	if *strict {
		cfg.Policy = "strict"
	}
	if *dbPath != "" {
		cfg.Database = *dbPath
	}

	policy, err := cfg.CoherencePolicy()
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read model: %w", err)
	}
	file, err := parser.FromJSON(data)
	if err != nil {
		return fmt.Errorf("parse model: %w", err)
	}

	resolver := resolve.NewResolver(
		resolve.WithRoot(cfg.Root),
		resolve.WithPolicy(policy),
		resolve.WithLogger(logger),
	)
	structure, err := resolver.Resolve(file)
	if err != nil {
		return err
	}

	out, err := parser.ToJSON(structure)
	if err != nil {
		return fmt.Errorf("marshal structure: %w", err)
	}

	if cfg.Database != "" {
		db, err := store.New(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Save(structure); err != nil {
			return fmt.Errorf("save structure: %w", err)
		}
		logger.Info("structure saved", "db", cfg.Database, "id", structure.ID)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, out, 0644); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Compiled structure written to %s\n", *outputFile)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
