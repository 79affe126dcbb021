package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ceslang/go-ces/ces"
	"github.com/ceslang/go-ces/parser"
	"github.com/ceslang/go-ces/store"
)

func show(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite database path (required)")
	name := fs.String("name", "", "Look up the newest structure with this name")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ces show [<structure-id>] --db <path> [options]

Print a saved structure as JSON, by ID or by name.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		fs.Usage()
		return fmt.Errorf("--db required")
	}
	if fs.NArg() < 1 && *name == "" {
		fs.Usage()
		return fmt.Errorf("structure ID or --name required")
	}

	db, err := store.New(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	structure, err := loadStructure(db, fs.Arg(0), *name)
	if err != nil {
		return err
	}

	out, err := parser.ToJSON(structure)
	if err != nil {
		return fmt.Errorf("marshal structure: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func loadStructure(db *store.Store, id, name string) (*ces.Structure, error) {
	if id != "" {
		return db.Load(id)
	}
	return db.LoadByName(name)
}
