package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ceslang/go-ces/store"
)

func list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite database path (required)")
	outputJSON := fs.Bool("json", false, "Output catalog as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ces list --db <path> [options]

List structures saved in a database, newest first.

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

	db, err := store.New(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.List()
	if err != nil {
		return err
	}

	if *outputJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		fmt.Println("No structures saved.")
		return nil
	}
	fmt.Printf("%-36s  %-20s  %5s  %5s  %s\n", "ID", "NAME", "NODES", "LINKS", "SAVED")
	for _, r := range records {
		fmt.Printf("%-36s  %-20s  %5d  %5d  %s\n",
			r.ID, r.Name, r.Nodes, r.Links, r.SavedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
