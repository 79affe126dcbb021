package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ceslang/go-ces/parser"
	"github.com/ceslang/go-ces/templates"
)

func create(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	templateName := fs.String("template", "", "Template name (required)")
	output := fs.String("output", "", "Output file (stdout when omitted)")
	listTemplates := fs.Bool("list", false, "List available templates")
	showParams := fs.String("show", "", "Show parameters for a template")
	params := fs.String("params", "", "Template parameters (format: key=value,key2=value2)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ces create [options]

Create an AST document from a structure template.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Available Templates:
`)
		for _, name := range templates.List() {
			tmpl, _ := templates.Get(name)
			fmt.Fprintf(os.Stderr, "  %-20s %s\n", name, tmpl.Description())
		}
		fmt.Fprintf(os.Stderr, `
Examples:
  # List templates
  ces create --list

  # Show template parameters
  ces create --show cycle

  # Create a five-node ring
  ces create --template cycle --params "size=5" --output ring.ast.json

  # Create and immediately compile
  ces create --template fork-join | ces compile /dev/stdin
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *listTemplates {
		fmt.Println("Available templates:")
		for _, name := range templates.List() {
			tmpl, _ := templates.Get(name)
			fmt.Printf("  %-20s %s\n", name, tmpl.Description())
		}
		return nil
	}

	if *showParams != "" {
		tmpl, err := templates.Get(*showParams)
		if err != nil {
			return err
		}
		fmt.Printf("Template: %s\n", tmpl.Name())
		fmt.Printf("Description: %s\n\n", tmpl.Description())
		if len(tmpl.Parameters()) == 0 {
			fmt.Println("No parameters.")
			return nil
		}
		fmt.Println("Parameters:")
		for _, p := range tmpl.Parameters() {
			fmt.Printf("  %s\n", p.Name)
			fmt.Printf("    Description: %s\n", p.Description)
			fmt.Printf("    Type: %s\n", p.Type)
			if p.Default != nil {
				fmt.Printf("    Default: %v\n", p.Default)
			}
			if p.Min != nil {
				fmt.Printf("    Min: %.0f\n", *p.Min)
			}
			fmt.Println()
		}
		return nil
	}

	if *templateName == "" {
		fs.Usage()
		return fmt.Errorf("--template required")
	}

	tmpl, err := templates.Get(*templateName)
	if err != nil {
		return err
	}

	paramMap, err := parseParams(*params)
	if err != nil {
		return err
	}

	file, err := tmpl.Generate(paramMap)
	if err != nil {
		return err
	}

	data, err := parser.FileToJSON(file)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, data, 0644); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "AST document written to %s\n", *output)
		return nil
	}
	fmt.Println(string(data))
	return nil
}

func parseParams(s string) (map[string]interface{}, error) {
	paramMap := make(map[string]interface{})
	if s == "" {
		return paramMap, nil
	}
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("invalid parameter %q (expected key=value)", pair)
		}
		if n, err := strconv.Atoi(value); err == nil {
			paramMap[key] = n
		} else {
			paramMap[key] = value
		}
	}
	return paramMap, nil
}
