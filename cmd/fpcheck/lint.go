package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"esfpc/fpcheck/pkg/cli"
	"esfpc/fpcheck/pkg/rules/manager"
	"esfpc/fpcheck/pkg/rules/source"
)

var lintFlags struct {
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint [flags] [PATH...]",
	Short: "Validate rule files",
	Long: `Validate rule files without checking any flight plan.

Each rule file is decoded and every condition is parsed and statically
validated: unknown identifiers, operand type mismatches and malformed
actions are reported with the rule position and line. Without arguments the
configured rules path is linted.

Examples:
  # Lint a rule directory
  fpcheck lint rules/eddf

  # JSON output for CI/CD
  fpcheck lint --format json rules/`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.format, "format", "o", "text", "output format: text, json")
}

// lintFile is the lint outcome of one rule document.
type lintFile struct {
	Name   string   `json:"name"`
	Path   string   `json:"path,omitempty"`
	Rules  int      `json:"rules"`
	Errors []string `json:"errors,omitempty"`
}

// lintResults is the output of the lint command.
type lintResults struct {
	Files  []lintFile `json:"files"`
	Rules  int        `json:"rules"`
	Errors int        `json:"errors"`
}

func (r *lintResults) WriteText(w io.Writer) error {
	for _, f := range r.Files {
		name := f.Path
		if name == "" {
			name = f.Name
		}
		if len(f.Errors) == 0 {
			if _, err := fmt.Fprintf(w, "✓ %s (%d rules)\n", name, f.Rules); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "✗ %s\n", name); err != nil {
			return err
		}
		for _, e := range f.Errors {
			if _, err := fmt.Fprintf(w, "    %s\n", e); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "\n%d files, %d rules, %d errors\n", len(r.Files), r.Rules, r.Errors)
	return err
}

func runLint(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(lintFlags.format)
	if err != nil || format == cli.FormatJUnit {
		return cli.NewConfigError("--format", fmt.Sprintf("unsupported format %q (use text or json)", lintFlags.format))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{cfg.Rules.Path}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loader := manager.NewLoader(manager.LoaderConfig{MaxFileSize: cfg.Rules.MaxFileSize, Strict: true})
	results := &lintResults{}
	for _, path := range paths {
		src := source.NewFileSource(path, source.FileOptions{Extensions: cfg.Rules.Extensions, Logger: logger})
		docs, err := src.Load(ctx)
		if err != nil {
			return cli.NewCommandError("lint", err)
		}
		for _, doc := range docs {
			f := lintFile{Name: doc.Name, Path: doc.Path}
			rules, err := loader.Decode(doc)
			if err != nil {
				f.Errors = strings.Split(err.Error(), "\n")
				results.Errors += len(f.Errors)
			} else {
				f.Rules = len(rules)
				results.Rules += len(rules)
			}
			results.Files = append(results.Files, f)
		}
	}

	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), results); err != nil {
		return cli.NewCommandError("lint", err)
	}
	if results.Errors > 0 {
		return fmt.Errorf("lint found %d errors", results.Errors)
	}
	return nil
}
