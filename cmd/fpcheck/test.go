package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"esfpc/fpcheck/pkg/cli"
	"esfpc/fpcheck/pkg/rules/suite"
)

var testFlags struct {
	format string
	strict bool
}

var testCmd = &cobra.Command{
	Use:   "test [flags] SUITE...",
	Short: "Run rule test suites",
	Long: `Run rule test suites.

A suite names a rules path, a base flight plan and a list of cases. Each case
overrides fields of the base plan and states the expected action kind and
message, or that the check must fail. Directories are expanded to the suite
files (*.yaml, *.yml) they contain.

Examples:
  # Run every suite in a directory
  fpcheck test suites/

  # JUnit output for CI
  fpcheck test --format junit suites/ > report.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTests,
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().StringVarP(&testFlags.format, "format", "o", "text", "output format: text, json, junit")
	testCmd.Flags().BoolVar(&testFlags.strict, "strict", false, "validate every condition when loading suite rules (also rules.strict)")
}

// suiteError records a suite that could not run.
type suiteError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// testResults is the output of the test command.
type testResults struct {
	Suites []*suite.Result `json:"suites"`
	Errors []suiteError    `json:"errors,omitempty"`
	Passed int             `json:"passed"`
	Failed int             `json:"failed"`
}

func (r *testResults) WriteText(w io.Writer) error {
	for _, s := range r.Suites {
		if _, err := fmt.Fprintf(w, "%s (%s, %d rules)\n", s.Suite, s.Path, s.Rules); err != nil {
			return err
		}
		for _, c := range s.Cases {
			if c.Passed {
				if _, err := fmt.Fprintf(w, "  ✓ %s\n", c.Name); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "  ✗ %s: expected %s, got %s\n", c.Name, c.Expected, c.Actual); err != nil {
				return err
			}
			if c.Rule != "" {
				if _, err := fmt.Fprintf(w, "      matched %s\n", c.Rule); err != nil {
					return err
				}
			}
			if c.Error != "" {
				if _, err := fmt.Fprintf(w, "      %s\n", c.Error); err != nil {
					return err
				}
			}
		}
	}
	for _, e := range r.Errors {
		if _, err := fmt.Fprintf(w, "✗ %s: %s\n", e.Path, e.Error); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d passed, %d failed, %d suites could not run\n", r.Passed, r.Failed, len(r.Errors))
	return err
}

func (r *testResults) JUnit() cli.JUnitTestSuites {
	var doc cli.JUnitTestSuites
	for _, s := range r.Suites {
		js := cli.JUnitTestSuite{
			Name:     s.Suite,
			Tests:    len(s.Cases),
			Failures: s.Failed(),
			Time:     cli.JUnitSeconds(s.Duration),
		}
		for _, c := range s.Cases {
			tc := cli.JUnitTestCase{Name: c.Name, Classname: s.Suite, Time: cli.JUnitSeconds(c.Duration)}
			if !c.Passed {
				text := c.Error
				if text == "" {
					text = c.Rule
				}
				tc.Failure = &cli.JUnitFailure{
					Message: fmt.Sprintf("expected %s, got %s", c.Expected, c.Actual),
					Text:    text,
				}
			}
			js.Cases = append(js.Cases, tc)
		}
		doc.Suites = append(doc.Suites, js)
	}
	for _, e := range r.Errors {
		doc.Suites = append(doc.Suites, cli.JUnitTestSuite{
			Name:     e.Path,
			Tests:    1,
			Failures: 1,
			Time:     cli.JUnitSeconds(0),
			Cases: []cli.JUnitTestCase{{
				Name:      "load",
				Classname: e.Path,
				Time:      cli.JUnitSeconds(0),
				Failure:   &cli.JUnitFailure{Message: "suite could not run", Text: e.Error},
			}},
		})
	}
	return doc
}

func runTests(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(testFlags.format)
	if err != nil {
		return cli.NewConfigError("--format", err.Error())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	files, err := suiteFiles(args)
	if err != nil {
		return cli.NewCommandError("test", err)
	}
	if len(files) == 0 {
		return cli.NewCommandError("test", fmt.Errorf("no suite files found in %v", args))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runner := suite.NewRunner(testFlags.strict || cfg.Rules.Strict, logger)
	results := &testResults{}
	for _, path := range files {
		s, err := suite.LoadFile(path)
		if err != nil {
			results.Errors = append(results.Errors, suiteError{Path: path, Error: err.Error()})
			continue
		}
		res, err := runner.Run(ctx, s)
		if err != nil {
			results.Errors = append(results.Errors, suiteError{Path: path, Error: err.Error()})
			continue
		}
		failed := res.Failed()
		results.Failed += failed
		results.Passed += len(res.Cases) - failed
		results.Suites = append(results.Suites, res)
	}

	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), results); err != nil {
		return cli.NewCommandError("test", err)
	}
	if results.Failed > 0 || len(results.Errors) > 0 {
		return fmt.Errorf("%d cases failed, %d suites could not run", results.Failed, len(results.Errors))
	}
	return nil
}

// suiteFiles expands directories to the suite files directly inside them.
func suiteFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		var found []string
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(arg, pattern))
			if err != nil {
				return nil, fmt.Errorf("failed to list suite files: %w", err)
			}
			found = append(found, matches...)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
