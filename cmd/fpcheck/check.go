package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"esfpc/fpcheck/pkg/cli"
	"esfpc/fpcheck/pkg/flightplan"
	"esfpc/fpcheck/pkg/rules/engine"
	"esfpc/fpcheck/pkg/rules/manager"
)

var checkFlags struct {
	rules    string
	explain  bool
	format   string
	failOn   string
	progress bool
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] FILE...",
	Short: "Check flight plans against the rules",
	Long: `Check flight plans against the configured rules and print the action of
the first matching rule for each plan.

Flight plan files are YAML (several documents separated by "---") or JSON (an
object or an array of objects). Use "-" to read YAML from standard input.

The command fails when a result reaches the --fail-on level:
  error    a rule of kind error matched, or a check failed (default)
  warning  as error, plus warnings including unmatched plans
  never    only unreadable input fails

Examples:
  # Check plans against a rule directory
  fpcheck check --rules rules/eddf plans/*.yaml

  # Show every rule evaluated
  fpcheck check --rules rules/eddf --explain plan.json

  # JSON output for scripts
  fpcheck check --format json --fail-on never plans.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.rules, "rules", "r", "", "rule file or directory (overrides rules.path and selects file mode)")
	checkCmd.Flags().BoolVar(&checkFlags.explain, "explain", false, "list every rule evaluated")
	checkCmd.Flags().StringVarP(&checkFlags.format, "format", "o", "text", "output format: text, json, junit")
	checkCmd.Flags().StringVar(&checkFlags.failOn, "fail-on", "error", "failure threshold: error, warning, never")
	checkCmd.Flags().BoolVar(&checkFlags.progress, "progress", false, "show a progress bar on stderr")
}

// checkResults is the output of the check command.
type checkResults struct {
	Reports []engine.Report `json:"reports"`
	Failing int             `json:"failing"`

	failOn string
}

func (r *checkResults) WriteText(w io.Writer) error {
	for _, rep := range r.Reports {
		kind := rep.Kind
		if rep.Failed() {
			kind = "failed"
		}
		rule := rep.Rule
		if rule == "" {
			rule = "-"
		}
		if _, err := fmt.Fprintf(w, "%-10s %-8s %-6s %s\n", rep.FlightPlan, kind, rep.Msg, rule); err != nil {
			return err
		}
		if rep.Failed() {
			if _, err := fmt.Fprintf(w, "  error: %s\n", rep.Error); err != nil {
				return err
			}
		}
		for _, s := range rep.Steps {
			mark := " "
			switch {
			case s.Error != "":
				mark = "!"
			case s.Matched:
				mark = "x"
			}
			if _, err := fmt.Fprintf(w, "  [%s] %s (line %d): %s\n", mark, s.Rule, s.Line, s.Condition); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "\n%d checked, %d at or above --fail-on %s\n", len(r.Reports), r.Failing, r.failOn)
	return err
}

func (r *checkResults) JUnit() cli.JUnitTestSuites {
	suite := cli.JUnitTestSuite{Name: "fpcheck check", Tests: len(r.Reports)}
	var total time.Duration
	for _, rep := range r.Reports {
		tc := cli.JUnitTestCase{
			Name:      rep.FlightPlan,
			Classname: "check",
			Time:      cli.JUnitSeconds(rep.Duration),
		}
		total += rep.Duration
		if failing(rep, r.failOn) {
			suite.Failures++
			text := rep.Rule
			if rep.Failed() {
				text = rep.Error
			}
			tc.Failure = &cli.JUnitFailure{Message: rep.Kind + " " + rep.Msg, Text: text}
		}
		suite.Cases = append(suite.Cases, tc)
	}
	suite.Time = cli.JUnitSeconds(total)
	return cli.JUnitTestSuites{Suites: []cli.JUnitTestSuite{suite}}
}

// failing reports whether rep reaches the failOn threshold.
func failing(rep engine.Report, failOn string) bool {
	switch failOn {
	case "never":
		return false
	case "warning":
		return rep.Failed() || rep.Kind == engine.KindError.String() || rep.Kind == engine.KindWarning.String()
	default:
		return rep.Failed() || rep.Kind == engine.KindError.String()
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	switch checkFlags.failOn {
	case "error", "warning", "never":
	default:
		return cli.NewConfigError("--fail-on", fmt.Sprintf("unknown level %q (use error, warning or never)", checkFlags.failOn))
	}
	format, err := cli.ParseOutputFormat(checkFlags.format)
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

	plans, err := readFlightPlans(cmd.InOrStdin(), args)
	if err != nil {
		return cli.NewCommandError("check", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	eng, err := engine.New(nil, engine.WithLogger(logger))
	if err != nil {
		return cli.NewCommandError("check", err)
	}
	mgr, err := manager.New(rulesConfig(cfg, checkFlags.rules), eng, manager.WithLogger(logger))
	if err != nil {
		return cli.NewConfigError("rules", err.Error())
	}
	if err := mgr.Load(ctx); err != nil {
		return cli.NewCommandError("check", err)
	}

	var progress cli.ProgressReporter
	if checkFlags.progress {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr(), "plans")
		progress.Start(int64(len(plans)))
	}

	results := &checkResults{failOn: checkFlags.failOn}
	for i, fp := range plans {
		x, err := eng.Explain(ctx, fp)
		rep := engine.NewReport(fp.Name(), x, err, checkFlags.explain)
		if failing(rep, checkFlags.failOn) {
			results.Failing++
		}
		results.Reports = append(results.Reports, rep)
		if progress != nil {
			progress.Update(int64(i + 1))
		}
	}
	if progress != nil {
		progress.Finish()
	}

	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), results); err != nil {
		return cli.NewCommandError("check", err)
	}
	if results.Failing > 0 {
		return fmt.Errorf("%d of %d flight plans at or above --fail-on %s", results.Failing, len(plans), checkFlags.failOn)
	}
	return nil
}

// readFlightPlans decodes every plan in the named files, in argument order.
// "-" reads YAML from stdin.
func readFlightPlans(stdin io.Reader, paths []string) ([]*flightplan.FlightPlan, error) {
	var plans []*flightplan.FlightPlan
	for _, path := range paths {
		var (
			data   []byte
			err    error
			format = flightplan.FormatFromPath(path)
		)
		if path == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		decoded, err := flightplan.DecodeAll(data, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if len(decoded) == 0 {
			return nil, fmt.Errorf("%s: no flight plans", path)
		}
		plans = append(plans, decoded...)
	}
	return plans, nil
}
