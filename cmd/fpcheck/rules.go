package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"esfpc/fpcheck/pkg/cli"
	"esfpc/fpcheck/pkg/rules/engine"
	"esfpc/fpcheck/pkg/rules/manager"
	"esfpc/fpcheck/pkg/rules/source"
)

var rulesFlags struct {
	rules  string
	format string
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect rule sets",
	Long:  `Inspect the rule set built from the configured rule source.`,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rules in evaluation order",
	Long: `Load the rule source and list every rule in the order it is evaluated,
with its reference, line, action and condition.

Examples:
  # List the configured rules
  fpcheck rules list

  # List a rule directory as JSON
  fpcheck rules list --rules rules/eddf --format json`,
	Args: cobra.NoArgs,
	RunE: runRulesList,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)

	rulesListCmd.Flags().StringVarP(&rulesFlags.rules, "rules", "r", "", "rule file or directory (overrides rules.path and selects file mode)")
	rulesListCmd.Flags().StringVarP(&rulesFlags.format, "format", "o", "text", "output format: text, json")
}

// ruleEntry is one listed rule.
type ruleEntry struct {
	Ref       string `json:"ref"`
	Line      int    `json:"line,omitempty"`
	Kind      string `json:"kind"`
	Msg       string `json:"msg"`
	Condition string `json:"condition"`
}

// ruleListing is the output of rules list.
type ruleListing struct {
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Documents int         `json:"documents"`
	Bytes     int64       `json:"bytes"`
	Rules     []ruleEntry `json:"rules"`
}

func (l *ruleListing) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s: %d rules from %d files (%s), version %s\n\n",
		l.Source, len(l.Rules), l.Documents, humanize.IBytes(uint64(l.Bytes)), l.Version); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tLINE\tKIND\tMSG\tCONDITION")
	for _, r := range l.Rules {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", r.Ref, r.Line, r.Kind, r.Msg, r.Condition)
	}
	return tw.Flush()
}

func runRulesList(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(rulesFlags.format)
	if err != nil || format == cli.FormatJUnit {
		return cli.NewConfigError("--format", fmt.Sprintf("unsupported format %q (use text or json)", rulesFlags.format))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	eng, err := engine.New(nil, engine.WithLogger(logger))
	if err != nil {
		return cli.NewCommandError("rules list", err)
	}
	rc := rulesConfig(cfg, rulesFlags.rules)
	mgr, err := manager.New(rc, eng, manager.WithLogger(logger))
	if err != nil {
		return cli.NewConfigError("rules", err.Error())
	}

	// Read once so sizes and rules describe the same documents.
	docs, err := mgr.Source().Load(ctx)
	if err != nil {
		return cli.NewCommandError("rules list", err)
	}
	loaded, err := manager.NewLoader(manager.LoaderConfig{MaxFileSize: rc.MaxFileSize, Strict: rc.Strict}).
		Load(ctx, source.NewMemorySource(docs...))
	if err != nil {
		return cli.NewCommandError("rules list", err)
	}

	listing := &ruleListing{
		Source:    mgr.Source().String(),
		Version:   loaded.RuleSet.Version(),
		Documents: loaded.Documents,
		Rules:     []ruleEntry{},
	}
	for _, doc := range docs {
		listing.Bytes += int64(len(doc.Data))
	}
	for _, r := range loaded.RuleSet.Rules() {
		listing.Rules = append(listing.Rules, ruleEntry{
			Ref:       r.Ref(),
			Line:      r.Line,
			Kind:      r.Action.Kind.String(),
			Msg:       r.Action.Msg,
			Condition: r.Text,
		})
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), listing)
}
