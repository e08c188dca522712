// Package cli wires the groupby library into a cobra command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/groupby"
	"github.com/bjaus/groupby/internal/logger"
)

const dateCommandName = "group-by date"

type dateOptions struct {
	pattern   string
	input     string
	output    string
	logLevel  string
	logFormat string
}

// NewRootCommand builds the groupby command tree reading from stdin and
// writing results to stdout and logs to stderr.
func NewRootCommand(version string, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &dateOptions{}

	root := &cobra.Command{
		Use:           "groupby",
		Short:         "Group table rows into sub-tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "log format (console, json)")

	date := &cobra.Command{
		Use:   "date [column_name]",
		Short: "Creates a new table with the data from the table rows grouped by the column given.",
		Long: `Creates a new table with the data from the table rows grouped by the column given.

Each row is keyed by its date (or the date in column_name) formatted with
--format, default "` + groupby.DefaultPattern + `". The output is a single row
whose columns are the keys in the order first seen.`,
		Example: `  ls | groupby date --format '%d/%m/%Y'
  groupby date created_at -i csv < events.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var column string
			if len(args) > 0 {
				column = args[0]
			}
			return runDate(cmd, opts, column)
		},
	}
	date.Flags().StringVarP(&opts.pattern, "format", "f", "", "Specify date and time formatting")
	date.Flags().StringVarP(&opts.input, "input", "i", string(groupby.JSON), "input format (json, yaml, csv)")
	date.Flags().StringVarP(&opts.output, "output", "o", string(groupby.Table), "output format (table, json, yaml)")

	root.AddCommand(date)
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "groupby %s\n", version)
		},
	})
	return root
}

func runDate(cmd *cobra.Command, opts *dateOptions, column string) error {
	log, err := logger.New(opts.logLevel, opts.logFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = log.With("command", dateCommandName)

	in, err := parseFormat(opts.input, groupby.CanDecode)
	if err != nil {
		return err
	}
	out, err := parseFormat(opts.output, groupby.CanEncode)
	if err != nil {
		return err
	}

	doc, err := groupby.Decode(cmd.InOrStdin(), in, "stdin")
	if err != nil {
		log.Debug("decode failed", "format", in, "error", err)
		return err
	}
	rows, err := tableRows(doc)
	if err != nil {
		return err
	}
	log.Debug("decoded input", "format", in, "rows", len(rows))

	pattern := opts.pattern
	if pattern == "" {
		pattern = groupby.DefaultPattern
	}
	grouped, err := groupby.GroupByDate(column, opts.pattern, rows, groupby.Tag(dateCommandName))
	if err != nil {
		var le *groupby.LabeledError
		if errors.As(err, &le) {
			log.Debug("grouping failed", "title", le.Title, "label", le.Label, "span", le.Span.String())
		}
		return err
	}
	if r, ok := grouped.AsRow(); ok {
		log.Info("grouped rows", "column", column, "pattern", pattern, "groups", r.Len())
	}
	return groupby.Write(cmd.OutOrStdout(), out, grouped)
}

// tableRows returns the rows of a decoded document, which must be a table.
func tableRows(doc groupby.Value) ([]groupby.Value, error) {
	rows, ok := doc.AsTable()
	if !ok {
		return nil, fmt.Errorf("%w: decoded %s, expected a table", groupby.ErrDecode, doc.Kind())
	}
	return rows, nil
}

func parseFormat(s string, ok func(groupby.Format) bool) (groupby.Format, error) {
	f, err := groupby.ParseFormat(strings.ToLower(s))
	if err != nil {
		return "", err
	}
	if !ok(f) {
		return "", fmt.Errorf("%w: %q is not available here", groupby.ErrUnsupportedFormat, s)
	}
	return f, nil
}

// Describe renders err for the terminal. Labeled errors show their title,
// label and location on separate lines.
func Describe(err error) string {
	var le *groupby.LabeledError
	if !errors.As(err, &le) {
		return "Error: " + err.Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", le.Title)
	fmt.Fprintf(&sb, "  %s\n", le.Label)
	if !le.Span.IsZero() {
		fmt.Fprintf(&sb, "  at %s\n", le.Span)
	}
	return strings.TrimRight(sb.String(), "\n")
}
