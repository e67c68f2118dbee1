package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/shapestone/csvstream/pkg/csv"
)

// sniffSize is how much input -d auto inspects.
const sniffSize = 16 << 10

// cutOptions holds the parsed command line flags.
type cutOptions struct {
	delimiter    string
	quote        string
	columns      []string
	outDelimiter string
	json         bool
	table        bool
	typed        bool
	locale       string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &cutOptions{}
	cmd := &cobra.Command{
		Use:   "csvcut [csv_file]",
		Short: "Select columns from a CSV file by header name",
		Long: `csvcut reads CSV from a file, or from standard input when no file is given,
and writes the selected columns as CSV, newline-delimited JSON or an aligned table.
The first line of the input is the header.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return run(in, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.delimiter, "delimiter", "d", ",", "input field delimiter (use \\t for tab, auto to detect)")
	flags.StringVarP(&opts.quote, "quote", "q", `"`, "quote character")
	flags.StringSliceVarP(&opts.columns, "columns", "c", nil, "comma separated column names to keep (default all)")
	flags.StringVar(&opts.outDelimiter, "out-delimiter", "", "output field delimiter (default same as input)")
	flags.BoolVar(&opts.json, "json", false, "write one JSON object per row")
	flags.BoolVar(&opts.table, "table", false, "write an aligned text table")
	flags.BoolVar(&opts.typed, "typed", false, "with --json, emit numeric fields as JSON numbers")
	flags.StringVar(&opts.locale, "locale", "", "BCP 47 locale for numeric fields, e.g. en or de")
	cmd.MarkFlagsMutuallyExclusive("json", "table")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "csvcut:", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out, errOut io.Writer, opts *cutOptions) error {
	var comma rune
	var err error
	if opts.delimiter == "auto" {
		br := bufio.NewReaderSize(in, sniffSize)
		// Peek returns what it could read along with any error.
		sample, _ := br.Peek(sniffSize)
		comma = csv.DetectDelimiter(string(sample))
		in = br
	} else if comma, err = parseRune("delimiter", opts.delimiter); err != nil {
		return err
	}
	quote, err := parseRune("quote", opts.quote)
	if err != nil {
		return err
	}
	outComma := comma
	if opts.outDelimiter != "" {
		if outComma, err = parseRune("out-delimiter", opts.outDelimiter); err != nil {
			return err
		}
	}
	tag := language.Und
	if opts.locale != "" {
		if tag, err = language.Parse(opts.locale); err != nil {
			return fmt.Errorf("invalid locale %q: %w", opts.locale, err)
		}
	}

	ro := csv.DefaultReaderOptions()
	ro.Comma, ro.Quote, ro.Locale = comma, quote, tag
	if err := ro.Validate(); err != nil {
		return err
	}
	wo := csv.DefaultWriterOptions()
	wo.Comma, wo.Quote = outComma, quote
	if err := wo.Validate(); err != nil {
		return err
	}

	s := csv.NewScanner(in, csv.WithComma(comma), csv.WithQuote(quote), csv.WithLocale(tag))
	rows, err := csv.NewMapRowReader(s)
	if err != nil {
		return err
	}
	rows.SetWarningHandler(func(line int, message string) {
		fmt.Fprintf(errOut, "csvcut: line %d: %s\n", line, message)
	})

	sel, err := newSelection(rows.Header(), opts.columns)
	if err != nil {
		return err
	}

	var sink rowSink
	switch {
	case opts.json:
		sink = newJSONSink(out, sel, opts.typed, tag)
	case opts.table:
		sink = newTableSink(out, sel)
	default:
		sink = newCSVSink(out, sel, csv.WithComma(outComma), csv.WithQuote(quote))
	}

	if err := sink.begin(); err != nil {
		return err
	}
	for row := range rows.All() {
		if err := sink.write(sel.values(row)); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return sink.end()
}

// parseRune accepts a single character or one of the escapes \t and tab.
func parseRune(flag, value string) (rune, error) {
	switch strings.ToLower(value) {
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("--%s must be a single character, got %q", flag, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}
