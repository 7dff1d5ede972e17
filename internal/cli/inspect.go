package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/greatbody/gbkit/internal/config"
	"github.com/greatbody/gbkit/internal/inspector"
)

type inspectOptions struct {
	json    bool
	tooltip bool
	color   string
}

func newInspectCommand(a *app) *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect [text...]",
		Short: "Show the UTF-8, UTF-16 and Unicode encoding of each character",
		Long: `Show the UTF-8, UTF-16 and Unicode encoding of each character of the given
text. Arguments are joined with single spaces; with no arguments the text is
read from standard input.`,
		Example: "  gbkit inspect 中文A\n  echo -n 😀 | gbkit inspect --json",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inspectInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return runInspect(a, cmd.OutOrStdout(), text, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&opts.tooltip, "tooltip", false, "Print a description block per character instead of a table")
	cmd.Flags().StringVar(&opts.color, "color", "", "Color UTF-8 cells: auto, always or never (default from config)")
	return cmd
}

func inspectInput(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func runInspect(a *app, out io.Writer, text string, opts inspectOptions) error {
	chars := inspector.InspectString(text)
	a.logger.Debug("inspected text", "chars", len(chars), "bytes", len(text))

	if opts.json {
		data, err := json.MarshalIndent(chars, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if opts.tooltip {
		for i, c := range chars {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, inspector.Tooltip(c))
		}
		return nil
	}

	mode := opts.color
	switch mode {
	case "":
		mode = a.cfg.Color
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return fmt.Errorf("invalid --color %q: want auto, always or never", mode)
	}
	pal := newPalette(colorEnabled(mode, out), nil)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHAR\tUNICODE\tUTF-16\tUTF-8")
	for _, c := range chars {
		// UTF-8 is last so escape codes never skew the column widths.
		fmt.Fprintf(w, "%s\tU+%s\t%s\t%s\n", displayChar(c.Rune), c.UnicodeHex, c.UTF16Hex, pal.paint(c.Char, c.UTF8Hex))
	}
	return w.Flush()
}

// displayChar renders control and other invisible characters as escapes.
func displayChar(r rune) string {
	if unicode.IsPrint(r) {
		return string(r)
	}
	q := strconv.QuoteRune(r)
	return q[1 : len(q)-1]
}
