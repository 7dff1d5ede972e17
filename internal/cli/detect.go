package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/greatbody/gbkit/internal/transcoder"
)

type detectReport struct {
	Path      string            `json:"path"`
	Encoding  string            `json:"encoding"`
	Guess     *transcoder.Guess `json:"guess,omitempty"`
	Suggested string            `json:"suggested_target"`
	Preview   string            `json:"preview"`
}

// previewRunes caps the decoded first line shown by detect.
const previewRunes = 60

func newDetectCommand(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "detect FILE",
		Short: "Report whether a file looks like UTF-8 or GBK",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := detectFile(a, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "%s: %s\n", report.Path, report.Encoding)
			if report.Preview != "" {
				fmt.Fprintf(out, "  preview: %s\n", report.Preview)
			}
			if report.Guess != nil {
				fmt.Fprintf(out, "  chardet: %s", report.Guess.Charset)
				if report.Guess.Language != "" {
					fmt.Fprintf(out, " (%s)", report.Guess.Language)
				}
				fmt.Fprintf(out, ", confidence %d%%\n", report.Guess.Confidence)
			}
			fmt.Fprintf(out, "  suggested: gbkit convert %s --to %s\n", report.Path, report.Suggested)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func detectFile(a *app, path string) (*detectReport, error) {
	// #nosec G304 - the user names the file to inspect
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, transcoder.DetectionBufferSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	enc := transcoder.DetectEncoding(head)
	report := &detectReport{
		Path:      path,
		Encoding:  enc.String(),
		Suggested: transcoder.Complement(enc).String(),
	}

	preview, err := decodePreview(enc, head)
	if err != nil {
		return nil, err
	}
	report.Preview = preview

	guess, err := transcoder.GuessCharset(head)
	switch {
	case err == nil:
		report.Guess = &guess
	case errors.Is(err, transcoder.ErrNoGuess):
		a.logger.Debug("chardet found no candidate", "path", path, "error", err)
	default:
		return nil, err
	}
	return report, nil
}

// decodePreview returns the first line of head decoded from enc, cut to
// previewRunes characters.
func decodePreview(enc transcoder.Encoding, head []byte) (string, error) {
	r, err := transcoder.StreamDecode(transcoder.DefaultRegistry, enc, bytes.NewReader(head))
	if err != nil {
		return "", err
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to decode preview: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimPrefix(line, "\uFEFF")

	if utf8.RuneCountInString(line) > previewRunes {
		line = string([]rune(line)[:previewRunes]) + "..."
	}
	return line, nil
}
