package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greatbody/gbkit/internal/converter"
	"github.com/greatbody/gbkit/internal/filter"
	"github.com/greatbody/gbkit/internal/transcoder"
)

type convertOptions struct {
	to      string
	from    string
	noInfer bool
	replace bool
	force   bool
}

func newConvertCommand(a *app) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a text file between UTF-8 and GBK",
		Long: `Convert a text file between UTF-8 and GBK. The result is written next to the
source as <name>-<ENCODING>.txt, replacing any file already there.

Unless --from is given, the source is assumed to be in the other encoding:
converting to GBK reads UTF-8 and converting to UTF-8 reads GBK.`,
		Example: "  gbkit convert notes.txt --to GBK\n  gbkit convert legacy.txt --to UTF-8 --from GBK",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, a, args[0], opts)
		},
	}

	names := make([]string, 0, len(transcoder.Supported()))
	for _, e := range transcoder.Supported() {
		names = append(names, e.String())
	}
	choices := strings.Join(names, ", ")

	cmd.Flags().StringVar(&opts.to, "to", "", "Target encoding: "+choices+" (default from config)")
	cmd.Flags().StringVar(&opts.from, "from", "", "Source encoding, overriding inference: "+choices)
	cmd.Flags().BoolVar(&opts.noInfer, "no-infer", false, "Read the source in the target encoding instead of the opposite one")
	cmd.Flags().BoolVar(&opts.replace, "replace", false, "Substitute characters the target cannot encode instead of failing")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Convert files whose extension is not in the allowed list")
	return cmd
}

func runConvert(cmd *cobra.Command, a *app, path string, opts convertOptions) error {
	if !opts.force && !filter.NewFilter(a.cfg.AllowedExtensions).Allowed(path) {
		return fmt.Errorf("refusing to convert %s: extension not in %v (use --force)", path, a.cfg.AllowedExtensions)
	}

	target := opts.to
	if target == "" {
		target = a.cfg.DefaultTarget
	}
	replace := *a.cfg.ReplaceUnsupported
	if cmd.Flags().Changed("replace") {
		replace = opts.replace
	}

	c := converter.New(converter.Options{
		InferSourceEncoding: *a.cfg.InferSource && !opts.noInfer,
		ReplaceUnsupported:  replace,
		Logger:              a.logger,
	})

	res, err := c.Convert(converter.Request{SourcePath: path, Target: target, Source: opts.from})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s (%s -> %s, %d bytes)\n", res.OutputPath, res.Source, res.Target, res.BytesWritten)
	return nil
}
