package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/greatbody/gbkit/internal/transcoder"
)

func newCodecsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "codecs",
		Short: "List the encodings gbkit can convert between",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ENCODING\tAVAILABLE\tNATIVE")
			for _, e := range transcoder.Supported() {
				native := "-"
				if e == transcoder.EncodingGBK {
					native = yesNo(transcoder.GBKIsNative())
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e, yesNo(transcoder.DefaultRegistry.SupportsEncoding(e)), native)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if cp, ok := transcoder.NativeCodePage(); ok {
				fmt.Fprintf(out, "\nactive code page: %d\n", cp)
			}
			a.logger.Debug("listed codecs", "default_target", a.cfg.DefaultTarget)
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
