// Package cli wires the gbkit commands to the inspector and converter.
package cli

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/greatbody/gbkit/internal/config"
)

const defaultConfigPath = "gbkit.json"

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the gbkit command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gbkit",
		Short: "Inspect character encodings and convert text files between UTF-8 and GBK",
		Long: `gbkit shows how each character of a text is stored in UTF-8, UTF-16 and as a
Unicode code point, and converts .txt files between UTF-8 and GBK.

A converted file is written next to its source as <name>-<ENCODING>.txt.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath, "Path to a JSON or TOML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug details to stderr")

	root.AddCommand(
		newInspectCommand(a),
		newConvertCommand(a),
		newDetectCommand(a),
		newCodecsCommand(a),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadConfig(a.configPath)
	switch {
	case err == nil:
		a.cfg = cfg
	case errors.Is(err, fs.ErrNotExist):
		if cmd.Flags().Changed("config") {
			a.logger.Warn("could not load config, using default values", "path", a.configPath, "error", err)
		} else {
			a.logger.Debug("no config file, using default values", "path", a.configPath)
		}
		a.cfg = config.DefaultConfig()
	default:
		return err
	}
	return nil
}
