// Package cli implements the raptrainer command line: listing categories and
// themes, drawing words once and console playback.
package cli

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/phrazzld/raptrainer/internal/app"
	"github.com/phrazzld/raptrainer/internal/config"
	"github.com/phrazzld/raptrainer/internal/platform/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // "text" | "json" | "yaml"
	Verbose    bool

	// Fs replaces the host filesystem for word files; tests set it.
	Fs afero.Fs
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command of the raptrainer CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raptrainer",
		Short: "Freestyle rap word trainer",
		Long: `Shows random words from the selected categories, one at a time,
so you can practice rhyming on the spot.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ./raptrainer.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewCategoriesCommand(opts))
	cmd.AddCommand(NewThemesCommand(opts))
	cmd.AddCommand(NewDrawCommand(opts))
	cmd.AddCommand(NewPlayCommand(opts))

	return cmd
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// loadTrainer reads the configuration and word files. seed 0 shuffles randomly.
func loadTrainer(opts *RootOptions, cmd *cobra.Command, f *OutputFormatter, seed uint64) (*app.Trainer, *config.Config, error) {
	cfg, err := config.LoadFrom(opts.ConfigPath)
	if err != nil {
		return nil, nil, fail(f, ExitCommandError, ErrCodeConfig, "failed to load configuration", err)
	}

	// Diagnostics go to stderr; only warnings unless --verbose.
	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: level}, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fail(f, ExitCommandError, ErrCodeConfig, "failed to set up logging", err)
	}

	var appOpts []app.Option
	if opts.Fs != nil {
		appOpts = append(appOpts, app.WithFs(opts.Fs))
	}
	if seed != 0 {
		appOpts = append(appOpts, app.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}

	trainer, err := app.NewTrainer(cfg, log, appOpts...)
	if err != nil {
		return nil, nil, fail(f, ExitCommandError, ErrCodeGeneric, "failed to start trainer", err)
	}

	f.VerboseLog("loaded %d categories from %s", len(trainer.Engine.CategoryIDs()), cfg.Words.Root)
	return trainer, cfg, nil
}
