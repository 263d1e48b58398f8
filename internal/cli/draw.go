package cli

import (
	"errors"
	"strings"

	"github.com/phrazzld/raptrainer/internal/service"
	"github.com/spf13/cobra"
)

// DrawResult is the words drawn, in order.
type DrawResult struct {
	Words []string `json:"words" yaml:"words"`
}

func (r DrawResult) Text() string {
	return strings.Join(r.Words, "\n") + "\n"
}

// DrawOptions holds flags for the draw command.
type DrawOptions struct {
	selectionFlags
	Count int
}

// NewDrawCommand creates the draw command.
func NewDrawCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DrawOptions{}

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Print a shuffled pass over the selected categories",
		Long: `Print every word of the selected categories once, in random order.

With --count the queue reshuffles whenever it runs out, so exactly N words
are printed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraw(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Categories, "category", "c", nil, "category ids to draw from")
	cmd.Flags().BoolVar(&opts.All, "all", false, "draw from every category")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", 0, "number of words (0 drains the queue once)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "shuffle seed for a reproducible order")

	return cmd
}

func runDraw(rootOpts *RootOptions, opts *DrawOptions, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)
	ctx := cmd.Context()

	if opts.Count < 0 {
		return fail(f, ExitCommandError, ErrCodeGeneric, "--count must not be negative", nil)
	}

	trainer, _, err := loadTrainer(rootOpts, cmd, f, opts.Seed)
	if err != nil {
		return err
	}

	if err := opts.apply(ctx, trainer); err != nil {
		return fail(f, ExitCommandError, ErrCodeUnknownCategory, "invalid category selection", err)
	}

	if opts.Count > 0 {
		repeat := true
		trainer.Service.UpdateSettings(ctx, service.SettingsUpdate{Repeat: &repeat})
	}

	words := []string{}
	for opts.Count == 0 || len(words) < opts.Count {
		w, err := trainer.Service.NextWord(ctx)
		if errors.Is(err, service.ErrNoWords) {
			break
		}
		if err != nil {
			return fail(f, ExitFailure, ErrCodeGeneric, "failed to draw word", err)
		}
		words = append(words, w.Text)
	}

	if len(words) == 0 {
		return fail(f, ExitFailure, ErrCodeNoWords, "no words in the selected categories", nil)
	}

	f.VerboseLog("drew %d words", len(words))
	return f.Success(DrawResult{Words: words})
}
