package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// ThemeList renders as one theme per line.
type ThemeList []string

func (l ThemeList) Text() string {
	if len(l) == 0 {
		return ""
	}
	return strings.Join(l, "\n") + "\n"
}

// NewThemesCommand creates the themes command.
func NewThemesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "themes",
		Short:         "List themes to rap about",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			trainer, _, err := loadTrainer(rootOpts, cmd, f, 0)
			if err != nil {
				return err
			}
			return f.Success(ThemeList(trainer.Service.Themes(cmd.Context()).Themes))
		},
	}
}
