package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// CategoryRow is one line of the categories listing.
type CategoryRow struct {
	Index    int    `json:"index"    yaml:"index"`
	ID       string `json:"id"       yaml:"id"`
	Label    string `json:"label"    yaml:"label"`
	Words    int    `json:"words"    yaml:"words"`
	Selected bool   `json:"selected" yaml:"selected"`
}

// CategoryList renders as one line per category; "*" marks the default
// selection.
type CategoryList []CategoryRow

func (l CategoryList) Text() string {
	var b strings.Builder
	for _, row := range l {
		mark := " "
		if row.Selected {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s %d. %s [%s] (%d)\n", mark, row.Index, strings.TrimSpace(row.Label), row.ID, row.Words)
	}
	return b.String()
}

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "categories",
		Short:         "List word categories",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			trainer, _, err := loadTrainer(rootOpts, cmd, f, 0)
			if err != nil {
				return err
			}

			views := trainer.Service.Categories(cmd.Context())
			list := make(CategoryList, 0, len(views))
			for _, v := range views {
				list = append(list, CategoryRow{
					Index:    v.Index,
					ID:       v.ID,
					Label:    v.Label,
					Words:    v.WordCount,
					Selected: v.Selected,
				})
			}
			return f.Success(list)
		},
	}
}
