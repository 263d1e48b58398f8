package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/phrazzld/raptrainer/internal/app"
)

// selectionFlags are shared by draw and play.
type selectionFlags struct {
	Categories []string
	All        bool
	Seed       uint64
}

// apply commits the requested selection. Without flags the default
// selection (the first category) is kept.
func (s selectionFlags) apply(ctx context.Context, trainer *app.Trainer) error {
	switch {
	case s.All:
		trainer.Service.SelectAll(ctx)
		trainer.Service.ApplySelection(ctx)
		return nil
	case len(s.Categories) == 0:
		return nil
	}

	ids := trainer.Engine.CategoryIDs()
	flags := make([]bool, len(ids))
	var unknown []string
	for _, want := range s.Categories {
		found := false
		for i, id := range ids {
			if id == want {
				flags[i] = true
				found = true
			}
		}
		if !found {
			unknown = append(unknown, want)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown categories: %s", strings.Join(unknown, ", "))
	}

	_, err := trainer.Service.SetSelection(ctx, flags)
	return err
}
