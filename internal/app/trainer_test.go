package app_test

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/phrazzld/raptrainer/internal/app"
	"github.com/phrazzld/raptrainer/internal/config"
	"github.com/phrazzld/raptrainer/internal/wordqueue"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info"},
		Words: config.WordsConfig{
			Root:       "assets/words",
			Extension:  ".csv",
			ThemesFile: "assets/themes.csv",
			Normalize:  true,
		},
		Playback: config.PlaybackConfig{DisplayDelayMS: 2000, Repeat: true},
	}
}

func TestNewTrainer(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "assets/words/word_A.csv", []byte("uno, dos\ntres"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "assets/words/word_B.csv", []byte("cuatro"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "assets/themes.csv", []byte("Amor,Calle"), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	trainer, err := app.NewTrainer(testConfig(), logger,
		app.WithFs(fs),
		app.WithRand(rand.New(rand.NewPCG(1, 1))))
	require.NoError(t, err)

	ctx := context.Background()
	status := trainer.Service.Status(ctx)
	assert.Equal(t, wordqueue.StateReady, status.State)
	assert.Equal(t, []string{"word_A"}, status.ActiveCategories)
	assert.Equal(t, 3, status.PoolSize)
	assert.True(t, status.Repeat)
	assert.Equal(t, 2*time.Second, status.DisplayDelay)

	assert.Equal(t, []string{"Amor", "Calle"}, trainer.Service.Themes(ctx).Themes)
	assert.Equal(t, []string{"word_A", "word_B"}, trainer.Engine.CategoryIDs())
}

func TestNewTrainer_MissingFilesLeaveQueueEmpty(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	trainer, err := app.NewTrainer(testConfig(), logger, app.WithFs(afero.NewMemMapFs()))
	require.NoError(t, err)

	status := trainer.Service.Status(context.Background())
	assert.Equal(t, 0, status.PoolSize)
	assert.Empty(t, trainer.Service.Categories(context.Background()))
}
