package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/raptrainer/internal/api"
	"github.com/phrazzld/raptrainer/internal/api/shared"
	"github.com/phrazzld/raptrainer/internal/domain"
	"github.com/phrazzld/raptrainer/internal/service"
	"github.com/phrazzld/raptrainer/internal/wordqueue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) LoadCategories() []domain.Category {
	return []domain.Category{
		{ID: "word_Verbos_s1es", Words: []string{"correr", "saltar"}},
		{ID: "word_Calle", Words: []string{"barrio"}},
	}
}

func (stubSource) LoadThemes() []string { return []string{"Amor", "Calle"} }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTrainerRouter(t *testing.T) http.Handler {
	t.Helper()
	engine := wordqueue.NewEngine(stubSource{}, discard(), wordqueue.WithRand(rand.New(rand.NewPCG(3, 4))))
	engine.Initialize()

	svc, err := service.NewTrainerService(engine, nil, discard())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/api", api.NewTrainerHandler(svc, discard()).Mount)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestNextWord(t *testing.T) {
	h := newTrainerRouter(t)

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		w := do(t, h, http.MethodGet, "/api/words/next", "")
		require.Equal(t, http.StatusOK, w.Code)
		word := decode[api.WordResponse](t, w)
		seen[word.Word] = true
		assert.Equal(t, 1-i, word.Remaining)
	}
	assert.Equal(t, map[string]bool{"correr": true, "saltar": true}, seen)

	w := do(t, h, http.MethodGet, "/api/words/next", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	queue := decode[map[string]interface{}](t, do(t, h, http.MethodGet, "/api/queue", ""))
	assert.Equal(t, "exhausted", queue["state"])
	assert.Equal(t, float64(5000), queue["display_delay_ms"])

	w = do(t, h, http.MethodPost, "/api/queue/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	reset := decode[api.QueueResponse](t, w)
	assert.Equal(t, wordqueue.StateReady, reset.State)
	assert.Equal(t, 2, reset.Remaining)
}

func TestCategories(t *testing.T) {
	h := newTrainerRouter(t)

	w := do(t, h, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	views := decode[[]service.CategoryView](t, w)
	require.Len(t, views, 2)
	assert.Equal(t, "Verbos (s/es) ", views[0].Label)
	assert.True(t, views[0].Selected)
	assert.False(t, views[1].Selected)

	t.Run("patch flags without committing", func(t *testing.T) {
		w := do(t, h, http.MethodPatch, "/api/categories/1", `{"selected": true}`)
		require.Equal(t, http.StatusOK, w.Code)
		views := decode[[]service.CategoryView](t, w)
		assert.True(t, views[1].Selected)

		queue := decode[api.QueueResponse](t, do(t, h, http.MethodGet, "/api/queue", ""))
		assert.Equal(t, 2, queue.PoolSize)

		applied := decode[api.QueueResponse](t, do(t, h, http.MethodPost, "/api/categories/apply", ""))
		assert.Equal(t, 3, applied.PoolSize)
		assert.Equal(t, []string{"word_Verbos_s1es", "word_Calle"}, applied.ActiveCategories)
	})

	t.Run("patch unknown index", func(t *testing.T) {
		w := do(t, h, http.MethodPatch, "/api/categories/9", `{"selected": true}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Category not found", decode[shared.ErrorResponse](t, w).Error)
	})

	t.Run("patch non-numeric index", func(t *testing.T) {
		w := do(t, h, http.MethodPatch, "/api/categories/abc", `{"selected": true}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid category index", decode[shared.ErrorResponse](t, w).Error)
	})

	t.Run("patch without flag", func(t *testing.T) {
		w := do(t, h, http.MethodPatch, "/api/categories/0", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid selected: required field", decode[shared.ErrorResponse](t, w).Error)
	})

	t.Run("replace selection", func(t *testing.T) {
		w := do(t, h, http.MethodPut, "/api/categories/selection", `{"selected": [false, true]}`)
		require.Equal(t, http.StatusOK, w.Code)
		queue := decode[api.QueueResponse](t, w)
		assert.Equal(t, []string{"word_Calle"}, queue.ActiveCategories)
		assert.Equal(t, 1, queue.PoolSize)
	})

	t.Run("replace selection with wrong length", func(t *testing.T) {
		w := do(t, h, http.MethodPut, "/api/categories/selection", `{"selected": [true]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Selection must have one flag per category", decode[shared.ErrorResponse](t, w).Error)
	})

	t.Run("deselect all then apply empties the pool", func(t *testing.T) {
		require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/categories/deselect-all", "").Code)
		queue := decode[api.QueueResponse](t, do(t, h, http.MethodPost, "/api/categories/apply", ""))
		assert.Equal(t, 0, queue.PoolSize)
		assert.Equal(t, []string{}, queue.ActiveCategories)
		assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodGet, "/api/words/next", "").Code)
	})

	t.Run("select all", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/categories/select-all", "")
		views := decode[[]service.CategoryView](t, w)
		for _, v := range views {
			assert.True(t, v.Selected)
		}
	})
}

func TestSettings(t *testing.T) {
	h := newTrainerRouter(t)

	got := decode[api.SettingsResponse](t, do(t, h, http.MethodGet, "/api/settings", ""))
	assert.Equal(t, api.SettingsResponse{DisplayDelayMS: 5000}, got)

	tests := []struct {
		name     string
		body     string
		status   int
		expected string
	}{
		{name: "lower bound", body: `{"display_delay_ms": 1000}`, status: http.StatusOK},
		{name: "upper bound", body: `{"display_delay_ms": 30000}`, status: http.StatusOK},
		{name: "too small", body: `{"display_delay_ms": 999}`, status: http.StatusBadRequest, expected: "Invalid display_delay_ms: too small"},
		{name: "too large", body: `{"display_delay_ms": 30001}`, status: http.StatusBadRequest, expected: "Invalid display_delay_ms: too large"},
		{name: "unknown field", body: `{"delay": 2000}`, status: http.StatusBadRequest, expected: "Invalid request format"},
		{name: "malformed", body: `{`, status: http.StatusBadRequest, expected: "Invalid request format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, h, http.MethodPut, "/api/settings", tc.body)
			assert.Equal(t, tc.status, w.Code)
			if tc.expected != "" {
				assert.Equal(t, tc.expected, decode[shared.ErrorResponse](t, w).Error)
			}
		})
	}

	w := do(t, h, http.MethodPut, "/api/settings", `{"repeat": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, api.SettingsResponse{DisplayDelayMS: 30000, Repeat: true}, decode[api.SettingsResponse](t, w))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/words/next", "").Code)
	}
}

func TestThemes(t *testing.T) {
	h := newTrainerRouter(t)

	got := decode[service.ThemesView](t, do(t, h, http.MethodGet, "/api/themes", ""))
	assert.Equal(t, service.ThemesView{Themes: []string{"Amor", "Calle"}}, got)

	w := do(t, h, http.MethodPut, "/api/themes/current", `{"theme": "Amor"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Amor", decode[service.ThemesView](t, w).Current)

	w = do(t, h, http.MethodPut, "/api/themes/current", `{"theme": "Nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown theme", decode[shared.ErrorResponse](t, w).Error)

	w = do(t, h, http.MethodPut, "/api/themes/current", `{"theme": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReload(t *testing.T) {
	h := newTrainerRouter(t)

	do(t, h, http.MethodPost, "/api/categories/select-all", "")
	do(t, h, http.MethodPost, "/api/categories/apply", "")

	w := do(t, h, http.MethodPost, "/api/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"word_Verbos_s1es"}, decode[api.QueueResponse](t, w).ActiveCategories)
}

func TestNewTrainerHandler_Panics(t *testing.T) {
	engine := wordqueue.NewEngine(stubSource{}, discard())
	svc, err := service.NewTrainerService(engine, nil, discard())
	require.NoError(t, err)

	assert.Panics(t, func() { api.NewTrainerHandler(nil, discard()) })
	assert.Panics(t, func() { api.NewTrainerHandler(svc, nil) })
}

