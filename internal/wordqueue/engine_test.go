package wordqueue_test

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/phrazzld/raptrainer/internal/domain"
	"github.com/phrazzld/raptrainer/internal/wordqueue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves fixed categories and counts loads.
type fakeSource struct {
	categories []domain.Category
	themes     []string
	loads      int
}

func (s *fakeSource) LoadCategories() []domain.Category {
	s.loads++
	return s.categories
}

func (s *fakeSource) LoadThemes() []string {
	return s.themes
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// exampleSource is the cache {"a": [x y], "b": [z]}.
func exampleSource() *fakeSource {
	return &fakeSource{
		categories: []domain.Category{
			{ID: "a", Words: []string{"x", "y"}},
			{ID: "b", Words: []string{"z"}},
		},
		themes: []string{"Amor", "Calle"},
	}
}

func newEngine(t *testing.T, src wordqueue.Source, opts ...wordqueue.Option) *wordqueue.Engine {
	t.Helper()
	opts = append([]wordqueue.Option{wordqueue.WithRand(seeded())}, opts...)
	e := wordqueue.NewEngine(src, discardLogger(), opts...)
	e.Initialize()
	return e
}

// drain calls Next until it reports no word, failing after limit calls.
func drain(t *testing.T, e *wordqueue.Engine, limit int) []string {
	t.Helper()
	var words []string
	for i := 0; i < limit; i++ {
		w, ok := e.Next()
		if !ok {
			return words
		}
		words = append(words, w)
	}
	t.Fatalf("queue did not exhaust within %d calls", limit)
	return nil
}

func TestExampleScenario(t *testing.T) {
	t.Parallel()
	e := newEngine(t, exampleSource())

	assert.Equal(t, []bool{true, false}, e.SelectedCategories())
	assert.Equal(t, []string{"a"}, e.ActiveCategories())
	assert.Equal(t, []string{"x", "y"}, e.Pool())

	first, ok := e.Next()
	require.True(t, ok)
	second, ok := e.Next()
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"x", "y"}, []string{first, second})

	w, ok := e.Next()
	assert.False(t, ok)
	assert.Empty(t, w)
	assert.True(t, e.IsExhausted())
	assert.Equal(t, wordqueue.StateExhausted, e.State())

	require.NoError(t, e.SetSelected(1, true))
	e.ApplySelection()

	assert.Equal(t, []string{"x", "y", "z"}, e.Pool())
	assert.Equal(t, wordqueue.StateReady, e.State())
	assert.ElementsMatch(t, []string{"x", "y", "z"}, drain(t, e, 10))
}

func TestUninitializedEngine(t *testing.T) {
	t.Parallel()
	e := wordqueue.NewEngine(exampleSource(), discardLogger())

	assert.Equal(t, wordqueue.StateUninitialized, e.State())
	_, ok := e.Next()
	assert.False(t, ok)
	assert.Empty(t, e.ButtonLabels())
	assert.Empty(t, e.SelectedCategories())
	assert.True(t, errors.Is(e.SetSelected(0, true), domain.ErrCategoryIndex))
}

func TestDrainReturnsPoolMultiset(t *testing.T) {
	t.Parallel()
	src := &fakeSource{categories: []domain.Category{
		{ID: "a", Words: []string{"uno", "dos", "tres", "dos"}},
		{ID: "b", Words: []string{"cuatro", "cinco"}},
	}}
	e := newEngine(t, src)
	e.SelectAll()
	e.ApplySelection()

	words := drain(t, e, 100)

	assert.ElementsMatch(t, e.Pool(), words)
	assert.Len(t, words, 6)
	assert.Equal(t, 0, e.Remaining())
}

func TestResetAndShuffleRefillsQueue(t *testing.T) {
	t.Parallel()
	e := newEngine(t, exampleSource())
	e.SelectAll()
	e.ApplySelection()

	first := drain(t, e, 10)
	e.ResetAndShuffle()
	assert.Equal(t, 3, e.Remaining())
	second := drain(t, e, 10)

	assert.ElementsMatch(t, first, second)
}

func TestShuffleOrderVariesBetweenResets(t *testing.T) {
	t.Parallel()
	src := &fakeSource{categories: []domain.Category{
		{ID: "a", Words: []string{"a", "b", "c", "d", "e", "f"}},
	}}
	e := newEngine(t, src)

	orders := map[string]bool{}
	for i := 0; i < 50; i++ {
		e.ResetAndShuffle()
		key := ""
		for _, w := range drain(t, e, 10) {
			key += w
		}
		orders[key] = true
	}

	// 6! = 720 orders; 50 draws landing on a single one is practically impossible
	assert.Greater(t, len(orders), 10)
}

func TestShuffleIsUniform(t *testing.T) {
	t.Parallel()
	words := []string{"a", "b", "c", "d"}
	src := &fakeSource{categories: []domain.Category{{ID: "a", Words: words}}}
	e := newEngine(t, src)

	const trials = 8000
	counts := map[string][]int{}
	for _, w := range words {
		counts[w] = make([]int, len(words))
	}
	for i := 0; i < trials; i++ {
		e.ResetAndShuffle()
		for pos := range words {
			w, ok := e.Next()
			require.True(t, ok)
			counts[w][pos]++
		}
	}

	expected := float64(trials) / float64(len(words))
	chi := 0.0
	for _, perPos := range counts {
		for _, observed := range perPos {
			d := float64(observed) - expected
			chi += d * d / expected
		}
	}

	// 9 degrees of freedom; 40 is far beyond the p=0.001 critical value (27.9)
	assert.Less(t, chi, 40.0, "word/position distribution is not uniform: chi2=%.2f", chi)
}

func TestEmptyPoolNeverLoops(t *testing.T) {
	t.Parallel()
	e := newEngine(t, exampleSource())
	e.DeselectAll()
	e.ApplySelection()

	for _, repeat := range []bool{false, true} {
		e.SetRepeat(repeat)
		w, ok := e.Next()
		assert.False(t, ok, "repeat=%v", repeat)
		assert.Empty(t, w)
		assert.True(t, e.IsExhausted())
	}
	assert.Empty(t, e.Pool())
	assert.Empty(t, e.ActiveCategories())
}

func TestRepeatServesConcatenatedPermutations(t *testing.T) {
	t.Parallel()
	e := newEngine(t, exampleSource(), wordqueue.WithRepeat(true))
	e.SelectAll()
	e.ApplySelection()

	const rounds = 5
	pool := e.Pool()
	n := len(pool)

	var words []string
	for i := 0; i < n*rounds; i++ {
		w, ok := e.Next()
		require.True(t, ok, "repeat must never report exhaustion")
		words = append(words, w)
	}

	for k := 0; k < rounds; k++ {
		assert.ElementsMatch(t, pool, words[k*n:(k+1)*n], "round %d", k)
	}
	assert.True(t, e.Repeat())
}

func TestApplySelectionFollowsCacheOrder(t *testing.T) {
	t.Parallel()
	src := &fakeSource{categories: []domain.Category{
		{ID: "c1", Words: []string{"1a", "1b"}},
		{ID: "c2", Words: []string{"2a"}},
		{ID: "c3", Words: []string{"3a", "3b"}},
	}}
	e := newEngine(t, src)

	require.NoError(t, e.SetSelection([]bool{false, true, true}))
	// flags alone do not touch the pool
	assert.Equal(t, []string{"1a", "1b"}, e.Pool())

	_, _ = e.Next()
	e.ApplySelection()

	assert.Equal(t, []string{"c2", "c3"}, e.ActiveCategories())
	assert.Equal(t, []string{"2a", "3a", "3b"}, e.Pool())
	assert.Equal(t, 3, e.Remaining(), "cursor is rewound")
	assert.ElementsMatch(t, e.Pool(), drain(t, e, 10))
}

func TestSelectAllUsesEveryCategory(t *testing.T) {
	t.Parallel()
	e := newEngine(t, exampleSource())

	e.SelectAll()
	assert.Equal(t, []bool{true, true}, e.SelectedCategories())
	e.ApplySelection()

	assert.Equal(t, []string{"x", "y", "z"}, e.Pool())
}

func TestSelectionErrors(t *testing.T) {
	t.Parallel()
	e := newEngine(t, exampleSource())

	assert.True(t, errors.Is(e.SetSelected(-1, true), domain.ErrCategoryIndex))
	assert.True(t, errors.Is(e.SetSelected(2, true), domain.ErrCategoryIndex))
	assert.True(t, errors.Is(e.SetSelection([]bool{true}), domain.ErrSelectionLength))
	assert.Equal(t, []bool{true, false}, e.SelectedCategories())
}

func TestSelectedCategoriesIsACopy(t *testing.T) {
	t.Parallel()
	e := newEngine(t, exampleSource())

	flags := e.SelectedCategories()
	flags[1] = true
	e.ApplySelection()

	assert.Equal(t, []bool{true, false}, e.SelectedCategories())
	assert.Equal(t, []string{"x", "y"}, e.Pool())
}

func TestInitializeResetsSelection(t *testing.T) {
	t.Parallel()
	src := exampleSource()
	e := newEngine(t, src)
	e.SelectAll()
	e.ApplySelection()

	e.Initialize()

	assert.Equal(t, 2, src.loads)
	assert.Equal(t, []bool{true, false}, e.SelectedCategories())
	assert.Equal(t, []string{"x", "y"}, e.Pool())
}

func TestInitializeWithoutCategories(t *testing.T) {
	t.Parallel()
	e := newEngine(t, &fakeSource{})

	assert.Equal(t, wordqueue.StateExhausted, e.State())
	assert.Empty(t, e.SelectedCategories())
	_, ok := e.Next()
	assert.False(t, ok)
}

func TestButtonLabels(t *testing.T) {
	t.Parallel()
	src := &fakeSource{categories: []domain.Category{
		{ID: "word_Verbos_s1es", Words: []string{"a"}},
		{ID: "word_Sust_s1es_2", Words: []string{"b"}},
		{ID: "word_Rimas", Words: []string{"c"}},
		{ID: "plain", Words: []string{"d"}},
	}}
	e := newEngine(t, src)

	assert.Equal(t, []string{"Verbos (s/es) ", "Sust (s/es) 2", "Rimas", "plain"}, e.ButtonLabels())
}

func TestThemesReturnsCopy(t *testing.T) {
	t.Parallel()
	e := newEngine(t, exampleSource())

	themes := e.Themes()
	themes[0] = "changed"

	assert.Equal(t, []string{"Amor", "Calle"}, e.Themes())
}

func TestSettingsAccessors(t *testing.T) {
	t.Parallel()
	e := newEngine(t, exampleSource())

	assert.Equal(t, wordqueue.DefaultDisplayDelay, e.DisplayDelay())
	e.SetDisplayDelay(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, e.DisplayDelay(), "no bounds are enforced")

	assert.False(t, e.Repeat())
	e.SetRepeat(true)
	assert.True(t, e.Repeat())
}

func TestSnapshot(t *testing.T) {
	t.Parallel()
	e := newEngine(t, exampleSource(), wordqueue.WithDisplayDelay(time.Second))
	_, _ = e.Next()

	s := e.Snapshot()

	assert.Equal(t, wordqueue.StateReady, s.State)
	assert.Equal(t, 2, s.PoolSize)
	assert.Equal(t, 1, s.Position)
	assert.Equal(t, 1, s.Remaining)
	assert.Equal(t, time.Second, s.DisplayDelay)
	assert.Equal(t, []string{"a"}, s.ActiveCategories)
	assert.Equal(t, "ready", s.State.String())
}

func TestNewEnginePanicsWithoutDependencies(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { wordqueue.NewEngine(nil, discardLogger()) })
	assert.Panics(t, func() { wordqueue.NewEngine(exampleSource(), nil) })
}
