package wordqueue_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/phrazzld/raptrainer/internal/wordqueue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_JSON(t *testing.T) {
	data, err := json.Marshal(wordqueue.Status{State: wordqueue.StateExhausted})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"state":"exhausted"`)

	var status wordqueue.Status
	require.NoError(t, json.Unmarshal(data, &status))
	assert.Equal(t, wordqueue.StateExhausted, status.State)

	var s wordqueue.State
	assert.Error(t, s.UnmarshalText([]byte("sleeping")))
	assert.Equal(t, "unknown", wordqueue.State(9).String())
}

func TestStatus_JSONDelayInMilliseconds(t *testing.T) {
	data, err := json.Marshal(wordqueue.Status{
		State:            wordqueue.StateReady,
		PoolSize:         3,
		DisplayDelay:     2500 * time.Millisecond,
		ActiveCategories: []string{"word_Calle"},
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"display_delay_ms":2500`)
	assert.NotContains(t, string(data), `"display_delay":`)
	assert.Contains(t, string(data), `"pool_size":3`)

	var status wordqueue.Status
	require.NoError(t, json.Unmarshal(data, &status))
	assert.Equal(t, 2500*time.Millisecond, status.DisplayDelay)
	assert.Equal(t, []string{"word_Calle"}, status.ActiveCategories)
	assert.Equal(t, wordqueue.StateReady, status.State)
}
