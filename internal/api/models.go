package api

import (
	"github.com/phrazzld/raptrainer/internal/playback"
	"github.com/phrazzld/raptrainer/internal/service"
	"github.com/phrazzld/raptrainer/internal/wordqueue"
)

// Request bodies

// SelectionRequest replaces every category flag and commits the selection.
type SelectionRequest struct {
	Selected []bool `json:"selected" validate:"required"`
}

// CategoryFlagRequest sets the flag of one category.
type CategoryFlagRequest struct {
	Selected *bool `json:"selected" validate:"required"`
}

// SettingsRequest updates the playback settings; omitted fields are kept.
type SettingsRequest struct {
	DisplayDelayMS *int  `json:"display_delay_ms" validate:"omitempty,min=1000,max=30000"`
	Repeat         *bool `json:"repeat"`
}

// ThemeRequest picks the current theme.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required"`
}

// Response bodies

// WordResponse is a served word.
type WordResponse struct {
	Word      string `json:"word"`
	Remaining int    `json:"remaining"`
}

// QueueResponse describes the word queue.
type QueueResponse struct {
	State            wordqueue.State `json:"state"`
	PoolSize         int             `json:"pool_size"`
	Position         int             `json:"position"`
	Remaining        int             `json:"remaining"`
	Repeat           bool            `json:"repeat"`
	DisplayDelayMS   int64           `json:"display_delay_ms"`
	ActiveCategories []string        `json:"active_categories"`
}

// SettingsResponse describes the playback settings.
type SettingsResponse struct {
	DisplayDelayMS int64 `json:"display_delay_ms"`
	Repeat         bool  `json:"repeat"`
}

// PlaybackResponse describes the player.
type PlaybackResponse struct {
	State playback.State `json:"state"`
}

func queueToResponse(s wordqueue.Status) QueueResponse {
	active := s.ActiveCategories
	if active == nil {
		active = []string{}
	}
	return QueueResponse{
		State:            s.State,
		PoolSize:         s.PoolSize,
		Position:         s.Position,
		Remaining:        s.Remaining,
		Repeat:           s.Repeat,
		DisplayDelayMS:   s.DisplayDelay.Milliseconds(),
		ActiveCategories: active,
	}
}

func settingsToResponse(s service.Settings) SettingsResponse {
	return SettingsResponse{
		DisplayDelayMS: s.DisplayDelay.Milliseconds(),
		Repeat:         s.Repeat,
	}
}
