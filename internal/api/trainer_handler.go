package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/raptrainer/internal/api/shared"
	"github.com/phrazzld/raptrainer/internal/domain"
	"github.com/phrazzld/raptrainer/internal/platform/logger"
	"github.com/phrazzld/raptrainer/internal/service"
)

// TrainerHandler serves the word queue, category selection, settings and
// themes endpoints.
type TrainerHandler struct {
	trainer service.TrainerService
	logger  *slog.Logger
}

// NewTrainerHandler creates a new TrainerHandler
func NewTrainerHandler(trainer service.TrainerService, logger *slog.Logger) *TrainerHandler {
	if trainer == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("trainer service cannot be nil for TrainerHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TrainerHandler")
	}

	return &TrainerHandler{
		trainer: trainer,
		logger:  logger.With(slog.String("component", "trainer_handler")),
	}
}

// NextWord handles GET /words/next. It answers 204 when no word is left.
func (h *TrainerHandler) NextWord(w http.ResponseWriter, r *http.Request) {
	word, err := h.trainer.NextWord(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, WordResponse{
		Word:      word.Text,
		Remaining: word.Remaining,
	})
}

// Queue handles GET /queue
func (h *TrainerHandler) Queue(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, queueToResponse(h.trainer.Status(r.Context())))
}

// ResetQueue handles POST /queue/reset
func (h *TrainerHandler) ResetQueue(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, queueToResponse(h.trainer.Reset(r.Context())))
}

// Categories handles GET /categories
func (h *TrainerHandler) Categories(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.trainer.Categories(r.Context()))
}

// ReplaceSelection handles PUT /categories/selection: every flag is set and
// the selection committed in one step.
func (h *TrainerHandler) ReplaceSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status, err := h.trainer.SetSelection(r.Context(), req.Selected)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, queueToResponse(status))
}

// SetCategoryFlag handles PATCH /categories/{index}. The flag is not committed.
func (h *TrainerHandler) SetCategoryFlag(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	param := chi.URLParam(r, "index")
	index, err := strconv.Atoi(param)
	if err != nil {
		log.Debug("invalid category index", slog.String("value", param))
		HandleAPIError(w, r,
			domain.NewValidationError("index", "must be an integer", domain.ErrValidation),
			"Invalid category index")
		return
	}

	var req CategoryFlagRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.trainer.SetSelected(r.Context(), index, *req.Selected); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.trainer.Categories(r.Context()))
}

// SelectAll handles POST /categories/select-all
func (h *TrainerHandler) SelectAll(w http.ResponseWriter, r *http.Request) {
	h.trainer.SelectAll(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, h.trainer.Categories(r.Context()))
}

// DeselectAll handles POST /categories/deselect-all
func (h *TrainerHandler) DeselectAll(w http.ResponseWriter, r *http.Request) {
	h.trainer.DeselectAll(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, h.trainer.Categories(r.Context()))
}

// ApplySelection handles POST /categories/apply
func (h *TrainerHandler) ApplySelection(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, queueToResponse(h.trainer.ApplySelection(r.Context())))
}

// Settings handles GET /settings
func (h *TrainerHandler) Settings(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(h.trainer.Settings(r.Context())))
}

// UpdateSettings handles PUT /settings
func (h *TrainerHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	update := service.SettingsUpdate{Repeat: req.Repeat}
	if req.DisplayDelayMS != nil {
		delay := time.Duration(*req.DisplayDelayMS) * time.Millisecond
		update.DisplayDelay = &delay
	}

	settings := h.trainer.UpdateSettings(r.Context(), update)
	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}

// Themes handles GET /themes
func (h *TrainerHandler) Themes(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.trainer.Themes(r.Context()))
}

// SelectTheme handles PUT /themes/current
func (h *TrainerHandler) SelectTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.trainer.SelectTheme(r.Context(), req.Theme); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.trainer.Themes(r.Context()))
}

// Reload handles POST /reload: word files are read again and the selection
// goes back to the first category.
func (h *TrainerHandler) Reload(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, queueToResponse(h.trainer.Reload(r.Context())))
}

// decodeAndValidate decodes the body into v and validates it, writing the
// error response itself when either step fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		handleDecodeError(w, r, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		handleDecodeError(w, r, err)
		return false
	}
	return true
}
