package api

import "github.com/go-chi/chi/v5"

// Mount registers the trainer routes on r, normally the /api sub-router.
func (h *TrainerHandler) Mount(r chi.Router) {
	r.Get("/words/next", h.NextWord)

	r.Route("/queue", func(r chi.Router) {
		r.Get("/", h.Queue)
		r.Post("/reset", h.ResetQueue)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.Categories)
		r.Put("/selection", h.ReplaceSelection)
		r.Post("/select-all", h.SelectAll)
		r.Post("/deselect-all", h.DeselectAll)
		r.Post("/apply", h.ApplySelection)
		r.Patch("/{index}", h.SetCategoryFlag)
	})

	r.Get("/settings", h.Settings)
	r.Put("/settings", h.UpdateSettings)

	r.Get("/themes", h.Themes)
	r.Put("/themes/current", h.SelectTheme)

	r.Post("/reload", h.Reload)
}

// Mount registers the playback routes on r.
func (h *PlaybackHandler) Mount(r chi.Router) {
	r.Route("/playback", func(r chi.Router) {
		r.Get("/", h.State)
		r.Post("/start", h.Start)
		r.Post("/pause", h.Pause)
		r.Post("/resume", h.Resume)
		r.Post("/restart", h.Restart)
	})
}
