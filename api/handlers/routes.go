package handlers

import "github.com/go-chi/chi/v5"

// Register mounts the API endpoints on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/matrices", h.MatricesHandler)

	r.Route("/align", func(r chi.Router) {
		r.Post("/global", h.GlobalAlignHandler)
		r.Post("/affine", h.AffineAlignHandler)
		r.Post("/three", h.ThreeWayAlignHandler)
		r.Post("/score", h.AlignmentScoreHandler)
	})

	r.Route("/fold", func(r chi.Router) {
		r.Post("/nussinov", h.NussinovHandler)
	})

	r.Route("/sequence", func(r chi.Router) {
		r.Post("/validate", h.ValidateHandler)
	})
}
