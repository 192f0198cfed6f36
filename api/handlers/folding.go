package handlers

import (
	"net/http"

	"github.com/aria-lang/bioalign-go/internal/engine"
	"github.com/aria-lang/bioalign-go/internal/sequence"
)

// FoldRequest represents a structure prediction request. DNA input is
// transcribed before folding.
type FoldRequest struct {
	Sequence string `json:"sequence"`
	Loop     *int   `json:"loop,omitempty"`
}

// NussinovHandler predicts a maximum-pairing secondary structure.
func (h *Handler) NussinovHandler(w http.ResponseWriter, r *http.Request) {
	var body FoldRequest
	if err := decode(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	seq, err := parseSequence(body.Sequence, "", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.Run(r.Context(), engine.Request{
		Algorithm: engine.Nussinov,
		Sequences: []*sequence.Sequence{seq},
		Loop:      orDefault(body.Loop, h.defaults.Loop),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Report())
}
