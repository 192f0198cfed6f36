package handlers

import (
	"net/http"

	"github.com/aria-lang/bioalign-go/internal/sequence"
	"github.com/aria-lang/bioalign-go/internal/stats"
)

// SequenceRequest represents a request with a sequence.
type SequenceRequest struct {
	Sequence string `json:"sequence"`
	Type     string `json:"type,omitempty"`
}

// ValidationResponse represents the response for sequence validation.
type ValidationResponse struct {
	Valid bool                 `json:"valid"`
	Error string               `json:"error,omitempty"`
	Stats *stats.SequenceStats `json:"stats,omitempty"`
}

// ValidateHandler checks a sequence against its alphabet and reports its
// composition.
func (h *Handler) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if req.Type != "" {
		if _, err := sequence.ParseType(req.Type); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
	}

	seq, err := parseSequence(req.Sequence, req.Type, 1)
	if err != nil {
		writeJSON(w, http.StatusOK, ValidationResponse{Valid: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ValidationResponse{
		Valid: true,
		Stats: stats.FromSequence(seq),
	})
}
