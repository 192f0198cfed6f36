// Package handlers implements the JSON endpoints of the bioalign server.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aria-lang/bioalign-go/internal/engine"
	"github.com/aria-lang/bioalign-go/internal/scoring"
	"github.com/aria-lang/bioalign-go/internal/sequence"
	"github.com/aria-lang/bioalign-go/internal/traceback"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 4 << 20

var errBadBody = errors.New("invalid request body")

// Defaults fill request fields the client leaves out.
type Defaults struct {
	Matrix    string
	Gap       int
	GapOpen   int
	GapExtend int
	Loop      int
}

// Handler serves the API endpoints on top of an engine service.
type Handler struct {
	svc      *engine.Service
	defaults Defaults
}

// New creates a Handler.
func New(svc *engine.Service, defaults Defaults) *Handler {
	return &Handler{svc: svc, defaults: defaults}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes err as JSON. When the request deadline has passed the
// timeout middleware owns the response and nothing is written here.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.DeadlineExceeded) && errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		return
	}
	writeJSON(w, statusFor(err), ErrorResponse{Error: err.Error()})
}

// statusFor maps an error to its HTTP status code.
func statusFor(err error) int {
	var seqErr sequence.SequenceError
	switch {
	case errors.Is(err, errBadBody),
		errors.Is(err, engine.ErrBadRequest),
		errors.Is(err, engine.ErrUnknownAlgorithm),
		errors.Is(err, scoring.ErrUnknownMatrix),
		errors.Is(err, scoring.ErrUnknownSymbol),
		errors.As(err, &seqErr):
		return http.StatusBadRequest
	case errors.Is(err, traceback.ErrPathLimit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// parseSequence builds a sequence of the named type; an empty type detects
// the alphabet.
func parseSequence(bases, typeName string, index int) (*sequence.Sequence, error) {
	t := sequence.Detect(bases)
	if typeName != "" {
		parsed, err := sequence.ParseType(typeName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", engine.ErrBadRequest, err)
		}
		t = parsed
	}
	seq, err := sequence.WithMetadata(bases, fmt.Sprintf("seq%d", index), "", t)
	if err != nil {
		return nil, fmt.Errorf("sequence%d: %w", index, err)
	}
	return seq, nil
}

// matrixFor resolves the requested matrix. Without a name, protein input
// selects BLOSUM62, RNA input the RNA identity matrix, and anything else
// the configured default.
func (h *Handler) matrixFor(name string, seqs []*sequence.Sequence) (*scoring.Matrix, error) {
	if name != "" {
		return scoring.Lookup(name)
	}
	for _, s := range seqs {
		switch s.SeqType {
		case sequence.Protein:
			return scoring.BLOSUM62(), nil
		case sequence.RNA:
			return scoring.RNA(), nil
		}
	}
	if h.defaults.Matrix == "" {
		return scoring.DNA(), nil
	}
	return scoring.Lookup(h.defaults.Matrix)
}

func orDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func trimmed(rows []string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = strings.ToUpper(strings.TrimSpace(r))
	}
	return out
}
