package handlers

import (
	"fmt"
	"net/http"

	"github.com/aria-lang/bioalign-go/internal/alignment"
	"github.com/aria-lang/bioalign-go/internal/engine"
	"github.com/aria-lang/bioalign-go/internal/sequence"
	"github.com/aria-lang/bioalign-go/internal/traceback"
)

// AlignmentRequest represents an alignment request. Sequences takes
// precedence over the numbered fields.
type AlignmentRequest struct {
	Sequences []string `json:"sequences,omitempty"`
	Sequence1 string   `json:"sequence1,omitempty"`
	Sequence2 string   `json:"sequence2,omitempty"`
	Sequence3 string   `json:"sequence3,omitempty"`
	Type      string   `json:"type,omitempty"`
	Matrix    string   `json:"matrix,omitempty"`
	Gap       *int     `json:"gap,omitempty"`
	Open      *int     `json:"open,omitempty"`
	Extend    *int     `json:"extend,omitempty"`
	Mode      string   `json:"mode,omitempty"`
	Seed      int64    `json:"seed,omitempty"`
	MaxPaths  int      `json:"max_paths,omitempty"`
}

func (req *AlignmentRequest) inputs(n int) []string {
	if len(req.Sequences) > 0 {
		return req.Sequences
	}
	return []string{req.Sequence1, req.Sequence2, req.Sequence3}[:n]
}

// ScoreRequest asks for the score of an existing alignment.
type ScoreRequest struct {
	Rows   []string `json:"rows"`
	Matrix string   `json:"matrix,omitempty"`
	Gap    *int     `json:"gap,omitempty"`
	Open   *int     `json:"open,omitempty"`
	Extend *int     `json:"extend,omitempty"`
	Affine bool     `json:"affine,omitempty"`
}

// ScoreResponse is the independent score of an alignment.
type ScoreResponse struct {
	Score     int                    `json:"score"`
	Model     string                 `json:"model"`
	Matrix    string                 `json:"matrix"`
	Alignment engine.AlignmentReport `json:"alignment"`
}

// GlobalAlignHandler handles linear-gap global alignment requests.
func (h *Handler) GlobalAlignHandler(w http.ResponseWriter, r *http.Request) {
	h.align(w, r, engine.NeedlemanWunsch)
}

// AffineAlignHandler handles affine-gap global alignment requests.
func (h *Handler) AffineAlignHandler(w http.ResponseWriter, r *http.Request) {
	h.align(w, r, engine.Gotoh)
}

// ThreeWayAlignHandler handles three-sequence alignment requests.
func (h *Handler) ThreeWayAlignHandler(w http.ResponseWriter, r *http.Request) {
	h.align(w, r, engine.NeedlemanWunsch3D)
}

func (h *Handler) align(w http.ResponseWriter, r *http.Request, alg engine.Algorithm) {
	var body AlignmentRequest
	if err := decode(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.alignmentRequest(&body, alg)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.Run(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Report())
}

func (h *Handler) alignmentRequest(body *AlignmentRequest, alg engine.Algorithm) (engine.Request, error) {
	raw := body.inputs(alg.Sequences())
	if len(raw) != alg.Sequences() {
		return engine.Request{}, fmt.Errorf("%w: %s takes %d sequences, got %d",
			engine.ErrBadRequest, alg, alg.Sequences(), len(raw))
	}

	seqs := make([]*sequence.Sequence, len(raw))
	for i, bases := range raw {
		seq, err := parseSequence(bases, body.Type, i+1)
		if err != nil {
			return engine.Request{}, err
		}
		seqs[i] = seq
	}

	m, err := h.matrixFor(body.Matrix, seqs)
	if err != nil {
		return engine.Request{}, err
	}
	mode, err := traceback.ParseMode(body.Mode)
	if err != nil {
		return engine.Request{}, fmt.Errorf("%w: %v", engine.ErrBadRequest, err)
	}

	return engine.Request{
		Algorithm: alg,
		Sequences: seqs,
		Matrix:    m,
		Gap:       alignment.LinearGap{Cost: orDefault(body.Gap, h.defaults.Gap)},
		Affine: alignment.AffineGap{
			Open:   orDefault(body.Open, h.defaults.GapOpen),
			Extend: orDefault(body.Extend, h.defaults.GapExtend),
		},
		Mode:     mode,
		Seed:     body.Seed,
		MaxPaths: body.MaxPaths,
	}, nil
}

// AlignmentScoreHandler re-scores a given alignment without any table.
func (h *Handler) AlignmentScoreHandler(w http.ResponseWriter, r *http.Request) {
	var body ScoreRequest
	if err := decode(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	rows := trimmed(body.Rows)
	a, err := alignment.NewAlignment(rows, 0, alignment.Global)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", engine.ErrBadRequest, err))
		return
	}

	seqs := make([]*sequence.Sequence, len(rows))
	for i := range rows {
		seq, err := parseSequence(a.Ungapped(i), "", i+1)
		if err != nil {
			writeError(w, r, err)
			return
		}
		seqs[i] = seq
	}
	m, err := h.matrixFor(body.Matrix, seqs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	for _, s := range seqs {
		if err := m.Check(s.Bases); err != nil {
			writeError(w, r, err)
			return
		}
	}

	var score int
	model := "linear"
	if body.Affine {
		model = "affine"
		gap := alignment.AffineGap{
			Open:   orDefault(body.Open, h.defaults.GapOpen),
			Extend: orDefault(body.Extend, h.defaults.GapExtend),
		}
		if err = gap.Validate(); err == nil {
			score, err = alignment.ScoreAffine(rows, m, gap)
		}
	} else {
		gap := alignment.LinearGap{Cost: orDefault(body.Gap, h.defaults.Gap)}
		if err = gap.Validate(); err == nil {
			score, err = alignment.ScoreLinear(rows, m, gap)
		}
	}
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", engine.ErrBadRequest, err))
		return
	}

	a.Score = score
	writeJSON(w, http.StatusOK, ScoreResponse{
		Score:     score,
		Model:     model,
		Matrix:    m.Name(),
		Alignment: engine.NewAlignmentReport(a),
	})
}
