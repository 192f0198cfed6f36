package handlers

import (
	"net/http"

	"github.com/aria-lang/bioalign-go/internal/scoring"
)

// MatrixInfo describes a built-in substitution matrix.
type MatrixInfo struct {
	Name      string `json:"name"`
	Alphabet  string `json:"alphabet"`
	Size      int    `json:"size"`
	Min       int    `json:"min"`
	Max       int    `json:"max"`
	Symmetric bool   `json:"symmetric"`
}

// MatricesHandler lists the built-in matrices.
func (h *Handler) MatricesHandler(w http.ResponseWriter, r *http.Request) {
	names := scoring.Names()
	infos := make([]MatrixInfo, 0, len(names))

	for _, name := range names {
		m, err := scoring.Lookup(name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		lo, hi := m.Range()
		infos = append(infos, MatrixInfo{
			Name:      name,
			Alphabet:  m.Alphabet(),
			Size:      m.Size(),
			Min:       lo,
			Max:       hi,
			Symmetric: m.Symmetric(),
		})
	}

	writeJSON(w, http.StatusOK, infos)
}
