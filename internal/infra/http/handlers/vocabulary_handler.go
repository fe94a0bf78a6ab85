package handlers

import (
	"net/http"

	"github.com/xavierca1/dealflow/internal/vocabulary"
)

type VocabularyHandler struct {
	Vocabulary *vocabulary.Vocabulary
}

func NewVocabularyHandler(v *vocabulary.Vocabulary) *VocabularyHandler {
	if v == nil {
		v = vocabulary.Default
	}
	return &VocabularyHandler{Vocabulary: v}
}

// Sectors (GET /vocabulary/sectors)
func (h *VocabularyHandler) Sectors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sectors":    h.Vocabulary.Sectors(),
		"subSectors": h.Vocabulary.SubSectorMap(),
	})
}
