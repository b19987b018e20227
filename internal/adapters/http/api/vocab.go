// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// VocabHandler serves the tag and artist vocabularies used by the
// admin and onboarding forms.
type VocabHandler struct {
	deps Dependencies
}

// NewVocabHandler creates a new vocabulary handler.
func NewVocabHandler(deps Dependencies) *VocabHandler {
	return &VocabHandler{deps: deps}
}

// HandleGetTagOptions handles GET /tag-options requests.
func (h *VocabHandler) HandleGetTagOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"tags": h.deps.TagOptions(r.Context())})
}

// HandleGetArtistOptions handles GET /artist-options requests.
func (h *VocabHandler) HandleGetArtistOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"artists": h.deps.ArtistOptions(r.Context())})
}
