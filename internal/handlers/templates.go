package handlers

import (
	"net/http"

	"prompthis/internal/prompt"
)

// Templates returns the built-in prompt template catalog.
func (a *API) Templates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"templates": prompt.Catalog(),
	})
}
