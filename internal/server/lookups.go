package server

import (
	"net/http"
)

// Genres and media types are read-only: only the collection GET is served.

func genres(w http.ResponseWriter, r *request) {
	if r.Method != http.MethodGet || len(r.segments) != 0 {
		methodNotAllowed(w)
		return
	}

	list, err := r.catalog.Genres.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve genres.")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func mediaTypes(w http.ResponseWriter, r *request) {
	if r.Method != http.MethodGet || len(r.segments) != 0 {
		methodNotAllowed(w)
		return
	}

	list, err := r.catalog.MediaTypes.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve media types.")
		return
	}
	writeJSON(w, http.StatusOK, list)
}
