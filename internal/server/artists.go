package server

import (
	"fmt"
	"net/http"

	"github.com/desertthunder/chinook/internal/models"
)

func artists(w http.ResponseWriter, r *request) {
	switch r.Method {
	case http.MethodGet:
		getArtists(w, r)
	case http.MethodPost:
		if len(r.segments) != 0 {
			methodNotAllowed(w)
			return
		}
		createArtist(w, r)
	case http.MethodDelete:
		id, ok := itemID(r.segments)
		if !ok {
			if !unknownID(w, r.segments, "Artist") {
				methodNotAllowed(w)
			}
			return
		}
		repo := r.catalog.Artists
		guardedDelete{
			entity:     "Artist",
			dependents: "albums",
			id:         id,
			exists:     exists(repo.Get),
			depends:    r.catalog.Albums.HasAlbums,
			remove:     repo.Delete,
		}.run(w, r)
	default:
		methodNotAllowed(w)
	}
}

func getArtists(w http.ResponseWriter, r *request) {
	ctx := r.Context()
	repo := r.catalog.Artists

	if s, ok := r.query("s"); ok && len(r.segments) == 0 {
		found, err := repo.Search(ctx, s)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to search artists for '%s'.", s))
			return
		}
		writeJSON(w, http.StatusOK, found)
		return
	}

	if len(r.segments) == 0 {
		list, err := repo.List(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to retrieve artists.")
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	if id, ok := itemID(r.segments); ok {
		artist, err := repo.Get(ctx, id)
		if err != nil {
			fail(w, err, fmt.Sprintf("Artist with ID %d not found.", id), fmt.Sprintf("Failed to retrieve artist %d.", id))
			return
		}
		writeJSON(w, http.StatusOK, artist)
		return
	}

	if id, ok := subID(r.segments, "albums"); ok {
		if _, err := repo.Get(ctx, id); err != nil {
			fail(w, err, fmt.Sprintf("Artist with ID %d not found.", id), fmt.Sprintf("Failed to retrieve artist %d.", id))
			return
		}

		list, err := r.catalog.Albums.ListByArtist(ctx, id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve albums for artist %d.", id))
			return
		}
		if len(list) == 0 {
			writeError(w, http.StatusNotFound, fmt.Sprintf("No albums found for artist ID %d.", id))
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	if unknownID(w, r.segments, "Artist", "albums") {
		return
	}
	invalidPath(w)
}

func createArtist(w http.ResponseWriter, r *request) {
	var in models.ArtistInput
	if err := r.decode(&in); err != nil {
		invalidBody(w, err)
		return
	}
	if err := in.ValidateCreate(); err != nil {
		invalidBody(w, err)
		return
	}

	artist, err := r.catalog.Artists.Create(r.Context(), *in.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create artist.")
		return
	}
	writeJSON(w, http.StatusCreated, artist)
}
