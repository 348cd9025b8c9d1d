package server

import (
	"fmt"
	"net/http"

	"github.com/desertthunder/chinook/internal/models"
)

func albums(w http.ResponseWriter, r *request) {
	switch r.Method {
	case http.MethodGet:
		getAlbums(w, r)
	case http.MethodPost:
		if len(r.segments) != 0 {
			methodNotAllowed(w)
			return
		}
		createAlbum(w, r)
	case http.MethodPut:
		id, ok := itemID(r.segments)
		if !ok {
			if !unknownID(w, r.segments, "Album") {
				methodNotAllowed(w)
			}
			return
		}
		updateAlbum(w, r, id)
	case http.MethodDelete:
		id, ok := itemID(r.segments)
		if !ok {
			if !unknownID(w, r.segments, "Album") {
				methodNotAllowed(w)
			}
			return
		}
		repo := r.catalog.Albums
		guardedDelete{
			entity:     "Album",
			dependents: "tracks",
			id:         id,
			exists:     exists(repo.Get),
			depends:    r.catalog.Tracks.HasTracks,
			remove:     repo.Delete,
		}.run(w, r)
	default:
		methodNotAllowed(w)
	}
}

func getAlbums(w http.ResponseWriter, r *request) {
	ctx := r.Context()
	repo := r.catalog.Albums

	if s, ok := r.query("s"); ok && len(r.segments) == 0 {
		found, err := repo.Search(ctx, s)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to search albums for '%s'.", s))
			return
		}
		writeJSON(w, http.StatusOK, found)
		return
	}

	if len(r.segments) == 0 {
		list, err := repo.List(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to retrieve albums.")
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	if id, ok := itemID(r.segments); ok {
		album, err := repo.Get(ctx, id)
		if err != nil {
			fail(w, err, fmt.Sprintf("Album with ID %d not found.", id), fmt.Sprintf("Failed to retrieve album %d.", id))
			return
		}
		writeJSON(w, http.StatusOK, album)
		return
	}

	if id, ok := subID(r.segments, "tracks"); ok {
		if _, err := repo.Get(ctx, id); err != nil {
			fail(w, err, fmt.Sprintf("Album with ID %d not found.", id), fmt.Sprintf("Failed to retrieve album %d.", id))
			return
		}

		list, err := r.catalog.Tracks.ListByAlbum(ctx, id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve tracks for album %d.", id))
			return
		}
		if len(list) == 0 {
			writeError(w, http.StatusNotFound, fmt.Sprintf("No tracks found for album ID %d.", id))
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	if unknownID(w, r.segments, "Album", "tracks") {
		return
	}
	invalidPath(w)
}

func createAlbum(w http.ResponseWriter, r *request) {
	var in models.AlbumInput
	if err := r.decode(&in); err != nil {
		invalidBody(w, err)
		return
	}
	if err := in.ValidateCreate(); err != nil {
		invalidBody(w, err)
		return
	}

	album, err := r.catalog.Albums.Create(r.Context(), *in.Title, *in.ArtistID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create album.")
		return
	}
	writeJSON(w, http.StatusCreated, album)
}

func updateAlbum(w http.ResponseWriter, r *request, id int64) {
	ctx := r.Context()
	repo := r.catalog.Albums

	if _, err := repo.Get(ctx, id); err != nil {
		fail(w, err, fmt.Sprintf("Album with ID %d not found.", id), fmt.Sprintf("Failed to retrieve album %d.", id))
		return
	}

	var in models.AlbumInput
	if err := r.decode(&in); err != nil {
		invalidBody(w, err)
		return
	}
	in = in.Normalize()
	if in.Empty() {
		writeError(w, http.StatusBadRequest, "No valid fields to update. Provide title or artist_id.")
		return
	}

	album, err := repo.Update(ctx, id, in)
	if err != nil {
		fail(w, err, fmt.Sprintf("Album with ID %d not found.", id), fmt.Sprintf("Failed to update album %d.", id))
		return
	}
	writeJSON(w, http.StatusOK, album)
}
