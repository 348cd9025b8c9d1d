package server

import (
	"fmt"
	"net/http"

	"github.com/desertthunder/chinook/internal/models"
)

func tracks(w http.ResponseWriter, r *request) {
	switch r.Method {
	case http.MethodGet:
		getTracks(w, r)
	case http.MethodPost:
		if len(r.segments) != 0 {
			methodNotAllowed(w)
			return
		}
		createTrack(w, r)
	case http.MethodPut:
		id, ok := itemID(r.segments)
		if !ok {
			if !unknownID(w, r.segments, "Track") {
				methodNotAllowed(w)
			}
			return
		}
		updateTrack(w, r, id)
	case http.MethodDelete:
		id, ok := itemID(r.segments)
		if !ok {
			if !unknownID(w, r.segments, "Track") {
				methodNotAllowed(w)
			}
			return
		}
		repo := r.catalog.Tracks
		guardedDelete{
			entity:     "Track",
			dependents: "playlists",
			id:         id,
			exists:     exists(repo.Get),
			depends:    r.catalog.Playlists.HasTrack,
			remove:     repo.Delete,
		}.run(w, r)
	default:
		methodNotAllowed(w)
	}
}

// getTracks serves /tracks?s=, /tracks?composer= and /tracks/{id}. There is no unfiltered listing.
func getTracks(w http.ResponseWriter, r *request) {
	ctx := r.Context()
	repo := r.catalog.Tracks

	if len(r.segments) == 0 {
		var (
			list []models.Track
			err  error
			what string
		)
		if s, ok := r.query("s"); ok {
			list, err = repo.Search(ctx, s)
			what = fmt.Sprintf("matching '%s'", s)
		} else if composer, ok := r.query("composer"); ok {
			list, err = repo.ListByComposer(ctx, composer)
			what = fmt.Sprintf("for composer '%s'", composer)
		} else {
			invalidPath(w)
			return
		}

		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to search tracks %s.", what))
			return
		}
		if len(list) == 0 {
			writeError(w, http.StatusNotFound, fmt.Sprintf("No tracks found %s.", what))
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	if id, ok := itemID(r.segments); ok {
		track, err := repo.Get(ctx, id)
		if err != nil {
			fail(w, err, fmt.Sprintf("Track with ID %d not found.", id), fmt.Sprintf("Failed to retrieve track %d.", id))
			return
		}
		writeJSON(w, http.StatusOK, track)
		return
	}

	if unknownID(w, r.segments, "Track") {
		return
	}
	invalidPath(w)
}

func createTrack(w http.ResponseWriter, r *request) {
	var in models.TrackInput
	if err := r.decode(&in); err != nil {
		invalidBody(w, err)
		return
	}
	if err := in.ValidateCreate(); err != nil {
		invalidBody(w, err)
		return
	}

	track, err := r.catalog.Tracks.Create(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create track.")
		return
	}
	writeJSON(w, http.StatusCreated, track)
}

func updateTrack(w http.ResponseWriter, r *request, id int64) {
	ctx := r.Context()
	repo := r.catalog.Tracks

	if _, err := repo.Get(ctx, id); err != nil {
		fail(w, err, fmt.Sprintf("Track with ID %d not found.", id), fmt.Sprintf("Failed to retrieve track %d.", id))
		return
	}

	var in models.TrackInput
	if err := r.decode(&in); err != nil {
		invalidBody(w, err)
		return
	}
	in = in.Normalize()
	if in.Empty() {
		writeError(w, http.StatusBadRequest, "No valid fields to update.")
		return
	}

	track, err := repo.Update(ctx, id, in)
	if err != nil {
		fail(w, err, fmt.Sprintf("Track with ID %d not found.", id), fmt.Sprintf("Failed to update track %d.", id))
		return
	}
	writeJSON(w, http.StatusOK, track)
}
