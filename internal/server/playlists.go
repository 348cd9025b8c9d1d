package server

import (
	"fmt"
	"net/http"

	"github.com/desertthunder/chinook/internal/models"
)

func playlists(w http.ResponseWriter, r *request) {
	switch r.Method {
	case http.MethodGet:
		getPlaylists(w, r)
	case http.MethodPost:
		if len(r.segments) == 0 {
			createPlaylist(w, r)
			return
		}
		id, ok := subID(r.segments, "tracks")
		if !ok {
			if len(r.segments) != 2 || !unknownID(w, r.segments, "Playlist", "tracks") {
				methodNotAllowed(w)
			}
			return
		}
		addPlaylistTrack(w, r, id)
	case http.MethodDelete:
		if id, ok := itemID(r.segments); ok {
			repo := r.catalog.Playlists
			guardedDelete{
				entity:     "Playlist",
				dependents: "tracks",
				id:         id,
				exists:     exists(repo.Get),
				depends:    repo.HasPlaylistTracks,
				remove:     repo.Delete,
			}.run(w, r)
			return
		}
		if len(r.segments) == 3 && r.segments[1] == "tracks" {
			playlistID, ok := parseID(r.segments[0])
			trackID, ok2 := parseID(r.segments[2])
			if ok && ok2 {
				removePlaylistTrack(w, r, playlistID, trackID)
				return
			}
			if isNumeric(r.segments[0]) && isNumeric(r.segments[2]) {
				writeError(w, http.StatusNotFound,
					fmt.Sprintf("Track %s is not in playlist %s.", r.segments[2], r.segments[0]))
				return
			}
		}
		if unknownID(w, r.segments, "Playlist") {
			return
		}
		methodNotAllowed(w)
	default:
		methodNotAllowed(w)
	}
}

func getPlaylists(w http.ResponseWriter, r *request) {
	ctx := r.Context()
	repo := r.catalog.Playlists

	if s, ok := r.query("s"); ok && len(r.segments) == 0 {
		found, err := repo.Search(ctx, s)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to search playlists for '%s'.", s))
			return
		}
		if len(found) == 0 {
			writeError(w, http.StatusNotFound, fmt.Sprintf("No playlists found matching '%s'.", s))
			return
		}
		writeJSON(w, http.StatusOK, found)
		return
	}

	if len(r.segments) == 0 {
		list, err := repo.List(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to retrieve playlists.")
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	if id, ok := itemID(r.segments); ok {
		playlist, err := repo.Get(ctx, id)
		if err != nil {
			fail(w, err, fmt.Sprintf("Playlist with ID %d not found.", id), fmt.Sprintf("Failed to retrieve playlist %d.", id))
			return
		}
		writeJSON(w, http.StatusOK, playlist)
		return
	}

	if unknownID(w, r.segments, "Playlist") {
		return
	}
	invalidPath(w)
}

func createPlaylist(w http.ResponseWriter, r *request) {
	var in models.PlaylistInput
	if err := r.decode(&in); err != nil {
		invalidBody(w, err)
		return
	}
	if err := in.ValidateCreate(); err != nil {
		invalidBody(w, err)
		return
	}

	playlist, err := r.catalog.Playlists.Create(r.Context(), *in.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create playlist.")
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

// addPlaylistTrack associates a track with a playlist. A track already in the playlist is
// acknowledged with 200 and no second row.
func addPlaylistTrack(w http.ResponseWriter, r *request, playlistID int64) {
	ctx := r.Context()
	repo := r.catalog.Playlists

	if _, err := repo.Get(ctx, playlistID); err != nil {
		fail(w, err, fmt.Sprintf("Playlist with ID %d not found.", playlistID),
			fmt.Sprintf("Failed to retrieve playlist %d.", playlistID))
		return
	}

	var in models.PlaylistTrackInput
	if err := r.decode(&in); err != nil {
		invalidBody(w, err)
		return
	}
	if err := in.ValidateCreate(); err != nil {
		invalidBody(w, err)
		return
	}
	trackID := *in.TrackID

	found, err := repo.Contains(ctx, playlistID, trackID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to add track %d to playlist %d.", trackID, playlistID))
		return
	}
	if found {
		writeMessage(w, http.StatusOK, fmt.Sprintf("Track %d is already in playlist %d.", trackID, playlistID))
		return
	}

	if err := repo.AddTrack(ctx, models.PlaylistTrack{PlaylistID: playlistID, TrackID: trackID}); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to add track %d to playlist %d.", trackID, playlistID))
		return
	}
	writeMessage(w, http.StatusCreated, fmt.Sprintf("Track %d added to playlist %d.", trackID, playlistID))
}

// removePlaylistTrack deletes one association. An association that does not exist answers 404, the same as
// any other missing row.
func removePlaylistTrack(w http.ResponseWriter, r *request, playlistID, trackID int64) {
	err := r.catalog.Playlists.RemoveTrack(r.Context(), models.PlaylistTrack{PlaylistID: playlistID, TrackID: trackID})
	switch {
	case isMissing(err):
		writeError(w, http.StatusNotFound, fmt.Sprintf("Track %d is not in playlist %d.", trackID, playlistID))
	case err != nil:
		writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to remove track %d from playlist %d.", trackID, playlistID))
	default:
		writeMessage(w, http.StatusOK, fmt.Sprintf("Track %d removed from playlist %d.", trackID, playlistID))
	}
}
