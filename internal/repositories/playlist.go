package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
)

// PlaylistRepository reads and writes the Playlist and PlaylistTrack tables.
type PlaylistRepository struct {
	store
}

const playlistColumns = `SELECT PlaylistId, Name FROM Playlist`

// playlistDetailQuery loads one playlist and its tracks in a single statement.
// An empty playlist yields one row whose track columns are all NULL.
const playlistDetailQuery = `
	SELECT
		Playlist.PlaylistId,
		Playlist.Name,
		Track.TrackId,
		Track.Name,
		Track.AlbumId,
		Track.MediaTypeId,
		MediaType.Name AS MediaTypeName,
		Track.GenreId,
		Genre.Name AS GenreName,
		Track.Composer,
		Track.Milliseconds,
		Track.Bytes,
		Track.UnitPrice
	FROM
		Playlist
	LEFT JOIN
		PlaylistTrack ON Playlist.PlaylistId = PlaylistTrack.PlaylistId
	LEFT JOIN
		Track ON PlaylistTrack.TrackId = Track.TrackId
	LEFT JOIN
		MediaType ON Track.MediaTypeId = MediaType.MediaTypeId
	LEFT JOIN
		Genre ON Track.GenreId = Genre.GenreId
	WHERE
		Playlist.PlaylistId = ?
	ORDER BY
		Track.Name
`

func scanPlaylist(row scanner) (models.Playlist, error) {
	var (
		playlist models.Playlist
		name     sql.NullString
	)
	if err := row.Scan(&playlist.PlaylistID, &name); err != nil {
		return playlist, err
	}
	playlist.Name = name.String
	return playlist, nil
}

// List returns every playlist ordered by name.
func (r *PlaylistRepository) List(ctx context.Context) ([]models.Playlist, error) {
	return all(ctx, r.store, scanPlaylist, "failed to list playlists", playlistColumns+" ORDER BY Name")
}

// Search returns playlists whose name contains text, ordered by name.
func (r *PlaylistRepository) Search(ctx context.Context, text string) ([]models.Playlist, error) {
	return all(ctx, r.store, scanPlaylist, "failed to search playlists",
		playlistColumns+" WHERE Name LIKE ? ORDER BY Name", searchTerm(text))
}

// Get returns the playlist with its tracks ordered by track name.
func (r *PlaylistRepository) Get(ctx context.Context, id int64) (*models.PlaylistDetail, error) {
	rows, err := r.q.QueryContext(ctx, playlistDetailQuery, id)
	if err != nil {
		return nil, r.fail(err, "failed to get playlist", "id", id)
	}
	defer rows.Close()

	var detail *models.PlaylistDetail
	for rows.Next() {
		var (
			playlistName  sql.NullString
			trackID       sql.NullInt64
			name          sql.NullString
			albumID       sql.NullInt64
			mediaTypeID   sql.NullInt64
			mediaTypeName sql.NullString
			genreID       sql.NullInt64
			genreName     sql.NullString
			composer      sql.NullString
			milliseconds  sql.NullInt64
			bytes         sql.NullInt64
			unitPrice     sql.NullFloat64
			playlistID    int64
		)

		err := rows.Scan(&playlistID, &playlistName, &trackID, &name, &albumID, &mediaTypeID, &mediaTypeName,
			&genreID, &genreName, &composer, &milliseconds, &bytes, &unitPrice)
		if err != nil {
			return nil, r.fail(err, "failed to scan playlist", "id", id)
		}

		if detail == nil {
			detail = &models.PlaylistDetail{ID: playlistID, Name: playlistName.String, Tracks: []models.Track{}}
		}
		if !trackID.Valid {
			continue
		}

		track := models.Track{
			TrackID:       trackID.Int64,
			Name:          name.String,
			AlbumID:       albumID.Int64,
			MediaTypeID:   mediaTypeID.Int64,
			MediaTypeName: mediaTypeName.String,
			GenreID:       genreID.Int64,
			GenreName:     genreName.String,
			Milliseconds:  milliseconds.Int64,
			Bytes:         bytes.Int64,
			UnitPrice:     unitPrice.Float64,
		}
		if composer.Valid {
			track.Composer = &composer.String
		}
		detail.Tracks = append(detail.Tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, r.fail(err, "failed to get playlist", "id", id)
	}

	if detail == nil {
		return nil, fmt.Errorf("%w: playlist %d", shared.ErrNotFound, id)
	}

	return detail, nil
}

// HasPlaylistTracks reports whether the playlist has any track.
func (r *PlaylistRepository) HasPlaylistTracks(ctx context.Context, playlistID int64) (bool, error) {
	return r.exists(ctx, "failed to check tracks in playlist",
		"SELECT COUNT(*) FROM PlaylistTrack WHERE PlaylistId = ?", playlistID)
}

// HasTrack reports whether any playlist references the track.
func (r *PlaylistRepository) HasTrack(ctx context.Context, trackID int64) (bool, error) {
	return r.exists(ctx, "failed to check playlists for track",
		"SELECT COUNT(*) FROM PlaylistTrack WHERE TrackId = ?", trackID)
}

// Contains reports whether the track is already in the playlist.
func (r *PlaylistRepository) Contains(ctx context.Context, playlistID, trackID int64) (bool, error) {
	var found int
	err := r.q.QueryRowContext(ctx,
		"SELECT 1 FROM PlaylistTrack WHERE PlaylistId = ? AND TrackId = ?", playlistID, trackID,
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, r.fail(err, "failed to check playlist membership", "playlist_id", playlistID, "track_id", trackID)
	}
	return true, nil
}

// Create inserts a playlist and echoes it back with the assigned id.
func (r *PlaylistRepository) Create(ctx context.Context, name string) (*models.Playlist, error) {
	id, err := r.insert(ctx, "failed to create playlist", "INSERT INTO Playlist (Name) VALUES (?)", name)
	if err != nil {
		return nil, err
	}
	return &models.Playlist{PlaylistID: id, Name: name}, nil
}

// AddTrack stores the association.
func (r *PlaylistRepository) AddTrack(ctx context.Context, pt models.PlaylistTrack) error {
	_, err := r.q.ExecContext(ctx,
		"INSERT INTO PlaylistTrack (PlaylistId, TrackId) VALUES (?, ?)", pt.PlaylistID, pt.TrackID)
	if err != nil {
		return r.fail(err, "failed to add track to playlist", "playlist_id", pt.PlaylistID, "track_id", pt.TrackID)
	}
	return nil
}

// RemoveTrack deletes the association. It returns [shared.ErrNotFound] when there was none.
func (r *PlaylistRepository) RemoveTrack(ctx context.Context, pt models.PlaylistTrack) error {
	return r.remove(ctx, "failed to remove track from playlist",
		"DELETE FROM PlaylistTrack WHERE PlaylistId = ? AND TrackId = ?", pt.PlaylistID, pt.TrackID)
}

// Delete removes a playlist. Callers check [PlaylistRepository.HasPlaylistTracks] first.
func (r *PlaylistRepository) Delete(ctx context.Context, id int64) error {
	return r.remove(ctx, "failed to delete playlist", "DELETE FROM Playlist WHERE PlaylistId = ?", id)
}
