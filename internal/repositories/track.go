package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
)

// TrackRepository reads and writes the Track table. Reads are joined with MediaType and Genre.
type TrackRepository struct {
	store
}

const trackColumns = `
	SELECT
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
		Track
	INNER JOIN
		MediaType ON Track.MediaTypeId = MediaType.MediaTypeId
	INNER JOIN
		Genre ON Track.GenreId = Genre.GenreId
`

func scanTrack(row scanner) (models.Track, error) {
	var (
		track         models.Track
		albumID       sql.NullInt64
		mediaTypeName sql.NullString
		genreName     sql.NullString
		composer      sql.NullString
		bytes         sql.NullInt64
	)

	err := row.Scan(
		&track.TrackID,
		&track.Name,
		&albumID,
		&track.MediaTypeID,
		&mediaTypeName,
		&track.GenreID,
		&genreName,
		&composer,
		&track.Milliseconds,
		&bytes,
		&track.UnitPrice,
	)
	if err != nil {
		return track, err
	}

	track.AlbumID = albumID.Int64
	track.MediaTypeName = mediaTypeName.String
	track.GenreName = genreName.String
	track.Bytes = bytes.Int64
	if composer.Valid {
		track.Composer = &composer.String
	}

	return track, nil
}

// Get returns the track with the given id.
func (r *TrackRepository) Get(ctx context.Context, id int64) (*models.Track, error) {
	row := r.q.QueryRowContext(ctx, trackColumns+" WHERE Track.TrackId = ?", id)
	track, err := one(r.store, row, scanTrack, "failed to get track", "id", id)
	if err != nil {
		return nil, err
	}
	return &track, nil
}

// Search returns tracks whose name contains text, ordered by name.
func (r *TrackRepository) Search(ctx context.Context, text string) ([]models.Track, error) {
	return all(ctx, r.store, scanTrack, "failed to search tracks",
		trackColumns+" WHERE Track.Name LIKE ? ORDER BY Track.Name", searchTerm(text))
}

// ListByComposer returns tracks whose composer contains text, ordered by composer then name.
func (r *TrackRepository) ListByComposer(ctx context.Context, text string) ([]models.Track, error) {
	return all(ctx, r.store, scanTrack, "failed to search tracks by composer",
		trackColumns+" WHERE Track.Composer LIKE ? ORDER BY Track.Composer, Track.Name", searchTerm(text))
}

// ListByAlbum returns the tracks of one album ordered by name.
func (r *TrackRepository) ListByAlbum(ctx context.Context, albumID int64) ([]models.Track, error) {
	return all(ctx, r.store, scanTrack, "failed to list tracks by album",
		trackColumns+" WHERE Track.AlbumId = ? ORDER BY Track.Name", albumID)
}

// HasTracks reports whether any track references the album.
func (r *TrackRepository) HasTracks(ctx context.Context, albumID int64) (bool, error) {
	return r.exists(ctx, "failed to check tracks for album",
		"SELECT COUNT(*) FROM Track WHERE AlbumId = ?", albumID)
}

// Create inserts a track and returns the reloaded, joined row.
//
// in must already satisfy [models.TrackInput.ValidateCreate].
func (r *TrackRepository) Create(ctx context.Context, in models.TrackInput) (*models.Track, error) {
	query := `
		INSERT INTO Track (Name, AlbumId, MediaTypeId, GenreId, Composer, Milliseconds, Bytes, UnitPrice)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.insert(ctx, "failed to create track", query,
		*in.Name,
		*in.AlbumID,
		*in.MediaTypeID,
		*in.GenreID,
		*in.Composer,
		*in.Milliseconds,
		*in.Bytes,
		*in.UnitPrice,
	)
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

// Update writes the fields present in in and returns the reloaded track.
func (r *TrackRepository) Update(ctx context.Context, id int64, in models.TrackInput) (*models.Track, error) {
	var a assignments
	if in.Name != nil {
		a.set("Name", *in.Name)
	}
	if in.AlbumID != nil {
		a.set("AlbumId", *in.AlbumID)
	}
	if in.MediaTypeID != nil {
		a.set("MediaTypeId", *in.MediaTypeID)
	}
	if in.GenreID != nil {
		a.set("GenreId", *in.GenreID)
	}
	if in.Composer != nil {
		a.set("Composer", *in.Composer)
	}
	if in.Milliseconds != nil {
		a.set("Milliseconds", *in.Milliseconds)
	}
	if in.Bytes != nil {
		a.set("Bytes", *in.Bytes)
	}
	if in.UnitPrice != nil {
		a.set("UnitPrice", *in.UnitPrice)
	}
	if len(a.columns) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", shared.ErrInvalidInput)
	}

	query := "UPDATE Track SET " + strings.Join(a.columns, ", ") + " WHERE TrackId = ?"
	if _, err := r.q.ExecContext(ctx, query, append(a.args, id)...); err != nil {
		return nil, r.fail(err, "failed to update track", "id", id)
	}

	return r.Get(ctx, id)
}

// Delete removes a track. Callers check [PlaylistRepository.HasTrack] first.
func (r *TrackRepository) Delete(ctx context.Context, id int64) error {
	return r.remove(ctx, "failed to delete track", "DELETE FROM Track WHERE TrackId = ?", id)
}
