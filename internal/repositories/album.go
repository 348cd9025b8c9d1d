package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
)

// AlbumRepository reads and writes the Album table. Reads are joined with Artist.
type AlbumRepository struct {
	store
}

const albumColumns = `
	SELECT
		Album.AlbumId,
		Album.Title,
		Album.ArtistId,
		Artist.Name AS ArtistName
	FROM
		Album
	INNER JOIN
		Artist ON Album.ArtistId = Artist.ArtistId
`

func scanAlbum(row scanner) (models.Album, error) {
	var (
		album      models.Album
		artistName sql.NullString
	)
	if err := row.Scan(&album.AlbumID, &album.Title, &album.ArtistID, &artistName); err != nil {
		return album, err
	}
	album.ArtistName = artistName.String
	return album, nil
}

// List returns every album ordered by title.
func (r *AlbumRepository) List(ctx context.Context) ([]models.Album, error) {
	return all(ctx, r.store, scanAlbum, "failed to list albums", albumColumns+" ORDER BY Album.Title")
}

// Get returns the album with the given id.
func (r *AlbumRepository) Get(ctx context.Context, id int64) (*models.Album, error) {
	row := r.q.QueryRowContext(ctx, albumColumns+" WHERE Album.AlbumId = ?", id)
	album, err := one(r.store, row, scanAlbum, "failed to get album", "id", id)
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// Search returns albums whose title contains text, ordered by title.
func (r *AlbumRepository) Search(ctx context.Context, text string) ([]models.Album, error) {
	return all(ctx, r.store, scanAlbum, "failed to search albums",
		albumColumns+" WHERE Album.Title LIKE ? ORDER BY Album.Title", searchTerm(text))
}

// ListByArtist returns the albums of one artist ordered by title.
func (r *AlbumRepository) ListByArtist(ctx context.Context, artistID int64) ([]models.Album, error) {
	return all(ctx, r.store, scanAlbum, "failed to list albums by artist",
		albumColumns+" WHERE Album.ArtistId = ? ORDER BY Album.Title", artistID)
}

// HasAlbums reports whether any album references the artist.
func (r *AlbumRepository) HasAlbums(ctx context.Context, artistID int64) (bool, error) {
	return r.exists(ctx, "failed to check albums for artist",
		"SELECT COUNT(*) FROM Album WHERE ArtistId = ?", artistID)
}

// Create inserts an album and echoes it back with the assigned id.
func (r *AlbumRepository) Create(ctx context.Context, title string, artistID int64) (*models.Album, error) {
	id, err := r.insert(ctx, "failed to create album",
		"INSERT INTO Album (Title, ArtistId) VALUES (?, ?)", title, artistID)
	if err != nil {
		return nil, err
	}
	return &models.Album{AlbumID: id, Title: title, ArtistID: artistID}, nil
}

// Update writes the fields present in in and returns the reloaded album.
func (r *AlbumRepository) Update(ctx context.Context, id int64, in models.AlbumInput) (*models.Album, error) {
	var a assignments
	if in.Title != nil {
		a.set("Title", *in.Title)
	}
	if in.ArtistID != nil {
		a.set("ArtistId", *in.ArtistID)
	}
	if len(a.columns) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", shared.ErrInvalidInput)
	}

	query := "UPDATE Album SET " + strings.Join(a.columns, ", ") + " WHERE AlbumId = ?"
	if _, err := r.q.ExecContext(ctx, query, append(a.args, id)...); err != nil {
		return nil, r.fail(err, "failed to update album", "id", id)
	}

	return r.Get(ctx, id)
}

// Delete removes an album. Callers check [TrackRepository.HasTracks] first.
func (r *AlbumRepository) Delete(ctx context.Context, id int64) error {
	return r.remove(ctx, "failed to delete album", "DELETE FROM Album WHERE AlbumId = ?", id)
}
