package repositories

import (
	"context"
	"database/sql"

	"github.com/desertthunder/chinook/internal/models"
)

// ArtistRepository reads and writes the Artist table.
type ArtistRepository struct {
	store
}

const artistColumns = `SELECT ArtistId, Name FROM Artist`

func scanArtist(row scanner) (models.Artist, error) {
	var (
		artist models.Artist
		name   sql.NullString
	)
	if err := row.Scan(&artist.ArtistID, &name); err != nil {
		return artist, err
	}
	artist.Name = name.String
	return artist, nil
}

// List returns every artist ordered by name.
func (r *ArtistRepository) List(ctx context.Context) ([]models.Artist, error) {
	return all(ctx, r.store, scanArtist, "failed to list artists", artistColumns+" ORDER BY Name")
}

// Get returns the artist with the given id.
func (r *ArtistRepository) Get(ctx context.Context, id int64) (*models.Artist, error) {
	row := r.q.QueryRowContext(ctx, artistColumns+" WHERE ArtistId = ?", id)
	artist, err := one(r.store, row, scanArtist, "failed to get artist", "id", id)
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// Search returns artists whose name contains text, ordered by name.
func (r *ArtistRepository) Search(ctx context.Context, text string) ([]models.Artist, error) {
	return all(ctx, r.store, scanArtist, "failed to search artists",
		artistColumns+" WHERE Name LIKE ? ORDER BY Name", searchTerm(text))
}

// Create inserts an artist and echoes it back with the assigned id.
func (r *ArtistRepository) Create(ctx context.Context, name string) (*models.Artist, error) {
	id, err := r.insert(ctx, "failed to create artist", "INSERT INTO Artist (Name) VALUES (?)", name)
	if err != nil {
		return nil, err
	}
	return &models.Artist{ArtistID: id, Name: name}, nil
}

// Delete removes an artist. Callers check [AlbumRepository.HasAlbums] first.
func (r *ArtistRepository) Delete(ctx context.Context, id int64) error {
	return r.remove(ctx, "failed to delete artist", "DELETE FROM Artist WHERE ArtistId = ?", id)
}
