package repositories

import (
	"context"
	"database/sql"

	"github.com/desertthunder/chinook/internal/models"
)

// GenreRepository reads the Genre lookup table.
type GenreRepository struct {
	store
}

// List returns every genre ordered by name.
func (r *GenreRepository) List(ctx context.Context) ([]models.Genre, error) {
	return all(ctx, r.store, func(row scanner) (models.Genre, error) {
		var (
			genre models.Genre
			name  sql.NullString
		)
		err := row.Scan(&genre.GenreID, &name)
		genre.Name = name.String
		return genre, err
	}, "failed to list genres", "SELECT GenreId, Name FROM Genre ORDER BY Name")
}

// MediaTypeRepository reads the MediaType lookup table.
type MediaTypeRepository struct {
	store
}

// List returns every media type ordered by name.
func (r *MediaTypeRepository) List(ctx context.Context) ([]models.MediaType, error) {
	return all(ctx, r.store, func(row scanner) (models.MediaType, error) {
		var (
			mediaType models.MediaType
			name      sql.NullString
		)
		err := row.Scan(&mediaType.MediaTypeID, &name)
		mediaType.Name = name.String
		return mediaType, err
	}, "failed to list media types", "SELECT MediaTypeId, Name FROM MediaType ORDER BY Name")
}
