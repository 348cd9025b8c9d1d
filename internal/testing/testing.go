// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/desertthunder/chinook/internal/shared"
)

// Fixture rows seeded by [Seed].
//
//	Artist 1 AC/DC          Album 1 For Those About To Rock We Salute You  (tracks 1, 2)
//	                        Album 4 Unreleased Demos                       (no tracks)
//	Artist 2 Accept         Album 2 Balls to the Wall                      (track 3)
//	Artist 3 Aerosmith      Album 3 Love Songs                             (tracks 4, 5)
//	Artist 4 Lonely Artist  no albums
//
//	Playlist 1 Music           tracks 1, 4
//	Playlist 2 Movies          no tracks
//	Playlist 3 Heavy Rotation  track 3
//
// Track 5 is in no playlist. Track 3 has no composer.
const (
	ArtistWithAlbums    = 1
	ArtistWithoutAlbums = 4
	AlbumWithTracks     = 1
	AlbumWithoutTracks  = 4
	TrackInPlaylist     = 1
	TrackNotInPlaylist  = 5
	PlaylistWithTracks  = 1
	PlaylistEmpty       = 2
	MissingID           = 9999
)

var seed = []string{
	`INSERT INTO Artist (ArtistId, Name) VALUES (1, 'AC/DC'), (2, 'Accept'), (3, 'Aerosmith'), (4, 'Lonely Artist')`,
	`INSERT INTO Album (AlbumId, Title, ArtistId) VALUES
		(1, 'For Those About To Rock We Salute You', 1),
		(2, 'Balls to the Wall', 2),
		(3, 'Love Songs', 3),
		(4, 'Unreleased Demos', 1)`,
	`INSERT INTO Track (TrackId, Name, AlbumId, MediaTypeId, GenreId, Composer, Milliseconds, Bytes, UnitPrice) VALUES
		(1, 'For Those About To Rock (We Salute You)', 1, 1, 1, 'Angus Young, Malcolm Young, Brian Johnson', 343719, 11170334, 0.99),
		(2, 'Put The Finger On You', 1, 1, 1, 'Angus Young, Malcolm Young, Brian Johnson', 205662, 6713451, 0.99),
		(3, 'Balls to the Wall', 2, 2, 1, NULL, 342562, 5510424, 0.99),
		(4, 'Dream On', 3, 1, 1, 'Steven Tyler', 268000, 8000000, 1.29),
		(5, 'Angel', 3, 1, 1, 'Steven Tyler, Desmond Child', 307000, 9000000, 0.99)`,
	`INSERT INTO Playlist (PlaylistId, Name) VALUES (1, 'Music'), (2, 'Movies'), (3, 'Heavy Rotation')`,
	`INSERT INTO PlaylistTrack (PlaylistId, TrackId) VALUES (1, 1), (1, 4), (3, 3)`,
}

// NewTestDatabase creates a file-backed sqlite database in a temp dir with the catalog schema
// applied. The database is closed when the test finishes.
//
// Each new connection to :memory: opens a separate, empty database, so a file is used.
func NewTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(shared.DatabaseConfig{
		Driver: shared.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "catalog.db"),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// NewSeededDatabase is [NewTestDatabase] plus the fixture rows.
func NewSeededDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db := NewTestDatabase(t)
	Seed(t, db)
	return db
}

// Seed inserts the fixture rows.
func Seed(t *testing.T, db *sql.DB) {
	t.Helper()

	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed database: %v", err)
		}
	}
}

// MustCount returns SELECT COUNT(*) for the given query.
func MustCount(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	return n
}

// FailingConnector hands out no connections.
type FailingConnector struct{}

func (FailingConnector) Conn(context.Context) (*sql.Conn, error) {
	return nil, errors.New("connection refused")
}

func (FailingConnector) PingContext(context.Context) error {
	return errors.New("connection refused")
}
