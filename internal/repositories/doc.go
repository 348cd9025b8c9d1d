// Package repositories implements the catalog data access layer on top of database/sql.
//
// Each repository runs hand-written, parameterized SQL against a [Querier], which is satisfied by
// *sql.DB, *sql.Conn and *sql.Tx. Identifiers are bound as integers and search text is bound as a
// %term% string, never concatenated into a statement. Reads that span entities (album and artist,
// track and media type and genre, playlist and track) are SQL joins.
//
// Key Implementations:
//   - [ArtistRepository] : artists, name search
//   - [AlbumRepository] : albums joined with their artist, per-artist listing, dependency check
//   - [TrackRepository] : tracks joined with media type and genre, partial updates, dependency check
//   - [GenreRepository], [MediaTypeRepository] : read-only lookup tables
//   - [PlaylistRepository] : playlists, track membership, dependency checks
//
// Results are distinguishable: a value, [shared.ErrNotFound] when no row matched, or
// [shared.ErrStore] wrapping the driver error when the statement failed. Store failures are
// logged here, at the data access boundary, before they are returned.
//
// The Has* dependency checks answer true when the check itself fails, so a caller that ignores
// the error still refuses to delete.
package repositories
