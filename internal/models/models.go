// package models defines the data model for the catalog API
package models

// Artist owns zero or more albums.
type Artist struct {
	ArtistID int64  `json:"ArtistId"`
	Name     string `json:"Name"`
}

// Album belongs to exactly one artist. ArtistName is filled by joined reads.
type Album struct {
	AlbumID    int64  `json:"AlbumId"`
	Title      string `json:"Title"`
	ArtistID   int64  `json:"ArtistId"`
	ArtistName string `json:"ArtistName,omitempty"`
}

// Track is always read joined with its media type and genre names.
type Track struct {
	TrackID       int64   `json:"TrackId"`
	Name          string  `json:"Name"`
	AlbumID       int64   `json:"AlbumId"`
	MediaTypeID   int64   `json:"MediaTypeId"`
	MediaTypeName string  `json:"MediaTypeName"`
	GenreID       int64   `json:"GenreId"`
	GenreName     string  `json:"GenreName"`
	Composer      *string `json:"Composer"`
	Milliseconds  int64   `json:"Milliseconds"`
	Bytes         int64   `json:"Bytes"`
	UnitPrice     float64 `json:"UnitPrice"`
}

type Genre struct {
	GenreID int64  `json:"GenreId"`
	Name    string `json:"Name"`
}

type MediaType struct {
	MediaTypeID int64  `json:"MediaTypeId"`
	Name        string `json:"Name"`
}

type Playlist struct {
	PlaylistID int64  `json:"PlaylistId"`
	Name       string `json:"Name"`
}

// PlaylistDetail is a playlist together with its tracks ordered by track name.
type PlaylistDetail struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}

// PlaylistTrack associates a track with a playlist. It has no identity of its own.
type PlaylistTrack struct {
	PlaylistID int64 `json:"PlaylistId"`
	TrackID    int64 `json:"TrackId"`
}
