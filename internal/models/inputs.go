package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/chinook/internal/shared"
)

func missing(field string) error {
	return fmt.Errorf("%w: %s", shared.ErrMissingField, field)
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// AlbumInput is the body of POST and PUT /albums.
type AlbumInput struct {
	Title    *string `json:"title"`
	ArtistID *int64  `json:"artist_id"`
}

// ValidateCreate requires a non-empty title and a positive artist_id.
func (in AlbumInput) ValidateCreate() error {
	if blank(in.Title) {
		return missing("title")
	}
	if in.ArtistID == nil || *in.ArtistID <= 0 {
		return missing("artist_id")
	}
	return nil
}

// Normalize drops fields that are present but unusable, so an update only touches valid fields.
func (in AlbumInput) Normalize() AlbumInput {
	if blank(in.Title) {
		in.Title = nil
	}
	if in.ArtistID != nil && *in.ArtistID <= 0 {
		in.ArtistID = nil
	}
	return in
}

// Empty reports whether no field would be written.
func (in AlbumInput) Empty() bool {
	return in.Title == nil && in.ArtistID == nil
}

// ArtistInput is the body of POST /artists.
type ArtistInput struct {
	Name *string `json:"name"`
}

func (in ArtistInput) ValidateCreate() error {
	if blank(in.Name) {
		return missing("name")
	}
	return nil
}

// PlaylistInput is the body of POST /playlists.
type PlaylistInput struct {
	Name *string `json:"name"`
}

func (in PlaylistInput) ValidateCreate() error {
	if blank(in.Name) {
		return missing("name")
	}
	return nil
}

// PlaylistTrackInput is the body of POST /playlists/{id}/tracks.
type PlaylistTrackInput struct {
	TrackID *int64 `json:"track_id"`
}

func (in PlaylistTrackInput) ValidateCreate() error {
	if in.TrackID == nil || *in.TrackID <= 0 {
		return missing("track_id")
	}
	return nil
}

// TrackInput is the body of POST and PUT /tracks.
//
// On create every field is required. Identifier, duration and size fields must be positive;
// unit_price must be present and not negative.
type TrackInput struct {
	Name         *string  `json:"name"`
	AlbumID      *int64   `json:"album_id"`
	MediaTypeID  *int64   `json:"media_type_id"`
	GenreID      *int64   `json:"genre_id"`
	Composer     *string  `json:"composer"`
	Milliseconds *int64   `json:"milliseconds"`
	Bytes        *int64   `json:"bytes"`
	UnitPrice    *float64 `json:"unit_price"`
}

func positive(v *int64) bool {
	return v != nil && *v > 0
}

// ValidateCreate returns an error naming the first missing field, in column order.
func (in TrackInput) ValidateCreate() error {
	switch {
	case blank(in.Name):
		return missing("name")
	case !positive(in.AlbumID):
		return missing("album_id")
	case !positive(in.MediaTypeID):
		return missing("media_type_id")
	case !positive(in.GenreID):
		return missing("genre_id")
	case blank(in.Composer):
		return missing("composer")
	case !positive(in.Milliseconds):
		return missing("milliseconds")
	case !positive(in.Bytes):
		return missing("bytes")
	case in.UnitPrice == nil || *in.UnitPrice < 0:
		return missing("unit_price")
	}
	return nil
}

// Normalize drops fields that are present but empty or out of range.
func (in TrackInput) Normalize() TrackInput {
	if blank(in.Name) {
		in.Name = nil
	}
	if blank(in.Composer) {
		in.Composer = nil
	}
	for _, v := range []**int64{&in.AlbumID, &in.MediaTypeID, &in.GenreID, &in.Milliseconds, &in.Bytes} {
		if *v != nil && !positive(*v) {
			*v = nil
		}
	}
	if in.UnitPrice != nil && *in.UnitPrice < 0 {
		in.UnitPrice = nil
	}
	return in
}

func (in TrackInput) Empty() bool {
	return in.Name == nil && in.AlbumID == nil && in.MediaTypeID == nil && in.GenreID == nil &&
		in.Composer == nil && in.Milliseconds == nil && in.Bytes == nil && in.UnitPrice == nil
}
