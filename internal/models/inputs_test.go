package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/chinook/internal/shared"
)

func str(s string) *string { return &s }
func num(n int64) *int64 { return &n }
func price(p float64) *float64 { return &p }

func completeTrack() TrackInput {
	return TrackInput{
		Name:         str("Intro"),
		AlbumID:      num(1),
		MediaTypeID:  num(1),
		GenreID:      num(1),
		Composer:     str("Someone"),
		Milliseconds: num(1000),
		Bytes:        num(2048),
		UnitPrice:    price(0.99),
	}
}

func TestTrackInputValidateCreate(t *testing.T) {
	tt := []struct {
		name      string
		mutate    func(in *TrackInput)
		wantField string
	}{
		{name: "complete", mutate: func(in *TrackInput) {}},
		{name: "missing name", mutate: func(in *TrackInput) { in.Name = nil }, wantField: "name"},
		{name: "empty name", mutate: func(in *TrackInput) { in.Name = str("  ") }, wantField: "name"},
		{name: "zero album", mutate: func(in *TrackInput) { in.AlbumID = num(0) }, wantField: "album_id"},
		{name: "missing media type", mutate: func(in *TrackInput) { in.MediaTypeID = nil }, wantField: "media_type_id"},
		{name: "missing genre", mutate: func(in *TrackInput) { in.GenreID = nil }, wantField: "genre_id"},
		{name: "empty composer", mutate: func(in *TrackInput) { in.Composer = str("") }, wantField: "composer"},
		{name: "missing milliseconds", mutate: func(in *TrackInput) { in.Milliseconds = nil }, wantField: "milliseconds"},
		{name: "negative bytes", mutate: func(in *TrackInput) { in.Bytes = num(-1) }, wantField: "bytes"},
		{name: "missing unit price", mutate: func(in *TrackInput) { in.UnitPrice = nil }, wantField: "unit_price"},
		{name: "free track", mutate: func(in *TrackInput) { in.UnitPrice = price(0) }},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			in := completeTrack()
			tc.mutate(&in)

			err := in.ValidateCreate()
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, shared.ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
			if !strings.HasSuffix(err.Error(), ": "+tc.wantField) {
				t.Errorf("expected error to name %s, got %v", tc.wantField, err)
			}
		})
	}
}

func TestTrackInputNormalize(t *testing.T) {
	in := TrackInput{Name: str(""), Composer: str("New"), Bytes: num(0), UnitPrice: price(-2)}.Normalize()

	if in.Name != nil || in.Bytes != nil || in.UnitPrice != nil {
		t.Errorf("expected unusable fields to be dropped, got %+v", in)
	}
	if in.Composer == nil || *in.Composer != "New" {
		t.Errorf("expected composer to be kept")
	}
	if in.Empty() {
		t.Error("input with a composer should not be empty")
	}
	if !(TrackInput{}).Empty() {
		t.Error("zero input should be empty")
	}
}

func TestAlbumInput(t *testing.T) {
	t.Run("ValidateCreate", func(t *testing.T) {
		if err := (AlbumInput{Title: str("X"), ArtistID: num(1)}).ValidateCreate(); err != nil {
			t.Errorf("expected valid input, got %v", err)
		}
		if err := (AlbumInput{ArtistID: num(1)}).ValidateCreate(); !errors.Is(err, shared.ErrMissingField) {
			t.Errorf("expected missing title, got %v", err)
		}
		if err := (AlbumInput{Title: str("X"), ArtistID: num(0)}).ValidateCreate(); err == nil || !strings.Contains(err.Error(), "artist_id") {
			t.Errorf("expected missing artist_id, got %v", err)
		}
	})

	t.Run("Normalize", func(t *testing.T) {
		if !(AlbumInput{Title: str(""), ArtistID: num(-4)}).Normalize().Empty() {
			t.Error("expected all fields to be dropped")
		}
		in := AlbumInput{Title: str("Kept")}.Normalize()
		if in.Empty() || *in.Title != "Kept" {
			t.Errorf("expected title to be kept, got %+v", in)
		}
	})
}

func TestSimpleInputs(t *testing.T) {
	if err := (ArtistInput{}).ValidateCreate(); !errors.Is(err, shared.ErrMissingField) {
		t.Errorf("artist without name: got %v", err)
	}
	if err := (PlaylistInput{Name: str("Mix")}).ValidateCreate(); err != nil {
		t.Errorf("playlist with name: got %v", err)
	}
	if err := (PlaylistTrackInput{TrackID: num(0)}).ValidateCreate(); !errors.Is(err, shared.ErrMissingField) {
		t.Errorf("zero track id: got %v", err)
	}
}
