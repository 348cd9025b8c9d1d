// package formatter renders catalog playlists as CSV, Markdown, plain text or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
)

// Format names an export format.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "text"
	JSON     Format = "json"
)

// Formats lists every supported [Format].
var Formats = []Format{CSV, Markdown, Text, JSON}

// ParseFormat accepts a format name or its file extension.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, name)
}

// Extension returns the file extension, without dot, used for f.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return "md"
	case Text:
		return "txt"
	}
	return string(f)
}

// FormatDuration renders milliseconds as m:ss, or h:mm:ss from one hour on.
func FormatDuration(ms int64) string {
	total := ms / 1000
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func composer(t models.Track) string {
	if t.Composer == nil {
		return ""
	}
	return *t.Composer
}

// ExportToCSV writes one row per track with columns TrackId, Name, Composer, Genre, MediaType, Duration, UnitPrice.
func ExportToCSV(playlist *models.PlaylistDetail) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"TrackId", "Name", "Composer", "Genre", "MediaType", "Duration", "UnitPrice"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range playlist.Tracks {
		record := []string{
			strconv.FormatInt(track.TrackID, 10),
			track.Name,
			composer(track),
			track.GenreName,
			track.MediaTypeName,
			FormatDuration(track.Milliseconds),
			strconv.FormatFloat(track.UnitPrice, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a heading, a summary and a numbered track list.
func ExportToMarkdown(playlist *models.PlaylistDetail) ([]byte, error) {
	var buf bytes.Buffer

	var total int64
	for _, track := range playlist.Tracks {
		total += track.Milliseconds
	}

	fmt.Fprintf(&buf, "# %s\n\n", playlist.Name)
	fmt.Fprintf(&buf, "**Tracks**: %d\n", len(playlist.Tracks))
	fmt.Fprintf(&buf, "**Length**: %s\n\n", FormatDuration(total))

	buf.WriteString("## Tracks\n\n")
	for i, track := range playlist.Tracks {
		byPart := ""
		if c := composer(track); c != "" {
			byPart = fmt.Sprintf(" by %s", c)
		}
		fmt.Fprintf(&buf, "%d. %s%s (%s) [%s]\n", i+1, track.Name, byPart, track.GenreName, FormatDuration(track.Milliseconds))
	}

	return buf.Bytes(), nil
}

// ExportToText renders the playlist name and one line per track.
func ExportToText(playlist *models.PlaylistDetail) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", playlist.Name)
	fmt.Fprintf(&buf, "Tracks: %d\n\n", len(playlist.Tracks))

	for i, track := range playlist.Tracks {
		fmt.Fprintf(&buf, "%d. %s [%s]\n", i+1, track.Name, FormatDuration(track.Milliseconds))
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders the playlist exactly as GET /playlists/{id} returns it, indented.
func ExportToJSON(playlist *models.PlaylistDetail) ([]byte, error) {
	data, err := json.MarshalIndent(playlist, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal playlist: %w", err)
	}
	return append(data, '\n'), nil
}

// Export renders playlist in format f.
func Export(playlist *models.PlaylistDetail, f Format) ([]byte, error) {
	switch f {
	case CSV:
		return ExportToCSV(playlist)
	case Markdown:
		return ExportToMarkdown(playlist)
	case Text:
		return ExportToText(playlist)
	case JSON:
		return ExportToJSON(playlist)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
}

// WriteExport renders playlist and writes it to path, creating parent directories.
//
// An empty path defaults to playlist_{id}.{ext} in the working directory. Returns the path written.
func WriteExport(playlist *models.PlaylistDetail, f Format, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("playlist_%d.%s", playlist.ID, f.Extension())
	}

	data, err := Export(playlist, f)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	return path, nil
}
