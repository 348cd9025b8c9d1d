package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/chinook/internal/formatter"
	"github.com/desertthunder/chinook/internal/repositories"
	"github.com/desertthunder/chinook/internal/shared"
	"github.com/urfave/cli/v3"
)

// exportCommand writes catalog data to files.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export catalog data to files",
		Commands: []*cli.Command{
			{
				Name:  "playlist",
				Usage: "Export a playlist and its tracks",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "id",
						Usage: "Playlist ID to export",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: csv, markdown, text or json",
						Value:   string(formatter.Markdown),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: playlist_{id}.{ext})",
					},
				},
				Action: r.ExportPlaylist,
			},
		},
	}
}

// ExportPlaylist loads one playlist with its tracks and writes it in the requested format.
func (r *Runner) ExportPlaylist(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if !cmd.IsSet("id") {
		return fmt.Errorf("%w: --id", shared.ErrMissingArgument)
	}
	id := int64(cmd.Int("id"))
	if id <= 0 {
		return fmt.Errorf("%w: --id must be positive", shared.ErrInvalidArgument)
	}

	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	db, err := shared.NewDatabase(config.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	catalog := repositories.NewCatalog(db, r.logger)
	playlist, err := catalog.Playlists.Get(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("%w: playlist %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(playlist, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("exported playlist", "id", id, "format", format, "path", path)
	return r.writePlain("✓ Exported %q (%d tracks) to %s\n", playlist.Name, len(playlist.Tracks), path)
}
