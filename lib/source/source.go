// Package source resolves which games a report covers.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/icco/gamereport/lib/validation"
	"github.com/icco/gamereport/models"
	"gorm.io/gorm"
)

// PlayedReportName names the report built from games with recorded playtime.
const PlayedReportName = "played"

// ErrPlaylistNotFound is returned when the playlist file does not exist.
var ErrPlaylistNotFound = errors.New("playlist file not found")

// Playlist is the subset of a launcher playlist export that reports read.
// Other fields, the title included, are ignored.
type Playlist struct {
	Games []PlaylistEntry `json:"games"`
}

// PlaylistEntry is one game reference in a playlist.
type PlaylistEntry struct {
	GameID string `json:"gameId"`
}

// CheckPlaylist reports ErrPlaylistNotFound when path is missing, so callers
// can fail before touching the catalog or the report directory.
func CheckPlaylist(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPlaylistNotFound, path)
		}
		return fmt.Errorf("failed to stat playlist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrPlaylistNotFound, path)
	}
	return nil
}

// FromPlaylist returns the playlist's game ids in file order.
func FromPlaylist(path string) ([]string, error) {
	if err := CheckPlaylist(path); err != nil {
		return nil, err
	}

	// #nosec G304 - path is the playlist the user asked a report for
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read playlist: %w", err)
	}

	if err := validation.ValidatePlaylist(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var playlist Playlist
	if err := json.Unmarshal(data, &playlist); err != nil {
		return nil, fmt.Errorf("failed to unmarshal playlist: %w", err)
	}

	ids := make([]string, 0, len(playlist.Games))
	for _, game := range playlist.Games {
		ids = append(ids, game.GameID)
	}
	return ids, nil
}

// Played returns the ids of every game with positive playtime, in catalog order.
func Played(ctx context.Context, db *gorm.DB) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&models.Game{}).
		Where("playtime > ?", 0).
		Order("rowid").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query played games: %w", err)
	}
	return ids, nil
}

// ReportName derives a report name from a playlist path: the file name with
// its extension stripped.
func ReportName(playlistPath string) string {
	base := filepath.Base(playlistPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
