// Package games loads catalog records for a set of identifiers.
package games

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/icco/gamereport/models"
	"gorm.io/gorm"
)

// chunkSize keeps each IN clause below SQLite's bound parameter limit.
const chunkSize = 500

// ErrMissingGames is matched by errors.Is for any *MissingError.
var ErrMissingGames = errors.New("games missing from catalog")

// MissingError lists requested ids that have no catalog row, in the order
// they were first requested.
type MissingError struct {
	IDs []string
}

func (e *MissingError) Error() string {
	const shown = 5
	ids := e.IDs
	suffix := ""
	if len(ids) > shown {
		suffix = fmt.Sprintf(" and %d more", len(ids)-shown)
		ids = ids[:shown]
	}
	return fmt.Sprintf("%d games missing from catalog: %s%s", len(e.IDs), strings.Join(ids, ", "), suffix)
}

func (e *MissingError) Is(target error) bool {
	return target == ErrMissingGames
}

// Load fetches the catalog rows for ids with one query per chunk and returns
// them in the order of ids. Repeated ids yield repeated rows. Any id without a
// row fails the whole load with a *MissingError.
func Load(ctx context.Context, db *gorm.DB, ids []string) ([]models.Game, error) {
	byID := make(map[string]models.Game, len(ids))

	unique := dedupe(ids)
	for start := 0; start < len(unique); start += chunkSize {
		end := min(start+chunkSize, len(unique))

		var batch []models.Game
		if err := db.WithContext(ctx).Where("id IN ?", unique[start:end]).Find(&batch).Error; err != nil {
			return nil, fmt.Errorf("failed to load games: %w", err)
		}
		for _, g := range batch {
			byID[g.ID] = g
		}
	}

	var missing []string
	for _, id := range unique {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingError{IDs: missing}
	}

	games := make([]models.Game, 0, len(ids))
	for _, id := range ids {
		games = append(games, byID[id])
	}
	return games, nil
}

// dedupe keeps the first occurrence of each id.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
