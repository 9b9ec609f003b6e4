package games

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"testing"

	"github.com/icco/gamereport/lib/db"
	"github.com/icco/gamereport/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalog(t *testing.T, games []models.Game) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gormDB, err := db.Create(ctx, filepath.Join(t.TempDir(), "catalog.sqlite"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gormDB) })

	if len(games) > 0 {
		require.NoError(t, gormDB.CreateInBatches(&games, 200).Error)
	}
	return gormDB
}

func ids(games []models.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.ID
	}
	return out
}

func TestLoadKeepsRequestOrder(t *testing.T) {
	gormDB := newCatalog(t, []models.Game{
		{ID: "a", Title: "Alpha"},
		{ID: "b", Title: "Beta"},
		{ID: "c", Title: "Gamma"},
	})

	got, err := Load(context.Background(), gormDB, []string{"c", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(got))
	assert.Equal(t, "Gamma", got[0].Title)
}

func TestLoadRepeatedIDs(t *testing.T) {
	gormDB := newCatalog(t, []models.Game{{ID: "a"}, {ID: "b"}})

	got, err := Load(context.Background(), gormDB, []string{"a", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a"}, ids(got))
}

func TestLoadEmpty(t *testing.T) {
	gormDB := newCatalog(t, nil)

	got, err := Load(context.Background(), gormDB, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadMissing(t *testing.T) {
	gormDB := newCatalog(t, []models.Game{{ID: "a"}})

	_, err := Load(context.Background(), gormDB, []string{"x", "a", "y", "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingGames)

	var missing *MissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"x", "y"}, missing.IDs)
}

func TestLoadAcrossChunks(t *testing.T) {
	n := chunkSize*2 + 37
	games := make([]models.Game, n)
	for i := range games {
		games[i] = models.Game{ID: fmt.Sprintf("game-%04d", i), Playtime: int64(i)}
	}
	gormDB := newCatalog(t, games)

	want := ids(games)
	slices.Reverse(want)

	got, err := Load(context.Background(), gormDB, want)
	require.NoError(t, err)
	require.Len(t, got, n)
	assert.Equal(t, want, ids(got))
	assert.Equal(t, int64(n-1), got[0].Playtime)
}

func TestMissingErrorMessage(t *testing.T) {
	err := &MissingError{IDs: []string{"1", "2", "3", "4", "5", "6", "7"}}
	assert.Equal(t, "7 games missing from catalog: 1, 2, 3, 4, 5 and 2 more", err.Error())

	err = &MissingError{IDs: []string{"only"}}
	assert.Equal(t, "1 games missing from catalog: only", err.Error())
}
