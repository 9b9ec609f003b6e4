package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/icco/gamereport/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// catalogIndexes mirror the lookups reports issue, for fixture catalogs.
var catalogIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_game_playtime ON game(playtime)",
	"CREATE INDEX IF NOT EXISTS idx_game_platform ON game(platformName)",
}

// Create opens (creating if needed) a writable catalog at path and ensures the
// game table exists.
//
// Create and Migrate are fixture support: tests and local tooling use them to
// build small catalogs. The report command never calls them, so real
// catalogs are only opened read-only through Open and never receive
// catalogIndexes.
func Create(ctx context.Context, path string, logger *slog.Logger) (*gorm.DB, error) {
	dsn, err := catalogDSN(path, "rwc")
	if err != nil {
		return nil, err
	}
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog: %w", err)
	}

	if err := Migrate(ctx, gormDB, logger); err != nil {
		return nil, err
	}
	return gormDB, nil
}

// Migrate creates the game table and its indexes.
func Migrate(ctx context.Context, gormDB *gorm.DB, logger *slog.Logger) error {
	if err := gormDB.WithContext(ctx).AutoMigrate(&models.Game{}); err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}

	for _, indexSQL := range catalogIndexes {
		if err := gormDB.WithContext(ctx).Exec(indexSQL).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
		logger.DebugContext(ctx, "Created index", slog.String("sql", indexSQL))
	}

	return nil
}
