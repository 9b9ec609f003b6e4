package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/icco/gamereport/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	// ErrCatalogNotFound is returned when the catalog file does not exist.
	ErrCatalogNotFound = errors.New("catalog file not found")

	// ErrInvalidCatalog is returned when the catalog lacks the game table or
	// one of the columns reports depend on.
	ErrInvalidCatalog = errors.New("catalog is missing required schema")
)

// requiredColumns are the game columns read by reports.
var requiredColumns = []string{
	"id",
	"title",
	"developer",
	"publisher",
	"platformName",
	"releaseDate",
	"playtime",
	"tagsStr",
	"library",
}

// Open opens an existing catalog read-only. The file is checked before the
// driver sees it, since SQLite would otherwise create an empty database.
func Open(path string, logger *slog.Logger) (*gorm.DB, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat catalog: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrCatalogNotFound, path)
	}

	dsn, err := catalogDSN(path, "ro")
	if err != nil {
		return nil, err
	}
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}

	enableReadPragmas(context.Background(), gormDB, logger)
	return gormDB, nil
}

// catalogDSN builds a SQLite URI for path opened with the given mode (ro,
// rw or rwc). The path is made absolute and percent-escaped so "#", "?" and
// "%" in directory names stay part of it.
func catalogDSN(path, mode string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=" + mode, OmitHost: true}
	return u.String(), nil
}

// Close releases the underlying connection pool.
func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get catalog connection: %w", err)
	}
	return sqlDB.Close()
}

// Verify pings the catalog and checks that the game table carries every
// column reports read.
func Verify(ctx context.Context, gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get catalog connection: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("catalog ping failed: %w", err)
	}

	migrator := gormDB.WithContext(ctx).Migrator()
	if !migrator.HasTable(&models.Game{}) {
		return fmt.Errorf("%w: no game table", ErrInvalidCatalog)
	}
	var missing []string
	for _, col := range requiredColumns {
		if !migrator.HasColumn(&models.Game{}, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: game table lacks columns %v", ErrInvalidCatalog, missing)
	}
	return nil
}

// enableReadPragmas tunes the connection for a single read-mostly pass.
// Failures are logged and ignored.
func enableReadPragmas(ctx context.Context, gormDB *gorm.DB, logger *slog.Logger) {
	pragmas := []string{
		"PRAGMA query_only=ON",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA cache_size=-16000",
		"PRAGMA mmap_size=134217728",
	}

	for _, pragma := range pragmas {
		if err := gormDB.WithContext(ctx).Exec(pragma).Error; err != nil {
			logger.Warn("Failed to execute pragma", slog.String("pragma", pragma), slog.Any("error", err))
		} else {
			logger.Debug("Executed pragma", slog.String("pragma", pragma))
		}
	}
}
