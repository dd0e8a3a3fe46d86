package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open creates a Store for the given connection URL. The scheme selects
// the backend: mongodb:// and mongodb+srv:// use the document store,
// sqlite:// and postgres:// use the relational store behind GORM.
// dbName is only meaningful for the document store.
func Open(ctx context.Context, url, dbName string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch {
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return NewMongoStore(ctx, url, dbName, logger)

	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite:///")
		path = strings.TrimPrefix(path, "sqlite://")
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: slogGormLogger{}})
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return NewGormStore(db), nil

	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		db, err := gorm.Open(postgres.Open(url), &gorm.Config{Logger: slogGormLogger{}})
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return NewGormStore(db), nil

	default:
		return nil, fmt.Errorf("unsupported store URL scheme: %q", url)
	}
}
