package database

import (
	"context"
	"fmt"
	"time"

	"github.com/linkmark/linkmark-api/internal/bookmarks"
	"github.com/linkmark/linkmark-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectPostgres opens a gorm connection and verifies it with a ping bounded
// by timeout.
func ConnectPostgres(ctx context.Context, dsn string, timeout time.Duration) (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// Migrate syncs the schema for the models this service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &bookmarks.Bookmark{})
}
