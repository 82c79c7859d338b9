package users

import (
	"context"
	"testing"

	"github.com/linkmark/linkmark-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestGormUserRepository_EnsureByEmail_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	first, err := repo.EnsureByEmail(ctx, &models.User{ID: "sub-1", Email: "a@example.com", Name: "A"})
	require.NoError(t, err)
	require.Equal(t, "sub-1", first.ID)
	require.False(t, first.CreatedAt.IsZero())

	// second ensure with changed metadata must be a no-op
	second, err := repo.EnsureByEmail(ctx, &models.User{ID: "sub-1", Email: "a@example.com", Name: "Renamed", AvatarURL: "https://new"})
	require.NoError(t, err)
	require.Equal(t, "A", second.Name, "existing row must not be updated")
	require.Empty(t, second.AvatarURL)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count, "exactly one row per email")
}

func TestGormUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u, err := repo.GetByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	require.Nil(t, u)

	_, err = repo.EnsureByEmail(ctx, &models.User{ID: "sub-2", Email: "b@example.com"})
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "sub-2", got.ID)
}
