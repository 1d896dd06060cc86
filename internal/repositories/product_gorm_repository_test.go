package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSQLiteRepository opens a private in-memory database per test.
func newSQLiteRepository(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	repo := repositories.NewGORMProductRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func TestGORMProductRepository(t *testing.T) {
	testProductRepository(t, func(t *testing.T, clock repositories.Clock) repositories.ProductRepository {
		return newSQLiteRepository(t).WithClock(clock)
	})
}

func TestGORMProductRepository_UpdateOnlyDescription(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	created, err := repo.Create(ctx, models.ProductInput{Title: "Title", Description: "Description"})
	require.NoError(t, err)

	updated, err := repo.UpdateByProductID(ctx, created.ProductID, models.ProductUpdate{Description: strPtr("New description")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Title", updated.Title)
	assert.Equal(t, "New description", updated.Description)
}

func TestGORMProductRepository_ClosedDatabase(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	closed := repositories.NewGORMProductRepository(db)

	_, err = closed.FindAll(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get all products")
	assert.Error(t, closed.Ping(ctx))

	assert.NoError(t, repo.Ping(ctx))
}
