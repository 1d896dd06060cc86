package repositories_test

import (
	"context"
	"testing"
	"time"

	"productapi/internal/idgen"
	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func strPtr(s string) *string { return &s }

// testProductRepository exercises the behaviour every ProductRepository shares.
func testProductRepository(t *testing.T, newRepo func(t *testing.T, clock repositories.Clock) repositories.ProductRepository) {
	ctx := context.Background()

	t.Run("CreateThenFindOne", func(t *testing.T) {
		clock := newFakeClock()
		repo := newRepo(t, clock.Now)

		created, err := repo.Create(ctx, models.ProductInput{Title: "Title", Description: "Description"})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Regexp(t, idgen.ProductIDPattern, created.ProductID)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, 0, created.Version)
		assert.True(t, created.CreatedAt.Equal(clock.Now()))
		assert.True(t, created.UpdatedAt.Equal(clock.Now()))

		found, err := repo.FindOne(ctx, created.ProductID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, created.ProductID, found.ProductID)
		assert.Equal(t, "Title", found.Title)
		assert.Equal(t, "Description", found.Description)
		assert.True(t, found.CreatedAt.Equal(created.CreatedAt))
	})

	t.Run("FindOneMissing", func(t *testing.T) {
		repo := newRepo(t, newFakeClock().Now)

		found, err := repo.FindOne(ctx, "product-123")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("FindAll", func(t *testing.T) {
		repo := newRepo(t, newFakeClock().Now)

		products, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)

		a, err := repo.Create(ctx, models.ProductInput{Title: "A", Description: "first"})
		require.NoError(t, err)
		b, err := repo.Create(ctx, models.ProductInput{Title: "B", Description: "second"})
		require.NoError(t, err)

		products, err = repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		ids := []string{products[0].ProductID, products[1].ProductID}
		assert.ElementsMatch(t, []string{a.ProductID, b.ProductID}, ids)
	})

	t.Run("UpdateByProductID", func(t *testing.T) {
		clock := newFakeClock()
		repo := newRepo(t, clock.Now)

		created, err := repo.Create(ctx, models.ProductInput{Title: "Title", Description: "Description"})
		require.NoError(t, err)

		clock.Advance(time.Minute)
		updated, err := repo.UpdateByProductID(ctx, created.ProductID, models.ProductUpdate{Title: strPtr("Title Edit")})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, created.ProductID, updated.ProductID)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Title Edit", updated.Title)
		assert.Equal(t, "Description", updated.Description)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

		found, err := repo.FindOne(ctx, created.ProductID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Title Edit", found.Title)
		assert.True(t, found.UpdatedAt.Equal(updated.UpdatedAt))
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		repo := newRepo(t, newFakeClock().Now)

		updated, err := repo.UpdateByProductID(ctx, "nonExistentProductId", models.ProductUpdate{Title: strPtr("x"), Description: strPtr("y")})
		assert.NoError(t, err)
		assert.Nil(t, updated)

		products, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("DeleteByProductID", func(t *testing.T) {
		repo := newRepo(t, newFakeClock().Now)

		created, err := repo.Create(ctx, models.ProductInput{Title: "Title", Description: "Description"})
		require.NoError(t, err)

		n, err := repo.DeleteByProductID(ctx, created.ProductID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		found, err := repo.FindOne(ctx, created.ProductID)
		assert.NoError(t, err)
		assert.Nil(t, found)

		n, err = repo.DeleteByProductID(ctx, created.ProductID)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("Ping", func(t *testing.T) {
		repo := newRepo(t, newFakeClock().Now)
		assert.NoError(t, repo.Ping(ctx))
	})
}
