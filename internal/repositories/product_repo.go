package repositories

import (
	"context"
	"time"

	"productapi/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// FindOne and UpdateByProductID return (nil, nil) when no product carries the
// given productId. DeleteByProductID reports how many products it removed.
type ProductRepository interface {
	Create(ctx context.Context, input models.ProductInput) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindOne(ctx context.Context, productID string) (*models.Product, error)
	UpdateByProductID(ctx context.Context, productID string, update models.ProductUpdate) (*models.Product, error)
	DeleteByProductID(ctx context.Context, productID string) (int64, error)
	Ping(ctx context.Context) error
}

// Clock stamps createdAt and updatedAt.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}
