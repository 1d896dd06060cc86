package repositories

import (
	"context"
	"fmt"
	"sync"

	"productapi/internal/idgen"
	"productapi/internal/models"

	"github.com/google/uuid"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Products are kept in insertion order.
type MemoryProductRepository struct {
	products []models.Product
	index    map[string]int
	now      Clock
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		index: make(map[string]int),
		now:   systemClock,
	}
}

// WithClock replaces the clock used for timestamps.
func (r *MemoryProductRepository) WithClock(c Clock) *MemoryProductRepository {
	r.now = c
	return r
}

// Create stores a new product under a freshly generated productId.
func (r *MemoryProductRepository) Create(_ context.Context, input models.ProductInput) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	product := models.Product{
		ID:          uuid.New().String(),
		ProductID:   idgen.NewProductID(),
		Title:       input.Title,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, ok := r.index[product.ProductID]; ok {
		return nil, fmt.Errorf("failed to create product: duplicate productId %s", product.ProductID)
	}
	r.index[product.ProductID] = len(r.products)
	r.products = append(r.products, product)
	return &product, nil
}

// FindAll returns all products.
func (r *MemoryProductRepository) FindAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList, nil
}

// FindOne returns a product by its productId.
func (r *MemoryProductRepository) FindOne(_ context.Context, productID string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[productID]
	if !ok {
		return nil, nil
	}
	product := r.products[i]
	return &product, nil
}

// UpdateByProductID modifies title and description of an existing product.
func (r *MemoryProductRepository) UpdateByProductID(_ context.Context, productID string, update models.ProductUpdate) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[productID]
	if !ok {
		return nil, nil
	}
	product := r.products[i]
	update.Apply(&product)
	product.UpdatedAt = r.now()
	r.products[i] = product
	return &product, nil
}

// DeleteByProductID removes a product by its productId.
func (r *MemoryProductRepository) DeleteByProductID(_ context.Context, productID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[productID]
	if !ok {
		return 0, nil
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	delete(r.index, productID)
	for j := i; j < len(r.products); j++ {
		r.index[r.products[j].ProductID] = j
	}
	return 1, nil
}

// Ping always succeeds.
func (r *MemoryProductRepository) Ping(_ context.Context) error {
	return nil
}
