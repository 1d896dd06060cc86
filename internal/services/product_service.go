package services

import (
	"context"
	"encoding/json"
	"time"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/rs/zerolog"
)

// EventPublisher sends a message to a broker exchange.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	exchange  string
	log       zerolog.Logger
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are sent.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, exchange string, log zerolog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		exchange:  exchange,
		log:       log,
	}
}

// CreateProduct stores a new product and announces it.
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	product, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.publish(models.ProductCreated, product.ProductID, product)
	return product, nil
}

// GetAllProducts retrieves all products. The result is not paginated.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.FindAll(ctx)
}

// GetProduct retrieves a product by productId, or nil when there is none.
func (s *ProductService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	return s.repo.FindOne(ctx, productID)
}

// UpdateProduct changes title and description. It returns nil when the
// product does not exist.
func (s *ProductService) UpdateProduct(ctx context.Context, productID string, update models.ProductUpdate) (*models.Product, error) {
	product, err := s.repo.UpdateByProductID(ctx, productID, update)
	if err != nil || product == nil {
		return product, err
	}
	s.publish(models.ProductUpdated, productID, product)
	return product, nil
}

// DeleteProduct deletes a product by productId and reports how many were removed.
func (s *ProductService) DeleteProduct(ctx context.Context, productID string) (int64, error) {
	n, err := s.repo.DeleteByProductID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.publish(models.ProductDeleted, productID, nil)
	}
	return n, nil
}

// Ping reports whether the product store is reachable.
func (s *ProductService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// publish never fails the caller; a broker outage only costs the event.
func (s *ProductService) publish(eventType, productID string, product *models.Product) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(models.ProductEvent{
		Type:       eventType,
		ProductID:  productID,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("productId", productID).Msg("failed to marshal product event")
		return
	}

	if err := s.publisher.Publish(s.exchange, eventType, body); err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Str("productId", productID).Msg("failed to publish product event")
		return
	}
	s.log.Debug().Str("event", eventType).Str("productId", productID).Msg("published product event")
}
