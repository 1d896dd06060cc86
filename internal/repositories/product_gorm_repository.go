package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"productapi/internal/idgen"
	"productapi/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// productRecord is the relational row behind a models.Product.
// Timestamps are written from the repository clock, not by gorm.
type productRecord struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	ProductID   string    `gorm:"column:product_id;uniqueIndex;type:varchar(32);not null"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
	Version     int       `gorm:"column:version;not null;default:0"`
}

func (productRecord) TableName() string {
	return "products"
}

func (rec productRecord) toModel() models.Product {
	return models.Product{
		ID:          rec.ID,
		ProductID:   rec.ProductID,
		Title:       rec.Title,
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
		Version:     rec.Version,
	}
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db  *gorm.DB
	now Clock
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db:  db,
		now: systemClock,
	}
}

// WithClock replaces the clock used for timestamps.
func (r *GORMProductRepository) WithClock(c Clock) *GORMProductRepository {
	r.now = c
	return r
}

// Migrate creates or updates the products table and its unique productId index.
func (r *GORMProductRepository) Migrate() error {
	if err := r.db.AutoMigrate(&productRecord{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}
	return nil
}

// Create inserts a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	now := r.now()
	rec := productRecord{
		ID:          uuid.New().String(),
		ProductID:   idgen.NewProductID(),
		Title:       input.Title,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	product := rec.toModel()
	return &product, nil
}

// FindAll retrieves all products from the database.
func (r *GORMProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var records []productRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, rec.toModel())
	}
	return products, nil
}

// FindOne retrieves a single product by its productId.
func (r *GORMProductRepository) FindOne(ctx context.Context, productID string) (*models.Product, error) {
	return r.findOne(r.db.WithContext(ctx), productID)
}

func (r *GORMProductRepository) findOne(tx *gorm.DB, productID string) (*models.Product, error) {
	var rec productRecord
	if err := tx.First(&rec, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	product := rec.toModel()
	return &product, nil
}

// UpdateByProductID updates title and description of an existing product and
// returns the stored result.
func (r *GORMProductRepository) UpdateByProductID(ctx context.Context, productID string, update models.ProductUpdate) (*models.Product, error) {
	changes := map[string]interface{}{"updated_at": r.now()}
	if update.Title != nil {
		changes["title"] = *update.Title
	}
	if update.Description != nil {
		changes["description"] = *update.Description
	}

	var product *models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&productRecord{}).Where("product_id = ?", productID).Updates(changes)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		var err error
		product, err = r.findOne(tx, productID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}
	return product, nil
}

// DeleteByProductID deletes a product by its productId.
func (r *GORMProductRepository) DeleteByProductID(ctx context.Context, productID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&productRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete product %s: %w", productID, res.Error)
	}
	return res.RowsAffected, nil
}

// Ping checks the underlying database connection.
func (r *GORMProductRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
