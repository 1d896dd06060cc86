package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"productapi/internal/idgen"
	"productapi/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ProductCollection is the collection holding product documents.
const ProductCollection = "products"

// productDocument is the BSON shape of a stored product.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ProductID   string             `bson:"productId"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
	Version     int                `bson:"__v"`
}

func (doc productDocument) toModel() models.Product {
	return models.Product{
		ID:          doc.ID.Hex(),
		ProductID:   doc.ProductID,
		Title:       doc.Title,
		Description: doc.Description,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		Version:     doc.Version,
	}
}

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	coll *mongo.Collection
	now  Clock
}

// NewMongoProductRepository creates a repository over the given collection.
func NewMongoProductRepository(coll *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{
		coll: coll,
		now:  systemClock,
	}
}

// WithClock replaces the clock used for timestamps.
func (r *MongoProductRepository) WithClock(c Clock) *MongoProductRepository {
	r.now = c
	return r
}

// BSON dates only carry milliseconds.
func (r *MongoProductRepository) timestamp() time.Time {
	return r.now().Truncate(time.Millisecond)
}

func byProductID(productID string) bson.D {
	return bson.D{{Key: "productId", Value: productID}}
}

// EnsureIndexes creates the unique index on productId.
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("productId_1"),
	})
	if err != nil {
		return fmt.Errorf("failed to create productId index: %w", err)
	}
	return nil
}

// Create inserts a new product document.
func (r *MongoProductRepository) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	now := r.timestamp()
	doc := productDocument{
		ID:          primitive.NewObjectID(),
		ProductID:   idgen.NewProductID(),
		Title:       input.Title,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	product := doc.toModel()
	return &product, nil
}

// FindAll returns every product document in natural order.
func (r *MongoProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.toModel())
	}
	return products, nil
}

// FindOne looks a product up by productId.
func (r *MongoProductRepository) FindOne(ctx context.Context, productID string) (*models.Product, error) {
	var doc productDocument
	err := r.coll.FindOne(ctx, byProductID(productID)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	product := doc.toModel()
	return &product, nil
}

// UpdateByProductID sets title and description and returns the document as
// it is after the update.
func (r *MongoProductRepository) UpdateByProductID(ctx context.Context, productID string, update models.ProductUpdate) (*models.Product, error) {
	set := bson.D{{Key: "updatedAt", Value: r.timestamp()}}
	if update.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *update.Title})
	}
	if update.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *update.Description})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc productDocument
	err := r.coll.FindOneAndUpdate(ctx, byProductID(productID), bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}
	product := doc.toModel()
	return &product, nil
}

// DeleteByProductID removes the document with the given productId.
func (r *MongoProductRepository) DeleteByProductID(ctx context.Context, productID string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, byProductID(productID))
	if err != nil {
		return 0, fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	return res.DeletedCount, nil
}

// Ping checks that the primary is reachable.
func (r *MongoProductRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}
