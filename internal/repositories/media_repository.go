package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nkiselev/microfeed/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MediaRepository defines the interface for image attachment storage
type MediaRepository interface {
	SaveMedia(ctx context.Context, media *models.Media) error
	GetMediaByID(ctx context.Context, id string) (*models.Media, error)
	DeleteMedia(ctx context.Context, id string) error
}

// MongoMediaRepository implements MediaRepository for MongoDB
type MongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new MongoMediaRepository
func NewMongoMediaRepository(db *mongo.Database) *MongoMediaRepository {
	return &MongoMediaRepository{collection: db.Collection("media")}
}

// SaveMedia stores an uploaded image and assigns its reference ID
func (r *MongoMediaRepository) SaveMedia(ctx context.Context, media *models.Media) error {
	media.ID = uuid.New().String()
	media.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, media)
	return err
}

// GetMediaByID retrieves an image document by its reference ID
func (r *MongoMediaRepository) GetMediaByID(ctx context.Context, id string) (*models.Media, error) {
	var media models.Media
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&media)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("media not found")
		}
		return nil, err
	}
	return &media, nil
}

// DeleteMedia removes an image document by its reference ID
func (r *MongoMediaRepository) DeleteMedia(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("media not found")
	}
	return nil
}
