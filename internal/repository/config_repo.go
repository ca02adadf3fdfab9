package repository

import (
	"containerquote/internal/model"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ConfigRepo handles MongoDB operations for product configurations
type ConfigRepo interface {
	Create(ctx context.Context, cfg *model.Configuration) (string, error)
	GetByID(ctx context.Context, id string) (*model.Configuration, error)
	GetByProduct(ctx context.Context, productID string) (*model.Configuration, error)
	List(ctx context.Context) ([]*model.Configuration, error)
	Update(ctx context.Context, cfg *model.Configuration) error
	Delete(ctx context.Context, id string) error
}

type configRepo struct {
	collection *mongo.Collection
}

// NewConfigRepo creates a new configuration repository
func NewConfigRepo(db *mongo.Database) ConfigRepo {
	return &configRepo{
		collection: db.Collection("configurations"),
	}
}

func (r *configRepo) Create(ctx context.Context, cfg *model.Configuration) (string, error) {
	if cfg.ID == "" {
		cfg.ID = primitive.NewObjectID().Hex()
	}
	cfg.CreatedAt = time.Now()
	cfg.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, cfg); err != nil {
		return "", err
	}
	return cfg.ID, nil
}

func (r *configRepo) GetByID(ctx context.Context, id string) (*model.Configuration, error) {
	var cfg model.Configuration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepo) GetByProduct(ctx context.Context, productID string) (*model.Configuration, error) {
	var cfg model.Configuration
	err := r.collection.FindOne(ctx, bson.M{"productId": productID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepo) List(ctx context.Context) ([]*model.Configuration, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []*model.Configuration
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *configRepo) Update(ctx context.Context, cfg *model.Configuration) error {
	cfg.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": cfg.ID}, cfg)
	return err
}

func (r *configRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
