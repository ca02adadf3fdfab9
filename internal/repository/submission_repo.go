package repository

import (
	"containerquote/internal/model"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmissionRepo handles MongoDB operations for finalized quote submissions
type SubmissionRepo interface {
	Create(ctx context.Context, sub *model.QuoteSubmission) (string, error)
	GetByID(ctx context.Context, id string) (*model.QuoteSubmission, error)
	ListByProduct(ctx context.Context, productID string) ([]*model.QuoteSubmission, error)
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("submissions"),
	}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.QuoteSubmission) (string, error) {
	if sub.ID == "" {
		sub.ID = primitive.NewObjectID().Hex()
	}
	sub.SubmittedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.QuoteSubmission, error) {
	var sub model.QuoteSubmission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) ListByProduct(ctx context.Context, productID string) ([]*model.QuoteSubmission, error) {
	opts := options.Find().SetSort(bson.M{"submittedAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*model.QuoteSubmission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
