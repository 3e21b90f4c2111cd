package repository

import (
	"context"
	"time"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCallSummaryRepository implements CallSummaryRepository
type MongoCallSummaryRepository struct {
	collection *mongo.Collection
}

// NewMongoCallSummaryRepository creates a new call summary repository
func NewMongoCallSummaryRepository(db *mongo.Database) repository.CallSummaryRepository {
	collection := db.Collection("call_summaries")

	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"callId": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	// Sorted lookups for the latest-summary fallback
	createdIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}
	collection.Indexes().CreateOne(ctx, createdIndex)

	return &MongoCallSummaryRepository{
		collection: collection,
	}
}

// Save stores a summary, replacing any earlier one for the same call
func (r *MongoCallSummaryRepository) Save(ctx context.Context, summary *entity.CallSummary) error {
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now()
	}
	if summary.ID == "" {
		summary.ID = primitive.NewObjectID().Hex()
	}

	updateDoc := bson.M{
		"callId":     summary.CallID,
		"summary":    summary.Summary,
		"structured": summary.Structured,
		"booking":    summary.Booking,
		"transcript": summary.Transcript,
		"userName":   summary.UserName,
		"timestamp":  summary.Timestamp,
		"createdAt":  summary.CreatedAt,
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"callId": summary.CallID},
		bson.M{"$set": updateDoc},
		opts,
	)
	return err
}

// GetByCallID finds a summary by call id
func (r *MongoCallSummaryRepository) GetByCallID(ctx context.Context, callID string) (*entity.CallSummary, error) {
	var summary entity.CallSummary
	err := r.collection.FindOne(ctx, bson.M{"callId": callID}).Decode(&summary)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetLatest returns the most recently stored summary
func (r *MongoCallSummaryRepository) GetLatest(ctx context.Context) (*entity.CallSummary, error) {
	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})
	var summary entity.CallSummary
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&summary)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
