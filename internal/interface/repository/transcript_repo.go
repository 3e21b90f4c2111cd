package repository

import (
	"context"
	"time"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTranscriptRepository implements TranscriptRepository
type MongoTranscriptRepository struct {
	collection *mongo.Collection
}

// NewMongoTranscriptRepository creates a new transcript repository
func NewMongoTranscriptRepository(db *mongo.Database) repository.TranscriptRepository {
	collection := db.Collection("transcripts")

	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"callId": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoTranscriptRepository{
		collection: collection,
	}
}

// Append adds utterances to a call transcript, creating the document on
// first use
func (r *MongoTranscriptRepository) Append(ctx context.Context, callID, roomName string, utterances []entity.Utterance) error {
	now := time.Now()

	update := bson.M{
		"$push": bson.M{
			"utterances": bson.M{"$each": utterances},
		},
		"$set": bson.M{
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"callId":    callID,
			"roomName":  roomName,
			"createdAt": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"callId": callID}, update, opts)
	return err
}

// GetByCallID returns the full transcript for a call
func (r *MongoTranscriptRepository) GetByCallID(ctx context.Context, callID string) (*entity.Transcript, error) {
	var transcript entity.Transcript
	err := r.collection.FindOne(ctx, bson.M{"callId": callID}).Decode(&transcript)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &transcript, nil
}
