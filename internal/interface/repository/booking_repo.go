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

// MongoBookingRepository implements BookingRepository
type MongoBookingRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingRepository creates a new booking repository
func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	collection := db.Collection("bookings")

	// Create unique index on bookingId
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"bookingId": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	// Create index on customerEmail for queries
	emailIndex := mongo.IndexModel{
		Keys: bson.M{"customerEmail": 1},
	}
	collection.Indexes().CreateOne(ctx, emailIndex)

	return &MongoBookingRepository{
		collection: collection,
	}
}

// FindByBookingID finds a booking by its booking reference
func (r *MongoBookingRepository) FindByBookingID(ctx context.Context, bookingID string) (*entity.BookingRecord, error) {
	var booking entity.BookingRecord
	err := r.collection.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByCustomerEmail returns all bookings for a customer, newest first
func (r *MongoBookingRepository) FindByCustomerEmail(ctx context.Context, email string) ([]*entity.BookingRecord, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"customerEmail": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []*entity.BookingRecord
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Upsert creates or updates a booking keyed by its booking reference
func (r *MongoBookingRepository) Upsert(ctx context.Context, booking *entity.BookingRecord) error {
	booking.UpdatedAt = time.Now()

	// For new records
	if booking.ID == "" {
		booking.ID = primitive.NewObjectID().Hex()
		booking.CreatedAt = time.Now()
	}

	// Create a copy without ID for the update
	updateDoc := bson.M{
		"bookingId":         booking.BookingID,
		"airline":           booking.Airline,
		"flightNumber":      booking.FlightNumber,
		"departureLocation": booking.DepartureLocation,
		"destination":       booking.Destination,
		"departureTime":     booking.DepartureTime,
		"arrivalTime":       booking.ArrivalTime,
		"departureDate":     booking.DepartureDate,
		"returnDate":        booking.ReturnDate,
		"duration":          booking.Duration,
		"price":             booking.Price,
		"currency":          booking.Currency,
		"numTravelers":      booking.Travelers,
		"cabinClass":        booking.CabinClass,
		"customerName":      booking.CustomerName,
		"customerEmail":     booking.CustomerEmail,
		"customerPhone":     booking.CustomerPhone,
		"callId":            booking.CallID,
		"status":            booking.Status,
		"createdAt":         booking.CreatedAt,
		"updatedAt":         booking.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"bookingId": booking.BookingID}

	result, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{"$set": updateDoc},
		opts,
	)

	// If it was an insert, we need to get the new ID
	if result != nil && result.UpsertedCount > 0 && result.UpsertedID != nil {
		if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
			booking.ID = oid.Hex()
		}
	}

	return err
}

// UpdateStatus updates the lifecycle status of a booking
func (r *MongoBookingRepository) UpdateStatus(ctx context.Context, bookingID string, status string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"bookingId": bookingID},
		bson.M{"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
