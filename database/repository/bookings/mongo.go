package bookings

import (
	"context"
	"fmt"
	"time"

	"bookline/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo persists bookings to a MongoDB collection. A unique
// compound index on (city, date, time) makes the append itself the conflict
// guard, closing the window the advisory availability check leaves open.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo connects to MongoDB and ensures the uniqueness index.
func NewMongoBookingRepo(ctx context.Context, uri string) (*MongoBookingRepo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	coll := client.Database("bookline").Collection("bookings")
	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "city", Value: 1},
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(connectCtx, indexModel); err != nil {
		return nil, fmt.Errorf("ensure booking slot index: %w", err)
	}
	return &MongoBookingRepo{coll: coll}, nil
}

func (r *MongoBookingRepo) ListBookedTimes(ctx context.Context, city, date string) ([]string, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"city": city, "date": date})
	if err != nil {
		return nil, fmt.Errorf("query bookings for %s on %s: %w", city, date, err)
	}
	defer cursor.Close(ctx)

	var times []string
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("decode booking row: %w", err)
		}
		times = append(times, b.Time)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return times, nil
}

func (r *MongoBookingRepo) Append(ctx context.Context, b models.Booking) error {
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}
