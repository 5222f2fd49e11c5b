package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing the uniqueness invariants:
// one account per email (case folded at the write boundary), one invoice
// per (client, month, year), one assignment per (sdr, client).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		invoicesCollection: {
			{
				Keys: bson.D{
					{Key: "clientId", Value: 1},
					{Key: "month", Value: 1},
					{Key: "year", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "invoiceDate", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		},
		assignmentsCollection: {
			{
				Keys: bson.D{
					{Key: "sdrId", Value: 1},
					{Key: "clientId", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
		},
		licensesCollection: {
			{Keys: bson.D{{Key: "clientId", Value: 1}}},
		},
		updatesCollection: {
			{Keys: bson.D{{Key: "clientId", Value: 1}}},
			{Keys: bson.D{{Key: "sdrId", Value: 1}}},
		},
		notificationsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}
