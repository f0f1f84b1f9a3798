package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. It is
// idempotent and runs once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		credentialsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "assigned_doctor_id", Value: 1}}},
		},
		visitsCollection: {
			{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "visit_date", Value: -1}}},
		},
		activityCollection: {
			{Keys: bson.D{{Key: "subject_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
