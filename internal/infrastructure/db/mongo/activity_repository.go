package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

const activityCollection = "activity_log"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	collection
}

func NewActivityRepository(db *mongo.Database, opts ...Option) ports.ActivityRepository {
	return &ActivityRepository{collection: newCollection(db, activityCollection, opts)}
}

// Insert persists an activity to the activity_log audit collection.
func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	doc := bson.M{
		"kind":         string(a.Kind),
		"actor_id":     a.ActorID,
		"subject_id":   a.SubjectID,
		"occurred_at":  a.OccurredAt.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if a.Detail != "" {
		doc["detail"] = a.Detail
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}
