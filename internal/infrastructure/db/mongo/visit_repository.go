package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

const visitsCollection = "visits"

// VisitRepository implements ports.VisitRepository. Documents are inserted
// once and never modified.
type VisitRepository struct {
	collection
}

func NewVisitRepository(db *mongo.Database, opts ...Option) ports.VisitRepository {
	return &VisitRepository{collection: newCollection(db, visitsCollection, opts)}
}

func (r *VisitRepository) Insert(ctx context.Context, v *domain.Visit) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

func (r *VisitRepository) ListByPatient(ctx context.Context, patientID string) ([]*domain.Visit, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "visit_date", Value: -1},
		{Key: "created_at", Value: -1},
	})

	cursor, err := r.coll.Find(ctx, bson.M{"patient_id": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer cursor.Close(ctx)

	visits := make([]*domain.Visit, 0)
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, fmt.Errorf("decode visits: %w", err)
	}
	return visits, nil
}
