package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

const usersCollection = "users"

// ProfileRepository implements ports.ProfileRepository on the users
// collection, keyed by the credential id.
type ProfileRepository struct {
	collection
}

func NewProfileRepository(db *mongo.Database, opts ...Option) ports.ProfileRepository {
	return &ProfileRepository{collection: newCollection(db, usersCollection, opts)}
}

type profileDoc struct {
	UID              string    `bson:"_id"`
	Email            string    `bson:"email"`
	FullName         string    `bson:"full_name"`
	FirstName        string    `bson:"first_name,omitempty"`
	LastName         string    `bson:"last_name,omitempty"`
	Phone            string    `bson:"phone,omitempty"`
	DateOfBirth      string    `bson:"date_of_birth,omitempty"`
	Gender           string    `bson:"gender,omitempty"`
	Address          string    `bson:"address,omitempty"`
	Role             string    `bson:"role,omitempty"`
	AssignedDoctorID string    `bson:"assigned_doctor_id,omitempty"`
	RegisteredBy     string    `bson:"registered_by,omitempty"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

func toProfileDoc(p *domain.Profile) profileDoc {
	return profileDoc{
		UID:              p.UID,
		Email:            p.Email,
		FullName:         p.FullName,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Phone:            p.Phone,
		DateOfBirth:      p.DateOfBirth,
		Gender:           p.Gender,
		Address:          p.Address,
		Role:             p.Role,
		AssignedDoctorID: p.AssignedDoctorID,
		RegisteredBy:     p.RegisteredBy,
		CreatedAt:        p.CreatedAt.UTC(),
		UpdatedAt:        p.UpdatedAt.UTC(),
	}
}

func (d profileDoc) toDomain() *domain.Profile {
	return &domain.Profile{
		UID:              d.UID,
		Email:            d.Email,
		FullName:         d.FullName,
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		Phone:            d.Phone,
		DateOfBirth:      d.DateOfBirth,
		Gender:           d.Gender,
		Address:          d.Address,
		Role:             d.Role,
		AssignedDoctorID: d.AssignedDoctorID,
		RegisteredBy:     d.RegisteredBy,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func (r *ProfileRepository) Get(ctx context.Context, uid string) (*domain.Profile, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc profileDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toProfileDoc(p)); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// Merge upserts the patch fields with $set. The role is never part of the
// update, so a user cannot change it through a profile save.
func (r *ProfileRepository) Merge(ctx context.Context, uid, email string, patch domain.ProfilePatch) (*domain.Profile, error) {
	now := time.Now().UTC()
	set := mergeFields(patch)
	set["email"] = email
	set["updated_at"] = now

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc profileDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": uid}, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("merge profile: %w", err)
	}
	return doc.toDomain(), nil
}

func mergeFields(patch domain.ProfilePatch) bson.M {
	set := bson.M{}
	if patch.FullName != nil {
		set["full_name"] = *patch.FullName
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.DateOfBirth != nil {
		set["date_of_birth"] = *patch.DateOfBirth
	}
	if patch.Gender != nil {
		set["gender"] = *patch.Gender
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	return set
}

func (r *ProfileRepository) List(ctx context.Context, filter ports.ProfileFilter) ([]*domain.Profile, error) {
	q := bson.M{}
	if filter.Role != "" {
		q["role"] = string(filter.Role)
	}
	if filter.AssignedDoctorID != "" {
		q["assigned_doctor_id"] = filter.AssignedDoctorID
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}})
	cursor, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []profileDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	out := make([]*domain.Profile, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
