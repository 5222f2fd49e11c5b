package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

const assignmentsCollection = "assignments"

// AssignmentRepository persists SDR-client assignments in MongoDB. A unique
// index on (sdrId, clientId) backs the one-assignment-per-pair invariant.
type AssignmentRepository struct {
	coll *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{coll: db.Collection(assignmentsCollection)}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
	id, err := insertOne(ctx, r.coll, *a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAssignmentExists
		}
		return nil, fmt.Errorf("insert assignment: %w", err)
	}
	created := *a
	created.ID = id
	return &created, nil
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*domain.Assignment, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrAssignmentNotFound
	}
	return r.findOneBy(ctx, bson.M{"_id": objID})
}

func (r *AssignmentRepository) FindBySdrAndClient(ctx context.Context, sdrID, clientID string) (*domain.Assignment, error) {
	return r.findOneBy(ctx, bson.M{"sdrId": sdrID, "clientId": clientID})
}

func (r *AssignmentRepository) findOneBy(ctx context.Context, filter bson.M) (*domain.Assignment, error) {
	hex, doc, err := findOne[domain.Assignment](ctx, r.coll, filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	doc.ID = hex
	return doc, nil
}

func (r *AssignmentRepository) ListBySdr(ctx context.Context, sdrID string) ([]*domain.Assignment, error) {
	return findAll(ctx, r.coll, bson.M{"sdrId": sdrID}, sortByCreatedDesc(), func(id string, doc *domain.Assignment) *domain.Assignment {
		doc.ID = id
		return doc
	})
}

func (r *AssignmentRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Assignment, error) {
	return findAll(ctx, r.coll, bson.M{"clientId": clientID}, sortByCreatedDesc(), func(id string, doc *domain.Assignment) *domain.Assignment {
		doc.ID = id
		return doc
	})
}

func (r *AssignmentRepository) SetLicenseIDs(ctx context.Context, id string, licenseIDs []string) error {
	objID, err := oid(id)
	if err != nil {
		return domain.ErrAssignmentNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{
		"licenseIds": licenseIDs,
		"updatedAt":  time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set assignment licenses: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

// AddLicenseIDs unions licenseIDs into every assignment of the client.
// $addToSet/$each keeps the stored lists free of duplicates.
func (r *AssignmentRepository) AddLicenseIDs(ctx context.Context, clientID string, licenseIDs []string) error {
	if len(licenseIDs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.UpdateMany(ctx,
		bson.M{"clientId": clientID},
		bson.M{
			"$addToSet": bson.M{"licenseIds": bson.M{"$each": licenseIDs}},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("add license ids: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) SetChatHistory(ctx context.Context, id string, chat string) error {
	objID, err := oid(id)
	if err != nil {
		return domain.ErrAssignmentNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{
		"chatHistory": chat,
		"updatedAt":   time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set chat history: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return domain.ErrAssignmentNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}
