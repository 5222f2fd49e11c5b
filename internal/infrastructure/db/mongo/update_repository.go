package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

const updatesCollection = "updates"

// UpdateRepository persists SDR updates in MongoDB.
type UpdateRepository struct {
	coll *mongo.Collection
}

func NewUpdateRepository(db *mongo.Database) *UpdateRepository {
	return &UpdateRepository{coll: db.Collection(updatesCollection)}
}

func (r *UpdateRepository) Create(ctx context.Context, u *domain.Update) (*domain.Update, error) {
	id, err := insertOne(ctx, r.coll, *u)
	if err != nil {
		return nil, fmt.Errorf("insert update: %w", err)
	}
	created := *u
	created.ID = id
	return &created, nil
}

func (r *UpdateRepository) FindByID(ctx context.Context, id string) (*domain.Update, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrUpdateNotFound
	}
	hex, doc, err := findOne[domain.Update](ctx, r.coll, bson.M{"_id": objID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUpdateNotFound
		}
		return nil, fmt.Errorf("find update: %w", err)
	}
	doc.ID = hex
	return doc, nil
}

func (r *UpdateRepository) ListBySdr(ctx context.Context, sdrID string) ([]*domain.Update, error) {
	return findAll(ctx, r.coll, bson.M{"sdrId": sdrID}, sortByCreatedDesc(), func(id string, doc *domain.Update) *domain.Update {
		doc.ID = id
		return doc
	})
}

func (r *UpdateRepository) ListByClient(ctx context.Context, clientID string, visibleOnly bool) ([]*domain.Update, error) {
	filter := bson.M{"clientId": clientID}
	if visibleOnly {
		filter["visibleToClient"] = true
	}
	return findAll(ctx, r.coll, filter, sortByCreatedDesc(), func(id string, doc *domain.Update) *domain.Update {
		doc.ID = id
		return doc
	})
}

func (r *UpdateRepository) MarkRead(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return domain.ErrUpdateNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"readByClient": true}})
	if err != nil {
		return fmt.Errorf("mark update read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUpdateNotFound
	}
	return nil
}
