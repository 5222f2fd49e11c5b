package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

const clientsCollection = "clients"

// ClientRepository persists client accounts in MongoDB.
type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection(clientsCollection)}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	id, err := insertOne(ctx, r.coll, *client)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	created := *client
	created.ID = id
	return &created, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}
	hex, doc, err := findOne[domain.Client](ctx, r.coll, bson.M{"_id": objID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	doc.ID = hex
	return doc, nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	return findAll(ctx, r.coll, bson.M{}, sortByCreatedDesc(), func(id string, doc *domain.Client) *domain.Client {
		doc.ID = id
		return doc
	})
}

func (r *ClientRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Client, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}
	hex, doc, err := findOneAndUpdate[domain.Client](ctx, r.coll, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("update client: %w", err)
	}
	doc.ID = hex
	return doc, nil
}

func (r *ClientRepository) CountByPlan(ctx context.Context, planID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"planId": planID})
	if err != nil {
		return 0, fmt.Errorf("count clients by plan: %w", err)
	}
	return n, nil
}
