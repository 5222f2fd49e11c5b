package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

const licensesCollection = "licenses"

// LicenseRepository persists licenses in MongoDB.
type LicenseRepository struct {
	coll *mongo.Collection
}

func NewLicenseRepository(db *mongo.Database) *LicenseRepository {
	return &LicenseRepository{coll: db.Collection(licensesCollection)}
}

func (r *LicenseRepository) CreateMany(ctx context.Context, licenses []*domain.License) ([]*domain.License, error) {
	if len(licenses) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]any, 0, len(licenses))
	for _, l := range licenses {
		docs = append(docs, envelope[domain.License]{Doc: *l})
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert licenses: %w", err)
	}

	created := make([]*domain.License, 0, len(licenses))
	for i, l := range licenses {
		c := *l
		if objID, ok := res.InsertedIDs[i].(primitive.ObjectID); ok {
			c.ID = objID.Hex()
		}
		created = append(created, &c)
	}
	return created, nil
}

func (r *LicenseRepository) FindByID(ctx context.Context, id string) (*domain.License, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrLicenseNotFound
	}
	hex, doc, err := findOne[domain.License](ctx, r.coll, bson.M{"_id": objID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLicenseNotFound
		}
		return nil, fmt.Errorf("find license: %w", err)
	}
	doc.ID = hex
	return doc, nil
}

func (r *LicenseRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.License, error) {
	return findAll(ctx, r.coll, bson.M{"clientId": clientID}, sortByCreatedDesc(), func(id string, doc *domain.License) *domain.License {
		doc.ID = id
		return doc
	})
}

func (r *LicenseRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.License, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objID, err := oid(id); err == nil {
			objIDs = append(objIDs, objID)
		}
	}
	return findAll(ctx, r.coll, bson.M{"_id": bson.M{"$in": objIDs}}, nil, func(id string, doc *domain.License) *domain.License {
		doc.ID = id
		return doc
	})
}

func (r *LicenseRepository) CountByClient(ctx context.Context, clientID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"clientId": clientID})
	if err != nil {
		return 0, fmt.Errorf("count licenses: %w", err)
	}
	return n, nil
}

func (r *LicenseRepository) SetStatus(ctx context.Context, id string, status domain.LicenseStatus) error {
	objID, err := oid(id)
	if err != nil {
		return domain.ErrLicenseNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("set license status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLicenseNotFound
	}
	return nil
}

func (r *LicenseRepository) Delete(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return domain.ErrLicenseNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("delete license: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLicenseNotFound
	}
	return nil
}
