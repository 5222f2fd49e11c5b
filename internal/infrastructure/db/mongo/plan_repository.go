package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

const plansCollection = "plans"

// PlanRepository persists pricing plans in MongoDB.
type PlanRepository struct {
	coll *mongo.Collection
}

func NewPlanRepository(db *mongo.Database) *PlanRepository {
	return &PlanRepository{coll: db.Collection(plansCollection)}
}

func (r *PlanRepository) Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	id, err := insertOne(ctx, r.coll, *plan)
	if err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}
	created := *plan
	created.ID = id
	return &created, nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*domain.Plan, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrPlanNotFound
	}
	hex, doc, err := findOne[domain.Plan](ctx, r.coll, bson.M{"_id": objID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	doc.ID = hex
	return doc, nil
}

func (r *PlanRepository) List(ctx context.Context) ([]*domain.Plan, error) {
	return findAll(ctx, r.coll, bson.M{}, sortByCreatedDesc(), func(id string, doc *domain.Plan) *domain.Plan {
		doc.ID = id
		return doc
	})
}

func (r *PlanRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Plan, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrPlanNotFound
	}
	hex, doc, err := findOneAndUpdate[domain.Plan](ctx, r.coll, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("update plan: %w", err)
	}
	doc.ID = hex
	return doc, nil
}
