package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

const reportsCollection = "reports"

// ReportRepository persists metric reports in MongoDB.
type ReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{coll: db.Collection(reportsCollection)}
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) (*domain.Report, error) {
	id, err := insertOne(ctx, r.coll, *rep)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	created := *rep
	created.ID = id
	return &created, nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.Report, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}
	hex, doc, err := findOne[domain.Report](ctx, r.coll, bson.M{"_id": objID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	doc.ID = hex
	return doc, nil
}

func (r *ReportRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Report, error) {
	return findAll(ctx, r.coll, bson.M{"clientId": clientID}, sortByCreatedDesc(), func(id string, doc *domain.Report) *domain.Report {
		doc.ID = id
		return doc
	})
}
