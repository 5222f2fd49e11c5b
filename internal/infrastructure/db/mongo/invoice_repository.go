package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

const invoicesCollection = "invoices"

// InvoiceRepository persists invoices in MongoDB. A unique index on
// (clientId, month, year) backs the one-invoice-per-period invariant.
type InvoiceRepository struct {
	coll *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *InvoiceRepository {
	return &InvoiceRepository{coll: db.Collection(invoicesCollection)}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	id, err := insertOne(ctx, r.coll, *inv)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrInvoiceExists
		}
		return nil, fmt.Errorf("insert invoice: %w", err)
	}
	created := *inv
	created.ID = id
	return &created, nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return r.findOneBy(ctx, bson.M{"_id": objID})
}

// FindByIDForClient scopes the lookup to one client, so another client's
// invoice is indistinguishable from a missing one.
func (r *InvoiceRepository) FindByIDForClient(ctx context.Context, id, clientID string) (*domain.Invoice, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return r.findOneBy(ctx, bson.M{"_id": objID, "clientId": clientID})
}

func (r *InvoiceRepository) findOneBy(ctx context.Context, filter bson.M) (*domain.Invoice, error) {
	hex, doc, err := findOne[domain.Invoice](ctx, r.coll, filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	doc.ID = hex
	return doc, nil
}

func (r *InvoiceRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Invoice, error) {
	return findAll(ctx, r.coll, bson.M{"clientId": clientID}, sortByCreatedDesc(), func(id string, doc *domain.Invoice) *domain.Invoice {
		doc.ID = id
		return doc
	})
}

func (r *InvoiceRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Invoice, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objID, err := oid(id); err == nil {
			objIDs = append(objIDs, objID)
		}
	}
	return findAll(ctx, r.coll, bson.M{"_id": bson.M{"$in": objIDs}}, nil, func(id string, doc *domain.Invoice) *domain.Invoice {
		doc.ID = id
		return doc
	})
}

// ListByPeriod selects invoices landing in [from, to): by invoiceDate when
// the document has one, by createdAt otherwise.
func (r *InvoiceRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Invoice, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"invoiceDate": bson.M{"$gte": from, "$lt": to}},
		bson.M{
			"invoiceDate": bson.M{"$exists": false},
			"createdAt":   bson.M{"$gte": from, "$lt": to},
		},
	}}
	return findAll(ctx, r.coll, filter, nil, func(id string, doc *domain.Invoice) *domain.Invoice {
		doc.ID = id
		return doc
	})
}

func (r *InvoiceRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Invoice, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrInvoiceNotFound
	}
	hex, doc, err := findOneAndUpdate[domain.Invoice](ctx, r.coll, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	doc.ID = hex
	return doc, nil
}

// BulkMarkPaid pays every listed invoice not already PAID in one
// multi-document update and reports the modified count. Matching and
// updating are atomic per document only; see the service for the accepted
// race semantics.
func (r *InvoiceRepository) BulkMarkPaid(ctx context.Context, ids []string, paidAt time.Time) (int64, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objID, err := oid(id); err == nil {
			objIDs = append(objIDs, objID)
		}
	}
	if len(objIDs) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{
			"_id":    bson.M{"$in": objIDs},
			"status": bson.M{"$ne": domain.InvoicePaid},
		},
		bson.M{"$set": bson.M{
			"status":    domain.InvoicePaid,
			"paidAt":    paidAt,
			"updatedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("bulk mark paid: %w", err)
	}
	return res.ModifiedCount, nil
}
