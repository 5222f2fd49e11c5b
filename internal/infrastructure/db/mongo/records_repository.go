package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

const (
	notesCollection         = "admin_notes"
	auditCollection         = "audit_logs"
	notificationsCollection = "notifications"
	contractsCollection     = "contracts"
)

// NoteRepository persists admin notes in MongoDB.
type NoteRepository struct {
	coll *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{coll: db.Collection(notesCollection)}
}

func (r *NoteRepository) Create(ctx context.Context, n *domain.AdminNote) (*domain.AdminNote, error) {
	id, err := insertOne(ctx, r.coll, *n)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	created := *n
	created.ID = id
	return &created, nil
}

func (r *NoteRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.AdminNote, error) {
	return findAll(ctx, r.coll, bson.M{"clientId": clientID}, sortByCreatedDesc(), func(id string, doc *domain.AdminNote) *domain.AdminNote {
		doc.ID = id
		return doc
	})
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return domain.ErrNoteNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// AuditRepository persists audit entries in MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) Insert(ctx context.Context, e *domain.AuditEntry) error {
	if _, err := insertOne(ctx, r.coll, *e); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, limit int64) ([]*domain.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	return findAll(ctx, r.coll, bson.M{}, opts, func(id string, doc *domain.AuditEntry) *domain.AuditEntry {
		doc.ID = id
		return doc
	})
}

// NotificationRepository persists per-user notifications in MongoDB.
type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection(notificationsCollection)}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	id, err := insertOne(ctx, r.coll, *n)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	created := *n
	created.ID = id
	return &created, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return findAll(ctx, r.coll, bson.M{"userId": userID}, sortByCreatedDesc(), func(id string, doc *domain.Notification) *domain.Notification {
		doc.ID = id
		return doc
	})
}

// MarkRead scopes the write to the owning user so one user cannot touch
// another's inbox.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	objID, err := oid(id)
	if err != nil {
		return domain.ErrNotificationNotFound
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": objID, "userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// ContractRepository persists contracts in MongoDB.
type ContractRepository struct {
	coll *mongo.Collection
}

func NewContractRepository(db *mongo.Database) *ContractRepository {
	return &ContractRepository{coll: db.Collection(contractsCollection)}
}

func (r *ContractRepository) Create(ctx context.Context, c *domain.Contract) (*domain.Contract, error) {
	id, err := insertOne(ctx, r.coll, *c)
	if err != nil {
		return nil, fmt.Errorf("insert contract: %w", err)
	}
	created := *c
	created.ID = id
	return &created, nil
}

func (r *ContractRepository) FindByID(ctx context.Context, id string) (*domain.Contract, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrContractNotFound
	}
	hex, doc, err := findOne[domain.Contract](ctx, r.coll, bson.M{"_id": objID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContractNotFound
		}
		return nil, fmt.Errorf("find contract: %w", err)
	}
	doc.ID = hex
	return doc, nil
}

func (r *ContractRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Contract, error) {
	return findAll(ctx, r.coll, bson.M{"clientId": clientID}, sortByCreatedDesc(), func(id string, doc *domain.Contract) *domain.Contract {
		doc.ID = id
		return doc
	})
}

func (r *ContractRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Contract, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrContractNotFound
	}
	hex, doc, err := findOneAndUpdate[domain.Contract](ctx, r.coll, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContractNotFound
		}
		return nil, fmt.Errorf("update contract: %w", err)
	}
	doc.ID = hex
	return doc, nil
}
