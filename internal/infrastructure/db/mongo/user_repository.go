package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository persists credential records in MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := insertOne(ctx, r.coll, *user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	created := *user
	created.ID = id
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	id, doc, err := findOne[domain.User](ctx, r.coll, bson.M{"email": email})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	doc.ID = id
	return doc, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	hex, doc, err := findOne[domain.User](ctx, r.coll, bson.M{"_id": objID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	doc.ID = hex
	return doc, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return findAll(ctx, r.coll, bson.M{}, sortByCreatedDesc(), func(id string, doc *domain.User) *domain.User {
		doc.ID = id
		return doc
	})
}

func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	hex, doc, err := findOneAndUpdate[domain.User](ctx, r.coll, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	doc.ID = hex
	return doc, nil
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	objID, err := oid(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"isActive": active}})
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
