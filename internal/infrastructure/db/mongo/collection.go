package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// envelope pairs a domain document with its Mongo _id. Domain types keep
// string ids and never see driver types; repositories copy the hex form
// back after every read.
type envelope[T any] struct {
	ID  primitive.ObjectID `bson:"_id,omitempty"`
	Doc T                  `bson:",inline"`
}

func insertOne[T any](ctx context.Context, coll *mongo.Collection, v T) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := coll.InsertOne(ctx, envelope[T]{Doc: v})
	if err != nil {
		return "", err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (string, *T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var env envelope[T]
	if err := coll.FindOne(ctx, filter).Decode(&env); err != nil {
		return "", nil, err
	}
	return env.ID.Hex(), &env.Doc, nil
}

func findOneAndUpdate[T any](ctx context.Context, coll *mongo.Collection, filter, update any) (string, *T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var env envelope[T]
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&env); err != nil {
		return "", nil, err
	}
	return env.ID.Hex(), &env.Doc, nil
}

// sortByCreatedDesc is the default listing order: newest first.
func sortByCreatedDesc() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// findAll drains a query into id/document pairs; the assemble callback
// rebuilds the domain value with its id set.
func findAll[T, R any](
	ctx context.Context,
	coll *mongo.Collection,
	filter any,
	opts *options.FindOptions,
	assemble func(id string, doc *T) R,
) ([]R, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cur, err := coll.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []R
	for cur.Next(ctx) {
		var env envelope[T]
		if err := cur.Decode(&env); err != nil {
			return nil, err
		}
		out = append(out, assemble(env.ID.Hex(), &env.Doc))
	}
	return out, cur.Err()
}
