package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/scholarship-api/internal/models"
)

// Collection is a Repository backed by a MongoDB collection.
type Collection[T any] struct {
	coll *mongo.Collection
}

func NewCollection[T any](coll *mongo.Collection) *Collection[T] {
	return &Collection[T]{coll: coll}
}

// NewMongo wires every resource to its collection in db.
func NewMongo(db *mongo.Database) *Store {
	return &Store{
		Users:        NewCollection[models.User](db.Collection(UsersCollection)),
		Scholarships: NewCollection[models.Scholarship](db.Collection(ScholarshipsCollection)),
		Applications: NewCollection[models.Application](db.Collection(ApplicationsCollection)),
		Reviews:      NewCollection[models.Review](db.Collection(ReviewsCollection)),
		Payments:     NewCollection[models.Payment](db.Collection(PaymentsCollection)),
	}
}

func (c *Collection[T]) Insert(ctx context.Context, doc *T) (*InsertResult, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return &InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (c *Collection[T]) List(ctx context.Context, filter Filter) ([]T, error) {
	if filter == nil {
		filter = Filter{}
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}) // newest first

	cursor, err := c.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return docs, nil
}

func (c *Collection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one in %s: %w", c.coll.Name(), err)
	}
	return &doc, nil
}

func (c *Collection[T]) Update(ctx context.Context, id primitive.ObjectID, fields Fields) (*UpdateResult, error) {
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, fmt.Errorf("update in %s: %w", c.coll.Name(), err)
	}
	return &UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("delete from %s: %w", c.coll.Name(), err)
	}
	return &DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// EnsureIndexes creates the non-unique indexes the list and lookup queries use.
// Duplicate emails stay allowed.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	byCreated := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}

	indexes := map[string][]mongo.IndexModel{
		UsersCollection:        {byCreated, {Keys: bson.D{{Key: "email", Value: 1}}}},
		ScholarshipsCollection: {byCreated},
		ApplicationsCollection: {byCreated},
		ReviewsCollection:      {byCreated},
		PaymentsCollection:     {byCreated, {Keys: bson.D{{Key: "userEmail", Value: 1}, {Key: "createdAt", Value: -1}}}},
	}
	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
