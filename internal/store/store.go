// Package store is the document-store layer. One Store is built at startup
// and shared by every handler; nothing below it owns the connection.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/scholarship-api/internal/models"
)

const (
	UsersCollection        = "users"
	ScholarshipsCollection = "scholarships"
	ApplicationsCollection = "applications"
	ReviewsCollection      = "reviews"
	PaymentsCollection     = "payments"
)

var ErrNotFound = errors.New("document not found")

// Filter is an equality match on top-level fields.
type Filter = bson.M

// Fields is the set of top-level fields merged by Update.
type Fields = bson.M

// The result types mirror the acknowledgements MongoDB returns so the wire
// contract is the raw operation result.
type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Repository is the set of operations a handler may run against one collection.
// List results are always ordered by createdAt, newest first.
type Repository[T any] interface {
	Insert(ctx context.Context, doc *T) (*InsertResult, error)
	List(ctx context.Context, filter Filter) ([]T, error)
	FindOne(ctx context.Context, filter Filter) (*T, error)
	Update(ctx context.Context, id primitive.ObjectID, fields Fields) (*UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error)
}

type Store struct {
	Users        Repository[models.User]
	Scholarships Repository[models.Scholarship]
	Applications Repository[models.Application]
	Reviews      Repository[models.Review]
	Payments     Repository[models.Payment]
}

// FindByID is FindOne on _id.
func FindByID[T any](ctx context.Context, repo Repository[T], id primitive.ObjectID) (*T, error) {
	return repo.FindOne(ctx, Filter{"_id": id})
}

// FieldsOf flattens a tagged struct into the fields it would store, dropping
// everything marked omitempty that is unset. Patch bodies go through here so
// only the fields the client sent are merged.
func FieldsOf(v any) (Fields, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}
	fields := Fields{}
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	return fields, nil
}
