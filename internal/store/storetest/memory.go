// Package storetest provides an in-memory store.Store for handler tests.
package storetest

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/scholarship-api/internal/models"
	"github.com/harentsoaR/scholarship-api/internal/store"
)

// Memory keeps documents in their stored (bson) shape so filters and merges
// behave like the real collection for top-level equality and $set.
type Memory[T any] struct {
	mu   sync.Mutex
	docs []bson.M

	// Non-nil errors are returned by the matching operation.
	InsertErr error
	FindErr   error
	UpdateErr error
	DeleteErr error

	Calls int
}

func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{}
}

func (m *Memory[T]) Insert(_ context.Context, doc *T) (*store.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.InsertErr != nil {
		return nil, m.InsertErr
	}

	raw, err := store.FieldsOf(doc)
	if err != nil {
		return nil, err
	}
	id, ok := raw["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		raw["_id"] = id
	}
	m.docs = append(m.docs, raw)
	return &store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (m *Memory[T]) List(_ context.Context, filter store.Filter) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.FindErr != nil {
		return nil, m.FindErr
	}

	matched := make([]bson.M, 0, len(m.docs))
	for _, doc := range m.docs {
		if matches(doc, filter) {
			matched = append(matched, doc)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return createdAt(matched[i]) > createdAt(matched[j])
	})

	out := make([]T, 0, len(matched))
	for _, doc := range matched {
		v, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (m *Memory[T]) FindOne(_ context.Context, filter store.Filter) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.FindErr != nil {
		return nil, m.FindErr
	}

	for _, doc := range m.docs {
		if matches(doc, filter) {
			return decode[T](doc)
		}
	}
	return nil, store.ErrNotFound
}

func (m *Memory[T]) Update(_ context.Context, id primitive.ObjectID, fields store.Fields) (*store.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}

	// Normalize through bson so merged values compare like stored ones.
	norm, err := store.FieldsOf(fields)
	if err != nil {
		return nil, err
	}
	res := &store.UpdateResult{Acknowledged: true}
	for _, doc := range m.docs {
		if doc["_id"] != id {
			continue
		}
		res.MatchedCount = 1
		for k, v := range norm {
			if !reflect.DeepEqual(doc[k], v) {
				doc[k] = v
				res.ModifiedCount = 1
			}
		}
		break
	}
	return res, nil
}

func (m *Memory[T]) Delete(_ context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.DeleteErr != nil {
		return nil, m.DeleteErr
	}

	res := &store.DeleteResult{Acknowledged: true}
	for i, doc := range m.docs {
		if doc["_id"] == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			res.DeletedCount = 1
			break
		}
	}
	return res, nil
}

// Len is the number of stored documents.
func (m *Memory[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

// Raw returns the stored shape of the document with the given id, or nil.
func (m *Memory[T]) Raw(id primitive.ObjectID) bson.M {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.docs {
		if doc["_id"] == id {
			out := bson.M{}
			for k, v := range doc {
				out[k] = v
			}
			return out
		}
	}
	return nil
}

func matches(doc bson.M, filter store.Filter) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(doc[k], want) {
			return false
		}
	}
	return true
}

func createdAt(doc bson.M) primitive.DateTime {
	dt, _ := doc["createdAt"].(primitive.DateTime)
	return dt
}

func decode[T any](doc bson.M) (*T, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var v T
	if err := bson.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Store bundles one Memory per resource.
type Store struct {
	Users        *Memory[models.User]
	Scholarships *Memory[models.Scholarship]
	Applications *Memory[models.Application]
	Reviews      *Memory[models.Review]
	Payments     *Memory[models.Payment]
}

func New() *Store {
	return &Store{
		Users:        NewMemory[models.User](),
		Scholarships: NewMemory[models.Scholarship](),
		Applications: NewMemory[models.Application](),
		Reviews:      NewMemory[models.Review](),
		Payments:     NewMemory[models.Payment](),
	}
}

// Store exposes the memories as the store.Store handlers depend on.
func (s *Store) Store() *store.Store {
	return &store.Store{
		Users:        s.Users,
		Scholarships: s.Scholarships,
		Applications: s.Applications,
		Reviews:      s.Reviews,
		Payments:     s.Payments,
	}
}
