// Package store persists converted SpecIF models.
//
// [MongoStore] keeps one document per model in a MongoDB collection, with
// the SpecIF JSON stored verbatim next to summary fields for listing.
// [MemoryStore] implements the same interface in process for tests and for
// the server when no database is configured.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/archispec/pkg/errors"
	"github.com/matzehuels/archispec/pkg/io"
	"github.com/matzehuels/archispec/pkg/specif"
)

// Record summarizes a stored model.
type Record struct {
	ID         string    `bson:"_id" json:"id"`
	Title      string    `bson:"title" json:"title"`
	Source     string    `bson:"source,omitempty" json:"source,omitempty"`
	Resources  int       `bson:"resources" json:"resources"`
	Statements int       `bson:"statements" json:"statements"`
	StoredAt   time.Time `bson:"stored_at" json:"storedAt"`
}

// Store persists models by id. Putting a model with an existing id
// replaces it.
type Store interface {
	Put(ctx context.Context, m *specif.Model, source string) (Record, error)
	Get(ctx context.Context, id string) (*specif.Model, error)
	List(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

// document is the persisted form of a model.
type document struct {
	Record `bson:",inline"`
	Model  []byte `bson:"model"`
}

func newDocument(m *specif.Model, source string, now time.Time) (document, error) {
	if err := errors.ValidateModelID(m.ID); err != nil {
		return document{}, err
	}
	data, err := io.MarshalJSON(m)
	if err != nil {
		return document{}, errors.Wrap(errors.ErrCodeInternal, err, "encode model %s", m.ID)
	}
	return document{
		Record: Record{
			ID:         m.ID,
			Title:      m.Title,
			Source:     source,
			Resources:  len(m.Resources),
			Statements: len(m.Statements),
			StoredAt:   now.UTC(),
		},
		Model: data,
	}, nil
}

func (d document) decode() (*specif.Model, error) {
	m, err := io.UnmarshalJSON(d.Model)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode stored model %s", d.ID)
	}
	return m, nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "model %s not found", id)
}
