// Package persistence provides document storage implementations for
// contribution records.
package persistence

import (
	"context"
	"errors"

	"github.com/teacherlog/teacherlog/domain/contribution"
)

// ErrNotFound indicates no record matched the given identifier.
var ErrNotFound = errors.New("contribution not found")

// ErrInvalidID indicates an identifier that is not syntactically valid
// for the backing store. It is checked before any store access.
var ErrInvalidID = errors.New("invalid id format")

// ListLimit caps list results. There is no offset or cursor pagination;
// this is a deliberate scale limitation.
const ListLimit = 1000

// Store persists contribution records. Identifier format is store-specific
// (ObjectID hex for Mongo, UUID for the relational backends), so syntactic
// validation is part of the interface.
type Store interface {
	// ValidateID reports ErrInvalidID when id is not syntactically valid.
	ValidateID(id string) error

	// Insert stores a new record and returns it re-fetched by the
	// store-assigned identifier.
	Insert(ctx context.Context, c contribution.Contribution) (contribution.Contribution, error)

	// List returns up to ListLimit records sorted by date descending,
	// projecting only the declared record fields.
	List(ctx context.Context) ([]contribution.Contribution, error)

	// Get returns the record with the given identifier or ErrNotFound.
	Get(ctx context.Context, id string) (contribution.Contribution, error)

	// Update applies the partial field set to the record and returns the
	// refreshed record. Returns ErrNotFound when no record matches.
	// Callers guarantee fields is non-empty and already validated.
	Update(ctx context.Context, id string, fields map[string]any) (contribution.Contribution, error)

	// Delete removes the record or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// EnsureIndexes establishes the supporting indexes (date desc,
	// created_at desc, contribution_type asc). These are accelerators,
	// not correctness-affecting.
	EnsureIndexes(ctx context.Context) error

	// Ping verifies store connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close(ctx context.Context) error
}
