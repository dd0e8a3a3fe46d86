// Package service implements the application-level operations over
// contribution records and their summarization.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/teacherlog/teacherlog/domain/contribution"
	"github.com/teacherlog/teacherlog/infrastructure/persistence"
)

// Contribution coordinates validation, sanitization and storage of
// contribution records.
type Contribution struct {
	store persistence.Store
	now   func() time.Time
}

// ContributionOption is a functional option for the Contribution service.
type ContributionOption func(*Contribution)

// WithClock overrides the wall clock used for created_at timestamps.
func WithClock(now func() time.Time) ContributionOption {
	return func(s *Contribution) { s.now = now }
}

// NewContribution creates a new Contribution service backed by the store.
func NewContribution(store persistence.Store, opts ...ContributionOption) *Contribution {
	s := &Contribution{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the params and stores a new record. The record comes
// back with the store-assigned identifier and creation timestamp.
func (s *Contribution) Create(ctx context.Context, params contribution.CreateParams) (contribution.Contribution, error) {
	c, err := contribution.New(params, s.now())
	if err != nil {
		return contribution.Contribution{}, err
	}

	created, err := s.store.Insert(ctx, c)
	if err != nil {
		return contribution.Contribution{}, fmt.Errorf("create contribution: %w", err)
	}
	return created, nil
}

// List returns the stored records, newest date first.
func (s *Contribution) List(ctx context.Context) ([]contribution.Contribution, error) {
	return s.store.List(ctx)
}

// Get returns a single record. Syntactically invalid identifiers are
// rejected before the store is consulted.
func (s *Contribution) Get(ctx context.Context, id string) (contribution.Contribution, error) {
	if err := s.store.ValidateID(id); err != nil {
		return contribution.Contribution{}, err
	}
	return s.store.Get(ctx, id)
}

// Update validates the present fields and applies them as a partial
// update. A request with no updatable fields is a validation error.
func (s *Contribution) Update(ctx context.Context, id string, params contribution.UpdateParams) (contribution.Contribution, error) {
	if err := s.store.ValidateID(id); err != nil {
		return contribution.Contribution{}, err
	}

	fields, err := params.Fields()
	if err != nil {
		return contribution.Contribution{}, err
	}
	if len(fields) == 0 {
		return contribution.Contribution{}, contribution.NewValidationError("", "No fields to update")
	}

	return s.store.Update(ctx, id, fields)
}

// Delete removes a record.
func (s *Contribution) Delete(ctx context.Context, id string) error {
	if err := s.store.ValidateID(id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}
