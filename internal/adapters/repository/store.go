// Package repository defines the catalogue and profile store interfaces
// and errors.
package repository

import (
	"context"

	"github.com/okian/encore/internal/domain/model"
)

// EventStore provides read/write access to the event catalogue.
type EventStore interface {
	// Upsert inserts or replaces an event by id. Returns true when the
	// event was newly created.
	Upsert(ctx context.Context, ev model.Event) (bool, error)

	// Get returns the event with the given id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Event, error)

	// List returns a snapshot of all events. Order is unspecified.
	List(ctx context.Context) []model.Event

	// Count returns the number of events in the catalogue.
	Count(ctx context.Context) int
}

// ProfileStore provides read/write access to user profiles.
type ProfileStore interface {
	// Save inserts or replaces a profile keyed by username.
	Save(ctx context.Context, p model.UserProfile) error

	// Get returns the profile for the given username.
	// Returns ErrNotFound if the username is unknown.
	Get(ctx context.Context, username string) (model.UserProfile, error)

	// Count returns the number of stored profiles.
	Count(ctx context.Context) int
}
