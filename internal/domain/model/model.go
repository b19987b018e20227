// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a catalogue event curated by the admin side.
// Fields mirror the wire schema for POST /events.
type Event struct {
	ID       string    // unique id for idempotency and tie-breaking
	Title    string    // display title, opaque to scoring
	City     string    // event location
	Language string    // event language, e.g. "greek", "english"
	Date     time.Time // event date (midnight, local)
	Genres   []string  // genre tags
	Artists  []string  // performing artists
}

// Validate reports whether the event carries the fields scoring relies on.
// Genre and artist sets may be empty; that is a zero-signal case, not an
// error.
func (e *Event) Validate() error {
	switch {
	case strings.TrimSpace(e.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidEvent)
	case strings.TrimSpace(e.Title) == "":
		return fmt.Errorf("%w: missing title", ErrInvalidEvent)
	case strings.TrimSpace(e.City) == "":
		return fmt.Errorf("%w: missing city", ErrInvalidEvent)
	case e.Date.IsZero():
		return fmt.Errorf("%w: missing date", ErrInvalidEvent)
	}
	return nil
}

// UserProfile captures the onboarding questionnaire answers used for
// scoring. Immutable for the duration of one recommendation request.
type UserProfile struct {
	Username        string
	City            string
	Language        string
	Genres          []string
	FavoriteArtists []string
}

// Validate reports whether the profile is usable for scoring.
func (p *UserProfile) Validate() error {
	switch {
	case strings.TrimSpace(p.Username) == "":
		return fmt.Errorf("%w: missing username", ErrInvalidProfile)
	case strings.TrimSpace(p.City) == "":
		return fmt.Errorf("%w: missing city", ErrInvalidProfile)
	}
	return nil
}
