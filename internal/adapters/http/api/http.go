// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/encore/internal/domain/dedupe"
	"github.com/okian/encore/internal/domain/model"
	"github.com/okian/encore/internal/domain/types"
	"github.com/okian/encore/internal/engine"
)

// Wire format for event and window dates.
const dateFormat = "2006-01-02"

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to implementations in other
// packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes an event for async indexing. Returns false on
	// backpressure.
	Enqueue(ctx context.Context, e model.Event) bool

	// SaveProfile creates or replaces a user profile.
	SaveProfile(ctx context.Context, p model.UserProfile) error

	// Recommend runs the scoring pass for one user.
	Recommend(ctx context.Context, username string, q types.RecommendQuery) (engine.Result, error)

	// Vocabulary endpoints for the admin and onboarding forms.
	TagOptions(ctx context.Context) []string
	ArtistOptions(ctx context.Context) []string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	eventsHandler          *EventsHandler
	profilesHandler        *ProfilesHandler
	recommendationsHandler *RecommendationsHandler
	vocabHandler           *VocabHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		eventsHandler:          NewEventsHandler(deps),
		profilesHandler:        NewProfilesHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps, maxLimit),
		vocabHandler:           NewVocabHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/profiles", MetricsMiddleware(s.profilesHandler.HandlePutProfile, "profiles"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendationsHandler.HandleGetRecommendations, "recommendations"))
	mux.HandleFunc("/tag-options", MetricsMiddleware(s.vocabHandler.HandleGetTagOptions, "tag_options"))
	mux.HandleFunc("/artist-options", MetricsMiddleware(s.vocabHandler.HandleGetArtistOptions, "artist_options"))
}

// eventRequest mirrors the wire schema for POST /events.
type eventRequest struct {
	EventID  string   `json:"event_id"`
	Title    string   `json:"title"`
	City     string   `json:"city"`
	Language string   `json:"language"`
	Date     string   `json:"date"`
	Genres   []string `json:"genres"`
	Artists  []string `json:"artists"`
}

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(e.City) == "":
		return errors.New("missing city")
	case strings.TrimSpace(e.Date) == "":
		return errors.New("missing date")
	}
	if _, err := time.Parse(dateFormat, e.Date); err != nil {
		return errors.New("invalid date; must be YYYY-MM-DD")
	}
	return nil
}

// toModel converts the request into a domain event. validate must have
// passed first.
func (e eventRequest) toModel() model.Event {
	date, _ := time.Parse(dateFormat, e.Date)
	return model.Event{
		ID:       e.EventID,
		Title:    e.Title,
		City:     e.City,
		Language: e.Language,
		Date:     date,
		Genres:   e.Genres,
		Artists:  e.Artists,
	}
}

// profileRequest mirrors the wire schema for PUT /profiles.
type profileRequest struct {
	Username        string   `json:"username"`
	City            string   `json:"city"`
	Language        string   `json:"language"`
	Genres          []string `json:"genres"`
	FavoriteArtists []string `json:"favorite_artists"`
}

func (p profileRequest) validate() error {
	switch {
	case strings.TrimSpace(p.Username) == "":
		return errors.New("missing username")
	case strings.TrimSpace(p.City) == "":
		return errors.New("missing city")
	}
	return nil
}

func (p profileRequest) toModel() model.UserProfile {
	return model.UserProfile{
		Username:        p.Username,
		City:            p.City,
		Language:        p.Language,
		Genres:          p.Genres,
		FavoriteArtists: p.FavoriteArtists,
	}
}

type ackResponse struct {
	Status    string `json:"status"`
	EventID   string `json:"event_id,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
