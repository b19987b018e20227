// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/encore/internal/adapters/repository"
	"github.com/okian/encore/internal/domain/model"
	"github.com/okian/encore/internal/domain/scoring"
	"github.com/okian/encore/internal/domain/types"
	"github.com/okian/encore/internal/engine"
)

// RecommendationsHandler handles recommendation reads.
type RecommendationsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps Dependencies, maxLimit int) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps, maxLimit: maxLimit}
}

// eventPayload is the opaque display view of an event in responses.
type eventPayload struct {
	EventID  string   `json:"event_id"`
	Title    string   `json:"title"`
	City     string   `json:"city"`
	Language string   `json:"language"`
	Date     string   `json:"date"`
	Genres   []string `json:"genres"`
	Artists  []string `json:"artists"`
}

type recommendationEntry struct {
	Event       eventPayload      `json:"event"`
	Score       float64           `json:"score"`
	Breakdown   scoring.Breakdown `json:"breakdown"`
	Explanation string            `json:"explanation"`
}

type skippedPayload struct {
	EventID string `json:"event_id"`
	Reason  string `json:"reason"`
}

type recommendationsResponse struct {
	Username string                `json:"username"`
	Count    int                   `json:"count"`
	Results  []recommendationEntry `json:"results"`
	Skipped  []skippedPayload      `json:"skipped,omitempty"`
}

// HandleGetRecommendations handles
// GET /recommendations?username=&limit=&date_from=&date_to= requests.
// Optional w_content, w_context and w_artist parameters override the
// deployed weights for this request.
func (h *RecommendationsHandler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	params := r.URL.Query()

	username := params.Get("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing username", ErrBadRequest))
		return
	}

	query, err := h.parseQuery(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	result, err := h.deps.Recommend(r.Context(), username, query)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", err)
		case errors.Is(err, model.ErrInvalidProfile):
			writeError(w, http.StatusBadRequest, "bad_request", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toResponse(username, result))
}

func (h *RecommendationsHandler) parseQuery(params url.Values) (types.RecommendQuery, error) {
	var q types.RecommendQuery

	if limitStr := params.Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			return q, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest)
		}
		if n > h.maxLimit {
			return q, fmt.Errorf("%w: limit exceeds maximum of %d", ErrBadRequest, h.maxLimit)
		}
		q.Limit = n
	}

	for name, dst := range map[string]**time.Time{
		"date_from": &q.DateFrom,
		"date_to":   &q.DateTo,
	} {
		if v := params.Get(name); v != "" {
			t, err := time.Parse(dateFormat, v)
			if err != nil {
				return q, fmt.Errorf("%w: invalid %s; must be YYYY-MM-DD", ErrBadRequest, name)
			}
			*dst = &t
		}
	}

	weights, err := parseWeights(params)
	if err != nil {
		return q, err
	}
	q.Weights = weights

	return q, nil
}

// parseWeights returns nil when no override parameter is present.
// Overrides start from the deployed defaults, so a request may override
// a single weight.
func parseWeights(params url.Values) (*scoring.Weights, error) {
	weights := scoring.DefaultWeights()
	present := false

	for name, dst := range map[string]*float64{
		"w_content": &weights.Content,
		"w_context": &weights.Context,
		"w_artist":  &weights.Artist,
	} {
		v := params.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative number", ErrBadRequest, name)
		}
		*dst = f
		present = true
	}

	if !present {
		return nil, nil
	}
	return &weights, nil
}

func toResponse(username string, result engine.Result) recommendationsResponse {
	resp := recommendationsResponse{
		Username: username,
		Count:    len(result.Entries),
		Results:  make([]recommendationEntry, len(result.Entries)),
	}
	for i, e := range result.Entries {
		resp.Results[i] = recommendationEntry{
			Event: eventPayload{
				EventID:  e.Event.ID,
				Title:    e.Event.Title,
				City:     e.Event.City,
				Language: e.Event.Language,
				Date:     e.Event.Date.Format(dateFormat),
				Genres:   e.Event.Genres,
				Artists:  e.Event.Artists,
			},
			Score:       e.Breakdown.Total,
			Breakdown:   e.Breakdown,
			Explanation: e.Explanation,
		}
	}
	for _, s := range result.Skipped {
		resp.Skipped = append(resp.Skipped, skippedPayload{EventID: s.EventID, Reason: s.Reason})
	}
	return resp
}
