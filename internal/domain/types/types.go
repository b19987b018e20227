// Package types contains common types shared between the service and
// the HTTP API.
package types

import (
	"time"

	"github.com/okian/encore/internal/domain/scoring"
)

// RecommendQuery carries the request-scoped options of one
// recommendation call. Weights, when set, override the deployed
// defaults for that request only.
type RecommendQuery struct {
	Limit    int
	DateFrom *time.Time
	DateTo   *time.Time
	Weights  *scoring.Weights
}
