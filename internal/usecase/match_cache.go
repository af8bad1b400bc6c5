package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MatchCache holds computed match results between roster changes. A nil
// implementation is valid; every usecase treats cache errors as misses.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const matchKeyPattern = "match:project:*"

func matchCacheKey(projectID uuid.UUID) string {
	return "match:project:" + projectID.String()
}
