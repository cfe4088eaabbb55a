package ports

import (
	"context"

	"github.com/kirillkom/anime-recommender/internal/core/domain"
)

// Recommender is the inbound contract for one stateless recommendation pass.
// The caller supplies the full watch history on every call; no state survives
// the request.
type Recommender interface {
	Recommend(ctx context.Context, history []domain.HistoryEntry, mode domain.Mode, excludeIDs []int) (*domain.Recommendation, error)
}
