package ports

import (
	"context"

	"github.com/kirillkom/anime-recommender/internal/core/domain"
)

// AnimeCatalog is the outbound contract for the external catalog service.
// All record shaping happens behind this boundary: implementations return
// normalized AnimeRecord values, never raw upstream payloads.
type AnimeCatalog interface {
	// Search looks up anime by title.
	Search(ctx context.Context, query string, limit int) ([]domain.AnimeRecord, error)
	// Details resolves a single catalog id to a full record.
	Details(ctx context.Context, id int) (*domain.AnimeRecord, error)
	// Related returns the catalog's related-title entries for an anime.
	// Entries may be sparse (id and title only); callers resolve them with
	// Details when they need full metadata.
	Related(ctx context.Context, id int, limit int) ([]domain.AnimeRecord, error)
	// TopRanked returns the catalog's global top-ranked listing.
	TopRanked(ctx context.Context, limit int) ([]domain.AnimeRecord, error)
}

// RecommendationRanker delegates final selection to the reasoning service.
// Both strategies return a nil recommendation with a nil error when the
// candidate set is empty after the defensive re-filter; a non-nil error is
// reserved for failures that must abort the request (cancellation).
type RecommendationRanker interface {
	RankSimilar(ctx context.Context, candidates []domain.AnimeRecord, history []domain.HistoryEntry, excludedIDs map[int]struct{}) (*domain.Recommendation, error)
	RankExplore(ctx context.Context, candidates []domain.AnimeRecord, history []domain.HistoryEntry, excludedIDs map[int]struct{}) (*domain.Recommendation, error)
}
