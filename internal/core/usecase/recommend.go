package usecase

import (
	"context"
	"errors"

	"github.com/kirillkom/anime-recommender/internal/core/domain"
	"github.com/kirillkom/anime-recommender/internal/core/ports"
)

// RecommendUseCase orchestrates one stateless recommendation pass:
// validate, gather candidates, select the ranking strategy by mode, rank,
// assemble. It performs no upstream I/O itself; all network interaction is
// delegated to the gatherer and the ranker.
type RecommendUseCase struct {
	gatherer *CandidateGatherer
	ranker   ports.RecommendationRanker
}

func NewRecommendUseCase(gatherer *CandidateGatherer, ranker ports.RecommendationRanker) *RecommendUseCase {
	return &RecommendUseCase{
		gatherer: gatherer,
		ranker:   ranker,
	}
}

func (uc *RecommendUseCase) Recommend(ctx context.Context, history []domain.HistoryEntry, mode domain.Mode, excludeIDs []int) (*domain.Recommendation, error) {
	if len(history) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyHistory, "recommend",
			errors.New("provide at least one anime, your favorite first"))
	}
	if mode == "" {
		mode = domain.ModeExplore
	}

	blocked := blockedIDs(history, excludeIDs)

	pool := uc.gatherer.Gather(ctx, history, blocked)
	if len(pool) == 0 {
		// Distinguish "nothing eligible" from a cancelled gather: a pool
		// abandoned mid-flight must never surface as "not found".
		if err := ctx.Err(); err != nil {
			return nil, domain.WrapError(domain.ErrUpstreamUnavailable, "gather candidates", err)
		}
		return nil, domain.WrapError(domain.ErrNoCandidates, "gather candidates",
			errors.New("could not find any new anime to recommend, try expanding your history"))
	}

	var (
		pick *domain.Recommendation
		err  error
	)
	if mode == domain.ModeSimilar {
		pick, err = uc.ranker.RankSimilar(ctx, pool, history, blocked)
	} else {
		pick, err = uc.ranker.RankExplore(ctx, pool, history, blocked)
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrUpstreamUnavailable, "rank candidates", err)
	}
	if pick == nil {
		return nil, domain.WrapError(domain.ErrRankingFailed, "rank candidates",
			errors.New("candidate pool emptied before a pick was made"))
	}
	return pick, nil
}

// blockedIDs is everything the user has already seen plus caller-specified
// exclusions, deduplicated.
func blockedIDs(history []domain.HistoryEntry, excludeIDs []int) map[int]struct{} {
	blocked := make(map[int]struct{}, len(history)+len(excludeIDs))
	for _, entry := range history {
		blocked[entry.MALID] = struct{}{}
	}
	for _, id := range excludeIDs {
		blocked[id] = struct{}{}
	}
	return blocked
}
