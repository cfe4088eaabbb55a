package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/kirillkom/anime-recommender/internal/core/domain"
)

const (
	// Lower variance keeps similar-mode picks consistent; higher variance
	// lets explore mode take chances.
	similarTemperature float32 = 0.3
	exploreTemperature float32 = 0.7

	similarFallbackReason = "This anime shares similarities with your favorites."
	exploreFallbackReason = "This critically acclaimed anime will expand your horizons."
)

type completer interface {
	complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error)
}

// Ranker implements the two ranking strategies. Whatever the reasoning
// service does, a non-empty candidate pool always yields a pick: unparseable
// output, unknown ids, and transport failures all fall back to the first pool
// entry with a canned reason. Only context cancellation aborts.
type Ranker struct {
	client completer
}

func NewRanker(client *Client) *Ranker {
	return &Ranker{client: client}
}

// rankedChoice is the structured result the reasoning service is asked for.
type rankedChoice struct {
	MALID  int    `json:"mal_id"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

func (r *Ranker) RankSimilar(ctx context.Context, candidates []domain.AnimeRecord, history []domain.HistoryEntry, excludedIDs map[int]struct{}) (*domain.Recommendation, error) {
	pool := filterExcluded(candidates, excludedIDs)
	if len(pool) == 0 {
		return nil, nil
	}

	prompt := buildSimilarPrompt(pool, likedEntries(history))
	return r.rank(ctx, pool, similarSystemPrompt, prompt, similarTemperature, similarFallbackReason)
}

func (r *Ranker) RankExplore(ctx context.Context, candidates []domain.AnimeRecord, history []domain.HistoryEntry, excludedIDs map[int]struct{}) (*domain.Recommendation, error) {
	pool := filterExcluded(candidates, excludedIDs)
	if len(pool) == 0 {
		return nil, nil
	}

	prompt := buildExplorePrompt(pool, history)
	return r.rank(ctx, pool, exploreSystemPrompt, prompt, exploreTemperature, exploreFallbackReason)
}

func (r *Ranker) rank(ctx context.Context, pool []domain.AnimeRecord, systemPrompt, userPrompt string, temperature float32, fallbackReason string) (*domain.Recommendation, error) {
	raw, err := r.client.complete(ctx, systemPrompt, userPrompt, temperature)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		slog.Warn("reasoning_call_failed", "error", err, "fallback", true)
		return fallbackPick(pool, fallbackReason), nil
	}

	var choice rankedChoice
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &choice); err != nil {
		slog.Warn("reasoning_response_unparseable", "error", err, "fallback", true)
		return fallbackPick(pool, fallbackReason), nil
	}

	for _, record := range pool {
		if record.MALID == choice.MALID {
			reason := strings.TrimSpace(choice.Reason)
			if reason == "" {
				reason = fallbackReason
			}
			return &domain.Recommendation{AnimeRecord: record, Reason: reason}, nil
		}
	}

	slog.Warn("reasoning_selected_unknown_id", "selected_id", choice.MALID, "fallback", true)
	return fallbackPick(pool, fallbackReason), nil
}

// fallbackPick guarantees the orchestrator a usable pick whenever candidates
// exist, decoupling availability from reasoning-service reliability.
func fallbackPick(pool []domain.AnimeRecord, reason string) *domain.Recommendation {
	return &domain.Recommendation{
		AnimeRecord: pool[0],
		Reason:      reason,
		Fallback:    true,
	}
}

// filterExcluded is a defensive re-filter; the gatherer already applied the
// exclusion set, but the pick must never be a blocked title.
func filterExcluded(candidates []domain.AnimeRecord, excludedIDs map[int]struct{}) []domain.AnimeRecord {
	pool := make([]domain.AnimeRecord, 0, len(candidates))
	for _, record := range candidates {
		if _, blocked := excludedIDs[record.MALID]; blocked {
			continue
		}
		pool = append(pool, record)
	}
	return pool
}

func likedEntries(history []domain.HistoryEntry) []domain.HistoryEntry {
	liked := make([]domain.HistoryEntry, 0, len(history))
	for _, entry := range history {
		if entry.Liked() {
			liked = append(liked, entry)
		}
	}
	return liked
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
