package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/kirillkom/anime-recommender/internal/core/domain"
	"github.com/kirillkom/anime-recommender/internal/core/ports"
)

const (
	// familiarTarget and poolTarget fix the ~33/67 familiar/exploratory
	// split. The ratio is policy, not user-configurable.
	familiarTarget = 4
	poolTarget     = 12

	detailConcurrency = 4
)

// CandidateGatherer builds the bounded candidate pool for one request by
// mixing two sources: titles related to the most recently liked history entry
// (familiar) and the catalog's global top ranking (exploratory).
//
// Genre-filtered exploration is a known simplification: the ranking listing
// is always fetched unfiltered because the catalog offers no genre filter on
// its ranking endpoint.
type CandidateGatherer struct {
	catalog ports.AnimeCatalog
}

func NewCandidateGatherer(catalog ports.AnimeCatalog) *CandidateGatherer {
	return &CandidateGatherer{catalog: catalog}
}

// Gather returns the candidate pool in deterministic order: familiar entries
// first, exploratory entries after, each phase in discovery order. The pool
// never contains a blocked id or a duplicate id. Gather itself never fails;
// an empty pool is the failure signal. Catalog errors are logged and the
// affected phase simply contributes nothing.
func (g *CandidateGatherer) Gather(ctx context.Context, history []domain.HistoryEntry, excludedIDs map[int]struct{}) []domain.AnimeRecord {
	var (
		familiar []domain.AnimeRecord
		ranking  []domain.AnimeRecord
	)

	// The familiar phase and the ranking listing are independent round
	// trips; run them side by side and merge in fixed phase order below.
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		familiar = g.familiarCandidates(grpCtx, history, excludedIDs)
		return nil
	})
	grp.Go(func() error {
		records, err := g.catalog.TopRanked(grpCtx, poolTarget)
		if err != nil {
			slog.Warn("top_ranked_fetch_failed", "error", err)
			return nil
		}
		ranking = records
		return nil
	})
	_ = grp.Wait()

	pool := make([]domain.AnimeRecord, 0, poolTarget)
	seen := make(map[int]struct{}, poolTarget)
	accept := func(record domain.AnimeRecord) {
		if record.MALID == 0 {
			return
		}
		if _, blocked := excludedIDs[record.MALID]; blocked {
			return
		}
		if _, dup := seen[record.MALID]; dup {
			return
		}
		seen[record.MALID] = struct{}{}
		pool = append(pool, record)
	}

	for _, record := range familiar {
		if len(pool) >= familiarTarget {
			break
		}
		accept(record)
	}
	for _, record := range ranking {
		if len(pool) >= poolTarget {
			break
		}
		accept(record)
	}
	return pool
}

// familiarCandidates resolves up to familiarTarget titles related to the most
// recently liked history entry. Detail lookups run concurrently but results
// are merged in related-list order so the pool stays deterministic.
func (g *CandidateGatherer) familiarCandidates(ctx context.Context, history []domain.HistoryEntry, excludedIDs map[int]struct{}) []domain.AnimeRecord {
	anchor, ok := mostRecentLiked(history)
	if !ok {
		return nil
	}

	related, err := g.catalog.Related(ctx, anchor.MALID, familiarTarget)
	if err != nil {
		slog.Warn("related_fetch_failed", "anime_id", anchor.MALID, "error", err)
		return nil
	}

	ids := make([]int, 0, familiarTarget)
	taken := make(map[int]struct{}, familiarTarget)
	for _, record := range related {
		if record.MALID == 0 {
			continue
		}
		if _, blocked := excludedIDs[record.MALID]; blocked {
			continue
		}
		if _, dup := taken[record.MALID]; dup {
			continue
		}
		taken[record.MALID] = struct{}{}
		ids = append(ids, record.MALID)
		if len(ids) == familiarTarget {
			break
		}
	}
	if len(ids) == 0 {
		return nil
	}

	resolved := make([]*domain.AnimeRecord, len(ids))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(detailConcurrency)
	for i, id := range ids {
		i, id := i, id
		grp.Go(func() error {
			record, err := g.catalog.Details(grpCtx, id)
			if err != nil {
				slog.Warn("detail_fetch_failed", "anime_id", id, "error", err)
				return nil
			}
			resolved[i] = record
			return nil
		})
	}
	_ = grp.Wait()

	out := make([]domain.AnimeRecord, 0, len(ids))
	for _, record := range resolved {
		if record != nil {
			out = append(out, *record)
		}
	}
	return out
}

// mostRecentLiked returns the last positively rated entry. The caller is
// expected to append newly rated titles, so last-in-order means most recent.
func mostRecentLiked(history []domain.HistoryEntry) (domain.HistoryEntry, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Liked() {
			return history[i], true
		}
	}
	return domain.HistoryEntry{}, false
}
