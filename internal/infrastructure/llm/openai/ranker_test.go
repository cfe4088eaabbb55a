package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/anime-recommender/internal/core/domain"
)

type completerFake struct {
	response     string
	err          error
	systemPrompt string
	userPrompt   string
	temperature  float32
	calls        int
}

func (f *completerFake) complete(_ context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	f.calls++
	f.systemPrompt = systemPrompt
	f.userPrompt = userPrompt
	f.temperature = temperature
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testPool() []domain.AnimeRecord {
	return []domain.AnimeRecord{
		{MALID: 10, Title: "Mushishi", Genres: []string{"Slice of Life"}},
		{MALID: 20, Title: "Monster", Genres: []string{"Mystery"}},
		{MALID: 30, Title: "Ping Pong the Animation"},
	}
}

func TestRankSimilarResolvesSelectedID(t *testing.T) {
	fake := &completerFake{response: `{"mal_id":20,"title":"Monster","reason":"Slow-burn psychological tension."}`}
	ranker := &Ranker{client: fake}

	pick, err := ranker.RankSimilar(context.Background(), testPool(), nil, nil)
	if err != nil {
		t.Fatalf("RankSimilar() error = %v", err)
	}
	if pick == nil || pick.MALID != 20 {
		t.Fatalf("expected pick 20, got %+v", pick)
	}
	if pick.Reason != "Slow-burn psychological tension." {
		t.Fatalf("unexpected reason: %q", pick.Reason)
	}
	if pick.Fallback {
		t.Fatalf("resolved pick must not be marked fallback")
	}
	if fake.temperature != similarTemperature {
		t.Fatalf("expected similar temperature %v, got %v", similarTemperature, fake.temperature)
	}
}

func TestRankExploreUsesHigherTemperature(t *testing.T) {
	fake := &completerFake{response: `{"mal_id":30,"title":"Ping Pong the Animation","reason":"Nothing like your usual picks."}`}
	ranker := &Ranker{client: fake}

	pick, err := ranker.RankExplore(context.Background(), testPool(), nil, nil)
	if err != nil {
		t.Fatalf("RankExplore() error = %v", err)
	}
	if pick == nil || pick.MALID != 30 {
		t.Fatalf("expected pick 30, got %+v", pick)
	}
	if fake.temperature != exploreTemperature {
		t.Fatalf("expected explore temperature %v, got %v", exploreTemperature, fake.temperature)
	}
}

func TestUnknownSelectedIDFallsBackToFirstCandidate(t *testing.T) {
	fake := &completerFake{response: `{"mal_id":999,"title":"Fabricated","reason":"made up"}`}
	ranker := &Ranker{client: fake}

	pick, err := ranker.RankSimilar(context.Background(), testPool(), nil, nil)
	if err != nil {
		t.Fatalf("RankSimilar() error = %v", err)
	}
	if pick == nil || pick.MALID != 10 {
		t.Fatalf("expected fallback to first candidate, got %+v", pick)
	}
	if !pick.Fallback || pick.Reason != similarFallbackReason {
		t.Fatalf("expected canned similar reason, got %+v", pick)
	}
}

func TestUnparseableResponseFallsBack(t *testing.T) {
	fake := &completerFake{response: "I recommend Monster because it is great"}
	ranker := &Ranker{client: fake}

	pick, err := ranker.RankExplore(context.Background(), testPool(), nil, nil)
	if err != nil {
		t.Fatalf("RankExplore() error = %v", err)
	}
	if pick == nil || pick.MALID != 10 || pick.Reason != exploreFallbackReason {
		t.Fatalf("expected canned explore fallback, got %+v", pick)
	}
}

func TestCompletionErrorFallsBackWhenPoolExists(t *testing.T) {
	fake := &completerFake{err: errors.New("reasoning service down")}
	ranker := &Ranker{client: fake}

	pick, err := ranker.RankSimilar(context.Background(), testPool(), nil, nil)
	if err != nil {
		t.Fatalf("transport failure must be swallowed by fallback, got %v", err)
	}
	if pick == nil || !pick.Fallback {
		t.Fatalf("expected fallback pick, got %+v", pick)
	}
}

func TestCancelledContextPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fake := &completerFake{err: context.Canceled}
	ranker := &Ranker{client: fake}

	_, err := ranker.RankSimilar(ctx, testPool(), nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation to propagate, got %v", err)
	}
}

func TestRefilterEmptyingPoolReturnsAbsent(t *testing.T) {
	fake := &completerFake{response: `{"mal_id":10}`}
	ranker := &Ranker{client: fake}

	excluded := map[int]struct{}{10: {}, 20: {}, 30: {}}
	pick, err := ranker.RankSimilar(context.Background(), testPool(), nil, excluded)
	if err != nil {
		t.Fatalf("RankSimilar() error = %v", err)
	}
	if pick != nil {
		t.Fatalf("expected absent pick for empty pool, got %+v", pick)
	}
	if fake.calls != 0 {
		t.Fatalf("reasoning service must not be called with an empty pool")
	}
}

func TestPickIsAlwaysPoolMember(t *testing.T) {
	responses := []string{
		`{"mal_id":20,"title":"Monster","reason":"ok"}`,
		`{"mal_id":12345}`,
		`not json at all`,
		`{"mal_id":0}`,
	}
	pool := testPool()
	members := map[int]bool{}
	for _, record := range pool {
		members[record.MALID] = true
	}

	for _, response := range responses {
		ranker := &Ranker{client: &completerFake{response: response}}
		pick, err := ranker.RankExplore(context.Background(), pool, nil, nil)
		if err != nil {
			t.Fatalf("response %q: error = %v", response, err)
		}
		if pick == nil || !members[pick.MALID] {
			t.Fatalf("response %q: pick %+v is not a pool member", response, pick)
		}
	}
}

func TestEmptyReasonGetsCannedReason(t *testing.T) {
	fake := &completerFake{response: `{"mal_id":20,"title":"Monster","reason":"  "}`}
	ranker := &Ranker{client: fake}

	pick, err := ranker.RankSimilar(context.Background(), testPool(), nil, nil)
	if err != nil {
		t.Fatalf("RankSimilar() error = %v", err)
	}
	if pick.Reason != similarFallbackReason {
		t.Fatalf("expected canned reason for blank reason, got %q", pick.Reason)
	}
}
