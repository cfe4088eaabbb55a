package httpadapter

import (
	"errors"
	"net/http"
	"testing"

	"github.com/kirillkom/anime-recommender/internal/core/domain"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"empty history", domain.WrapError(domain.ErrEmptyHistory, "recommend", errors.New("empty")), http.StatusUnprocessableEntity},
		{"invalid input", domain.WrapError(domain.ErrInvalidInput, "recommend", errors.New("bad")), http.StatusUnprocessableEntity},
		{"no candidates", domain.WrapError(domain.ErrNoCandidates, "gather", errors.New("none")), http.StatusNotFound},
		{"ranking failed", domain.WrapError(domain.ErrRankingFailed, "rank", errors.New("empty pool")), http.StatusNotFound},
		{"upstream unavailable", domain.WrapError(domain.ErrUpstreamUnavailable, "gather", errors.New("timeout")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
