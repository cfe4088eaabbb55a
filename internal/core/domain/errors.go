package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyHistory means the request carried no watch history at all.
	ErrEmptyHistory = errors.New("anime history is empty")
	// ErrNoCandidates means no eligible catalog entries survived the
	// exclusion set. Treated as "not found", not as a server fault.
	ErrNoCandidates = errors.New("no candidates available")
	// ErrRankingFailed means the ranking strategy produced no pick, which
	// only happens when the pool vanished between gathering and ranking.
	ErrRankingFailed = errors.New("ranking produced no recommendation")
	// ErrInvalidInput covers malformed request parameters.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamUnavailable covers catalog or reasoning transport failures
	// that are not locally recoverable.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
