package httpadapter

import (
	"net/http"

	"github.com/kirillkom/anime-recommender/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrEmptyHistory),
		domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrNoCandidates),
		domain.IsKind(err, domain.ErrRankingFailed):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError maps the error kind to a status code. Internal details
// never leak: 5xx responses carry a fixed message.
func writeDomainError(w http.ResponseWriter, err error) {
	status := mapErrorToHTTPStatus(err)

	message := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		message = "upstream services are unavailable, please try again later"
	case http.StatusInternalServerError:
		message = "internal server error"
	}
	writeJSON(w, status, map[string]string{"error": message})
}
