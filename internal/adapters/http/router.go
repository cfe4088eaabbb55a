package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/kirillkom/anime-recommender/internal/config"
	"github.com/kirillkom/anime-recommender/internal/core/domain"
	"github.com/kirillkom/anime-recommender/internal/core/ports"
	"github.com/kirillkom/anime-recommender/internal/observability/metrics"
)

const (
	searchDefaultLimit = 5
	searchMaxLimit     = 20

	backpressureWait = 250 * time.Millisecond
)

type Router struct {
	cfg         config.Config
	recommender ports.Recommender
	catalog     ports.AnimeCatalog
	metrics     *metrics.HTTPServerMetrics
	validate    *validator.Validate
}

func NewRouter(
	cfg config.Config,
	recommender ports.Recommender,
	catalog ports.AnimeCatalog,
	m *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:         cfg,
		recommender: recommender,
		catalog:     catalog,
		metrics:     m,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api", rt.root)
	mux.HandleFunc("/api/recommend", rt.recommend)
	mux.HandleFunc("/api/search", rt.search)
	mux.HandleFunc("/api/health", rt.health)
	mux.Handle("/metrics", rt.metrics.Handler())

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", requestIDHeader},
		AllowCredentials: true,
	})

	var handler http.Handler = mux
	handler = rt.metrics.Middleware(rt.cfg.ServiceName, handler)
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, backpressureWait)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = corsMiddleware(handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) root(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":       "Welcome to the Anime Recommendation API (Stateless)",
		"version":       "2.0.0",
		"description":   "No accounts needed - manage your recommendations with a local JSON file!",
		"health":        "/api/health",
		"main_endpoint": "/api/recommend",
	})
}

func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "Anime Recommendation API (Stateless)",
		"version": "2.0",
	})
}

func (rt *Router) recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": validationMessage(err),
		})
		return
	}

	mode := domain.Mode(req.Mode)
	if mode == "" {
		mode = domain.ModeExplore
	}

	start := time.Now()
	pick, err := rt.recommender.Recommend(r.Context(), toDomainHistory(req.AnimeHistory), mode, req.ExcludeIDs)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	rt.metrics.RecordRecommendation(rt.cfg.ServiceName, string(mode), pick.Fallback, time.Since(start))
	writeJSON(w, http.StatusOK, recommendResponse{Recommendation: toRecommendationPayload(pick)})
}

func (rt *Router) search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "query parameter is required",
		})
		return
	}

	limit := searchDefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": "limit must be an integer",
			})
			return
		}
		limit = parsed
	}
	if limit < 1 {
		limit = 1
	}
	if limit > searchMaxLimit {
		limit = searchMaxLimit
	}

	records, err := rt.catalog.Search(r.Context(), query, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSearchResponse(records))
}

func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		switch fe.Field() {
		case "AnimeHistory":
			return "anime_history cannot be empty, provide at least one anime with your favorite first"
		case "Mode":
			return "mode must be either 'similar' or 'explore'"
		case "Rating":
			return "rating must be one of 'positive', 'neutral' or 'negative'"
		default:
			return fmt.Sprintf("invalid value for field %s", fe.Namespace())
		}
	}
	return err.Error()
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
