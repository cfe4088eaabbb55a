package bootstrap

import (
	"fmt"

	"github.com/kirillkom/anime-recommender/internal/config"
	"github.com/kirillkom/anime-recommender/internal/core/ports"
	"github.com/kirillkom/anime-recommender/internal/core/usecase"
	"github.com/kirillkom/anime-recommender/internal/infrastructure/catalog/mal"
	"github.com/kirillkom/anime-recommender/internal/infrastructure/llm/openai"
	"github.com/kirillkom/anime-recommender/internal/infrastructure/resilience"
	"github.com/kirillkom/anime-recommender/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Catalog     ports.AnimeCatalog
	Recommender ports.Recommender
	Metrics     *metrics.HTTPServerMetrics
}

func New(cfg config.Config) (*App, error) {
	if cfg.MALClientID == "" {
		return nil, fmt.Errorf("MAL_CLIENT_ID is required")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	// One executor serves both upstreams; circuit breakers are scoped per
	// operation name, so the catalog and the reasoning service trip
	// independently.
	exec := resilience.NewExecutor(resilience.DefaultConfig())

	catalog := mal.New(cfg.MALBaseURL, cfg.MALClientID, exec)
	ranker := openai.NewRanker(openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, exec))

	gatherer := usecase.NewCandidateGatherer(catalog)
	recommendUC := usecase.NewRecommendUseCase(gatherer, ranker)

	return &App{
		Config:      cfg,
		Catalog:     catalog,
		Recommender: recommendUC,
		Metrics:     metrics.NewHTTPServerMetrics(cfg.ServiceName),
	}, nil
}
