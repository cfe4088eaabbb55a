// Package mal implements the AnimeCatalog port against the MyAnimeList API v2.
// https://myanimelist.net/apiconfig/references/api/v2
package mal

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/anime-recommender/internal/core/domain"
	"github.com/kirillkom/anime-recommender/internal/infrastructure/resilience"
)

const defaultBaseURL = "https://api.myanimelist.net/v2"

// Field lists mirror what the upstream needs for normalization; the detail
// lookup additionally asks for the related-title ("recommendations") edges.
const (
	searchFields  = "id,title,main_picture,synopsis,mean,rank,popularity,genres,num_episodes,media_type,studios,source"
	detailFields  = "id,title,synopsis,mean,rank,popularity,genres,num_episodes,media_type,studios,source,rating,recommendations"
	rankingFields = "id,title,mean,rank,popularity,genres,num_episodes,synopsis,studios,media_type,source,rating"
)

type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL, clientID string, exec *resilience.Executor) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		exec:       exec,
	}
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.AnimeRecord, error) {
	params := url.Values{
		"q":      {query},
		"limit":  {strconv.Itoa(limit)},
		"fields": {searchFields},
	}

	var response struct {
		Data []rawListEntry `json:"data"`
	}
	if err := c.getJSON(ctx, "/anime", params, &response, "search"); err != nil {
		return nil, err
	}

	records := make([]domain.AnimeRecord, 0, len(response.Data))
	for _, entry := range response.Data {
		records = append(records, normalize(entry.Node))
	}
	return records, nil
}

func (c *Client) Details(ctx context.Context, id int) (*domain.AnimeRecord, error) {
	raw, err := c.details(ctx, id)
	if err != nil {
		return nil, err
	}
	record := normalize(*raw)
	return &record, nil
}

// Related returns the catalog's related-title entries for an anime. The
// upstream exposes them only as a field of the detail object, so this is one
// detail round trip; the returned records carry just the fields present on
// the edge nodes.
func (c *Client) Related(ctx context.Context, id int, limit int) ([]domain.AnimeRecord, error) {
	raw, err := c.details(ctx, id)
	if err != nil {
		return nil, err
	}

	related := raw.Recommendations
	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}

	records := make([]domain.AnimeRecord, 0, len(related))
	for _, entry := range related {
		records = append(records, normalize(entry.Node))
	}
	return records, nil
}

func (c *Client) TopRanked(ctx context.Context, limit int) ([]domain.AnimeRecord, error) {
	params := url.Values{
		"ranking_type": {"all"},
		"limit":        {strconv.Itoa(limit)},
		"fields":       {rankingFields},
	}

	var response struct {
		Data []rawListEntry `json:"data"`
	}
	if err := c.getJSON(ctx, "/anime/ranking", params, &response, "top_ranked"); err != nil {
		return nil, err
	}

	records := make([]domain.AnimeRecord, 0, len(response.Data))
	for _, entry := range response.Data {
		records = append(records, normalize(entry.Node))
	}
	return records, nil
}

func (c *Client) details(ctx context.Context, id int) (*rawAnime, error) {
	params := url.Values{"fields": {detailFields}}

	var raw rawAnime
	if err := c.getJSON(ctx, "/anime/"+strconv.Itoa(id), params, &raw, "details"); err != nil {
		return nil, err
	}
	return &raw, nil
}
