package httpadapter

import (
	"github.com/kirillkom/anime-recommender/internal/core/domain"
)

// historyItemPayload is one entry of the client-owned history file. Only
// mal_id and title are required; richer metadata improves ranking quality but
// is never mandatory.
type historyItemPayload struct {
	MALID       int      `json:"mal_id" validate:"required,gt=0"`
	Title       string   `json:"title" validate:"required"`
	Genres      []string `json:"genres"`
	Studios     []string `json:"studios"`
	Episodes    int      `json:"episodes"`
	Score       string   `json:"score"`
	Synopsis    string   `json:"synopsis"`
	MediaType   string   `json:"media_type"`
	Source      string   `json:"source"`
	WatchStatus string   `json:"watch_status"`
	ImageURL    string   `json:"image_url"`
	Rank        int      `json:"rank"`
	Popularity  int      `json:"popularity"`

	// has_seen defaults to true when omitted; a pointer distinguishes an
	// explicit false from absence.
	HasSeen *bool  `json:"has_seen"`
	Rating  string `json:"rating" validate:"omitempty,oneof=positive neutral negative"`
}

type recommendRequest struct {
	AnimeHistory []historyItemPayload `json:"anime_history" validate:"required,min=1,dive"`
	Mode         string               `json:"mode" validate:"omitempty,oneof=similar explore"`
	ExcludeIDs   []int                `json:"exclude_ids"`
}

// animePayload mirrors one catalog title on the wire. Optional fields are
// pointers so absent metadata serializes as null rather than a zero value.
type animePayload struct {
	MALID      int      `json:"mal_id"`
	Title      string   `json:"title"`
	Genres     []string `json:"genres"`
	Studios    []string `json:"studios"`
	Episodes   *int     `json:"episodes"`
	Score      *string  `json:"score"`
	Synopsis   *string  `json:"synopsis"`
	MediaType  *string  `json:"media_type"`
	Source     *string  `json:"source"`
	ImageURL   *string  `json:"image_url"`
	Rank       *int     `json:"rank"`
	Popularity *int     `json:"popularity"`
}

type recommendationPayload struct {
	animePayload
	RecommendationReason string `json:"recommendation_reason"`
}

type recommendResponse struct {
	Recommendation recommendationPayload `json:"recommendation"`
}

type searchResponse struct {
	Results []animePayload `json:"results"`
}

func toDomainHistory(items []historyItemPayload) []domain.HistoryEntry {
	history := make([]domain.HistoryEntry, 0, len(items))
	for _, item := range items {
		hasSeen := true
		if item.HasSeen != nil {
			hasSeen = *item.HasSeen
		}
		history = append(history, domain.HistoryEntry{
			AnimeRecord: domain.AnimeRecord{
				MALID:      item.MALID,
				Title:      item.Title,
				Genres:     item.Genres,
				Studios:    item.Studios,
				Episodes:   item.Episodes,
				Score:      item.Score,
				Synopsis:   item.Synopsis,
				MediaType:  item.MediaType,
				Source:     item.Source,
				ImageURL:   item.ImageURL,
				Rank:       item.Rank,
				Popularity: item.Popularity,
			},
			WatchStatus: item.WatchStatus,
			HasSeen:     hasSeen,
			Rating:      domain.Rating(item.Rating),
		})
	}
	return history
}

func toAnimePayload(record domain.AnimeRecord) animePayload {
	return animePayload{
		MALID:      record.MALID,
		Title:      record.Title,
		Genres:     emptyIfNil(record.Genres),
		Studios:    emptyIfNil(record.Studios),
		Episodes:   intPtr(record.Episodes),
		Score:      strPtr(record.Score),
		Synopsis:   strPtr(record.Synopsis),
		MediaType:  strPtr(record.MediaType),
		Source:     strPtr(record.Source),
		ImageURL:   strPtr(record.ImageURL),
		Rank:       intPtr(record.Rank),
		Popularity: intPtr(record.Popularity),
	}
}

func toRecommendationPayload(pick *domain.Recommendation) recommendationPayload {
	return recommendationPayload{
		animePayload:         toAnimePayload(pick.AnimeRecord),
		RecommendationReason: pick.Reason,
	}
}

func toSearchResponse(records []domain.AnimeRecord) searchResponse {
	results := make([]animePayload, 0, len(records))
	for _, record := range records {
		results = append(results, toAnimePayload(record))
	}
	return searchResponse{Results: results}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
