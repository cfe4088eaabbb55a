package mal

import (
	"strconv"

	"github.com/kirillkom/anime-recommender/internal/core/domain"
)

// rawAnime is the upstream record shape. Search and ranking responses wrap it
// in a node envelope (rawListEntry); detail responses return it bare.
type rawAnime struct {
	ID              int            `json:"id"`
	Title           string         `json:"title"`
	MainPicture     *rawPicture    `json:"main_picture"`
	Synopsis        string         `json:"synopsis"`
	Mean            float64        `json:"mean"`
	Rank            int            `json:"rank"`
	Popularity      int            `json:"popularity"`
	Genres          []rawNamed     `json:"genres"`
	NumEpisodes     int            `json:"num_episodes"`
	MediaType       string         `json:"media_type"`
	Studios         []rawNamed     `json:"studios"`
	Source          string         `json:"source"`
	Rating          string         `json:"rating"`
	Recommendations []rawListEntry `json:"recommendations"`
}

type rawListEntry struct {
	Node rawAnime `json:"node"`
}

type rawPicture struct {
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

type rawNamed struct {
	Name string `json:"name"`
}

// normalize is the single boundary between upstream payloads and the domain.
// Everything downstream operates on the resulting AnimeRecord, never on raw
// catalog JSON.
func normalize(raw rawAnime) domain.AnimeRecord {
	score := "N/A"
	if raw.Mean > 0 {
		score = strconv.FormatFloat(raw.Mean, 'f', -1, 64)
	}

	// Prefer the medium image, fall back to large.
	imageURL := ""
	if raw.MainPicture != nil {
		imageURL = raw.MainPicture.Medium
		if imageURL == "" {
			imageURL = raw.MainPicture.Large
		}
	}

	return domain.AnimeRecord{
		MALID:         raw.ID,
		Title:         raw.Title,
		Genres:        names(raw.Genres),
		Studios:       names(raw.Studios),
		Episodes:      raw.NumEpisodes,
		Score:         score,
		Synopsis:      raw.Synopsis,
		MediaType:     raw.MediaType,
		Source:        raw.Source,
		ContentRating: raw.Rating,
		ImageURL:      imageURL,
		Rank:          raw.Rank,
		Popularity:    raw.Popularity,
	}
}

func names(entries []rawNamed) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Name)
	}
	return out
}
