package mal

import "testing"

func TestNormalizeFullRecord(t *testing.T) {
	raw := rawAnime{
		ID:          1,
		Title:       "Cowboy Bebop",
		MainPicture: &rawPicture{Medium: "https://img/medium.jpg", Large: "https://img/large.jpg"},
		Synopsis:    "Bounty hunters in space.",
		Mean:        8.75,
		Rank:        42,
		Popularity:  39,
		Genres:      []rawNamed{{Name: "Action"}, {Name: "Sci-Fi"}},
		NumEpisodes: 26,
		MediaType:   "tv",
		Studios:     []rawNamed{{Name: "Sunrise"}},
		Source:      "original",
		Rating:      "r",
	}

	record := normalize(raw)
	if record.MALID != 1 || record.Title != "Cowboy Bebop" {
		t.Fatalf("unexpected identity: %+v", record)
	}
	if record.Score != "8.75" {
		t.Fatalf("expected score 8.75, got %q", record.Score)
	}
	if record.ImageURL != "https://img/medium.jpg" {
		t.Fatalf("expected medium image preferred, got %q", record.ImageURL)
	}
	if len(record.Genres) != 2 || record.Genres[0] != "Action" {
		t.Fatalf("unexpected genres: %v", record.Genres)
	}
	if record.Episodes != 26 || record.Rank != 42 || record.Popularity != 39 {
		t.Fatalf("unexpected numerics: %+v", record)
	}
	if record.ContentRating != "r" {
		t.Fatalf("unexpected content rating: %q", record.ContentRating)
	}
}

func TestNormalizeMissingScoreBecomesNA(t *testing.T) {
	record := normalize(rawAnime{ID: 2, Title: "Obscure OVA"})
	if record.Score != "N/A" {
		t.Fatalf("expected N/A score, got %q", record.Score)
	}
	if record.ImageURL != "" {
		t.Fatalf("expected empty image url, got %q", record.ImageURL)
	}
}

func TestNormalizeFallsBackToLargeImage(t *testing.T) {
	record := normalize(rawAnime{
		ID:          3,
		Title:       "X",
		MainPicture: &rawPicture{Large: "https://img/large.jpg"},
	})
	if record.ImageURL != "https://img/large.jpg" {
		t.Fatalf("expected large image fallback, got %q", record.ImageURL)
	}
}
