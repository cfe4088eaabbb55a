package domain

// Rating is the user's verdict on a watched title.
type Rating string

const (
	RatingPositive Rating = "positive"
	RatingNeutral  Rating = "neutral"
	RatingNegative Rating = "negative"
)

// Mode selects the ranking strategy for one recommendation request.
type Mode string

const (
	// ModeSimilar stays inside the user's comfort zone.
	ModeSimilar Mode = "similar"
	// ModeExplore pushes toward genres the user has not touched yet.
	// It is the default when the request omits a mode.
	ModeExplore Mode = "explore"
)

// AnimeRecord is the normalized catalog entry. Records are produced only by
// the catalog normalization boundary and are never mutated afterwards.
// Optional numeric fields use zero as "absent"; Score keeps the upstream
// string formatting ("N/A" when the catalog has no mean score).
type AnimeRecord struct {
	MALID         int
	Title         string
	Genres        []string
	Studios       []string
	Episodes      int
	Score         string
	Synopsis      string
	MediaType     string
	Source        string
	ContentRating string
	ImageURL      string
	Rank          int
	Popularity    int
}

// HistoryEntry is one anime from the caller-supplied watch history.
// Ordering is meaningful: the first entry is the user's anchor favorite and
// the caller appends newly rated titles at the end.
type HistoryEntry struct {
	AnimeRecord

	WatchStatus string
	HasSeen     bool
	Rating      Rating
}

// Liked reports whether the user rated this entry positively.
func (h HistoryEntry) Liked() bool {
	return h.Rating == RatingPositive
}

// Recommendation is the terminal artifact of one request: a single candidate
// pool member plus the reasoning service's justification. Fallback marks
// picks produced by the canned-reason fallback instead of the reasoning
// service.
type Recommendation struct {
	AnimeRecord

	Reason   string
	Fallback bool
}
