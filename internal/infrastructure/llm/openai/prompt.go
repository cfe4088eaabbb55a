package openai

import (
	"fmt"
	"strings"

	"github.com/kirillkom/anime-recommender/internal/core/domain"
)

const (
	similarSystemPrompt = "You are an expert at finding anime similar to what users already love."
	exploreSystemPrompt = "You are a curator helping users discover great anime beyond their comfort zone."

	// Context windows: similar mode reasons from liked titles only, explore
	// mode sees recent history regardless of rating.
	similarLikedWindow   = 8
	exploreHistoryWindow = 10
	candidateWindow      = 20

	synopsisLimit = 200
)

func buildSimilarPrompt(candidates []domain.AnimeRecord, liked []domain.HistoryEntry) string {
	return fmt.Sprintf(`You are an anime recommender finding similar anime to what the user loves.

What the User Loved:
%s

Available Candidates:
%s

Your Mission:
Select ONE anime that closely matches what the user already enjoys. Find strong similarities in:
- Genre and themes
- Tone and atmosphere
- Character dynamics
- Story structure

This is "similar" mode - give them more of what they love!

Return JSON with:
- mal_id: Selected anime's MAL ID
- title: Anime title
- reason: 2 sentences explaining the similarities and why they'll love it

Return ONLY the JSON object.`,
		formatHistory(tailEntries(liked, similarLikedWindow)),
		formatCandidates(candidates),
	)
}

func buildExplorePrompt(candidates []domain.AnimeRecord, history []domain.HistoryEntry) string {
	return fmt.Sprintf(`You are an anime curator focused on expanding horizons and discovery.

User's Recent History:
%s

Available Candidates:
%s

Your Mission:
Select ONE anime that will expand the user's horizons. This is NOT Netflix - we're not optimizing for retention or comfort zones.

Principles:
1. Introduce new genres/themes they haven't explored much
2. Balance challenge with accessibility (not too jarring)
3. Recommend critically acclaimed works they might have missed
4. Encourage breaking out of patterns

Avoid:
- Safe, predictable choices that match their exact preferences
- Only recommending what they already like
- Echo chamber recommendations

Return JSON with:
- mal_id: Selected anime's MAL ID
- title: Anime title
- reason: 2-3 sentences explaining why this expands their horizons (be specific about what's new/different)

Return ONLY the JSON object.`,
		formatHistory(tailEntries(history, exploreHistoryWindow)),
		formatCandidates(candidates),
	)
}

// formatCandidates numbers candidates 1..N in pool order; position may bias
// the reasoning service, so the order is the gatherer's, untouched.
func formatCandidates(candidates []domain.AnimeRecord) string {
	if len(candidates) > candidateWindow {
		candidates = candidates[:candidateWindow]
	}

	lines := make([]string, 0, len(candidates))
	for i, record := range candidates {
		lines = append(lines, summarizeRecord(record, fmt.Sprintf("%d. ", i+1)))
	}
	return strings.Join(lines, "\n")
}

func formatHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "No history yet."
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, summarizeHistoryEntry(entry))
	}
	return strings.Join(lines, "\n")
}

func summarizeRecord(record domain.AnimeRecord, prefix string) string {
	header := prefix + record.Title
	if record.MALID != 0 {
		header += fmt.Sprintf(" (MAL ID: %d)", record.MALID)
	}

	lines := []string{header}
	if len(record.Genres) > 0 {
		lines = append(lines, "   Genres: "+strings.Join(record.Genres, ", "))
	}
	if len(record.Studios) > 0 {
		lines = append(lines, "   Studios: "+strings.Join(record.Studios, ", "))
	}

	meta := make([]string, 0, 5)
	if record.MediaType != "" {
		meta = append(meta, "Format: "+record.MediaType)
	}
	if record.Episodes > 0 {
		meta = append(meta, fmt.Sprintf("Episodes: %d", record.Episodes))
	}
	if record.Score != "" {
		meta = append(meta, "MAL Score: "+record.Score)
	}
	if record.Source != "" {
		meta = append(meta, "Source: "+record.Source)
	}
	if record.ContentRating != "" {
		meta = append(meta, "Content Rating: "+record.ContentRating)
	}
	if len(meta) > 0 {
		lines = append(lines, "   "+strings.Join(meta, " | "))
	}

	if synopsis := truncateSynopsis(record.Synopsis); synopsis != "" {
		lines = append(lines, "   Synopsis: "+synopsis+"...")
	}
	return strings.Join(lines, "\n")
}

func summarizeHistoryEntry(entry domain.HistoryEntry) string {
	summary := summarizeRecord(entry.AnimeRecord, "- ")

	user := make([]string, 0, 3)
	if entry.HasSeen {
		user = append(user, "Seen")
	} else {
		user = append(user, "Not seen")
	}
	if entry.WatchStatus != "" {
		user = append(user, "Watch Status: "+entry.WatchStatus)
	}
	if entry.Rating != "" {
		user = append(user, "User Rating: "+string(entry.Rating))
	}

	// The user annotation goes between metadata and synopsis, so rebuild
	// around the synopsis line if one exists.
	userLine := "   " + strings.Join(user, " | ")
	if idx := strings.Index(summary, "\n   Synopsis: "); idx >= 0 {
		return summary[:idx] + "\n" + userLine + summary[idx:]
	}
	return summary + "\n" + userLine
}

func truncateSynopsis(synopsis string) string {
	synopsis = strings.TrimSpace(strings.ReplaceAll(synopsis, "\n", " "))
	if synopsis == "" {
		return ""
	}
	runes := []rune(synopsis)
	if len(runes) > synopsisLimit {
		return string(runes[:synopsisLimit])
	}
	return synopsis
}

func tailEntries(entries []domain.HistoryEntry, n int) []domain.HistoryEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
