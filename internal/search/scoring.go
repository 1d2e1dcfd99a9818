package search

import (
	"slices"
	"strings"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
)

const (
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Earlier substring matches get up to this much extra.
	ScorePositionBonus = 10.0

	// Added on top of an exact title match.
	ScoreExactTitleBonus = 200.0
)

// Candidate is a link with its match score.
type Candidate struct {
	Link  schema.LinkItem
	Score float64
}

// ScoreLink scores a link's title against a query string.
func ScoreLink(queryStr string, item schema.LinkItem) float64 {
	queryStr = strings.ToLower(strings.TrimSpace(queryStr))
	title := strings.ToLower(strings.TrimSpace(item.Title))
	if queryStr == "" || title == "" {
		return 0.0
	}

	if queryStr == title {
		return ScoreExactMatch + ScoreExactTitleBonus
	}

	if strings.HasPrefix(title, queryStr) {
		return ScorePrefixMatch
	}

	if index := strings.Index(title, queryStr); index >= 0 {
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(title)))
		return ScoreSubstringMatch + substringBonus
	}

	// All query words appear somewhere in the title
	queryWords := strings.Fields(queryStr)
	if len(queryWords) > 1 {
		allMatch := true
		for _, word := range queryWords {
			if !strings.Contains(title, word) {
				allMatch = false
				break
			}
		}
		if allMatch {
			return ScoreFuzzyMatch
		}
	}

	similarity := calculateSimilarity(queryStr, title)
	if similarity > 0.5 {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// calculateSimilarity is the share of s1's characters that occur in s2.
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	matches, total := 0, 0
	for _, c := range s1 {
		total++
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}

	return float64(matches) / float64(total)
}

// RankLinks returns the links matching queryStr, best first. Equal scores
// keep the input order.
func RankLinks(queryStr string, items []schema.LinkItem) []Candidate {
	candidates := make([]Candidate, 0, len(items))
	for _, it := range items {
		score := ScoreLink(queryStr, it)
		if score == 0.0 {
			continue
		}
		candidates = append(candidates, Candidate{Link: it, Score: score})
	}

	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return candidates
}
