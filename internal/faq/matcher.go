// Package faq answers messages from curated question/answer records using
// precision-biased bag-of-words heuristics.
package faq

import (
	"regexp"
	"strings"

	"github.com/Conversly/autoskola-bot/internal/types"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

const (
	minQueryWords      = 4
	minQueryChars      = 12
	minAlmostExactLen  = 10
	strongOverlap      = 3
	strongJaccard      = 0.4
	weakOverlap        = 2
	weakJaccard        = 0.25
	weakMaxQueryTokens = 6
)

var phraseSep = regexp.MustCompile(`[\n\r|,]+`)

// Candidate is one FAQ phrasing scored against a query.
type Candidate struct {
	Phrase      string
	Answer      string
	AlmostExact bool
	Score       utils.OverlapScore
}

// Good reports whether the candidate clears the match thresholds.
func (c Candidate) Good() bool {
	if c.AlmostExact {
		return true
	}
	if c.Score.Overlap >= strongOverlap && c.Score.Jaccard >= strongJaccard {
		return true
	}
	return c.Score.Overlap >= weakOverlap &&
		c.Score.Jaccard >= weakJaccard &&
		c.Score.QuerySize <= weakMaxQueryTokens
}

func (c Candidate) beats(other Candidate) bool {
	if c.Score.Overlap != other.Score.Overlap {
		return c.Score.Overlap > other.Score.Overlap
	}
	return c.Score.Jaccard > other.Score.Jaccard
}

// Match returns the answer of the best qualifying FAQ record, or "".
// Queries with 3 words or fewer, or under 12 characters, never match.
func Match(message string, records []types.Record) string {
	best, ok := BestMatch(message, records)
	if !ok {
		return ""
	}
	return best.Answer
}

// BestMatch is Match with the winning candidate exposed.
func BestMatch(message string, records []types.Record) (Candidate, bool) {
	query := utils.Normalize(message)
	if len(strings.Fields(query)) < minQueryWords || len(query) < minQueryChars {
		return Candidate{}, false
	}

	var (
		best  Candidate
		found bool
	)
	for _, r := range records {
		if !r.IsActive() {
			continue
		}
		answer := r.Get(types.FieldAnswer)
		if answer == "" {
			continue
		}
		for _, phrase := range Phrases(r) {
			c := score(query, phrase)
			c.Answer = answer
			if !c.Good() {
				continue
			}
			if !found || c.beats(best) {
				best = c
				found = true
			}
		}
	}
	return best, found
}

// Phrases splits the question, example and keyword fields of a FAQ record
// into individual candidate phrasings.
func Phrases(r types.Record) []string {
	var out []string
	for _, f := range []types.Field{types.FieldQuestion, types.FieldExamples, types.FieldKeywords} {
		for _, p := range phraseSep.Split(r.Get(f), -1) {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func score(normalizedQuery, phrase string) Candidate {
	candidate := utils.Normalize(phrase)
	c := Candidate{Phrase: phrase, Score: utils.Score(normalizedQuery, candidate)}
	if candidate == "" {
		return c
	}

	shorter := len(candidate)
	if len(normalizedQuery) < shorter {
		shorter = len(normalizedQuery)
	}
	contains := strings.Contains(normalizedQuery, candidate) || strings.Contains(candidate, normalizedQuery)
	c.AlmostExact = contains && shorter >= minAlmostExactLen
	return c
}
