package utils

// OverlapScore is the bag-of-words similarity between a query and a candidate.
type OverlapScore struct {
	Overlap       int
	QuerySize     int
	CandidateSize int
	Jaccard       float64
}

// Score compares the meaningful tokens of query and candidate. The result is
// symmetric in its arguments except for which side is reported as QuerySize.
func Score(query, candidate string) OverlapScore {
	q := MeaningfulTokens(query)
	c := MeaningfulTokens(candidate)

	overlap := 0
	for tok := range q {
		if _, ok := c[tok]; ok {
			overlap++
		}
	}

	union := len(q) + len(c) - overlap
	if union < 1 {
		union = 1
	}

	return OverlapScore{
		Overlap:       overlap,
		QuerySize:     len(q),
		CandidateSize: len(c),
		Jaccard:       float64(overlap) / float64(union),
	}
}
