package faq

import "github.com/Conversly/autoskola-bot/internal/utils"

func scoreOf(overlap, querySize int, jaccard float64) utils.OverlapScore {
	return utils.OverlapScore{Overlap: overlap, QuerySize: querySize, Jaccard: jaccard}
}
