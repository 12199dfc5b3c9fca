package service

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mealcraft/wellness-backend/internal/types"
)

// Blend weights and constants for the hybrid ranking.
const (
	contentWeight = 0.7
	tasteWeight   = 0.3

	// Candidates over-fetched from the content pipeline before re-ranking.
	candidatePool = 50

	// Neutral collaborative score used when no user or no model is
	// available. A midpoint, not a penalty.
	neutralTasteScore = 50.0
)

// HybridRecommender layers collaborative rating predictions on top of the
// content-based recommender. A nil predictor degrades the blend to
// content-only scoring with a neutral taste score; it never fails a request.
type HybridRecommender struct {
	recommender *RecommenderService
	predictor   RatingPredictor
	logger      *zap.Logger
}

// NewHybridRecommender wires the two tiers together. predictor may be nil
// when no collaborative model could be loaded at startup.
func NewHybridRecommender(recommender *RecommenderService, predictor RatingPredictor, logger *zap.Logger) *HybridRecommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HybridRecommender{recommender: recommender, predictor: predictor, logger: logger}
}

// Recommend produces the hybrid ranking: an over-fetched content-ranked
// candidate list, a normalized collaborative score per candidate, and a
// 70/30 blend re-sorted descending. userID may be nil for anonymous or
// cold-start requests.
func (h *HybridRecommender) Recommend(userID *int, target types.MealTarget, opts RecommendOptions) types.RecommendResult {
	topN := opts.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	opts.TopN = candidatePool

	result := h.recommender.Recommend(target, opts)
	if len(result.Recommendations) == 0 {
		return result
	}

	personalized := h.predictor != nil && userID != nil
	for i := range result.Recommendations {
		rec := &result.Recommendations[i]
		if personalized {
			predicted := h.predictor.Predict(*userID, rec.Recipe.ID)
			rec.Tier3Score = (predicted - minRating) / (maxRating - minRating) * 100
		} else {
			rec.Tier3Score = neutralTasteScore
		}
		rec.HybridScore = rec.MatchScore*contentWeight + rec.Tier3Score*tasteWeight
	}

	sort.SliceStable(result.Recommendations, func(i, j int) bool {
		return result.Recommendations[i].HybridScore > result.Recommendations[j].HybridScore
	})
	if len(result.Recommendations) > topN {
		result.Recommendations = result.Recommendations[:topN]
	}

	h.logger.Debug("hybrid ranking complete",
		zap.Bool("personalized", personalized),
		zap.Int("returned", len(result.Recommendations)))
	return result
}

// Explain renders a human-readable score breakdown for one recommendation.
// Formatting only; no new computation.
func (h *HybridRecommender) Explain(rec types.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rec.Recipe.Name)
	fmt.Fprintf(&b, "  Overall score: %.1f/100\n", rec.HybridScore)
	b.WriteString("  Why recommended:\n")

	switch {
	case rec.MatchScore >= 80:
		fmt.Fprintf(&b, "  - Excellent nutrition match (%.1f/100)\n", rec.MatchScore)
	case rec.MatchScore >= 70:
		fmt.Fprintf(&b, "  - Good nutrition match (%.1f/100)\n", rec.MatchScore)
	default:
		fmt.Fprintf(&b, "  - Moderate nutrition match (%.1f/100)\n", rec.MatchScore)
	}

	if h.predictor != nil {
		switch {
		case rec.Tier3Score >= 80:
			fmt.Fprintf(&b, "  - Predicted you'll love it (%.1f/100)\n", rec.Tier3Score)
		case rec.Tier3Score >= 70:
			fmt.Fprintf(&b, "  - Predicted you'll like it (%.1f/100)\n", rec.Tier3Score)
		case rec.Tier3Score >= 60:
			fmt.Fprintf(&b, "  - Based on similar users (%.1f/100)\n", rec.Tier3Score)
		default:
			fmt.Fprintf(&b, "  - Might not match your taste (%.1f/100)\n", rec.Tier3Score)
		}
	}

	if rec.ProteinGap > 2 {
		fmt.Fprintf(&b, "  - Protein gap: %.1fg", rec.ProteinGap)
		if rec.ProteinSuggestion != "" {
			fmt.Fprintf(&b, " (%s)", rec.ProteinSuggestion)
		}
		b.WriteString("\n")
	}
	return b.String()
}
