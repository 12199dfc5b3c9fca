package types

import "time"

// Recipe is one immutable row of the recipe catalog. Nutrient values are per
// serving; Sodium is in milligrams, the other nutrients in grams, Energy in
// kilocalories.
type Recipe struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Cuisine      string  `json:"cuisine"`
	Diet         string  `json:"diet"`
	Course       string  `json:"course"`
	TotalTimeMin int     `json:"total_time_mins"`
	Ingredients  string  `json:"ingredients"`
	Energy       float64 `json:"energy_per_serving"`
	Protein      float64 `json:"protein_per_serving"`
	Carbs        float64 `json:"carbohydrate_per_serving"`
	Fat          float64 `json:"fat_per_serving"`
	Sodium       float64 `json:"sodium_per_serving"`
}

// RatingRecord is one observed user rating of a recipe, used only for
// offline collaborative-filter training.
type RatingRecord struct {
	UserID   int       `json:"user_id"`
	RecipeID int       `json:"recipe_id"`
	Rating   float64   `json:"rating"`
	RatedAt  time.Time `json:"rated_at"`
}

// Recommendation is one scored catalog recipe. Tier3Score and HybridScore
// are populated only when the collaborative layer ran.
type Recommendation struct {
	Recipe            Recipe  `json:"recipe"`
	MatchScore        float64 `json:"match_score"`
	ProteinGap        float64 `json:"protein_gap"`
	ProteinStatus     string  `json:"protein_status"`
	ProteinSuggestion string  `json:"protein_suggestion,omitempty"`
	Tier3Score        float64 `json:"tier3_score,omitempty"`
	HybridScore       float64 `json:"hybrid_score,omitempty"`
}

// Reasons an otherwise valid request produced zero recommendations.
const (
	EmptyReasonMedical     = "medical_constraints"
	EmptyReasonPreferences = "preferences"
)

// RecommendResult is the terminal state of one pipeline run. An empty list
// is a defined outcome, not an error: EmptyReason distinguishes a set
// emptied by the hard medical gate from one emptied by soft preferences
// even after relaxation. The Relaxed flags report which preference
// constraints were dropped to produce the result; allergen exclusions are
// never dropped.
type RecommendResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	EmptyReason     string           `json:"empty_reason,omitempty"`
	RelaxedCuisines bool             `json:"relaxed_cuisines,omitempty"`
	RelaxedDislikes bool             `json:"relaxed_dislikes,omitempty"`
}
