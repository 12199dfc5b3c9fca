package service

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mealcraft/wellness-backend/internal/types"
)

// Weights of the four nutrient axes in the match score. Protein is weighted
// highest: it is the axis that matters most for satiety and for the medical
// profiles this service targets.
const (
	caloriesWeight = 0.30
	proteinWeight  = 0.40
	carbsWeight    = 0.20
	fatWeight      = 0.10

	// Per-axis relative deviation cap.
	maxAxisDeviation = 2.0

	// Preferred-ingredient bonus per match and its total cap.
	preferredBonusStep = 0.05
	preferredBonusCap  = 0.20

	defaultMaxTimeMins = 60
	defaultTopN        = 10
)

// RecommendOptions narrows and personalizes one recommendation run.
type RecommendOptions struct {
	Course              string
	Diet                string
	MaxTimeMins         int
	MedicalConditions   []string
	PreferredCuisines   []string
	DislikedIngredients []string
	Allergies           []string
	TopN                int
}

// RecommenderService ranks catalog recipes against a meal target under hard
// medical constraints and soft user preferences.
type RecommenderService struct {
	catalog *RecipeCatalog
	logger  *zap.Logger
}

// NewRecommenderService creates a recommender over an immutable catalog.
func NewRecommenderService(catalog *RecipeCatalog, logger *zap.Logger) *RecommenderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommenderService{catalog: catalog, logger: logger}
}

// Recommend runs the full content-based pipeline: course/diet/time
// narrowing, preference filtering with controlled relaxation, the hard
// medical gate, then scoring and ranking.
//
// Preferences relax in a fixed order when they empty the candidate set:
// preferred cuisines are dropped first, then disliked ingredients. Allergen
// exclusions are never dropped. The medical gate is never relaxed; a set it
// empties is reported as such, not silently widened.
func (s *RecommenderService) Recommend(target types.MealTarget, opts RecommendOptions) types.RecommendResult {
	var result types.RecommendResult

	base := s.baseFilter(opts)

	candidates := filterByPreferences(base, opts.PreferredCuisines, opts.DislikedIngredients, opts.Allergies)
	if len(candidates) == 0 && len(opts.PreferredCuisines) > 0 {
		s.logger.Debug("no candidates after preference filtering, relaxing cuisines")
		result.RelaxedCuisines = true
		candidates = filterByPreferences(base, nil, opts.DislikedIngredients, opts.Allergies)
	}
	if len(candidates) == 0 && len(opts.DislikedIngredients) > 0 {
		s.logger.Debug("still no candidates, relaxing disliked ingredients")
		result.RelaxedDislikes = true
		candidates = filterByPreferences(base, nil, nil, opts.Allergies)
	}
	if len(candidates) == 0 {
		result.EmptyReason = types.EmptyReasonPreferences
		return result
	}

	if len(opts.MedicalConditions) > 0 {
		candidates = FilterByMedicalConstraints(candidates, opts.MedicalConditions)
		if len(candidates) == 0 {
			result.EmptyReason = types.EmptyReasonMedical
			return result
		}
	}

	recs := make([]types.Recommendation, 0, len(candidates))
	for _, r := range candidates {
		score := MatchScore(r, target)
		if len(opts.MedicalConditions) > 0 {
			bonus := PreferenceBonus(r, opts.MedicalConditions)
			score = score * (1 + bonus)
			if score > 100 {
				score = 100
			}
		}
		gap, status, suggestion := AnalyzeProteinGap(r, target.ProteinG)
		recs = append(recs, types.Recommendation{
			Recipe:            r,
			MatchScore:        score,
			ProteinGap:        gap,
			ProteinStatus:     status,
			ProteinSuggestion: suggestion,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MatchScore > recs[j].MatchScore
	})

	topN := opts.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if len(recs) > topN {
		recs = recs[:topN]
	}
	result.Recommendations = recs
	return result
}

// baseFilter narrows the catalog by course, diet and preparation time.
// Snack requests match the wider set of snackable courses.
func (s *RecommenderService) baseFilter(opts RecommendOptions) []types.Recipe {
	course := opts.Course
	if course == "" {
		course = "Breakfast"
	}
	maxTime := opts.MaxTimeMins
	if maxTime <= 0 {
		maxTime = defaultMaxTimeMins
	}
	diet := opts.Diet
	if diet == "" {
		diet = "Vegetarian"
	}
	labels, mapped := dietLabels(diet)

	snack := strings.Contains(strings.ToLower(course), "snack")
	snackCourses := []string{"snack", "appetizer", "starter", "side", "dessert"}

	var out []types.Recipe
	for _, r := range s.catalog.Recipes() {
		courseLower := strings.ToLower(r.Course)
		if snack {
			if !containsAny(courseLower, snackCourses) {
				continue
			}
		} else if !strings.Contains(courseLower, strings.ToLower(course)) {
			continue
		}

		if mapped {
			if !matchesLabel(r.Diet, labels) {
				continue
			}
		} else if !strings.Contains(strings.ToLower(r.Diet), strings.ToLower(diet)) {
			continue
		}

		if r.TotalTimeMin > maxTime {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterByMedicalConstraints applies every configured ceiling, required diet
// and ingredient exclusion for the given conditions. The saturated-fat
// ceiling is enforced against total fat at twice the limit, since the
// catalog does not break out saturated fat. Conditions missing from the
// table are ignored.
func FilterByMedicalConstraints(recipes []types.Recipe, conditions []string) []types.Recipe {
	out := recipes
	for _, condition := range conditions {
		c, ok := ConstraintFor(condition)
		if !ok {
			continue
		}
		kept := out[:0:0]
		for _, r := range out {
			if c.MaxSodiumMg > 0 && r.Sodium > c.MaxSodiumMg {
				continue
			}
			if c.MaxCarbsG > 0 && r.Carbs > c.MaxCarbsG {
				continue
			}
			if c.MaxProteinG > 0 && r.Protein > c.MaxProteinG {
				continue
			}
			if c.MaxSaturatedFatG > 0 && r.Fat > c.MaxSaturatedFatG*2 {
				continue
			}
			if c.RequiredDiet != "" && r.Diet != c.RequiredDiet {
				continue
			}
			if containsAnyIngredient(r.Ingredients, c.AvoidIngredients) {
				continue
			}
			kept = append(kept, r)
		}
		out = kept
	}
	return out
}

// filterByPreferences applies the soft user preferences: a cuisine
// allow-list, and substring exclusion of dislikes and allergens against both
// recipe name and ingredient text.
func filterByPreferences(recipes []types.Recipe, cuisines, dislikes, allergies []string) []types.Recipe {
	var out []types.Recipe
	for _, r := range recipes {
		if len(cuisines) > 0 && !cuisineAllowed(r.Cuisine, cuisines) {
			continue
		}
		if matchesNameOrIngredients(r, dislikes) {
			continue
		}
		if matchesNameOrIngredients(r, allergies) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MatchScore computes the 0-100 content-based fit of a recipe against a meal
// target. Each axis contributes its relative deviation, capped at 200%.
func MatchScore(r types.Recipe, target types.MealTarget) float64 {
	calDiff := axisDeviation(r.Energy, target.Calories)
	proteinDiff := axisDeviation(r.Protein, target.ProteinG)
	carbsDiff := axisDeviation(r.Carbs, target.CarbsG)
	fatDiff := axisDeviation(r.Fat, target.FatG)

	weighted := calDiff*caloriesWeight +
		proteinDiff*proteinWeight +
		carbsDiff*carbsWeight +
		fatDiff*fatWeight

	score := 100 - weighted*50
	if score < 0 {
		score = 0
	}
	return score
}

func axisDeviation(value, target float64) float64 {
	denom := target
	if denom < 1 {
		denom = 1
	}
	diff := value - target
	if diff < 0 {
		diff = -diff
	}
	diff /= denom
	if diff > maxAxisDeviation {
		diff = maxAxisDeviation
	}
	return diff
}

// PreferenceBonus rewards recipes containing ingredients preferred for the
// user's conditions: 5% per match, capped at 20% total.
func PreferenceBonus(r types.Recipe, conditions []string) float64 {
	bonus := 0.0
	ingredients := strings.ToLower(r.Ingredients)
	for _, condition := range conditions {
		c, ok := ConstraintFor(condition)
		if !ok {
			continue
		}
		for _, preferred := range c.PreferredIngredients {
			if strings.Contains(ingredients, preferred) {
				bonus += preferredBonusStep
			}
		}
	}
	if bonus > preferredBonusCap {
		bonus = preferredBonusCap
	}
	return bonus
}

// AnalyzeProteinGap classifies how far a recipe falls short of the protein
// target and suggests a fixed supplement for the band.
func AnalyzeProteinGap(r types.Recipe, targetProtein float64) (gap float64, status, suggestion string) {
	gap = targetProtein - r.Protein
	switch {
	case gap <= 2:
		return gap, "excellent", ""
	case gap <= 5:
		return gap, "good", "Add 1 boiled egg (+6g protein)"
	case gap <= 10:
		return gap, "moderate", "Add 50g paneer (+9g protein) or 1 cup Greek yogurt (+15g)"
	default:
		return gap, "significant", "Add 2 eggs + 50g paneer (+15g protein) or protein shake (+20g)"
	}
}

func cuisineAllowed(cuisine string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(cuisine, a) {
			return true
		}
	}
	return false
}

func matchesNameOrIngredients(r types.Recipe, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	name := strings.ToLower(r.Name)
	ingredients := strings.ToLower(r.Ingredients)
	for _, t := range terms {
		term := strings.ToLower(t)
		if term == "" {
			continue
		}
		if strings.Contains(name, term) || strings.Contains(ingredients, term) {
			return true
		}
	}
	return false
}

func containsAnyIngredient(ingredients string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	lower := strings.ToLower(ingredients)
	for _, t := range terms {
		if strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func matchesLabel(diet string, labels []string) bool {
	for _, l := range labels {
		if diet == l {
			return true
		}
	}
	return false
}
