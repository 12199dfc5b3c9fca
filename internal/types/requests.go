package types

// RecommendRequest is the request body shared by the content-based and
// hybrid recommendation endpoints. The preference fields arrive pre-parsed
// from the upstream natural-language layer and are treated as plain input.
type RecommendRequest struct {
	Profile             UserProfile `json:"profile" binding:"required"`
	Meal                string      `json:"meal" binding:"required,oneof=breakfast lunch dinner snacks"`
	MaxTimeMins         int         `json:"max_time_mins"`
	PreferredCuisines   []string    `json:"preferred_cuisines"`
	DislikedIngredients []string    `json:"disliked_ingredients"`
	Allergies           []string    `json:"allergies"`
	UserID              *int        `json:"user_id"`
	TopN                int         `json:"top_n"`
}

// RateRecipeRequest is the body for submitting a recipe rating. Ratings are
// append-only; models pick them up at the next offline training run.
type RateRecipeRequest struct {
	RecipeID int `json:"recipe_id" binding:"required"`
	Rating   int `json:"rating" binding:"required,min=1,max=5"`
}
