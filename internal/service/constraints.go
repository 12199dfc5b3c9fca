package service

import "sort"

// MedicalConstraint describes the per-serving safety envelope for one
// diagnosed condition. Zero-valued ceilings are unset. Ceilings without a
// matching catalog nutrient column (sugar, cholesterol, potassium) are kept
// as data for completeness but are not enforced by the filter.
type MedicalConstraint struct {
	MaxSodiumMg          float64
	MaxCarbsG            float64
	MaxProteinG          float64
	MaxSaturatedFatG     float64
	MaxSugarG            float64
	MaxCholesterolMg     float64
	MaxPotassiumMg       float64
	RequiredDiet         string
	AvoidIngredients     []string
	PreferredIngredients []string
}

// medicalConstraints maps condition tags to their safety envelopes. The
// table is read-only shared state; it is never mutated at request time.
var medicalConstraints = map[string]MedicalConstraint{
	"diabetes": {
		MaxCarbsG:            45,
		MaxSugarG:            15,
		AvoidIngredients:     []string{"white rice", "white bread", "sugar", "honey", "jaggery"},
		PreferredIngredients: []string{"whole grain", "quinoa", "brown rice", "oats", "barley"},
	},
	"pre_diabetes": {
		MaxCarbsG:            50,
		AvoidIngredients:     []string{"white rice", "sugar", "refined flour"},
		PreferredIngredients: []string{"whole grain", "oats", "vegetables"},
	},
	"hypertension": {
		MaxSodiumMg:          600,
		AvoidIngredients:     []string{"salt", "soy sauce", "pickles", "processed meat", "papad"},
		PreferredIngredients: []string{"low sodium", "fresh herbs", "lemon", "garlic"},
	},
	"heart_disease": {
		MaxSaturatedFatG:     7,
		MaxCholesterolMg:     200,
		MaxSodiumMg:          600,
		AvoidIngredients:     []string{"butter", "ghee", "cream", "full-fat cheese", "red meat", "coconut oil"},
		PreferredIngredients: []string{"olive oil", "fish", "lean chicken", "nuts", "avocado", "oats"},
	},
	"high_cholesterol": {
		MaxCholesterolMg:     200,
		MaxSaturatedFatG:     7,
		AvoidIngredients:     []string{"egg yolk", "shrimp", "butter", "full-fat dairy", "organ meat"},
		PreferredIngredients: []string{"oats", "barley", "beans", "apples", "fish", "almonds"},
	},
	"kidney_disease": {
		MaxProteinG:          20,
		MaxSodiumMg:          500,
		MaxPotassiumMg:       200,
		AvoidIngredients:     []string{"beans", "lentils", "nuts", "cheese", "tomatoes", "bananas", "potatoes"},
		PreferredIngredients: []string{"rice", "cabbage", "cucumber", "apple", "white bread"},
	},
	"celiac_disease": {
		RequiredDiet:     "Gluten Free",
		AvoidIngredients: []string{"wheat", "barley", "rye", "oats", "bread", "pasta", "atta", "maida"},
	},
	"lactose_intolerance": {
		AvoidIngredients: []string{"milk", "cheese", "yogurt", "butter", "cream", "paneer", "ghee", "curd"},
	},
}

// ConstraintFor looks up the safety envelope for a condition tag.
func ConstraintFor(condition string) (MedicalConstraint, bool) {
	c, ok := medicalConstraints[condition]
	return c, ok
}

// KnownConditions lists every condition tag in the table, sorted.
func KnownConditions() []string {
	names := make([]string, 0, len(medicalConstraints))
	for name := range medicalConstraints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
