package models

import (
	"time"

	"github.com/mealcraft/wellness-backend/internal/types"
)

// Rating is one submitted recipe rating. The table is append-only: the
// collaborative models read it at training time and never at inference.
type Rating struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	RaterID   int       `gorm:"not null;index" json:"rater_id"`
	RecipeID  int       `gorm:"not null;index" json:"recipe_id"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

// ToRecord converts a stored rating to the training record type.
func (r Rating) ToRecord() types.RatingRecord {
	return types.RatingRecord{
		UserID:   r.RaterID,
		RecipeID: r.RecipeID,
		Rating:   float64(r.Score),
		RatedAt:  r.CreatedAt,
	}
}
