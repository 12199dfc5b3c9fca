package api

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mealcraft/wellness-backend/internal/database"
	"github.com/mealcraft/wellness-backend/internal/models"
	"github.com/mealcraft/wellness-backend/internal/service"
	"github.com/mealcraft/wellness-backend/internal/types"
)

func TestRateRecipePersists(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "ratings.db"))
	require.NoError(t, err)

	tokenService := service.NewTokenService("test-secret")
	handler := NewRatingsHandler(db, tokenService, zap.NewNop())

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))

	token, err := tokenService.GenerateToken(uuid.New(), 7)
	require.NoError(t, err)
	auth := map[string]string{"Authorization": "Bearer " + token}

	w := postJSON(t, router, "/api/v1/ratings", types.RateRecipeRequest{RecipeID: 12, Rating: 4}, auth)
	require.Equal(t, http.StatusCreated, w.Code)

	var stored []models.Rating
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, 7, stored[0].RaterID)
	assert.Equal(t, 12, stored[0].RecipeID)
	assert.Equal(t, 4, stored[0].Score)
}

func TestRateRecipeRejectsOutOfRangeScore(t *testing.T) {
	router, tokenService := testRouter(t)
	token, err := tokenService.GenerateToken(uuid.New(), 7)
	require.NoError(t, err)
	auth := map[string]string{"Authorization": "Bearer " + token}

	w := postJSON(t, router, "/api/v1/ratings", types.RateRecipeRequest{RecipeID: 12, Rating: 6}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
