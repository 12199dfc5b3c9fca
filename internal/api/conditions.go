package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealcraft/wellness-backend/internal/service"
)

// ConditionsHandler exposes the supported medical conditions and their
// constraint tables. The table is compiled in; there is nothing to inject.
type ConditionsHandler struct{}

func NewConditionsHandler() *ConditionsHandler {
	return &ConditionsHandler{}
}

func (h *ConditionsHandler) RegisterRoutes(router *gin.RouterGroup) {
	conditions := router.Group("/conditions")
	{
		conditions.GET("", h.ListConditions)
		conditions.GET("/:condition", h.GetCondition)
	}
}

func (h *ConditionsHandler) ListConditions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"conditions": service.KnownConditions()})
}

func (h *ConditionsHandler) GetCondition(c *gin.Context) {
	name := c.Param("condition")
	constraint, ok := service.ConstraintFor(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown condition"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"condition":  name,
		"constraint": constraint,
	})
}
