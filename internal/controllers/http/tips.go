package http

import (
	"errors"
	"net/http"

	"fitshop/internal/services"
	"fitshop/internal/tips"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AITips(c *gin.Context) {
	var req TipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Missing required fields",
			"tips":     []string{},
			"dietPlan": []tips.Meal{},
		})
		return
	}

	profile := tips.Profile{
		Weight:         float64(req.Weight),
		Height:         float64(req.Height),
		Age:            float64(req.Age),
		Gender:         req.Gender,
		Activity:       req.Activity,
		BMI:            float64(req.BMI),
		DietPreference: req.DietPreference,
		Goal:           req.Goal,
	}

	advice, _, err := h.tips.Advise(c.Request.Context(), profile)
	switch {
	case errors.Is(err, services.ErrTipsNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Service configuration error",
			"tips":     advice.Tips,
			"dietPlan": advice.DietPlan,
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, advice)
	default:
		c.JSON(http.StatusOK, advice)
	}
}
