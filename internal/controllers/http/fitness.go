package http

import (
	"net/http"

	"fitshop/internal/fitness"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Weight, height, age, gender and activity are required"})
		return
	}

	heightCm, err := fitness.HeightToCm(req.HeightUnit, float64(req.Height), float64(req.Feet), float64(req.Inches))
	if err != nil {
		respondError(c, err, "Error calculating")
		return
	}

	in := fitness.Input{
		WeightKg:       float64(req.Weight),
		HeightCm:       heightCm,
		Age:            float64(req.Age),
		Gender:         req.Gender,
		Activity:       req.Activity,
		Goal:           req.Goal,
		DietPreference: req.DietPreference,
	}

	var userID uint64
	if id, ok := identity(c); ok {
		userID = id.UserID
	}

	result, err := h.fitness.Calculate(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err, "Error calculating")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h *Handler) FitnessHistory(c *gin.Context) {
	id, _ := identity(c)
	calcs, err := h.fitness.History(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err, "Error fetching history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"calculations": calcs})
}
