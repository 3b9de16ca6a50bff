package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitbite/fitbite-backend/internal/service"
)

// FoodHandler handles food logging and aggregation requests
type FoodHandler struct {
	food service.IFoodService
}

// NewFoodHandler creates a new FoodHandler instance
func NewFoodHandler(food service.IFoodService) *FoodHandler {
	return &FoodHandler{food: food}
}

type AddFoodRequest struct {
	FoodName string `json:"foodName" binding:"required"`
	Quantity string `json:"quantity"`
}

// Add handles POST /food
func (h *FoodHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req AddFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.food.AddEntry(c.Request.Context(), userID, req.FoodName, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Food entry added successfully!", "entry": entry})
}

// Today handles GET /food/today
func (h *FoodHandler) Today(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	summary, err := h.food.Today(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// History handles GET /food/history
func (h *FoodHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	history, err := h.food.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// Remaining handles GET /food/remaining
func (h *FoodHandler) Remaining(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	allowance, err := h.food.RemainingAllowance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, allowance)
}

// Suggestion handles GET /food/suggestion
func (h *FoodHandler) Suggestion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	suggestion, err := h.food.SuggestMeal(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}

// Delete handles DELETE /food/:id
func (h *FoodHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := h.food.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Food entry removed successfully."})
}
