package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartserve-api/models"
	"smartserve-api/response"
	"smartserve-api/services"
)

type FoodHandler struct {
	foods *services.FoodService
}

func NewFoodHandler(foods *services.FoodService) *FoodHandler {
	return &FoodHandler{foods: foods}
}

type FoodCreateRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Category    string   `json:"category" binding:"required,min=1,max=100"`
	IsAvailable *bool    `json:"is_available"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,url"`
}

type FoodUpdateRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Category    *string  `json:"category" binding:"omitempty,min=1,max=100"`
	IsAvailable *bool    `json:"is_available"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,url"`
}

// List returns food items. Non-admin callers see available items only;
// ?all=true disables the availability filter, ?category narrows by category.
func (h *FoodHandler) List(c *gin.Context) {
	category := c.Query("category")
	availableOnly := c.Query("all") != "true"

	foods, err := h.foods.List(category, availableOnly)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list food items")
		return
	}
	response.Success(c, http.StatusOK, "Success", foods)
}

// Create adds a new food item (admin only).
func (h *FoodHandler) Create(c *gin.Context) {
	var req FoodCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	food := models.FoodItem{
		Name:        req.Name,
		Price:       *req.Price,
		Category:    req.Category,
		IsAvailable: true,
		ImageURL:    normalizeImageURL(req.ImageURL),
	}
	if req.IsAvailable != nil {
		food.IsAvailable = *req.IsAvailable
	}

	if err := h.foods.Create(&food); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create food item")
		return
	}
	response.Success(c, http.StatusCreated, "Food item created", food)
}

// Update applies a partial update to a food item (admin only).
func (h *FoodHandler) Update(c *gin.Context) {
	var req FoodUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.IsAvailable != nil {
		fields["is_available"] = *req.IsAvailable
	}
	if req.ImageURL != nil {
		fields["image_url"] = normalizeImageURL(req.ImageURL)
	}
	if len(fields) == 0 {
		response.Error(c, http.StatusBadRequest, "No fields to update")
		return
	}

	food, err := h.foods.Update(c.Param("id"), fields)
	if err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			response.Error(c, http.StatusNotFound, notFound.Message)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update food item")
		return
	}
	response.Success(c, http.StatusOK, "Food item updated", food)
}

// Delete removes a food item (admin only).
func (h *FoodHandler) Delete(c *gin.Context) {
	if err := h.foods.Delete(c.Param("id")); err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			response.Error(c, http.StatusNotFound, notFound.Message)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete food item")
		return
	}
	response.Success(c, http.StatusOK, "Food item deleted", nil)
}

// normalizeImageURL treats an empty string as no image.
func normalizeImageURL(url *string) *string {
	if url == nil || *url == "" {
		return nil
	}
	return url
}
