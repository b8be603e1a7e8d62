package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartserve-api/middleware"
	"smartserve-api/models"
	"smartserve-api/response"
	"smartserve-api/services"
	"smartserve-api/statemachine"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type OrderItemRequest struct {
	FoodID   string `json:"food_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type OrderCreateRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type OrderStatusUpdateRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=pending preparing ready completed"`
}

// Create places a new order for the authenticated user.
func (h *OrderHandler) Create(c *gin.Context) {
	var req OrderCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	lines := make([]services.OrderLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = services.OrderLine{FoodID: item.FoodID, Quantity: item.Quantity}
	}

	order, err := h.orders.Place(middleware.GetUserID(c), lines)
	if err != nil {
		var notFound *services.NotFoundError
		var unavailable *services.UnavailableError
		switch {
		case errors.As(err, &notFound):
			response.Error(c, http.StatusBadRequest, notFound.Message)
		case errors.As(err, &unavailable):
			response.Error(c, http.StatusBadRequest, unavailable.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to place order")
		}
		return
	}
	response.Success(c, http.StatusCreated, "Order placed successfully", order)
}

// UserOrders lists the authenticated user's own orders, newest first.
func (h *OrderHandler) UserOrders(c *gin.Context) {
	orders, err := h.orders.UserOrders(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	response.Success(c, http.StatusOK, "Success", orders)
}

// AdminOrders lists every order, optionally filtered by ?status=.
func (h *OrderHandler) AdminOrders(c *gin.Context) {
	orders, err := h.orders.AllOrders(c.Query("status"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	response.Success(c, http.StatusOK, "Success", orders)
}

// UpdateStatus advances an order through the status lifecycle (admin only).
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req OrderStatusUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orders.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		var notFound *services.NotFoundError
		var invalid *statemachine.InvalidTransitionError
		switch {
		case errors.As(err, &notFound):
			response.Error(c, http.StatusBadRequest, notFound.Message)
		case errors.As(err, &invalid):
			response.Error(c, http.StatusBadRequest, invalid.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}
	response.Success(c, http.StatusOK, "Order status updated", order)
}
