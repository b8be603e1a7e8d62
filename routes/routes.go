package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartserve-api/config"
	"smartserve-api/handlers"
	"smartserve-api/middleware"
	"smartserve-api/models"
)

func Setup(r *gin.Engine, cfg config.Config, auth *handlers.AuthHandler, foods *handlers.FoodHandler, orders *handlers.OrderHandler) {
	authRequired := middleware.AuthRequired(cfg.JWTSecret)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── Auth ───────────────────────────────────────────────────────
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/admin-login", auth.AdminLogin)
	api.POST("/auth/verify-otp", auth.VerifyOTP)

	// ── Food catalogue ─────────────────────────────────────────────
	api.GET("/foods", foods.List)

	adminFoods := api.Group("/foods")
	adminFoods.Use(authRequired, adminOnly)
	{
		adminFoods.POST("", foods.Create)
		adminFoods.PUT("/:id", foods.Update)
		adminFoods.DELETE("/:id", foods.Delete)
	}

	// ── Orders ─────────────────────────────────────────────────────
	userOrders := api.Group("/orders")
	userOrders.Use(authRequired)
	{
		userOrders.POST("", orders.Create)
		userOrders.GET("/user", orders.UserOrders)
	}

	adminOrders := api.Group("/orders")
	adminOrders.Use(authRequired, adminOnly)
	{
		adminOrders.GET("/admin", orders.AdminOrders)
		adminOrders.PATCH("/:id", orders.UpdateStatus)
	}
}
