// Package routes defines HTTP routes for the stores service.
package routes

import (
	"github.com/flyosprey/Store-REST-API/internal/handlers"
	"github.com/flyosprey/Store-REST-API/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth   *handlers.AuthHandler
	User   *handlers.UserHandler
	Store  *handlers.StoreHandler
	Item   *handlers.ItemHandler
	Tag    *handlers.TagHandler
	Health *handlers.HealthHandler
}

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, h Handlers, auth *middleware.Authenticator, gatherer prometheus.Gatherer) {
	// Health check
	router.GET("/health", h.Health.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	access := auth.Require(middleware.ModeAccess)
	fresh := auth.Require(middleware.ModeFresh)
	refresh := auth.Require(middleware.ModeRefresh)

	// Auth routes
	router.POST("/register", h.Auth.Register)
	router.POST("/login", h.Auth.Login)
	router.POST("/refresh", refresh, h.Auth.Refresh)
	router.POST("/logout", access, h.Auth.Logout)

	users := router.Group("/user", access)
	{
		users.GET("/:id", h.User.Get)
		users.DELETE("/:id", h.User.Delete)
	}

	stores := router.Group("/store", access)
	{
		stores.GET("", h.Store.List)
		stores.POST("", h.Store.Create)
		stores.GET("/:id", h.Store.Get)
		stores.DELETE("/:id", h.Store.Delete)
		stores.GET("/:id/tag", h.Tag.ListByStore)
		stores.POST("/:id/tag", h.Tag.Create)
	}

	items := router.Group("/item", access)
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.GET("/:id", h.Item.Get)
		items.DELETE("/:id", h.Item.Delete)
		items.POST("/:id/tag/:tag_id", h.Tag.Link)
		items.DELETE("/:id/tag/:tag_id", h.Tag.Unlink)
	}
	// Updating an item needs a fresh token.
	router.PUT("/item/:id", fresh, h.Item.Update)

	tags := router.Group("/tag", access)
	{
		tags.GET("/:id", h.Tag.Get)
		tags.DELETE("/:id", h.Tag.Delete)
	}
}
