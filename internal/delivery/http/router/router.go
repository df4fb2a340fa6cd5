// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bookbridge/internal/delivery/http/middleware"
	"bookbridge/internal/delivery/http/router/handler"
	"bookbridge/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	CategoryHandler *handler.CategoryHandler
	BookHandler     *handler.BookHandler
	OrderHandler    *handler.OrderHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	categoryHandler *handler.CategoryHandler
	bookHandler     *handler.BookHandler
	orderHandler    *handler.OrderHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		categoryHandler: params.CategoryHandler,
		bookHandler:     params.BookHandler,
		orderHandler:    params.OrderHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
		authGroup.GET("/me", r.userHandler.Me, r.authMiddleware.Authenticate)
	}

	// Category routes: reads are public, writes are admin only
	categoryGroup := e.Group("/categories")
	{
		categoryGroup.GET("", r.categoryHandler.List)
		categoryGroup.GET("/:id", r.categoryHandler.Get)

		adminOnly := []echo.MiddlewareFunc{
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleAdmin),
		}
		categoryGroup.POST("", r.categoryHandler.Create, adminOnly...)
		categoryGroup.PUT("/:id", r.categoryHandler.Update, adminOnly...)
		categoryGroup.DELETE("/:id", r.categoryHandler.Delete, adminOnly...)
	}

	// Book routes: reads are public (my_books requires auth inside the
	// handler), writes require the seller or admin role
	bookGroup := e.Group("/books")
	{
		bookGroup.GET("", r.bookHandler.List, r.authMiddleware.AuthenticateOptional)
		bookGroup.GET("/:id", r.bookHandler.Get, r.authMiddleware.AuthenticateOptional)

		sellerOnly := []echo.MiddlewareFunc{
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleSeller, entity.RoleAdmin),
		}
		bookGroup.POST("", r.bookHandler.Create, sellerOnly...)
		bookGroup.PUT("/:id", r.bookHandler.Update, sellerOnly...)
		bookGroup.DELETE("/:id", r.bookHandler.Delete, sellerOnly...)
	}

	// Order routes all require authentication
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.Place)
		orderGroup.GET("", r.orderHandler.List)
		orderGroup.GET("/:id", r.orderHandler.Get)
		orderGroup.PATCH("/:id/status", r.orderHandler.UpdateStatus)
		orderGroup.PATCH("/:id/items/:itemID", r.orderHandler.UpdateItem)
		orderGroup.DELETE("/:id", r.orderHandler.Delete)
	}
}
