// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"roster/internal/delivery/http/middleware"
	"roster/internal/delivery/http/router/handler"
	"roster/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	MemberHandler  *handler.MemberHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	memberHandler  *handler.MemberHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		memberHandler:  params.MemberHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.memberHandler.Register)
		authGroup.POST("/login", r.memberHandler.Login)
	}

	// Member self-service routes that require authentication
	memberGroup := e.Group("/member")
	memberGroup.Use(r.authMiddleware.Authenticate)
	{
		memberGroup.GET("/profile", r.memberHandler.GetProfile)
		memberGroup.PUT("/profile", r.memberHandler.UpdateProfile)
		memberGroup.POST("/verify-password", r.memberHandler.VerifyPassword)
		memberGroup.DELETE("", r.memberHandler.DeleteAccount)
	}

	// Administrative routes that require authentication and the admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/members", r.memberHandler.SearchMembers)
		adminGroup.PUT("/members/:id", r.memberHandler.AdminUpdateMember)
		adminGroup.DELETE("/members/:id", r.memberHandler.AdminDeleteMember)
	}
}
