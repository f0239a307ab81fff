package router

import (
	"github.com/labstack/echo/v4"

	"github.com/theananta/certificate-studio/internal/handler"
	"github.com/theananta/certificate-studio/internal/middleware"
)

// RegisterRoutes registers routes that carry no middleware at all.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the authentication endpoints. Unauthenticated
// operations live under /v1/auth, protected ones under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout parses its own bearer, so it stays outside the JWT
	// middleware and works with just a refresh token in the body.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(handler.RoleOrganizer))
	auth.GET("/me", a.Me)
}
