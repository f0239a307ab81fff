package router

import (
	"github.com/labstack/echo/v4"

	"github.com/theananta/certificate-studio/internal/handler"
	"github.com/theananta/certificate-studio/internal/middleware"
)

// RegisterOrganizer registers organizer-scoped endpoints under /v1.
// All routes require a valid JWT with the ORGANIZER role.
func RegisterOrganizer(e *echo.Echo, o *handler.OrganizerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleOrganizer),
	)

	// ---- Events ----
	g.POST("/events", o.CreateEvent)
	g.GET("/events", o.ListEvents)
	g.GET("/events/:id", o.GetEvent)
	g.DELETE("/events/:id", o.DeleteEvent)

	// ---- Participants ----
	g.POST("/events/:id/participants", o.AddParticipant)
	g.GET("/events/:id/participants", o.ListParticipants)
	g.DELETE("/participants/:id", o.DeleteParticipant)

	// ---- Templates ----
	g.POST("/events/:id/templates", o.SaveTemplate) // create or replace
	g.GET("/events/:id/templates", o.ListTemplates)
	g.DELETE("/templates/:id", o.DeleteTemplate)
	g.GET("/template-images", o.TemplateImages)

	// ---- Certificates ----
	g.POST("/certificates/draft", o.CreateDraft)
	g.POST("/certificates/:id/assign", o.AssignDraft)
	g.POST("/events/:id/certificates/generate", o.GenerateCertificates)
	g.GET("/events/:id/certificates", o.ListCertificates)
	g.DELETE("/certificates/:id", o.RevokeCertificate)
}
