package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/theananta/certificate-studio/internal/model"
	"github.com/theananta/certificate-studio/internal/repository"
)

// dateOnly is the wire format for event dates.
const dateOnly = "2006-01-02"

type eventReq struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // optional
}

type eventResp struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func toEventResp(e *model.Event) eventResp {
	r := eventResp{
		ID:        e.ID,
		Name:      e.Name,
		Slug:      e.Slug,
		StartDate: e.StartDate.Format(dateOnly),
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.EndDate != nil {
		s := e.EndDate.Format(dateOnly)
		r.EndDate = &s
	}
	return r
}

// CreateEvent handles POST /v1/events. Name and slug must each be at
// least three characters; the slug must be unique.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if len(name) < 3 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be at least 3 characters"})
	}
	if len(slug) < 3 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slug must be at least 3 characters"})
	}
	start, err := time.Parse(dateOnly, strings.TrimSpace(req.StartDate))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	ev := &model.Event{Name: name, Slug: slug, StartDate: start}
	if s := strings.TrimSpace(req.EndDate); s != "" {
		end, err := time.Parse(dateOnly, s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
		}
		if end.Before(start) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date before start_date"})
		}
		ev.EndDate = &end
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Create(ctx, ev); err != nil {
		if err == repository.ErrSlugExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create event"})
	}
	return c.JSON(http.StatusCreated, toEventResp(ev))
}

// ListEvents handles GET /v1/events.
func (h *OrganizerHandler) ListEvents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]eventResp, 0, len(events))
	for _, e := range events {
		items = append(items, toEventResp(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetEvent handles GET /v1/events/:id and includes the event's
// participant and template counts alongside its fields.
func (h *OrganizerHandler) GetEvent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	participants, err := h.Participants.ListByEvent(ctx, ev.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	templates, err := h.Templates.ListByEvent(ctx, ev.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event":             toEventResp(ev),
		"participant_count": len(participants),
		"template_count":    len(templates),
	})
}

// DeleteEvent handles DELETE /v1/events/:id. Templates, participants
// and certificates under the event are removed by cascade.
func (h *OrganizerHandler) DeleteEvent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Delete(ctx, c.Param("id")); err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
