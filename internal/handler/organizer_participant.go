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

type participantReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
}

type participantResp struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
}

func toParticipantResp(p *model.Participant) participantResp {
	return participantResp{ID: p.ID, EventID: p.EventID, Name: p.Name, Email: p.Email, Category: p.Category}
}

// AddParticipant handles POST /v1/events/:id/participants.
func (h *OrganizerHandler) AddParticipant(c echo.Context) error {
	var req participantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if email == "" || !strings.Contains(email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	p := &model.Participant{EventID: ev.ID, Name: name, Email: email, Category: strings.TrimSpace(req.Category)}
	if err := h.Participants.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not add participant"})
	}
	return c.JSON(http.StatusCreated, toParticipantResp(p))
}

// ListParticipants handles GET /v1/events/:id/participants.
func (h *OrganizerHandler) ListParticipants(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Participants.ListByEvent(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]participantResp, 0, len(items))
	for _, p := range items {
		out = append(out, toParticipantResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// DeleteParticipant handles DELETE /v1/participants/:id. The
// participant's certificate, if any, goes with them.
func (h *OrganizerHandler) DeleteParticipant(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Participants.Delete(ctx, c.Param("id")); err != nil {
		if err == repository.ErrParticipantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "participant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
