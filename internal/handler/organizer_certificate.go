package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/theananta/certificate-studio/internal/middleware"
	"github.com/theananta/certificate-studio/internal/model"
	"github.com/theananta/certificate-studio/internal/queue"
	"github.com/theananta/certificate-studio/internal/repository"
	queue_publisher "github.com/theananta/certificate-studio/internal/service"
)

type draftReq struct {
	TemplateID string `json:"template_id"`
	CustomID   string `json:"custom_id"` // optional human-readable code
}

type assignReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
}

type certificateResp struct {
	ID            string  `json:"id"`
	TemplateID    string  `json:"template_id"`
	ParticipantID *string `json:"participant_id,omitempty"`
	Draft         bool    `json:"draft"`
	IssuedAt      string  `json:"issued_at"`
}

func toCertificateResp(ct *model.Certificate) certificateResp {
	return certificateResp{
		ID:            ct.ID,
		TemplateID:    ct.TemplateID,
		ParticipantID: ct.ParticipantID,
		Draft:         ct.IsDraft(),
		IssuedAt:      ct.IssuedAt.UTC().Format(time.RFC3339),
	}
}

// publish sends a certificate event to the broker without tying its
// fate to the HTTP request. Failures are logged by the publisher.
func publish(ev queue.CertificateEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishCertificateEvent(ctx, ev)
	}()
}

// CreateDraft handles POST /v1/certificates/draft. A draft is a
// pre-issued certificate id not yet bound to anyone, handed out
// physically before the recipient's details are known.
func (h *OrganizerHandler) CreateDraft(c echo.Context) error {
	var req draftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.TemplateID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "template_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tpl, err := h.Templates.GetByID(ctx, req.TemplateID)
	if err != nil {
		if err == repository.ErrTemplateNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	ct, err := h.Certificates.CreateDraft(ctx, tpl.ID, strings.TrimSpace(req.CustomID))
	if err != nil {
		if err == repository.ErrDuplicateID {
			return c.JSON(http.StatusConflict, echo.Map{"error": "certificate id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create draft"})
	}

	publish(queue.CertificateEvent{
		Action:        queue.ActionDraftCreated,
		CertificateID: ct.ID,
		TemplateID:    tpl.ID,
		EventID:       tpl.EventID,
	})
	return c.JSON(http.StatusCreated, toCertificateResp(ct))
}

// AssignDraft handles POST /v1/certificates/:id/assign. It creates
// the participant and binds the draft in one transaction; a draft
// that was assigned in the meantime comes back as a conflict.
func (h *OrganizerHandler) AssignDraft(c echo.Context) error {
	var req assignReq
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

	certID := c.Param("id")
	ct, err := h.Certificates.GetByID(ctx, certID)
	if err != nil {
		if err == repository.ErrCertificateNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "certificate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	tpl, err := h.Templates.GetByID(ctx, ct.TemplateID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	p := &model.Participant{EventID: tpl.EventID, Name: name, Email: email, Category: strings.TrimSpace(req.Category)}
	if err := h.Certificates.AssignDraft(ctx, certID, p); err != nil {
		switch err {
		case repository.ErrCertificateNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "certificate not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "certificate already assigned"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assign failed"})
		}
	}

	publish(queue.CertificateEvent{
		Action:          queue.ActionAssigned,
		CertificateID:   certID,
		TemplateID:      tpl.ID,
		EventID:         tpl.EventID,
		ParticipantID:   p.ID,
		ParticipantName: p.Name,
	})
	assigned, err := h.Certificates.GetByID(ctx, certID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toCertificateResp(assigned))
}

// GenerateCertificates handles POST /v1/events/:id/certificates/generate.
// Every participant of the event who does not yet hold a certificate
// gets one from the chosen template (or the event's first template
// when none is named). Participants who picked one up concurrently
// are skipped, not failed.
func (h *OrganizerHandler) GenerateCertificates(c echo.Context) error {
	var req struct {
		TemplateID string `json:"template_id"` // optional
	}
	_ = c.Bind(&req)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	templates, err := h.Templates.ListByEvent(ctx, ev.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var tpl *model.CertificateTemplate
	if req.TemplateID != "" {
		for _, t := range templates {
			if t.ID == req.TemplateID {
				tpl = t
				break
			}
		}
		if tpl == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found for this event"})
		}
	} else if len(templates) > 0 {
		tpl = templates[0]
	}
	if tpl == nil {
		return c.JSON(http.StatusOK, echo.Map{
			"generated": 0,
			"message":   "No certificate template found for this event. Design a template first.",
		})
	}

	pending, err := h.Participants.ListUncertified(ctx, ev.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if len(pending) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"generated": 0,
			"message":   "All participants already have certificates.",
		})
	}

	generated := 0
	for _, p := range pending {
		ct, err := h.Certificates.CreateAssigned(ctx, tpl.ID, p.ID)
		if err != nil {
			if err == repository.ErrAlreadyIssued {
				continue
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generation failed", "generated": generated})
		}
		generated++
		publish(queue.CertificateEvent{
			Action:          queue.ActionGenerated,
			CertificateID:   ct.ID,
			TemplateID:      tpl.ID,
			EventID:         ev.ID,
			EventName:       ev.Name,
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"generated": generated,
		"message":   fmt.Sprintf("Generated %d certificates using template '%s'.", generated, tpl.Name),
	})
}

// ListCertificates handles GET /v1/events/:id/certificates and
// includes the holder's name and email when the certificate is
// assigned.
func (h *OrganizerHandler) ListCertificates(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	eventID := c.Param("id")
	certs, err := h.Certificates.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	participants, err := h.Participants.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	byID := make(map[string]*model.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	type item struct {
		certificateResp
		ParticipantName  string `json:"participant_name,omitempty"`
		ParticipantEmail string `json:"participant_email,omitempty"`
	}
	items := make([]item, 0, len(certs))
	for _, ct := range certs {
		it := item{certificateResp: toCertificateResp(ct)}
		if ct.ParticipantID != nil {
			if p, ok := byID[*ct.ParticipantID]; ok {
				it.ParticipantName = p.Name
				it.ParticipantEmail = p.Email
			}
		}
		items = append(items, it)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// RevokeCertificate handles DELETE /v1/certificates/:id. The row is
// deleted outright and the cached verification responses for both the
// id and the holder's email are dropped so the revocation is visible
// immediately.
func (h *OrganizerHandler) RevokeCertificate(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	certID := c.Param("id")
	ct, err := h.Certificates.GetByID(ctx, certID)
	if err != nil {
		if err == repository.ErrCertificateNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "certificate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	// Resolve the holder's email before revoking so the email-keyed
	// cache entries can be invalidated alongside the id-keyed ones.
	var holderEmail string
	if ct.ParticipantID != nil {
		if p, err := h.Participants.GetByID(ctx, *ct.ParticipantID); err == nil {
			holderEmail = p.Email
		}
	}

	if err := h.Certificates.Revoke(ctx, certID); err != nil {
		if err == repository.ErrCertificateNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "certificate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}

	middleware.InvalidateVerify(ctx, h.Redis, h.CacheCfg, certID, holderEmail)

	revokedEvent := queue.CertificateEvent{
		Action:        queue.ActionRevoked,
		CertificateID: certID,
		TemplateID:    ct.TemplateID,
	}
	if ct.ParticipantID != nil {
		revokedEvent.ParticipantID = *ct.ParticipantID
	}
	publish(revokedEvent)
	return c.NoContent(http.StatusNoContent)
}
