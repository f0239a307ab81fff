package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/theananta/certificate-studio/internal/model"
	"github.com/theananta/certificate-studio/internal/repository"
	"github.com/theananta/certificate-studio/internal/storage"
)

type templateReq struct {
	ID           string              `json:"id"` // empty on first save
	Name         string              `json:"name"`
	ImageURL     string              `json:"image_url"`
	Placeholders []model.Placeholder `json:"placeholders"`
}

type templateResp struct {
	ID           string              `json:"id"`
	EventID      string              `json:"event_id"`
	Name         string              `json:"name"`
	ImageURL     string              `json:"image_url"`
	Placeholders []model.Placeholder `json:"placeholders"`
	UpdatedAt    string              `json:"updated_at"`
}

func toTemplateResp(t *model.CertificateTemplate) (templateResp, error) {
	ps, err := model.ParsePlaceholders(t.Placeholders)
	if err != nil {
		return templateResp{}, err
	}
	return templateResp{
		ID:           t.ID,
		EventID:      t.EventID,
		Name:         t.Name,
		ImageURL:     t.ImageURL,
		Placeholders: ps,
		UpdatedAt:    t.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// SaveTemplate handles POST /v1/events/:id/templates. The designer
// posts its full snapshot on every save: with an id the existing
// template is replaced, without one a new template is created.
func (h *OrganizerHandler) SaveTemplate(c echo.Context) error {
	var req templateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image_url is required"})
	}
	encoded, err := model.EncodePlaceholders(req.Placeholders)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid placeholders"})
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

	var saved *model.CertificateTemplate
	if req.ID != "" {
		if err := h.Templates.Update(ctx, req.ID, req.ImageURL, encoded); err != nil {
			if err == repository.ErrTemplateNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
		saved, err = h.Templates.GetByID(ctx, req.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	} else {
		t := &model.CertificateTemplate{
			EventID:      ev.ID,
			Name:         strings.TrimSpace(req.Name),
			ImageURL:     req.ImageURL,
			Placeholders: encoded,
		}
		if err := h.Templates.Create(ctx, t); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save template"})
		}
		saved = t
	}

	resp, err := toTemplateResp(saved)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stored placeholders corrupt"})
	}
	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	return c.JSON(status, resp)
}

// ListTemplates handles GET /v1/events/:id/templates.
func (h *OrganizerHandler) ListTemplates(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Templates.ListByEvent(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]templateResp, 0, len(items))
	for _, t := range items {
		r, err := toTemplateResp(t)
		if err != nil {
			// A corrupt row should not hide the rest of the list.
			continue
		}
		out = append(out, r)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// DeleteTemplate handles DELETE /v1/templates/:id.
func (h *OrganizerHandler) DeleteTemplate(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Templates.Delete(ctx, c.Param("id")); err != nil {
		if err == repository.ErrTemplateNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// TemplateImages handles GET /v1/template-images and returns the
// background images available to the designer, local files first then
// bucket objects.
func (h *OrganizerHandler) TemplateImages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	images := storage.LocalImages(h.Cfg.TemplatesDir)
	images = append(images, storage.BucketImages(ctx, h.Cfg.GCSBucket)...)
	return c.JSON(http.StatusOK, echo.Map{"items": images})
}
