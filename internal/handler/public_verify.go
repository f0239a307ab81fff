package handler

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"

	"github.com/theananta/certificate-studio/internal/config"
	"github.com/theananta/certificate-studio/internal/model"
	"github.com/theananta/certificate-studio/internal/render"
	"github.com/theananta/certificate-studio/internal/repository"
)

// VerifyHandler serves the public certificate verification endpoints.
// These are unauthenticated and sit behind the response cache and the
// rate limiter.
type VerifyHandler struct {
	Cfg          config.Config
	Events       *repository.EventRepo
	Participants *repository.ParticipantRepo
	Templates    *repository.TemplateRepo
	Certificates *repository.CertificateRepo
	Fonts        *render.FontLibrary

	// Client fetches remote background images (signed bucket URLs).
	Client *http.Client
}

func NewVerifyHandler(cfg config.Config, ev *repository.EventRepo, pa *repository.ParticipantRepo, te *repository.TemplateRepo, ce *repository.CertificateRepo, fonts *render.FontLibrary) *VerifyHandler {
	return &VerifyHandler{
		Cfg:          cfg,
		Events:       ev,
		Participants: pa,
		Templates:    te,
		Certificates: ce,
		Fonts:        fonts,
		Client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// verified bundles everything a verification response is built from.
type verified struct {
	Certificate *model.Certificate
	Template    *model.CertificateTemplate
	Event       *model.Event
	Participant *model.Participant // nil for drafts
	Surface     render.Surface
}

// lookup resolves a certificate by ?id= or ?email= and assembles its
// fully laid-out surface.
func (h *VerifyHandler) lookup(ctx context.Context, c echo.Context) (*verified, error) {
	id := strings.TrimSpace(c.QueryParam("id"))
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))

	var ct *model.Certificate
	var err error
	switch {
	case id != "":
		ct, err = h.Certificates.GetByID(ctx, id)
	case email != "":
		ct, err = h.Certificates.GetByParticipantEmail(ctx, email)
	default:
		return nil, echo.NewHTTPError(http.StatusBadRequest, "id or email query parameter required")
	}
	if err != nil {
		if err == repository.ErrCertificateNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "certificate not found")
		}
		return nil, err
	}

	tpl, err := h.Templates.GetByID(ctx, ct.TemplateID)
	if err != nil {
		return nil, err
	}
	ev, err := h.Events.GetByID(ctx, tpl.EventID)
	if err != nil {
		return nil, err
	}
	var p *model.Participant
	if ct.ParticipantID != nil {
		p, err = h.Participants.GetByID(ctx, *ct.ParticipantID)
		if err != nil {
			return nil, err
		}
	}

	placeholders, err := model.ParsePlaceholders(tpl.Placeholders)
	if err != nil {
		return nil, err
	}
	surface := render.Layout(placeholders, tpl.ImageURL, render.Context{
		Participant: p,
		Event:       ev,
		Certificate: ct,
		BaseURL:     h.Cfg.BaseURL,
	})
	return &verified{Certificate: ct, Template: tpl, Event: ev, Participant: p, Surface: surface}, nil
}

// Verify handles GET /verify. The response carries the laid-out
// surface so any client can paint the certificate exactly as it was
// designed, plus a summary of who it was issued to. Drafts verify as
// authentic but unassigned.
func (h *VerifyHandler) Verify(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.lookup(ctx, c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return c.JSON(he.Code, echo.Map{"error": fmt.Sprint(he.Message)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}

	resp := echo.Map{
		"certificate_id": v.Certificate.ID,
		"draft":          v.Certificate.IsDraft(),
		"issued_at":      v.Certificate.IssuedAt.UTC().Format(time.RFC3339),
		"event": echo.Map{
			"name":       v.Event.Name,
			"slug":       v.Event.Slug,
			"start_date": v.Event.StartDate.Format(dateOnly),
		},
		"surface": v.Surface,
	}
	if v.Participant != nil {
		resp["issued_to"] = echo.Map{
			"name":     v.Participant.Name,
			"category": v.Participant.Category,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// background fetches and decodes the template's background image.
// Local /templates/ paths read from the configured directory, http(s)
// URLs are fetched. Failures return nil and the raster falls back to
// a white page.
func (h *VerifyHandler) background(ctx context.Context, imageURL string) image.Image {
	switch {
	case strings.HasPrefix(imageURL, "/templates/"):
		name := path.Base(imageURL)
		img, err := imaging.Open(filepath.Join(h.Cfg.TemplatesDir, name))
		if err != nil {
			return nil
		}
		return img
	case strings.HasPrefix(imageURL, "http://"), strings.HasPrefix(imageURL, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
		if err != nil {
			return nil
		}
		resp, err := h.Client.Do(req)
		if err != nil {
			return nil
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil
		}
		img, err := imaging.Decode(resp.Body)
		if err != nil {
			return nil
		}
		return img
	}
	return nil
}

// png rasterizes a verified certificate to an encoded PNG.
func (h *VerifyHandler) png(ctx context.Context, v *verified) ([]byte, error) {
	bg := h.background(ctx, v.Template.ImageURL)
	img, err := render.Rasterize(v.Surface, bg, h.Fonts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// VerifyImage handles GET /verify/image and returns the certificate
// rendered as a PNG at print resolution.
func (h *VerifyHandler) VerifyImage(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	v, err := h.lookup(ctx, c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return c.JSON(he.Code, echo.Map{"error": fmt.Sprint(he.Message)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}
	data, err := h.png(ctx, v)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
	}
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.png"`, v.Certificate.ID))
	return c.Blob(http.StatusOK, "image/png", data)
}

// VerifyPDF handles GET /verify/pdf and returns the certificate as a
// single-page A4 landscape PDF wrapping the print-resolution raster.
func (h *VerifyHandler) VerifyPDF(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	v, err := h.lookup(ctx, c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return c.JSON(he.Code, echo.Map{"error": fmt.Sprint(he.Message)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}
	data, err := h.png(ctx, v)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.RegisterImageOptionsReader("certificate", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data))
	// A4 landscape is 297x210mm; the raster shares its aspect ratio.
	pdf.ImageOptions("certificate", 0, 0, 297, 210, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "pdf failed"})
	}
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, v.Certificate.ID))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
