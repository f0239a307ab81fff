// Package render turns a template's placeholder list plus a resolved
// variable context into a positioned visual layout, and rasterizes
// that layout for export. Resolution and layout are pure; only the
// raster step touches fonts and images.
package render

import (
	"fmt"

	"github.com/theananta/certificate-studio/internal/model"
)

// Context carries the data a placeholder key may resolve against.
// Participant and Event are optional: a draft certificate has no
// participant, and a template preview may have no certificate at all.
// Missing data degrades to an empty string, never an error.
type Context struct {
	Participant *model.Participant
	Event       *model.Event
	Certificate *model.Certificate
	BaseURL     string // application base URL used to build verification links
}

// Recognized variable keys. A placeholder's key must be one of these;
// anything else resolves to the empty string.
const (
	KeyParticipantName = "participantName"
	KeyEventName       = "eventName"
	KeyDate            = "date"
	KeyCategory        = "category"
	KeyCertificateLink = "certificateLink"
	KeyQRCode          = "qrCode"
)

// Keys lists every recognized variable key in the order the designer
// offers them.
func Keys() []string {
	return []string{
		KeyParticipantName,
		KeyEventName,
		KeyDate,
		KeyCategory,
		KeyCertificateLink,
		KeyQRCode,
	}
}

// dateLayout matches the short localized form the certificate surface
// displays for event dates.
const dateLayout = "1/2/2006"

// Resolve maps a symbolic key to its display value for the given
// context. certificateLink and qrCode both resolve to the same
// verification URL. The event date renders as the start date, with
// the end date appended after a separator when one exists. Resolve
// never fails: unknown keys and absent context data yield "".
func Resolve(key string, ctx Context) string {
	switch key {
	case KeyParticipantName:
		if ctx.Participant != nil {
			return ctx.Participant.Name
		}
	case KeyEventName:
		if ctx.Event != nil {
			return ctx.Event.Name
		}
	case KeyCategory:
		if ctx.Participant != nil {
			return ctx.Participant.Category
		}
	case KeyDate:
		if ctx.Event != nil {
			s := ctx.Event.StartDate.Format(dateLayout)
			if ctx.Event.EndDate != nil {
				s += " - " + ctx.Event.EndDate.Format(dateLayout)
			}
			return s
		}
	case KeyCertificateLink, KeyQRCode:
		if ctx.Certificate != nil {
			return VerificationURL(ctx.BaseURL, ctx.Certificate.ID)
		}
	}
	return ""
}

// VerificationURL builds the externally reachable verify link for a
// certificate id. The id is a public identifier, not a secret.
func VerificationURL(baseURL, certID string) string {
	return fmt.Sprintf("%s/verify?id=%s", baseURL, certID)
}
