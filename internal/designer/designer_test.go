package designer

import (
	"testing"
	"time"

	"github.com/theananta/certificate-studio/internal/model"
	"github.com/theananta/certificate-studio/internal/render"
)

// fixedClock makes element ids deterministic and distinct.
func fixedClock(s *Session) {
	var tick int64
	s.now = func() time.Time {
		tick++
		return time.UnixMilli(1700000000000 + tick)
	}
}

func TestAddSelectsNewElement(t *testing.T) {
	s := New(nil)
	fixedClock(s)

	txt := s.AddText()
	if sel, ok := s.Selected(); !ok || sel.ID != txt.ID {
		t.Fatalf("adding text should select it, selected=%v ok=%v", sel.ID, ok)
	}
	qr := s.AddQR()
	if sel, _ := s.Selected(); sel.ID != qr.ID {
		t.Fatalf("adding qr should steal selection, got %v", sel.ID)
	}
	if txt.ID == qr.ID {
		t.Fatal("element ids must be distinct")
	}
	if len(s.Snapshot()) != 2 {
		t.Fatalf("snapshot length = %d, want 2", len(s.Snapshot()))
	}
}

func TestMove(t *testing.T) {
	s := New(nil)
	fixedClock(s)
	p := s.AddText()

	s.Move(p.ID, 30, -10)
	got, _ := s.Selected()
	if got.X != p.X+30 || got.Y != p.Y-10 {
		t.Fatalf("moved to (%v,%v), want (%v,%v)", got.X, got.Y, p.X+30, p.Y-10)
	}

	// Drags are ignored in preview mode.
	s.TogglePreview()
	s.Move(p.ID, 100, 100)
	after, _ := s.Selected()
	if after.X != got.X || after.Y != got.Y {
		t.Fatal("move must be a no-op while previewing")
	}
}

func TestUpdateSelectedMerges(t *testing.T) {
	s := New(nil)
	fixedClock(s)
	p := s.AddText()

	key := "eventName"
	size := 40
	width := 0 // explicit zero clears the wrap width
	s.UpdateSelected(Update{Key: &key, FontSize: &size, Width: &width})

	got, _ := s.Selected()
	if got.Key != "eventName" || got.FontSize != 40 {
		t.Fatalf("update not applied: %#v", got)
	}
	if got.Label != p.Label {
		t.Fatalf("untouched fields must survive, label=%q", got.Label)
	}
	if got.Width != 0 {
		t.Fatalf("explicit zero should clear width, got %d", got.Width)
	}
}

func TestUpdateIgnoredWithoutSelection(t *testing.T) {
	s := New([]model.Placeholder{model.NewTextPlaceholder("text-1")})
	label := "changed"
	s.UpdateSelected(Update{Label: &label})
	if s.Snapshot()[0].Label == "changed" {
		t.Fatal("update without selection must be a no-op")
	}
}

func TestDeleteSelected(t *testing.T) {
	s := New(nil)
	fixedClock(s)
	s.AddText()
	qr := s.AddQR()

	s.DeleteSelected()
	if len(s.Snapshot()) != 1 {
		t.Fatalf("snapshot length = %d, want 1", len(s.Snapshot()))
	}
	for _, p := range s.Snapshot() {
		if p.ID == qr.ID {
			t.Fatal("selected element should have been removed")
		}
	}
	if _, ok := s.Selected(); ok {
		t.Fatal("deletion must clear the selection")
	}
	// A second delete with nothing selected changes nothing.
	s.DeleteSelected()
	if len(s.Snapshot()) != 1 {
		t.Fatal("delete without selection must be a no-op")
	}
}

func TestPreviewValues(t *testing.T) {
	s := New(nil)
	if s.Previewing() {
		t.Fatal("fresh session should not start in preview")
	}
	if !s.TogglePreview() || !s.Previewing() {
		t.Fatal("toggle should enter preview")
	}
	if got := s.PreviewValue(render.KeyParticipantName); got != "John Doe" {
		t.Fatalf("sample participant = %q", got)
	}
	if s.PreviewValue(render.KeyQRCode) != s.PreviewValue(render.KeyCertificateLink) {
		t.Fatal("qr and link must preview the same sample url")
	}
	if got := s.PreviewValue("unknownKey"); got != "" {
		t.Fatalf("unknown key should preview empty, got %q", got)
	}

	s.SetPreviewData(render.KeyParticipantName, "Ada Lovelace")
	if got := s.PreviewValue(render.KeyParticipantName); got != "Ada Lovelace" {
		t.Fatalf("sample override not applied, got %q", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(nil)
	fixedClock(s)
	s.AddText()

	snap := s.Snapshot()
	snap[0].Label = "mutated"
	if got, _ := s.Selected(); got.Label == "mutated" {
		t.Fatal("mutating a snapshot must not touch the session")
	}
}
