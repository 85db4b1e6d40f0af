package engage

import (
	"context"
	"strings"
	"testing"

	"medportal_backend/platform/apperr"

	"github.com/google/uuid"
)

func TestBuildWhatsAppLink(t *testing.T) {
	link, err := BuildWhatsAppLink("+20 100 123-4567", "Hello & welcome?")
	if err != nil {
		t.Fatalf("BuildWhatsAppLink: %v", err)
	}
	if !strings.HasPrefix(link, "https://wa.me/201001234567?text=") {
		t.Fatalf("unexpected link prefix: %q", link)
	}
	if strings.Contains(link, "&") || strings.Contains(link, " ") {
		t.Fatalf("message must be URL encoded: %q", link)
	}
}

func TestBuildWhatsAppLinkNoDigits(t *testing.T) {
	if _, err := BuildWhatsAppLink("not a phone", "hi"); apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected KindValidation, got %v", err)
	}
}

func TestWhatsAppLinkDefaultMessage(t *testing.T) {
	store := &fakeLeadStore{}
	lead := seedLead(store)
	svc := newTestService(&fakeSettingsRepo{}, store, &fakeScheduler{}, &fakeEmailProvider{})

	resp, err := svc.WhatsAppLink(context.Background(), lead.ID, "   ")
	if err != nil {
		t.Fatalf("WhatsAppLink: %v", err)
	}
	if !strings.Contains(resp.URL, "text=Hello") {
		t.Fatalf("expected default message in link, got %q", resp.URL)
	}
}

func TestWhatsAppLinkUnknownLead(t *testing.T) {
	svc := newTestService(&fakeSettingsRepo{}, &fakeLeadStore{}, &fakeScheduler{}, &fakeEmailProvider{})

	if _, err := svc.WhatsAppLink(context.Background(), uuid.New(), "hi"); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}
