package engage

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"medportal_backend/internal/leads/repository"
	"medportal_backend/platform/apperr"
	"medportal_backend/platform/phone"

	"github.com/google/uuid"
)

// WhatsAppLinkResponse carries the generated deep link.
type WhatsAppLinkResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// WhatsAppLink builds a wa.me deep link for the lead's phone number with a
// pre-filled message. Pure link construction: no network call, no persistence;
// the actual conversation happens in an external WhatsApp client.
func (s *Service) WhatsAppLink(ctx context.Context, leadID uuid.UUID, message string) (WhatsAppLinkResponse, error) {
	lead, err := s.leadStore.GetLeadByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return WhatsAppLinkResponse{}, apperr.NotFound("lead not found")
		}
		return WhatsAppLinkResponse{}, err
	}

	if strings.TrimSpace(message) == "" {
		message = s.defaultMessage
	}

	link, err := BuildWhatsAppLink(lead.Phone, message)
	if err != nil {
		return WhatsAppLinkResponse{}, err
	}
	return WhatsAppLinkResponse{Success: true, URL: link}, nil
}

// BuildWhatsAppLink produces https://wa.me/{digits}?text={message} from a raw
// phone number. All non-digit characters are stripped.
func BuildWhatsAppLink(rawPhone, message string) (string, error) {
	digits := phone.Digits(rawPhone)
	if digits == "" {
		return "", apperr.Validation("lead has no usable phone number")
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message), nil
}
