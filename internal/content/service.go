package content

import (
	"context"
	"errors"
	"time"

	"medportal_backend/internal/translate"
	"medportal_backend/platform/apperr"
	"medportal_backend/platform/logger"

	"github.com/google/uuid"
)

// Store is the repository surface the service needs.
type Store interface {
	CreateEntry(ctx context.Context, kind string, fields map[string]any, translations map[string]map[string]any) (Entry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, fields map[string]any, translations map[string]map[string]any) (Entry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (Entry, error)
	ListEntries(ctx context.Context, kind string) ([]Entry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

// Translator derives the target-locale copy of a record's fields.
type Translator interface {
	Translate(ctx context.Context, fields translate.Fields, targetLang string) (translate.Fields, error)
}

// Service runs every content write through the translation pipeline before
// persisting, and resolves locales on read.
type Service struct {
	store      Store
	translator Translator
	enabled    bool
	log        *logger.Logger
}

// New creates a new content service. When translation is not configured the
// derived locale is skipped and reads fall back to the base language.
func New(store Store, translator Translator, translateEnabled bool, log *logger.Logger) *Service {
	return &Service{store: store, translator: translator, enabled: translateEnabled, log: log}
}

// EntryResponse is the API shape of an entry, with fields resolved for the
// requested locale.
type EntryResponse struct {
	ID        uuid.UUID      `json:"id"`
	Kind      string         `json:"kind"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Create translates and persists a new entry. A translation failure fails
// the whole write; nothing partially translated is stored.
func (s *Service) Create(ctx context.Context, kind string, fields map[string]any) (EntryResponse, error) {
	if !ValidKind(kind) {
		return EntryResponse{}, apperr.Validation("unknown content kind")
	}
	if len(fields) == 0 {
		return EntryResponse{}, apperr.Validation("fields are required")
	}

	translations, err := s.buildTranslations(ctx, fields)
	if err != nil {
		return EntryResponse{}, err
	}

	entry, err := s.store.CreateEntry(ctx, kind, fields, translations)
	if err != nil {
		return EntryResponse{}, err
	}
	return toResponse(entry, translate.BaseLocale), nil
}

// Update re-translates the full field set and replaces the stored entry.
func (s *Service) Update(ctx context.Context, kind string, id uuid.UUID, fields map[string]any) (EntryResponse, error) {
	if !ValidKind(kind) {
		return EntryResponse{}, apperr.Validation("unknown content kind")
	}
	if len(fields) == 0 {
		return EntryResponse{}, apperr.Validation("fields are required")
	}

	existing, err := s.store.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return EntryResponse{}, apperr.NotFound("content entry not found")
		}
		return EntryResponse{}, err
	}
	if existing.Kind != kind {
		return EntryResponse{}, apperr.Validation("content kind mismatch")
	}

	translations, err := s.buildTranslations(ctx, fields)
	if err != nil {
		return EntryResponse{}, err
	}

	entry, err := s.store.UpdateEntry(ctx, id, fields, translations)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return EntryResponse{}, apperr.NotFound("content entry not found")
		}
		return EntryResponse{}, err
	}
	return toResponse(entry, translate.BaseLocale), nil
}

// Get resolves one entry for a locale.
func (s *Service) Get(ctx context.Context, kind string, id uuid.UUID, locale string) (EntryResponse, error) {
	if !ValidKind(kind) {
		return EntryResponse{}, apperr.Validation("unknown content kind")
	}
	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return EntryResponse{}, apperr.NotFound("content entry not found")
		}
		return EntryResponse{}, err
	}
	if entry.Kind != kind {
		return EntryResponse{}, apperr.NotFound("content entry not found")
	}
	return toResponse(entry, normalizeLocale(locale)), nil
}

// List resolves all entries of a kind for a locale, newest first.
func (s *Service) List(ctx context.Context, kind, locale string) ([]EntryResponse, error) {
	if !ValidKind(kind) {
		return nil, apperr.Validation("unknown content kind")
	}
	entries, err := s.store.ListEntries(ctx, kind)
	if err != nil {
		return nil, err
	}

	locale = normalizeLocale(locale)
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toResponse(e, locale))
	}
	return out, nil
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, kind string, id uuid.UUID) error {
	if !ValidKind(kind) {
		return apperr.Validation("unknown content kind")
	}
	if err := s.store.DeleteEntry(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("content entry not found")
		}
		return err
	}
	return nil
}

func (s *Service) buildTranslations(ctx context.Context, fields map[string]any) (map[string]map[string]any, error) {
	base := translate.FromMap(fields)

	if !s.enabled {
		// Only the base locale is stored; reads fall back to it.
		return map[string]map[string]any{translate.BaseLocale: base.ToMap()}, nil
	}

	derived, err := s.translator.Translate(ctx, base, translate.TargetLocale)
	if err != nil {
		return nil, err
	}
	return translate.BuildTranslations(base, derived), nil
}

func toResponse(e Entry, locale string) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Kind:      e.Kind,
		Fields:    translate.ResolveAll(e.Translations, locale, e.Fields),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func normalizeLocale(locale string) string {
	if locale == translate.TargetLocale {
		return translate.TargetLocale
	}
	return translate.BaseLocale
}
