// Package content stores the marketing site's translatable content entities.
package content

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a content entry does not exist.
var ErrNotFound = errors.New("content entry not found")

// Content kinds form a closed catalog; unknown kinds are rejected at the
// service boundary.
var kinds = map[string]bool{
	"banner":        true,
	"procedure":     true,
	"doctor":        true,
	"testimonial":   true,
	"blog":          true,
	"faq":           true,
	"about_section": true,
}

// ValidKind reports whether kind belongs to the content catalog.
func ValidKind(kind string) bool {
	return kinds[kind]
}

// Entry is a stored content entity. Fields holds the base-language values;
// Translations carries the per-locale derived copies.
type Entry struct {
	ID           uuid.UUID
	Kind         string
	Fields       map[string]any
	Translations map[string]map[string]any
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository persists content entries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new content repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateEntry inserts a content entry.
func (r *Repository) CreateEntry(ctx context.Context, kind string, fields map[string]any, translations map[string]map[string]any) (Entry, error) {
	var e Entry
	err := r.pool.QueryRow(ctx, `
		INSERT INTO content_entries (kind, fields, translations)
		VALUES ($1, $2, $3)
		RETURNING id, kind, fields, translations, created_at, updated_at
	`, kind, fields, translations).Scan(
		&e.ID, &e.Kind, &e.Fields, &e.Translations, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// UpdateEntry replaces an entry's fields and translations.
func (r *Repository) UpdateEntry(ctx context.Context, id uuid.UUID, fields map[string]any, translations map[string]map[string]any) (Entry, error) {
	var e Entry
	err := r.pool.QueryRow(ctx, `
		UPDATE content_entries
		SET fields = $2, translations = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, kind, fields, translations, created_at, updated_at
	`, id, fields, translations).Scan(
		&e.ID, &e.Kind, &e.Fields, &e.Translations, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// GetEntry loads one entry by id.
func (r *Repository) GetEntry(ctx context.Context, id uuid.UUID) (Entry, error) {
	var e Entry
	err := r.pool.QueryRow(ctx, `
		SELECT id, kind, fields, translations, created_at, updated_at
		FROM content_entries
		WHERE id = $1
	`, id).Scan(
		&e.ID, &e.Kind, &e.Fields, &e.Translations, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// ListEntries returns all entries of a kind, newest first.
func (r *Repository) ListEntries(ctx context.Context, kind string) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, kind, fields, translations, created_at, updated_at
		FROM content_entries
		WHERE kind = $1
		ORDER BY created_at DESC
	`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Fields, &e.Translations, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteEntry removes an entry.
func (r *Repository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM content_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
