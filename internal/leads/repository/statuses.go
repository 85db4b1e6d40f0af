package repository

import "context"

// LeadStatus is an entry in the closed status catalog.
type LeadStatus struct {
	ID        int
	Name      string
	SortOrder int
}

// ListStatuses returns the full status catalog in display order.
func (r *Repository) ListStatuses(ctx context.Context) ([]LeadStatus, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, sort_order
		FROM lead_statuses
		ORDER BY sort_order
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make([]LeadStatus, 0)
	for rows.Next() {
		var s LeadStatus
		if err := rows.Scan(&s.ID, &s.Name, &s.SortOrder); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return statuses, nil
}

// StatusExists reports whether the status id is part of the catalog.
func (r *Repository) StatusExists(ctx context.Context, statusID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM lead_statuses WHERE id = $1)
	`, statusID).Scan(&exists)
	return exists, err
}
