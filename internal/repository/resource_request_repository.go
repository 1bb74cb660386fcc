package repository

import (
	"context"
	"database/sql"
)

// ResourceRequestRepo provides access to event resource requests.
// Requests are written once at event creation and only ever read
// afterwards.
type ResourceRequestRepo struct {
	db *sql.DB
}

// NewResourceRequestRepo returns a ResourceRequestRepo bound to the given database.
func NewResourceRequestRepo(db *sql.DB) *ResourceRequestRepo { return &ResourceRequestRepo{db: db} }

// RequestInput is what the create-event payload supplies per resource.
type RequestInput struct {
	ResourceID uint64 `json:"resource_id"`
	Quantity   int    `json:"quantity"`
}

// CreateBulkTx inserts the event's resource requests in a single
// statement inside the caller's transaction.  Passing an empty slice
// has no effect and returns nil.
func (r *ResourceRequestRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, eventID uint64, reqs []RequestInput) error {
	if len(reqs) == 0 {
		return nil
	}
	query := `INSERT INTO event_resource_requests (event_id, resource_id, quantity_requested) VALUES `
	args := make([]interface{}, 0, len(reqs)*3)
	for i, req := range reqs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, eventID, req.ResourceID, req.Quantity)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// RequestDetail is a resource request joined with the resource's name
// and unit for the event detail view.
type RequestDetail struct {
	ID                uint64 `json:"id"`
	ResourceID        uint64 `json:"resource_id"`
	ResourceName      string `json:"resource_name"`
	Category          string `json:"category"`
	Unit              string `json:"unit,omitempty"`
	QuantityRequested int    `json:"quantity_requested"`
}

// ListByEvent returns the event's resource requests with resource names.
func (r *ResourceRequestRepo) ListByEvent(ctx context.Context, eventID uint64) ([]RequestDetail, error) {
	const q = `SELECT rr.id, rr.resource_id, res.name, res.category, res.unit, rr.quantity_requested
	           FROM event_resource_requests rr
	           JOIN resources res ON res.id = rr.resource_id
	           WHERE rr.event_id = ?
	           ORDER BY rr.id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RequestDetail, 0)
	for rows.Next() {
		var (
			d    RequestDetail
			unit sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.ResourceID, &d.ResourceName, &d.Category, &unit, &d.QuantityRequested); err != nil {
			return nil, err
		}
		d.Unit = unit.String
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
