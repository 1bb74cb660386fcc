package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/campus-event-allocation/internal/model"
	"github.com/iliyamo/campus-event-allocation/internal/workflow"
)

// ResourceRepo provides data access for resource pools.  Pool
// quantities are never updated through read-modify-write: every
// mutation is a guarded UPDATE whose predicate enforces
// 0 <= available_quantity <= total_quantity under concurrency.
type ResourceRepo struct {
	db *sql.DB
}

// NewResourceRepo returns a ResourceRepo bound to the given database.
func NewResourceRepo(db *sql.DB) *ResourceRepo { return &ResourceRepo{db: db} }

const resourceColumns = `id, name, category, total_quantity, available_quantity, unit, created_at, updated_at`

func scanResource(row interface{ Scan(...interface{}) error }) (*model.Resource, error) {
	var (
		res  model.Resource
		unit sql.NullString
	)
	err := row.Scan(&res.ID, &res.Name, &res.Category, &res.TotalQuantity,
		&res.AvailableQuantity, &unit, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	res.Unit = unit.String
	return &res, nil
}

// Create inserts a new resource pool.  The available quantity starts
// equal to the total unless the caller says otherwise.
func (r *ResourceRepo) Create(ctx context.Context, res *model.Resource) error {
	if res.AvailableQuantity == 0 {
		res.AvailableQuantity = res.TotalQuantity
	}
	const q = `INSERT INTO resources (name, category, total_quantity, available_quantity, unit)
	           VALUES (?, ?, ?, ?, ?)`
	out, err := r.db.ExecContext(ctx, q, res.Name, res.Category, res.TotalQuantity, res.AvailableQuantity, res.Unit)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := scanResource(r.db.QueryRowContext(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = ?`, id))
	if err != nil {
		return err
	}
	*res = *stored
	return nil
}

// List returns all resource pools ordered by name.
func (r *ResourceRepo) List(ctx context.Context) ([]*model.Resource, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+resourceColumns+` FROM resources ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one resource.  ErrResourceNotFound is returned when
// the id does not resolve.
func (r *ResourceRepo) GetByID(ctx context.Context, id uint64) (*model.Resource, error) {
	res, err := scanResource(r.db.QueryRowContext(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	return res, err
}

// DemandsForUpdateTx loads the event's resource requests joined with
// the current pool availability, locking the touched resource rows so
// the conflict check and the subsequent decrements see a stable pool.
func (r *ResourceRepo) DemandsForUpdateTx(ctx context.Context, tx *sql.Tx, eventID uint64) ([]workflow.ResourceDemand, error) {
	const q = `SELECT rr.resource_id, res.name, rr.quantity_requested, res.available_quantity
	           FROM event_resource_requests rr
	           JOIN resources res ON res.id = rr.resource_id
	           WHERE rr.event_id = ?
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var demands []workflow.ResourceDemand
	for rows.Next() {
		var d workflow.ResourceDemand
		if err := rows.Scan(&d.ResourceID, &d.Name, &d.Requested, &d.Available); err != nil {
			return nil, err
		}
		demands = append(demands, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return demands, nil
}

// AllocateTx decrements a pool by qty only when enough is available.
// The predicate makes the decrement atomic: two concurrent
// allocations can never drive available_quantity negative.  The
// boolean result reports whether the decrement happened.
func (r *ResourceRepo) AllocateTx(ctx context.Context, tx *sql.Tx, resourceID uint64, qty int) (bool, error) {
	const q = `UPDATE resources
	           SET available_quantity = available_quantity - ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND available_quantity >= ?`
	res, err := tx.ExecContext(ctx, q, qty, resourceID, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReleaseTx adds qty back to a pool.  Release amounts come from
// allocation_resources rows, so decrement and increment are exact
// inverses and no upper clamp is needed.
func (r *ResourceRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, resourceID uint64, qty int) error {
	const q = `UPDATE resources
	           SET available_quantity = available_quantity + ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, qty, resourceID)
	return err
}

// Count returns the number of resource pools, for the dashboard.
func (r *ResourceRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&n)
	return n, err
}
