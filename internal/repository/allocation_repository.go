package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/campus-event-allocation/internal/model"
	"github.com/iliyamo/campus-event-allocation/internal/workflow"
)

// AllocationRepo provides data access for allocations and their
// per-resource quantities.  An allocation is created exactly once per
// successfully allocated event and is superseded to Completed rather
// than deleted.
type AllocationRepo struct {
	db *sql.DB
}

// NewAllocationRepo returns an AllocationRepo bound to the given database.
func NewAllocationRepo(db *sql.DB) *AllocationRepo { return &AllocationRepo{db: db} }

// CreateTx inserts an allocation and its allocation_resources rows in
// the caller's transaction.  The generated IDs are populated on the
// passed structures.
func (r *AllocationRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Allocation) error {
	const q = `INSERT INTO allocations (event_id, venue_id, start_time, end_time, status)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, a.EventID, a.VenueID, a.StartTime.UTC(), a.EndTime.UTC(), a.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	if len(a.Resources) == 0 {
		return nil
	}
	query := `INSERT INTO allocation_resources (allocation_id, resource_id, allocated_quantity) VALUES `
	args := make([]interface{}, 0, len(a.Resources)*3)
	for i := range a.Resources {
		a.Resources[i].AllocationID = a.ID
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, a.ID, a.Resources[i].ResourceID, a.Resources[i].AllocatedQuantity)
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// ActiveWindowsTx loads the schedule windows of every Active
// allocation together with the owning event's title.  The conflict
// checker scans these for overlaps; the scan is deliberately global
// across venues (see workflow.FindConflicts).
func (r *AllocationRepo) ActiveWindowsTx(ctx context.Context, tx *sql.Tx) ([]workflow.Window, error) {
	const q = `SELECT a.event_id, e.title, a.start_time, a.end_time
	           FROM allocations a
	           JOIN events e ON e.id = a.event_id
	           WHERE a.status = ?`
	rows, err := tx.QueryContext(ctx, q, model.AllocationActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var windows []workflow.Window
	for rows.Next() {
		var w workflow.Window
		if err := rows.Scan(&w.EventID, &w.Title, &w.Start, &w.End); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *AllocationRepo) loadResources(ctx context.Context, q interface {
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
}, allocationID uint64) ([]model.ResourceAllocation, error) {
	const sel = `SELECT id, allocation_id, resource_id, allocated_quantity
	             FROM allocation_resources WHERE allocation_id = ? ORDER BY id`
	rows, err := q.QueryContext(ctx, sel, allocationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ResourceAllocation, 0)
	for rows.Next() {
		var ra model.ResourceAllocation
		if err := rows.Scan(&ra.ID, &ra.AllocationID, &ra.ResourceID, &ra.AllocatedQuantity); err != nil {
			return nil, err
		}
		out = append(out, ra)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByEvent returns the event's allocation with its resource rows.
// ErrAllocationNotFound is returned when the event was never
// allocated.
func (r *AllocationRepo) GetByEvent(ctx context.Context, eventID uint64) (*model.Allocation, error) {
	const q = `SELECT id, event_id, venue_id, start_time, end_time, status, created_at
	           FROM allocations WHERE event_id = ? ORDER BY created_at DESC LIMIT 1`
	var a model.Allocation
	err := r.db.QueryRowContext(ctx, q, eventID).Scan(
		&a.ID, &a.EventID, &a.VenueID, &a.StartTime, &a.EndTime, &a.Status, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAllocationNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Resources, err = r.loadResources(ctx, r.db, a.ID)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetActiveByEventForUpdateTx loads the event's Active allocation
// with a row lock, for the completion flow's release bookkeeping.
func (r *AllocationRepo) GetActiveByEventForUpdateTx(ctx context.Context, tx *sql.Tx, eventID uint64) (*model.Allocation, error) {
	const q = `SELECT id, event_id, venue_id, start_time, end_time, status, created_at
	           FROM allocations WHERE event_id = ? AND status = ? FOR UPDATE`
	var a model.Allocation
	err := tx.QueryRowContext(ctx, q, eventID, model.AllocationActive).Scan(
		&a.ID, &a.EventID, &a.VenueID, &a.StartTime, &a.EndTime, &a.Status, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAllocationNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Resources, err = r.loadResources(ctx, tx, a.ID)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CompleteTx flips an allocation to Completed.
func (r *AllocationRepo) CompleteTx(ctx context.Context, tx *sql.Tx, allocationID uint64) error {
	const q = `UPDATE allocations SET status = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, model.AllocationCompleted, allocationID)
	return err
}
