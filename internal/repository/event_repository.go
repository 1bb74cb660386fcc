package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/campus-event-allocation/internal/model"
	"github.com/iliyamo/campus-event-allocation/internal/workflow"
)

// EventRepo provides data access for events.  Decision and allocation
// flows run inside a transaction owned by the handler; the Tx
// variants here never commit or roll back themselves.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions
// spanning several repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, coordinator_id, title, description, department_id, school_id,
       schedule_start, schedule_end, participant_count, venue_type_required,
       status, rejection_reason, modification_comments, created_at, updated_at`

// scanEvent reads one event row from any row scanner.
func scanEvent(row interface{ Scan(...interface{}) error }) (*model.Event, error) {
	var (
		ev           model.Event
		description  sql.NullString
		venueType    sql.NullString
		rejection    sql.NullString
		modification sql.NullString
		status       string
	)
	err := row.Scan(
		&ev.ID, &ev.CoordinatorID, &ev.Title, &description, &ev.DepartmentID, &ev.SchoolID,
		&ev.ScheduleStart, &ev.ScheduleEnd, &ev.ParticipantCount, &venueType,
		&status, &rejection, &modification, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	ev.Description = description.String
	ev.VenueTypeRequired = venueType.String
	ev.RejectionReason = rejection.String
	ev.ModificationComments = modification.String
	ev.Status = workflow.Status(status)
	return &ev, nil
}

// CreateTx inserts a new event within the provided transaction and
// reads the stored row back so timestamps and defaults are populated.
// The caller sets Status before insert; creation uses HOD_Review.
func (r *EventRepo) CreateTx(ctx context.Context, tx *sql.Tx, ev *model.Event) error {
	const q = `INSERT INTO events
	           (coordinator_id, title, description, department_id, school_id,
	            schedule_start, schedule_end, participant_count, venue_type_required, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		ev.CoordinatorID, ev.Title, ev.Description, ev.DepartmentID, ev.SchoolID,
		ev.ScheduleStart.UTC(), ev.ScheduleEnd.UTC(), ev.ParticipantCount,
		ev.VenueTypeRequired, string(ev.Status),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := scanEvent(tx.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if err != nil {
		return err
	}
	*ev = *stored
	return nil
}

// GetByID fetches one event.  ErrEventNotFound is returned when the
// id does not resolve.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	ev, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return ev, err
}

// GetForUpdateTx fetches one event with a row lock, serializing
// concurrent decisions on the same event for the lifetime of the
// transaction.
func (r *EventRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Event, error) {
	ev, err := scanEvent(tx.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return ev, err
}

// ListForViewer returns events visible to the caller, newest first.
// Coordinators see their own events, HODs their department, Deans
// their school; Head and Admin see everything.
func (r *EventRepo) ListForViewer(ctx context.Context, role workflow.Role, userID uint64, departmentID, schoolID string) ([]*model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events`
	var args []interface{}
	switch role {
	case workflow.RoleCoordinator:
		q += ` WHERE coordinator_id = ?`
		args = append(args, userID)
	case workflow.RoleHOD:
		q += ` WHERE department_id = ?`
		args = append(args, departmentID)
	case workflow.RoleDean:
		q += ` WHERE school_id = ?`
		args = append(args, schoolID)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// TransitionTx applies a status change guarded by the expected
// current status.  When the guard misses because another decision got
// there first, ErrDecisionSuperseded is returned and nothing is
// written.
func (r *EventRepo) TransitionTx(ctx context.Context, tx *sql.Tx, id uint64, from, to workflow.Status) error {
	const q = `UPDATE events SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, q, string(to), id, string(from))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDecisionSuperseded
	}
	return nil
}

// RejectTx marks the event Rejected and records the reviewer's
// reason, guarded like TransitionTx.
func (r *EventRepo) RejectTx(ctx context.Context, tx *sql.Tx, id uint64, from workflow.Status, reason string) error {
	const q = `UPDATE events SET status = ?, rejection_reason = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, q, string(workflow.StatusRejected), reason, id, string(from))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDecisionSuperseded
	}
	return nil
}

// BounceTx moves the event back to Pending with an explanation in
// modification_comments.  Used both for a Modify decision and for a
// failed allocation.
func (r *EventRepo) BounceTx(ctx context.Context, tx *sql.Tx, id uint64, from workflow.Status, comments string) error {
	const q = `UPDATE events SET status = ?, modification_comments = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, q, string(workflow.StatusPending), comments, id, string(from))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDecisionSuperseded
	}
	return nil
}

// CompleteTx marks the event Completed.  Only events that reached
// Approved (or were flipped to Running) may complete; the guard keeps
// a double completion from releasing resources twice.
func (r *EventRepo) CompleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE events SET status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status IN (?, ?)`
	res, err := tx.ExecContext(ctx, q, string(workflow.StatusCompleted), id,
		string(workflow.StatusApproved), string(workflow.StatusRunning))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDecisionSuperseded
	}
	return nil
}

// StatusCounts aggregates event counts for the dashboard.
type StatusCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
}

// CountByStatus computes dashboard counters under the same role
// filter as ListForViewer.  "Pending" aggregates every pre-approval
// status including the three review tiers.
func (r *EventRepo) CountByStatus(ctx context.Context, role workflow.Role, userID uint64, departmentID, schoolID string) (StatusCounts, error) {
	q := `SELECT
	        COUNT(*),
	        COALESCE(SUM(status IN ('Pending','HOD_Review','Dean_Review','Head_Review')), 0),
	        COALESCE(SUM(status = 'Approved'), 0),
	        COALESCE(SUM(status = 'Running'), 0),
	        COALESCE(SUM(status = 'Completed'), 0)
	      FROM events`
	var args []interface{}
	switch role {
	case workflow.RoleCoordinator:
		q += ` WHERE coordinator_id = ?`
		args = append(args, userID)
	case workflow.RoleHOD:
		q += ` WHERE department_id = ?`
		args = append(args, departmentID)
	case workflow.RoleDean:
		q += ` WHERE school_id = ?`
		args = append(args, schoolID)
	}
	var c StatusCounts
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&c.Total, &c.Pending, &c.Approved, &c.Running, &c.Completed)
	return c, err
}
