package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/campus-event-allocation/internal/model"
)

// ApprovalLogRepo provides access to the append-only approval audit
// trail.  Entries are only ever inserted; there is no update or
// delete path.
type ApprovalLogRepo struct {
	db *sql.DB
}

// NewApprovalLogRepo returns an ApprovalLogRepo bound to the given database.
func NewApprovalLogRepo(db *sql.DB) *ApprovalLogRepo { return &ApprovalLogRepo{db: db} }

// CreateTx appends one audit entry inside the caller's transaction.
// The decide flow writes the entry before mutating the event record.
func (r *ApprovalLogRepo) CreateTx(ctx context.Context, tx *sql.Tx, l *model.ApprovalLog) error {
	const q = `INSERT INTO approval_logs (event_id, approved_by, role, decision, comments)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, l.EventID, l.ApprovedBy, string(l.Role), string(l.Decision), l.Comments)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// LogDetail is an audit entry joined with the deciding user's name,
// as shown on the event detail view.
type LogDetail struct {
	ID           uint64 `json:"id"`
	ApprovedBy   uint64 `json:"approved_by"`
	ApproverName string `json:"approver_name"`
	Role         string `json:"role"`
	Decision     string `json:"decision"`
	Comments     string `json:"comments,omitempty"`
	Timestamp    string `json:"timestamp"`
}

// ListByEvent returns the event's audit trail in decision order.
func (r *ApprovalLogRepo) ListByEvent(ctx context.Context, eventID uint64) ([]LogDetail, error) {
	const q = `SELECT l.id, l.approved_by, u.name, l.role, l.decision, l.comments, l.created_at
	           FROM approval_logs l
	           JOIN users u ON u.id = l.approved_by
	           WHERE l.event_id = ?
	           ORDER BY l.created_at, l.id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LogDetail, 0)
	for rows.Next() {
		var (
			d        LogDetail
			comments sql.NullString
			ts       sql.NullTime
		)
		if err := rows.Scan(&d.ID, &d.ApprovedBy, &d.ApproverName, &d.Role, &d.Decision, &comments, &ts); err != nil {
			return nil, err
		}
		d.Comments = comments.String
		if ts.Valid {
			d.Timestamp = ts.Time.UTC().Format(time.RFC3339)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
