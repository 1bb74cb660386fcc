package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/iliyamo/campus-event-allocation/internal/model"
)

// VenueRepo provides data access for venues.  Claiming a venue is a
// find-and-occupy performed under a row lock inside the allocator's
// transaction, so two events can never claim the same venue.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo returns a VenueRepo bound to the given database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

const venueColumns = `id, name, capacity, type, availability_status, features, created_at, updated_at`

func scanVenue(row interface{ Scan(...interface{}) error }) (*model.Venue, error) {
	var (
		v        model.Venue
		vtype    sql.NullString
		features []byte
	)
	err := row.Scan(&v.ID, &v.Name, &v.Capacity, &vtype, &v.AvailabilityStatus,
		&features, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.Type = vtype.String
	if len(features) > 0 {
		// features is a JSON array column; a decode failure leaves the
		// slice empty rather than failing the whole read.
		_ = json.Unmarshal(features, &v.Features)
	}
	return &v, nil
}

// Create inserts a new venue, Available by default.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	if v.AvailabilityStatus == "" {
		v.AvailabilityStatus = model.VenueAvailable
	}
	features, err := json.Marshal(v.Features)
	if err != nil {
		return err
	}
	const q = `INSERT INTO venues (name, capacity, type, availability_status, features)
	           VALUES (?, ?, ?, ?, ?)`
	out, err := r.db.ExecContext(ctx, q, v.Name, v.Capacity, v.Type, v.AvailabilityStatus, features)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := scanVenue(r.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id))
	if err != nil {
		return err
	}
	*v = *stored
	return nil
}

// List returns all venues ordered by id.
func (r *VenueRepo) List(ctx context.Context) ([]*model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one venue.  ErrVenueNotFound is returned when the
// id does not resolve.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	v, err := scanVenue(r.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	return v, err
}

// ClaimSuitableTx finds the first Available venue that can seat the
// given participant count and flips it to Occupied, all under a row
// lock inside the caller's transaction.  ErrNoVenueAvailable is
// returned when nothing qualifies.
func (r *VenueRepo) ClaimSuitableTx(ctx context.Context, tx *sql.Tx, participants int) (*model.Venue, error) {
	const sel = `SELECT ` + venueColumns + ` FROM venues
	             WHERE capacity >= ? AND availability_status = ?
	             ORDER BY id LIMIT 1 FOR UPDATE`
	v, err := scanVenue(tx.QueryRowContext(ctx, sel, participants, model.VenueAvailable))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoVenueAvailable
	}
	if err != nil {
		return nil, err
	}
	const upd = `UPDATE venues SET availability_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, model.VenueOccupied, v.ID); err != nil {
		return nil, err
	}
	v.AvailabilityStatus = model.VenueOccupied
	return v, nil
}

// ReleaseTx marks a venue Available again when its event completes.
func (r *VenueRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, venueID uint64) error {
	const q = `UPDATE venues SET availability_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, model.VenueAvailable, venueID)
	return err
}

// Counts returns the total and currently Available venue counts for
// the dashboard.
func (r *VenueRepo) Counts(ctx context.Context) (total, available int, err error) {
	const q = `SELECT COUNT(*), COALESCE(SUM(availability_status = ?), 0) FROM venues`
	err = r.db.QueryRowContext(ctx, q, model.VenueAvailable).Scan(&total, &available)
	return total, available, err
}
