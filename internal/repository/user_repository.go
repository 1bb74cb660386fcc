package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/campus-event-allocation/internal/model"
	"github.com/iliyamo/campus-event-allocation/internal/utils"
)

// UserRepo provides data access for application users.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, name, email, password_hash, role, department_id, school_id, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (model.User, error) {
	var (
		u      model.User
		dept   sql.NullString
		school sql.NullString
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&dept, &school, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	u.DepartmentID = dept.String
	u.SchoolID = school.String
	return u, err
}

// Create inserts a user with a bcrypt-hashed password and returns the
// new ID.  Duplicate emails map to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role, departmentID, schoolID string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role, department_id, school_id) VALUES (?,?,?,?,?,?)",
		name, email, hash, role, departmentID, schoolID)
	if err != nil {
		// 1062 is MySQL's duplicate-key error code.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// NameByID returns just the display name for a user, used when
// enriching notification payloads.  Missing users yield an empty
// string rather than an error.
func (r *UserRepo) NameByID(ctx context.Context, id uint64) (string, error) {
	var name string
	err := r.DB.QueryRowContext(ctx, "SELECT name FROM users WHERE id=? LIMIT 1", id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return name, err
}
