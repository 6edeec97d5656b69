package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "transferhub/internal/config"
	"transferhub/internal/domain"
	"transferhub/internal/domain/models"
)

// AdminRepository manages admin accounts inside the shared users table.
type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const adminSelect = `
	SELECT id,
	       COALESCE(name,''),
	       COALESCE(email,''),
	       COALESCE(phone,''),
	       COALESCE(status,''),
	       COALESCE(can_manage_admins,0),
	       COALESCE(can_manage_bookings,0),
	       COALESCE(can_manage_payments,0),
	       COALESCE(can_manage_suppliers,0)
	FROM users`

func (r AdminRepository) ListAll() ([]models.Admin, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(adminSelect + " WHERE role='admin' ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Admin{}
	for rows.Next() {
		var a models.Admin
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Status,
			&a.CanManageAdmins, &a.CanManageBookings, &a.CanManagePayments, &a.CanManageSuppliers); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r AdminRepository) Create(in models.AdminInput, passwordHash string) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "db not available"}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	var exists int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email=?`, email).Scan(&exists); err != nil {
		return 0, err
	}
	if exists > 0 {
		return 0, domain.ConflictError{Resource: "admin", Msg: "email already registered"}
	}

	res, err := db.Exec(`
		INSERT INTO users (name, email, phone, password_hash, role, status,
		                   can_manage_admins, can_manage_bookings, can_manage_payments, can_manage_suppliers,
		                   created_at, updated_at)
		VALUES (?, ?, ?, ?, 'admin', 'active', ?, ?, ?, ?, NOW(), NOW())`,
		in.Name, email, in.Phone, passwordHash,
		in.CanManageAdmins, in.CanManageBookings, in.CanManagePayments, in.CanManageSuppliers)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r AdminRepository) Update(id int64, in models.AdminInput) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		UPDATE users
		SET name=?, phone=?,
		    can_manage_admins=?, can_manage_bookings=?, can_manage_payments=?, can_manage_suppliers=?,
		    updated_at=NOW()
		WHERE id=? AND role='admin'`,
		in.Name, in.Phone,
		in.CanManageAdmins, in.CanManageBookings, in.CanManagePayments, in.CanManageSuppliers,
		id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "admin"}
	}
	return nil
}

// DeleteByEmail removes an admin account; the external contract keys this
// operation by email rather than id.
func (r AdminRepository) DeleteByEmail(email string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`DELETE FROM users WHERE email=? AND role='admin'`,
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "admin"}
	}
	return nil
}

// UserRepository handles credential lookup for login across all roles.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

type UserAccount struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	Status       string
}

func (r UserRepository) GetByEmail(email string) (UserAccount, error) {
	db := r.db()
	if db == nil {
		return UserAccount{}, domain.InternalError{Msg: "db not available"}
	}

	var u UserAccount
	err := db.QueryRow(`
		SELECT id, COALESCE(name,''), email, COALESCE(phone,''), password_hash,
		       COALESCE(role,''), COALESCE(status,'')
		FROM users
		WHERE email=?
		LIMIT 1`, strings.ToLower(strings.TrimSpace(email))).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return UserAccount{}, domain.UnauthorizedError{Msg: "invalid email or password"}
	}
	return u, err
}

// ListByRole returns active accounts with the given role; the reminder
// scheduler uses it to walk suppliers.
func (r UserRepository) ListByRole(role string) ([]UserAccount, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(`
		SELECT id, COALESCE(name,''), email, COALESCE(phone,''), password_hash,
		       COALESCE(role,''), COALESCE(status,'')
		FROM users
		WHERE role=? AND status='active'
		ORDER BY id`, strings.ToLower(strings.TrimSpace(role)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []UserAccount{}
	for rows.Next() {
		var u UserAccount
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.Status); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) Create(name, email, phone, passwordHash, role string) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "db not available"}
	}

	email = strings.ToLower(strings.TrimSpace(email))

	var exists int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email=?`, email).Scan(&exists); err != nil {
		return 0, err
	}
	if exists > 0 {
		return 0, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	res, err := db.Exec(`
		INSERT INTO users (name, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 'active', NOW(), NOW())`,
		name, email, phone, passwordHash, role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
