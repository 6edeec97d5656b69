package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "transferhub/internal/config"
	"transferhub/internal/domain"
	"transferhub/internal/domain/models"
)

type RegistrationRepository struct {
	DB *sql.DB
}

func (r RegistrationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const registrationSelect = `
	SELECT id,
	       COALESCE(role,''),
	       COALESCE(company_name,''),
	       COALESCE(contact_name,''),
	       COALESCE(email,''),
	       COALESCE(phone,''),
	       COALESCE(city,''),
	       COALESCE(country,''),
	       COALESCE(licence_file,''),
	       COALESCE(email_verified,0),
	       COALESCE(status,'pending'),
	       COALESCE(created_at,'')
	FROM registrations`

func scanRegistration(row interface{ Scan(...any) error }) (models.Registration, error) {
	var reg models.Registration
	err := row.Scan(&reg.ID, &reg.Role, &reg.CompanyName, &reg.ContactName,
		&reg.Email, &reg.Phone, &reg.City, &reg.Country,
		&reg.LicenceFile, &reg.EmailVerified, &reg.Status, &reg.CreatedAt)
	return reg, err
}

func (r RegistrationRepository) Create(reg models.Registration) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "db not available"}
	}

	email := strings.ToLower(strings.TrimSpace(reg.Email))

	var exists int
	if err := db.QueryRow(`SELECT COUNT(*) FROM registrations WHERE email=?`, email).Scan(&exists); err != nil {
		return 0, err
	}
	if exists > 0 {
		return 0, domain.ConflictError{Resource: "registration", Msg: "email already applied"}
	}

	res, err := db.Exec(`
		INSERT INTO registrations (role, company_name, contact_name, email, phone, city, country,
		                           licence_file, email_verified, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 'pending', NOW())`,
		reg.Role, reg.CompanyName, reg.ContactName, email, reg.Phone, reg.City, reg.Country,
		reg.LicenceFile)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAll returns every application for the admin review screen.
func (r RegistrationRepository) ListAll() ([]models.Registration, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(registrationSelect + " ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Registration{}
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r RegistrationRepository) GetByEmail(email string) (models.Registration, error) {
	db := r.db()
	if db == nil {
		return models.Registration{}, domain.InternalError{Msg: "db not available"}
	}

	reg, err := scanRegistration(db.QueryRow(registrationSelect+" WHERE email=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(email))))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Registration{}, domain.NotFoundError{Resource: "registration"}
	}
	return reg, err
}

func (r RegistrationRepository) MarkEmailVerified(email string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`UPDATE registrations SET email_verified=1 WHERE email=?`,
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "registration"}
	}
	return nil
}

func (r RegistrationRepository) UpdateStatus(email, status string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`UPDATE registrations SET status=? WHERE email=?`,
		status, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "registration"}
	}
	return nil
}

func (r RegistrationRepository) UpdateLicenceFile(email, storedName string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`UPDATE registrations SET licence_file=? WHERE email=?`,
		storedName, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "registration"}
	}
	return nil
}

// OTPRepository stores one-time passcodes for email verification.
type OTPRepository struct {
	DB *sql.DB
}

func (r OTPRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r OTPRepository) InvalidateForEmail(email string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}
	_, err := db.Exec(`UPDATE otp_codes SET used=1 WHERE email=? AND used=0`,
		strings.ToLower(strings.TrimSpace(email)))
	return err
}

func (r OTPRepository) Insert(email, codeHash, expiresAt string) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		INSERT INTO otp_codes (email, code_hash, expires_at, used, attempts, created_at)
		VALUES (?, ?, ?, 0, 0, NOW())`,
		strings.ToLower(strings.TrimSpace(email)), codeHash, expiresAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Latest returns the newest unused code for an email, if any.
func (r OTPRepository) Latest(email string) (models.OTPRecord, error) {
	db := r.db()
	if db == nil {
		return models.OTPRecord{}, domain.InternalError{Msg: "db not available"}
	}

	var rec models.OTPRecord
	err := db.QueryRow(`
		SELECT id, email, code_hash, COALESCE(expires_at,''), used, attempts, COALESCE(created_at,'')
		FROM otp_codes
		WHERE email=? AND used=0
		ORDER BY id DESC
		LIMIT 1`, strings.ToLower(strings.TrimSpace(email))).Scan(
		&rec.ID, &rec.Email, &rec.CodeHash, &rec.ExpiresAt, &rec.Used, &rec.Attempts, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.OTPRecord{}, domain.NotFoundError{Resource: "otp"}
	}
	return rec, err
}

func (r OTPRepository) MarkUsed(id int64) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}
	_, err := db.Exec(`UPDATE otp_codes SET used=1 WHERE id=?`, id)
	return err
}

func (r OTPRepository) IncrementAttempts(id int64) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}
	_, err := db.Exec(`UPDATE otp_codes SET attempts=attempts+1 WHERE id=?`, id)
	return err
}
