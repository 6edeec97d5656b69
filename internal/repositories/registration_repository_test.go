package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"transferhub/internal/domain"
	"transferhub/internal/domain/models"
)

func TestRegistrationCreateRejectsDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM registrations WHERE email=\\?").
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err = RegistrationRepository{DB: db}.Create(models.Registration{
		Role:        "agent",
		ContactName: "Ann Lee",
		Email:       "Ann@Example.com",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegistrationGetByEmailNormalizes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "role", "company_name", "contact_name", "email", "phone",
		"city", "country", "licence_file", "email_verified", "status", "created_at"}
	mock.ExpectQuery("FROM registrations WHERE email=\\?").
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			1, "supplier", "Acme", "Ann Lee", "ann@example.com", "",
			"Amsterdam", "NL", "f.pdf", 1, "pending", "2025-03-01 10:00:00"))

	reg, err := RegistrationRepository{DB: db}.GetByEmail("  Ann@Example.com ")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if !reg.EmailVerified || reg.Role != "supplier" {
		t.Fatalf("unexpected registration: %+v", reg)
	}
}

func TestOTPLatestNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM otp_codes").
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "code_hash", "expires_at", "used", "attempts", "created_at"}))

	if _, err := (OTPRepository{DB: db}).Latest("ann@example.com"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRegistrationUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE registrations SET status=\\? WHERE email=\\?").
		WithArgs("approved", "ann@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (RegistrationRepository{DB: db}).UpdateStatus("ann@example.com", "approved"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
