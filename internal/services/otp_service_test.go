package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"transferhub/internal/domain"
	"transferhub/internal/repositories"
	"transferhub/internal/utils"
)

var registrationColumns = []string{
	"id", "role", "company_name", "contact_name", "email", "phone",
	"city", "country", "licence_file", "email_verified", "status", "created_at",
}

var otpColumns = []string{"id", "email", "code_hash", "expires_at", "used", "attempts", "created_at"}

func pendingRegistrationRow() *sqlmock.Rows {
	return sqlmock.NewRows(registrationColumns).AddRow(
		1, "agent", "Acme Travel", "Ann Lee", "ann@example.com", "+31600000000",
		"Amsterdam", "NL", "", 0, "pending", "2025-03-01 10:00:00",
	)
}

func otpFixture(t *testing.T) (OTPService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := OTPService{
		OTPRepo:          repositories.OTPRepository{DB: db},
		RegistrationRepo: repositories.RegistrationRepository{DB: db},
		Now: func() time.Time {
			return time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
		},
	}
	return svc, mock, func() { db.Close() }
}

func TestVerifyAcceptsValidCode(t *testing.T) {
	svc, mock, done := otpFixture(t)
	defer done()

	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	expires := utils.FormatDateTime(svc.Now().Add(5 * time.Minute))

	mock.ExpectQuery("FROM otp_codes").
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(otpColumns).
			AddRow(9, "ann@example.com", string(hash), expires, 0, 0, "2025-03-10 08:59:00"))
	mock.ExpectExec("UPDATE otp_codes SET used=1 WHERE id=\\?").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE registrations SET email_verified=1").
		WithArgs("ann@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Verify("ann@example.com", "123456"); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	svc, mock, done := otpFixture(t)
	defer done()

	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	expires := utils.FormatDateTime(svc.Now().Add(-time.Minute))

	mock.ExpectQuery("FROM otp_codes").
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(otpColumns).
			AddRow(9, "ann@example.com", string(hash), expires, 0, 0, "2025-03-10 08:00:00"))
	mock.ExpectExec("UPDATE otp_codes SET used=1 WHERE id=\\?").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Verify("ann@example.com", "123456"); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for expired code, got %v", err)
	}
}

func TestVerifyWrongCodeCountsAttempt(t *testing.T) {
	svc, mock, done := otpFixture(t)
	defer done()

	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	expires := utils.FormatDateTime(svc.Now().Add(5 * time.Minute))

	mock.ExpectQuery("FROM otp_codes").
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(otpColumns).
			AddRow(9, "ann@example.com", string(hash), expires, 0, 1, "2025-03-10 08:59:00"))
	mock.ExpectExec("UPDATE otp_codes SET attempts=attempts\\+1 WHERE id=\\?").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Verify("ann@example.com", "654321"); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for wrong code, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyLocksAfterMaxAttempts(t *testing.T) {
	svc, mock, done := otpFixture(t)
	defer done()

	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	expires := utils.FormatDateTime(svc.Now().Add(5 * time.Minute))

	mock.ExpectQuery("FROM otp_codes").
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(otpColumns).
			AddRow(9, "ann@example.com", string(hash), expires, 0, 3, "2025-03-10 08:59:00"))
	mock.ExpectExec("UPDATE otp_codes SET used=1 WHERE id=\\?").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Even with the correct code the record is burned after three misses.
	if err := svc.Verify("ann@example.com", "123456"); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized after max attempts, got %v", err)
	}
}

func TestIssueRejectsRapidResend(t *testing.T) {
	svc, mock, done := otpFixture(t)
	defer done()

	mock.ExpectQuery("FROM registrations WHERE email=\\?").
		WithArgs("ann@example.com").
		WillReturnRows(pendingRegistrationRow())
	mock.ExpectQuery("FROM otp_codes").
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(otpColumns).
			AddRow(9, "ann@example.com", "x", "2025-03-10 09:10:00", 0, 0,
				utils.FormatDateTime(svc.Now().Add(-30*time.Second))))

	if err := svc.Issue("ann@example.com"); !domain.IsConflict(err) {
		t.Fatalf("expected conflict inside resend window, got %v", err)
	}
}

func TestIssueRejectsVerifiedEmail(t *testing.T) {
	svc, mock, done := otpFixture(t)
	defer done()

	verified := sqlmock.NewRows(registrationColumns).AddRow(
		1, "agent", "Acme Travel", "Ann Lee", "ann@example.com", "+31600000000",
		"Amsterdam", "NL", "", 1, "pending", "2025-03-01 10:00:00",
	)
	mock.ExpectQuery("FROM registrations WHERE email=\\?").
		WithArgs("ann@example.com").
		WillReturnRows(verified)

	if err := svc.Issue("ann@example.com"); !domain.IsConflict(err) {
		t.Fatalf("expected conflict for verified email, got %v", err)
	}
}
