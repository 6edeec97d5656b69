package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"transferhub/internal/domain"
	"transferhub/internal/notify"
	"transferhub/internal/repositories"
	"transferhub/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

const (
	otpTTL         = 10 * time.Minute
	otpResendAfter = 60 * time.Second
	otpMaxAttempts = 3
)

// OTPService issues and verifies email verification codes for
// registration. Codes are stored bcrypt-hashed.
type OTPService struct {
	OTPRepo          repositories.OTPRepository
	RegistrationRepo repositories.RegistrationRepository
	Mailer           notify.Mailer
	RequestID        string

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (s OTPService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue generates a fresh code for a pending registration and emails it.
// Re-requests within the resend window are rejected; otherwise previous
// codes are invalidated first.
func (s OTPService) Issue(email string) error {
	reg, err := s.RegistrationRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if reg.EmailVerified {
		return domain.ConflictError{Resource: "otp", Msg: "email already verified"}
	}

	if last, err := s.OTPRepo.Latest(email); err == nil {
		if created, perr := utils.ParseDateTime(last.CreatedAt); perr == nil {
			if s.now().Sub(created) < otpResendAfter {
				return domain.ConflictError{Resource: "otp", Msg: "code requested too recently"}
			}
		}
	}

	if err := s.OTPRepo.InvalidateForEmail(email); err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return domain.InternalError{Msg: "failed to generate code", Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "failed to hash code", Err: err}
	}

	expiresAt := utils.FormatDateTime(s.now().Add(otpTTL))
	if _, err := s.OTPRepo.Insert(email, string(hash), expiresAt); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "otp", "issue", "email="+email)

	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		code, int(otpTTL.Minutes()))
	return s.Mailer.Send(email, "Verify your email", body)
}

// Verify checks a submitted code and marks the registration's email as
// verified on success.
func (s OTPService) Verify(email, code string) error {
	rec, err := s.OTPRepo.Latest(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.UnauthorizedError{Msg: "no active code; request a new one"}
		}
		return err
	}

	if expires, perr := utils.ParseDateTime(rec.ExpiresAt); perr == nil && s.now().After(expires) {
		_ = s.OTPRepo.MarkUsed(rec.ID)
		return domain.UnauthorizedError{Msg: "code expired; request a new one"}
	}

	if rec.Attempts >= otpMaxAttempts {
		_ = s.OTPRepo.MarkUsed(rec.ID)
		return domain.UnauthorizedError{Msg: "too many attempts; request a new code"}
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(code)) != nil {
		_ = s.OTPRepo.IncrementAttempts(rec.ID)
		return domain.UnauthorizedError{Msg: "invalid code"}
	}

	if err := s.OTPRepo.MarkUsed(rec.ID); err != nil {
		return err
	}
	if err := s.RegistrationRepo.MarkEmailVerified(email); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "otp", "verify", "email="+email)
	return nil
}

func generateOTP() (string, error) {
	code := ""
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += n.String()
	}
	return code, nil
}
