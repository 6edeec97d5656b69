package services

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"transferhub/internal/domain"
	"transferhub/internal/domain/models"
	"transferhub/internal/notify"
	"transferhub/internal/repositories"
	"transferhub/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxLicenceSize = 10 << 20 // 10 MiB

// RegistrationService handles agent/supplier signup applications, the
// licence document upload, and admin approval into a live account.
type RegistrationService struct {
	RegistrationRepo repositories.RegistrationRepository
	UserRepo         repositories.UserRepository
	OTP              OTPService
	Mailer           notify.Mailer
	UploadDir        string
	RequestID        string
}

type RegistrationInput struct {
	Role        string
	CompanyName string
	ContactName string
	Email       string
	Phone       string
	City        string
	Country     string
}

// Apply stores a new application and sends the verification code. The
// licence file is optional at apply time; suppliers must attach it before
// an admin activates them.
func (s RegistrationService) Apply(in RegistrationInput, licence *multipart.FileHeader) (models.Registration, error) {
	role, ok := domain.ParseRole(in.Role)
	if !ok || role == domain.RoleAdmin {
		return models.Registration{}, domain.ValidationError{Field: "role", Msg: "must be agent or supplier"}
	}
	if utils.TrimOrEmpty(in.Email) == "" {
		return models.Registration{}, domain.ValidationError{Field: "email", Msg: "required"}
	}
	if utils.TrimOrEmpty(in.ContactName) == "" {
		return models.Registration{}, domain.ValidationError{Field: "contact_name", Msg: "required"}
	}

	stored := ""
	if licence != nil {
		name, err := s.saveLicence(licence)
		if err != nil {
			return models.Registration{}, err
		}
		stored = name
	}

	reg := models.Registration{
		Role:        string(role),
		CompanyName: utils.TrimOrEmpty(in.CompanyName),
		ContactName: utils.TrimOrEmpty(in.ContactName),
		Email:       strings.ToLower(utils.TrimOrEmpty(in.Email)),
		Phone:       utils.TrimOrEmpty(in.Phone),
		City:        utils.TrimOrEmpty(in.City),
		Country:     utils.TrimOrEmpty(in.Country),
		LicenceFile: stored,
	}

	id, err := s.RegistrationRepo.Create(reg)
	if err != nil {
		return models.Registration{}, err
	}
	reg.ID = id

	utils.LogEvent(s.RequestID, "registration", "apply", "email="+reg.Email+" role="+reg.Role)

	if err := s.OTP.Issue(reg.Email); err != nil {
		// Application stays; the applicant can re-request the code.
		utils.LogEvent(s.RequestID, "registration", "otp_send_failed", err.Error())
	}
	return reg, nil
}

// AttachLicence stores a licence document for an existing application.
func (s RegistrationService) AttachLicence(email string, licence *multipart.FileHeader) error {
	if licence == nil {
		return domain.ValidationError{Field: "licence", Msg: "file required"}
	}
	if _, err := s.RegistrationRepo.GetByEmail(email); err != nil {
		return err
	}

	stored, err := s.saveLicence(licence)
	if err != nil {
		return err
	}
	return s.RegistrationRepo.UpdateLicenceFile(email, stored)
}

// Approve turns a verified application into a live account. Suppliers
// must have a licence document on file. A generated temporary password is
// emailed to the applicant.
func (s RegistrationService) Approve(email string) (models.Registration, error) {
	reg, err := s.RegistrationRepo.GetByEmail(email)
	if err != nil {
		return models.Registration{}, err
	}
	if !reg.EmailVerified {
		return models.Registration{}, domain.ConflictError{Resource: "registration", Msg: "email not verified yet"}
	}
	if reg.Status == "approved" {
		return models.Registration{}, domain.ConflictError{Resource: "registration", Msg: "already approved"}
	}
	if reg.Role == string(domain.RoleSupplier) && reg.LicenceFile == "" {
		return models.Registration{}, domain.ConflictError{Resource: "registration", Msg: "licence document missing"}
	}

	tempPassword := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.Registration{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	if _, err := s.UserRepo.Create(reg.ContactName, reg.Email, reg.Phone, string(hash), reg.Role); err != nil {
		return models.Registration{}, err
	}
	if err := s.RegistrationRepo.UpdateStatus(reg.Email, "approved"); err != nil {
		return models.Registration{}, err
	}
	reg.Status = "approved"

	utils.LogEvent(s.RequestID, "registration", "approve", "email="+reg.Email+" role="+reg.Role)

	if s.Mailer != nil {
		body := "Your account has been activated. Temporary password: " + tempPassword +
			"\nPlease change it after your first login."
		if err := s.Mailer.Send(reg.Email, "Account activated", body); err != nil {
			utils.LogEvent(s.RequestID, "registration", "approve_mail_failed", err.Error())
		}
	}
	return reg, nil
}

func (s RegistrationService) saveLicence(fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxLicenceSize {
		return "", domain.ValidationError{Field: "licence", Msg: "file exceeds 10MB"}
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return "", domain.ValidationError{Field: "licence", Msg: "only PDF documents are accepted"}
	}

	src, err := fh.Open()
	if err != nil {
		return "", domain.InternalError{Msg: "failed to read upload", Err: err}
	}
	defer src.Close()

	dir := s.UploadDir
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", domain.InternalError{Msg: "failed to prepare upload dir", Err: err}
	}

	stored := uuid.NewString() + ".pdf"
	dst, err := os.Create(filepath.Join(dir, stored))
	if err != nil {
		return "", domain.InternalError{Msg: "failed to store upload", Err: err}
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", domain.InternalError{Msg: "failed to store upload", Err: err}
	}
	return stored, nil
}
