package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "transferhub/internal/config"
	"transferhub/internal/http/middleware"
	"transferhub/internal/notify"
	"transferhub/internal/repositories"
	"transferhub/internal/services"
)

// appMailer is built once in Configure; console output until then.
var appMailer notify.Mailer = notify.ConsoleMailer{}

func newMailer(e intconfig.Env) notify.Mailer {
	if e.SMTPHost == "" {
		return notify.ConsoleMailer{}
	}
	return notify.SMTPMailer{Host: e.SMTPHost, Port: e.SMTPPort, From: e.SMTPFrom}
}

func otpService(c *gin.Context) services.OTPService {
	return services.OTPService{
		Mailer:    appMailer,
		RequestID: middleware.GetRequestID(c),
	}
}

func registrationService(c *gin.Context) services.RegistrationService {
	return services.RegistrationService{
		OTP:       otpService(c),
		Mailer:    appMailer,
		UploadDir: env.UploadDir,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/admin/Registrations
func ListRegistrations(c *gin.Context) {
	regs, err := repositories.RegistrationRepository{}.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registrations": regs})
}

// PUT /api/admin/ApproveRegistration/:email
func ApproveRegistration(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		RespondError(c, http.StatusBadRequest, "email required", nil)
		return
	}

	reg, err := registrationService(c).Approve(email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration": reg})
}

// RegisterApplication handles the multipart signup form (with optional
// "licence" PDF attachment) for one role group; mounted under both
// /api/agent and /api/supplier.
func RegisterApplication(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := services.RegistrationInput{
			Role:        role,
			CompanyName: c.PostForm("company_name"),
			ContactName: c.PostForm("contact_name"),
			Email:       c.PostForm("email"),
			Phone:       c.PostForm("phone"),
			City:        c.PostForm("city"),
			Country:     c.PostForm("country"),
		}

		licence, err := c.FormFile("licence")
		if err != nil && err != http.ErrMissingFile {
			RespondError(c, http.StatusBadRequest, "invalid licence upload", err)
			return
		}

		reg, err := registrationService(c).Apply(in, licence)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"registration": reg})
	}
}

// AttachLicence takes a multipart form: email + "licence" PDF.
func AttachLicence(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		RespondError(c, http.StatusBadRequest, "email required", nil)
		return
	}

	licence, err := c.FormFile("licence")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "licence file required", err)
		return
	}

	if err := registrationService(c).AttachLicence(email, licence); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "licence stored"})
}

type otpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST RequestOtp (under /api/agent and /api/supplier)
func RequestOTP(c *gin.Context) {
	var req otpRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := otpService(c).Issue(req.Email); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

type otpVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// POST VerifyOtp (under /api/agent and /api/supplier)
func VerifyOTP(c *gin.Context) {
	var req otpVerifyRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := otpService(c).Verify(req.Email, req.Code); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}
