package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	intconfig "transferhub/internal/config"
	"transferhub/internal/domain"
	"transferhub/internal/repositories"
)

var env intconfig.Env

// Configure stores process config for handlers that need it (JWT secret,
// upload dir, SMTP) and builds the shared mailer. Called once from the
// router.
func Configure(e intconfig.Env) {
	env = e
	appMailer = newMailer(e)
}

// AuthUser is the user payload returned after login.
type AuthUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	account, err := repositories.UserRepository{}.GetByEmail(req.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}
	if account.Status != "active" {
		RespondError(c, http.StatusForbidden, "account is not active", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": account.ID,
		"role":    account.Role,
		"email":   account.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(env.JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"user": AuthUser{
			ID:    account.ID,
			Name:  account.Name,
			Email: account.Email,
			Phone: account.Phone,
			Role:  account.Role,
		},
	})
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok || role == domain.RoleAdmin {
		RespondError(c, http.StatusBadRequest, "role must be agent or supplier", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	id, err := repositories.UserRepository{}.Create(req.Name, req.Email, req.Phone, string(hash), string(role))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registered",
		"user": AuthUser{
			ID:    id,
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
			Role:  string(role),
		},
	})
}
