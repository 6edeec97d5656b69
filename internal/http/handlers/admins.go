package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"transferhub/internal/domain/models"
	"transferhub/internal/http/middleware"
	"transferhub/internal/repositories"
	"transferhub/internal/services"
	"transferhub/internal/utils"
)

// GET /api/admin/AllAdminRecords
func AllAdminRecords(c *gin.Context) {
	admins, err := repositories.AdminRepository{}.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.PageOf(services.AdminSchema(), admins, ListParams(c)))
}

// POST /api/admin/create
func CreateAdmin(c *gin.Context) {
	var in models.AdminInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if len(in.Password) < 8 {
		RespondError(c, http.StatusBadRequest, "password must be at least 8 characters", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	id, err := repositories.AdminRepository{}.Create(in, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "admin", "create", "email="+in.Email)
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "admin created"})
}

// PUT /api/admin/UpdateAdmin/:id
func UpdateAdmin(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	var in models.AdminInput
	if !BindJSONOrError(c, &in) {
		return
	}

	if err := (repositories.AdminRepository{}).Update(id, in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "admin updated"})
}

// DELETE /api/admin/DestroyAdmin/:email
func DestroyAdmin(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		RespondError(c, http.StatusBadRequest, "email required", nil)
		return
	}

	if err := (repositories.AdminRepository{}).DeleteByEmail(email); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "admin", "destroy", "email="+email)
	c.JSON(http.StatusOK, gin.H{"message": "admin deleted"})
}
