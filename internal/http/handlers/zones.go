package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transferhub/internal/domain/models"
	"transferhub/internal/http/middleware"
	"transferhub/internal/repositories"
	"transferhub/internal/services"
)

// GET /api/supplier/zones
func GetZones(c *gin.Context) {
	zones, err := repositories.TransferRepository{}.ListZones(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.PageOf(services.ZoneSchema(), zones, ListParams(c)))
}

// POST /api/supplier/zones
func CreateZone(c *gin.Context) {
	var z models.Zone
	if !BindJSONOrError(c, &z) {
		return
	}
	z.SupplierID = middleware.GetUserID(c)

	id, err := repositories.TransferRepository{}.CreateZone(z)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	z.ID = id
	c.JSON(http.StatusCreated, gin.H{"zone": z})
}

// PUT /api/supplier/zones/:id
func UpdateZone(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	var z models.Zone
	if !BindJSONOrError(c, &z) {
		return
	}
	z.ID = id
	z.SupplierID = middleware.GetUserID(c)

	if err := (repositories.TransferRepository{}).UpdateZone(z); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"zone": z})
}

// DELETE /api/supplier/zones/:id
func DeleteZone(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	if err := (repositories.TransferRepository{}).DeleteZone(id, middleware.GetUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "zone deleted"})
}
