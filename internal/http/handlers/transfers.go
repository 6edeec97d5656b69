package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transferhub/internal/domain/models"
	"transferhub/internal/http/middleware"
	"transferhub/internal/repositories"
	"transferhub/internal/services"
)

// GET /api/supplier/transfers
func GetTransfers(c *gin.Context) {
	transfers, err := repositories.TransferRepository{}.ListBySupplierID(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.PageOf(services.TransferSchema(), transfers, ListParams(c)))
}

// POST /api/supplier/transfers
func CreateTransfer(c *gin.Context) {
	var t models.Transfer
	if !BindJSONOrError(c, &t) {
		return
	}
	if t.VehicleID <= 0 || t.ZoneID <= 0 {
		RespondError(c, http.StatusBadRequest, "vehicle_id and zone_id required", nil)
		return
	}

	// The vehicle must belong to the calling supplier.
	vehicle, err := repositories.VehicleRepository{}.GetByID(t.VehicleID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if vehicle.SupplierID != middleware.GetUserID(c) {
		RespondError(c, http.StatusForbidden, "vehicle belongs to another supplier", nil)
		return
	}

	id, err := repositories.TransferRepository{}.Create(t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	t.ID = id
	c.JSON(http.StatusCreated, gin.H{"transfer": t})
}

// PUT /api/supplier/transfers/:id
func UpdateTransfer(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	var t models.Transfer
	if !BindJSONOrError(c, &t) {
		return
	}
	t.ID = id

	if err := (repositories.TransferRepository{}).Update(t); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transfer": t})
}

// DELETE /api/supplier/transfers/:id
func DeleteTransfer(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	if err := (repositories.TransferRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transfer deleted"})
}
