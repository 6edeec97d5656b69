package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"transferhub/internal/domain/models"
	"transferhub/internal/http/middleware"
	"transferhub/internal/repositories"
	"transferhub/internal/services"
)

// GET /api/supplier/vehicles
func GetVehicles(c *gin.Context) {
	vehicles, err := repositories.VehicleRepository{}.ListBySupplierID(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.PageOf(services.VehicleSchema(), vehicles, ListParams(c)))
}

// POST /api/supplier/vehicles
func CreateVehicle(c *gin.Context) {
	var v models.Vehicle
	if !BindJSONOrError(c, &v) {
		return
	}
	v.SupplierID = middleware.GetUserID(c)

	id, err := repositories.VehicleRepository{}.Create(v)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	v.ID = id
	c.JSON(http.StatusCreated, gin.H{"vehicle": v})
}

// PUT /api/supplier/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	var v models.Vehicle
	if !BindJSONOrError(c, &v) {
		return
	}
	v.ID = id
	v.SupplierID = middleware.GetUserID(c)

	if err := (repositories.VehicleRepository{}).Update(v); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": v})
}

// DELETE /api/supplier/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	if err := (repositories.VehicleRepository{}).Delete(id, middleware.GetUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}

// GET /api/supplier/vehicle-brands
func GetVehicleBrands(c *gin.Context) {
	brands, err := repositories.VehicleRepository{}.ListBrands()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// GET /api/supplier/vehicle-types
func GetVehicleTypes(c *gin.Context) {
	types, err := repositories.VehicleRepository{}.ListTypes()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"types": types})
}

// GET /api/supplier/vehicle-models?brand_id=N
func GetVehicleModels(c *gin.Context) {
	brandID, _ := strconv.ParseInt(c.Query("brand_id"), 10, 64)
	list, err := repositories.VehicleRepository{}.ListModels(brandID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": list})
}
