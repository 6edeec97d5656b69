package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transferhub/internal/domain/models"
	"transferhub/internal/http/middleware"
	"transferhub/internal/services"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/admin/GetAllBooking
func GetAllBooking(c *gin.Context) {
	page, err := bookingService(c).ListAll(ListParams(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/agent/GetBookingByAgentId/:id
func GetBookingByAgentID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	page, err := bookingService(c).ListByAgent(id, ListParams(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/supplier/GetBookingBySupplierId/:id
func GetBookingBySupplierID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	page, err := bookingService(c).ListBySupplier(id, ListParams(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// PUT /api/supplier/ChangeBookingStatusByBookingId/:id
func ChangeBookingStatusByBookingID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	var req models.BookingStatusUpdate
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingService(c).ChangeStatus(id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

type assignDriverRequest struct {
	DriverID int64 `json:"driver_id" binding:"required"`
}

// PUT /api/supplier/AssignDriverToBooking/:id
func AssignDriverToBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	var req assignDriverRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingService(c).AssignDriver(id, req.DriverID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
