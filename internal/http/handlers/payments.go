package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transferhub/internal/http/middleware"
	"transferhub/internal/services"
)

type paymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/payment/ChangePaymentStatusByBookingId/:id
func ChangePaymentStatusByBookingID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	var req paymentStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	payment, err := svc.ChangeStatusByBookingID(id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{RequestID: middleware.GetRequestID(c)}
}

func servePDF(c *gin.Context, data []byte, filename string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// GET /api/payment/Voucher/:id/download
func DownloadVoucher(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	data, filename, err := docsService(c).GenerateVoucher(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, data, filename)
}

// GET /api/payment/invoices/:id/download
func DownloadInvoice(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	data, filename, err := docsService(c).GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, data, filename)
}
