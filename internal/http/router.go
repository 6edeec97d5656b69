package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	intconfig "transferhub/internal/config"
	h "transferhub/internal/http/handlers"
	"transferhub/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Admin back office
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(env.JWTSecret), middleware.RequireRoles("admin"))
		admin.GET("/AllAdminRecords", h.AllAdminRecords)
		admin.POST("/create", h.CreateAdmin)
		admin.PUT("/UpdateAdmin/:id", h.UpdateAdmin)
		admin.DELETE("/DestroyAdmin/:email", h.DestroyAdmin)
		admin.GET("/GetAllBooking", h.GetAllBooking)
		admin.GET("/Registrations", h.ListRegistrations)
		admin.PUT("/ApproveRegistration/:email", h.ApproveRegistration)

		// Payments
		payment := api.Group("/payment")
		payment.Use(middleware.Auth(env.JWTSecret))
		payment.PUT("/ChangePaymentStatusByBookingId/:id",
			middleware.RequireRoles("admin"), h.ChangePaymentStatusByBookingID)
		payment.GET("/invoices/:id/download", h.DownloadInvoice)
		payment.GET("/Voucher/:id/download", h.DownloadVoucher)

		// Agent
		agent := api.Group("/agent")
		mountSignup(agent, "agent")
		agentAuth := agent.Group("")
		agentAuth.Use(middleware.Auth(env.JWTSecret), middleware.RequireRoles("agent", "admin"))
		agentAuth.GET("/GetBookingByAgentId/:id", h.GetBookingByAgentID)

		// Supplier
		supplier := api.Group("/supplier")
		mountSignup(supplier, "supplier")
		supplierAuth := supplier.Group("")
		supplierAuth.Use(middleware.Auth(env.JWTSecret), middleware.RequireRoles("supplier", "admin"))
		supplierAuth.GET("/GetBookingBySupplierId/:id", h.GetBookingBySupplierID)
		supplierAuth.PUT("/ChangeBookingStatusByBookingId/:id", h.ChangeBookingStatusByBookingID)
		supplierAuth.PUT("/AssignDriverToBooking/:id", h.AssignDriverToBooking)
		supplierAuth.POST("/SendDriverReminders/:id", h.SendDriverReminders)

		supplierAuth.GET("/vehicles", h.GetVehicles)
		supplierAuth.POST("/vehicles", h.CreateVehicle)
		supplierAuth.PUT("/vehicles/:id", h.UpdateVehicle)
		supplierAuth.DELETE("/vehicles/:id", h.DeleteVehicle)
		supplierAuth.GET("/vehicle-brands", h.GetVehicleBrands)
		supplierAuth.GET("/vehicle-types", h.GetVehicleTypes)
		supplierAuth.GET("/vehicle-models", h.GetVehicleModels)

		supplierAuth.GET("/zones", h.GetZones)
		supplierAuth.POST("/zones", h.CreateZone)
		supplierAuth.PUT("/zones/:id", h.UpdateZone)
		supplierAuth.DELETE("/zones/:id", h.DeleteZone)

		supplierAuth.GET("/transfers", h.GetTransfers)
		supplierAuth.POST("/transfers", h.CreateTransfer)
		supplierAuth.PUT("/transfers/:id", h.UpdateTransfer)
		supplierAuth.DELETE("/transfers/:id", h.DeleteTransfer)
	}

	return r
}

// mountSignup adds the pre-auth registration and OTP routes shared by the
// agent and supplier groups.
func mountSignup(g *gin.RouterGroup, role string) {
	g.POST("/RegisterApplication", h.RegisterApplication(role))
	g.POST("/AttachLicence", h.AttachLicence)
	g.POST("/RequestOtp", h.RequestOTP)
	g.POST("/VerifyOtp", h.VerifyOTP)
}
