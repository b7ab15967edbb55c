package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adlicense.backend/internal/interfaces/http/handlers"
	"adlicense.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	kycHandler     *handlers.KYCHandler
	pricingHandler *handlers.PricingHandler
	paymentHandler *handlers.PaymentHandler
	licenseHandler *handlers.LicenseHandler
	adminHandler   *handlers.AdminHandler
	authMiddleware gin.HandlerFunc
	requireProfile gin.HandlerFunc
	requireKYC     gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/google", d.authHandler.GoogleSignIn)
		}
		v1.POST("/admin/auth/login", d.authHandler.AdminLogin)

		// Pricing routes (public)
		plans := v1.Group("/plans")
		{
			plans.GET("", d.pricingHandler.ListPlans)
			plans.GET("/:id", d.pricingHandler.GetPlan)
			plans.POST("/calculate", d.pricingHandler.CalculatePrice)
		}
		v1.GET("/discounts/:code/validate", d.pricingHandler.ValidateDiscount)

		// License activation (public, called by the extension)
		v1.POST("/licenses/activate", d.licenseHandler.Activate)

		// User routes (protected)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("/me", d.userHandler.GetProfile)
			users.POST("/me/profile", d.userHandler.CompleteProfile)
			users.GET("/me/dashboard", d.userHandler.GetDashboard)
		}

		// KYC routes (protected, submission needs a completed profile)
		kyc := v1.Group("/kyc")
		kyc.Use(d.authMiddleware)
		{
			kyc.POST("", d.requireProfile, d.kycHandler.Submit)
			kyc.GET("/status", d.kycHandler.Status)
		}

		// Payment routes (protected, purchases need verified KYC)
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("", d.requireKYC, middleware.IdempotencyMiddleware(), d.paymentHandler.Create)
			payments.GET("", d.paymentHandler.ListMine)
			payments.POST("/:id/proof", d.paymentHandler.UploadProof)
			payments.POST("/process-online", middleware.IdempotencyMiddleware(), d.paymentHandler.ProcessOnline)
		}

		// License routes (protected)
		licenses := v1.Group("/licenses")
		licenses.Use(d.authMiddleware)
		{
			licenses.GET("", d.licenseHandler.ListMine)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/stats", d.adminHandler.Stats)
			admin.GET("/users", d.adminHandler.ListUsers)

			admin.GET("/kyc/pending", d.adminHandler.ListPendingKYC)
			admin.POST("/kyc/review", d.adminHandler.ReviewKYC)

			admin.GET("/payments", d.adminHandler.ListPayments)
			admin.POST("/payments/review", d.adminHandler.ReviewPayment)

			admin.GET("/licenses", d.adminHandler.ListLicenses)
			admin.POST("/licenses/:id/revoke", d.adminHandler.RevokeLicense)

			admin.PUT("/plans", d.adminHandler.UpdatePlan)

			admin.GET("/discounts", d.adminHandler.ListDiscounts)
			admin.POST("/discounts", d.adminHandler.CreateDiscount)
			admin.POST("/discounts/toggle", d.adminHandler.ToggleDiscount)
		}
	}
}

// applyCORSMiddleware allows the configured frontends to call the API.
// With no origins configured every origin is echoed back.
func applyCORSMiddleware(r *gin.Engine, origins ...string) {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o != "" {
			allowed[o] = true
		}
	}

	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (len(allowed) == 0 || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "adlicense-backend",
			"version": "0.1.0",
		})
	})
}
