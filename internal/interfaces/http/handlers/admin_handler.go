package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/interfaces/http/middleware"
	"adlicense.backend/internal/interfaces/http/response"
	"adlicense.backend/internal/usecases"
	"adlicense.backend/pkg/utils"
)

const defaultPageSize = 20

// AdminHandler handles the admin panel endpoints
type AdminHandler struct {
	adminUsecase   *usecases.AdminUsecase
	kycUsecase     *usecases.KYCUsecase
	paymentUsecase *usecases.PaymentUsecase
	licenseUsecase *usecases.LicenseUsecase
	pricingUsecase *usecases.PricingUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	adminUsecase *usecases.AdminUsecase,
	kycUsecase *usecases.KYCUsecase,
	paymentUsecase *usecases.PaymentUsecase,
	licenseUsecase *usecases.LicenseUsecase,
	pricingUsecase *usecases.PricingUsecase,
) *AdminHandler {
	return &AdminHandler{
		adminUsecase:   adminUsecase,
		kycUsecase:     kycUsecase,
		paymentUsecase: paymentUsecase,
		licenseUsecase: licenseUsecase,
		pricingUsecase: pricingUsecase,
	}
}

func pagination(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return utils.GetPaginationParams(page, limit, defaultPageSize)
}

// Stats returns the dashboard counters
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// ListUsers returns a page of registered users
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	p := pagination(c)
	users, total, err := h.adminUsecase.ListUsers(c.Request.Context(), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": utils.CalculateMeta(total, p.Page, p.Limit),
	})
}

// ListPendingKYC returns submissions awaiting review, oldest first
// GET /api/v1/admin/kyc/pending
func (h *AdminHandler) ListPendingKYC(c *gin.Context) {
	pending, err := h.kycUsecase.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, pending)
}

// ReviewKYC approves or declines a pending submission
// POST /api/v1/admin/kyc/review
func (h *AdminHandler) ReviewKYC(c *gin.Context) {
	reviewerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.ReviewKYCInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	verification, err := h.kycUsecase.Review(c.Request.Context(), reviewerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "verification reviewed", verification)
}

// ListPayments returns a page of all payments
// GET /api/v1/admin/payments
func (h *AdminHandler) ListPayments(c *gin.Context) {
	p := pagination(c)
	payments, total, err := h.paymentUsecase.List(c.Request.Context(), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": utils.CalculateMeta(total, p.Page, p.Limit),
	})
}

// ReviewPayment resolves a pending payment
// POST /api/v1/admin/payments/review
func (h *AdminHandler) ReviewPayment(c *gin.Context) {
	reviewerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.ReviewPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payment, err := h.paymentUsecase.Review(c.Request.Context(), reviewerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "payment reviewed", payment)
}

// ListLicenses returns a page of all licenses
// GET /api/v1/admin/licenses
func (h *AdminHandler) ListLicenses(c *gin.Context) {
	p := pagination(c)
	licenses, total, err := h.licenseUsecase.List(c.Request.Context(), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"licenses":   licenses,
		"pagination": utils.CalculateMeta(total, p.Page, p.Limit),
	})
}

// RevokeLicense disables an active license
// POST /api/v1/admin/licenses/:id/revoke
func (h *AdminHandler) RevokeLicense(c *gin.Context) {
	if err := h.licenseUsecase.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "license revoked", nil)
}

// UpdatePlan applies a partial edit to a pricing plan
// PUT /api/v1/admin/plans
func (h *AdminHandler) UpdatePlan(c *gin.Context) {
	var input entities.UpdatePricingPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	plan, err := h.pricingUsecase.UpdatePlan(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "plan updated", plan)
}

// CreateDiscount registers a new discount code
// POST /api/v1/admin/discounts
func (h *AdminHandler) CreateDiscount(c *gin.Context) {
	var input entities.CreateDiscountCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	discount, err := h.pricingUsecase.CreateDiscount(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "discount code created", discount)
}

// ListDiscounts returns all discount codes
// GET /api/v1/admin/discounts
func (h *AdminHandler) ListDiscounts(c *gin.Context) {
	discounts, err := h.pricingUsecase.ListDiscounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, discounts)
}

// ToggleDiscount activates or deactivates a discount code
// POST /api/v1/admin/discounts/toggle
func (h *AdminHandler) ToggleDiscount(c *gin.Context) {
	var input entities.ToggleDiscountCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	discount, err := h.pricingUsecase.ToggleDiscount(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "discount code updated", discount)
}
