package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/interfaces/http/response"
	"adlicense.backend/internal/usecases"
)

// PricingHandler handles public plan and discount endpoints
type PricingHandler struct {
	pricingUsecase *usecases.PricingUsecase
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingUsecase *usecases.PricingUsecase) *PricingHandler {
	return &PricingHandler{pricingUsecase: pricingUsecase}
}

// ListPlans returns the purchasable plans
// GET /api/v1/plans
func (h *PricingHandler) ListPlans(c *gin.Context) {
	plans, err := h.pricingUsecase.ListPlans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, plans)
}

// GetPlan returns one active plan
// GET /api/v1/plans/:id
func (h *PricingHandler) GetPlan(c *gin.Context) {
	plan, err := h.pricingUsecase.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, plan)
}

// CalculatePrice previews the final price for a plan and optional code
// POST /api/v1/plans/calculate
func (h *PricingHandler) CalculatePrice(c *gin.Context) {
	var input entities.CalculatePriceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	calc, err := h.pricingUsecase.CalculatePrice(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, calc)
}

// ValidateDiscount previews a discount code
// GET /api/v1/discounts/:code/validate
func (h *PricingHandler) ValidateDiscount(c *gin.Context) {
	validation, err := h.pricingUsecase.ValidateDiscount(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, validation)
}
