package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/infrastructure/storage"
	"adlicense.backend/internal/interfaces/http/middleware"
	"adlicense.backend/internal/interfaces/http/response"
	"adlicense.backend/internal/usecases"
)

// PaymentHandler handles the purchase endpoints
type PaymentHandler struct {
	paymentUsecase *usecases.PaymentUsecase
	storage        *storage.LocalStorage
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase *usecases.PaymentUsecase, store *storage.LocalStorage) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase, storage: store}
}

// Create opens a pending payment for a plan
// POST /api/v1/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.paymentUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// UploadProof attaches the bank transfer slip to a pending payment
// POST /api/v1/payments/:id/proof
func (h *PaymentHandler) UploadProof(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	file, err := c.FormFile("proof")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("proof file is required"))
		return
	}

	filename, err := h.storage.Save(file, "payment_proof")
	if err != nil {
		response.Error(c, uploadError(err))
		return
	}

	payment, err := h.paymentUsecase.AttachProof(c.Request.Context(), userID, c.Param("id"), filename)
	if err != nil {
		h.storage.Remove(filename)
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "proof uploaded, awaiting review", payment)
}

// ProcessOnline settles an online payment through the demo gateway
// POST /api/v1/payments/process-online
func (h *PaymentHandler) ProcessOnline(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.ProcessOnlineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	license, err := h.paymentUsecase.ProcessOnline(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "payment successful", license)
}

// ListMine returns the caller's payments
// GET /api/v1/payments
func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	payments, err := h.paymentUsecase.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payments)
}
