package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/infrastructure/storage"
	"adlicense.backend/internal/interfaces/http/middleware"
	"adlicense.backend/internal/interfaces/http/response"
	"adlicense.backend/internal/usecases"
)

// KYCHandler handles identity verification endpoints
type KYCHandler struct {
	kycUsecase *usecases.KYCUsecase
	storage    *storage.LocalStorage
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycUsecase *usecases.KYCUsecase, store *storage.LocalStorage) *KYCHandler {
	return &KYCHandler{kycUsecase: kycUsecase, storage: store}
}

// Submit accepts a multipart document submission. The form carries
// documentType plus frontImage and, for two-sided documents, backImage.
// POST /api/v1/kyc
func (h *KYCHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	docType := entities.DocumentType(c.PostForm("documentType"))
	if !docType.Valid() {
		response.Error(c, domainerrors.BadRequest("unknown document type"))
		return
	}

	front, err := c.FormFile("frontImage")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("frontImage is required"))
		return
	}
	frontName, err := h.storage.Save(front, "kyc_front")
	if err != nil {
		response.Error(c, uploadError(err))
		return
	}

	backName := ""
	if back, err := c.FormFile("backImage"); err == nil {
		backName, err = h.storage.Save(back, "kyc_back")
		if err != nil {
			h.storage.Remove(frontName)
			response.Error(c, uploadError(err))
			return
		}
	}

	verification, err := h.kycUsecase.Submit(c.Request.Context(), userID, docType, frontName, backName)
	if err != nil {
		h.storage.Remove(frontName)
		if backName != "" {
			h.storage.Remove(backName)
		}
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "documents submitted for review", verification)
}

// Status returns the caller's latest submission
// GET /api/v1/kyc/status
func (h *KYCHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	verification, err := h.kycUsecase.Status(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Success(c, http.StatusOK, gin.H{"status": entities.KYCNotSubmitted})
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, verification)
}

// uploadError maps storage failures to client errors
func uploadError(err error) error {
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return domainerrors.BadRequest("file exceeds the upload size limit")
	case errors.Is(err, storage.ErrUnsupportedType):
		return domainerrors.BadRequest("unsupported file type")
	default:
		return err
	}
}
