package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/interfaces/http/middleware"
	"adlicense.backend/internal/interfaces/http/response"
	"adlicense.backend/internal/usecases"
)

// LicenseHandler handles license endpoints
type LicenseHandler struct {
	licenseUsecase *usecases.LicenseUsecase
}

// NewLicenseHandler creates a new license handler
func NewLicenseHandler(licenseUsecase *usecases.LicenseUsecase) *LicenseHandler {
	return &LicenseHandler{licenseUsecase: licenseUsecase}
}

// Activate validates a key for the browser extension. This endpoint is
// unauthenticated; the key is the credential.
// POST /api/v1/licenses/activate
func (h *LicenseHandler) Activate(c *gin.Context) {
	var input entities.ActivateLicenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.licenseUsecase.Activate(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListMine returns the caller's licenses
// GET /api/v1/licenses
func (h *LicenseHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	licenses, err := h.licenseUsecase.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, licenses)
}
