package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	domainerrors "adlicense.backend/internal/domain/errors"
)

func record(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	return rec
}

func TestSuccess(t *testing.T) {
	rec := record(func(c *gin.Context) {
		Success(c, http.StatusCreated, gin.H{"id": 7})
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"success":true,"data":{"id":7}}`, rec.Body.String())
}

func TestSuccessWithMessage(t *testing.T) {
	rec := record(func(c *gin.Context) {
		SuccessWithMessage(c, http.StatusOK, "done", nil)
	})
	require.JSONEq(t, `{"success":true,"message":"done"}`, rec.Body.String())
}

func TestError_AppError(t *testing.T) {
	rec := record(func(c *gin.Context) {
		Error(c, domainerrors.NotFound("no such plan"))
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"success":false,"message":"no such plan"}`, rec.Body.String())
}

func TestError_FlagSurfaces(t *testing.T) {
	rec := record(func(c *gin.Context) {
		Error(c, domainerrors.Precondition("verify first", "KYC_NOT_VERIFIED", domainerrors.ErrKYCNotVerified))
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"success":false,"message":"verify first","flag":"KYC_NOT_VERIFIED"}`, rec.Body.String())
}

func TestError_MasksInternalDetail(t *testing.T) {
	rec := record(func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused"))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "pq:")
	require.JSONEq(t, `{"success":false,"message":"internal server error"}`, rec.Body.String())
}
