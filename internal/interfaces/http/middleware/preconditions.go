package middleware

import (
	"github.com/gin-gonic/gin"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	domainRepos "adlicense.backend/internal/domain/repositories"
)

// Reason flags carried on precondition failures so the frontend can send
// the user to the right step
const (
	FlagProfileIncomplete = "PROFILE_INCOMPLETE"
	FlagKYCNotVerified    = "KYC_NOT_VERIFIED"
)

// RequireCompletedProfile blocks users who have not filled in their
// one-time profile
func RequireCompletedProfile(users domainRepos.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		if !user.ProfileCompleted {
			abort(c, domainerrors.Precondition("complete your profile first", FlagProfileIncomplete, domainerrors.ErrProfileIncomplete))
			return
		}
		c.Next()
	}
}

// RequireVerifiedKYC blocks users whose identity has not been approved
func RequireVerifiedKYC(users domainRepos.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		if user.KYCStatus != entities.KYCVerified {
			abort(c, domainerrors.Precondition("identity verification required", FlagKYCNotVerified, domainerrors.ErrKYCNotVerified))
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context, users domainRepos.UserRepository) (*entities.User, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		abort(c, domainerrors.Unauthorized("authentication required"))
		return nil, false
	}
	user, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		abort(c, domainerrors.Unauthorized("account not found"))
		return nil, false
	}
	return user, true
}
