package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/domain/repositories"
	"adlicense.backend/pkg/crypto"
	"adlicense.backend/pkg/googleauth"
	"adlicense.backend/pkg/jwt"
	"adlicense.backend/pkg/logger"
)

// uidAttempts bounds the retry loop on a UID collision
const uidAttempts = 5

var (
	generateUID   = crypto.GenerateUID
	checkPassword = crypto.CheckPassword
)

// IdentityVerifier checks externally issued ID tokens
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*googleauth.Claims, error)
}

// AuthUsecase handles sign-in for users and admins
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	adminRepo  repositories.AdminUserRepository
	verifier   IdentityVerifier
	jwtService *jwt.JWTService
	notifier   Notifier
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	adminRepo repositories.AdminUserRepository,
	verifier IdentityVerifier,
	jwtService *jwt.JWTService,
	notifier Notifier,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		adminRepo:  adminRepo,
		verifier:   verifier,
		jwtService: jwtService,
		notifier:   notifier,
	}
}

// GoogleSignIn exchanges a Google ID token for a session token,
// registering the user on first sight
func (u *AuthUsecase) GoogleSignIn(ctx context.Context, input *entities.GoogleSignInInput) (*entities.AuthResponse, error) {
	claims, err := u.verifier.Verify(ctx, input.IDToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("identity token rejected")
	}

	user, err := u.userRepo.GetByGoogleSub(ctx, claims.Sub)
	if errors.Is(err, domainerrors.ErrNotFound) {
		user, err = u.register(ctx, claims)
	}
	if err != nil {
		return nil, err
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, "user")
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{Token: token, User: user}, nil
}

// register creates the user row, retrying with a fresh UID when the
// generated one collides
func (u *AuthUsecase) register(ctx context.Context, claims *googleauth.Claims) (*entities.User, error) {
	var lastErr error
	for i := 0; i < uidAttempts; i++ {
		uid, err := generateUID()
		if err != nil {
			return nil, err
		}

		user := &entities.User{
			UID:           uid,
			GoogleSub:     claims.Sub,
			Email:         claims.Email,
			EmailVerified: claims.EmailVerified,
			KYCStatus:     entities.KYCNotSubmitted,
		}

		err = u.userRepo.Create(ctx, user)
		if err == nil {
			logger.Info(ctx, "user registered",
				zap.String("uid", uid), zap.String("email", claims.Email))
			u.notifier.Welcome(ctx, user.Email, claims.Name, uid)
			return user, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}

		// the collision may be a concurrent sign-in of the same account
		if existing, getErr := u.userRepo.GetByGoogleSub(ctx, claims.Sub); getErr == nil {
			return existing, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// AdminLogin authenticates an admin panel account
func (u *AuthUsecase) AdminLogin(ctx context.Context, input *entities.AdminLoginInput) (string, *entities.AdminUser, error) {
	admin, err := u.adminRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", nil, domainerrors.Unauthorized("invalid credentials")
		}
		return "", nil, err
	}

	if !checkPassword(input.Password, admin.PasswordHash) {
		return "", nil, domainerrors.Unauthorized("invalid credentials")
	}

	token, err := u.jwtService.GenerateToken(admin.ID, admin.Email, string(admin.Role))
	if err != nil {
		return "", nil, err
	}

	if err := u.adminRepo.TouchLastLogin(ctx, admin.ID); err != nil {
		logger.Warn(ctx, "failed to stamp admin login", zap.Error(err))
	}

	return token, admin, nil
}
