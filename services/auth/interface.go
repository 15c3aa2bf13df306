package auth

import (
	"context"

	"gebedsrooster/models"
	"gebedsrooster/services/notification"
)

// AuthService fronts the hosted identity service.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*models.AuthSession, error)
	SignUp(ctx context.Context, req models.AccountSignUpRequest) (*models.AuthSession, error)
	SignOut(ctx context.Context, uid string) error
	SendPasswordResetEmail(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, code, newPassword string) error
	UpdateProfile(ctx context.Context, uid, displayName string) (*models.User, error)
	VerifyToken(ctx context.Context, idToken string) (string, error)
	CurrentUser(ctx context.Context, uid string) (*models.User, error)
}

// IdentityAdmin is the privileged side of the identity service. Errors are
// already translated to this package's sentinels.
type IdentityAdmin interface {
	CreateUser(ctx context.Context, email, password, displayName string) (models.User, error)
	GetUser(ctx context.Context, uid string) (models.User, error)
	UpdateDisplayName(ctx context.Context, uid, displayName string) (models.User, error)
	RevokeSessions(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// PasswordGateway performs the password operations the admin SDK cannot.
type PasswordGateway interface {
	VerifyPassword(ctx context.Context, email, password string) (*models.AuthSession, error)
	ConfirmPasswordReset(ctx context.Context, code, newPassword string) error
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Admin    IdentityAdmin
	Password PasswordGateway
	Notifier notification.NotificationService
}

func NewDefaultAuthService(admin IdentityAdmin, password PasswordGateway, notifier notification.NotificationService) *DefaultAuthService {
	return &DefaultAuthService{Admin: admin, Password: password, Notifier: notifier}
}
