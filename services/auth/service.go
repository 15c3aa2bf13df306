package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gebedsrooster/models"
	"gebedsrooster/utils"
)

func (s *DefaultAuthService) SignIn(ctx context.Context, email, password string) (*models.AuthSession, error) {
	return s.Password.VerifyPassword(ctx, strings.TrimSpace(email), password)
}

// SignUp creates the account, signs it in and queues the welcome mail.
func (s *DefaultAuthService) SignUp(ctx context.Context, req models.AccountSignUpRequest) (*models.AuthSession, error) {
	if len(req.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	email := strings.TrimSpace(req.Email)

	user, err := s.Admin.CreateUser(ctx, email, req.Password, strings.TrimSpace(req.DisplayName))
	if err != nil {
		return nil, err
	}

	session, err := s.Password.VerifyPassword(ctx, email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("account %s created but sign-in failed: %w", user.UID, err)
	}
	session.User = user

	if s.Notifier != nil {
		if err := s.Notifier.SendAccountCreated(ctx, user); err != nil {
			utils.GetLogger().Warn("failed to queue account mail", zap.String("uid", user.UID), zap.Error(err))
		}
	}
	return session, nil
}

// SignOut revokes every refresh token of uid, which also invalidates the ID
// tokens issued before now.
func (s *DefaultAuthService) SignOut(ctx context.Context, uid string) error {
	return s.Admin.RevokeSessions(ctx, uid)
}

func (s *DefaultAuthService) SendPasswordResetEmail(ctx context.Context, email string) error {
	link, err := s.Admin.PasswordResetLink(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if s.Notifier == nil {
		return fmt.Errorf("no mail service configured")
	}
	return s.Notifier.SendPasswordReset(ctx, strings.TrimSpace(email), link)
}

func (s *DefaultAuthService) ConfirmPasswordReset(ctx context.Context, code, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}
	return s.Password.ConfirmPasswordReset(ctx, code, newPassword)
}

func (s *DefaultAuthService) UpdateProfile(ctx context.Context, uid, displayName string) (*models.User, error) {
	user, err := s.Admin.UpdateDisplayName(ctx, uid, strings.TrimSpace(displayName))
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DefaultAuthService) VerifyToken(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", ErrInvalidToken
	}
	return s.Admin.VerifyIDToken(ctx, idToken)
}

func (s *DefaultAuthService) CurrentUser(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.Admin.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
