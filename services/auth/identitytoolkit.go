package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"gebedsrooster/models"
)

type identityToolkitGateway struct {
	svc *identitytoolkit.Service
}

// NewIdentityToolkitGateway talks to the Identity Toolkit REST API with the
// project's web API key.
func NewIdentityToolkitGateway(ctx context.Context, apiKey string, opts ...option.ClientOption) (PasswordGateway, error) {
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit client: %w", err)
	}
	return &identityToolkitGateway{svc: svc}, nil
}

func (g *identityToolkitGateway) VerifyPassword(ctx context.Context, email, password string) (*models.AuthSession, error) {
	resp, err := g.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, mapToolkitError(err)
	}
	return &models.AuthSession{
		User: models.User{
			UID:         resp.LocalId,
			Email:       resp.Email,
			DisplayName: resp.DisplayName,
		},
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    strconv.FormatInt(resp.ExpiresIn, 10),
	}, nil
}

func (g *identityToolkitGateway) ConfirmPasswordReset(ctx context.Context, code, newPassword string) error {
	_, err := g.svc.Relyingparty.ResetPassword(&identitytoolkit.IdentitytoolkitRelyingpartyResetPasswordRequest{
		OobCode:     code,
		NewPassword: newPassword,
	}).Context(ctx).Do()
	if err != nil {
		return mapToolkitError(err)
	}
	return nil
}

// toolkitErrors maps the error codes the REST API puts in its messages.
var toolkitErrors = map[string]error{
	"EMAIL_NOT_FOUND":           ErrUserNotFound,
	"INVALID_PASSWORD":          ErrWrongPassword,
	"INVALID_LOGIN_CREDENTIALS": ErrWrongPassword,
	"EMAIL_EXISTS":              ErrEmailInUse,
	"WEAK_PASSWORD":             ErrWeakPassword,
	"INVALID_OOB_CODE":          ErrInvalidResetCode,
	"EXPIRED_OOB_CODE":          ErrInvalidResetCode,
	"USER_DISABLED":             ErrUserDisabled,
}

func mapToolkitError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("identity toolkit: %w", err)
	}
	messages := []string{gerr.Message}
	for _, item := range gerr.Errors {
		messages = append(messages, item.Message, item.Reason)
	}
	for _, msg := range messages {
		// Messages look like "WEAK_PASSWORD : Password should be at least 6 characters".
		code := strings.TrimSpace(strings.SplitN(msg, ":", 2)[0])
		if mapped, ok := toolkitErrors[code]; ok {
			return mapped
		}
	}
	return fmt.Errorf("identity toolkit: %w", err)
}
