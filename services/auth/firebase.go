package auth

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"

	"gebedsrooster/models"
)

type firebaseAdmin struct {
	client *fbauth.Client
}

// NewFirebaseAdmin adapts the Firebase Auth admin client.
func NewFirebaseAdmin(client *fbauth.Client) IdentityAdmin {
	return &firebaseAdmin{client: client}
}

func (a *firebaseAdmin) CreateUser(ctx context.Context, email, password, displayName string) (models.User, error) {
	params := (&fbauth.UserToCreate{}).Email(email).Password(password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}
	rec, err := a.client.CreateUser(ctx, params)
	if err != nil {
		return models.User{}, mapAdminError(err)
	}
	return toUser(rec), nil
}

func (a *firebaseAdmin) GetUser(ctx context.Context, uid string) (models.User, error) {
	rec, err := a.client.GetUser(ctx, uid)
	if err != nil {
		return models.User{}, mapAdminError(err)
	}
	return toUser(rec), nil
}

func (a *firebaseAdmin) UpdateDisplayName(ctx context.Context, uid, displayName string) (models.User, error) {
	rec, err := a.client.UpdateUser(ctx, uid, (&fbauth.UserToUpdate{}).DisplayName(displayName))
	if err != nil {
		return models.User{}, mapAdminError(err)
	}
	return toUser(rec), nil
}

func (a *firebaseAdmin) RevokeSessions(ctx context.Context, uid string) error {
	if err := a.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return mapAdminError(err)
	}
	return nil
}

func (a *firebaseAdmin) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := a.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return token.UID, nil
}

func (a *firebaseAdmin) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := a.client.PasswordResetLink(ctx, email)
	if err != nil {
		return "", mapAdminError(err)
	}
	return link, nil
}

func mapAdminError(err error) error {
	switch {
	case fbauth.IsEmailAlreadyExists(err):
		return ErrEmailInUse
	case fbauth.IsUserNotFound(err), fbauth.IsEmailNotFound(err):
		return ErrUserNotFound
	default:
		return fmt.Errorf("identity service: %w", err)
	}
}

func toUser(rec *fbauth.UserRecord) models.User {
	if rec == nil || rec.UserInfo == nil {
		return models.User{}
	}
	return models.User{
		UID:         rec.UID,
		Email:       rec.Email,
		DisplayName: rec.DisplayName,
	}
}
