// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"

	"gebedsrooster/config"
)

var (
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
)

// FirebaseInit initializes the Firebase App and the Auth client.
func FirebaseInit(ctx context.Context) error {
	var fbConfig *firebase.Config
	if config.AppConfig.FirebaseProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: config.AppConfig.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, config.AppConfig.FirebaseClientOptions()...)
	if err != nil {
		return fmt.Errorf("firebase: error initializing app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Auth client: %w", err)
	}

	FirebaseApp = app
	AuthClient = client
	return nil
}

// NewFirestoreClient opens a Firestore client on the initialized app.
func NewFirestoreClient(ctx context.Context) (*firestore.Client, error) {
	if FirebaseApp == nil {
		return nil, fmt.Errorf("firebase: app not initialized")
	}
	client, err := FirebaseApp.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
	}
	return client, nil
}
