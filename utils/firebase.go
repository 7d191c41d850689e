package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/config"
)

var (
	FirebaseApp  *firebase.App
	FirebaseAuth *fbauth.Client
	once         sync.Once
	initErr      error
)

// InitFirebase initializes the Firebase Admin SDK and its Auth client
// (singleton pattern). The Auth client verifies the ID tokens the web
// client obtains from Firebase sign-in.
func InitFirebase(cfg *config.Config) error {
	once.Do(func() {
		ctx := context.Background()

		credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsPath == "" {
			credentialsPath = cfg.FirebaseCredentialsPath
		}
		if credentialsPath == "" {
			credentialsPath = "./serviceAccountKey.json"
		}

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Printf("⚠️ Firebase credentials file not found at: %s", credentialsPath)
			initErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}

		fbConfig := &firebase.Config{ProjectID: cfg.FirebaseProjectID}
		opt := option.WithCredentialsFile(credentialsPath)

		app, err := firebase.NewApp(ctx, fbConfig, opt)
		if err != nil {
			initErr = fmt.Errorf("firebase app initialization failed: %v", err)
			return
		}

		authClient, err := app.Auth(ctx)
		if err != nil {
			initErr = fmt.Errorf("firebase auth client initialization failed: %v", err)
			return
		}

		FirebaseApp = app
		FirebaseAuth = authClient
		log.Printf("✅ Firebase initialized for project: %s", cfg.FirebaseProjectID)
	})

	return initErr
}

// VerifiedIdentity is what the identity collaborator exposes about a signed-in user.
type VerifiedIdentity struct {
	UID      string
	Email    string
	Name     string
	PhotoURL string
}

// VerifyIDToken validates a Firebase ID token and extracts the identity fields.
func VerifyIDToken(ctx context.Context, idToken string) (*VerifiedIdentity, error) {
	if FirebaseAuth == nil {
		return nil, fmt.Errorf("firebase auth client not initialized")
	}

	token, err := FirebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	identity := &VerifiedIdentity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.PhotoURL = picture
	}

	return identity, nil
}
