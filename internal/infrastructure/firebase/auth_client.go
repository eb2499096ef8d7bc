package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"nexusmarket/internal/domain/entity"
)

// FirebaseAuthClient verifies Firebase ID tokens issued to the web client.
type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) Verify(ctx context.Context, idToken string) (*entity.Identity, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	identity := &entity.Identity{
		UserID:   token.UID,
		Provider: entity.ProviderFirebase,
	}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	return identity, nil
}
