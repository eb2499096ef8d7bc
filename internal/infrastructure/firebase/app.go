package firebase

import (
	"context"
	"fmt"

	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewAuthClientForProject initializes a Firebase app for projectID and
// returns a verifier backed by its Auth client.
func NewAuthClientForProject(ctx context.Context, projectID string, opts ...option.ClientOption) (*FirebaseAuthClient, error) {
	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth: %w", err)
	}
	return NewFirebaseAuthClient(client), nil
}
