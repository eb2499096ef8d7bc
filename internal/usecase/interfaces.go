package usecase

import (
	"context"
	"time"

	"nexusmarket/internal/domain/entity"
)

// TokenIssuer signs bearer tokens for accounts managed by this service.
type TokenIssuer interface {
	Issue(user *entity.User) (string, time.Time, error)
}

// TokenVerifier resolves a bearer token to the identity it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*entity.Identity, error)
}
