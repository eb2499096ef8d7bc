package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password"
	demoName     = "Demo User"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	issuer   TokenIssuer
	verifier TokenVerifier
}

// NewAuthUseCase builds the auth flows. With a nil issuer the service does
// not manage passwords and only accepts tokens from verifier.
func NewAuthUseCase(userRepo repository.UserRepository, issuer TokenIssuer, verifier TokenVerifier) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		issuer:   issuer,
		verifier: verifier,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthResult struct {
	User      *entity.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if uc.issuer == nil {
		return nil, errors.BadRequest("Password sign-up is disabled", nil)
	}

	email := entity.NormalizeEmail(input.Email)
	if existing, err := uc.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.Conflict("Email already in use", nil)
	} else if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to secure password", err)
	}

	now := time.Now()
	name := strings.TrimSpace(input.Name)
	account := &entity.Account{
		User: entity.User{
			ID:        uuid.New().String(),
			Name:      name,
			Email:     email,
			Avatar:    entity.AvatarFromName(name),
			Provider:  entity.ProviderLocal,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: string(hash),
	}

	if err := uc.userRepo.Create(ctx, account); err != nil {
		log.Printf("Register Error: Failed to create account for %s: %v", email, err)
		return nil, err
	}

	return uc.issue(&account.User)
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if uc.issuer == nil {
		return nil, errors.BadRequest("Password sign-in is disabled", nil)
	}

	account, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized("Invalid email or password", nil)
		}
		return nil, err
	}

	if account.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, errors.Unauthorized("Invalid email or password", nil)
	}

	return uc.issue(&account.User)
}

func (uc *AuthUseCase) issue(user *entity.User) (*AuthResult, error) {
	token, expiresAt, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout is stateless: tokens simply expire. The call exists so clients have
// a single place to end a session.
func (uc *AuthUseCase) Logout(ctx context.Context, userID string) error {
	log.Printf("Logout: user %s signed out", userID)
	return nil
}

// ResetPassword accepts any address and never reveals whether it belongs to
// an account.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, email string) error {
	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		log.Printf("ResetPassword: reset requested for %s", entity.NormalizeEmail(email))
	} else if !errors.IsNotFound(err) {
		return err
	}
	return nil
}

func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	account, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &account.User, nil
}

// VerifyToken resolves a bearer token and makes sure an account exists for
// identities that come from an external provider.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	identity, err := uc.verifier.Verify(ctx, token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	if identity.Provider != entity.ProviderLocal {
		if _, err := uc.EnsureAccount(ctx, identity); err != nil {
			return nil, err
		}
	}
	return identity, nil
}

// EnsureAccount creates the local profile for an externally authenticated
// identity on first sight.
func (uc *AuthUseCase) EnsureAccount(ctx context.Context, identity *entity.Identity) (*entity.User, error) {
	account, err := uc.userRepo.GetByID(ctx, identity.UserID)
	if err == nil {
		return &account.User, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	name := identity.Name
	if name == "" {
		name = strings.Split(identity.Email, "@")[0]
	}

	now := time.Now()
	account = &entity.Account{User: entity.User{
		ID:        identity.UserID,
		Name:      name,
		Email:     identity.Email,
		Avatar:    entity.AvatarFromName(name),
		Provider:  identity.Provider,
		CreatedAt: now,
		UpdatedAt: now,
	}}

	if err := uc.userRepo.Create(ctx, account); err != nil {
		if errors.Is(err, errors.CodeConflict) {
			// a concurrent request provisioned it first
			if existing, getErr := uc.userRepo.GetByID(ctx, identity.UserID); getErr == nil {
				return &existing.User, nil
			}
		}
		return nil, err
	}

	log.Printf("EnsureAccount: provisioned %s account %s", identity.Provider, identity.UserID)
	return &account.User, nil
}

// SeedDemoAccount creates the demo login if it does not exist yet.
func (uc *AuthUseCase) SeedDemoAccount(ctx context.Context) error {
	if _, err := uc.userRepo.GetByEmail(ctx, DemoEmail); err == nil {
		return nil
	} else if !errors.IsNotFound(err) {
		return err
	}

	_, err := uc.Register(ctx, RegisterInput{Name: demoName, Email: DemoEmail, Password: DemoPassword})
	if err != nil && !errors.Is(err, errors.CodeConflict) {
		return err
	}
	log.Printf("SeedDemoAccount: demo account %s is available", DemoEmail)
	return nil
}
