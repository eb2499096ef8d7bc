package usecase

import (
	"context"
	"strings"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

// UpdateProfileInput carries the editable profile fields; nil leaves a field
// unchanged.
type UpdateProfileInput struct {
	Name     *string
	Bio      *string
	Avatar   *string
	Phone    *string
	Location *string
}

// PublicProfile is what other users may see about an account.
type PublicProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*PublicProfile, error) {
	account, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PublicProfile{
		ID:       account.ID,
		Name:     account.Name,
		Avatar:   account.Snapshot().DisplayAvatar(),
		Bio:      account.Bio,
		Location: account.Location,
	}, nil
}

// UpdateProfile edits the account. Conversations keep the snapshot taken when
// they started.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	account, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.BadRequest("Name cannot be empty", nil)
		}
		account.Name = name
	}
	if input.Bio != nil {
		account.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.Avatar != nil {
		account.Avatar = strings.TrimSpace(*input.Avatar)
	}
	if input.Phone != nil {
		account.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Location != nil {
		account.Location = strings.TrimSpace(*input.Location)
	}

	if err := uc.userRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return &account.User, nil
}
