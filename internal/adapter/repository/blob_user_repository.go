package repository

import (
	"context"
	"time"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

type blobUserRepository struct {
	store repository.BlobStore
}

func NewBlobUserRepository(store repository.BlobStore) repository.UserRepository {
	return &blobUserRepository{store: store}
}

func decodeAccounts(raw []byte) []*entity.Account {
	return decodeList(repository.AccountsKey, raw, func(a *entity.Account) bool {
		return a.ID != ""
	})
}

func (r *blobUserRepository) load(ctx context.Context) ([]*entity.Account, error) {
	raw, err := r.store.Get(ctx, repository.AccountsKey)
	if err != nil {
		return nil, err
	}
	return decodeAccounts(raw), nil
}

func (r *blobUserRepository) Create(ctx context.Context, account *entity.Account) error {
	account.Email = entity.NormalizeEmail(account.Email)

	return r.store.Update(ctx, repository.AccountsKey, func(current []byte) ([]byte, error) {
		accounts := decodeAccounts(current)
		for _, a := range accounts {
			if a.ID == account.ID {
				return nil, errors.Conflict("User already exists", nil)
			}
			if entity.NormalizeEmail(a.Email) == account.Email {
				return nil, errors.Conflict("Email already registered", nil)
			}
		}
		return encode(repository.AccountsKey, append(accounts, account))
	})
}

func (r *blobUserRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	accounts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *blobUserRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	accounts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	email = entity.NormalizeEmail(email)
	for _, a := range accounts {
		if entity.NormalizeEmail(a.Email) == email {
			return a, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *blobUserRepository) Update(ctx context.Context, account *entity.Account) error {
	account.Email = entity.NormalizeEmail(account.Email)
	account.UpdatedAt = time.Now()

	return r.store.Update(ctx, repository.AccountsKey, func(current []byte) ([]byte, error) {
		accounts := decodeAccounts(current)
		index := -1
		for i, a := range accounts {
			if a.ID == account.ID {
				index = i
				continue
			}
			if entity.NormalizeEmail(a.Email) == account.Email {
				return nil, errors.Conflict("Email already registered", nil)
			}
		}
		if index < 0 {
			return nil, errors.NotFound("User", nil)
		}
		accounts[index] = account
		return encode(repository.AccountsKey, accounts)
	})
}
