package service

import (
	"context"

	"go-rentify/internal/model"
)

// TokenStore persists one TokenRecord per active session. Implementations
// must bound every call and report driver failures as model.ErrStoreUnavailable.
type TokenStore interface {
	FindLatestByUser(ctx context.Context, userID string) (model.TokenRecord, error)
	Insert(ctx context.Context, record model.TokenRecord) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteByTokenID(ctx context.Context, tokenID string) error
}

type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user model.User) error
}

type PropertyStore interface {
	List(ctx context.Context) ([]model.Property, error)
	ListBySeller(ctx context.Context, sellerID string) ([]model.Property, error)
	FindByID(ctx context.Context, id string) (model.Property, error)
	Create(ctx context.Context, property model.Property) error
	Update(ctx context.Context, property model.Property) error
	Delete(ctx context.Context, id string) error
}
