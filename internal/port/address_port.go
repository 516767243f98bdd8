package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type AddressRepository interface {
	CreateAddress(ctx context.Context, address domain.Address) (domain.Address, error)
	GetAddress(ctx context.Context, addressID uuid.UUID, userID string) (domain.Address, error)
	ListAddresses(ctx context.Context, userID string) ([]domain.Address, error)
	SetDefaultAddress(ctx context.Context, addressID uuid.UUID, userID string) error
}
