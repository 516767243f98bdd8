package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, userID string) (domain.Cart, error)
	AddItem(ctx context.Context, userID string, item domain.CartItem) (uuid.UUID, error)
	UpdateQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) error
	DeleteItems(ctx context.Context, userID string, itemIDs []uuid.UUID) (int64, error)
	Clear(ctx context.Context, userID string) (int64, error)
}
