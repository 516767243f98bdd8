package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type cartRepository struct {
	q *db.Queries
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q: db.New(pool),
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q: db.New(tx), // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, userID string) (domain.Cart, error) {
	var c domain.Cart

	dbCartItems, err := r.q.GetCart(ctx, userID)
	if err != nil {
		return c, fmt.Errorf("q.GetCart: %w", err)
	}

	return domain.Cart{
		UserID: userID,
		Items:  lo.Map(dbCartItems, mapGetCartRowToDomain),
	}, nil
}

// AddItem adds a line to the cart. Adding a variant that is already there increases its quantity.
func (r *cartRepository) AddItem(ctx context.Context, userID string, item domain.CartItem) (uuid.UUID, error) {
	if userID == "" {
		return uuid.Nil, domain.InvalidInput("userId", "is empty")
	}
	if err := item.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("item.Validate: %w", err)
	}

	arg := db.AddCartItemParams{
		UserID:    userID,
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Quantity:  int32(item.Quantity),
	}

	itemID, err := r.q.AddCartItem(ctx, arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.AddCartItem: %w", err)
	}

	return itemID, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) error {
	if err := domain.ValidateCartQuantity(quantity); err != nil {
		return err
	}

	rowsAffected, err := r.q.UpdateCartItemQuantity(ctx, db.UpdateCartItemQuantityParams{
		Quantity: int32(quantity),
		ID:       itemID,
		UserID:   userID,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateCartItemQuantity: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("q.UpdateCartItemQuantity: %w", domain.ErrCartItemNotFound)
	}

	return nil
}

func (r *cartRepository) DeleteItems(ctx context.Context, userID string, itemIDs []uuid.UUID) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}

	rowsAffected, err := r.q.DeleteCartItems(ctx, db.DeleteCartItemsParams{
		UserID: userID,
		Ids:    itemIDs,
	})
	if err != nil {
		return 0, fmt.Errorf("q.DeleteCartItems: %w", err)
	}

	return rowsAffected, nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) (int64, error) {
	rowsAffected, err := r.q.ClearCart(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("q.ClearCart: %w", err)
	}

	return rowsAffected, nil
}

func mapGetCartRowToDomain(row db.CartItem, _ int) domain.CartItem {
	return domain.CartItem{
		ID:        row.ID,
		ProductID: row.ProductID,
		VariantID: row.VariantID,
		Quantity:  int(row.Quantity),
		CreatedAt: row.CreatedAt,
	}
}
