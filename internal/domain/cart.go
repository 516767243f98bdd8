package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	UserID string
	Items  []CartItem
}

type CartItem struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	VariantID uuid.UUID
	Quantity  int

	CreatedAt time.Time
}

func (i CartItem) Validate() error {
	if i.ProductID == uuid.Nil {
		return InvalidInput("productId", "is empty")
	}
	if i.VariantID == uuid.Nil {
		return InvalidInput("specId", "is empty")
	}
	return ValidateCartQuantity(i.Quantity)
}

func ValidateCartQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxLineQuantity {
		return InvalidInput("quantity", fmt.Sprintf("must be between 1 and %d", MaxLineQuantity))
	}
	return nil
}

func (i CartItem) CheckoutLine(remark string) CheckoutLine {
	return CheckoutLine{
		ProductID: i.ProductID,
		VariantID: i.VariantID,
		Quantity:  i.Quantity,
		Remark:    remark,
	}
}

// Select returns the cart rows named by itemIDs, keeping cart order.
// Unknown ids fail with ErrCartItemNotFound.
func (c Cart) Select(itemIDs []uuid.UUID) ([]CartItem, error) {
	if len(itemIDs) == 0 {
		return nil, InvalidInput("cartItemIds", "is empty")
	}

	selected := make(map[uuid.UUID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		selected[id] = struct{}{}
	}

	var items []CartItem
	for _, item := range c.Items {
		if _, ok := selected[item.ID]; !ok {
			continue
		}
		delete(selected, item.ID)
		items = append(items, item)
	}

	if len(selected) > 0 {
		return nil, ErrCartItemNotFound
	}

	return items, nil
}
