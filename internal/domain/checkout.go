package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxLineQuantity bounds a single checkout line.
const MaxLineQuantity = 100000

type CheckoutMode string

const (
	// CheckoutModeBatch places every line in a single transaction.
	CheckoutModeBatch CheckoutMode = "batch"
	// CheckoutModePerLine commits each line on its own; earlier lines survive a later failure.
	CheckoutModePerLine CheckoutMode = "per_line"
)

func (m CheckoutMode) String() string {
	return string(m)
}

func ToCheckoutMode(s string) (CheckoutMode, error) {
	switch mode := CheckoutMode(s); mode {
	case CheckoutModeBatch, CheckoutModePerLine:
		return mode, nil
	}

	return "", fmt.Errorf("invalid checkout mode[%s]", s)
}

// CheckoutLine is one purchase tuple. Every line becomes exactly one order.
type CheckoutLine struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
	Quantity  int
	Remark    string
}

type CheckoutRequest struct {
	UserID    string
	AddressID uuid.UUID
	Lines     []CheckoutLine
}

func (r CheckoutRequest) Validate() error {
	if r.UserID == "" {
		return InvalidInput("userId", "is empty")
	}

	if r.AddressID == uuid.Nil {
		return InvalidInput("addressId", "is empty")
	}

	if len(r.Lines) == 0 {
		return InvalidInput("items", "is empty")
	}

	for i, line := range r.Lines {
		if line.ProductID == uuid.Nil {
			return InvalidInput(fmt.Sprintf("items[%d].productId", i), "is empty")
		}
		if line.VariantID == uuid.Nil {
			return InvalidInput(fmt.Sprintf("items[%d].specId", i), "is empty")
		}
		if line.Quantity < 1 {
			return InvalidInput(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
		if line.Quantity > MaxLineQuantity {
			return InvalidInput(fmt.Sprintf("items[%d].quantity", i), fmt.Sprintf("must be at most %d", MaxLineQuantity))
		}
	}

	return nil
}

// NewOrder builds the PENDING order for a single checkout line, snapshotting the
// variant price, the product logistics price and the vendor.
// The order total is the item line total; shipping is stored on the item only.
func NewOrder(userID string, address Address, product Product, variant Variant, line CheckoutLine) (Order, error) {
	var o Order

	if variant.ProductID != product.ID {
		return o, fmt.Errorf("variant[%s] does not belong to product[%s]", variant.ID, product.ID)
	}

	if line.Quantity < product.MinQuantity {
		return o, &MinimumQuantityError{ProductTitle: product.Title, Minimum: product.MinQuantity}
	}

	variantID := variant.ID

	item := OrderItem{
		ProductID:      product.ID,
		VariantID:      &variantID,
		VendorID:       product.VendorID,
		ProductTitle:   product.Title,
		Quantity:       line.Quantity,
		Price:          variant.Price,
		LogisticsPrice: product.LogisticsPrice,
		Remark:         line.Remark,
		SpecInfo:       variant.SpecInfo(),
	}

	return Order{
		UserID:    userID,
		AddressID: address.ID,
		Address:   &address,
		Total:     item.LineTotal(),
		Status:    OrderStatusPending,
		Items:     []OrderItem{item},
	}, nil
}
