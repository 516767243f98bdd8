package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID             uuid.UUID
	Title          string
	VendorID       string
	VendorName     string
	OwnerID        string
	Logistics      string
	LogisticsPrice Money
	MinQuantity    int
	IsActive       bool
	Variants       []Variant

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Variant is a purchasable SKU ("spec") of a product.
type Variant struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	Value     string
	Price     Money
	Stock     int
	Image     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaxStock is the largest stock a variant row can hold.
const MaxStock = math.MaxInt32

// ValidateStock rejects stock levels the variant table cannot store.
func ValidateStock(stock int) error {
	if stock < 0 || stock > MaxStock {
		return InvalidInput("stock", fmt.Sprintf("must be between 0 and %d", MaxStock))
	}
	return nil
}

// SpecInfo is the human-readable variant description snapshotted onto order items.
func (v Variant) SpecInfo() string {
	return v.Value + " * " + v.Name
}

type Address struct {
	ID        uuid.UUID
	UserID    string
	Recipient string
	Phone     string
	Province  string
	City      string
	District  string
	Detail    string
	IsDefault bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Vendor struct {
	ID   string
	Name string
}

// StockAlert is a low-stock variant of an active product.
type StockAlert struct {
	VariantID    uuid.UUID
	VariantName  string
	VariantValue string
	Stock        int
	Price        Money
	ProductID    uuid.UUID
	ProductTitle string
	Vendor       Vendor
}
