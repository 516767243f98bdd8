package domain

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID             uuid.UUID
	UserID         string
	AddressID      uuid.UUID
	Address        *Address
	Total          Money
	Status         OrderStatus
	TrackingNumber *string
	ShippingInfo   *string
	RefundInfo     *string
	Items          []OrderItem

	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// OrderItem is an immutable purchase snapshot. VariantID is nil once the variant is gone.
type OrderItem struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	ProductID      uuid.UUID
	VariantID      *uuid.UUID
	VendorID       string
	ProductTitle   string
	Quantity       int
	Price          Money
	LogisticsPrice Money
	Remark         string
	SpecInfo       string

	CreatedAt time.Time
}

func (i OrderItem) LineTotal() Money {
	return i.Price.Times(i.Quantity)
}

// StatusUpdate is an administrative status change. Nil optional fields keep stored values.
type StatusUpdate struct {
	OrderID        uuid.UUID
	Status         OrderStatus
	TrackingNumber *string
	ShippingInfo   *string
	RefundInfo     *string
}

func (u StatusUpdate) Validate() error {
	if u.OrderID == uuid.Nil {
		return InvalidInput("orderId", "is empty")
	}

	if _, err := ToOrderStatus(string(u.Status)); err != nil {
		return InvalidInput("status", "is not valid")
	}

	return nil
}

// OrderStats counts non-deleted orders per canonical status.
type OrderStats struct {
	Total     int
	Pending   int
	Paid      int
	Shipped   int
	Completed int
	Cancelled int
}

// NewOrderStats folds per-status counts into OrderStats.
func NewOrderStats(counts map[OrderStatus]int) OrderStats {
	var stats OrderStats

	for status, n := range counts {
		stats.Total += n

		switch status {
		case OrderStatusPending:
			stats.Pending = n
		case OrderStatusPaid:
			stats.Paid = n
		case OrderStatusShipped:
			stats.Shipped = n
		case OrderStatusCompleted:
			stats.Completed = n
		case OrderStatusCancelled:
			stats.Cancelled = n
		}
	}

	return stats
}

type TransactionSummary struct {
	Count  int
	Amount Money
}

type TransactionStats struct {
	Total        TransactionSummary
	Today        TransactionSummary
	Yesterday    TransactionSummary
	CurrentMonth TransactionSummary
	LastMonth    TransactionSummary
}
