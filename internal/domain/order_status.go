package domain

import "errors"

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map and the transitions table
const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:   {},
	OrderStatusPaid:      {},
	OrderStatusShipped:   {},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusCompleted, OrderStatusCancelled},
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

// OrderStatuses lists canonical statuses in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusPaid,
		OrderStatusShipped,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ReleasesStock reports whether cancelling from s gives the reserved stock back.
// Goods that already left the warehouse are not restocked.
func (s OrderStatus) ReleasesStock() bool {
	return s == OrderStatusPending || s == OrderStatusPaid
}

func (s OrderStatus) String() string {
	return string(s)
}

func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns a *TransitionError when from cannot move to to.
func CheckTransition(from, to OrderStatus) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// BuyerStatus is the vocabulary of the buyer's "my orders" filter.
// It is a view over OrderStatus, see BuyerStatus.OrderStatuses.
type BuyerStatus string

const (
	BuyerStatusPaid      BuyerStatus = "PAID"
	BuyerStatusChecked   BuyerStatus = "CHECKED"
	BuyerStatusDelivered BuyerStatus = "DELIVERED"
	BuyerStatusCompleted BuyerStatus = "COMPLETED"
	BuyerStatusCancelled BuyerStatus = "CANCELLED"
)

var buyerStatusMapping = map[BuyerStatus][]OrderStatus{
	BuyerStatusChecked:   {OrderStatusPending},
	BuyerStatusPaid:      {OrderStatusPaid},
	BuyerStatusDelivered: {OrderStatusShipped},
	BuyerStatusCompleted: {OrderStatusCompleted},
	BuyerStatusCancelled: {OrderStatusCancelled},
}

func ToBuyerStatus(s string) (BuyerStatus, error) {
	status := BuyerStatus(s)
	if _, ok := buyerStatusMapping[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid buyer status")
}

// OrderStatuses returns the canonical statuses the buyer label covers.
func (b BuyerStatus) OrderStatuses() []OrderStatus {
	return buyerStatusMapping[b]
}

// BuyerStatusOf labels a canonical status for the buyer view.
func BuyerStatusOf(s OrderStatus) BuyerStatus {
	for buyer, statuses := range buyerStatusMapping {
		for _, status := range statuses {
			if status == s {
				return buyer
			}
		}
	}
	return ""
}
