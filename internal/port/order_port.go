package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"golang.org/x/text/currency"
)

type OrderRepository interface {
	// PlaceOrders reserves stock and inserts one order per line in a single transaction.
	// A failing line is reported as *domain.LineError.
	PlaceOrders(ctx context.Context, req domain.CheckoutRequest) ([]domain.Order, error)

	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	UpdateOrderStatus(ctx context.Context, update domain.StatusUpdate) (domain.Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID, userID string) (domain.Order, error)

	SoftDeleteOrder(ctx context.Context, orderID uuid.UUID) error
	SoftDeleteOrders(ctx context.Context, orderIDs []uuid.UUID) (int64, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error

	CountOrdersByStatus(ctx context.Context) (domain.OrderStats, error)
	SumTransactions(ctx context.Context, statuses []domain.OrderStatus, cur currency.Unit, createdAt *domain.TimeRange) (domain.TransactionSummary, error)
}
