package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/cache"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// CheckoutService turns purchase requests into PENDING orders, one order per line.
type CheckoutService struct {
	orders  port.OrderRepository
	carts   port.CartRepository
	tx      port.Transactor
	reports cache.VendorReportCache
	mode    domain.CheckoutMode
	logger  *zap.Logger
}

// placeFunc commits the orders for req. first is the index of req's first line in the caller's request.
type placeFunc func(ctx context.Context, req domain.CheckoutRequest, first int) ([]domain.Order, error)

func NewCheckoutService(
	orders port.OrderRepository,
	carts port.CartRepository,
	tx port.Transactor,
	reports cache.VendorReportCache,
	mode domain.CheckoutMode,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		orders:  orders,
		carts:   carts,
		tx:      tx,
		reports: reports,
		mode:    mode,
		logger:  logger,
	}
}

// Checkout places the orders for req. In batch mode nothing is committed on failure.
// In per-line mode the orders committed before the failing line are returned with a *domain.LineError.
func (s *CheckoutService) Checkout(ctx context.Context, req domain.CheckoutRequest) ([]domain.Order, error) {
	return s.checkout(ctx, req, func(ctx context.Context, req domain.CheckoutRequest, _ int) ([]domain.Order, error) {
		return s.orders.PlaceOrders(ctx, req)
	})
}

// CheckoutCart checks out the selected cart rows. A cart row is removed in the same
// transaction that turns it into an order.
// remarks are keyed by cart item id.
func (s *CheckoutService) CheckoutCart(ctx context.Context, userID string, addressID uuid.UUID, itemIDs []uuid.UUID, remarks map[uuid.UUID]string) ([]domain.Order, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("carts.GetCart: %w", err)
	}

	items, err := cart.Select(itemIDs)
	if err != nil {
		return nil, fmt.Errorf("cart.Select: %w", err)
	}

	req := domain.CheckoutRequest{
		UserID:    userID,
		AddressID: addressID,
		Lines: lo.Map(items, func(item domain.CartItem, _ int) domain.CheckoutLine {
			return item.CheckoutLine(remarks[item.ID])
		}),
	}

	orders, err := s.checkout(ctx, req, func(ctx context.Context, req domain.CheckoutRequest, first int) ([]domain.Order, error) {
		return s.placeFromCart(ctx, req, items[first:first+len(req.Lines)])
	})
	if err != nil {
		return orders, fmt.Errorf("s.checkout: %w", err)
	}

	return orders, nil
}

func (s *CheckoutService) placeFromCart(ctx context.Context, req domain.CheckoutRequest, items []domain.CartItem) ([]domain.Order, error) {
	var orders []domain.Order

	if err := s.tx.InTx(ctx, func(repos port.TxRepositories) error {
		placed, err := repos.Orders.PlaceOrders(ctx, req)
		if err != nil {
			return err
		}

		itemIDs := lo.Map(items, func(item domain.CartItem, _ int) uuid.UUID {
			return item.ID
		})
		if _, err := repos.Carts.DeleteItems(ctx, req.UserID, itemIDs); err != nil {
			return fmt.Errorf("carts.DeleteItems: %w", err)
		}

		orders = placed
		return nil
	}); err != nil {
		return nil, err
	}

	return orders, nil
}

func (s *CheckoutService) checkout(ctx context.Context, req domain.CheckoutRequest, place placeFunc) ([]domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("req.Validate: %w", err)
	}

	var (
		orders []domain.Order
		err    error
	)

	switch s.mode {
	case domain.CheckoutModePerLine:
		orders, err = checkoutPerLine(ctx, req, place)
	default:
		orders, err = place(ctx, req, 0)
	}

	if len(orders) > 0 {
		invalidateReports(ctx, s.reports, s.logger)
	}

	if err != nil {
		s.logger.Warn("checkout failed",
			zap.String("user_id", req.UserID),
			zap.Stringer("mode", s.mode),
			zap.Int("lines", len(req.Lines)),
			zap.Int("committed", len(orders)),
			zap.Error(err))
		return orders, err
	}

	s.logger.Info("checkout completed",
		zap.String("user_id", req.UserID),
		zap.Stringer("mode", s.mode),
		zap.Strings("order_ids", lo.Map(orders, func(o domain.Order, _ int) string {
			return o.ID.String()
		})))

	return orders, nil
}

func checkoutPerLine(ctx context.Context, req domain.CheckoutRequest, place placeFunc) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(req.Lines))

	for i, line := range req.Lines {
		placed, err := place(ctx, domain.CheckoutRequest{
			UserID:    req.UserID,
			AddressID: req.AddressID,
			Lines:     []domain.CheckoutLine{line},
		}, i)
		if err != nil {
			// re-index the single-line failure against the caller's request
			var lineErr *domain.LineError
			if errors.As(err, &lineErr) {
				return orders, &domain.LineError{Index: i, Err: lineErr.Err}
			}
			return orders, fmt.Errorf("place: %w", err)
		}

		orders = append(orders, placed...)
	}

	return orders, nil
}

func invalidateReports(ctx context.Context, reports cache.VendorReportCache, logger *zap.Logger) {
	if err := reports.Invalidate(ctx); err != nil {
		logger.Warn("vendor report cache invalidation failed", zap.Error(err))
	}
}
