package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/cache"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/currency"
)

// transactionStatuses are the statuses counted as completed sales.
var transactionStatuses = []domain.OrderStatus{
	domain.OrderStatusPaid,
	domain.OrderStatusShipped,
	domain.OrderStatusCompleted,
}

// LifecycleService moves orders through their status machine and serves order queries.
type LifecycleService struct {
	orders   port.OrderRepository
	reports  cache.VendorReportCache
	currency currency.Unit
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewLifecycleService(
	orders port.OrderRepository,
	reports cache.VendorReportCache,
	cur currency.Unit,
	loc *time.Location,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		orders:   orders,
		reports:  reports,
		currency: cur,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// UpdateStatus applies an administrative status change. Cancelling before shipment gives the stock back.
func (s *LifecycleService) UpdateStatus(ctx context.Context, update domain.StatusUpdate) (domain.Order, error) {
	order, err := s.orders.UpdateOrderStatus(ctx, update)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.UpdateOrderStatus: %w", err)
	}

	s.logger.Info("order status updated",
		zap.Stringer("order_id", order.ID),
		zap.Stringer("status", order.Status))

	if update.Status == domain.OrderStatusCancelled {
		invalidateReports(ctx, s.reports, s.logger)
	}

	return order, nil
}

// Cancel cancels the user's own PENDING order and restores its stock.
func (s *LifecycleService) Cancel(ctx context.Context, orderID uuid.UUID, userID string) (domain.Order, error) {
	order, err := s.orders.CancelOrder(ctx, orderID, userID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.CancelOrder: %w", err)
	}

	s.logger.Info("order cancelled",
		zap.Stringer("order_id", order.ID),
		zap.String("user_id", userID))

	invalidateReports(ctx, s.reports, s.logger)

	return order, nil
}

func (s *LifecycleService) SoftDelete(ctx context.Context, orderID uuid.UUID) error {
	if err := s.orders.SoftDeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("orders.SoftDeleteOrder: %w", err)
	}

	invalidateReports(ctx, s.reports, s.logger)

	return nil
}

// HardDelete removes an order and its items for good. Stock is not restored.
func (s *LifecycleService) HardDelete(ctx context.Context, orderID uuid.UUID) error {
	if err := s.orders.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("orders.DeleteOrder: %w", err)
	}

	s.logger.Info("order hard deleted", zap.Stringer("order_id", orderID))

	invalidateReports(ctx, s.reports, s.logger)

	return nil
}

func (s *LifecycleService) SoftDeleteMany(ctx context.Context, orderIDs []uuid.UUID) (int64, error) {
	deleted, err := s.orders.SoftDeleteOrders(ctx, orderIDs)
	if err != nil {
		return 0, fmt.Errorf("orders.SoftDeleteOrders: %w", err)
	}

	s.logger.Info("orders soft deleted",
		zap.Int("requested", len(orderIDs)),
		zap.Int64("deleted", deleted))

	if deleted > 0 {
		invalidateReports(ctx, s.reports, s.logger)
	}

	return deleted, nil
}

func (s *LifecycleService) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}

// GetUserOrder returns the order only to its owner; other users see it as missing.
func (s *LifecycleService) GetUserOrder(ctx context.Context, orderID uuid.UUID, userID string) (domain.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if order.UserID != userID {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	return order, nil
}

// ListOrders lists the user's orders, newest first. status narrows by the buyer vocabulary.
func (s *LifecycleService) ListOrders(ctx context.Context, userID string, status *domain.BuyerStatus) ([]domain.Order, error) {
	if userID == "" {
		return nil, domain.InvalidInput("userId", "is empty")
	}

	filter := domain.OrderFilter{
		UserIDs: []string{userID},
	}
	if status != nil {
		filter.Statuses = status.OrderStatuses()
	}

	orders, err := s.orders.SearchOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return orders, nil
}

func (s *LifecycleService) AdminListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	orders, err := s.orders.SearchOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return orders, nil
}

func (s *LifecycleService) OrderStats(ctx context.Context) (domain.OrderStats, error) {
	stats, err := s.orders.CountOrdersByStatus(ctx)
	if err != nil {
		return domain.OrderStats{}, fmt.Errorf("orders.CountOrdersByStatus: %w", err)
	}

	return stats, nil
}

// TransactionStats sums paid-or-later orders over fixed calendar windows in the configured zone.
func (s *LifecycleService) TransactionStats(ctx context.Context) (domain.TransactionStats, error) {
	var stats domain.TransactionStats

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)

	windows := []struct {
		target *domain.TransactionSummary
		span   *domain.TimeRange
	}{
		{&stats.Total, nil},
		{&stats.Today, timeSpan(today, today.AddDate(0, 0, 1))},
		{&stats.Yesterday, timeSpan(today.AddDate(0, 0, -1), today)},
		{&stats.CurrentMonth, timeSpan(month, month.AddDate(0, 1, 0))},
		{&stats.LastMonth, timeSpan(month.AddDate(0, -1, 0), month)},
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, w := range windows {
		g.Go(func() error {
			summary, err := s.orders.SumTransactions(gctx, transactionStatuses, s.currency, w.span)
			if err != nil {
				return fmt.Errorf("orders.SumTransactions: %w", err)
			}
			*w.target = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.TransactionStats{}, fmt.Errorf("g.Wait: %w", err)
	}

	return stats, nil
}

func timeSpan(from, to time.Time) *domain.TimeRange {
	return &domain.TimeRange{After: lo.ToPtr(from), Before: lo.ToPtr(to)}
}
