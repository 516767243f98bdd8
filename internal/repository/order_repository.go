package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		dbtx: tx, // use provided transaction instead
	}
}

func (r *orderRepository) PlaceOrders(ctx context.Context, req domain.CheckoutRequest) ([]domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("req.Validate: %w", err)
	}

	orders, err := withTx(ctx, r.dbtx, func(q *db.Queries) ([]domain.Order, error) {
		address, err := getAddress(ctx, q, req.AddressID, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("getAddress: %w", err)
		}

		orders := make([]domain.Order, 0, len(req.Lines))

		// lines are processed in request order, each one becomes its own order
		for i, line := range req.Lines {
			order, err := placeOrder(ctx, q, req.UserID, address, line)
			if err != nil {
				return nil, &domain.LineError{Index: i, Err: err}
			}
			orders = append(orders, order)
		}

		return orders, nil
	})
	if err != nil {
		return nil, fmt.Errorf("withTx: %w", err)
	}

	return orders, nil
}

func placeOrder(ctx context.Context, q *db.Queries, userID string, address domain.Address, line domain.CheckoutLine) (domain.Order, error) {
	var o domain.Order

	product, err := getProduct(ctx, q, line.ProductID)
	if err != nil {
		return o, fmt.Errorf("getProduct: %w", err)
	}

	if !product.IsActive {
		return o, fmt.Errorf("product[%s] is inactive: %w", product.ID, domain.ErrProductNotFound)
	}

	variant, err := getVariant(ctx, q, line.VariantID, product)
	if err != nil {
		return o, fmt.Errorf("getVariant: %w", err)
	}

	order, err := domain.NewOrder(userID, address, product, variant, line)
	if err != nil {
		return o, fmt.Errorf("domain.NewOrder: %w", err)
	}

	// the stock guard lives in the WHERE clause, so concurrent checkouts cannot oversell
	_, err = q.DecrementVariantStock(ctx, db.DecrementVariantStockParams{
		Quantity: int32(line.Quantity),
		ID:       variant.ID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return o, fmt.Errorf("q.DecrementVariantStock: %w", &domain.StockError{
				ProductTitle: product.Title,
				VariantName:  variant.Name,
			})
		}
		return o, fmt.Errorf("q.DecrementVariantStock: %w", err)
	}

	orderID, err := insertOrder(ctx, q, order)
	if err != nil {
		return o, fmt.Errorf("insertOrder: %w", err)
	}

	return getOrder(ctx, q, orderID)
}

func insertOrder(ctx context.Context, q *db.Queries, order domain.Order) (uuid.UUID, error) {
	if len(order.Items) == 0 {
		return uuid.Nil, errors.New("no items in order")
	}

	orderID, err := q.InsertOrder(ctx, db.InsertOrderParams{
		UserID:        order.UserID,
		AddressID:     order.AddressID,
		TotalAmount:   order.Total.Amount,
		TotalCurrency: order.Total.Currency.String(),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.InsertOrder: %w", err)
	}

	for _, item := range order.Items {
		arg := db.InsertOrderItemParams{
			OrderID:        orderID,
			ProductID:      item.ProductID,
			VariantID:      item.VariantID,
			VendorID:       item.VendorID,
			ProductTitle:   item.ProductTitle,
			Quantity:       int32(item.Quantity),
			PriceAmount:    item.Price.Amount,
			PriceCurrency:  item.Price.Currency.String(),
			LogisticsPrice: item.LogisticsPrice.Amount,
			Remark:         item.Remark,
			SpecInfo:       item.SpecInfo,
		}
		if err := q.InsertOrderItem(ctx, arg); err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertOrderItem: %w", err)
		}
	}

	return orderID, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return getOrder(ctx, r.q, orderID)
}

func getOrder(ctx context.Context, q *db.Queries, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	dbOrder, err := q.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return o, fmt.Errorf("q.GetOrder: %w", domain.ErrOrderNotFound)
		}
		return o, fmt.Errorf("q.GetOrder: %w", err)
	}

	orders, err := loadOrders(ctx, q, []db.Order{dbOrder})
	if err != nil {
		return o, fmt.Errorf("loadOrders: %w", err)
	}

	return orders[0], nil
}

// loadOrders maps order rows and eagerly attaches their items and addresses, keeping row order.
func loadOrders(ctx context.Context, q *db.Queries, rows []db.Order) ([]domain.Order, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	orderIDs := lo.Map(rows, func(row db.Order, _ int) uuid.UUID {
		return row.ID
	})
	addressIDs := lo.Uniq(lo.Map(rows, func(row db.Order, _ int) uuid.UUID {
		return row.AddressID
	}))

	dbItems, err := q.GetOrderItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("q.GetOrderItemsByOrderIDs: %w", err)
	}

	dbAddresses, err := q.GetAddressesByIDs(ctx, addressIDs)
	if err != nil {
		return nil, fmt.Errorf("q.GetAddressesByIDs: %w", err)
	}

	itemsByOrder := lo.GroupBy(dbItems, func(item db.OrderItem) uuid.UUID {
		return item.OrderID
	})
	addressesByID := lo.KeyBy(dbAddresses, func(address db.Address) uuid.UUID {
		return address.ID
	})

	orders := make([]domain.Order, 0, len(rows))

	for _, row := range rows {
		order, err := mapDBOrderToDomain(row, itemsByOrder[row.ID])
		if err != nil {
			return nil, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}

		if dbAddress, ok := addressesByID[row.AddressID]; ok {
			order.Address = lo.ToPtr(mapDBAddressToDomain(dbAddress))
		}

		orders = append(orders, order)
	}

	return orders, nil
}

func mapDomainOrderFilterToDBFilter(filter domain.OrderFilter) db.SearchOrdersParams {
	var statuses []string
	for _, status := range filter.Statuses {
		statuses = append(statuses, string(status))
	}

	var createdAfter, createdBefore *time.Time

	if filter.CreatedAt != nil {
		createdAfter = filter.CreatedAt.After
		createdBefore = filter.CreatedAt.Before
	}

	return db.SearchOrdersParams{
		Ids:           nilSliceIfEmpty(filter.IDs),
		UserIds:       nilSliceIfEmpty(filter.UserIDs),
		Statuses:      nilSliceIfEmpty(statuses),
		CreatedAfter:  createdAfter,
		CreatedBefore: createdBefore,
		Ascending:     filter.Ascending,
	}
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	dbOrders, err := r.q.SearchOrders(ctx, mapDomainOrderFilterToDBFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("q.SearchOrders: %w", err)
	}

	orders, err := loadOrders(ctx, r.q, dbOrders)
	if err != nil {
		return nil, fmt.Errorf("loadOrders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, update domain.StatusUpdate) (domain.Order, error) {
	var o domain.Order

	if err := update.Validate(); err != nil {
		return o, fmt.Errorf("update.Validate: %w", err)
	}

	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		current, err := q.GetOrder(ctx, update.OrderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return o, fmt.Errorf("q.GetOrder: %w", domain.ErrOrderNotFound)
			}
			return o, fmt.Errorf("q.GetOrder: %w", err)
		}

		from, err := domain.ToOrderStatus(current.Status)
		if err != nil {
			return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", current.Status, err)
		}

		if err := domain.CheckTransition(from, update.Status); err != nil {
			return o, err
		}

		// optimistic guard: a concurrent change of the same order leaves zero rows here
		cmdTag, err := q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
			NewStatus:      string(update.Status),
			TrackingNumber: update.TrackingNumber,
			ShippingInfo:   update.ShippingInfo,
			RefundInfo:     update.RefundInfo,
			ID:             update.OrderID,
			ExpectedStatus: current.Status,
		})
		if err != nil {
			return o, fmt.Errorf("q.UpdateOrderStatus: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return o, fmt.Errorf("q.UpdateOrderStatus: %w", domain.ErrStatusConflict)
		}

		if update.Status == domain.OrderStatusCancelled && from.ReleasesStock() {
			if err := restoreStock(ctx, q, update.OrderID); err != nil {
				return o, fmt.Errorf("restoreStock: %w", err)
			}
		}

		return getOrder(ctx, q, update.OrderID)
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) CancelOrder(ctx context.Context, orderID uuid.UUID, userID string) (domain.Order, error) {
	var o domain.Order

	if orderID == uuid.Nil {
		return o, domain.InvalidInput("orderId", "is empty")
	}
	if userID == "" {
		return o, domain.InvalidInput("userId", "is empty")
	}

	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		cmdTag, err := q.CancelPendingOrder(ctx, db.CancelPendingOrderParams{
			ID:     orderID,
			UserID: userID,
		})
		if err != nil {
			return o, fmt.Errorf("q.CancelPendingOrder: %w", err)
		}

		// missing, foreign and non-pending orders are indistinguishable to the buyer
		if cmdTag.RowsAffected() == 0 {
			return o, fmt.Errorf("q.CancelPendingOrder: %w", domain.ErrCancelNotAllowed)
		}

		if err := restoreStock(ctx, q, orderID); err != nil {
			return o, fmt.Errorf("restoreStock: %w", err)
		}

		return getOrder(ctx, q, orderID)
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

// restoreStock gives every item quantity back to its variant. Items whose variant is gone are skipped.
func restoreStock(ctx context.Context, q *db.Queries, orderID uuid.UUID) error {
	items, err := q.GetOrderItems(ctx, orderID)
	if err != nil {
		return fmt.Errorf("q.GetOrderItems: %w", err)
	}

	for _, item := range items {
		if item.VariantID == nil {
			continue
		}

		_, err := q.IncrementVariantStock(ctx, db.IncrementVariantStockParams{
			Quantity: item.Quantity,
			ID:       *item.VariantID,
		})
		if err != nil {
			return fmt.Errorf("q.IncrementVariantStock: %w", err)
		}
	}

	return nil
}

func (r *orderRepository) SoftDeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return domain.InvalidInput("orderId", "is empty")
	}

	cmdTag, err := r.q.SoftDeleteOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("q.SoftDeleteOrder: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.SoftDeleteOrder: %w", domain.ErrOrderNotFound)
	}

	return nil
}

func (r *orderRepository) SoftDeleteOrders(ctx context.Context, orderIDs []uuid.UUID) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, domain.InvalidInput("ids", "is empty")
	}

	cmdTag, err := r.q.SoftDeleteOrders(ctx, lo.Uniq(orderIDs))
	if err != nil {
		return 0, fmt.Errorf("q.SoftDeleteOrders: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return domain.InvalidInput("orderId", "is empty")
	}

	if err := withTxExec(ctx, r.dbtx, func(q *db.Queries) error {
		if _, err := q.DeleteOrderItems(ctx, orderID); err != nil {
			return fmt.Errorf("q.DeleteOrderItems: %w", err)
		}

		cmdTag, err := q.DeleteOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("q.DeleteOrder: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("q.DeleteOrder: %w", domain.ErrOrderNotFound)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("withTxExec: %w", err)
	}

	return nil
}

func (r *orderRepository) CountOrdersByStatus(ctx context.Context) (domain.OrderStats, error) {
	rows, err := r.q.CountOrdersByStatus(ctx)
	if err != nil {
		return domain.OrderStats{}, fmt.Errorf("q.CountOrdersByStatus: %w", err)
	}

	counts := make(map[domain.OrderStatus]int, len(rows))
	for _, row := range rows {
		status, err := domain.ToOrderStatus(row.Status)
		if err != nil {
			return domain.OrderStats{}, fmt.Errorf("domain.ToOrderStatus[%s]: %w", row.Status, err)
		}
		counts[status] = int(row.Orders)
	}

	return domain.NewOrderStats(counts), nil
}

func (r *orderRepository) SumTransactions(ctx context.Context, statuses []domain.OrderStatus, cur currency.Unit, createdAt *domain.TimeRange) (domain.TransactionSummary, error) {
	var s domain.TransactionSummary

	if len(statuses) == 0 {
		return s, domain.InvalidInput("statuses", "is empty")
	}

	arg := db.SumTransactionsParams{
		Statuses: lo.Map(statuses, func(status domain.OrderStatus, _ int) string {
			return string(status)
		}),
		Currency: cur.String(),
	}
	if createdAt != nil {
		arg.CreatedAfter = createdAt.After
		arg.CreatedBefore = createdAt.Before
	}

	row, err := r.q.SumTransactions(ctx, arg)
	if err != nil {
		return s, fmt.Errorf("q.SumTransactions: %w", err)
	}

	return domain.TransactionSummary{
		Count:  int(row.Orders),
		Amount: domain.Money{Amount: row.Amount, Currency: cur},
	}, nil
}

func mapDBOrderItemToDomain(row db.OrderItem) (domain.OrderItem, error) {
	price, err := toMoney(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("toMoney: %w", err)
	}

	return domain.OrderItem{
		ID:             row.ID,
		OrderID:        row.OrderID,
		ProductID:      row.ProductID,
		VariantID:      row.VariantID,
		VendorID:       row.VendorID,
		ProductTitle:   row.ProductTitle,
		Quantity:       int(row.Quantity),
		Price:          price,
		LogisticsPrice: domain.Money{Amount: row.LogisticsPrice, Currency: price.Currency},
		Remark:         row.Remark,
		SpecInfo:       row.SpecInfo,
		CreatedAt:      row.CreatedAt,
	}, nil
}

func mapDBOrderToDomain(row db.Order, dbItems []db.OrderItem) (domain.Order, error) {
	var o domain.Order

	status, err := domain.ToOrderStatus(row.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", row.Status, err)
	}

	total, err := toMoney(row.TotalAmount, row.TotalCurrency)
	if err != nil {
		return o, fmt.Errorf("toMoney: %w", err)
	}

	var items []domain.OrderItem

	for _, dbItem := range dbItems {
		item, err := mapDBOrderItemToDomain(dbItem)
		if err != nil {
			return o, fmt.Errorf("mapDBOrderItemToDomain: %w", err)
		}
		items = append(items, item)
	}

	return domain.Order{
		ID:             row.ID,
		UserID:         row.UserID,
		AddressID:      row.AddressID,
		Total:          total,
		Status:         status,
		TrackingNumber: row.TrackingNumber,
		ShippingInfo:   row.ShippingInfo,
		RefundInfo:     row.RefundInfo,
		Items:          items,
		PaidAt:         row.PaidAt,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		DeletedAt:      row.DeletedAt,
	}, nil
}

func toMoney(amount decimal.Decimal, code string) (domain.Money, error) {
	parsedCurrency, err := currency.ParseISO(code)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return domain.Money{Amount: amount, Currency: parsedCurrency}, nil
}

func nilSliceIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
