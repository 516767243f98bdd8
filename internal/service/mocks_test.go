package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/cache"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/text/currency"
)

// MockOrderRepository implements port.OrderRepository for testing
type MockOrderRepository struct {
	mu sync.Mutex

	PlaceOrdersFunc  func(req domain.CheckoutRequest) ([]domain.Order, error)
	PlacedRequests   []domain.CheckoutRequest
	Order            domain.Order
	OrderErr         error
	SearchResult     []domain.Order
	SearchErr        error
	SearchedFilter   *domain.OrderFilter
	UpdatedStatus    *domain.StatusUpdate
	CancelledOrderID uuid.UUID
	SoftDeleted      []uuid.UUID
	SoftDeletedCount int64
	HardDeleted      uuid.UUID
	Stats            domain.OrderStats
	SumFunc          func(createdAt *domain.TimeRange) (domain.TransactionSummary, error)
	SummedRanges     []*domain.TimeRange
	SummedStatuses   []domain.OrderStatus
	SummedCurrency   currency.Unit
	WriteErr         error
}

func (m *MockOrderRepository) PlaceOrders(_ context.Context, req domain.CheckoutRequest) ([]domain.Order, error) {
	m.PlacedRequests = append(m.PlacedRequests, req)
	return m.PlaceOrdersFunc(req)
}

func (m *MockOrderRepository) GetOrder(_ context.Context, _ uuid.UUID) (domain.Order, error) {
	return m.Order, m.OrderErr
}

func (m *MockOrderRepository) SearchOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	m.SearchedFilter = &filter
	return m.SearchResult, m.SearchErr
}

func (m *MockOrderRepository) UpdateOrderStatus(_ context.Context, update domain.StatusUpdate) (domain.Order, error) {
	m.UpdatedStatus = &update
	if m.WriteErr != nil {
		return domain.Order{}, m.WriteErr
	}
	order := m.Order
	order.Status = update.Status
	return order, nil
}

func (m *MockOrderRepository) CancelOrder(_ context.Context, orderID uuid.UUID, _ string) (domain.Order, error) {
	m.CancelledOrderID = orderID
	if m.WriteErr != nil {
		return domain.Order{}, m.WriteErr
	}
	order := m.Order
	order.Status = domain.OrderStatusCancelled
	return order, nil
}

func (m *MockOrderRepository) SoftDeleteOrder(_ context.Context, orderID uuid.UUID) error {
	m.SoftDeleted = append(m.SoftDeleted, orderID)
	return m.WriteErr
}

func (m *MockOrderRepository) SoftDeleteOrders(_ context.Context, orderIDs []uuid.UUID) (int64, error) {
	m.SoftDeleted = append(m.SoftDeleted, orderIDs...)
	return m.SoftDeletedCount, m.WriteErr
}

func (m *MockOrderRepository) DeleteOrder(_ context.Context, orderID uuid.UUID) error {
	m.HardDeleted = orderID
	return m.WriteErr
}

func (m *MockOrderRepository) CountOrdersByStatus(_ context.Context) (domain.OrderStats, error) {
	return m.Stats, m.OrderErr
}

// SumTransactions is called concurrently by TransactionStats
func (m *MockOrderRepository) SumTransactions(_ context.Context, statuses []domain.OrderStatus, cur currency.Unit, createdAt *domain.TimeRange) (domain.TransactionSummary, error) {
	m.mu.Lock()
	m.SummedRanges = append(m.SummedRanges, createdAt)
	m.SummedStatuses = statuses
	m.SummedCurrency = cur
	m.mu.Unlock()

	return m.SumFunc(createdAt)
}

// MockCartRepository implements port.CartRepository for testing
type MockCartRepository struct {
	Cart       domain.Cart
	CartErr    error
	DeletedIDs []uuid.UUID
	DeleteErr  error
}

func (m *MockCartRepository) GetCart(_ context.Context, _ string) (domain.Cart, error) {
	return m.Cart, m.CartErr
}

func (m *MockCartRepository) AddItem(_ context.Context, _ string, _ domain.CartItem) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (m *MockCartRepository) UpdateQuantity(_ context.Context, _ string, _ uuid.UUID, _ int) error {
	return nil
}

func (m *MockCartRepository) DeleteItems(_ context.Context, _ string, itemIDs []uuid.UUID) (int64, error) {
	m.DeletedIDs = append(m.DeletedIDs, itemIDs...)
	return int64(len(itemIDs)), m.DeleteErr
}

func (m *MockCartRepository) Clear(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

// MockReportRepository implements port.ReportRepository for testing
type MockReportRepository struct {
	mu sync.Mutex

	Items        []domain.VendorOrderItem
	Err          error
	Calls        int
	LastVendorID *string
	LastSpan     *domain.TimeRange

	// OnList runs at the start of every call
	OnList func()
	// Block, when set, holds every call until closed or the context ends
	Block chan struct{}
}

func (m *MockReportRepository) ListVendorOrderItems(ctx context.Context, vendorID *string, createdAt *domain.TimeRange) ([]domain.VendorOrderItem, error) {
	if m.OnList != nil {
		m.OnList()
	}

	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.LastVendorID = vendorID
	m.LastSpan = createdAt

	return m.Items, m.Err
}

// MockCatalogRepository implements port.CatalogRepository for testing
type MockCatalogRepository struct {
	Vendors        []domain.Vendor
	Alerts         []domain.StockAlert
	AlertThreshold int
	Err            error
}

func (m *MockCatalogRepository) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	return product, m.Err
}

func (m *MockCatalogRepository) GetProduct(_ context.Context, _ uuid.UUID) (domain.Product, error) {
	return domain.Product{}, m.Err
}

func (m *MockCatalogRepository) SetVariantStock(_ context.Context, _ uuid.UUID, _ int) error {
	return m.Err
}

func (m *MockCatalogRepository) UpdateVariantPrice(_ context.Context, _ uuid.UUID, _ domain.Money) error {
	return m.Err
}

func (m *MockCatalogRepository) DeleteProduct(_ context.Context, _ uuid.UUID) error {
	return m.Err
}

func (m *MockCatalogRepository) SoftDeleteProduct(_ context.Context, _ uuid.UUID) error {
	return m.Err
}

func (m *MockCatalogRepository) ListStockAlerts(_ context.Context, threshold int) ([]domain.StockAlert, error) {
	m.AlertThreshold = threshold
	return m.Alerts, m.Err
}

func (m *MockCatalogRepository) ListVendors(_ context.Context) ([]domain.Vendor, error) {
	return m.Vendors, m.Err
}

// MockReportCache implements cache.VendorReportCache for testing
type MockReportCache struct {
	mu sync.Mutex

	Entries       map[string][]domain.VendorAggregate
	Gen           int64
	GenErr        error
	GetErr        error
	Invalidations int
}

func (m *MockReportCache) Generation(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Gen, m.GenErr
}

func (m *MockReportCache) Get(_ context.Context, key string) ([]domain.VendorAggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if v, ok := m.Entries[key]; ok {
		return v, nil
	}
	return nil, cache.ErrCacheMiss
}

func (m *MockReportCache) Set(_ context.Context, key string, vendors []domain.VendorAggregate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Entries == nil {
		m.Entries = make(map[string][]domain.VendorAggregate)
	}
	m.Entries[key] = vendors
	return nil
}

func (m *MockReportCache) Invalidate(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Invalidations++
	m.Gen++
	return nil
}

// MockTransactor implements port.Transactor for testing. It counts outcomes, writes are not undone.
type MockTransactor struct {
	Orders *MockOrderRepository
	Carts  *MockCartRepository

	Committed  int
	RolledBack int
}

func (m *MockTransactor) InTx(_ context.Context, fn func(repos port.TxRepositories) error) error {
	if err := fn(port.TxRepositories{Orders: m.Orders, Carts: m.Carts}); err != nil {
		m.RolledBack++
		return err
	}
	m.Committed++
	return nil
}
