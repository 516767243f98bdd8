package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/currency"
)

const testUserID = "user-1"

// Fakes embed the interface so unused methods panic if a test reaches them.

type fakeCheckout struct {
	CheckoutService
	checkout func(req domain.CheckoutRequest) ([]domain.Order, error)
	fromCart func(userID string, addressID uuid.UUID, itemIDs []uuid.UUID, remarks map[uuid.UUID]string) ([]domain.Order, error)
}

func (f *fakeCheckout) Checkout(_ context.Context, req domain.CheckoutRequest) ([]domain.Order, error) {
	return f.checkout(req)
}

func (f *fakeCheckout) CheckoutCart(_ context.Context, userID string, addressID uuid.UUID, itemIDs []uuid.UUID, remarks map[uuid.UUID]string) ([]domain.Order, error) {
	return f.fromCart(userID, addressID, itemIDs, remarks)
}

type fakeLifecycle struct {
	LifecycleService
	listOrders      func(userID string, status *domain.BuyerStatus) ([]domain.Order, error)
	adminListOrders func(filter domain.OrderFilter) ([]domain.Order, error)
	getUserOrder    func(orderID uuid.UUID, userID string) (domain.Order, error)
	updateStatus    func(update domain.StatusUpdate) (domain.Order, error)
	softDeleteMany  func(ids []uuid.UUID) (int64, error)
	hardDelete      func(orderID uuid.UUID) error
	stats           domain.OrderStats
	txStats         domain.TransactionStats
}

func (f *fakeLifecycle) ListOrders(_ context.Context, userID string, status *domain.BuyerStatus) ([]domain.Order, error) {
	return f.listOrders(userID, status)
}

func (f *fakeLifecycle) AdminListOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return f.adminListOrders(filter)
}

func (f *fakeLifecycle) GetUserOrder(_ context.Context, orderID uuid.UUID, userID string) (domain.Order, error) {
	return f.getUserOrder(orderID, userID)
}

func (f *fakeLifecycle) UpdateStatus(_ context.Context, update domain.StatusUpdate) (domain.Order, error) {
	return f.updateStatus(update)
}

func (f *fakeLifecycle) SoftDeleteMany(_ context.Context, ids []uuid.UUID) (int64, error) {
	return f.softDeleteMany(ids)
}

func (f *fakeLifecycle) HardDelete(_ context.Context, orderID uuid.UUID) error {
	return f.hardDelete(orderID)
}

func (f *fakeLifecycle) OrderStats(context.Context) (domain.OrderStats, error) {
	return f.stats, nil
}

func (f *fakeLifecycle) TransactionStats(context.Context) (domain.TransactionStats, error) {
	return f.txStats, nil
}

type fakeReports struct {
	ReportService
	vendorReport func(query domain.VendorReportQuery) (domain.VendorReportPage, error)
}

func (f *fakeReports) VendorReport(_ context.Context, query domain.VendorReportQuery) (domain.VendorReportPage, error) {
	return f.vendorReport(query)
}

type routerFixture struct {
	checkout  *fakeCheckout
	lifecycle *fakeLifecycle
	reports   *fakeReports
	router    http.Handler
}

func newRouterFixture(t *testing.T) *routerFixture {
	f := &routerFixture{
		checkout:  &fakeCheckout{},
		lifecycle: &fakeLifecycle{},
		reports:   &fakeReports{},
	}

	h := NewHandler(Deps{
		Checkout:  f.checkout,
		Lifecycle: f.lifecycle,
		Reports:   f.reports,
		Currency:  currency.CNY,
		Logger:    zaptest.NewLogger(t),
	})
	f.router = NewRouter(h, 5*time.Second)

	return f
}

func (f *routerFixture) do(method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

var (
	asUser  = map[string]string{HeaderUserID: testUserID}
	asAdmin = map[string]string{HeaderUserID: "admin-1", HeaderUserRole: "admin"}
)

func sampleOrder() domain.Order {
	specID := uuid.New()
	return domain.Order{
		ID:        uuid.New(),
		UserID:    testUserID,
		AddressID: uuid.New(),
		Total:     domain.Money{Amount: decimal.RequireFromString("25.5"), Currency: currency.CNY},
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		Items: []domain.OrderItem{{
			ID:             uuid.New(),
			ProductID:      uuid.New(),
			VariantID:      &specID,
			VendorID:       "v1",
			ProductTitle:   "Tea",
			Quantity:       2,
			Price:          domain.Money{Amount: decimal.RequireFromString("10.75"), Currency: currency.CNY},
			LogisticsPrice: domain.Money{Amount: decimal.RequireFromString("4"), Currency: currency.CNY},
			SpecInfo:       "500g * weight",
		}},
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestCheckout_Created(t *testing.T) {
	f := newRouterFixture(t)
	order := sampleOrder()
	addressID := uuid.New()
	productID, specID := uuid.New(), uuid.New()

	var got domain.CheckoutRequest
	f.checkout.checkout = func(req domain.CheckoutRequest) ([]domain.Order, error) {
		got = req
		return []domain.Order{order}, nil
	}

	rec := f.do(http.MethodPost, "/api/v1/orders", CheckoutRequest{
		AddressID: addressID,
		Items:     []CheckoutItemRequest{{ProductID: productID, SpecID: specID, Quantity: 2, Remark: "gift"}},
	}, asUser)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, testUserID, got.UserID)
	assert.Equal(t, addressID, got.AddressID)
	assert.Equal(t, []domain.CheckoutLine{{ProductID: productID, VariantID: specID, Quantity: 2, Remark: "gift"}}, got.Lines)

	orders := decode[[]OrderDTO](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, "25.50", orders[0].TotalPrice)
	assert.Equal(t, "CNY", orders[0].Currency)
	assert.Equal(t, string(domain.BuyerStatusChecked), orders[0].BuyerStatus)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "10.75", orders[0].Items[0].Price)
	assert.Equal(t, "4.00", orders[0].Items[0].LogiPrice)
}

func TestCheckout_RequiresUser(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/orders", CheckoutRequest{}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckout_InvalidJSON(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString("{"))
	req.Header.Set(HeaderUserID, testUserID)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", decode[ErrorResponse](t, rec).Code)
}

func TestCheckout_StockError(t *testing.T) {
	f := newRouterFixture(t)
	f.checkout.checkout = func(domain.CheckoutRequest) ([]domain.Order, error) {
		return nil, &domain.LineError{Index: 0, Err: &domain.StockError{ProductTitle: "Tea", VariantName: "500g"}}
	}

	rec := f.do(http.MethodPost, "/api/v1/orders", CheckoutRequest{}, asUser)

	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "insufficient_stock", resp.Code)
	assert.Contains(t, resp.Error, "Tea")
	require.NotNil(t, resp.Line)
	assert.Equal(t, 0, *resp.Line)
	assert.Empty(t, resp.Orders)
}

func TestCheckout_PartialPerLine(t *testing.T) {
	f := newRouterFixture(t)
	committed := sampleOrder()
	f.checkout.checkout = func(domain.CheckoutRequest) ([]domain.Order, error) {
		return []domain.Order{committed}, &domain.LineError{Index: 1, Err: domain.ErrVariantNotFound}
	}

	rec := f.do(http.MethodPost, "/api/v1/orders", CheckoutRequest{}, asUser)

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	require.NotNil(t, resp.Line)
	assert.Equal(t, 1, *resp.Line)
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, committed.ID, resp.Orders[0].ID)
}

func TestCheckout_InternalErrorHidden(t *testing.T) {
	f := newRouterFixture(t)
	f.checkout.checkout = func(domain.CheckoutRequest) ([]domain.Order, error) {
		return nil, errors.New("pq: connection refused to 10.0.0.5")
	}

	rec := f.do(http.MethodPost, "/api/v1/orders", CheckoutRequest{}, asUser)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, internalErrorMessage, resp.Error)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestCheckoutCart(t *testing.T) {
	f := newRouterFixture(t)
	itemID := uuid.New()
	addressID := uuid.New()

	f.checkout.fromCart = func(userID string, gotAddress uuid.UUID, itemIDs []uuid.UUID, remarks map[uuid.UUID]string) ([]domain.Order, error) {
		assert.Equal(t, testUserID, userID)
		assert.Equal(t, addressID, gotAddress)
		assert.Equal(t, []uuid.UUID{itemID}, itemIDs)
		assert.Equal(t, "fragile", remarks[itemID])
		return []domain.Order{sampleOrder()}, nil
	}

	rec := f.do(http.MethodPost, "/api/v1/orders/from-cart", CartCheckoutRequest{
		AddressID:   addressID,
		CartItemIDs: []uuid.UUID{itemID},
		Remarks:     map[uuid.UUID]string{itemID: "fragile"},
	}, asUser)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestListOrders(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantFilter *domain.BuyerStatus
	}{
		{
			name:       "no filter",
			wantStatus: http.StatusOK,
		},
		{
			name:       "buyer label",
			query:      "?status=DELIVERED",
			wantStatus: http.StatusOK,
			wantFilter: func() *domain.BuyerStatus { s := domain.BuyerStatusDelivered; return &s }(),
		},
		{
			name:       "canonical name is not a buyer label",
			query:      "?status=SHIPPED",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			f.lifecycle.listOrders = func(userID string, status *domain.BuyerStatus) ([]domain.Order, error) {
				assert.Equal(t, testUserID, userID)
				assert.Equal(t, tt.wantFilter, status)
				return nil, nil
			}

			rec := f.do(http.MethodGet, "/api/v1/orders"+tt.query, nil, asUser)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, "[]", rec.Body.String())
			}
		})
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newRouterFixture(t)
	orderID := uuid.New()
	f.lifecycle.getUserOrder = func(id uuid.UUID, userID string) (domain.Order, error) {
		assert.Equal(t, orderID, id)
		return domain.Order{}, domain.ErrOrderNotFound
	}

	rec := f.do(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, asUser)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order_not_found", decode[ErrorResponse](t, rec).Code)
}

func TestGetOrder_BadID(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/orders/not-a-uuid", nil, asUser)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_RequiresRole(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/admin/orders", nil, asUser)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminListOrders_Filter(t *testing.T) {
	f := newRouterFixture(t)

	var got domain.OrderFilter
	f.lifecycle.adminListOrders = func(filter domain.OrderFilter) ([]domain.Order, error) {
		got = filter
		return []domain.Order{sampleOrder()}, nil
	}

	rec := f.do(http.MethodGet,
		"/api/v1/admin/orders?status=PAID&status=SHIPPED&userId=u1&from=2026-01-01T00:00:00Z&sort=asc", nil, asAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.OrderStatus{domain.OrderStatusPaid, domain.OrderStatusShipped}, got.Statuses)
	assert.Equal(t, []string{"u1"}, got.UserIDs)
	assert.True(t, got.Ascending)
	require.NotNil(t, got.CreatedAt)
	require.NotNil(t, got.CreatedAt.After)
	assert.Nil(t, got.CreatedAt.Before)
	assert.True(t, got.CreatedAt.After.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAdminListOrders_BadQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "unknown status", query: "?status=LOST"},
		{name: "bad time", query: "?from=yesterday"},
		{name: "inverted window", query: "?from=2026-02-01T00:00:00Z&to=2026-01-01T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)

			rec := f.do(http.MethodGet, "/api/v1/admin/orders"+tt.query, nil, asAdmin)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newRouterFixture(t)
	orderID := uuid.New()
	tracking := "SF123"

	f.lifecycle.updateStatus = func(update domain.StatusUpdate) (domain.Order, error) {
		assert.Equal(t, orderID, update.OrderID)
		assert.Equal(t, domain.OrderStatusShipped, update.Status)
		assert.Equal(t, &tracking, update.TrackingNumber)
		assert.Nil(t, update.RefundInfo)

		return domain.Order{}, &domain.TransitionError{From: domain.OrderStatusPending, To: domain.OrderStatusShipped}
	}

	rec := f.do(http.MethodPatch, "/api/v1/admin/orders/"+orderID.String()+"/status",
		StatusUpdateRequest{Status: "SHIPPED", TrackingNumber: &tracking}, asAdmin)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "invalid_transition", decode[ErrorResponse](t, rec).Code)
}

func TestSoftDeleteOrders(t *testing.T) {
	f := newRouterFixture(t)
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	f.lifecycle.softDeleteMany = func(got []uuid.UUID) (int64, error) {
		assert.Equal(t, ids, got)
		return 2, nil
	}

	rec := f.do(http.MethodPost, "/api/v1/admin/orders/delete", IDsRequest{IDs: ids}, asAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), decode[CountResponse](t, rec).Count)
}

func TestHardDeleteOrder(t *testing.T) {
	f := newRouterFixture(t)
	orderID := uuid.New()
	f.lifecycle.hardDelete = func(got uuid.UUID) error {
		if got != orderID {
			return domain.ErrOrderNotFound
		}
		return nil
	}

	rec := f.do(http.MethodDelete, "/api/v1/admin/orders/"+orderID.String()+"/purge", nil, asAdmin)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodDelete, "/api/v1/admin/orders/"+uuid.NewString()+"/purge", nil, asAdmin)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order_not_found", decode[ErrorResponse](t, rec).Code)

	rec = f.do(http.MethodDelete, "/api/v1/admin/orders/"+orderID.String()+"/purge", nil, asUser)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOrderStats(t *testing.T) {
	f := newRouterFixture(t)
	f.lifecycle.stats = domain.OrderStats{Total: 3, Pending: 1, Paid: 2}
	f.lifecycle.txStats = domain.TransactionStats{
		Total: domain.TransactionSummary{Count: 2, Amount: domain.Money{Amount: decimal.NewFromInt(70), Currency: currency.CNY}},
	}

	rec := f.do(http.MethodGet, "/api/v1/admin/orders/stats", nil, asAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[OrderStatsResponse](t, rec)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.ByStatus["PAID"])
	assert.Equal(t, 0, resp.ByStatus["CANCELLED"])
	assert.Equal(t, TransactionSummaryDTO{Count: 2, Amount: "70.00"}, resp.Transactions["total"])
}

func TestVendorReport(t *testing.T) {
	f := newRouterFixture(t)

	var got domain.VendorReportQuery
	f.reports.vendorReport = func(query domain.VendorReportQuery) (domain.VendorReportPage, error) {
		got = query
		return domain.VendorReportPage{
			Vendors: []domain.VendorAggregate{{
				VendorID:    "A",
				VendorName:  "Vendor A",
				TotalOrders: 2,
				TotalAmount: domain.Money{Amount: decimal.NewFromInt(60), Currency: currency.CNY},
				MonthlyData: []domain.MonthlyVendorData{{
					Year:        2024,
					Month:       1,
					OrderCount:  2,
					TotalAmount: domain.Money{Amount: decimal.NewFromInt(60), Currency: currency.CNY},
				}},
			}},
			Total:      1,
			Page:       2,
			PageSize:   1,
			TotalPages: 1,
		}, nil
	}

	rec := f.do(http.MethodGet, "/api/v1/admin/vendors/report?vendorId=A&year=2024&page=2&pageSize=1", nil, asAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.VendorID)
	assert.Equal(t, "A", *got.VendorID)
	require.NotNil(t, got.Year)
	assert.Equal(t, 2024, *got.Year)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 1, got.PageSize)
	assert.Contains(t, rec.Body.String(), `"monthlyData":[{"year":2024,"month":1,"orderCount":2,"totalAmount":"60.00"}]`)

	resp := decode[VendorReportResponse](t, rec)
	require.Len(t, resp.Vendors, 1)
	assert.Equal(t, "60.00", resp.Vendors[0].TotalAmount)
	assert.Equal(t, []MonthlyVendorDTO{{Year: 2024, Month: 1, OrderCount: 2, TotalAmount: "60.00"}}, resp.Vendors[0].MonthlyData)
}

func TestVendorReport_BadPage(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/admin/vendors/report?page=two", nil, asAdmin)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
