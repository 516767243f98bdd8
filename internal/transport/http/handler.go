package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const internalErrorMessage = "服务器内部错误"

type CheckoutService interface {
	Checkout(ctx context.Context, req domain.CheckoutRequest) ([]domain.Order, error)
	CheckoutCart(ctx context.Context, userID string, addressID uuid.UUID, itemIDs []uuid.UUID, remarks map[uuid.UUID]string) ([]domain.Order, error)
}

type LifecycleService interface {
	UpdateStatus(ctx context.Context, update domain.StatusUpdate) (domain.Order, error)
	Cancel(ctx context.Context, orderID uuid.UUID, userID string) (domain.Order, error)
	SoftDelete(ctx context.Context, orderID uuid.UUID) error
	SoftDeleteMany(ctx context.Context, orderIDs []uuid.UUID) (int64, error)
	HardDelete(ctx context.Context, orderID uuid.UUID) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	GetUserOrder(ctx context.Context, orderID uuid.UUID, userID string) (domain.Order, error)
	ListOrders(ctx context.Context, userID string, status *domain.BuyerStatus) ([]domain.Order, error)
	AdminListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	OrderStats(ctx context.Context) (domain.OrderStats, error)
	TransactionStats(ctx context.Context) (domain.TransactionStats, error)
}

type ReportService interface {
	VendorReport(ctx context.Context, query domain.VendorReportQuery) (domain.VendorReportPage, error)
	VendorList(ctx context.Context) ([]domain.Vendor, error)
	StockAlerts(ctx context.Context) ([]domain.StockAlert, error)
}

// Handler serves the storefront REST API.
type Handler struct {
	checkout  CheckoutService
	lifecycle LifecycleService
	reports   ReportService
	catalog   port.CatalogRepository
	carts     port.CartRepository
	addresses port.AddressRepository
	currency  currency.Unit
	logger    *zap.Logger
}

type Deps struct {
	Checkout  CheckoutService
	Lifecycle LifecycleService
	Reports   ReportService
	Catalog   port.CatalogRepository
	Carts     port.CartRepository
	Addresses port.AddressRepository
	// Currency prices new products.
	Currency currency.Unit
	Logger   *zap.Logger
}

func NewHandler(deps Deps) *Handler {
	return &Handler{
		checkout:  deps.Checkout,
		lifecycle: deps.Lifecycle,
		reports:   deps.Reports,
		catalog:   deps.Catalog,
		carts:     deps.Carts,
		addresses: deps.Addresses,
		currency:  deps.Currency,
		logger:    deps.Logger,
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, code, message string) {
	h.respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError maps err onto a status code. Only caller-facing failures expose their message.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	h.respondFailure(w, r, err, nil)
}

func (h *Handler) respondFailure(w http.ResponseWriter, r *http.Request, err error, committed []domain.Order) {
	msg, kind, ok := domain.UserMessage(err)
	if !ok {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", internalErrorMessage)
		return
	}

	resp := ErrorResponse{
		Error: msg,
		Code:  kind.Code,
	}

	var lineErr *domain.LineError
	if errors.As(err, &lineErr) {
		resp.Line = &lineErr.Index
	}
	if len(committed) > 0 {
		resp.Orders = toOrderDTOs(committed)
	}

	h.respondJSON(w, statusOf(kind.Kind), resp)
}

func statusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindBusinessRule:
		return http.StatusConflict
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.InvalidInput("body", "is not valid JSON")
	}
	return nil
}
