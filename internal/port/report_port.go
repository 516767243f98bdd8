package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type ReportRepository interface {
	// ListVendorOrderItems returns items of non-deleted orders, optionally narrowed
	// to one vendor and an order creation range.
	ListVendorOrderItems(ctx context.Context, vendorID *string, createdAt *domain.TimeRange) ([]domain.VendorOrderItem, error)
}
