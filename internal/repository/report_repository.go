package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type reportRepository struct {
	q *db.Queries
}

func NewReport(pool *pgxpool.Pool) port.ReportRepository {
	return &reportRepository{
		q: db.New(pool),
	}
}

func (r *reportRepository) ListVendorOrderItems(ctx context.Context, vendorID *string, createdAt *domain.TimeRange) ([]domain.VendorOrderItem, error) {
	arg := db.ListVendorOrderItemsParams{
		VendorID: vendorID,
	}
	if createdAt != nil {
		arg.CreatedAfter = createdAt.After
		arg.CreatedBefore = createdAt.Before
	}

	rows, err := r.q.ListVendorOrderItems(ctx, arg)
	if err != nil {
		return nil, fmt.Errorf("q.ListVendorOrderItems: %w", err)
	}

	items := make([]domain.VendorOrderItem, 0, len(rows))

	for _, row := range rows {
		price, err := toMoney(row.PriceAmount, row.PriceCurrency)
		if err != nil {
			return nil, fmt.Errorf("toMoney: %w", err)
		}

		items = append(items, domain.VendorOrderItem{
			OrderID:    row.OrderID,
			OrderedAt:  row.OrderedAt,
			VendorID:   row.VendorID,
			VendorName: row.VendorName,
			Price:      price,
			Quantity:   int(row.Quantity),
		})
	}

	return items, nil
}
