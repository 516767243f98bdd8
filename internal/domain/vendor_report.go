package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	unknownVendorName = "未知供应商"
)

// VendorOrderItem is one order item row as seen by the vendor rollup.
type VendorOrderItem struct {
	OrderID    uuid.UUID
	OrderedAt  time.Time
	VendorID   string
	VendorName string
	Price      Money
	Quantity   int
}

type MonthlyVendorData struct {
	Year        int
	Month       int
	OrderCount  int
	TotalAmount Money
}

type VendorAggregate struct {
	VendorID    string
	VendorName  string
	TotalOrders int
	TotalAmount Money
	MonthlyData []MonthlyVendorData
}

type VendorReportQuery struct {
	VendorID *string
	Year     *int
	Page     int
	PageSize int
}

// Normalize applies paging defaults and rejects out-of-range values.
func (q VendorReportQuery) Normalize() (VendorReportQuery, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}

	if q.Page < 1 {
		return q, InvalidInput("page", "must be at least 1")
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return q, InvalidInput("pageSize", fmt.Sprintf("must be between 1 and %d", MaxPageSize))
	}
	if q.VendorID != nil && *q.VendorID == "" {
		q.VendorID = nil
	}
	if q.Year != nil && (*q.Year < 1970 || *q.Year > 9999) {
		return q, InvalidInput("year", "is out of range")
	}

	return q, nil
}

type VendorReportPage struct {
	Vendors    []VendorAggregate
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

type monthKey struct {
	year  int
	month int
}

type monthBucket struct {
	orders map[uuid.UUID]struct{}
	amount Money
}

type vendorBucket struct {
	name   string
	orders map[uuid.UUID]struct{}
	amount Money
	months map[monthKey]*monthBucket
}

// AggregateVendors groups items by vendor and calendar month in loc.
// Order counts are distinct order ids, amounts are price*quantity.
// Vendors are sorted by id, months chronologically.
func AggregateVendors(items []VendorOrderItem, loc *time.Location) ([]VendorAggregate, error) {
	buckets := make(map[string]*vendorBucket)

	for _, item := range items {
		lineTotal := item.Price.Times(item.Quantity)

		vb, ok := buckets[item.VendorID]
		if !ok {
			vb = &vendorBucket{
				name:   item.VendorName,
				orders: make(map[uuid.UUID]struct{}),
				amount: ZeroMoney(item.Price.Currency),
				months: make(map[monthKey]*monthBucket),
			}
			buckets[item.VendorID] = vb
		}

		orderedAt := item.OrderedAt.In(loc)
		key := monthKey{year: orderedAt.Year(), month: int(orderedAt.Month())}

		mb, ok := vb.months[key]
		if !ok {
			mb = &monthBucket{
				orders: make(map[uuid.UUID]struct{}),
				amount: ZeroMoney(item.Price.Currency),
			}
			vb.months[key] = mb
		}

		var err error

		if mb.amount, err = mb.amount.Add(lineTotal); err != nil {
			return nil, fmt.Errorf("vendor[%s] month[%d-%02d]: %w", item.VendorID, key.year, key.month, err)
		}
		if vb.amount, err = vb.amount.Add(lineTotal); err != nil {
			return nil, fmt.Errorf("vendor[%s]: %w", item.VendorID, err)
		}

		mb.orders[item.OrderID] = struct{}{}
		vb.orders[item.OrderID] = struct{}{}
	}

	result := make([]VendorAggregate, 0, len(buckets))

	for vendorID, vb := range buckets {
		keys := lo.Keys(vb.months)
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].year != keys[j].year {
				return keys[i].year < keys[j].year
			}
			return keys[i].month < keys[j].month
		})

		monthly := make([]MonthlyVendorData, 0, len(keys))
		for _, key := range keys {
			mb := vb.months[key]
			monthly = append(monthly, MonthlyVendorData{
				Year:        key.year,
				Month:       key.month,
				OrderCount:  len(mb.orders),
				TotalAmount: mb.amount,
			})
		}

		name := vb.name
		if name == "" {
			name = unknownVendorName
		}

		result = append(result, VendorAggregate{
			VendorID:    vendorID,
			VendorName:  name,
			TotalOrders: len(vb.orders),
			TotalAmount: vb.amount,
			MonthlyData: monthly,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].VendorID < result[j].VendorID
	})

	return result, nil
}

// PaginateVendors slices the vendor list, not the underlying item rows.
func PaginateVendors(all []VendorAggregate, page, pageSize int) VendorReportPage {
	total := len(all)

	start := total
	if page-1 < (total+pageSize-1)/pageSize {
		start = (page - 1) * pageSize
	}
	end := min(start+pageSize, total)

	return VendorReportPage{
		Vendors:    all[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
}
