package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/nikolayk812/storefront/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// VendorReportCache holds full, unpaginated vendor rollups keyed by filter and generation.
type VendorReportCache interface {
	// Generation is bumped by every Invalidate. Read it before computing a rollup and
	// build the key from it, so a rollup computed across an invalidation is never served.
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, key string) ([]domain.VendorAggregate, error)
	Set(ctx context.Context, key string, vendors []domain.VendorAggregate) error
	// Invalidate retires every cached rollup.
	Invalidate(ctx context.Context) error
}

const (
	vendorReportPrefix        = "vendor_report:"
	vendorReportGenerationKey = vendorReportPrefix + "generation"
)

// VendorReportKey identifies a rollup by generation, year and vendor filter. Nil means "all".
func VendorReportKey(generation int64, vendorID *string, year *int) string {
	vendor, y := "all", "all"
	if vendorID != nil {
		vendor = *vendorID
	}
	if year != nil {
		y = strconv.Itoa(*year)
	}
	return fmt.Sprintf("%s%d:%s:%s", vendorReportPrefix, generation, y, vendor)
}

// Nop never stores anything, every Get is a miss.
type Nop struct{}

func (Nop) Generation(context.Context) (int64, error) {
	return 0, nil
}

func (Nop) Get(context.Context, string) ([]domain.VendorAggregate, error) {
	return nil, ErrCacheMiss
}

func (Nop) Set(context.Context, string, []domain.VendorAggregate) error {
	return nil
}

func (Nop) Invalidate(context.Context) error {
	return nil
}
