package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront/internal/cache"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// vendorReportTimeout bounds a rollup computation that no single request owns.
const vendorReportTimeout = time.Minute

// ReportService serves the vendor sales rollup and catalog health views.
type ReportService struct {
	reports        port.ReportRepository
	catalog        port.CatalogRepository
	cache          cache.VendorReportCache
	sfg            singleflight.Group // collapses concurrent misses for the same rollup
	loc            *time.Location
	alertThreshold int
	logger         *zap.Logger
}

func NewReportService(
	reports port.ReportRepository,
	catalog port.CatalogRepository,
	reportCache cache.VendorReportCache,
	loc *time.Location,
	alertThreshold int,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reports:        reports,
		catalog:        catalog,
		cache:          reportCache,
		loc:            loc,
		alertThreshold: alertThreshold,
		logger:         logger,
	}
}

// VendorReport returns one page of per-vendor, per-month sales for non-deleted orders.
// The full rollup is cached, paging is applied afterwards.
func (s *ReportService) VendorReport(ctx context.Context, query domain.VendorReportQuery) (domain.VendorReportPage, error) {
	query, err := query.Normalize()
	if err != nil {
		return domain.VendorReportPage{}, fmt.Errorf("query.Normalize: %w", err)
	}

	generation, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn("vendor report cache generation failed", zap.Error(err))

		vendors, err := s.aggregate(ctx, query)
		if err != nil {
			return domain.VendorReportPage{}, err
		}
		return domain.PaginateVendors(vendors, query.Page, query.PageSize), nil
	}

	key := cache.VendorReportKey(generation, query.VendorID, query.Year)

	ch := s.sfg.DoChan(key, func() (any, error) {
		// shared by every waiter, so it must not die with the first caller's request
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), vendorReportTimeout)
		defer cancel()

		vendors, err := s.cache.Get(ctx, key)
		if err == nil {
			return vendors, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("vendor report cache get failed", zap.String("key", key), zap.Error(err))
		}

		vendors, err = s.aggregate(ctx, query)
		if err != nil {
			return nil, err
		}

		// an invalidation during the scan moved readers past this key already
		if err := s.cache.Set(ctx, key, vendors); err != nil {
			s.logger.Warn("vendor report cache set failed", zap.String("key", key), zap.Error(err))
		}

		return vendors, nil
	})

	select {
	case <-ctx.Done():
		return domain.VendorReportPage{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.VendorReportPage{}, res.Err
		}
		return domain.PaginateVendors(res.Val.([]domain.VendorAggregate), query.Page, query.PageSize), nil
	}
}

func (s *ReportService) aggregate(ctx context.Context, query domain.VendorReportQuery) ([]domain.VendorAggregate, error) {
	var span *domain.TimeRange
	if query.Year != nil {
		yearRange := domain.YearRange(*query.Year, s.loc)
		span = &yearRange
	}

	items, err := s.reports.ListVendorOrderItems(ctx, query.VendorID, span)
	if err != nil {
		return nil, fmt.Errorf("reports.ListVendorOrderItems: %w", err)
	}

	vendors, err := domain.AggregateVendors(items, s.loc)
	if err != nil {
		return nil, fmt.Errorf("domain.AggregateVendors: %w", err)
	}

	return vendors, nil
}

func (s *ReportService) VendorList(ctx context.Context) ([]domain.Vendor, error) {
	vendors, err := s.catalog.ListVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.ListVendors: %w", err)
	}

	return vendors, nil
}

// StockAlerts lists variants below the configured threshold, lowest stock first.
func (s *ReportService) StockAlerts(ctx context.Context) ([]domain.StockAlert, error) {
	alerts, err := s.catalog.ListStockAlerts(ctx, s.alertThreshold)
	if err != nil {
		return nil, fmt.Errorf("catalog.ListStockAlerts: %w", err)
	}

	return alerts, nil
}
