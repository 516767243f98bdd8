package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: ttl,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

// wire form, currency.Unit does not survive encoding/json
type cachedMoney struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type cachedMonth struct {
	Year        int         `json:"year"`
	Month       int         `json:"month"`
	OrderCount  int         `json:"orderCount"`
	TotalAmount cachedMoney `json:"totalAmount"`
}

type cachedVendor struct {
	VendorID    string        `json:"vendorId"`
	VendorName  string        `json:"vendorName"`
	TotalOrders int           `json:"totalOrders"`
	TotalAmount cachedMoney   `json:"totalAmount"`
	MonthlyData []cachedMonth `json:"monthlyData"`
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]domain.VendorAggregate, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("client.Get: %w", err)
	}

	var cached []cachedVendor
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	vendors := make([]domain.VendorAggregate, 0, len(cached))

	for _, c := range cached {
		vendor, err := fromCachedVendor(c)
		if err != nil {
			return nil, fmt.Errorf("fromCachedVendor: %w", err)
		}
		vendors = append(vendors, vendor)
	}

	return vendors, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, vendors []domain.VendorAggregate) error {
	data, err := json.Marshal(lo.Map(vendors, toCachedVendor))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	// jitter spreads expiry of keys written together
	ttl := r.baseTTL + time.Duration(rand.Int64N(int64(r.baseTTL/5)+1))

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (r *RedisCache) Generation(ctx context.Context) (int64, error) {
	generation, err := r.client.Get(ctx, vendorReportGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("client.Get: %w", err)
	}

	return generation, nil
}

// Invalidate moves readers to the next generation. Older entries age out with their TTL.
func (r *RedisCache) Invalidate(ctx context.Context) error {
	if err := r.client.Incr(ctx, vendorReportGenerationKey).Err(); err != nil {
		return fmt.Errorf("client.Incr: %w", err)
	}

	return nil
}

func toCachedMoney(m domain.Money) cachedMoney {
	return cachedMoney{Amount: m.Amount, Currency: m.Currency.String()}
}

func fromCachedMoney(c cachedMoney) (domain.Money, error) {
	cur, err := currency.ParseISO(c.Currency)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", c.Currency, err)
	}
	return domain.Money{Amount: c.Amount, Currency: cur}, nil
}

func toCachedVendor(v domain.VendorAggregate, _ int) cachedVendor {
	return cachedVendor{
		VendorID:    v.VendorID,
		VendorName:  v.VendorName,
		TotalOrders: v.TotalOrders,
		TotalAmount: toCachedMoney(v.TotalAmount),
		MonthlyData: lo.Map(v.MonthlyData, func(m domain.MonthlyVendorData, _ int) cachedMonth {
			return cachedMonth{
				Year:        m.Year,
				Month:       m.Month,
				OrderCount:  m.OrderCount,
				TotalAmount: toCachedMoney(m.TotalAmount),
			}
		}),
	}
}

func fromCachedVendor(c cachedVendor) (domain.VendorAggregate, error) {
	total, err := fromCachedMoney(c.TotalAmount)
	if err != nil {
		return domain.VendorAggregate{}, err
	}

	months := make([]domain.MonthlyVendorData, 0, len(c.MonthlyData))

	for _, m := range c.MonthlyData {
		amount, err := fromCachedMoney(m.TotalAmount)
		if err != nil {
			return domain.VendorAggregate{}, err
		}

		months = append(months, domain.MonthlyVendorData{
			Year:        m.Year,
			Month:       m.Month,
			OrderCount:  m.OrderCount,
			TotalAmount: amount,
		})
	}

	return domain.VendorAggregate{
		VendorID:    c.VendorID,
		VendorName:  c.VendorName,
		TotalOrders: c.TotalOrders,
		TotalAmount: total,
		MonthlyData: months,
	}, nil
}
