package repository_test

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/text/currency"
)

var testCurrency = currency.CNY

// startPostgres runs a disposable Postgres with the schema migrated.
func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("storefront"),
		postgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			// postgres restarts once after the init scripts
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	if err := db.Migrate(connStr); err != nil {
		return container, "", fmt.Errorf("db.Migrate: %w", err)
	}

	return container, connStr, nil
}

func truncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx,
		"TRUNCATE TABLE order_items, orders, cart_items, addresses, product_variants, products CASCADE")
	return err
}

func money(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: testCurrency}
}

// fakeProduct is an active product with one variant of the given stock.
func fakeProduct(stock int) domain.Product {
	return domain.Product{
		Title:          gofakeit.ProductName(),
		VendorID:       gofakeit.UUID(),
		VendorName:     gofakeit.Company(),
		OwnerID:        gofakeit.UUID(),
		Logistics:      gofakeit.RandomString([]string{"SF", "EMS", "YTO"}),
		LogisticsPrice: money("8"),
		MinQuantity:    1,
		IsActive:       true,
		Variants: []domain.Variant{{
			Name:  gofakeit.ProductMaterial(),
			Value: gofakeit.Color(),
			Price: money(fmt.Sprintf("%.2f", gofakeit.Price(1, 100))),
			Stock: stock,
			Image: gofakeit.URL(),
		}},
	}
}

func fakeAddress(userID string) domain.Address {
	return domain.Address{
		UserID:    userID,
		Recipient: gofakeit.Name(),
		Phone:     gofakeit.Phone(),
		Province:  gofakeit.State(),
		City:      gofakeit.City(),
		District:  gofakeit.Street(),
		Detail:    gofakeit.Address().Address,
		IsDefault: false,
	}
}
