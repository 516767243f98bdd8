package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type CatalogRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)

	SetVariantStock(ctx context.Context, variantID uuid.UUID, stock int) error
	UpdateVariantPrice(ctx context.Context, variantID uuid.UUID, price domain.Money) error

	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	SoftDeleteProduct(ctx context.Context, productID uuid.UUID) error

	ListStockAlerts(ctx context.Context, threshold int) ([]domain.StockAlert, error)
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
}
