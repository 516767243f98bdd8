package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

type catalogRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewCatalog(pool *pgxpool.Pool) port.CatalogRepository {
	return &catalogRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func (r *catalogRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	var p domain.Product

	if product.Title == "" {
		return p, domain.InvalidInput("title", "is empty")
	}
	if product.VendorID == "" {
		return p, domain.InvalidInput("vendorId", "is empty")
	}
	if len(product.Variants) == 0 {
		return p, domain.InvalidInput("specs", "is empty")
	}
	if product.LogisticsPrice.IsNegative() {
		return p, domain.InvalidInput("logisticsPrice", "must not be negative")
	}
	for _, variant := range product.Variants {
		if err := domain.ValidateStock(variant.Stock); err != nil {
			return p, err
		}
		if variant.Price.IsNegative() {
			return p, domain.InvalidInput("price", "must not be negative")
		}
	}

	minQuantity := max(product.MinQuantity, 1)

	productID, err := withTx(ctx, r.dbtx, func(q *db.Queries) (uuid.UUID, error) {
		row, err := q.InsertProduct(ctx, db.InsertProductParams{
			Title:          product.Title,
			VendorID:       product.VendorID,
			VendorName:     product.VendorName,
			OwnerID:        product.OwnerID,
			Logistics:      product.Logistics,
			LogisticsPrice: product.LogisticsPrice.Amount,
			PriceCurrency:  product.LogisticsPrice.Currency.String(),
			MinQuantity:    int32(minQuantity),
			IsActive:       product.IsActive,
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertProduct: %w", err)
		}

		for _, variant := range product.Variants {
			if variant.Price.Currency != product.LogisticsPrice.Currency {
				return uuid.Nil, fmt.Errorf("variant[%s] currency %s differs from product currency %s",
					variant.Name, variant.Price.Currency, product.LogisticsPrice.Currency)
			}

			_, err := q.InsertVariant(ctx, db.InsertVariantParams{
				ProductID: row.ID,
				Name:      variant.Name,
				Value:     variant.Value,
				Price:     variant.Price.Amount,
				Stock:     int32(variant.Stock),
				Image:     lo.EmptyableToPtr(variant.Image),
			})
			if err != nil {
				return uuid.Nil, fmt.Errorf("q.InsertVariant: %w", err)
			}
		}

		return row.ID, nil
	})
	if err != nil {
		return p, fmt.Errorf("withTx: %w", err)
	}

	return r.GetProduct(ctx, productID)
}

func (r *catalogRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var p domain.Product

	product, err := getProduct(ctx, r.q, productID)
	if err != nil {
		return p, fmt.Errorf("getProduct: %w", err)
	}

	dbVariants, err := r.q.ListVariantsByProduct(ctx, productID)
	if err != nil {
		return p, fmt.Errorf("q.ListVariantsByProduct: %w", err)
	}

	product.Variants = lo.Map(dbVariants, func(row db.ProductVariant, _ int) domain.Variant {
		return mapDBVariantToDomain(row, product.LogisticsPrice.Currency)
	})

	return product, nil
}

// getProduct loads a non-deleted product without its variants.
func getProduct(ctx context.Context, q *db.Queries, productID uuid.UUID) (domain.Product, error) {
	var p domain.Product

	row, err := q.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("q.GetProduct: %w", domain.ErrProductNotFound)
		}
		return p, fmt.Errorf("q.GetProduct: %w", err)
	}

	product, err := mapDBProductToDomain(row)
	if err != nil {
		return p, fmt.Errorf("mapDBProductToDomain: %w", err)
	}

	return product, nil
}

func getVariant(ctx context.Context, q *db.Queries, variantID uuid.UUID, product domain.Product) (domain.Variant, error) {
	row, err := q.GetVariant(ctx, db.GetVariantParams{
		ID:        variantID,
		ProductID: product.ID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Variant{}, fmt.Errorf("q.GetVariant: %w", domain.ErrVariantNotFound)
		}
		return domain.Variant{}, fmt.Errorf("q.GetVariant: %w", err)
	}

	return mapDBVariantToDomain(row, product.LogisticsPrice.Currency), nil
}

func (r *catalogRepository) SetVariantStock(ctx context.Context, variantID uuid.UUID, stock int) error {
	if err := domain.ValidateStock(stock); err != nil {
		return err
	}

	rows, err := r.q.SetVariantStock(ctx, db.SetVariantStockParams{
		Stock: int32(stock),
		ID:    variantID,
	})
	if err != nil {
		return fmt.Errorf("q.SetVariantStock: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("q.SetVariantStock: %w", domain.ErrVariantNotFound)
	}

	return nil
}

// UpdateVariantPrice changes the current price. Existing order items keep their snapshot.
func (r *catalogRepository) UpdateVariantPrice(ctx context.Context, variantID uuid.UUID, price domain.Money) error {
	if price.IsNegative() {
		return domain.InvalidInput("price", "must not be negative")
	}

	rows, err := r.q.UpdateVariantPrice(ctx, db.UpdateVariantPriceParams{
		Price: price.Amount,
		ID:    variantID,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateVariantPrice: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("q.UpdateVariantPrice: %w", domain.ErrVariantNotFound)
	}

	return nil
}

// DeleteProduct removes a product that no order item or cart line points at.
func (r *catalogRepository) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := withTxExec(ctx, r.dbtx, func(q *db.Queries) error {
		refs, err := q.CountProductReferences(ctx, productID)
		if err != nil {
			return fmt.Errorf("q.CountProductReferences: %w", err)
		}

		if refs > 0 {
			return fmt.Errorf("product[%s] has %d references: %w", productID, refs, domain.ErrProductReferenced)
		}

		cmdTag, err := q.DeleteProduct(ctx, productID)
		if err != nil {
			// a reference inserted after the count still trips the foreign key
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
				return fmt.Errorf("q.DeleteProduct: %w", domain.ErrProductReferenced)
			}
			return fmt.Errorf("q.DeleteProduct: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("q.DeleteProduct: %w", domain.ErrProductNotFound)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("withTxExec: %w", err)
	}

	return nil
}

func (r *catalogRepository) SoftDeleteProduct(ctx context.Context, productID uuid.UUID) error {
	cmdTag, err := r.q.SoftDeleteProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("q.SoftDeleteProduct: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.SoftDeleteProduct: %w", domain.ErrProductNotFound)
	}

	return nil
}

func (r *catalogRepository) ListStockAlerts(ctx context.Context, threshold int) ([]domain.StockAlert, error) {
	if threshold < 1 {
		return nil, domain.InvalidInput("threshold", "must be at least 1")
	}

	rows, err := r.q.ListStockAlerts(ctx, int32(threshold))
	if err != nil {
		return nil, fmt.Errorf("q.ListStockAlerts: %w", err)
	}

	alerts := make([]domain.StockAlert, 0, len(rows))

	for _, row := range rows {
		price, err := toMoney(row.Price, row.PriceCurrency)
		if err != nil {
			return nil, fmt.Errorf("toMoney: %w", err)
		}

		alerts = append(alerts, domain.StockAlert{
			VariantID:    row.ID,
			VariantName:  row.Name,
			VariantValue: row.Value,
			Stock:        int(row.Stock),
			Price:        price,
			ProductID:    row.ProductID,
			ProductTitle: row.Title,
			Vendor: domain.Vendor{
				ID:   row.VendorID,
				Name: row.VendorName,
			},
		})
	}

	return alerts, nil
}

func (r *catalogRepository) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	rows, err := r.q.ListVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListVendors: %w", err)
	}

	return lo.Map(rows, func(row db.ListVendorsRow, _ int) domain.Vendor {
		return domain.Vendor{ID: row.VendorID, Name: row.VendorName}
	}), nil
}

func mapDBProductToDomain(row db.Product) (domain.Product, error) {
	logisticsPrice, err := toMoney(row.LogisticsPrice, row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("toMoney: %w", err)
	}

	return domain.Product{
		ID:             row.ID,
		Title:          row.Title,
		VendorID:       row.VendorID,
		VendorName:     row.VendorName,
		OwnerID:        row.OwnerID,
		Logistics:      row.Logistics,
		LogisticsPrice: logisticsPrice,
		MinQuantity:    int(row.MinQuantity),
		IsActive:       row.IsActive,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		DeletedAt:      row.DeletedAt,
	}, nil
}

// variants are priced in their product's currency
func mapDBVariantToDomain(row db.ProductVariant, cur currency.Unit) domain.Variant {
	return domain.Variant{
		ID:        row.ID,
		ProductID: row.ProductID,
		Name:      row.Name,
		Value:     row.Value,
		Price:     domain.Money{Amount: row.Price, Currency: cur},
		Stock:     int(row.Stock),
		Image:     lo.FromPtr(row.Image),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
