package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type addressRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewAddress(pool *pgxpool.Pool) port.AddressRepository {
	return &addressRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

// CreateAddress stores a new address. A default address demotes the user's previous default.
func (r *addressRepository) CreateAddress(ctx context.Context, address domain.Address) (domain.Address, error) {
	var a domain.Address

	if address.UserID == "" {
		return a, domain.InvalidInput("userId", "is empty")
	}
	if address.Recipient == "" {
		return a, domain.InvalidInput("name", "is empty")
	}
	if address.Phone == "" {
		return a, domain.InvalidInput("phone", "is empty")
	}
	if address.Detail == "" {
		return a, domain.InvalidInput("address", "is empty")
	}

	row, err := withTx(ctx, r.dbtx, func(q *db.Queries) (db.InsertAddressRow, error) {
		if address.IsDefault {
			if err := q.ClearDefaultAddress(ctx, address.UserID); err != nil {
				return db.InsertAddressRow{}, fmt.Errorf("q.ClearDefaultAddress: %w", err)
			}
		}

		row, err := q.InsertAddress(ctx, db.InsertAddressParams{
			UserID:    address.UserID,
			Recipient: address.Recipient,
			Phone:     address.Phone,
			Province:  address.Province,
			City:      address.City,
			District:  address.District,
			Detail:    address.Detail,
			IsDefault: address.IsDefault,
		})
		if err != nil {
			return row, fmt.Errorf("q.InsertAddress: %w", err)
		}

		return row, nil
	})
	if err != nil {
		return a, fmt.Errorf("withTx: %w", err)
	}

	address.ID = row.ID
	address.CreatedAt = row.CreatedAt
	address.UpdatedAt = row.UpdatedAt

	return address, nil
}

func (r *addressRepository) GetAddress(ctx context.Context, addressID uuid.UUID, userID string) (domain.Address, error) {
	return getAddress(ctx, r.q, addressID, userID)
}

// getAddress is owner scoped: another user's address is reported as missing.
func getAddress(ctx context.Context, q *db.Queries, addressID uuid.UUID, userID string) (domain.Address, error) {
	row, err := q.GetAddress(ctx, db.GetAddressParams{
		ID:     addressID,
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Address{}, fmt.Errorf("q.GetAddress: %w", domain.ErrAddressNotFound)
		}
		return domain.Address{}, fmt.Errorf("q.GetAddress: %w", err)
	}

	return mapDBAddressToDomain(row), nil
}

func (r *addressRepository) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	rows, err := r.q.ListAddresses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListAddresses: %w", err)
	}

	return lo.Map(rows, func(row db.Address, _ int) domain.Address {
		return mapDBAddressToDomain(row)
	}), nil
}

func (r *addressRepository) SetDefaultAddress(ctx context.Context, addressID uuid.UUID, userID string) error {
	if err := withTxExec(ctx, r.dbtx, func(q *db.Queries) error {
		if err := q.ClearDefaultAddress(ctx, userID); err != nil {
			return fmt.Errorf("q.ClearDefaultAddress: %w", err)
		}

		rows, err := q.SetDefaultAddress(ctx, db.SetDefaultAddressParams{
			ID:     addressID,
			UserID: userID,
		})
		if err != nil {
			return fmt.Errorf("q.SetDefaultAddress: %w", err)
		}

		if rows == 0 {
			return fmt.Errorf("q.SetDefaultAddress: %w", domain.ErrAddressNotFound)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("withTxExec: %w", err)
	}

	return nil
}

func mapDBAddressToDomain(row db.Address) domain.Address {
	return domain.Address{
		ID:        row.ID,
		UserID:    row.UserID,
		Recipient: row.Recipient,
		Phone:     row.Phone,
		Province:  row.Province,
		City:      row.City,
		District:  row.District,
		Detail:    row.Detail,
		IsDefault: row.IsDefault,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
