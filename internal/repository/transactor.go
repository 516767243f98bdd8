package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/port"
)

type transactor struct {
	pool *pgxpool.Pool
}

func NewTransactor(pool *pgxpool.Pool) port.Transactor {
	return &transactor{pool: pool}
}

// InTx hands fn repositories bound to one transaction. Their own withTx calls join it.
func (t *transactor) InTx(ctx context.Context, fn func(repos port.TxRepositories) error) error {
	return inTx(ctx, t.pool, func(tx pgx.Tx) error {
		return fn(port.TxRepositories{
			Orders: NewOrderWithTx(tx),
			Carts:  NewCartWithTx(tx),
		})
	})
}
