package port

import (
	"context"
)

// TxRepositories share one database transaction.
type TxRepositories struct {
	Orders OrderRepository
	Carts  CartRepository
}

type Transactor interface {
	// InTx commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(repos TxRepositories) error) error
}
