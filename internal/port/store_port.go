package port

import "context"

// Store hands out repositories bound to one connection scope.
// Repositories obtained inside InTx share its transaction.
type Store interface {
	Products() ProductRepository
	Orders() OrderRepository
	Customers() CustomerRepository
	Stats() CustomerStatsRepository

	// InTx runs fn in a transaction and commits when fn returns nil.
	// Called on a Store that is already transactional it reuses that transaction.
	InTx(ctx context.Context, fn func(tx Store) error) error
}
