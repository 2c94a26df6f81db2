package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/ordercore/internal/db"
	"github.com/nikolayk812/ordercore/internal/port"
)

type store struct {
	dbtx db.DBTX

	products  port.ProductRepository
	orders    port.OrderRepository
	customers port.CustomerRepository
	stats     port.CustomerStatsRepository
}

func NewStore(pool *pgxpool.Pool) port.Store {
	return &store{
		dbtx:      pool,
		products:  NewProduct(pool),
		orders:    NewOrder(pool),
		customers: NewCustomer(pool),
		stats:     NewCustomerStats(pool),
	}
}

func NewStoreWithTx(tx pgx.Tx) port.Store {
	return &store{
		dbtx:      tx,
		products:  NewProductWithTx(tx),
		orders:    NewOrderWithTx(tx),
		customers: NewCustomerWithTx(tx),
		stats:     NewCustomerStatsWithTx(tx),
	}
}

func (s *store) Products() port.ProductRepository { return s.products }
func (s *store) Orders() port.OrderRepository { return s.orders }
func (s *store) Customers() port.CustomerRepository { return s.customers }
func (s *store) Stats() port.CustomerStatsRepository { return s.stats }

func (s *store) InTx(ctx context.Context, fn func(tx port.Store) error) error {
	if _, ok := s.dbtx.(pgx.Tx); ok {
		return fn(s)
	}

	_, err := inTx(ctx, s.dbtx, func(tx pgx.Tx) (struct{}, error) {
		return struct{}{}, fn(NewStoreWithTx(tx))
	})
	return err
}
