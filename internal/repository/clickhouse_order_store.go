package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
	pkgch "github.com/alokrrr/Ecom-Analytics/pkg/clickhouse"
)

// CHOrderStore lands ingested order events in the ecom schema.
type CHOrderStore struct {
	client *pkgch.Client
	db     *sql.DB
	schema string
}

func NewCHOrderStore(ch *pkgch.Client, schema string) *CHOrderStore {
	return &CHOrderStore{client: ch, db: ch.DB(), schema: schema}
}

// Init ensures the database and tables exist.
func (s *CHOrderStore) Init(ctx context.Context) error {
	ddl := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", s.schema),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.orders (
            order_id UInt64,
            user_id UInt64,
            order_date DateTime,
            status LowCardinality(String),
            total_amount Float64
        ) ENGINE = MergeTree ORDER BY (order_date, order_id)`, s.schema),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.order_items (
            order_item_id UInt64,
            order_id UInt64,
            product_id UInt64,
            quantity UInt32,
            unit_price Float64
        ) ENGINE = MergeTree ORDER BY (order_id, order_item_id)`, s.schema),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.products (
            product_id UInt64,
            sku String,
            name String,
            category LowCardinality(String),
            price Float64
        ) ENGINE = MergeTree ORDER BY product_id`, s.schema),
	}
	return s.client.InitSchema(ctx, ddl)
}

// StoreBatch inserts orders and their items in two batched inserts.
func (s *CHOrderStore) StoreBatch(ctx context.Context, orders []*models.OrderEvent) error {
	if len(orders) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	oq := fmt.Sprintf("INSERT INTO %s.orders (order_id, user_id, order_date, status, total_amount) VALUES (?, ?, ?, ?, ?)", s.schema)
	ostmt, err := tx.PrepareContext(ctx, oq)
	if err != nil {
		return fmt.Errorf("prepare orders: %w", err)
	}
	defer ostmt.Close()

	for _, o := range orders {
		if _, err := ostmt.ExecContext(ctx, uint64(o.OrderID), uint64(o.UserID), o.OrderDate, o.Status, o.TotalAmount); err != nil {
			return fmt.Errorf("insert order %d: %w", o.OrderID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit orders: %w", err)
	}

	tx, err = s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin items: %w", err)
	}
	defer tx.Rollback()

	iq := fmt.Sprintf("INSERT INTO %s.order_items (order_item_id, order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?, ?)", s.schema)
	istmt, err := tx.PrepareContext(ctx, iq)
	if err != nil {
		return fmt.Errorf("prepare order_items: %w", err)
	}
	defer istmt.Close()

	for _, o := range orders {
		for _, it := range o.Items {
			if _, err := istmt.ExecContext(ctx, uint64(it.OrderItemID), uint64(o.OrderID), uint64(it.ProductID), uint32(it.Quantity), it.UnitPrice); err != nil {
				return fmt.Errorf("insert item %d: %w", it.OrderItemID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order_items: %w", err)
	}
	return nil
}

// Health pings the connection.
func (s *CHOrderStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}
