package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
	pkgch "github.com/alokrrr/Ecom-Analytics/pkg/clickhouse"
	applogger "github.com/alokrrr/Ecom-Analytics/pkg/logger"
)

// CHKPIStore implements KPIStore and RevenueSource over ClickHouse.
// Revenue is always computed from completed orders only.
type CHKPIStore struct {
	db     *sql.DB
	schema string
	l      *applogger.Logger
}

func NewCHKPIStore(ch *pkgch.Client, schema string) *CHKPIStore {
	return &CHKPIStore{db: ch.DB(), schema: schema}
}

// SetLogger injects a structured logger.
func (s *CHKPIStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHKPIStore) table(name string) string { return s.schema + "." + name }

// DailyRevenue returns per-day completed revenue for [from, to]
// inclusive. Days without orders are absent; the detection core fills
// the gaps.
func (s *CHKPIStore) DailyRevenue(ctx context.Context, from, to models.Date) ([]models.RevenueObservation, error) {
	start := time.Now()
	q := fmt.Sprintf(`
        SELECT toDate(o.order_date) AS day,
               toFloat64(SUM(oi.quantity * oi.unit_price)) AS revenue
        FROM %s AS o
        INNER JOIN %s AS oi ON oi.order_id = o.order_id
        WHERE o.status = 'completed'
          AND toDate(o.order_date) >= ? AND toDate(o.order_date) <= ?
        GROUP BY day
        ORDER BY day ASC
    `, s.table("orders"), s.table("order_items"))

	rows, err := s.db.QueryContext(ctx, q, from.Time, to.Time)
	if err != nil {
		s.logErr("daily_revenue query error", err)
		return nil, fmt.Errorf("daily revenue: %w", err)
	}
	defer rows.Close()

	out := make([]models.RevenueObservation, 0, 128)
	for rows.Next() {
		var day time.Time
		var revenue float64
		if err := rows.Scan(&day, &revenue); err != nil {
			s.logErr("daily_revenue scan error", err)
			return nil, fmt.Errorf("scan revenue row: %w", err)
		}
		out = append(out, models.RevenueObservation{Day: models.NewDate(day), Revenue: revenue})
	}
	if err := rows.Err(); err != nil {
		s.logErr("daily_revenue rows error", err)
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse daily_revenue ok",
			applogger.String("from", from.String()),
			applogger.String("to", to.String()),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHKPIStore) Overview(ctx context.Context) (models.Overview, error) {
	var ov models.Overview

	revQ := fmt.Sprintf(`
        SELECT toFloat64(SUM(oi.quantity * oi.unit_price))
        FROM %s AS o
        INNER JOIN %s AS oi ON oi.order_id = o.order_id
        WHERE o.status = 'completed'
    `, s.table("orders"), s.table("order_items"))

	var total sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, revQ).Scan(&total); err != nil {
		s.logErr("overview total query error", err)
		return ov, fmt.Errorf("overview total: %w", err)
	}
	ov.TotalRevenue = total.Float64

	rev30Q := revQ + ` AND toDate(o.order_date) >= toDate(now()) - 29`
	var rev30 sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, rev30Q).Scan(&rev30); err != nil {
		s.logErr("overview rev30 query error", err)
		return ov, fmt.Errorf("overview revenue_30d: %w", err)
	}
	ov.Revenue30d = rev30.Float64

	mauQ := fmt.Sprintf(`
        SELECT toInt64(uniqExact(user_id))
        FROM %s
        WHERE status = 'completed' AND toDate(order_date) >= toDate(now()) - 29
    `, s.table("orders"))
	if err := s.db.QueryRowContext(ctx, mauQ).Scan(&ov.MAU30d); err != nil {
		s.logErr("overview mau query error", err)
		return ov, fmt.Errorf("overview mau_30d: %w", err)
	}

	return ov, nil
}

func (s *CHKPIStore) Categories(ctx context.Context) ([]string, error) {
	q := fmt.Sprintf(`
        SELECT DISTINCT if(category = '', 'Uncategorized', category) AS category
        FROM %s
        ORDER BY category ASC
    `, s.table("products"))

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.logErr("categories query error", err)
		return nil, fmt.Errorf("categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *CHKPIStore) RevenueTrend(ctx context.Context, months int) ([]models.TrendPoint, error) {
	q := fmt.Sprintf(`
        SELECT toStartOfMonth(o.order_date) AS period,
               toFloat64(SUM(oi.quantity * oi.unit_price)) AS revenue
        FROM %s AS o
        INNER JOIN %s AS oi ON oi.order_id = o.order_id
        WHERE o.status = 'completed'
          AND o.order_date >= subtractMonths(toStartOfMonth(now()), ?)
        GROUP BY period
        ORDER BY period ASC
    `, s.table("orders"), s.table("order_items"))

	rows, err := s.db.QueryContext(ctx, q, months-1)
	if err != nil {
		s.logErr("revenue_trend query error", err)
		return nil, fmt.Errorf("revenue trend: %w", err)
	}
	defer rows.Close()

	var out []models.TrendPoint
	for rows.Next() {
		var period time.Time
		var revenue float64
		if err := rows.Scan(&period, &revenue); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		out = append(out, models.TrendPoint{Period: models.NewDate(period), Revenue: revenue})
	}
	return out, rows.Err()
}

func (s *CHKPIStore) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	q := fmt.Sprintf(`
        SELECT p.product_id,
               p.name,
               toInt64(SUM(oi.quantity)) AS units_sold,
               toFloat64(SUM(oi.quantity * oi.unit_price)) AS revenue
        FROM %s AS oi
        INNER JOIN %s AS o ON o.order_id = oi.order_id AND o.status = 'completed'
        INNER JOIN %s AS p ON p.product_id = oi.product_id
        GROUP BY p.product_id, p.name
        ORDER BY revenue DESC
        LIMIT ?
    `, s.table("order_items"), s.table("orders"), s.table("products"))

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		s.logErr("top_products query error", err)
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var out []models.TopProduct
	for rows.Next() {
		var tp models.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.UnitsSold, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

func (s *CHKPIStore) ProductsList(ctx context.Context, limit int) ([]models.ProductRef, error) {
	q := fmt.Sprintf(`
        SELECT product_id, name
        FROM %s
        ORDER BY name ASC
        LIMIT ?
    `, s.table("products"))

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		s.logErr("products_list query error", err)
		return nil, fmt.Errorf("products list: %w", err)
	}
	defer rows.Close()

	var out []models.ProductRef
	for rows.Next() {
		var p models.ProductRef
		if err := rows.Scan(&p.ProductID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan product ref: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *CHKPIStore) Recommendations(ctx context.Context, productID int64, limit int) ([]models.Recommendation, error) {
	q := fmt.Sprintf(`
        SELECT oi2.product_id,
               p.name,
               toInt64(COUNT(*)) AS co_count
        FROM %s AS oi1
        INNER JOIN %s AS oi2 ON oi1.order_id = oi2.order_id
        INNER JOIN %s AS p ON p.product_id = oi2.product_id
        WHERE oi1.product_id = ? AND oi2.product_id != ?
        GROUP BY oi2.product_id, p.name
        ORDER BY co_count DESC
        LIMIT ?
    `, s.table("order_items"), s.table("order_items"), s.table("products"))

	rows, err := s.db.QueryContext(ctx, q, productID, productID, limit)
	if err != nil {
		s.logErr("recommendations query error", err)
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	defer rows.Close()

	var out []models.Recommendation
	for rows.Next() {
		var r models.Recommendation
		if err := rows.Scan(&r.ProductID, &r.Name, &r.CoCount); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *CHKPIStore) logErr(msg string, err error) {
	if s.l != nil {
		s.l.Error(msg, applogger.Error(err))
	}
}
