package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"renthour-bot/internal/billing"
	"renthour-bot/internal/config"
	"renthour-bot/internal/pricing"
	"renthour-bot/pkg/redis"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// ErrInsufficientBalance is returned when an order would overdraw the
// user's account.
var ErrInsufficientBalance = errors.New("insufficient balance")

type PostgresStorage struct {
	db     *sqlx.DB
	redis  *redis.Client
	logger *zap.Logger
}

// Listing is a rentable account offered through the bot.
type Listing struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	PriceJSON []byte `db:"price_table"`
	Active    bool   `db:"active"`
}

// PriceTable decodes the listing's JSONB price table.
func (l *Listing) PriceTable() (pricing.PriceTable, error) {
	var table pricing.PriceTable
	if err := json.Unmarshal(l.PriceJSON, &table); err != nil {
		return nil, fmt.Errorf("decode price table: %w", err)
	}
	return table, nil
}

// Account holds a user's prepaid balance. The balance is owned here:
// the pricing and billing packages only read values passed to them.
type Account struct {
	UserID    int64     `db:"user_id"`
	Balance   float64   `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
}

// Order statuses.
const (
	OrderStatusPaid      = "paid"
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID            int64     `db:"id"`
	UserID        int64     `db:"user_id"`
	ListingID     string    `db:"listing_id"`
	ListingTitle  string    `db:"-"`
	Hours         float64   `db:"hours"`
	Night         bool      `db:"night"`
	Price         float64   `db:"price"`
	OriginalPrice float64   `db:"original_price"`
	Savings       float64   `db:"savings"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
}

func NewPostgresStorage(ctx context.Context, cfg config.DatabaseConfig, redisClient *redis.Client, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// DB exposes the underlying connection for the migrator.
func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PostgresStorage) GetListingByID(ctx context.Context, listingID string) (*Listing, error) {
	cacheKey := fmt.Sprintf("listing:%s", listingID)

	// Try Redis first
	cached, err := s.redis.Get(ctx, cacheKey)
	if err == nil {
		var listing Listing
		if err := json.Unmarshal(cached, &listing); err == nil {
			return &listing, nil
		}
	}

	const query = `
        SELECT id::text, title, price_table, active
        FROM listings
        WHERE id = $1
    `

	var listing Listing
	err = s.db.GetContext(ctx, &listing, query, listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("listing not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	if data, err := json.Marshal(listing); err == nil {
		s.redis.Set(ctx, cacheKey, data, s.redis.DefaultTTL())
	}

	return &listing, nil
}

func (s *PostgresStorage) GetActiveListings(ctx context.Context) ([]Listing, error) {
	const query = `SELECT id::text, title, price_table, active FROM listings WHERE active = TRUE ORDER BY title`

	var listings []Listing
	err := s.db.SelectContext(ctx, &listings, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get listings: %w", err)
	}

	return listings, nil
}

// GetPriceTable loads the price table of a listing, going through the
// listing cache.
func (s *PostgresStorage) GetPriceTable(ctx context.Context, listingID string) (pricing.PriceTable, error) {
	listing, err := s.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	return listing.PriceTable()
}

// UpdatePriceTable persists a new price table for a listing. The caller
// validates admin input first; this re-runs the validator as a final
// guard so an invalid table can never reach the database.
func (s *PostgresStorage) UpdatePriceTable(ctx context.Context, listingID string, table pricing.PriceTable) error {
	raw := make(map[string]any, len(table))
	for key, price := range table {
		raw[key] = price
	}
	if result := pricing.Validate(raw); !result.IsValid {
		return fmt.Errorf("refusing to save invalid price table: %v", result.Errors)
	}

	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode price table: %w", err)
	}

	const query = `UPDATE listings SET price_table = $1 WHERE id = $2`
	res, err := s.db.ExecContext(ctx, query, data, listingID)
	if err != nil {
		return fmt.Errorf("failed to update price table: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("listing not found: %s", listingID)
	}

	// Invalidate the listing cache
	s.redis.Del(ctx, fmt.Sprintf("listing:%s", listingID))

	return nil
}

// GetBalance returns the user's balance, creating a zero account on
// first contact.
func (s *PostgresStorage) GetBalance(ctx context.Context, userID int64) (float64, error) {
	const query = `
        INSERT INTO accounts (user_id, balance)
        VALUES ($1, 0)
        ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
        RETURNING balance
    `

	var balance float64
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// TopUpBalance credits a user's account (admin operation).
func (s *PostgresStorage) TopUpBalance(ctx context.Context, userID int64, amount float64) (float64, error) {
	const query = `
        INSERT INTO accounts (user_id, balance)
        VALUES ($1, $2)
        ON CONFLICT (user_id) DO UPDATE SET balance = accounts.balance + $2
        RETURNING balance
    `

	var balance float64
	if err := s.db.QueryRowContext(ctx, query, userID, amount).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to top up balance: %w", err)
	}
	return balance, nil
}

// CreateOrder saves an order and deducts its price from the user's
// balance in one transaction. The balance is re-checked under lock so a
// stale quote can not overdraw the account.
func (s *PostgresStorage) CreateOrder(ctx context.Context, order Order) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var balance float64
	err = tx.QueryRowContext(ctx,
		`SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE`,
		order.UserID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrInsufficientBalance
		}
		return 0, fmt.Errorf("lock account: %w", err)
	}

	if !billing.HasSufficientBalance(balance, order.Price) {
		return 0, ErrInsufficientBalance
	}

	remaining := billing.RemainingBalance(balance, order.Price)
	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = $1 WHERE user_id = $2`,
		remaining, order.UserID,
	); err != nil {
		return 0, fmt.Errorf("deduct balance: %w", err)
	}

	const query = `
        INSERT INTO orders (
            user_id, listing_id, hours, night, price,
            original_price, savings, status, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `

	var orderID int64
	err = tx.QueryRowContext(ctx, query,
		order.UserID,
		order.ListingID,
		order.Hours,
		order.Night,
		order.Price,
		order.OriginalPrice,
		order.Savings,
		order.Status,
		order.CreatedAt,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to save order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}

	// Invalidate statistics cache
	s.redis.Del(ctx, "order_stats")

	return orderID, nil
}

func (s *PostgresStorage) GetOrderByID(ctx context.Context, orderID int64) (*Order, error) {
	const query = `
        SELECT id, user_id, listing_id::text, hours, night, price,
               original_price, savings, status, created_at
        FROM orders WHERE id = $1
    `
	var order Order
	err := s.db.GetContext(ctx, &order, query, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (s *PostgresStorage) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	const query = `UPDATE orders SET status = $1 WHERE id = $2`
	res, err := s.db.ExecContext(ctx, query, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order not found: %d", orderID)
	}

	s.redis.Del(ctx, "order_stats")
	return nil
}

type OrderStatistics struct {
	TotalOrders  int     `db:"total_orders"`
	TotalRevenue float64 `db:"total_revenue"`
	TodayOrders  int
	TodayRevenue float64
	WeekOrders   int
	WeekRevenue  float64
	MonthOrders  int
	MonthRevenue float64
	StatusCounts map[string]int
}

func (s *PostgresStorage) GetOrderStatistics(ctx context.Context) (*OrderStatistics, error) {
	cacheKey := "order_stats"

	// Try Redis first
	if cached, err := s.redis.Get(ctx, cacheKey); err == nil {
		var stats OrderStatistics
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	stats := &OrderStatistics{
		StatusCounts: make(map[string]int),
	}

	type countRevenue struct {
		Count   int     `db:"count"`
		Revenue float64 `db:"revenue"`
	}

	err := s.db.GetContext(ctx, stats, `
        SELECT
            COUNT(*) as total_orders,
            COALESCE(SUM(price), 0) as total_revenue
        FROM orders
    `)
	if err != nil {
		return nil, err
	}

	periods := []struct {
		interval string
		orders   *int
		revenue  *float64
	}{
		{"CURRENT_DATE", &stats.TodayOrders, &stats.TodayRevenue},
		{"CURRENT_DATE - INTERVAL '7 days'", &stats.WeekOrders, &stats.WeekRevenue},
		{"CURRENT_DATE - INTERVAL '30 days'", &stats.MonthOrders, &stats.MonthRevenue},
	}
	for _, p := range periods {
		var cr countRevenue
		query := fmt.Sprintf(`
            SELECT
                COUNT(*) as count,
                COALESCE(SUM(price), 0) as revenue
            FROM orders
            WHERE created_at >= %s
        `, p.interval)
		if err := s.db.GetContext(ctx, &cr, query); err != nil {
			return nil, err
		}
		*p.orders = cr.Count
		*p.revenue = cr.Revenue
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT status, COUNT(*) as count
        FROM orders
        GROUP BY status
        `,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.StatusCounts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	// Cache for an hour
	if data, err := json.Marshal(stats); err == nil {
		s.redis.Set(ctx, cacheKey, data, 1*time.Hour)
	}

	return stats, nil
}

// CheckRateLimit returns true when the user exceeded limit actions in
// the window.
func (s *PostgresStorage) CheckRateLimit(ctx context.Context, userID int64, action string, limit int64, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:%d:%s", userID, action)

	count, err := s.redis.Incr(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	// Set expiry if this is the first increment
	if count == 1 {
		if _, err := s.redis.Expire(ctx, key, window); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count > limit, nil
}
