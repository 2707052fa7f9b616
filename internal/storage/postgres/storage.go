package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/andrevlins/pedidoflow/internal/domain/errors"
	"github.com/andrevlins/pedidoflow/internal/domain/model"
	"github.com/andrevlins/pedidoflow/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on; it allows
// swapping in pgxmock during tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type historyRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) History() repository.HistoryRepository {
	return &historyRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            name TEXT NOT NULL,
            role TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE SEQUENCE IF NOT EXISTS order_numbers`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            public_id UUID UNIQUE NOT NULL,
            number TEXT UNIQUE NOT NULL,
            client_id BIGINT NOT NULL,
            client_name TEXT NOT NULL,
            seller_id BIGINT NOT NULL REFERENCES users(id),
            seller_name TEXT NOT NULL,
            status TEXT NOT NULL,
            payment_status TEXT,
            rejection_reason TEXT,
            receipt_url TEXT,
            production_started_at TIMESTAMPTZ,
            production_finished_at TIMESTAMPTZ,
            released_at TIMESTAMPTZ,
            released_by TEXT,
            qr_code TEXT,
            subtotal NUMERIC(12,2) NOT NULL DEFAULT 0,
            taxes NUMERIC(12,2) NOT NULL DEFAULT 0,
            total NUMERIC(12,2) NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product TEXT NOT NULL,
            quantity INT NOT NULL,
            unit_price NUMERIC(12,2) NOT NULL,
            discount NUMERIC(12,2) NOT NULL DEFAULT 0,
            total NUMERIC(12,2) NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS order_status_history (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            status TEXT NOT NULL,
            actor TEXT NOT NULL,
            note TEXT NOT NULL DEFAULT '',
            changed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            notified BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_seller ON orders(seller_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_history_order ON order_status_history(order_id, changed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_history_unnotified ON order_status_history(changed_at) WHERE NOT notified`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash, name string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, name, role) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, name, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Name = name
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, name, role, created_at FROM users WHERE login=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, name, role, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, public_id, number, client_id, client_name, seller_id, seller_name,
       status, payment_status, rejection_reason, receipt_url,
       production_started_at, production_finished_at, released_at, released_by, qr_code,
       subtotal, taxes, total, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.PublicID, &o.Number, &o.ClientID, &o.ClientName, &o.SellerID, &o.SellerName,
		&o.Status, &o.PaymentStatus, &o.RejectionReason, &o.ReceiptURL,
		&o.ProductionStartedAt, &o.ProductionFinishedAt, &o.ReleasedAt, &o.ReleasedBy, &o.QRCode,
		&o.Subtotal, &o.Taxes, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) CreateDraft(ctx context.Context, order *model.Order) (*model.Order, error) {
	order.PublicID = uuid.New()
	order.Status = model.StatusDraft

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
            (public_id, number, client_id, client_name, seller_id, seller_name, status, subtotal, taxes, total)
            VALUES ($1, 'PED-' || lpad(nextval('order_numbers')::text, 6, '0'), $2, $3, $4, $5, $6, $7, $8, $9)
            RETURNING id, number, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.PublicID, order.ClientID, order.ClientName, order.SellerID, order.SellerName,
			order.Status, order.Subtotal, order.Taxes, order.Total,
		).Scan(&order.ID, &order.Number, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product, quantity, unit_price, discount, total)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			if err := tx.QueryRow(ctx, insertItem,
				order.ID, item.Product, item.Quantity, item.UnitPrice, item.Discount, item.Total,
			).Scan(&item.ID); err != nil {
				return err
			}
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, status, actor, note) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, insertHistory, order.ID, order.Status, order.SellerName, ""); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE public_id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, publicID))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *model.Order) error {
	const query = `SELECT id, order_id, product, quantity, unit_price, discount, total
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Product, &item.Quantity, &item.UnitPrice, &item.Discount, &item.Total); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var (
		conds []string
		args  []any
	)
	if filter.SellerID > 0 {
		args = append(args, filter.SellerID)
		conds = append(conds, fmt.Sprintf("seller_id=$%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status=$%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ApplyTransition(ctx context.Context, orderID int64, from, to model.Status, patch model.TransitionPatch, actor, note string) (*model.Order, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Conditional on the status not having moved since the caller read
		// the order; zero rows means a concurrent transition won.
		const updateOrder = `UPDATE orders SET
                status=$1,
                payment_status=COALESCE($2, payment_status),
                rejection_reason=COALESCE($3, rejection_reason),
                receipt_url=COALESCE($4, receipt_url),
                production_started_at=COALESCE($5, production_started_at),
                production_finished_at=COALESCE($6, production_finished_at),
                released_at=COALESCE($7, released_at),
                released_by=COALESCE($8, released_by),
                qr_code=COALESCE($9, qr_code),
                updated_at=NOW()
            WHERE id=$10 AND status=$11`
		tag, err := tx.Exec(ctx, updateOrder,
			to, patch.PaymentStatus, patch.RejectionReason, patch.ReceiptURL,
			patch.ProductionStartedAt, patch.ProductionFinishedAt,
			patch.ReleasedAt, patch.ReleasedBy, patch.QRCode,
			orderID, from,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrConflict
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, status, actor, note) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, insertHistory, orderID, to, actor, note); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

// --- HistoryRepository implementation ---

func (r *historyRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error) {
	const query = `SELECT id, order_id, status, actor, note, changed_at, notified
                   FROM order_status_history WHERE order_id=$1 ORDER BY changed_at, id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.StatusHistoryEntry
	for rows.Next() {
		var entry model.StatusHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.OrderID, &entry.Status, &entry.Actor, &entry.Note, &entry.ChangedAt, &entry.Notified); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *historyRepository) SelectBatchForNotification(ctx context.Context, limit int) ([]model.StatusChange, error) {
	const selectQuery = `SELECT h.id, h.order_id, o.number, h.status, h.actor, h.note, h.changed_at
                         FROM order_status_history h
                         JOIN orders o ON o.id = h.order_id
                         WHERE NOT h.notified
                         ORDER BY h.changed_at
                         LIMIT $1
                         FOR UPDATE OF h SKIP LOCKED`

	var changes []model.StatusChange
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		var ids []int64
		for rows.Next() {
			var (
				id     int64
				change model.StatusChange
			)
			if err := rows.Scan(&id, &change.OrderID, &change.Number, &change.Status, &change.Actor, &change.Note, &change.ChangedAt); err != nil {
				return err
			}
			ids = append(ids, id)
			changes = append(changes, change)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		for _, id := range ids {
			if _, err := tx.Exec(ctx, `UPDATE order_status_history SET notified=TRUE WHERE id=$1`, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changes, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
