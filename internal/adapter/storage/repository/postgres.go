package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/storewave/payrecon/internal/adapter/storage"
	"github.com/storewave/payrecon/internal/core/domain"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

const orderColumns = "order_number, status, payment_status, total, currency, created_at, paid_at"

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		orderSt := r.db.QueryBuilder.Insert("orders").
			Columns("order_number", "status", "payment_status", "total", "currency", "created_at", "paid_at").
			Values(order.Number, order.Status, order.PaymentStatus,
				order.Total, order.Currency, order.CreatedAt, order.PaidAt)

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}

		for _, t := range order.Transactions {
			txSt := r.db.QueryBuilder.Insert("payment_transactions").
				Columns("order_number", "provider", "payment_type", "transaction_id",
					"status", "expires_at", "va_number", "va_bank", "qr_string",
					"qr_image_url", "payment_url", "instructions", "created_at").
				Values(order.Number, t.Provider, t.PaymentType, t.TransactionID,
					t.Status, t.ExpiresAt, t.VANumber, t.VABank, t.QRString,
					t.QRImageURL, t.PaymentURL, t.Instructions, t.CreatedAt)

			sql, args, err := txSt.ToSql()
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctx, sql, args...)
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, number domain.OrderNumber) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{"order_number": number})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&order.Number,
		&order.Status,
		&order.PaymentStatus,
		&order.Total,
		&order.Currency,
		&order.CreatedAt,
		&order.PaidAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	order.Transactions, err = r.readTransactions(ctx, number)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *Repository) readTransactions(ctx context.Context, number domain.OrderNumber) ([]*domain.PaymentTransaction, error) {
	statement := r.db.QueryBuilder.
		Select("order_number", "provider", "payment_type", "transaction_id",
			"status", "expires_at", "va_number", "va_bank", "qr_string",
			"qr_image_url", "payment_url", "instructions", "created_at").
		From("payment_transactions").
		Where(sq.Eq{"order_number": number}).
		OrderBy("created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.PaymentTransaction, 0)
	for rows.Next() {
		t := domain.PaymentTransaction{}
		err := rows.Scan(
			&t.OrderNumber,
			&t.Provider,
			&t.PaymentType,
			&t.TransactionID,
			&t.Status,
			&t.ExpiresAt,
			&t.VANumber,
			&t.VABank,
			&t.QRString,
			&t.QRImageURL,
			&t.PaymentURL,
			&t.Instructions,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &t)
	}

	return list, rows.Err()
}

func (r *Repository) ListOpenOrders(ctx context.Context) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{"payment_status": domain.PaymentStatusPending}).
		Where(sq.NotEq{"status": domain.OrderStatusCancelled})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order := domain.Order{}
		err := rows.Scan(
			&order.Number,
			&order.Status,
			&order.PaymentStatus,
			&order.Total,
			&order.Currency,
			&order.CreatedAt,
			&order.PaidAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range list {
		order.Transactions, err = r.readTransactions(ctx, order.Number)
		if err != nil {
			return nil, err
		}
	}

	return list, nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, number domain.OrderNumber,
	status domain.OrderStatus) (*domain.Order, error) {
	statement := r.db.QueryBuilder.Update("orders").
		Set("status", status).
		Where(sq.Eq{"order_number": number})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrDataNotFound
	}

	return r.ReadOrder(ctx, number)
}

// MarkPaid is the only writer of paid_at. The WHERE guard makes it a
// compare-and-swap: a second writer, a racing webhook or a stale poll finds
// zero rows and changes nothing.
func (r *Repository) MarkPaid(ctx context.Context, number domain.OrderNumber,
	paidAt time.Time, transactionID *string) (bool, error) {
	applied := false
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.Update("orders").
			Set("payment_status", domain.PaymentStatusPaid).
			Set("paid_at", paidAt).
			Where(sq.Eq{"order_number": number}).
			Where(sq.Eq{"payment_status": []domain.PaymentStatus{
				domain.PaymentStatusPending, domain.PaymentStatusFailed}})

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		applied = true

		return r.syncSnapshot(ctx, tx, number, domain.PaymentStatusPaid, transactionID)
	})

	return applied, err
}

// MarkExpired cancels the order while paymentStatus stays PENDING. The guard
// refuses orders that were paid or already cancelled in the meantime.
func (r *Repository) MarkExpired(ctx context.Context, number domain.OrderNumber) (bool, error) {
	statement := r.db.QueryBuilder.Update("orders").
		Set("status", domain.OrderStatusCancelled).
		Where(sq.Eq{"order_number": number}).
		Where(sq.Eq{"payment_status": domain.PaymentStatusPending}).
		Where(sq.NotEq{"status": domain.OrderStatusCancelled})

	sql, args, err := statement.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) MarkFailed(ctx context.Context, number domain.OrderNumber) (bool, error) {
	applied := false
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.Update("orders").
			Set("payment_status", domain.PaymentStatusFailed).
			Where(sq.Eq{"order_number": number}).
			Where(sq.Eq{"payment_status": domain.PaymentStatusPending})

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		applied = true

		return r.syncSnapshot(ctx, tx, number, domain.PaymentStatusFailed, nil)
	})

	return applied, err
}

func (r *Repository) MarkRefunded(ctx context.Context, number domain.OrderNumber) (bool, error) {
	applied := false
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.Update("orders").
			Set("payment_status", domain.PaymentStatusRefunded).
			Set("status", domain.OrderStatusRefunded).
			Where(sq.Eq{"order_number": number}).
			Where(sq.Eq{"payment_status": domain.PaymentStatusPaid})

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		applied = true

		return r.syncSnapshot(ctx, tx, number, domain.PaymentStatusRefunded, nil)
	})

	return applied, err
}

// syncSnapshot mirrors the order's new payment status into its transaction
// snapshots, stamping the gateway transaction id when one was observed.
func (r *Repository) syncSnapshot(ctx context.Context, tx pgx.Tx, number domain.OrderNumber,
	status domain.PaymentStatus, transactionID *string) error {
	statement := r.db.QueryBuilder.Update("payment_transactions").
		Set("status", status).
		Where(sq.Eq{"order_number": number})
	if transactionID != nil {
		statement = statement.Set("transaction_id", transactionID)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}
