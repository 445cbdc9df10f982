package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
)

// ReceiptRepository stores accepted scans, keyed by fingerprint for
// duplicate detection.
type ReceiptRepository interface {
	Insert(ctx context.Context, rec *entity.ScannedReceipt) error
	FindByFingerprint(ctx context.Context, fingerprint string) (*entity.ScannedReceipt, error)
	FindSimilar(ctx context.Context, store, date string, total, delta decimal.Decimal) (*entity.ScannedReceipt, error)
}

type receiptRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewReceiptRepository(db *sql.DB, logger *slog.Logger) ReceiptRepository {
	return &receiptRepository{db: db, logger: logger}
}

func (r *receiptRepository) Insert(ctx context.Context, rec *entity.ScannedReceipt) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO receipts
			(id, fingerprint, store, tx_date, total, payment_method, receipt_number, scanned_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID.String(), rec.Fingerprint, rec.Store, rec.Date, rec.Total.String(),
		string(rec.PaymentMethod), rec.ReceiptNumber, rec.ScannedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert receipt", "fingerprint", rec.Fingerprint, "error", err)
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

func (r *receiptRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*entity.ScannedReceipt, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, fingerprint, store, tx_date, total, payment_method, receipt_number, scanned_at
		 FROM receipts WHERE fingerprint = $1`,
		fingerprint,
	)
	rec, err := scanReceipt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to query receipt", "fingerprint", fingerprint, "error", err)
		return nil, fmt.Errorf("find receipt: %w", err)
	}
	return rec, nil
}

// FindSimilar matches receipts from the same store on the same day whose
// total is within delta. Totals are compared in Go since they are stored as
// decimal strings.
func (r *receiptRepository) FindSimilar(ctx context.Context, store, date string, total, delta decimal.Decimal) (*entity.ScannedReceipt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, fingerprint, store, tx_date, total, payment_method, receipt_number, scanned_at
		 FROM receipts WHERE tx_date = $1`,
		date,
	)
	if err != nil {
		r.logger.Error("failed to query similar receipts", "store", store, "date", date, "error", err)
		return nil, fmt.Errorf("find similar receipts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receipt row: %w", err)
		}
		if !strings.EqualFold(rec.Store, store) {
			continue
		}
		if rec.Total.Sub(total).Abs().LessThan(delta) {
			return rec, nil
		}
	}
	return nil, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row rowScanner) (*entity.ScannedReceipt, error) {
	var rec entity.ScannedReceipt
	var id, total, payment string
	if err := row.Scan(&id, &rec.Fingerprint, &rec.Store, &rec.Date, &total,
		&payment, &rec.ReceiptNumber, &rec.ScannedAt); err != nil {
		return nil, err
	}
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse receipt id: %w", err)
	}
	parsedTotal, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse receipt total: %w", err)
	}
	rec.ID = parsedID
	rec.Total = parsedTotal
	rec.PaymentMethod = constants.PaymentMethod(payment)
	return &rec, nil
}
