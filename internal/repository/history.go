package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/parser"
)

// HistoryRepository accumulates purchase facts over time. The scoring engine
// only ever reads these records; writes happen when a receipt is accepted.
type HistoryRepository interface {
	Record(ctx context.Context, rec entity.PurchaseRecord) error
	// FindComparable returns records whose name matches the given one under
	// the lookup policy: case-insensitive partial containment in either
	// direction, or first-token match. Most recent first.
	FindComparable(ctx context.Context, name string) ([]entity.PurchaseRecord, error)
	// ListAll returns the full history, most recent first.
	ListAll(ctx context.Context) ([]entity.PurchaseRecord, error)
}

type historyRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewHistoryRepository(db *sql.DB, logger *slog.Logger) HistoryRepository {
	return &historyRepository{db: db, logger: logger}
}

func (r *historyRepository) Record(ctx context.Context, rec entity.PurchaseRecord) error {
	if rec.NormalizedName == "" {
		rec.NormalizedName = parser.NormalizeProductName(rec.Name)
	}

	// Purchase counter continues from the product's prior events.
	var prior sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(purchases) FROM purchase_history WHERE normalized_name = $1`,
		rec.NormalizedName,
	).Scan(&prior)
	if err != nil {
		r.logger.Error("failed to count prior purchases", "name", rec.Name, "error", err)
		return fmt.Errorf("count prior purchases: %w", err)
	}
	rec.Purchases = int(prior.Int64) + 1

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO purchase_history
			(id, name, normalized_name, store, tx_date, price, quantity, purchases)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New().String(), rec.Name, rec.NormalizedName, rec.Store, rec.Date,
		rec.Price.String(), rec.Quantity, rec.Purchases,
	)
	if err != nil {
		r.logger.Error("failed to record purchase", "name", rec.Name, "error", err)
		return fmt.Errorf("record purchase: %w", err)
	}
	return nil
}

func (r *historyRepository) FindComparable(ctx context.Context, name string) ([]entity.PurchaseRecord, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(name)
	firstToken := ""
	if tokens := strings.Fields(needle); len(tokens) > 0 {
		firstToken = tokens[0]
	}

	var matched []entity.PurchaseRecord
	for _, rec := range all {
		candidate := strings.ToLower(rec.Name)
		switch {
		case strings.Contains(candidate, needle), strings.Contains(needle, candidate):
			matched = append(matched, rec)
		case firstToken != "" && strings.HasPrefix(candidate, firstToken):
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (r *historyRepository) ListAll(ctx context.Context) ([]entity.PurchaseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, normalized_name, store, tx_date, price, quantity, purchases
		 FROM purchase_history ORDER BY tx_date DESC`,
	)
	if err != nil {
		r.logger.Error("failed to list purchase history", "error", err)
		return nil, fmt.Errorf("list purchase history: %w", err)
	}
	defer rows.Close()

	var records []entity.PurchaseRecord
	for rows.Next() {
		var rec entity.PurchaseRecord
		var price string
		if err := rows.Scan(&rec.Name, &rec.NormalizedName, &rec.Store, &rec.Date,
			&price, &rec.Quantity, &rec.Purchases); err != nil {
			return nil, fmt.Errorf("scan purchase row: %w", err)
		}
		parsed, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse purchase price: %w", err)
		}
		rec.Price = parsed
		records = append(records, rec)
	}
	return records, rows.Err()
}
