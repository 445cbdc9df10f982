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
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/common"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
)

// InventoryRepository stores the household's current stock.
type InventoryRepository interface {
	Insert(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)
	// List returns items with the given status, optionally filtered by a
	// case-insensitive name substring.
	List(ctx context.Context, query string, status constants.ItemStatus) ([]entity.InventoryItem, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.ItemStatus) error
}

type inventoryRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewInventoryRepository(db *sql.DB, logger *slog.Logger) InventoryRepository {
	return &inventoryRepository{db: db, logger: logger}
}

func (r *inventoryRepository) Insert(ctx context.Context, item *entity.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.Status == "" {
		item.Status = constants.ItemAvailable
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inventory_items (id, name, store, tx_date, price, quantity, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID.String(), item.Name, item.Store, item.Date, item.Price.String(),
		item.Quantity, string(item.Status),
	)
	if err != nil {
		r.logger.Error("failed to insert inventory item", "name", item.Name, "error", err)
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, store, tx_date, price, quantity, status
		 FROM inventory_items WHERE id = $1`,
		id.String(),
	)
	item, err := scanInventoryItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("inventory item %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get inventory item", "id", id, "error", err)
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

func (r *inventoryRepository) List(ctx context.Context, query string, status constants.ItemStatus) ([]entity.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, store, tx_date, price, quantity, status
		 FROM inventory_items WHERE status = $1 ORDER BY tx_date DESC, name`,
		string(status),
	)
	if err != nil {
		r.logger.Error("failed to list inventory", "status", status, "error", err)
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	needle := strings.ToLower(query)
	var items []entity.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		if needle != "" && !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *inventoryRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.update(ctx, id,
		`UPDATE inventory_items SET quantity = $1 WHERE id = $2`, quantity, id.String())
}

func (r *inventoryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.ItemStatus) error {
	return r.update(ctx, id,
		`UPDATE inventory_items SET status = $1 WHERE id = $2`, string(status), id.String())
}

func (r *inventoryRepository) update(ctx context.Context, id uuid.UUID, stmt string, args ...any) error {
	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		r.logger.Error("failed to update inventory item", "id", id, "error", err)
		return fmt.Errorf("update inventory item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("inventory item %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanInventoryItem(row rowScanner) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	var id, price, status string
	if err := row.Scan(&id, &item.Name, &item.Store, &item.Date, &price,
		&item.Quantity, &status); err != nil {
		return nil, err
	}
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse inventory id: %w", err)
	}
	parsedPrice, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse inventory price: %w", err)
	}
	item.ID = parsedID
	item.Price = parsedPrice
	item.Status = constants.ItemStatus(status)
	return &item, nil
}
