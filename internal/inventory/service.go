package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/parser"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/repository"
)

// Service owns the household stock: accepted receipts become inventory rows
// and purchase-history facts; finished items feed the rebuy list.
type Service struct {
	logger    *slog.Logger
	receipts  repository.ReceiptRepository
	inventory repository.InventoryRepository
	history   repository.HistoryRepository
}

func NewService(logger *slog.Logger, receipts repository.ReceiptRepository, inv repository.InventoryRepository, history repository.HistoryRepository) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, receipts: receipts, inventory: inv, history: history}
}

// AcceptReceipt persists an approved scan: the receipt itself (for duplicate
// detection), one inventory row per item, and one purchase-history fact per
// item.
func (s *Service) AcceptReceipt(ctx context.Context, parsed entity.ParsedReceipt, fingerprint string) (*entity.ScannedReceipt, error) {
	rec := &entity.ScannedReceipt{
		ID:            uuid.New(),
		Fingerprint:   fingerprint,
		Store:         parsed.Store,
		Date:          parsed.Date,
		Total:         parsed.Total,
		PaymentMethod: parsed.PaymentMethod,
		ReceiptNumber: parsed.ReceiptNumber,
		ScannedAt:     time.Now().UTC(),
	}
	if err := s.receipts.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("store receipt: %w", err)
	}

	for _, item := range parsed.Items {
		if err := s.inventory.Insert(ctx, &entity.InventoryItem{
			Name:     item.Name,
			Store:    parsed.Store,
			Date:     parsed.Date,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
			Status:   constants.ItemAvailable,
		}); err != nil {
			return nil, fmt.Errorf("stock item %q: %w", item.Name, err)
		}
		if err := s.history.Record(ctx, entity.PurchaseRecord{
			Name:           item.Name,
			NormalizedName: parser.NormalizeProductName(item.Name),
			Store:          parsed.Store,
			Date:           parsed.Date,
			Price:          item.UnitPrice,
			Quantity:       item.Quantity,
		}); err != nil {
			return nil, fmt.Errorf("record purchase %q: %w", item.Name, err)
		}
	}

	s.logger.Info("inventory.accept.ok",
		"store", parsed.Store, "date", parsed.Date,
		"items", len(parsed.Items), "fingerprint", fingerprint,
	)
	return rec, nil
}

// ListStock returns available items, optionally filtered by a name substring.
func (s *Service) ListStock(ctx context.Context, query string) ([]entity.InventoryItem, error) {
	return s.inventory.List(ctx, query, constants.ItemAvailable)
}

// AdjustQuantity applies a delta to an item's quantity, flooring at zero.
func (s *Service) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (*entity.InventoryItem, error) {
	item, err := s.inventory.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	quantity := item.Quantity + delta
	if quantity < 0 {
		quantity = 0
	}
	if err := s.inventory.UpdateQuantity(ctx, id, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// MarkFinished moves an item out of stock and onto the rebuy list.
func (s *Service) MarkFinished(ctx context.Context, id uuid.UUID) error {
	if err := s.inventory.UpdateStatus(ctx, id, constants.ItemFinished); err != nil {
		return err
	}
	s.logger.Info("inventory.finished", "id", id)
	return nil
}
