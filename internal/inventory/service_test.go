package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/common"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
)

type fakeReceiptRepo struct {
	receipts []*entity.ScannedReceipt
}

func (f *fakeReceiptRepo) Insert(_ context.Context, rec *entity.ScannedReceipt) error {
	f.receipts = append(f.receipts, rec)
	return nil
}

func (f *fakeReceiptRepo) FindByFingerprint(_ context.Context, fingerprint string) (*entity.ScannedReceipt, error) {
	for _, rec := range f.receipts {
		if rec.Fingerprint == fingerprint {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeReceiptRepo) FindSimilar(context.Context, string, string, decimal.Decimal, decimal.Decimal) (*entity.ScannedReceipt, error) {
	return nil, nil
}

type fakeHistoryRepo struct {
	records []entity.PurchaseRecord
}

func (f *fakeHistoryRepo) Record(_ context.Context, rec entity.PurchaseRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeHistoryRepo) FindComparable(_ context.Context, name string) ([]entity.PurchaseRecord, error) {
	needle := strings.ToLower(name)
	var out []entity.PurchaseRecord
	for _, rec := range f.records {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) ListAll(context.Context) ([]entity.PurchaseRecord, error) {
	return f.records, nil
}

type fakeInventoryRepo struct {
	items map[uuid.UUID]*entity.InventoryItem
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: make(map[uuid.UUID]*entity.InventoryItem)}
}

func (f *fakeInventoryRepo) Insert(_ context.Context, item *entity.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeInventoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeInventoryRepo) List(_ context.Context, query string, status constants.ItemStatus) ([]entity.InventoryItem, error) {
	needle := strings.ToLower(query)
	var out []entity.InventoryItem
	for _, item := range f.items {
		if item.Status != status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeInventoryRepo) UpdateQuantity(_ context.Context, id uuid.UUID, quantity int) error {
	item, ok := f.items[id]
	if !ok {
		return common.ErrNotFound
	}
	item.Quantity = quantity
	return nil
}

func (f *fakeInventoryRepo) UpdateStatus(_ context.Context, id uuid.UUID, status constants.ItemStatus) error {
	item, ok := f.items[id]
	if !ok {
		return common.ErrNotFound
	}
	item.Status = status
	return nil
}

func sampleReceipt() entity.ParsedReceipt {
	return entity.ParsedReceipt{
		Store: "Costco",
		Date:  "2024-12-29",
		Total: decimal.RequireFromString("9.97"),
		Items: []entity.ReceiptLineItem{
			{Name: "ORGANIC BANANAS", UnitPrice: decimal.RequireFromString("3.99"), Quantity: 1},
			{Name: "BREAD", UnitPrice: decimal.RequireFromString("2.99"), Quantity: 2},
		},
	}
}

func TestAcceptReceipt(t *testing.T) {
	receipts := &fakeReceiptRepo{}
	inv := newFakeInventoryRepo()
	history := &fakeHistoryRepo{}
	svc := NewService(nil, receipts, inv, history)

	rec, err := svc.AcceptReceipt(context.Background(), sampleReceipt(), "fp-1")
	require.NoError(t, err)

	assert.Equal(t, "fp-1", rec.Fingerprint)
	assert.Equal(t, "Costco", rec.Store)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.False(t, rec.ScannedAt.IsZero())
	require.Len(t, receipts.receipts, 1)

	// One inventory row and one history fact per line item.
	stock, err := svc.ListStock(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, stock, 2)
	for _, item := range stock {
		assert.Equal(t, constants.ItemAvailable, item.Status)
		assert.Equal(t, "Costco", item.Store)
	}

	require.Len(t, history.records, 2)
	assert.Equal(t, "organic bananas", history.records[0].NormalizedName)
}

func TestListStock_Filter(t *testing.T) {
	inv := newFakeInventoryRepo()
	svc := NewService(nil, &fakeReceiptRepo{}, inv, &fakeHistoryRepo{})

	_, err := svc.AcceptReceipt(context.Background(), sampleReceipt(), "fp-1")
	require.NoError(t, err)

	stock, err := svc.ListStock(context.Background(), "banana")
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.Equal(t, "ORGANIC BANANAS", stock[0].Name)
}

func TestAdjustQuantity(t *testing.T) {
	inv := newFakeInventoryRepo()
	svc := NewService(nil, &fakeReceiptRepo{}, inv, &fakeHistoryRepo{})

	item := &entity.InventoryItem{Name: "EGGS", Quantity: 2, Status: constants.ItemAvailable}
	require.NoError(t, inv.Insert(context.Background(), item))

	updated, err := svc.AdjustQuantity(context.Background(), item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	// Quantity floors at zero.
	updated, err = svc.AdjustQuantity(context.Background(), item.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)

	_, err = svc.AdjustQuantity(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMarkFinished(t *testing.T) {
	inv := newFakeInventoryRepo()
	svc := NewService(nil, &fakeReceiptRepo{}, inv, &fakeHistoryRepo{})

	item := &entity.InventoryItem{Name: "EGGS", Quantity: 1, Status: constants.ItemAvailable}
	require.NoError(t, inv.Insert(context.Background(), item))

	require.NoError(t, svc.MarkFinished(context.Background(), item.ID))

	stored, err := inv.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ItemFinished, stored.Status)

	assert.ErrorIs(t, svc.MarkFinished(context.Background(), uuid.New()), common.ErrNotFound)
}
