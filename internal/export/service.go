package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/markets"
)

// Service produces XLSX bytes from the per-store price history.
type Service struct {
	markets *markets.Service
	logger  *slog.Logger
}

func NewService(marketsSvc *markets.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{markets: marketsSvc, logger: logger}
}

// ExportPricesXLSX returns an XLSX workbook with one row per (store, item):
// purchase count, last paid price and average price.
func (s *Service) ExportPricesXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	summaries, err := s.markets.Summaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load store summaries: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Price History"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Store",
		"Item",
		"Purchases",
		"Last Price",
		"Average Price",
		"Store Visits",
		"Store Total Spent",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, store := range summaries {
		for _, item := range store.Items {
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			write(1, store.Name)
			write(2, item.Name)
			write(3, item.Purchases)
			write(4, item.LastPrice.StringFixed(2))
			write(5, item.AvgPrice.StringFixed(2))
			write(6, store.Visits)
			write(7, store.TotalSpent.StringFixed(2))
			row++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 22) // store
	_ = f.SetColWidth(sheet, "B", "B", 36) // item
	_ = f.SetColWidth(sheet, "C", "G", 14) // stats

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"stores", len(summaries),
		"rows", row-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
