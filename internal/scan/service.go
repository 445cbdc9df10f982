package scan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/confidence"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/parser"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/repository"
)

// Config holds thresholds for the scan workflow.
type Config struct {
	// MinOCRConfidence is the average token confidence below which items are
	// scored with the partial_ocr source tag. Default 0.5.
	MinOCRConfidence float64
	// SimilarTotalDelta is the absolute total difference under which two
	// same-day receipts from the same store count as a rescan. Default 0.50.
	SimilarTotalDelta decimal.Decimal
}

// Service runs the scan pipeline: OCR text in, parsed receipt with per-item
// trust decisions out.
type Service struct {
	logger   *slog.Logger
	cfg      Config
	receipts repository.ReceiptRepository
	history  repository.HistoryRepository
}

func NewService(logger *slog.Logger, cfg Config, receipts repository.ReceiptRepository, history repository.HistoryRepository) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinOCRConfidence <= 0 {
		cfg.MinOCRConfidence = 0.5
	}
	if cfg.SimilarTotalDelta.IsZero() {
		cfg.SimilarTotalDelta = decimal.NewFromFloat(0.50)
	}
	return &Service{logger: logger, cfg: cfg, receipts: receipts, history: history}
}

// ProcessRequest carries the external OCR provider's output. Source may be
// set by the caller (e.g. manual_entry); when empty it is derived from the
// OCR confidence.
type ProcessRequest struct {
	RawText string               `json:"raw_text"`
	Tokens  []entity.OCRToken    `json:"tokens,omitempty"`
	Source  constants.SourceType `json:"source,omitempty"`
}

// ProcessText parses the raw OCR text, fingerprints the receipt and scores
// every extracted item against the purchase history. Parsing itself never
// fails; only history lookups can error.
func (s *Service) ProcessText(ctx context.Context, req ProcessRequest) (*entity.ScanResult, error) {
	parsed := parser.ParseReceiptText(req.RawText)
	fingerprint := parser.Fingerprint(parsed.Store, parsed.Date, parsed.Total)
	ocrConfidence := parser.AverageTokenConfidence(req.Tokens)

	source := req.Source
	if source == "" {
		source = constants.SourceValidatedReceipt
		if ocrConfidence < s.cfg.MinOCRConfidence {
			source = constants.SourcePartialOCR
		}
	}

	scored := make([]entity.ScoredItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		history, err := s.history.FindComparable(ctx, item.Name)
		if err != nil {
			return nil, fmt.Errorf("history lookup for %q: %w", item.Name, err)
		}
		score := confidence.Score(confidence.Observation{
			Name:     item.Name,
			Store:    parsed.Store,
			Date:     parsed.Date,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
		}, history, source)

		scored = append(scored, entity.ScoredItem{
			Item:       item,
			Confidence: score,
			Decision:   string(confidence.Decide(score)),
			Badge:      string(confidence.BadgeFor(score)),
		})
	}

	s.logger.Info("scan.process.ok",
		"store", parsed.Store, "date", parsed.Date, "total", parsed.Total,
		"items", len(scored), "ocr_confidence", ocrConfidence, "source", source,
	)

	return &entity.ScanResult{
		Fingerprint:   fingerprint,
		Receipt:       parsed,
		Items:         scored,
		OCRConfidence: ocrConfidence,
		Source:        source,
	}, nil
}

// CheckDuplicate flags rescans: an exact fingerprint match first, then a
// "similar" match (same store and day, total within SimilarTotalDelta).
func (s *Service) CheckDuplicate(ctx context.Context, fingerprint, store, date string, total decimal.Decimal) (*entity.DuplicateMatch, error) {
	exact, err := s.receipts.FindByFingerprint(ctx, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("fingerprint lookup: %w", err)
	}
	if exact != nil {
		return &entity.DuplicateMatch{
			IsDuplicate: true,
			MatchType:   "exact",
			Existing:    exact,
			Confidence:  1.0,
		}, nil
	}

	similar, err := s.receipts.FindSimilar(ctx, store, date, total, s.cfg.SimilarTotalDelta)
	if err != nil {
		return nil, fmt.Errorf("similar lookup: %w", err)
	}
	if similar != nil {
		return &entity.DuplicateMatch{
			IsDuplicate: true,
			MatchType:   "similar",
			Existing:    similar,
			Confidence:  0.85,
		}, nil
	}
	return &entity.DuplicateMatch{IsDuplicate: false}, nil
}

// ConfirmItem derives the post-confirmation score and decision. Persisting
// the confirmation counter is the caller's concern; no history is mutated.
func (s *Service) ConfirmItem(score float64, confirmations int) (float64, confidence.Decision) {
	boosted := confidence.ApplyConfirmationBoost(score)
	boosted = confidence.ApplyRepetitionBoost(boosted, confirmations)
	return boosted, confidence.Decide(boosted)
}
