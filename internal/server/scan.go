package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/common"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/scan"
)

// processReceipt runs the scan pipeline over raw OCR text. The payload is
// schema-validated before it is bound; the OCR provider is untrusted.
func (s *Server) processReceipt(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		common.AbortInvalidArgument(c, "unreadable body")
		return
	}
	if err := scan.ValidateJSONAgainstSchema(scan.BuildProcessRequestSchema(), body); err != nil {
		common.AbortInvalidArgument(c, err.Error())
		return
	}

	var req scan.ProcessRequest
	if err := json.Unmarshal(body, &req); err != nil {
		common.AbortInvalidArgument(c, "malformed json")
		return
	}

	result, err := s.scan.ProcessText(c.Request.Context(), req)
	if err != nil {
		s.logger.Error("process receipt failed", "error", err)
		common.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type checkDuplicateRequest struct {
	Fingerprint string `json:"fingerprint"`
	Store       string `json:"store"`
	Date        string `json:"date"`
	Total       string `json:"total"`
}

func (s *Server) checkDuplicate(c *gin.Context) {
	var req checkDuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AbortInvalidArgument(c, "malformed json")
		return
	}

	v := common.NewValidator()
	v.Field("fingerprint", req.Fingerprint, common.Required)
	if v.HasErrors() {
		common.AbortInvalidArgument(c, v.ErrorMessage())
		return
	}

	total, err := decimal.NewFromString(req.Total)
	if err != nil {
		total = decimal.Zero
	}

	match, err := s.scan.CheckDuplicate(c.Request.Context(), req.Fingerprint, req.Store, req.Date, total)
	if err != nil {
		s.logger.Error("duplicate check failed", "error", err)
		common.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

type acceptReceiptRequest struct {
	Fingerprint string               `json:"fingerprint"`
	Receipt     entity.ParsedReceipt `json:"receipt"`
}

func (s *Server) acceptReceipt(c *gin.Context) {
	var req acceptReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AbortInvalidArgument(c, "malformed json")
		return
	}

	v := common.NewValidator()
	v.Field("fingerprint", req.Fingerprint, common.Required)
	v.Field("receipt.store", req.Receipt.Store, common.Required)
	v.Field("receipt.date", req.Receipt.Date, common.Required)
	if v.HasErrors() {
		common.AbortInvalidArgument(c, v.ErrorMessage())
		return
	}

	rec, err := s.inventory.AcceptReceipt(c.Request.Context(), req.Receipt, req.Fingerprint)
	if err != nil {
		s.logger.Error("accept receipt failed", "error", err)
		common.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

type confirmItemRequest struct {
	Score         float64 `json:"score"`
	Confirmations int     `json:"confirmations"`
}

// confirmItem reports the post-confirmation score and decision; the caller
// persists its own confirmation counter.
func (s *Server) confirmItem(c *gin.Context) {
	var req confirmItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AbortInvalidArgument(c, "malformed json")
		return
	}
	if req.Score < 0 || req.Score > 1 {
		common.AbortInvalidArgument(c, "score must be in [0,1]")
		return
	}

	score, decision := s.scan.ConfirmItem(req.Score, req.Confirmations)
	c.JSON(http.StatusOK, gin.H{"score": score, "decision": decision})
}
