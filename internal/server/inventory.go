package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/common"
)

func (s *Server) listInventory(c *gin.Context) {
	items, err := s.inventory.ListStock(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.logger.Error("list inventory failed", "error", err)
		common.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type adjustQuantityRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) adjustQuantity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.AbortInvalidArgument(c, "id must be a valid UUID")
		return
	}

	var req adjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AbortInvalidArgument(c, "malformed json")
		return
	}

	item, err := s.inventory.AdjustQuantity(c.Request.Context(), id, req.Delta)
	if err != nil {
		common.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) finishItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.AbortInvalidArgument(c, "id must be a valid UUID")
		return
	}

	if err := s.inventory.MarkFinished(c.Request.Context(), id); err != nil {
		common.AbortForError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) rebuyList(c *gin.Context) {
	summary, err := s.inventory.RebuyList(c.Request.Context())
	if err != nil {
		s.logger.Error("rebuy list failed", "error", err)
		common.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
