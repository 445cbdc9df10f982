package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/common"
)

func (s *Server) storeSummaries(c *gin.Context) {
	summaries, err := s.markets.Summaries(c.Request.Context())
	if err != nil {
		s.logger.Error("store summaries failed", "error", err)
		common.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": summaries})
}
