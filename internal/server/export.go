package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/common"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) exportPrices(c *gin.Context) {
	data, err := s.export.ExportPricesXLSX(c.Request.Context())
	if err != nil {
		s.logger.Error("export failed", "error", err)
		common.AbortForError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="price-history.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
