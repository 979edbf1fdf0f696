package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tds-maker/google-docs-add-on/internal/onboard"
)

type pageResponse struct {
	Page onboard.Page `json:"page"`
}

// GetPage 打开侧边栏时的页面决策
// GET /api/page
func (h *Handler) GetPage(c *gin.Context) {
	wb, err := h.openWorkbook()
	if err != nil {
		h.diag.Send("failed to open workbook: %s", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法打开工作簿，请检查配置"})
		return
	}
	defer wb.Close()

	c.JSON(http.StatusOK, pageResponse{Page: h.resolver.Resolve(wb)})
}
