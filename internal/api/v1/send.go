package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Send 提取数据表内容用于提交
// POST /api/send
//
// 返回完整的提取结果；向远端的实际投递由侧边栏页面完成。
func (h *Handler) Send(c *gin.Context) {
	wb, err := h.openWorkbook()
	if err != nil {
		h.diag.Send("failed to open workbook: %s", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法打开工作簿，请检查配置"})
		return
	}
	defer wb.Close()

	data, err := h.extractor.Extract(wb)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}
