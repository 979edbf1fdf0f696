package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tds-maker/google-docs-add-on/internal/model"
	"github.com/tds-maker/google-docs-add-on/internal/onboard"
)

type templatesResponse struct {
	Templates []model.TemplateOption `json:"templates"`
}

// ListTemplates 侧边栏模板下拉项
// GET /api/templates
func (h *Handler) ListTemplates(c *gin.Context) {
	schemas, err := h.store.GetTemplateCache()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请先登录"})
		return
	}

	c.JSON(http.StatusOK, templatesResponse{Templates: model.FormatTemplateOptions(schemas)})
}

type selectTemplateRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
}

// SelectTemplate 选定模板并配置结构表
// POST /api/templates/select
func (h *Handler) SelectTemplate(c *gin.Context) {
	var req selectTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	schemas, err := h.store.GetTemplateCache()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请先登录"})
		return
	}

	schema, ok := model.FindSchemaByID(schemas, req.TemplateID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "given document id is not valid!"})
		return
	}

	wb, err := h.openWorkbook()
	if err != nil {
		h.diag.Send("failed to open workbook: %s", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法打开工作簿，请检查配置"})
		return
	}
	defer wb.Close()

	if err := h.provisioner.Provision(wb, schema); err != nil {
		// 内部原因已在引擎里上报，用户只看到可重试的泛化提示
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pageResponse{Page: onboard.PageSend})
}
