package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/tds-maker/google-docs-add-on/internal/client"
	"github.com/tds-maker/google-docs-add-on/internal/config"
	"github.com/tds-maker/google-docs-add-on/internal/diag"
	"github.com/tds-maker/google-docs-add-on/internal/extractor"
	"github.com/tds-maker/google-docs-add-on/internal/onboard"
	"github.com/tds-maker/google-docs-add-on/internal/provisioner"
	"github.com/tds-maker/google-docs-add-on/internal/store"
	"github.com/tds-maker/google-docs-add-on/internal/workbook"
)

// Handler 侧边栏 API 处理器
//
// 每个用户动作对应一个端点；工作簿按请求打开，状态全部来自
// 持久层，处理器自身不保存任何跨请求状态。
type Handler struct {
	store        *store.Store
	client       *client.Client
	diag         *diag.Sink
	resolver     *onboard.Resolver
	provisioner  *provisioner.Engine
	extractor    *extractor.Engine
	workbookPath string
	userEmail    string
}

// NewHandler 创建 API 处理器
func NewHandler(s *store.Store, cfg *config.AppConfig) *Handler {
	sink := diag.NewSink(cfg.Remote.LogURL, cfg.Remote.UserEmail)
	return &Handler{
		store:        s,
		client:       client.NewClient(cfg.Remote.BaseURL),
		diag:         sink,
		resolver:     onboard.NewResolver(s, sink),
		provisioner:  provisioner.NewEngine(s, sink),
		extractor:    extractor.NewEngine(s, sink),
		workbookPath: cfg.Workbook.Path,
		userEmail:    cfg.Remote.UserEmail,
	}
}

// RegisterRoutes 注册侧边栏 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 打开侧边栏
	router.GET("/page", h.GetPage)

	// 登录
	router.POST("/login", h.Login)

	// 模板选择
	router.GET("/templates", h.ListTemplates)
	router.POST("/templates/select", h.SelectTemplate)

	// 发送
	router.POST("/send", h.Send)
}

// openWorkbook 按请求打开绑定的工作簿
func (h *Handler) openWorkbook() (*workbook.Workbook, error) {
	return workbook.Open(h.workbookPath)
}
