package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tds-maker/google-docs-add-on/internal/client"
	"github.com/tds-maker/google-docs-add-on/internal/onboard"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 登录并拉取模板列表
// POST /api/login
//
// 登录成功的判据是“凭据有效且模板列表可用”：会话落库之后紧接着
// 拉取一次模板列表，列表失败时整个登录按失败上报（token 保留，
// 与宿主插件行为一致）。
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	session, err := h.client.Login(req.Email, req.Password)
	if err != nil {
		var authErr *client.AuthError
		if errors.As(err, &authErr) {
			h.diag.Send("%s tried to login and was rejected", req.Email)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Your login credentials are incorrect or your account is no longer valid.",
			})
			return
		}
		h.diag.Send("login transport failure for %s: %s", req.Email, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "无法连接服务器，请稍后重试"})
		return
	}

	h.diag.Send("%s did login successfully", req.Email)

	if err := h.store.SaveSession(session); err != nil {
		h.diag.Send("failed to persist session for %s: %s", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存会话失败，请稍后重试"})
		return
	}

	if err := h.refreshTemplateCache(session.Token); err != nil {
		h.diag.Send("failed to load map list: %s", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "An error occurred while getting sheets from server, please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, pageResponse{Page: onboard.PageTemplates})
}

// refreshTemplateCache 拉取并缓存模板列表；失败时保留旧缓存
func (h *Handler) refreshTemplateCache(token string) error {
	schemas, err := h.client.ListTemplates(token)
	if err != nil {
		return err
	}
	return h.store.SaveTemplateCache(schemas)
}
