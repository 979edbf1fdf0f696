package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tds-maker/google-docs-add-on/internal/model"
)

// Client 远端 TDSMaker 服务客户端
//
// 只有两个操作：登录换取 token、拉取账户下的模板列表。
// 所有报文为 JSON，响应只做存在性检查，不做完整 schema 校验。
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient 创建客户端；baseURL 末尾的斜杠会被去掉
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	// Status 为指针：缺失 status 字段的响应是畸形响应，不是明确拒绝
	Status   *bool `json:"status"`
	AuthData *struct {
		Token     string `json:"token"`
		AccountID string `json:"_id"`
	} `json:"authData"`
}

// Login 登录换取会话
//
// 远端以 status=false 明确拒绝时返回 *AuthError（不重试）；
// 网络失败或响应畸形返回 *TransportError（可重试）。
func (c *Client) Login(email, password string) (model.AccountSession, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return model.AccountSession{}, &TransportError{Op: "login", Err: err}
	}

	resp, err := c.http.Post(c.baseURL+"/token", "application/json", bytes.NewReader(body))
	if err != nil {
		return model.AccountSession{}, &TransportError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	var parsed loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.AccountSession{}, &TransportError{Op: "login", Err: fmt.Errorf("malformed response: %w", err)}
	}

	if parsed.Status == nil {
		return model.AccountSession{}, &TransportError{
			Op:  "login",
			Err: fmt.Errorf("response without status flag"),
		}
	}
	if !*parsed.Status {
		return model.AccountSession{}, &AuthError{
			Message: "login credentials are incorrect or the account is no longer valid",
		}
	}
	if parsed.AuthData == nil || parsed.AuthData.Token == "" {
		return model.AccountSession{}, &TransportError{
			Op:  "login",
			Err: fmt.Errorf("positive response without auth data"),
		}
	}

	return model.AccountSession{
		Token:     parsed.AuthData.Token,
		AccountID: parsed.AuthData.AccountID,
	}, nil
}

// ListTemplates 拉取账户下全部模板的字段结构
//
// 任何失败都返回 *TransportError；调用方应保留旧的模板缓存不动。
func (c *Client) ListTemplates(token string) ([]model.TemplateSchema, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/form/mappings", nil)
	if err != nil {
		return nil, &TransportError{Op: "list templates", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "list templates", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// 读掉 body 以便连接复用
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{
			Op:  "list templates",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var schemas []model.TemplateSchema
	if err := json.NewDecoder(resp.Body).Decode(&schemas); err != nil {
		return nil, &TransportError{Op: "list templates", Err: fmt.Errorf("malformed response: %w", err)}
	}

	return schemas, nil
}
