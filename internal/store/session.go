package store

import (
	"github.com/tds-maker/google-docs-add-on/internal/model"
)

// 用户级属性键（沿用宿主插件的键名）
const (
	userKeyToken     = "token"
	userKeyAccountID = "_id"
	userKeyMappings  = "mappings"
)

// SaveSession 持久化登录会话（token 与账户 id 一并写入）
func (s *Store) SaveSession(session model.AccountSession) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range map[string]string{
		userKeyToken:     session.Token,
		userKeyAccountID: session.AccountID,
	} {
		if _, err := tx.Exec(`
			INSERT INTO user_properties (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
		`, key, value, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetSession 读取登录会话；未登录时返回 ErrNotFound
func (s *Store) GetSession() (model.AccountSession, error) {
	token, err := s.GetUserProperty(userKeyToken)
	if err != nil {
		return model.AccountSession{}, err
	}

	// 账户 id 缺失不阻断会话使用
	accountID, err := s.GetUserProperty(userKeyAccountID)
	if err != nil && !IsNotFound(err) {
		return model.AccountSession{}, err
	}

	return model.AccountSession{Token: token, AccountID: accountID}, nil
}

// HasSession 是否存在登录会话
func (s *Store) HasSession() bool {
	_, err := s.GetUserProperty(userKeyToken)
	return err == nil
}

// SaveTemplateCache 缓存最近一次拉取的模板列表
func (s *Store) SaveTemplateCache(schemas []model.TemplateSchema) error {
	raw, err := model.MarshalSchemas(schemas)
	if err != nil {
		return err
	}
	return s.SetUserProperty(userKeyMappings, raw)
}

// GetTemplateCache 读取模板列表缓存
func (s *Store) GetTemplateCache() ([]model.TemplateSchema, error) {
	raw, err := s.GetUserProperty(userKeyMappings)
	if err != nil {
		return nil, err
	}
	return model.UnmarshalSchemas(raw)
}
