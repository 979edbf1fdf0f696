package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound 属性不存在
var ErrNotFound = errors.New("property not found")

// GetUserProperty 获取用户级属性
func (s *Store) GetUserProperty(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM user_properties WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("user property %s: %w", key, ErrNotFound)
		}
		return "", err
	}
	return value, nil
}

// SetUserProperty 设置用户级属性
func (s *Store) SetUserProperty(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO user_properties (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

// DeleteUserProperty 删除用户级属性
func (s *Store) DeleteUserProperty(key string) error {
	_, err := s.db.Exec("DELETE FROM user_properties WHERE key = ?", key)
	return err
}

// GetDocumentProperty 获取文档级属性
func (s *Store) GetDocumentProperty(docID, key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM document_properties WHERE document_id = ? AND key = ?",
		docID, key,
	).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("document property %s/%s: %w", docID, key, ErrNotFound)
		}
		return "", err
	}
	return value, nil
}

// SetDocumentProperty 设置文档级属性
func (s *Store) SetDocumentProperty(docID, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO document_properties (document_id, key, value) VALUES (?, ?, ?)
		ON CONFLICT(document_id, key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, docID, key, value, value)
	return err
}

// DeleteDocumentProperty 删除文档级属性
func (s *Store) DeleteDocumentProperty(docID, key string) error {
	_, err := s.db.Exec(
		"DELETE FROM document_properties WHERE document_id = ? AND key = ?",
		docID, key,
	)
	return err
}

// IsNotFound 判断是否为属性缺失
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
