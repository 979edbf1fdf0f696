package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tds-maker/google-docs-add-on/internal/model"
)

// 文档级属性键（沿用宿主插件的键名）
const (
	docKeyInstalled    = "installed"
	docKeyDataSheet    = "dataSheet"
	docKeyMappingSheet = "mappingSheet"
	docKeyTemplateData = "templateData"
)

// SaveDocumentBinding 持久化文档绑定
//
// 四个键在同一事务内写入：绑定要么整体可见，要么完全不存在，
// 不会出现 installed 已置位而结构表 id 缺失的中间态。
func (s *Store) SaveDocumentBinding(docID string, binding model.DocumentBinding) error {
	if binding.Schema == nil {
		return fmt.Errorf("document binding requires a template schema")
	}

	schemaJSON, err := json.Marshal(binding.Schema)
	if err != nil {
		return fmt.Errorf("failed to serialize template schema: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	values := map[string]string{
		docKeyInstalled:    strconv.FormatBool(binding.Installed),
		docKeyDataSheet:    strconv.Itoa(binding.DataSheetID),
		docKeyMappingSheet: strconv.Itoa(binding.MappingSheetID),
		docKeyTemplateData: string(schemaJSON),
	}
	for key, value := range values {
		if _, err := tx.Exec(`
			INSERT INTO document_properties (document_id, key, value) VALUES (?, ?, ?)
			ON CONFLICT(document_id, key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
		`, docID, key, value, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetDocumentBinding 读取文档绑定；未安装时返回 ErrNotFound
func (s *Store) GetDocumentBinding(docID string) (model.DocumentBinding, error) {
	var binding model.DocumentBinding

	installedRaw, err := s.GetDocumentProperty(docID, docKeyInstalled)
	if err != nil {
		return binding, err
	}
	binding.Installed, _ = strconv.ParseBool(installedRaw)

	dataRaw, err := s.GetDocumentProperty(docID, docKeyDataSheet)
	if err != nil {
		return binding, err
	}
	if binding.DataSheetID, err = strconv.Atoi(dataRaw); err != nil {
		return binding, fmt.Errorf("invalid data sheet id %q: %w", dataRaw, err)
	}

	mappingRaw, err := s.GetDocumentProperty(docID, docKeyMappingSheet)
	if err != nil {
		return binding, err
	}
	if binding.MappingSheetID, err = strconv.Atoi(mappingRaw); err != nil {
		return binding, fmt.Errorf("invalid mapping sheet id %q: %w", mappingRaw, err)
	}

	schemaRaw, err := s.GetDocumentProperty(docID, docKeyTemplateData)
	if err != nil {
		return binding, err
	}
	schema := &model.TemplateSchema{}
	if err := json.Unmarshal([]byte(schemaRaw), schema); err != nil {
		return binding, fmt.Errorf("failed to parse bound template schema: %w", err)
	}
	binding.Schema = schema

	return binding, nil
}

// ClearDocumentBinding 清除文档绑定（结构表被删除后的回收路径）
func (s *Store) ClearDocumentBinding(docID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, key := range []string{docKeyInstalled, docKeyDataSheet, docKeyMappingSheet, docKeyTemplateData} {
		if _, err := tx.Exec(
			"DELETE FROM document_properties WHERE document_id = ? AND key = ?",
			docID, key,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// IsInstalled 文档是否已完成初始化
func (s *Store) IsInstalled(docID string) bool {
	v, err := s.GetDocumentProperty(docID, docKeyInstalled)
	return err == nil && v == "true"
}
