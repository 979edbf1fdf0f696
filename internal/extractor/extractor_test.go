package extractor

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/tds-maker/google-docs-add-on/internal/diag"
	"github.com/tds-maker/google-docs-add-on/internal/model"
	"github.com/tds-maker/google-docs-add-on/internal/provisioner"
	"github.com/tds-maker/google-docs-add-on/internal/store"
	"github.com/tds-maker/google-docs-add-on/internal/workbook"
)

func newTestEnv(t *testing.T, schema model.TemplateSchema) (*Engine, *workbook.Workbook) {
	t.Helper()

	dir := t.TempDir()
	s, err := store.New(filepath.Join(dir, "tdsmaker.db"))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	wb, err := workbook.Open(filepath.Join(dir, "book.xlsx"))
	if err != nil {
		t.Fatalf("workbook.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })

	sink := diag.NewSink("", "")
	if err := provisioner.NewEngine(s, sink).Provision(wb, schema); err != nil {
		t.Fatalf("Provision failed: %v", err)
	}

	return NewEngine(s, sink), wb
}

// TestExtractRoundTrip 测试配置后提取还原
func TestExtractRoundTrip(t *testing.T) {
	schema := model.TemplateSchema{
		TemplateID: "tpl-1",
		Name:       "采购单",
		Fields: []model.TemplateField{
			{Key: "a", Label: "A"},
			{Key: "b", Label: "B"},
		},
	}
	engine, wb := newTestEnv(t, schema)

	mustWriteRow(t, wb, model.DataStartRow, []string{"x", "y"})
	mustWriteRow(t, wb, model.DataStartRow+1, []string{"p", "q"})

	data, err := engine.Extract(wb)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if data.TemplateID != "tpl-1" {
		t.Errorf("templateId = %s, want tpl-1", data.TemplateID)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(data.Rows))
	}
	if data.Rows[0]["a"] != "x" || data.Rows[0]["b"] != "y" {
		t.Errorf("row 0 = %v", data.Rows[0])
	}
	if data.Rows[1]["a"] != "p" || data.Rows[1]["b"] != "q" {
		t.Errorf("row 1 = %v", data.Rows[1])
	}
}

// TestExtractOmitsBlankCells 测试空白单元格整体省略
func TestExtractOmitsBlankCells(t *testing.T) {
	schema := model.TemplateSchema{
		TemplateID: "tpl-1",
		Name:       "联系人",
		Fields: []model.TemplateField{
			{Key: "name", Label: "名称"},
			{Key: "email", Label: "邮箱"},
			{Key: "phone", Label: "电话"},
		},
	}
	engine, wb := newTestEnv(t, schema)

	mustWriteRow(t, wb, model.DataStartRow, []string{"Alice", "", "555"})

	data, err := engine.Extract(wb)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(data.Rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(data.Rows))
	}

	record := data.Rows[0]
	if record["name"] != "Alice" || record["phone"] != "555" {
		t.Errorf("record = %v", record)
	}
	if _, exists := record["email"]; exists {
		t.Error("blank cell must not produce a key")
	}
}

// TestExtractEmptyDataSheet 测试无数据行时返回空记录集
func TestExtractEmptyDataSheet(t *testing.T) {
	schema := model.TemplateSchema{
		TemplateID: "tpl-1",
		Fields:     []model.TemplateField{{Key: "a", Label: "A"}},
	}
	engine, wb := newTestEnv(t, schema)

	data, err := engine.Extract(wb)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(data.Rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(data.Rows))
	}
	if data.TemplateID != "tpl-1" {
		t.Errorf("templateId = %s", data.TemplateID)
	}
}

// TestExtractFailsWhenSheetDeleted 测试结构表被删除后的失败路径
func TestExtractFailsWhenSheetDeleted(t *testing.T) {
	schema := model.TemplateSchema{
		TemplateID: "tpl-1",
		Fields:     []model.TemplateField{{Key: "a", Label: "A"}},
	}
	engine, wb := newTestEnv(t, schema)

	if err := wb.DeleteSheet(model.DataSheetName); err != nil {
		t.Fatalf("DeleteSheet failed: %v", err)
	}

	_, err := engine.Extract(wb)
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected *ExtractionError, got %v", err)
	}
}

// TestExtractWithoutBinding 测试未配置文档直接提取
func TestExtractWithoutBinding(t *testing.T) {
	dir := t.TempDir()
	s, err := store.New(filepath.Join(dir, "tdsmaker.db"))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	defer s.Close()

	wb, err := workbook.Open(filepath.Join(dir, "book.xlsx"))
	if err != nil {
		t.Fatalf("workbook.Open failed: %v", err)
	}
	defer wb.Close()

	_, err = NewEngine(s, diag.NewSink("", "")).Extract(wb)
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected *ExtractionError, got %v", err)
	}
}

func mustWriteRow(t *testing.T, wb *workbook.Workbook, row int, values []string) {
	t.Helper()
	if err := wb.WriteRow(model.DataSheetName, row, values); err != nil {
		t.Fatalf("WriteRow failed: %v", err)
	}
}
