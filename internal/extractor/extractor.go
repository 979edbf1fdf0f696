package extractor

import (
	"fmt"

	"github.com/tds-maker/google-docs-add-on/internal/diag"
	"github.com/tds-maker/google-docs-add-on/internal/model"
	"github.com/tds-maker/google-docs-add-on/internal/store"
	"github.com/tds-maker/google-docs-add-on/internal/workbook"
)

// ExtractionError 数据读取失败（需要用户修复表格状态后重试）
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "failed to parse data, please try again later"
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Engine 数据提取引擎
//
// 通过隐藏映射表把物理行还原为按字段名键入的记录：映射行给出列到
// 字段的对应关系，数据从固定偏移行开始逐行读取，空白单元格整体省略。
type Engine struct {
	store *store.Store
	diag  *diag.Sink
}

// NewEngine 创建提取引擎
func NewEngine(store *store.Store, sink *diag.Sink) *Engine {
	return &Engine{store: store, diag: sink}
}

// Extract 把数据表内容提取为模板记录
//
// 任何读取失败都会整体中止，不返回部分结果。
func (e *Engine) Extract(wb *workbook.Workbook) (model.TemplateData, error) {
	data, err := e.extract(wb)
	if err != nil {
		e.diag.Send("failed to parse data: %s", err)
		return model.TemplateData{}, &ExtractionError{Err: err}
	}
	return data, nil
}

func (e *Engine) extract(wb *workbook.Workbook) (model.TemplateData, error) {
	var data model.TemplateData

	binding, err := e.store.GetDocumentBinding(wb.Path())
	if err != nil {
		return data, fmt.Errorf("document binding not available: %w", err)
	}

	mappingSheet, ok := wb.SheetNameByID(binding.MappingSheetID)
	if !ok {
		return data, fmt.Errorf("mapping sheet %d no longer exists", binding.MappingSheetID)
	}
	dataSheet, ok := wb.SheetNameByID(binding.DataSheetID)
	if !ok {
		return data, fmt.Errorf("data sheet %d no longer exists", binding.DataSheetID)
	}

	// 映射行的列跨度等于绑定模板的字段数
	fieldCount := len(binding.Schema.Fields)
	keys, err := wb.ReadRow(mappingSheet, model.MappingKeyRow, fieldCount)
	if err != nil {
		return data, fmt.Errorf("failed to read mapping row: %w", err)
	}

	lastRow, err := wb.LastRow(dataSheet)
	if err != nil {
		return data, err
	}

	rows := make([]model.Record, 0)
	for row := model.DataStartRow; row <= lastRow; row++ {
		values, err := wb.ReadRow(dataSheet, row, fieldCount)
		if err != nil {
			return data, fmt.Errorf("failed to read data row %d: %w", row, err)
		}

		record := model.Record{}
		for col := 0; col < fieldCount; col++ {
			// 空白单元格不产生键：字段语义为“未提供”而非空值
			if values[col] == "" {
				continue
			}
			record[keys[col]] = values[col]
		}
		rows = append(rows, record)
	}

	data.TemplateID = binding.Schema.TemplateID
	data.Rows = rows
	return data, nil
}
