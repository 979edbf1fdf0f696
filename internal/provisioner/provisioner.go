package provisioner

import (
	"fmt"

	"github.com/tds-maker/google-docs-add-on/internal/diag"
	"github.com/tds-maker/google-docs-add-on/internal/model"
	"github.com/tds-maker/google-docs-add-on/internal/store"
	"github.com/tds-maker/google-docs-add-on/internal/workbook"
)

// ProvisioningError 结构表配置失败（用户可重试，不会残留半安装状态）
type ProvisioningError struct {
	Err error
}

func (e *ProvisioningError) Error() string {
	return "failed to create/prepare necessary sheets, please try again later"
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// Engine 结构表配置引擎
//
// 把选定模板的字段结构写入两张物理表：数据表（表头为 label）与隐藏的
// 映射表（第 1 行为 key），随后把绑定整体持久化。重复调用是幂等的：
// 已存在的表按名识别并跳过创建。
type Engine struct {
	store *store.Store
	diag  *diag.Sink
}

// NewEngine 创建配置引擎
func NewEngine(store *store.Store, sink *diag.Sink) *Engine {
	return &Engine{store: store, diag: sink}
}

// Provision 为工作簿配置结构表并持久化文档绑定
func (e *Engine) Provision(wb *workbook.Workbook, schema model.TemplateSchema) error {
	if err := e.provision(wb, schema); err != nil {
		e.diag.Send("error occurred while preparing necessary sheets: %s", err)
		return &ProvisioningError{Err: err}
	}
	return nil
}

func (e *Engine) provision(wb *workbook.Workbook, schema model.TemplateSchema) error {
	// 失败时回滚本次新建的表，避免半成品落盘
	var created []string
	rollback := func() {
		for _, name := range created {
			_ = wb.DeleteSheet(name)
		}
	}

	fieldCount := len(schema.Fields)

	if !wb.HasSheet(model.DataSheetName) {
		if _, err := wb.CreateSheet(model.DataSheetName); err != nil {
			return err
		}
		created = append(created, model.DataSheetName)

		if err := wb.WriteRow(model.DataSheetName, model.HeaderLabelRow, schema.Labels()); err != nil {
			rollback()
			return fmt.Errorf("failed to write header labels: %w", err)
		}
		if err := wb.ProtectHeaderRow(model.DataSheetName, model.HeaderLabelRow, fieldCount); err != nil {
			rollback()
			return fmt.Errorf("failed to protect header row: %w", err)
		}
	}

	if !wb.HasSheet(model.MappingSheetName) {
		if _, err := wb.CreateSheet(model.MappingSheetName); err != nil {
			rollback()
			return err
		}
		created = append(created, model.MappingSheetName)

		if err := wb.WriteRow(model.MappingSheetName, model.MappingKeyRow, schema.Keys()); err != nil {
			rollback()
			return fmt.Errorf("failed to write mapping keys: %w", err)
		}
		if err := wb.ProtectHeaderRow(model.MappingSheetName, model.MappingKeyRow, fieldCount); err != nil {
			rollback()
			return fmt.Errorf("failed to protect mapping row: %w", err)
		}
	}

	// 映射表无论新建与否都保持隐藏
	if err := wb.HideSheet(model.MappingSheetName); err != nil {
		rollback()
		return fmt.Errorf("failed to hide mapping sheet: %w", err)
	}

	dataSheetID, ok := wb.SheetID(model.DataSheetName)
	if !ok {
		rollback()
		return fmt.Errorf("data sheet disappeared during provisioning")
	}
	mappingSheetID, ok := wb.SheetID(model.MappingSheetName)
	if !ok {
		rollback()
		return fmt.Errorf("mapping sheet disappeared during provisioning")
	}

	if err := wb.Save(); err != nil {
		rollback()
		return err
	}

	// 绑定最后写入且在单个事务内：要么整体可见，要么完全缺席
	binding := model.DocumentBinding{
		Installed:      true,
		DataSheetID:    dataSheetID,
		MappingSheetID: mappingSheetID,
		Schema:         &schema,
	}
	if err := e.store.SaveDocumentBinding(wb.Path(), binding); err != nil {
		return fmt.Errorf("failed to persist document binding: %w", err)
	}

	return nil
}
