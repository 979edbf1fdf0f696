package workbook

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook 宿主工作簿访问层
//
// 对 excelize 的薄封装，只暴露配置/提取两个引擎需要的操作：
// 按名建表、按 id 解析、隐藏、表头保护、整行读写。
type Workbook struct {
	path string
	file *excelize.File
}

// Open 打开工作簿；文件不存在时新建空工作簿（首次保存时落盘）
func Open(path string) (*Workbook, error) {
	if path == "" {
		return nil, fmt.Errorf("workbook path is empty")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Workbook{path: path, file: excelize.NewFile()}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &Workbook{path: path, file: f}, nil
}

// Path 工作簿文件路径（同时作为文档级属性的作用域 id）
func (w *Workbook) Path() string {
	return w.path
}

// Save 保存到原路径
func (w *Workbook) Save() error {
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Close 关闭底层文件
func (w *Workbook) Close() error {
	return w.file.Close()
}

// HasSheet 工作表是否存在（按名）
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// SheetID 按名取工作表 id；不存在时返回 false
func (w *Workbook) SheetID(name string) (int, bool) {
	if !w.HasSheet(name) {
		return 0, false
	}
	return w.sheetID(name), true
}

// sheetID 按名取工作表 id；excelize v2.8 起不再导出 GetSheetID，
// 此处复刻其实现（对 GetSheetMap 反查），不存在时返回 -1
func (w *Workbook) sheetID(name string) int {
	for sheetID, sheetName := range w.file.GetSheetMap() {
		if strings.EqualFold(sheetName, name) {
			return sheetID
		}
	}
	return -1
}

// SheetNameByID 按 id 解析工作表名
//
// id 在工作簿生命周期内稳定，表被删除后解析失败，调用方据此
// 识别出结构表已被外部删除。
func (w *Workbook) SheetNameByID(id int) (string, bool) {
	for sheetID, name := range w.file.GetSheetMap() {
		if sheetID == id {
			return name, true
		}
	}
	return "", false
}

// CreateSheet 新建工作表并返回其 id
func (w *Workbook) CreateSheet(name string) (int, error) {
	if _, err := w.file.NewSheet(name); err != nil {
		return 0, fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	return w.sheetID(name), nil
}

// DeleteSheet 删除工作表（配置失败时的回滚路径）
func (w *Workbook) DeleteSheet(name string) error {
	return w.file.DeleteSheet(name)
}

// HideSheet 将工作表从常规视图中隐藏
func (w *Workbook) HideSheet(name string) error {
	return w.file.SetSheetVisible(name, false)
}

// SheetVisible 工作表是否可见
func (w *Workbook) SheetVisible(name string) bool {
	visible, err := w.file.GetSheetVisible(name)
	return err == nil && visible
}

// WriteRow 从第 1 列起写入一整行
func (w *Workbook) WriteRow(sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return w.file.SetSheetRow(sheet, cell, &cells)
}

// ReadRow 读取指定行的前 cols 列，不足处补空串
func (w *Workbook) ReadRow(sheet string, row, cols int) ([]string, error) {
	values := make([]string, cols)
	for col := 1; col <= cols; col++ {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return nil, err
		}
		v, err := w.file.GetCellValue(sheet, cell)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s!%s: %w", sheet, cell, err)
		}
		values[col-1] = v
	}
	return values, nil
}

// LastRow 最后一个有内容的行号；空表返回 0
func (w *Workbook) LastRow(sheet string) (int, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to read rows of %s: %w", sheet, err)
	}
	return len(rows), nil
}

// ProtectHeaderRow 对表头行施加非强制保护
//
// xlsx 没有“仅警告”的区间保护，这里用最接近的组合近似：数据列整体
// 标记为可编辑，表头单元格锁定，再施加无密码的表级保护。用户仍可
// 一键撤销保护，只是防误改。
func (w *Workbook) ProtectHeaderRow(sheet string, row, cols int) error {
	if cols == 0 {
		return nil
	}

	unlocked, err := w.file.NewStyle(&excelize.Style{
		Protection: &excelize.Protection{Locked: false},
	})
	if err != nil {
		return err
	}
	locked, err := w.file.NewStyle(&excelize.Style{
		Protection: &excelize.Protection{Locked: true},
	})
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	if err := w.file.SetColStyle(sheet, "A:"+lastCol, unlocked); err != nil {
		return err
	}

	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(sheet, start, end, locked); err != nil {
		return err
	}

	return w.file.ProtectSheet(sheet, &excelize.SheetProtectionOptions{
		SelectLockedCells:   true,
		SelectUnlockedCells: true,
		FormatCells:         true,
		FormatColumns:       true,
		FormatRows:          true,
		InsertRows:          true,
		DeleteRows:          true,
		Sort:                true,
		AutoFilter:          true,
	})
}
