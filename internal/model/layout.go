package model

// 结构表布局契约
//
// 固定偏移：数据表第 1 行保留、第 2 行为表头，数据从第 3 行开始；
// 映射表第 1 行为字段名。配置与提取两侧必须使用同一组常量。
const (
	// DataSheetName 数据表名
	DataSheetName = "TDSMaker"
	// MappingSheetName 映射表名（隐藏，内部记账用）
	MappingSheetName = "Mappings"

	// HeaderLabelRow 数据表表头行
	HeaderLabelRow = 2
	// DataStartRow 数据起始行
	DataStartRow = 3
	// MappingKeyRow 映射表字段名行
	MappingKeyRow = 1
)
