package model

// DocumentBinding 文档与模板的绑定关系（文档级持久化状态）
//
// Installed 为 true 时两张结构表必须都能解析；任何一张被用户删除后，
// 绑定视为失效，由 onboard 侧检测并回退到重新配置流程。
type DocumentBinding struct {
	Installed      bool            `json:"installed"`
	DataSheetID    int             `json:"dataSheet"`
	MappingSheetID int             `json:"mappingSheet"`
	Schema         *TemplateSchema `json:"templateData"`
}

// AccountSession 用户级会话状态
type AccountSession struct {
	Token     string `json:"token"`
	AccountID string `json:"_id"`
}

// Record 一行提取结果：字段名 -> 单元格文本
// 空白单元格不产生键（语义为“字段未提供”而非空值）
type Record map[string]string

// TemplateData 一次提取的完整结果
type TemplateData struct {
	TemplateID string   `json:"templateId"`
	Rows       []Record `json:"rows"`
}
