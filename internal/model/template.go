package model

import "encoding/json"

// TemplateField 模板字段
// Key 为提交数据时的字段名，Label 为表头显示名
type TemplateField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// TemplateSchema 远端模板的字段结构
//
// Fields 的顺序决定两张结构表的物理列顺序，绑定持久化之后不再变化。
type TemplateSchema struct {
	TemplateID string          `json:"templateId"`
	Name       string          `json:"name"`
	Fields     []TemplateField `json:"fields"`
}

// Labels 按字段顺序返回表头显示名
func (s *TemplateSchema) Labels() []string {
	labels := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		labels[i] = f.Label
	}
	return labels
}

// Keys 按字段顺序返回字段名
func (s *TemplateSchema) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

// TemplateOption 侧边栏模板下拉项
type TemplateOption struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FormatTemplateOptions 将模板列表转换为下拉项（templateId -> 显示名）
func FormatTemplateOptions(schemas []TemplateSchema) []TemplateOption {
	options := make([]TemplateOption, 0, len(schemas))
	for _, s := range schemas {
		options = append(options, TemplateOption{Key: s.TemplateID, Value: s.Name})
	}
	return options
}

// FindSchemaByID 在模板列表中按 templateId 查找
func FindSchemaByID(schemas []TemplateSchema, id string) (TemplateSchema, bool) {
	for _, s := range schemas {
		if s.TemplateID == id {
			return s, true
		}
	}
	return TemplateSchema{}, false
}

// MarshalSchemas 序列化模板列表（用于用户级缓存）
func MarshalSchemas(schemas []TemplateSchema) (string, error) {
	b, err := json.Marshal(schemas)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalSchemas 反序列化模板列表
func UnmarshalSchemas(raw string) ([]TemplateSchema, error) {
	var schemas []TemplateSchema
	if err := json.Unmarshal([]byte(raw), &schemas); err != nil {
		return nil, err
	}
	return schemas, nil
}
