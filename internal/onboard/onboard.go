package onboard

import (
	"github.com/tds-maker/google-docs-add-on/internal/diag"
	"github.com/tds-maker/google-docs-add-on/internal/store"
	"github.com/tds-maker/google-docs-add-on/internal/workbook"
)

// Page 侧边栏页面
type Page string

const (
	// PageWelcome 未登录
	PageWelcome Page = "welcome"
	// PageTemplates 已登录、待选择模板（或结构表失效待重建）
	PageTemplates Page = "templates"
	// PageSend 绑定完整、可提取发送
	PageSend Page = "send"
)

// Resolver 打开时的页面决策
//
// 每次打开都从持久化状态重新求值，从不缓存：先看文档绑定，再看
// 用户会话。绑定声称已安装但结构表被外部删除时，回退到模板选择页
// 并顺手清掉失效绑定，让下一次配置从干净状态开始。
type Resolver struct {
	store *store.Store
	diag  *diag.Sink
}

// NewResolver 创建页面决策器
func NewResolver(store *store.Store, sink *diag.Sink) *Resolver {
	return &Resolver{store: store, diag: sink}
}

// Resolve 计算应当展示的页面
func (r *Resolver) Resolve(wb *workbook.Workbook) Page {
	binding, err := r.store.GetDocumentBinding(wb.Path())
	if err == nil && binding.Installed {
		_, dataOK := wb.SheetNameByID(binding.DataSheetID)
		_, mappingOK := wb.SheetNameByID(binding.MappingSheetID)
		if dataOK && mappingOK {
			return PageSend
		}

		// 结构表被外部删除：绑定失效，强制重新配置
		r.diag.Send("structural sheets missing for %s, dropping stale binding", wb.Path())
		if err := r.store.ClearDocumentBinding(wb.Path()); err != nil {
			r.diag.Send("failed to drop stale binding for %s: %s", wb.Path(), err)
		}
		return PageTemplates
	}

	if r.store.HasSession() {
		return PageTemplates
	}
	return PageWelcome
}
