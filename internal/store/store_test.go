package store

import (
	"path/filepath"
	"testing"

	"github.com/tds-maker/google-docs-add-on/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "tdsmaker.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestUserProperties 测试用户级属性读写
func TestUserProperties(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetUserProperty("token"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.SetUserProperty("token", "abc"); err != nil {
		t.Fatalf("SetUserProperty failed: %v", err)
	}
	got, err := s.GetUserProperty("token")
	if err != nil {
		t.Fatalf("GetUserProperty failed: %v", err)
	}
	if got != "abc" {
		t.Errorf("token = %q, want abc", got)
	}

	// 覆盖写
	if err := s.SetUserProperty("token", "def"); err != nil {
		t.Fatalf("SetUserProperty overwrite failed: %v", err)
	}
	got, _ = s.GetUserProperty("token")
	if got != "def" {
		t.Errorf("token after overwrite = %q, want def", got)
	}

	if err := s.DeleteUserProperty("token"); err != nil {
		t.Fatalf("DeleteUserProperty failed: %v", err)
	}
	if _, err := s.GetUserProperty("token"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

// TestDocumentPropertiesScoped 测试文档级属性按文档隔离
func TestDocumentPropertiesScoped(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetDocumentProperty("doc-a", "installed", "true"); err != nil {
		t.Fatalf("SetDocumentProperty failed: %v", err)
	}

	if _, err := s.GetDocumentProperty("doc-b", "installed"); !IsNotFound(err) {
		t.Fatalf("doc-b should not see doc-a properties, got %v", err)
	}

	got, err := s.GetDocumentProperty("doc-a", "installed")
	if err != nil {
		t.Fatalf("GetDocumentProperty failed: %v", err)
	}
	if got != "true" {
		t.Errorf("installed = %q, want true", got)
	}
}

// TestSessionRoundTrip 测试会话持久化
func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if s.HasSession() {
		t.Fatal("new store should have no session")
	}

	session := model.AccountSession{Token: "tok-1", AccountID: "acct-1"}
	if err := s.SaveSession(session); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, err := s.GetSession()
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != session {
		t.Errorf("session = %+v, want %+v", got, session)
	}
	if !s.HasSession() {
		t.Error("HasSession should be true after save")
	}
}

// TestTemplateCacheRoundTrip 测试模板缓存
func TestTemplateCacheRoundTrip(t *testing.T) {
	s := newTestStore(t)

	schemas := []model.TemplateSchema{
		{TemplateID: "t1", Name: "采购单", Fields: []model.TemplateField{{Key: "name", Label: "名称"}}},
		{TemplateID: "t2", Name: "检验单"},
	}
	if err := s.SaveTemplateCache(schemas); err != nil {
		t.Fatalf("SaveTemplateCache failed: %v", err)
	}

	got, err := s.GetTemplateCache()
	if err != nil {
		t.Fatalf("GetTemplateCache failed: %v", err)
	}
	if len(got) != 2 || got[0].TemplateID != "t1" || got[1].Name != "检验单" {
		t.Errorf("unexpected cache content: %+v", got)
	}
	if len(got[0].Fields) != 1 || got[0].Fields[0].Key != "name" {
		t.Errorf("fields not preserved: %+v", got[0].Fields)
	}
}

// TestDocumentBindingRoundTrip 测试文档绑定整体读写
func TestDocumentBindingRoundTrip(t *testing.T) {
	s := newTestStore(t)

	docID := "book.xlsx"
	if _, err := s.GetDocumentBinding(docID); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound for missing binding, got %v", err)
	}

	binding := model.DocumentBinding{
		Installed:      true,
		DataSheetID:    2,
		MappingSheetID: 3,
		Schema: &model.TemplateSchema{
			TemplateID: "t1",
			Name:       "采购单",
			Fields: []model.TemplateField{
				{Key: "name", Label: "名称"},
				{Key: "email", Label: "邮箱"},
			},
		},
	}
	if err := s.SaveDocumentBinding(docID, binding); err != nil {
		t.Fatalf("SaveDocumentBinding failed: %v", err)
	}

	got, err := s.GetDocumentBinding(docID)
	if err != nil {
		t.Fatalf("GetDocumentBinding failed: %v", err)
	}
	if !got.Installed || got.DataSheetID != 2 || got.MappingSheetID != 3 {
		t.Errorf("binding mismatch: %+v", got)
	}
	if got.Schema == nil || got.Schema.TemplateID != "t1" || len(got.Schema.Fields) != 2 {
		t.Errorf("schema mismatch: %+v", got.Schema)
	}
	// 字段顺序必须保持
	if got.Schema.Fields[0].Key != "name" || got.Schema.Fields[1].Key != "email" {
		t.Errorf("field order not preserved: %+v", got.Schema.Fields)
	}

	if !s.IsInstalled(docID) {
		t.Error("IsInstalled should be true")
	}
}

// TestSaveDocumentBindingRequiresSchema 测试缺少模板时拒绝写入
func TestSaveDocumentBindingRequiresSchema(t *testing.T) {
	s := newTestStore(t)

	err := s.SaveDocumentBinding("doc", model.DocumentBinding{Installed: true})
	if err == nil {
		t.Fatal("SaveDocumentBinding should reject a binding without schema")
	}
}

// TestClearDocumentBinding 测试绑定清除
func TestClearDocumentBinding(t *testing.T) {
	s := newTestStore(t)

	docID := "book.xlsx"
	binding := model.DocumentBinding{
		Installed:      true,
		DataSheetID:    2,
		MappingSheetID: 3,
		Schema:         &model.TemplateSchema{TemplateID: "t1"},
	}
	if err := s.SaveDocumentBinding(docID, binding); err != nil {
		t.Fatalf("SaveDocumentBinding failed: %v", err)
	}

	if err := s.ClearDocumentBinding(docID); err != nil {
		t.Fatalf("ClearDocumentBinding failed: %v", err)
	}
	if s.IsInstalled(docID) {
		t.Error("IsInstalled should be false after clear")
	}
	if _, err := s.GetDocumentBinding(docID); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}
