package config

import "testing"

// TestDefaultConfig 测试默认配置
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port <= 0 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Remote.BaseURL != DefaultBaseURL {
		t.Errorf("base url = %s, want %s", cfg.Remote.BaseURL, DefaultBaseURL)
	}
}

// TestApplyEnvOverrides 测试环境变量覆盖
func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TDSMAKER_API_BASE_URL", "http://localhost:9999/api")
	t.Setenv("TDSMAKER_WORKBOOK_PATH", "/tmp/book.xlsx")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Remote.BaseURL != "http://localhost:9999/api" {
		t.Errorf("base url override failed: %s", cfg.Remote.BaseURL)
	}
	if cfg.Workbook.Path != "/tmp/book.xlsx" {
		t.Errorf("workbook path override failed: %s", cfg.Workbook.Path)
	}
}

// TestEmptyBaseURLFallsBack 测试空地址回退到固定入口
func TestEmptyBaseURLFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Remote.BaseURL = ""
	applyEnvOverrides(cfg)

	if cfg.Remote.BaseURL != DefaultBaseURL {
		t.Errorf("base url = %s, want fallback %s", cfg.Remote.BaseURL, DefaultBaseURL)
	}
}
