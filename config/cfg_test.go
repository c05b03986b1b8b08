package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"kryweb/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kryweb.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_Defaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}

	css := cfg.Generator.CSS
	if css.Placement != common.CSSPlacementSeparate {
		t.Errorf("Placement = %v, want separate", css.Placement)
	}
	if !css.Header || !css.HelperStyles {
		t.Errorf("Header = %v, HelperStyles = %v, want both true", css.Header, css.HelperStyles)
	}
	if css.Background != "#3d3d3d" || css.Text != "#ffffff" || css.Border != "#4c5057" {
		t.Errorf("palette = %s %s %s", css.Background, css.Text, css.Border)
	}

	script := cfg.Generator.Script
	if !slices.Equal(script.SearchPaths, []string{"."}) {
		t.Errorf("SearchPaths = %q", script.SearchPaths)
	}
	if script.Namespace != "__kryon_app__" || !script.WebModules || script.Embed {
		t.Errorf("script = %+v", script)
	}

	html := cfg.Generator.HTML
	if html.Title != "Kryon Web Application" || html.Lang != "en" || html.LuaVM != "fengari-web.min.js" {
		t.Errorf("html = %+v", html)
	}
	if !cfg.Generator.Output.CopyAssets {
		t.Error("CopyAssets = false, want true")
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("file log level = %s, want none", cfg.Logging.FileLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `version: 1
generator:
  css:
    placement: embedded
    background: "#000000"
    size_limit: 4096
  script:
    search_paths: ["lib", "/usr/share/kryon/lua"]
    namespace: ""
    embed: true
  html:
    title: Habits
    lang: de
  output:
    name_template: "{{ .Title }}"
logging:
  console:
    level: debug
  file:
    level: debug
    destination: `+filepath.Join(dir, "logs", "kryweb.log")+`
    mode: append
`)
	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	gen := cfg.Generator
	if gen.CSS.Placement != common.CSSPlacementEmbedded {
		t.Errorf("Placement = %v, want embedded", gen.CSS.Placement)
	}
	if gen.CSS.Background != "#000000" || gen.CSS.SizeLimit != 4096 {
		t.Errorf("css = %+v", gen.CSS)
	}
	// not overridden values keep defaults
	if gen.CSS.Text != "#ffffff" || !gen.CSS.Header {
		t.Errorf("css defaults lost: %+v", gen.CSS)
	}
	if !slices.Equal(gen.Script.SearchPaths, []string{"lib", "/usr/share/kryon/lua"}) {
		t.Errorf("SearchPaths = %q", gen.Script.SearchPaths)
	}
	if gen.Script.Namespace != "" || !gen.Script.Embed {
		t.Errorf("script = %+v", gen.Script)
	}
	if gen.HTML.Title != "Habits" || gen.HTML.Lang != "de" {
		t.Errorf("html = %+v", gen.HTML)
	}
	if gen.Output.NameTemplate != "{{ .Title }}" {
		t.Errorf("NameTemplate = %q, want unexpanded template", gen.Output.NameTemplate)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("file log mode = %s, want append", cfg.Logging.FileLogger.Mode)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Errorf("log directory was not created: %v", err)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\ngenerator:\n  css\n   placement: x\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"unknown nested field", "version: 1\ngenerator:\n  css:\n    colour: red\n"},
		{"bad version", "version: 2\n"},
		{"bad color", "version: 1\ngenerator:\n  css:\n    background: grey\n"},
		{"bad placement", "version: 1\ngenerator:\n  css:\n    placement: inline\n"},
		{"negative size limit", "version: 1\ngenerator:\n  css:\n    size_limit: -1\n"},
		{"bad namespace", "version: 1\ngenerator:\n  script:\n    namespace: app.exports\n"},
		{"empty search path", "version: 1\ngenerator:\n  script:\n    search_paths: [\"\"]\n"},
		{"bad language", "version: 1\ngenerator:\n  html:\n    lang: \"not a tag\"\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: verbose\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("LoadConfiguration() error = nil")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfiguration() error = nil for missing file")
	}
}

func TestLoadConfiguration_MissingLuaVM(t *testing.T) {
	path := writeConfig(t, "version: 1\ngenerator:\n  html:\n    lua_vm_path: "+filepath.Join(t.TempDir(), "fengari.js")+"\n")
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("LoadConfiguration() error = nil for inaccessible Lua VM")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	cfg, err := LoadConfiguration("", func(*gencfg.ProcessingOptions) {})
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(data), "name_template:") {
		t.Errorf("Prepare() output misses output section:\n%s", data)
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Generator.CSS.Placement = common.CSSPlacementEmbedded
	cfg.Generator.Output.NameTemplate = "{{ .Title | lower }}"

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "placement: embedded") {
		t.Errorf("Dump() placement is not textual:\n%s", data)
	}

	back, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if back.Generator.CSS.Placement != common.CSSPlacementEmbedded {
		t.Errorf("Placement = %v after reload", back.Generator.CSS.Placement)
	}
	if back.Generator.Output.NameTemplate != cfg.Generator.Output.NameTemplate {
		t.Errorf("NameTemplate = %q after reload", back.Generator.Output.NameTemplate)
	}
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 99\n"), &Config{}, true)
	if err == nil {
		t.Fatal("unmarshalConfig() error = nil")
	}
	if !strings.Contains(err.Error(), "validation") {
		t.Errorf("unmarshalConfig() error = %v, want validation context", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("unmarshalConfig() error is not wrapped: %v", err)
	}
}

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"habits", "habits"},
		{"a/b", "ab"},
		{"", "app"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in, "app"); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
