package state

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"kryweb/config"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("start time not set")
	}
	if env.Cfg != nil || env.Rpt != nil || env.Log != nil || env.CodePage != nil || env.LuaVM != nil {
		t.Errorf("fresh env is not empty: %+v", env)
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("EnvFromContext() did not panic without env")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now().Add(-time.Minute)}
	if got := env.Uptime(); got < time.Minute || got > time.Minute+time.Second {
		t.Errorf("Uptime() = %v, want about a minute", got)
	}
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	env := &LocalEnv{Log: zap.New(core)}

	for i := range 2 {
		env.RedirectStdLog()
		if env.undoStd == nil {
			t.Fatalf("cycle %d: undoStd not set", i)
		}
		log.Print("from standard logger")
		env.RestoreStdLog()
	}
	if got := logs.FilterMessage("from standard logger").Len(); got != 2 {
		t.Errorf("redirected entries = %d, want 2", got)
	}
}

func TestLocalEnv_NilLogger(t *testing.T) {
	env := &LocalEnv{}
	env.RedirectStdLog()
	if env.undoStd != nil {
		t.Error("undoStd set without logger")
	}
	env.RestoreStdLog()
}

func TestLocalEnv_LoadLuaVM(t *testing.T) {
	vm := filepath.Join(t.TempDir(), "fengari-web.js")
	if err := os.WriteFile(vm, []byte("var fengari;"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"not configured", "", "", false},
		{"configured", vm, "var fengari;", false},
		{"missing", filepath.Join(t.TempDir(), "missing.js"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newLocalEnv()
			env.Log = zap.NewNop()
			env.Cfg = &config.Config{Version: 1}
			env.Cfg.Generator.HTML.LuaVMPath = tt.path

			err := env.LoadLuaVM()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLuaVM() error = %v, wantErr %v", err, tt.wantErr)
			}
			if string(env.LuaVM) != tt.want {
				t.Errorf("LuaVM = %q, want %q", env.LuaVM, tt.want)
			}
		})
	}
}

func TestLocalEnv_LoadLuaVMReport(t *testing.T) {
	vm := filepath.Join(t.TempDir(), "fengari-web.js")
	if err := os.WriteFile(vm, []byte("var fengari;"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	rpt, err := (&config.ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	env := newLocalEnv()
	env.Rpt = rpt
	env.Cfg = &config.Config{Version: 1}
	env.Cfg.Generator.HTML.LuaVMPath = vm
	if err := env.LoadLuaVM(); err != nil {
		t.Fatalf("LoadLuaVM() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(rpt.Name()); err != nil {
		t.Errorf("report not written: %v", err)
	}
}
