package state

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

// LoadLuaVM reads configured local copy of the browser Lua VM once, so it
// could be put next to every generated page. Nothing is loaded when path is
// not configured.
func (e *LocalEnv) LoadLuaVM() error {
	if e.Cfg == nil || len(e.Cfg.Generator.HTML.LuaVMPath) == 0 {
		return nil
	}
	path := e.Cfg.Generator.HTML.LuaVMPath
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read Lua VM: %w", err)
	}
	e.LuaVM = data
	if e.Log != nil {
		e.Log.Debug("Lua VM loaded", zap.String("path", path), zap.Int("size", len(data)))
	}
	e.Rpt.Store("lua-vm.js", path)
	return nil
}
