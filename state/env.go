// Package state keeps per run program state, passed around in context.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"kryweb/config"
)

type ctxKey int

const envKey ctxKey = iota

// LocalEnv is what commands of a single program run share.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// generate command switches
	NoDirs, Overwrite bool
	// code page of archive entry names lacking UTF-8 flag, nil keeps names as is
	CodePage encoding.Encoding
	// browser Lua VM copied next to every generated page
	LuaVM []byte

	start   time.Time
	undoStd func()
}

// EnvFromContext panics when ctx was not prepared by ContextWithEnv.
func EnvFromContext(ctx context.Context) *LocalEnv {
	env, ok := ctx.Value(envKey).(*LocalEnv)
	if !ok {
		panic("state: context carries no program environment")
	}
	return env
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey, newLocalEnv())
}

// Uptime returns time passed since environment was created.
func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// RedirectStdLog sends output of standard log package to program logger
// until RestoreStdLog.
func (e *LocalEnv) RedirectStdLog() {
	if e.Log != nil {
		e.undoStd = zap.RedirectStdLog(e.Log.Named("std"))
	}
}

// RestoreStdLog flushes program logger and undoes RedirectStdLog.
func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.undoStd != nil {
		e.undoStd()
		e.undoStd = nil
	}
}
