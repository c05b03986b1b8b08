package bundler

import (
	_ "embed"
	"io"
	"strings"
)

//go:embed shim.lua
var shim string

const (
	scriptOpen  = "<script type=\"application/lua\">\n"
	scriptClose = "\n</script>\n"

	selfContainedHeader = `-- Kryon Web: self-contained mode
-- Handler code comes from the component tree, no application sources

`

	initSignal = `-- Signal initialization complete
local js = require("js")
local window = js.global
if window and window.kryon_lua_init_complete then
    window.kryon_lua_init_complete()
end

`
)

// luaQuote returns s as Lua string literal.
func luaQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}

func (s *Session) writeModules(sb *strings.Builder) {
	if len(s.modules) == 0 {
		return
	}
	sb.WriteString("-- Bundled Lua modules\n\n")
	for _, m := range s.modules {
		if len(m.AliasOf) > 0 {
			sb.WriteString("package.preload[" + luaQuote(m.Name) + "] = function() return require(" + luaQuote(m.AliasOf) + ") end\n\n")
			continue
		}
		sb.WriteString("package.preload[" + luaQuote(m.Name) + "] = function()\n")
		sb.WriteString(m.Source)
		sb.WriteString("\nend\n\n")
	}
}

// Script returns complete scripting payload: compatibility shim, bundled
// modules, main code, initialization signal, namespace export and handler
// registry. Without main source script is self-contained and carries only
// modules required by handlers.
func (s *Session) Script() string {
	var sb strings.Builder
	if s.b.opts.WrapTag {
		sb.WriteString(scriptOpen)
	}
	if !s.hasMain {
		sb.WriteString(selfContainedHeader)
	}
	sb.WriteString(shim)
	s.writeModules(&sb)
	if s.hasMain {
		sb.WriteString("-- Main application code\n")
		sb.WriteString(s.main)
		sb.WriteString("\n\n")
	}
	sb.WriteString(initSignal)
	s.ns.writeExport(&sb)
	s.handlers.writeTo(&sb, s.ns)
	if s.b.opts.WrapTag {
		sb.WriteString(scriptClose)
	}
	return sb.String()
}

// WriteTo writes script to w.
func (s *Session) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.Script())
	return int64(n), err
}
