package bundler

import (
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Handler is event handler code of a single component.
type Handler struct {
	ComponentID  uint32
	Code         string
	UsesClosures bool
	ClosureVars  []string
}

const closurePreamble = `  local js = require("js")
  local element = js.global.__kryon_get_event_element()
  local data = element and (element.data or (element.getData and element:getData()))
`

// closureVars maps supported captured variables to statements restoring them
// from event target data attributes.
var closureVars = map[string]string{
	"habitIndex": "  local habitIndex = tonumber(data and data.habit)\n",
	"day.date":   "  local dateStr = data and data.date\n",
	"dateStr":    "  local dateStr = data and data.date\n",
	"index":      "  local index = tonumber(data and data.index)\n",
	"item":       "  local item = data and data.item\n",
}

// isFunction reports whether code is a single function expression rather than
// statements of handler body.
func isFunction(code string) bool {
	toks := tokenize(code)
	if len(toks) < 3 || !toks[0].is(tokName, "function") || !toks[1].is(tokPunct, "(") {
		return false
	}
	return toks[len(toks)-1].is(tokName, "end")
}

// function returns handler as Lua function expression. Code is either
// function expression or body statements.
func (h Handler) function(code string) string {
	code = strings.TrimSpace(code)
	expr := isFunction(code)
	if !h.UsesClosures {
		if expr {
			return code
		}
		return "function()\n" + code + "\nend"
	}

	var sb strings.Builder
	sb.WriteString("function()\n")
	sb.WriteString(closurePreamble)
	seen := make(map[string]struct{})
	for _, v := range h.ClosureVars {
		line, ok := closureVars[v]
		if !ok {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		sb.WriteString(line)
	}
	if expr {
		sb.WriteString("  return (" + code + ")()\n")
	} else {
		sb.WriteString(code + "\n")
	}
	sb.WriteString("end")
	return sb.String()
}

// Registry keeps one handler per component.
type Registry struct {
	log      *zap.Logger
	handlers map[uint32]Handler
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		log:      log,
		handlers: make(map[uint32]Handler),
	}
}

// Add registers handler. Handlers without code and second handlers for the
// same component are ignored.
func (r *Registry) Add(h Handler) bool {
	if len(strings.TrimSpace(h.Code)) == 0 {
		return false
	}
	if _, ok := r.handlers[h.ComponentID]; ok {
		r.log.Warn("Component already has handler, ignoring", zap.Uint32("component", h.ComponentID))
		return false
	}
	if h.UsesClosures {
		for _, v := range h.ClosureVars {
			if _, ok := closureVars[v]; !ok {
				r.log.Warn("Unsupported closure variable, handler may fail", zap.Uint32("component", h.ComponentID), zap.String("variable", v))
			}
		}
	}
	r.handlers[h.ComponentID] = h
	return true
}

func (r *Registry) Len() int {
	return len(r.handlers)
}

// Handlers returns registered handlers ordered by component id.
func (r *Registry) Handlers() []Handler {
	ids := make([]uint32, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Handler, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.handlers[id])
	}
	return out
}

// writeTo emits dispatch table, dispatcher and JavaScript bridge. Calls of
// namespace functions in handler code are redirected to namespace table.
func (r *Registry) writeTo(sb *strings.Builder, ns Namespace) {
	if r.Len() == 0 {
		return
	}
	sb.WriteString("\n-- Handler registry\n")
	sb.WriteString("local __kryon_handlers__ = {}\n")
	for _, h := range r.Handlers() {
		code := h.Code
		if ns.enabled() {
			code = RewriteCalls(code, ns.Names, ns.Table)
		}
		sb.WriteString("__kryon_handlers__[" + strconv.FormatUint(uint64(h.ComponentID), 10) + "] = ")
		sb.WriteString(h.function(code))
		sb.WriteString("\n")
	}
	sb.WriteString(dispatcher)
}

const dispatcher = `
-- Dispatch function called by JavaScript
function kryonCallHandler(componentId)
  local handler = __kryon_handlers__[componentId]
  if handler then
    local success, err = pcall(handler)
    if not success then
      print('[Kryon] Handler error:', err)
    end
  end
end

-- JavaScript bridge, first argument is 'this'
local js = require("js")
local window = js.global
window.kryonLuaCallHandler = function(this, componentId)
  kryonCallHandler(componentId)
end
`
