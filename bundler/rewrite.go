package bundler

import (
	"strings"
)

// Namespace is a table application functions are exported to, so handler code
// can reach them after main code ran.
type Namespace struct {
	Table string
	Names []string
}

func (n Namespace) enabled() bool {
	return len(n.Table) > 0 && len(n.Names) > 0
}

func (n Namespace) writeExport(sb *strings.Builder) {
	if !n.enabled() {
		return
	}
	sb.WriteString("-- Export application functions\n")
	sb.WriteString("local " + n.Table + " = {}\n")
	for _, name := range n.Names {
		sb.WriteString(n.Table + "." + name + " = " + name + " or " + n.Table + "." + name + "\n")
	}
	sb.WriteString("\n")
}

// RewriteCalls prefixes calls of any of names with ns: "foo(1)" becomes
// "ns.foo(1)". Field and method calls, function definitions, string literals
// and comments are left untouched.
func RewriteCalls(code string, names []string, ns string) string {
	if len(ns) == 0 || len(names) == 0 {
		return code
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	toks := tokenize(code)
	var sb strings.Builder
	last := 0
	for i, t := range toks {
		if t.kind != tokName {
			continue
		}
		if _, ok := set[t.text]; !ok {
			continue
		}
		if !at(toks, i+1).is(tokPunct, "(") || memberAccess(toks, i) || at(toks, i-1).is(tokName, "function") {
			continue
		}
		sb.WriteString(code[last:t.pos])
		sb.WriteString(ns)
		sb.WriteByte('.')
		last = t.pos
	}
	if last == 0 && sb.Len() == 0 {
		return code
	}
	sb.WriteString(code[last:])
	return sb.String()
}
