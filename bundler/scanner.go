package bundler

import (
	"strings"
)

// Extractor finds what bundling needs in Lua source text.
type Extractor interface {
	// Requires returns names of required modules in order of first appearance.
	Requires(src string) []string
	// FunctionNames returns names of functions defined at chunk level either
	// as locals or through _G.
	FunctionNames(src string) []string
	// StripReturn removes trailing chunk level return statement.
	StripReturn(src string) string
}

// Lexical is Extractor working on token stream. It does not parse Lua: it
// skips comments and string literals and tracks block nesting by keywords,
// which is enough for well formed sources.
type Lexical struct{}

func (Lexical) Requires(src string) []string {
	toks := tokenize(src)

	var names []string
	seen := make(map[string]struct{})
	for i, t := range toks {
		if !t.is(tokName, "require") || memberAccess(toks, i) {
			continue
		}
		j := i + 1
		if j < len(toks) && toks[j].is(tokPunct, "(") {
			j++
		}
		if j >= len(toks) || toks[j].kind != tokString {
			continue
		}
		name := strings.TrimSpace(toks[j].text)
		if len(name) == 0 || strings.ContainsAny(name, "\r\n") {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func (Lexical) FunctionNames(src string) []string {
	toks := tokenize(src)

	var names []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	depth := 0
	for i, t := range toks {
		switch {
		case depth == 0 && t.is(tokName, "local"):
			// local function NAME
			if at(toks, i+1).is(tokName, "function") && isIdent(at(toks, i+2)) {
				add(toks[i+2].text)
			}
			// local NAME = function
			if isIdent(at(toks, i+1)) && at(toks, i+2).is(tokPunct, "=") && at(toks, i+3).is(tokName, "function") {
				add(toks[i+1].text)
			}
		case t.is(tokName, "_G") && !memberAccess(toks, i):
			// _G.NAME = function
			if at(toks, i+1).is(tokPunct, ".") && isIdent(at(toks, i+2)) &&
				at(toks, i+3).is(tokPunct, "=") && at(toks, i+4).is(tokName, "function") {
				add(toks[i+2].text)
			}
		}
		depth = max(depth+blockDelta(t), 0)
	}
	return names
}

func (Lexical) StripReturn(src string) string {
	cut, depth := -1, 0
	for _, t := range tokenize(src) {
		if depth == 0 && t.is(tokName, "return") {
			cut = t.pos
		}
		depth = max(depth+blockDelta(t), 0)
	}
	if cut < 0 {
		return src
	}
	return strings.TrimRight(src[:cut], " \t\r\n")
}

type tokenKind int

const (
	tokName tokenKind = iota
	tokString
	tokNumber
	tokPunct
)

type token struct {
	kind tokenKind
	text string // for strings - contents without delimiters
	pos  int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

var keywords = map[string]struct{}{
	"and": {}, "break": {}, "do": {}, "else": {}, "elseif": {}, "end": {},
	"false": {}, "for": {}, "function": {}, "goto": {}, "if": {}, "in": {},
	"local": {}, "nil": {}, "not": {}, "or": {}, "repeat": {}, "return": {},
	"then": {}, "true": {}, "until": {}, "while": {},
}

func isIdent(t token) bool {
	if t.kind != tokName {
		return false
	}
	_, kw := keywords[t.text]
	return !kw
}

// at returns token or empty punctuation when out of range.
func at(toks []token, i int) token {
	if i < 0 || i >= len(toks) {
		return token{kind: tokPunct}
	}
	return toks[i]
}

// memberAccess reports whether name at i is a field or method (a.name, a:name).
// Name following concatenation (s .. name) is not a member.
func memberAccess(toks []token, i int) bool {
	prev := at(toks, i-1)
	if prev.is(tokPunct, ":") {
		return true
	}
	if !prev.is(tokPunct, ".") {
		return false
	}
	before := at(toks, i-2)
	return !before.is(tokPunct, ".") || before.pos+1 != prev.pos
}

// blockDelta returns nesting change caused by keyword. while and for open
// their block with do.
func blockDelta(t token) int {
	if t.kind != tokName {
		return 0
	}
	switch t.text {
	case "function", "if", "do", "repeat":
		return 1
	case "end", "until":
		return -1
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func tokenize(src string) []token {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case isSpace(c):
			i++
		case strings.HasPrefix(src[i:], "--"):
			i = skipComment(src, i+2)
		case c == '"' || c == '\'':
			text, end := quoted(src, i)
			toks = append(toks, token{kind: tokString, text: text, pos: i})
			i = end
		case c == '[' && longBracket(src, i) >= 0:
			text, end := longString(src, i, longBracket(src, i))
			toks = append(toks, token{kind: tokString, text: text, pos: i})
			i = end
		case isNameStart(c):
			j := i + 1
			for j < len(src) && isNameChar(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokName, text: src[i:j], pos: i})
			i = j
		case isDigit(c):
			j := i + 1
			for j < len(src) && (isNameChar(src[j]) || (src[j] == '.' && !strings.HasPrefix(src[j:], ".."))) {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: src[i:j], pos: i})
			i = j
		default:
			toks = append(toks, token{kind: tokPunct, text: src[i : i+1], pos: i})
			i++
		}
	}
	return toks
}

// skipComment returns offset after comment body starting at i.
func skipComment(src string, i int) int {
	if i < len(src) && src[i] == '[' {
		if level := longBracket(src, i); level >= 0 {
			_, end := longString(src, i, level)
			return end
		}
	}
	if n := strings.IndexByte(src[i:], '\n'); n >= 0 {
		return i + n + 1
	}
	return len(src)
}

// quoted returns contents of short string literal starting at i and offset
// after it. Unterminated literal ends at line end.
func quoted(src string, i int) (string, int) {
	q := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case q:
			return src[i+1 : j], j + 1
		case '\n':
			return src[i+1 : j], j
		}
	}
	return src[i+1:], len(src)
}

// longBracket returns level of long bracket opening at i ([[, [=[, ...) or -1.
func longBracket(src string, i int) int {
	j := i + 1
	for j < len(src) && src[j] == '=' {
		j++
	}
	if j < len(src) && src[j] == '[' {
		return j - i - 1
	}
	return -1
}

func longString(src string, i, level int) (string, int) {
	start := i + level + 2
	closing := "]" + strings.Repeat("=", level) + "]"
	n := strings.Index(src[start:], closing)
	if n < 0 {
		return src[start:], len(src)
	}
	return src[start : start+n], start + n + len(closing)
}
