package css

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "s", etc.
	Keyword string  // Keyword if applicable: "bold", "italic", "center", etc.
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	// "0" has neither unit nor non-zero value
	if v.Raw != "" && v.Keyword == "" {
		first := rune(v.Raw[0])
		if unicode.IsDigit(first) || first == '.' || first == '-' || first == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Declaration is a single property of a rule. Custom properties (--name)
// keep their value verbatim in Raw.
type Declaration struct {
	Property string
	Value    Value
	Custom   bool
}

// Selector represents a parsed CSS selector with its components. Only the
// rightmost compound is broken down, Complex is set when there is anything
// to the left of it.
type Selector struct {
	Raw     string   // Original selector string
	Element string   // Element name (e.g., "button") or empty
	ID      string   // Id without hash
	Classes []string // Class names without dots
	Pseudo  string   // Pseudo-class or pseudo-element including colons (":hover", "::backdrop")
	Complex bool     // Descendant or other combinator present
}

// IsSimple returns true if selector is a single compound without pseudo part.
func (s Selector) IsSimple() bool {
	return !s.Complex && s.Pseudo == "" && (s.Element != "" || s.ID != "" || len(s.Classes) > 0)
}

// Rule represents a single CSS rule: selector and declarations in source order.
type Rule struct {
	Selector     Selector
	Declarations []Declaration
}

// GetProperty returns the last value declared for a property.
func (r Rule) GetProperty(name string) (Value, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == name {
			return r.Declarations[i].Value, true
		}
	}
	return Value{}, false
}

// BlockKind identifies at-rule with a nested block.
type BlockKind int

const (
	BlockMedia BlockKind = iota
	BlockContainer
	BlockKeyframes
	BlockSupports
)

var blockNames = [...]string{"@media", "@container", "@keyframes", "@supports"}

func (k BlockKind) String() string {
	if int(k) < len(blockNames) {
		return blockNames[k]
	}
	return fmt.Sprintf("BlockKind(%d)", int(k))
}

// Block is an at-rule with nested rules. For @keyframes Prelude is animation
// name and rules are frames with offsets for selectors.
type Block struct {
	Kind    BlockKind
	Prelude string
	Rules   []Rule
}

// Context returns identity of the block: rules inside blocks with the same
// context compete with each other.
func (b *Block) Context() string {
	if len(b.Prelude) == 0 {
		return b.Kind.String()
	}
	return b.Kind.String() + " " + b.Prelude
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule, Block, or Import is non-nil.
type StylesheetItem struct {
	Rule   *Rule   // A plain rule (selector + declarations)
	Block  *Block  // An at-rule block containing nested rules
	Import *string // An @import URL
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Things parser could not make sense of
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// Rules returns top-level rules in source order.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

// Blocks returns at-rule blocks of the given kind in source order.
func (s *Stylesheet) Blocks(kind BlockKind) []*Block {
	var blocks []*Block
	for _, item := range s.Items {
		if item.Block != nil && item.Block.Kind == kind {
			blocks = append(blocks, item.Block)
		}
	}
	return blocks
}

// Keyframes returns names of all @keyframes blocks.
func (s *Stylesheet) Keyframes() []string {
	var names []string
	for _, b := range s.Blocks(BlockKeyframes) {
		names = append(names, b.Prelude)
	}
	return names
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector.Raw == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// urlRewritePattern matches url() references in CSS values for RewriteURLs.
// Handles: url("path"), url('path'), url(path)
var urlRewritePattern = regexp.MustCompile(`url\s*\(\s*(?:["']([^"']*)["']|([^)"]*))\s*\)`)

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Declarations keep their source order.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Import != nil:
			n, err = fmt.Fprintf(w, "@import url(\"%s\");\n", cssEscapeDoubleQuoted(*item.Import))
		case item.Block != nil:
			n, err = writeBlock(w, item.Block)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector.Raw)
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range rule.Declarations {
		n, err = fmt.Fprintf(w, "%s  %s: %s;\n", indent, d.Property, d.Value.Raw)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

func writeBlock(w io.Writer, b *Block) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s {\n", b.Context())
	total += n
	if err != nil {
		return total, err
	}
	for i := range b.Rules {
		n, err = writeRule(w, &b.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// RewriteURLs replaces every url() reference in declaration values with the
// result of fn. Rules nested in blocks are rewritten too.
func (s *Stylesheet) RewriteURLs(fn func(originalURL string) string) {
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			rewriteURLsInDeclarations(item.Rule.Declarations, fn)
		case item.Block != nil:
			for i := range item.Block.Rules {
				rewriteURLsInDeclarations(item.Block.Rules[i].Declarations, fn)
			}
		}
	}
}

func rewriteURLsInDeclarations(decls []Declaration, fn func(string) string) {
	for i := range decls {
		v := &decls[i].Value
		if !strings.Contains(v.Raw, "url(") {
			continue
		}
		v.Raw = rewriteURLsInValue(v.Raw, fn)
		if v.Keyword != "" {
			v.Keyword = rewriteURLsInValue(v.Keyword, fn)
		}
	}
}

func rewriteURLsInValue(value string, fn func(string) string) string {
	return urlRewritePattern.ReplaceAllStringFunc(value, func(match string) string {
		sub := urlRewritePattern.FindStringSubmatch(match)
		original := sub[1]
		if original == "" {
			original = strings.TrimSpace(sub[2])
		}
		return `url("` + cssEscapeDoubleQuoted(fn(original)) + `")`
	})
}

// URLs returns every url() reference found in declaration values in source
// order.
func (s *Stylesheet) URLs() []string {
	var urls []string
	collect := func(decls []Declaration) {
		for _, d := range decls {
			for _, sub := range urlRewritePattern.FindAllStringSubmatch(d.Value.Raw, -1) {
				u := sub[1]
				if u == "" {
					u = strings.TrimSpace(sub[2])
				}
				if u != "" {
					urls = append(urls, u)
				}
			}
		}
	}
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			collect(item.Rule.Declarations)
		case item.Block != nil:
			for _, r := range item.Block.Rules {
				collect(r.Declarations)
			}
		}
	}
	return urls
}
