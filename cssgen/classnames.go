package cssgen

import (
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/net/html/atom"

	"kryweb/ir"
)

// Element describes how component kind is presented on the web.
type Element struct {
	Class       string
	Tag         string
	SelfClosing bool
}

var elements = map[ir.Kind]Element{
	ir.KindContainer:       {Class: "container", Tag: "div"},
	ir.KindRow:             {Class: "row", Tag: "div"},
	ir.KindColumn:          {Class: "column", Tag: "div"},
	ir.KindCenter:          {Class: "center", Tag: "div"},
	ir.KindDropdown:        {Class: "dropdown", Tag: "div"},
	ir.KindTabGroup:        {Class: "tab-group", Tag: "div"},
	ir.KindTabBar:          {Class: "tab-bar", Tag: "div"},
	ir.KindTabContent:      {Class: "tab-content", Tag: "div"},
	ir.KindTabPanel:        {Class: "tab-panel", Tag: "div"},
	ir.KindForEach:         {Class: "for-each", Tag: "div"},
	ir.KindTable:           {Class: "table", Tag: "table"},
	ir.KindTableHead:       {Class: "table-head", Tag: "thead"},
	ir.KindTableBody:       {Class: "table-body", Tag: "tbody"},
	ir.KindTableFoot:       {Class: "table-foot", Tag: "tfoot"},
	ir.KindTableRow:        {Class: "table-row", Tag: "tr"},
	ir.KindTableCell:       {Class: "table-cell", Tag: "td"},
	ir.KindTableHeaderCell: {Class: "table-header-cell", Tag: "th"},
	ir.KindText:            {Class: "text", Tag: "span"},
	ir.KindHeading:         {Class: "heading", Tag: "h1"},
	ir.KindParagraph:       {Class: "paragraph", Tag: "p"},
	ir.KindBlockquote:      {Class: "blockquote", Tag: "blockquote"},
	ir.KindCodeBlock:       {Class: "code-block", Tag: "pre"},
	ir.KindHorizontalRule:  {Class: "hr", Tag: "hr", SelfClosing: true},
	ir.KindList:            {Class: "list", Tag: "ul"},
	ir.KindListItem:        {Class: "list-item", Tag: "li"},
	ir.KindLink:            {Class: "link", Tag: "a"},
	ir.KindSpan:            {Class: "span", Tag: "span"},
	ir.KindStrong:          {Class: "strong", Tag: "strong"},
	ir.KindEm:              {Class: "em", Tag: "em"},
	ir.KindCodeInline:      {Class: "code", Tag: "code"},
	ir.KindSmall:           {Class: "small", Tag: "small"},
	ir.KindMark:            {Class: "mark", Tag: "mark"},
	ir.KindButton:          {Class: "button", Tag: "button"},
	ir.KindInput:           {Class: "input", Tag: "input", SelfClosing: true},
	ir.KindCheckbox:        {Class: "checkbox", Tag: "input", SelfClosing: true},
	ir.KindImage:           {Class: "image", Tag: "img", SelfClosing: true},
	ir.KindCanvas:          {Class: "canvas", Tag: "canvas"},
	ir.KindNativeCanvas:    {Class: "native-canvas", Tag: "canvas"},
	ir.KindModal:           {Class: "modal", Tag: "dialog"},
	ir.KindMarkdown:        {Class: "markdown", Tag: "div"},
	ir.KindSprite:          {Class: "sprite", Tag: "div"},
	ir.KindTab:             {Class: "tab", Tag: "button"},
	ir.KindStaticBlock:     {Class: "static-block", Tag: "div"},
	ir.KindForLoop:         {Class: "for-loop", Tag: "div"},
	ir.KindVarDecl:         {Class: "var-decl", Tag: "div"},
	ir.KindPlaceholder:     {Class: "placeholder", Tag: "div"},
	ir.KindCustom:          {Class: "custom", Tag: "div"},
}

// ElementFor returns presentation of component kind. Unknown kinds are
// generic elements.
func ElementFor(kind ir.Kind) Element {
	if e, ok := elements[kind]; ok {
		return e
	}
	return Element{Class: "element", Tag: "div"}
}

// NaturalClassName returns class name component is styled by: explicit class,
// explicit tag, semantic default for its kind or "element".
func NaturalClassName(c *ir.Component) string {
	if c == nil {
		return "element"
	}
	if name := SanitizeClasses(c.Class); len(name) > 0 {
		return name
	}
	if name := SanitizeClasses(c.Tag); len(name) > 0 {
		return name
	}
	return ElementFor(c.Kind).Class
}

func validClassRune(r rune) bool {
	return r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// SanitizeClasses cleans space separated list of class names. Names which
// are already safe are kept as is, others are transliterated and slugified.
func SanitizeClasses(classes string) string {
	fields := strings.Fields(classes)
	out := fields[:0]
	for _, f := range fields {
		if strings.IndexFunc(f, func(r rune) bool { return !validClassRune(r) }) >= 0 {
			f = slug.Make(f)
		}
		if len(f) > 0 {
			out = append(out, f)
		}
	}
	return strings.Join(out, " ")
}

// ClassesToSelector converts space separated class list to compound selector:
// "btn primary" becomes ".btn.primary".
func ClassesToSelector(classes string) string {
	fields := strings.Fields(classes)
	if len(fields) == 0 {
		return ""
	}
	return "." + strings.Join(fields, ".")
}

// contentTags are styled by document defaults, element rules are never
// generated for them.
var contentTags = map[string]struct{}{
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"p": {}, "span": {}, "code": {}, "li": {}, "ul": {}, "ol": {}, "div": {},
}

// elementTag returns tag when component is addressed by element selector of
// a known HTML element.
func elementTag(c *ir.Component) (string, bool) {
	if c.SelectorType != ir.SelectorElement || len(c.Tag) == 0 {
		return "", false
	}
	tag := strings.ToLower(c.Tag)
	if atom.Lookup([]byte(tag)) == 0 {
		return "", false
	}
	return tag, true
}

// selector is a rule target together with its dedup key.
type selector struct {
	key     string
	text    string
	element bool
}

func selectorOf(c *ir.Component) selector {
	if tag, ok := elementTag(c); ok {
		return selector{key: tag, text: tag, element: true}
	}
	name := NaturalClassName(c)
	if c.SelectorType == ir.SelectorID {
		id := strings.Join(strings.Fields(name), "-")
		return selector{key: "#" + id, text: "#" + id}
	}
	return selector{key: name, text: ClassesToSelector(name)}
}

// SelectorFor returns selector rules for the component are written with.
func SelectorFor(c *ir.Component) string {
	if c == nil {
		return ""
	}
	return selectorOf(c).text
}

// skipped reports element selectors for content tags.
func (s selector) skipped() bool {
	if !s.element {
		return false
	}
	_, ok := contentTags[s.text]
	return ok
}

// Target tells markup how rules of a component reach it. Exactly one field is
// set: element tag, id or class list.
type Target struct {
	Tag   string
	ID    string
	Class string
}

// TargetFor returns addressing matching SelectorFor.
func TargetFor(c *ir.Component) Target {
	if c == nil {
		return Target{}
	}
	s := selectorOf(c)
	switch {
	case s.element:
		return Target{Tag: s.text}
	case strings.HasPrefix(s.text, "#"):
		return Target{ID: s.text[1:]}
	}
	return Target{Class: NaturalClassName(c)}
}
