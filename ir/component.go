// Package ir defines component tree produced by Kryon compiler front ends and
// consumed by web code generation.
package ir

// Kind is a component type.
type Kind int

const (
	KindContainer Kind = iota
	KindRow
	KindColumn
	KindCenter
	KindText
	KindButton
	KindInput
	KindCheckbox
	KindDropdown
	KindImage
	KindCanvas
	KindNativeCanvas
	KindHeading
	KindParagraph
	KindBlockquote
	KindCodeBlock
	KindHorizontalRule
	KindList
	KindListItem
	KindLink
	KindSpan
	KindStrong
	KindEm
	KindCodeInline
	KindSmall
	KindMark
	KindTable
	KindTableHead
	KindTableBody
	KindTableFoot
	KindTableRow
	KindTableCell
	KindTableHeaderCell
	KindModal
	KindTabGroup
	KindTabBar
	KindTab
	KindTabContent
	KindTabPanel
	KindForEach
	KindMarkdown
	KindSprite
	KindStaticBlock
	KindForLoop
	KindVarDecl
	KindPlaceholder
	KindCustom
)

var kindNames = []string{
	"Container", "Row", "Column", "Center", "Text", "Button", "Input", "Checkbox", "Dropdown",
	"Image", "Canvas", "NativeCanvas", "Heading", "Paragraph", "Blockquote", "CodeBlock",
	"HorizontalRule", "List", "ListItem", "Link", "Span", "Strong", "Em", "CodeInline", "Small",
	"Mark", "Table", "TableHead", "TableBody", "TableFoot", "TableRow", "TableCell",
	"TableHeaderCell", "Modal", "TabGroup", "TabBar", "Tab", "TabContent", "TabPanel", "ForEach",
	"Markdown", "Sprite", "StaticBlock", "ForLoop", "VarDecl", "Placeholder", "Custom",
}

func (k Kind) String() string { return enumName(kindNames, int(k)) }

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := parseEnum("component type", kindNames, text)
	*k = Kind(v)
	return err
}

// HandlerSource is handler code extracted by an upstream phase for a single
// component event.
type HandlerSource struct {
	Language     string   `json:"language,omitempty"`
	Code         string   `json:"code"`
	UsesClosures bool     `json:"usesClosures,omitempty"`
	ClosureVars  []string `json:"closureVars,omitempty"`
}

// Event is a registration of a handler for an event type ("click", "change", ...).
type Event struct {
	Type    string         `json:"type"`
	Handler *HandlerSource `json:"handler,omitempty"`
}

// Component is a node of the IR tree. Parent links are established by the
// loader, tree is never modified afterwards.
type Component struct {
	ID           uint32            `json:"id"`
	Kind         Kind              `json:"type"`
	SelectorType SelectorType      `json:"selectorType,omitempty"`
	Tag          string            `json:"tag,omitempty"`
	Class        string            `json:"cssClass,omitempty"`
	Text         string            `json:"text,omitempty"`
	Style        *Style            `json:"style,omitempty"`
	Layout       *Layout           `json:"layout,omitempty"`
	Events       []Event           `json:"events,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
	Children     []*Component      `json:"children,omitempty"`

	Parent *Component `json:"-"`
}

// Walk visits component and all its descendants in document order. Returning
// false from fn prunes the subtree.
func (c *Component) Walk(fn func(c *Component, depth int) bool) {
	c.walk(fn, 0)
}

func (c *Component) walk(fn func(c *Component, depth int) bool, depth int) {
	if c == nil || !fn(c, depth) {
		return
	}
	for _, child := range c.Children {
		child.walk(fn, depth+1)
	}
}

// Count returns number of components in the tree.
func (c *Component) Count() int {
	n := 0
	c.Walk(func(*Component, int) bool {
		n++
		return true
	})
	return n
}

// DataValue returns custom data value or empty string.
func (c *Component) DataValue(key string) string {
	if c == nil || c.Data == nil {
		return ""
	}
	return c.Data[key]
}

// linkParents sets parent pointers for the whole tree.
func (c *Component) linkParents() {
	for _, child := range c.Children {
		if child == nil {
			continue
		}
		child.Parent = c
		child.linkParents()
	}
}
