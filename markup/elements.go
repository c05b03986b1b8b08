package markup

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/atom"

	"kryweb/cssgen"
	"kryweb/ir"
)

// Component data keys understood by markup. Remaining keys become data-*
// attributes.
const (
	keyLevel       = "level"
	keyOrdered     = "ordered"
	keySrc         = "src"
	keyAlt         = "alt"
	keyHref        = "href"
	keyTitle       = "title"
	keyTarget      = "target"
	keyPlaceholder = "placeholder"
	keyValue       = "value"
	keyLabel       = "label"
	keyChecked     = "checked"
	keyWidth       = "width"
	keyHeight      = "height"
	keyColspan     = "colspan"
	keyRowspan     = "rowspan"
	keyLanguage    = "language"
	keyOpen        = "open"
	keySelected    = "selected"
)

// consumed lists data keys turned into regular attributes per kind.
var consumed = map[ir.Kind][]string{
	ir.KindHeading:         {keyLevel},
	ir.KindList:            {keyOrdered},
	ir.KindImage:           {keySrc, keyAlt},
	ir.KindLink:            {keyHref, keyTitle, keyTarget},
	ir.KindInput:           {keyPlaceholder, keyValue},
	ir.KindCheckbox:        {keyLabel, keyChecked},
	ir.KindCanvas:          {keyWidth, keyHeight},
	ir.KindNativeCanvas:    {keyWidth, keyHeight},
	ir.KindTableCell:       {keyColspan, keyRowspan},
	ir.KindTableHeaderCell: {keyColspan, keyRowspan},
	ir.KindCodeBlock:       {keyLanguage},
	ir.KindModal:           {keyTitle, keyOpen},
	ir.KindTabGroup:        {keySelected},
}

// eventAttrs maps IR event types to inline handler attributes.
var eventAttrs = map[string]string{
	"click":       "onclick",
	"doubleclick": "ondblclick",
	"hover":       "onmouseover",
	"focus":       "onfocus",
	"blur":        "onblur",
	"change":      "onchange",
	"input":       "oninput",
	"submit":      "onsubmit",
	"keypress":    "onkeypress",
	"keydown":     "onkeydown",
	"keyup":       "onkeyup",
	"mouseenter":  "onmouseenter",
	"mouseleave":  "onmouseleave",
	"scroll":      "onscroll",
}

// helperClasses are classes fixed helper styles and runtime rely on.
var helperClasses = map[ir.Kind]string{
	ir.KindModal:      "kryon-modal",
	ir.KindTabGroup:   "kryon-tabs",
	ir.KindTabBar:     "kryon-tab-bar",
	ir.KindTabContent: "kryon-tab-content",
	ir.KindForEach:    "kryon-forEach",
}

// textKinds carry component text as element content.
var textKinds = map[ir.Kind]struct{}{
	ir.KindText: {}, ir.KindButton: {}, ir.KindHeading: {}, ir.KindParagraph: {},
	ir.KindBlockquote: {}, ir.KindListItem: {}, ir.KindLink: {}, ir.KindSpan: {},
	ir.KindStrong: {}, ir.KindEm: {}, ir.KindCodeInline: {}, ir.KindSmall: {},
	ir.KindMark: {}, ir.KindTableCell: {}, ir.KindTableHeaderCell: {}, ir.KindTab: {},
	ir.KindMarkdown: {}, ir.KindPlaceholder: {}, ir.KindCustom: {},
}

// tagFor returns HTML tag of component.
func tagFor(c *ir.Component) string {
	if t := cssgen.TargetFor(c); len(t.Tag) > 0 {
		return t.Tag
	}
	tag := cssgen.ElementFor(c.Kind).Tag
	switch c.Kind {
	case ir.KindHeading:
		if level, err := strconv.Atoi(c.DataValue(keyLevel)); err == nil && level >= 1 && level <= 6 {
			tag = fmt.Sprintf("h%d", level)
		}
	case ir.KindList:
		if ordered, _ := strconv.ParseBool(c.DataValue(keyOrdered)); ordered {
			tag = "ol"
		}
	}
	return tag
}

// idPrefix names elements wired to handlers.
func idPrefix(kind ir.Kind) string {
	switch kind {
	case ir.KindButton:
		return "btn"
	case ir.KindInput:
		return "input"
	case ir.KindCheckbox:
		return "checkbox"
	case ir.KindModal:
		return "modal"
	}
	return "elem"
}

// styled reports whether any rule may target component.
func styled(c *ir.Component) bool {
	if len(strings.TrimSpace(c.Class)) > 0 || cssgen.HasCustomStyle(c.Style) || cssgen.HasLayout(c) {
		return true
	}
	s := c.Style
	return s != nil && (len(s.Pseudo) > 0 || len(s.Breakpoints) > 0 || s.ContainerType != ir.ContainerNormal)
}

// handlerEvents returns events of component which have handler code.
func handlerEvents(c *ir.Component) []string {
	var events []string
	for _, ev := range c.Events {
		if ev.Handler == nil || len(strings.TrimSpace(ev.Handler.Code)) == 0 {
			continue
		}
		events = append(events, strings.ToLower(ev.Type))
	}
	return events
}

// dataAttr converts data key to attribute name: "habitIndex" becomes
// "data-habit-index" so dataset restores the original key.
func dataAttr(key string) (string, bool) {
	var sb strings.Builder
	sb.WriteString("data-")
	for i, r := range key {
		switch {
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r + ('a' - 'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-' && i > 0, r == '_':
			sb.WriteRune(r)
		default:
			return "", false
		}
	}
	if len(key) == 0 {
		return "", false
	}
	return sb.String(), true
}

// element renders component and its subtree under parent.
func (r *renderer) element(parent *etree.Element, c *ir.Component, index int) {
	if c == nil {
		return
	}
	tag := tagFor(c)
	if atom.Lookup([]byte(tag)) == 0 {
		r.log.Debug("Unknown tag, using div", zap.Uint32("id", c.ID), zap.String("tag", tag))
		tag = "div"
	}
	el := parent.CreateElement(tag)
	r.count++

	target := cssgen.TargetFor(c)
	id := target.ID
	events := handlerEvents(c)
	if len(id) == 0 && (len(events) > 0 || c.Kind == ir.KindModal) {
		id = fmt.Sprintf("%s-%d", idPrefix(c.Kind), c.ID)
	}
	if len(id) > 0 {
		el.CreateAttr("id", id)
	}

	var classes []string
	if helper, ok := helperClasses[c.Kind]; ok {
		classes = append(classes, helper)
	}
	if len(target.Class) > 0 && styled(c) {
		classes = append(classes, target.Class)
	}
	if len(classes) > 0 {
		el.CreateAttr("class", strings.Join(classes, " "))
	}

	if len(c.Tag) > 0 && len(target.Tag) == 0 {
		el.CreateAttr("data-tag", c.Tag)
	}
	r.handlers(el, c, events)
	r.kindAttrs(el, c, index)
	r.dataAttrs(el, c)
	r.inlineStyle(el, c)

	switch c.Kind {
	case ir.KindCodeBlock:
		code := el.CreateElement("code")
		if lang := c.DataValue(keyLanguage); len(lang) > 0 {
			code.CreateAttr("class", "language-"+lang)
		}
		code.SetText(c.Text)
	case ir.KindModal:
		r.modal(el, c, id)
		return
	default:
		if _, ok := textKinds[c.Kind]; ok && len(c.Text) > 0 {
			el.SetText(c.Text)
		}
	}
	r.children(el, c)
}

func (r *renderer) children(el *etree.Element, c *ir.Component) {
	for i, child := range c.Children {
		r.element(el, child, i)
	}
}

// handlers wires component events to the Lua dispatcher.
func (r *renderer) handlers(el *etree.Element, c *ir.Component, events []string) {
	if len(events) == 0 {
		return
	}
	el.CreateAttr("data-kryon-id", strconv.FormatUint(uint64(c.ID), 10))
	call := fmt.Sprintf("kryonCallHandler(%d, event)", c.ID)
	seen := make(map[string]struct{}, len(events))
	for _, ev := range events {
		attr, ok := eventAttrs[ev]
		if !ok {
			r.log.Debug("Unsupported event type, ignoring", zap.Uint32("id", c.ID), zap.String("event", ev))
			continue
		}
		if _, dup := seen[attr]; dup {
			continue
		}
		seen[attr] = struct{}{}
		el.CreateAttr(attr, call)
	}
}

func (r *renderer) kindAttrs(el *etree.Element, c *ir.Component, index int) {
	set := func(attr, key string) {
		if v := c.DataValue(key); len(v) > 0 {
			el.CreateAttr(attr, v)
		}
	}
	switch c.Kind {
	case ir.KindButton:
		if len(c.Text) > 0 {
			el.CreateAttr("data-text", c.Text)
		}
	case ir.KindInput:
		el.CreateAttr("type", "text")
		set("placeholder", keyPlaceholder)
		if v := c.DataValue(keyValue); len(v) > 0 {
			el.CreateAttr("value", v)
		} else if len(c.Text) > 0 {
			el.CreateAttr("value", c.Text)
		}
	case ir.KindCheckbox:
		el.CreateAttr("type", "checkbox")
		label := c.DataValue(keyLabel)
		if len(label) == 0 {
			label = c.Text
		}
		if len(label) > 0 {
			el.CreateAttr("data-label", label)
		}
		if checked, _ := strconv.ParseBool(c.DataValue(keyChecked)); checked {
			el.CreateAttr("checked", "checked")
		}
	case ir.KindImage:
		set("src", keySrc)
		alt := c.DataValue(keyAlt)
		if len(alt) == 0 {
			alt = c.Text
		}
		el.CreateAttr("alt", alt)
	case ir.KindLink:
		set("href", keyHref)
		set("title", keyTitle)
		set("target", keyTarget)
		if c.DataValue(keyTarget) == "_blank" {
			el.CreateAttr("rel", "noopener noreferrer")
		}
	case ir.KindCanvas, ir.KindNativeCanvas:
		set("width", keyWidth)
		set("height", keyHeight)
	case ir.KindTableCell, ir.KindTableHeaderCell:
		set("colspan", keyColspan)
		set("rowspan", keyRowspan)
	case ir.KindModal:
		if open, _ := strconv.ParseBool(c.DataValue(keyOpen)); open {
			el.CreateAttr("data-modal-open", "true")
		}
	case ir.KindTabGroup:
		el.CreateAttr("data-selected", strconv.Itoa(selectedTab(c)))
	case ir.KindTabBar:
		el.CreateAttr("role", "tablist")
	case ir.KindTab:
		el.CreateAttr("type", "button")
		el.CreateAttr("role", "tab")
		el.CreateAttr("aria-selected", strconv.FormatBool(index == selectedTab(tabGroupOf(c))))
	case ir.KindTabPanel:
		el.CreateAttr("role", "tabpanel")
		if index != selectedTab(tabGroupOf(c)) {
			el.CreateAttr("hidden", "hidden")
		}
	}
}

// tabGroupOf returns tab group owning tab or panel: grandparent of either.
func tabGroupOf(c *ir.Component) *ir.Component {
	if c.Parent == nil {
		return nil
	}
	return c.Parent.Parent
}

func selectedTab(group *ir.Component) int {
	if group == nil || group.Kind != ir.KindTabGroup {
		return 0
	}
	if n, err := strconv.Atoi(group.DataValue(keySelected)); err == nil && n >= 0 {
		return n
	}
	return 0
}

func (r *renderer) dataAttrs(el *etree.Element, c *ir.Component) {
	if len(c.Data) == 0 {
		return
	}
	skip := consumed[c.Kind]
	for _, key := range slices.Sorted(maps.Keys(c.Data)) {
		if slices.Contains(skip, key) {
			continue
		}
		attr, ok := dataAttr(key)
		if !ok {
			r.log.Debug("Invalid data key, ignoring", zap.Uint32("id", c.ID), zap.String("key", key))
			continue
		}
		if el.SelectAttr(attr) != nil {
			continue
		}
		el.CreateAttr(attr, c.Data[key])
	}
}

// inlineStyle carries explicit sizes, rules never contain them.
func (r *renderer) inlineStyle(el *etree.Element, c *ir.Component) {
	if c.Style == nil {
		return
	}
	var decls []string
	if !c.Style.Width.IsAuto() {
		decls = append(decls, "width: "+cssgen.FormatDimension(c.Style.Width))
	}
	if !c.Style.Height.IsAuto() {
		decls = append(decls, "height: "+cssgen.FormatDimension(c.Style.Height))
	}
	if len(decls) > 0 {
		el.CreateAttr("style", strings.Join(decls, "; ")+";")
	}
}

// modal renders dialog with optional title bar, children go to content area.
func (r *renderer) modal(el *etree.Element, c *ir.Component, id string) {
	if title := c.DataValue(keyTitle); len(title) > 0 {
		bar := el.CreateElement("div")
		bar.CreateAttr("class", "modal-title-bar")
		span := bar.CreateElement("span")
		span.CreateAttr("class", "modal-title")
		span.SetText(title)
		closeBtn := bar.CreateElement("button")
		closeBtn.CreateAttr("type", "button")
		closeBtn.CreateAttr("class", "modal-close")
		closeBtn.CreateAttr("onclick", fmt.Sprintf("kryon_close_modal('%s')", id))
		closeBtn.SetText("×")
	}
	content := el.CreateElement("div")
	content.CreateAttr("class", "modal-content")
	if len(c.Text) > 0 {
		content.SetText(c.Text)
	}
	r.children(content, c)
}
