// Package markup builds HTML skeleton of a Kryon application: element tree
// mapped from IR components, stylesheet and script references, and the
// bridge wiring DOM events to generated Lua handlers.
//
// Component data drives kind specific attributes: "level" for headings,
// "ordered" for lists, "src"/"alt" for images, "href"/"title"/"target" for
// links, "placeholder"/"value" for inputs, "label"/"checked" for checkboxes,
// "width"/"height" for canvases, "colspan"/"rowspan" for cells, "language"
// for code blocks, "title"/"open" for modals and "selected" for tab groups.
// Any other key is written as data-* attribute.
package markup

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kryweb/ir"
	"kryweb/misc"
)

//go:embed runtime.js
var runtime []byte

// Runtime returns browser side runtime script.
func Runtime() []byte {
	return runtime
}

const DefaultTitle = "Kryon Web Application"

// Options of a single page.
type Options struct {
	Title string
	Lang  string
	// Stylesheet is href of external stylesheet, ignored when CSS is set.
	Stylesheet string
	// CSS is embedded into <style> element.
	CSS string
	// Runtime is href of runtime script, empty omits it.
	Runtime string
	// LuaVM is href of the browser Lua VM, empty disables Lua scripts.
	LuaVM string
	// Script is href of application Lua script.
	Script string
	// Fragment is complete <script type="application/lua"> element written
	// verbatim, it wins over Script.
	Fragment string
	// BuildID is stamped into document head.
	BuildID string
}

// DefaultOptions returns options for separately written artifacts.
func DefaultOptions() Options {
	return Options{
		Title:      DefaultTitle,
		Lang:       "en",
		Stylesheet: "kryon.css",
		Runtime:    "kryon.js",
		LuaVM:      "fengari-web.min.js",
		Script:     "app.lua",
	}
}

var ErrRawContent = errors.New("raw content would terminate its element")

// voidElements never have end tag.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "source": {}, "track": {}, "wbr": {},
}

type renderer struct {
	log   *zap.Logger
	opts  Options
	raw   map[string]string
	count int
}

// Render produces HTML document for component tree.
func Render(log *zap.Logger, root *ir.Component, opts Options) ([]byte, error) {
	r := &renderer{
		log:  log.Named("markup"),
		opts: opts,
		raw:  make(map[string]string),
	}

	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	lang := opts.Lang
	if len(lang) == 0 {
		lang = "en"
	}
	html.CreateAttr("lang", lang)

	if err := r.head(html.CreateElement("head")); err != nil {
		return nil, err
	}
	body := html.CreateElement("body")
	r.body(body, root)
	if err := r.scripts(body); err != nil {
		return nil, err
	}

	closeEmpty(&doc.Element)
	doc.Indent(2)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("unable to write HTML document: %w", err)
	}
	out := buf.Bytes()
	for marker, content := range r.raw {
		out = bytes.Replace(out, []byte(marker), []byte(content), 1)
	}
	r.log.Debug("Page rendered", zap.Int("elements", r.count), zap.Int("bytes", len(out)))
	return out, nil
}

func (r *renderer) head(head *etree.Element) error {
	meta := head.CreateElement("meta")
	meta.CreateAttr("charset", "UTF-8")
	meta = head.CreateElement("meta")
	meta.CreateAttr("name", "viewport")
	meta.CreateAttr("content", "width=device-width, initial-scale=1.0")
	meta = head.CreateElement("meta")
	meta.CreateAttr("name", "generator")
	meta.CreateAttr("content", misc.GetAppName()+" "+misc.GetVersion())
	if len(r.opts.BuildID) > 0 {
		meta = head.CreateElement("meta")
		meta.CreateAttr("name", "kryon-build")
		meta.CreateAttr("content", r.opts.BuildID)
	}

	title := r.opts.Title
	if len(strings.TrimSpace(title)) == 0 {
		title = DefaultTitle
	}
	head.CreateElement("title").SetText(title)

	switch {
	case len(r.opts.CSS) > 0:
		if err := r.rawText(head.CreateElement("style"), r.opts.CSS, "</style"); err != nil {
			return err
		}
	case len(r.opts.Stylesheet) > 0:
		link := head.CreateElement("link")
		link.CreateAttr("rel", "stylesheet")
		link.CreateAttr("href", r.opts.Stylesheet)
	}
	if len(r.opts.Runtime) > 0 {
		head.CreateElement("script").CreateAttr("src", r.opts.Runtime)
	}
	return nil
}

// isBody reports component representing document body itself.
func isBody(c *ir.Component) bool {
	return c != nil && strings.EqualFold(c.Tag, "body")
}

// body renders tree. When root (or its first child) stands for the body, its
// children are placed directly into <body>.
func (r *renderer) body(body *etree.Element, root *ir.Component) {
	if root == nil {
		return
	}
	switch {
	case isBody(root):
		r.bodyAttrs(body, root)
		r.children(body, root)
	case len(root.Children) > 0 && isBody(root.Children[0]):
		r.bodyAttrs(body, root.Children[0])
		r.children(body, root.Children[0])
	default:
		r.element(body, root, 0)
	}
}

func (r *renderer) bodyAttrs(body *etree.Element, c *ir.Component) {
	if events := handlerEvents(c); len(events) > 0 {
		r.handlers(body, c, events)
	}
}

func (r *renderer) scripts(body *etree.Element) error {
	if len(r.opts.LuaVM) == 0 {
		return nil
	}
	body.CreateElement("script").CreateAttr("src", r.opts.LuaVM)
	switch {
	case len(r.opts.Fragment) > 0:
		frag := strings.TrimSpace(r.opts.Fragment)
		lower := strings.ToLower(frag)
		if !strings.HasPrefix(lower, "<script") || !strings.HasSuffix(lower, "</script>") ||
			strings.Count(lower, "</script") != 1 {
			return fmt.Errorf("lua fragment: %w", ErrRawContent)
		}
		r.placeholder(body, frag)
	case len(r.opts.Script) > 0:
		s := body.CreateElement("script")
		s.CreateAttr("type", "application/lua")
		s.CreateAttr("src", r.opts.Script)
	}
	return nil
}

// rawText sets element content which must not be escaped.
func (r *renderer) rawText(el *etree.Element, content, end string) error {
	if strings.Contains(strings.ToLower(content), end) {
		return fmt.Errorf("%s content: %w", el.Tag, ErrRawContent)
	}
	r.placeholder(el, "\n"+strings.TrimRight(content, "\n")+"\n")
	return nil
}

// placeholder adds text marker replaced with content after serialization.
func (r *renderer) placeholder(el *etree.Element, content string) {
	marker := fmt.Sprintf("@@kryweb-raw-%d@@", len(r.raw))
	r.raw[marker] = content
	el.CreateText(marker)
}

// closeEmpty forces end tag for empty non-void elements.
func closeEmpty(el *etree.Element) {
	for _, child := range el.ChildElements() {
		if len(child.Child) == 0 {
			if _, void := voidElements[child.Tag]; !void {
				child.CreateText("")
			}
			continue
		}
		closeEmpty(child)
	}
}

// BuildID derives stable identifier of generated artifacts.
func BuildID(artifacts ...[]byte) string {
	var buf bytes.Buffer
	for _, a := range artifacts {
		buf.Write(a)
		buf.WriteByte(0)
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, buf.Bytes()).String()
}
