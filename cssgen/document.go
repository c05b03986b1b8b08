package cssgen

import (
	_ "embed"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"kryweb/ir"
)

//go:embed helpers.css
var helperStyles string

const defaultBodyFont = "-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif"

// DocumentOptions control parts of the stylesheet surrounding component
// rules.
type DocumentOptions struct {
	Header       bool
	Background   string
	Text         string
	Border       string
	BodyFont     string
	HelperStyles bool
}

// DefaultDocumentOptions returns options producing complete stylesheet.
func DefaultDocumentOptions() DocumentOptions {
	return DocumentOptions{
		Header:       true,
		Background:   "#3d3d3d",
		Text:         "#ffffff",
		Border:       "#4c5057",
		BodyFont:     defaultBodyFont,
		HelperStyles: true,
	}
}

// Generator renders complete stylesheet document for an IR tree.
type Generator struct {
	engine *Engine
	opts   DocumentOptions
	log    *zap.Logger
}

func NewGenerator(engine *Engine, opts DocumentOptions) *Generator {
	return &Generator{engine: engine, opts: opts, log: engine.log}
}

// Generate produces stylesheet: header, custom properties, body rule,
// keyframes, component rules and helper styles. Every call is an independent
// pass.
func (g *Generator) Generate(root *ir.Component, manifest *ir.Manifest) (string, error) {
	if root == nil {
		return "", nil
	}
	vars := manifest.CSSVariables()
	p := g.engine.NewPass(vars)

	if g.opts.Header {
		p.w.write("/* Kryon Generated CSS */\n/* Auto-generated from IR format */\n\n")
	}
	// manifest variables and default palette share single :root block
	p.w.write(":root {\n")
	for _, v := range vars {
		p.w.prop(1, "--"+v.Name, v.Value)
	}
	p.w.prop(1, "--bg-color", g.opts.Background)
	p.w.prop(1, "--text-color", g.opts.Text)
	p.w.prop(1, "--border-color", g.opts.Border)
	p.w.write("}\n\n")

	p.body(root, g.opts.BodyFont)

	p.Keyframes(root)
	p.Rules(root)

	if g.opts.HelperStyles {
		p.w.write(helperStyles)
	}

	css, err := p.Result()
	if err != nil {
		return "", fmt.Errorf("unable to generate stylesheet: %w", err)
	}
	g.log.Debug("Stylesheet generated",
		zap.Int("size", len(css)),
		zap.Int("rules", p.reg.Len(RuleBase)),
		zap.Int("pseudo", p.reg.Len(RulePseudo)),
		zap.Int("queries", p.queries))
	return css, nil
}

// isBody reports root component which represents document body, its style
// is merged into body rule.
func isBody(c *ir.Component) bool {
	return strings.EqualFold(c.Tag, "body")
}

func (p *Pass) body(root *ir.Component, font string) {
	body := isBody(root)
	s := root.Style

	p.w.write("body {\n")
	p.w.prop(1, "margin", "0")
	p.w.prop(1, "padding", "0")
	if body && s != nil && len(s.Font.Family) > 0 {
		font = s.Font.Family
	}
	if len(font) == 0 {
		font = defaultBodyFont
	}
	p.w.prop(1, "font-family", font)

	color := "#ffffff"
	if s != nil {
		bg := s.Background
		switch {
		case bg.Kind == ir.ColorSolid && bg.RGBA.A > 0:
			p.w.prop(1, "background-color", rgba(bg.RGBA))
		case bg.Kind == ir.ColorVarRef || bg.VarName != "":
			p.w.prop(1, "background", p.palette.Color(bg))
		}
		if bg.Kind == ir.ColorSolid {
			color = contrastColor(bg.RGBA)
		}
		fc := s.Font.Color
		if body && ((fc.Kind == ir.ColorSolid && fc.RGBA.A > 0) || fc.Kind == ir.ColorVarRef || fc.VarName != "") {
			color = p.palette.Color(fc)
		}
	}
	p.w.prop(1, "color", color)
	if body && s != nil && s.Font.LineHeight > 0 {
		p.w.prop(1, "line-height", FormatNumber(s.Font.LineHeight, ""))
	}
	p.w.write("}\n\n")

	if body {
		// body style is already merged into the rule above
		p.reg.Add(RuleBase, selectorOf(root).key)
	}
}

// contrastColor picks text color readable on background by its luminance.
func contrastColor(c ir.RGBA) string {
	lum := (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
	if lum < 0.5 {
		return "#ffffff"
	}
	return "#000000"
}
