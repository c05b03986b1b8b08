package cssgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"kryweb/ir"
)

// Every formatter here returns newly allocated string, results may be kept
// and combined freely.

// FormatNumber renders value with unit: zero is always "0", integral values
// have no decimals, fractional ones at most two with trailing zeros removed.
func FormatNumber(v float64, unit string) string {
	if v == 0 {
		return "0"
	}
	if math.Floor(v) == v {
		return strconv.FormatFloat(v, 'f', 0, 64) + unit
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "0" || s == "-" || s == "-0" {
		return "0"
	}
	return s + unit
}

// Px formats value in pixels.
func Px(v float64) string { return FormatNumber(v, "px") }

// FormatDimension renders dimension, "auto" for unset one.
func FormatDimension(d ir.Dimension) string {
	switch d.Unit {
	case ir.UnitAuto:
		return "auto"
	case ir.UnitFr:
		return FormatNumber(d.Value, "fr")
	}
	return FormatNumber(d.Value, d.Unit.String())
}

func formatSide(v float64) string {
	if ir.IsAutoValue(v) {
		return "auto"
	}
	return Px(v)
}

// FormatSpacing renders shortest shorthand value for fully set spacing.
func FormatSpacing(s ir.Spacing) string {
	t, r, b, l := formatSide(s.Top), formatSide(s.Right), formatSide(s.Bottom), formatSide(s.Left)
	switch {
	case t == r && r == b && b == l:
		return t
	case t == b && l == r:
		return t + " " + r
	case l == r:
		return t + " " + r + " " + b
	}
	return t + " " + r + " " + b + " " + l
}

// rgba renders color channels, alpha as fraction with two decimals.
func rgba(c ir.RGBA) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", c.R, c.G, c.B, float64(c.A)/255)
}

func hex(c ir.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette maps colors to custom properties declared in :root, so that values
// matching a variable are emitted as var() references.
type Palette []ir.CSSVariable

func (p Palette) lookup(c ir.RGBA) string {
	if len(p) == 0 {
		return ""
	}
	candidates := []string{rgba(c)}
	if c.A == 255 {
		candidates = append(candidates, hex(c))
	}
	for _, v := range p {
		for _, cand := range candidates {
			if strings.EqualFold(strings.TrimSpace(v.Value), cand) {
				return "var(--" + v.Name + ")"
			}
		}
	}
	return ""
}

// Color renders paint value.
func (p Palette) Color(c ir.Color) string {
	if c.VarName != "" {
		return c.VarName
	}
	switch c.Kind {
	case ir.ColorSolid:
		if v := p.lookup(c.RGBA); v != "" {
			return v
		}
		return rgba(c.RGBA)
	case ir.ColorVarRef:
		return fmt.Sprintf("var(--color-%d)", c.VarID)
	case ir.ColorLinearGradient, ir.ColorRadialGradient, ir.ColorConicGradient:
		return gradient(c)
	}
	return "transparent"
}

func gradient(c ir.Color) string {
	g := c.Gradient
	if g == nil || len(g.Stops) < 2 {
		return "transparent"
	}
	var b strings.Builder
	switch c.Kind {
	case ir.ColorLinearGradient:
		fmt.Fprintf(&b, "linear-gradient(%.0fdeg", g.Angle)
	case ir.ColorRadialGradient:
		fmt.Fprintf(&b, "radial-gradient(circle at %.1f%% %.1f%%", g.CenterX*100, g.CenterY*100)
	case ir.ColorConicGradient:
		fmt.Fprintf(&b, "conic-gradient(from 0deg at %.1f%% %.1f%%", g.CenterX*100, g.CenterY*100)
	}
	for _, s := range g.Stops {
		fmt.Fprintf(&b, ", %s %.1f%%", rgba(s.Color), s.Position*100)
	}
	b.WriteByte(')')
	return b.String()
}

// Alignment values for flex and grid properties.
func alignment(a ir.Alignment) string {
	switch a {
	case ir.AlignStart:
		return "flex-start"
	case ir.AlignEnd:
		return "flex-end"
	}
	return a.String()
}

var easingCurves = map[ir.Easing]string{
	ir.EaseLinear:     "linear",
	ir.EaseIn:         "ease-in",
	ir.EaseOut:        "ease-out",
	ir.EaseInOut:      "ease-in-out",
	ir.EaseInQuad:     "cubic-bezier(0.55, 0.085, 0.68, 0.53)",
	ir.EaseOutQuad:    "cubic-bezier(0.25, 0.46, 0.45, 0.94)",
	ir.EaseInOutQuad:  "cubic-bezier(0.455, 0.03, 0.515, 0.955)",
	ir.EaseInCubic:    "cubic-bezier(0.55, 0.055, 0.675, 0.19)",
	ir.EaseOutCubic:   "cubic-bezier(0.215, 0.61, 0.355, 1)",
	ir.EaseInOutCubic: "cubic-bezier(0.645, 0.045, 0.355, 1)",
	ir.EaseInBounce:   "cubic-bezier(0.6, -0.28, 0.735, 0.045)",
	ir.EaseOutBounce:  "cubic-bezier(0.68, -0.55, 0.265, 1.55)",
}

func easing(e ir.Easing) string {
	if s, ok := easingCurves[e]; ok {
		return s
	}
	return "ease"
}

// transitionProperty returns CSS property animated by transition, empty when
// there is none.
func transitionProperty(p ir.AnimProperty) string {
	switch p {
	case ir.AnimOpacity:
		return "opacity"
	case ir.AnimTranslateX, ir.AnimTranslateY, ir.AnimScaleX, ir.AnimScaleY, ir.AnimRotate:
		return "transform"
	case ir.AnimWidth:
		return "width"
	case ir.AnimHeight:
		return "height"
	case ir.AnimBackgroundColor:
		return "background-color"
	}
	return ""
}

func track(t ir.Track) string {
	switch t.Type {
	case ir.TrackPx:
		return fmt.Sprintf("%.0fpx", t.Value)
	case ir.TrackPercent:
		return fmt.Sprintf("%.0f%%", t.Value)
	case ir.TrackFr:
		return fmt.Sprintf("%.0ffr", t.Value)
	case ir.TrackMinContent:
		return "min-content"
	case ir.TrackMaxContent:
		return "max-content"
	}
	return "auto"
}

func transformValue(t ir.Transform, translate, rotate string) string {
	var parts []string
	if t.HasTranslate() {
		parts = append(parts, fmt.Sprintf("translate("+translate+"px, "+translate+"px)", t.TranslateX, t.TranslateY))
	}
	if t.HasScale() {
		parts = append(parts, fmt.Sprintf("scale(%.2f, %.2f)", t.ScaleX, t.ScaleY))
	}
	if t.HasRotate() {
		parts = append(parts, fmt.Sprintf("rotate("+rotate+"deg)", t.Rotate))
	}
	return strings.Join(parts, " ")
}
