package cssgen

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"kryweb/ir"
)

// baseRule writes the main rule of a component. Rule block without
// declarations is dropped.
func (p *Pass) baseRule(c *ir.Component, sel selector) {
	if sel.skipped() || p.reg.Has(RuleBase, sel.key) {
		return
	}
	if !HasCustomStyle(c.Style) && !HasLayout(c) {
		return
	}
	p.reg.Add(RuleBase, sel.key)

	start := p.w.mark()
	p.w.write(sel.text + " {\n")
	body := p.w.mark()

	if s := c.Style; s != nil {
		p.background(s)
		p.border(s)
		p.spacing("margin", s.Margin)
		p.spacing("padding", s.Padding)
		p.typography(s)
		p.textEffects(s)
		p.effects(s)
		p.placement(s)
		p.motion(s)
	}
	if c.Layout != nil {
		p.layout(c)
	}

	if p.w.mark() == body {
		p.w.rollback(start)
		p.log.Debug("Empty rule dropped", zap.String("selector", sel.text))
		return
	}
	p.w.write("}\n\n")
}

func (p *Pass) background(s *ir.Style) {
	bg := s.Background
	switch {
	case len(s.BackgroundImage) > 0:
		p.w.prop(1, "background", s.BackgroundImage)
	case bg.VarName != "":
		p.w.prop(1, "background", bg.VarName)
	case bg.Kind == ir.ColorSolid:
		if bg.RGBA.A > 0 {
			p.w.prop(1, "background-color", p.palette.Color(bg))
		}
	case bg.Kind.IsGradient(), bg.Kind == ir.ColorVarRef:
		p.w.prop(1, "background", p.palette.Color(bg))
	}

	switch s.BackgroundClip {
	case ir.ClipText:
		p.w.prop(1, "-webkit-background-clip", "text")
		p.w.prop(1, "background-clip", "text")
		fill := s.TextFillColor
		switch {
		case fill.IsTransparent():
			p.w.prop(1, "-webkit-text-fill-color", "transparent")
			p.w.prop(1, "color", "transparent")
		case fill.Kind == ir.ColorSolid || fill.VarName != "":
			p.w.prop(1, "-webkit-text-fill-color", p.palette.Color(fill))
		}
	case ir.ClipContentBox, ir.ClipPaddingBox:
		p.w.prop(1, "background-clip", s.BackgroundClip.String())
	}
}

func (p *Pass) border(s *ir.Style) {
	b := s.Border
	color := p.palette.Color(b.Color)
	if b.Width > 0 {
		p.w.prop(1, "border", Px(b.Width)+" solid "+color)
	} else {
		for _, side := range []struct {
			name  string
			width float64
		}{
			{"border-top", b.Top}, {"border-right", b.Right}, {"border-bottom", b.Bottom}, {"border-left", b.Left},
		} {
			if side.width > 0 {
				p.w.prop(1, side.name, Px(side.width)+" solid "+color)
			}
		}
	}
	if b.Radius > 0 {
		p.w.prop(1, "border-radius", fmt.Sprintf("%dpx", b.Radius))
	}
}

// spacing writes margin or padding: shorthand when all sides are set,
// longhands for the set sides otherwise.
func (p *Pass) spacing(name string, s ir.Spacing) {
	if s.Set == 0 {
		return
	}
	if s.Set == ir.AllSides {
		p.w.prop(1, name, FormatSpacing(s))
		return
	}
	for _, side := range []struct {
		suffix string
		flag   ir.Sides
		value  float64
	}{
		{"-top", ir.SideTop, s.Top}, {"-right", ir.SideRight, s.Right},
		{"-bottom", ir.SideBottom, s.Bottom}, {"-left", ir.SideLeft, s.Left},
	} {
		if s.Set&side.flag != 0 {
			p.w.prop(1, name+side.suffix, formatSide(side.value))
		}
	}
}

func (p *Pass) typography(s *ir.Style) {
	f := s.Font
	if f.Size > 0 {
		p.w.prop(1, "font-size", Px(f.Size))
	}
	if len(f.Family) > 0 {
		p.w.prop(1, "font-family", f.Family)
	}
	if f.Color.VarName != "" || f.Color.Kind == ir.ColorVarRef || (f.Color.Kind == ir.ColorSolid && f.Color.RGBA.A > 0) {
		p.w.prop(1, "color", p.palette.Color(f.Color))
	}
	switch {
	case f.Weight > 0 && f.Weight != 400:
		p.w.prop(1, "font-weight", fmt.Sprintf("%d", f.Weight))
	case f.Bold:
		p.w.prop(1, "font-weight", "bold")
	}
	if f.Italic {
		p.w.prop(1, "font-style", "italic")
	}
	if f.LineHeight > 0 && (f.LineHeight < 1.49 || f.LineHeight > 1.51) {
		p.w.prop(1, "line-height", FormatNumber(f.LineHeight, ""))
	}
	if f.LetterSpacing != 0 {
		p.w.prop(1, "letter-spacing", Px(f.LetterSpacing))
	}
	if f.WordSpacing != 0 {
		p.w.prop(1, "word-spacing", Px(f.WordSpacing))
	}
	if f.Align != ir.AlignLeft {
		p.w.prop(1, "text-align", f.Align.String())
	}
	var deco []string
	if f.Underline {
		deco = append(deco, "underline")
	}
	if f.Overline {
		deco = append(deco, "overline")
	}
	if f.LineThrough {
		deco = append(deco, "line-through")
	}
	if len(deco) > 0 {
		p.w.prop(1, "text-decoration", strings.Join(deco, " "))
	}
}

func (p *Pass) textEffects(s *ir.Style) {
	if sh := s.TextShadow; sh.Enabled {
		p.w.prop(1, "text-shadow", fmt.Sprintf("%.1fpx %.1fpx %.1fpx %s", sh.OffsetX, sh.OffsetY, sh.Blur, p.palette.Color(sh.Color)))
	}
	switch s.TextOverflow {
	case ir.TextOverflowEllipsis:
		p.w.prop(1, "white-space", "nowrap")
		p.w.prop(1, "overflow", "hidden")
		p.w.prop(1, "text-overflow", "ellipsis")
	case ir.TextOverflowClip:
		p.w.prop(1, "overflow", "hidden")
	}
	if s.FadeLength <= 0 {
		return
	}
	var mask string
	switch s.Fade {
	case ir.FadeHorizontal:
		mask = fmt.Sprintf("linear-gradient(to right, transparent, black %.1fpx, black calc(100%% - %.1fpx), transparent)", s.FadeLength, s.FadeLength)
	case ir.FadeVertical:
		mask = fmt.Sprintf("linear-gradient(to bottom, transparent, black %.1fpx, black calc(100%% - %.1fpx), transparent)", s.FadeLength, s.FadeLength)
	case ir.FadeRadial:
		mask = fmt.Sprintf("radial-gradient(circle, black calc(100%% - %.1fpx), transparent)", s.FadeLength)
	default:
		return
	}
	p.w.prop(1, "-webkit-mask-image", mask)
	p.w.prop(1, "mask-image", mask)
}

func (p *Pass) effects(s *ir.Style) {
	if sh := s.BoxShadow; sh.Enabled {
		inset := ""
		if sh.Inset {
			inset = "inset "
		}
		p.w.prop(1, "box-shadow", fmt.Sprintf("%s%.1fpx %.1fpx %.1fpx %.1fpx %s",
			inset, sh.OffsetX, sh.OffsetY, sh.Blur, sh.Spread, p.palette.Color(sh.Color)))
	}
	if len(s.Filters) > 0 {
		parts := make([]string, 0, len(s.Filters))
		for _, f := range s.Filters {
			switch f.Type {
			case ir.FilterBlur:
				parts = append(parts, fmt.Sprintf("blur(%.1fpx)", f.Value))
			case ir.FilterHueRotate:
				parts = append(parts, fmt.Sprintf("hue-rotate(%.0fdeg)", f.Value))
			default:
				parts = append(parts, fmt.Sprintf("%s(%.2f)", f.Type, f.Value))
			}
		}
		p.w.prop(1, "filter", strings.Join(parts, " "))
	}
	if !s.Transform.IsIdentity() {
		p.w.prop(1, "transform", transformValue(s.Transform, "%.2f", "%.2f"))
	}
	if s.Opacity < 1 {
		p.w.prop(1, "opacity", fmt.Sprintf("%.2f", s.Opacity))
	}
	if !s.Visible {
		p.w.prop(1, "display", "none")
	}
}

func (p *Pass) placement(s *ir.Style) {
	switch s.Position {
	case ir.PositionAbsolute, ir.PositionFixed:
		p.w.prop(1, "position", s.Position.String())
		p.w.prop(1, "left", fmt.Sprintf("%.1fpx", s.Left))
		p.w.prop(1, "top", fmt.Sprintf("%.1fpx", s.Top))
	}
	if s.ZIndex > 0 {
		p.w.prop(1, "z-index", fmt.Sprintf("%d", s.ZIndex))
	}

	g := s.GridItem
	// grid lines are 1-based
	if g.RowStart >= 0 {
		p.w.prop(1, "grid-row", gridLine(g.RowStart, g.RowEnd))
	}
	if g.ColumnStart >= 0 {
		p.w.prop(1, "grid-column", gridLine(g.ColumnStart, g.ColumnEnd))
	}
	if g.JustifySelf != ir.AlignStart {
		p.w.prop(1, "justify-self", alignment(g.JustifySelf))
	}
	if g.AlignSelf != ir.AlignStart {
		p.w.prop(1, "align-self", alignment(g.AlignSelf))
	}

	if s.OverflowX != ir.OverflowVisible || s.OverflowY != ir.OverflowVisible {
		if s.OverflowX == s.OverflowY {
			p.w.prop(1, "overflow", s.OverflowX.String())
		} else {
			p.w.prop(1, "overflow-x", s.OverflowX.String())
			p.w.prop(1, "overflow-y", s.OverflowY.String())
		}
	}
}

func gridLine(start, end int) string {
	if end >= 0 {
		return fmt.Sprintf("%d / %d", start+1, end+1)
	}
	return fmt.Sprintf("%d", start+1)
}

func (p *Pass) motion(s *ir.Style) {
	var anims []string
	for _, a := range s.Animations {
		if a == nil || len(a.Name) == 0 {
			continue
		}
		v := fmt.Sprintf("%s %.2fs %s %.2fs", a.Name, a.Duration, easing(a.Easing), a.Delay)
		switch {
		case a.Iterations < 0:
			v += " infinite"
		case a.Iterations != 1:
			v += fmt.Sprintf(" %d", a.Iterations)
		}
		if a.Alternate {
			v += " alternate"
		}
		anims = append(anims, v)
	}
	if len(anims) > 0 {
		p.w.prop(1, "animation", strings.Join(anims, ", "))
	}

	var trans []string
	for _, t := range s.Transitions {
		prop := transitionProperty(t.Property)
		if len(prop) == 0 {
			continue
		}
		trans = append(trans, fmt.Sprintf("%s %.2fs %s %.2fs", prop, t.Duration, easing(t.Easing), t.Delay))
	}
	if len(trans) > 0 {
		p.w.prop(1, "transition", strings.Join(trans, ", "))
	}
}
