package cssgen

import (
	"fmt"
	"strings"

	"kryweb/ir"
)

// layout writes display related declarations. Display itself only appears
// when it was explicitly requested.
func (p *Pass) layout(c *ir.Component) {
	l := c.Layout
	switch {
	case l.DisplayExplicit && l.Display.IsFlex():
		p.flex(c)
	case l.DisplayExplicit && l.Display.IsGrid():
		p.grid(l)
	case l.DisplayExplicit:
		p.w.prop(1, "display", l.Display.String())
	}
	if !l.DisplayExplicit && l.Flex.Gap > 0 {
		p.w.prop(1, "gap", fmt.Sprintf("%dpx", l.Flex.Gap))
	}

	for _, d := range []struct {
		name string
		dim  ir.Dimension
	}{
		{"min-width", l.MinWidth}, {"max-width", l.MaxWidth},
		{"min-height", l.MinHeight}, {"max-height", l.MaxHeight},
	} {
		if !d.dim.IsAuto() {
			p.w.prop(1, d.name, FormatDimension(d.dim))
		}
	}
}

func flexDirection(c *ir.Component) string {
	if d := strings.ToLower(c.Layout.Flex.Direction); d == "row" || d == "column" {
		return d
	}
	switch c.Kind {
	case ir.KindRow:
		return "row"
	case ir.KindColumn:
		return "column"
	}
	return ""
}

func (p *Pass) flex(c *ir.Component) {
	l := c.Layout
	f := l.Flex
	p.w.prop(1, "display", l.Display.String())
	if dir := flexDirection(c); len(dir) > 0 {
		p.w.prop(1, "flex-direction", dir)
	}
	if f.Wrap {
		p.w.prop(1, "flex-wrap", "wrap")
	}
	if f.Gap > 0 {
		p.w.prop(1, "gap", fmt.Sprintf("%dpx", f.Gap))
	}
	if c.Kind == ir.KindCenter {
		p.w.prop(1, "justify-content", "center")
		p.w.prop(1, "align-items", "center")
	} else {
		if f.Justify != ir.AlignStart {
			p.w.prop(1, "justify-content", alignment(f.Justify))
		}
		if f.CrossAxis != ir.AlignStart && f.CrossAxis != ir.AlignStretch {
			p.w.prop(1, "align-items", alignment(f.CrossAxis))
		}
	}
	if f.Grow > 0 {
		p.w.prop(1, "flex-grow", fmt.Sprintf("%d", f.Grow))
	}
	if f.Shrink != 1 {
		p.w.prop(1, "flex-shrink", fmt.Sprintf("%d", f.Shrink))
	}
}

func (p *Pass) grid(l *ir.Layout) {
	g := l.Grid
	p.w.prop(1, "display", l.Display.String())
	p.w.prop(1, "grid-template-columns", template(g.Columns, g.ColumnRepeat))
	if len(g.Rows) > 0 || (g.RowRepeat != nil && g.RowRepeat.Mode != ir.RepeatNone) {
		p.w.prop(1, "grid-template-rows", template(g.Rows, g.RowRepeat))
	}
	if g.RowGap > 0 || g.ColumnGap > 0 {
		if g.RowGap == g.ColumnGap {
			p.w.prop(1, "gap", Px(g.RowGap))
		} else {
			if g.RowGap > 0 {
				p.w.prop(1, "row-gap", Px(g.RowGap))
			}
			if g.ColumnGap > 0 {
				p.w.prop(1, "column-gap", Px(g.ColumnGap))
			}
		}
	}
	if g.JustifyItems != ir.AlignStart {
		p.w.prop(1, "justify-items", alignment(g.JustifyItems))
	}
	if g.AlignItems != ir.AlignStart {
		p.w.prop(1, "align-items", alignment(g.AlignItems))
	}
}

// template renders grid track list, repeat() definition wins over explicit
// tracks. Without either a single flexible track is used.
func template(tracks []ir.Track, rep *ir.Repeat) string {
	if rep != nil && rep.Mode != ir.RepeatNone {
		var count string
		switch rep.Mode {
		case ir.RepeatAutoFit:
			count = "auto-fit"
		case ir.RepeatAutoFill:
			count = "auto-fill"
		default:
			count = fmt.Sprintf("%d", rep.Count)
		}
		size := track(rep.Track)
		if rep.MinMax != nil {
			size = "minmax(" + track(rep.MinMax.Min) + ", " + track(rep.MinMax.Max) + ")"
		}
		return "repeat(" + count + ", " + size + ")"
	}
	if len(tracks) == 0 {
		return "1fr"
	}
	parts := make([]string, 0, len(tracks))
	for _, t := range tracks {
		parts = append(parts, track(t))
	}
	return strings.Join(parts, " ")
}
