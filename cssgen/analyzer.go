package cssgen

import (
	"strings"

	"kryweb/ir"
)

// HasCustomStyle reports whether any style property differs from its
// default. Nil style has nothing custom.
func HasCustomStyle(s *ir.Style) bool {
	if s == nil {
		return false
	}
	def := ir.NewStyle()
	switch {
	case customPaint(s), customBox(s), customText(s, def):
		return true
	case s.BoxShadow.Enabled, len(s.Filters) > 0, !s.Transform.IsIdentity():
		return true
	case s.Opacity != def.Opacity, s.Visible != def.Visible, s.Position != def.Position,
		s.Left != 0, s.Top != 0, s.ZIndex != 0, s.OverflowX != def.OverflowX, s.OverflowY != def.OverflowY:
		return true
	case s.GridItem != def.GridItem:
		return true
	case len(s.Animations) > 0, len(s.Transitions) > 0, len(s.Pseudo) > 0, len(s.Breakpoints) > 0:
		return true
	case s.ContainerType != def.ContainerType, len(s.ContainerName) > 0:
		return true
	}
	return false
}

func customPaint(s *ir.Style) bool {
	return s.Background.Kind != ir.ColorTransparent || s.Background.VarName != "" ||
		len(s.BackgroundImage) > 0 ||
		s.BackgroundClip != ir.ClipBorderBox ||
		s.TextFillColor.Kind != ir.ColorTransparent
}

func customBox(s *ir.Style) bool {
	b := s.Border
	return !s.Width.IsAuto() || !s.Height.IsAuto() ||
		s.Margin.Set != 0 || s.Padding.Set != 0 ||
		b.Width > 0 || b.Top > 0 || b.Right > 0 || b.Bottom > 0 || b.Left > 0 || b.Radius > 0
}

func customText(s, def *ir.Style) bool {
	f, d := s.Font, def.Font
	return f.Size > 0 || len(f.Family) > 0 || f.Color.Kind != ir.ColorTransparent || f.Color.VarName != "" ||
		f.Weight != d.Weight || f.Bold || f.Italic || f.LineHeight != d.LineHeight ||
		f.LetterSpacing != 0 || f.WordSpacing != 0 || f.Align != d.Align ||
		f.Underline || f.Overline || f.LineThrough ||
		s.TextShadow.Enabled || s.TextOverflow != ir.TextOverflowVisible ||
		(s.Fade != ir.FadeNone && s.FadeLength > 0)
}

// handlerEvents lists event types which make component interactive.
var handlerEvents = map[string]struct{}{
	"click": {}, "hover": {}, "focus": {}, "blur": {}, "change": {}, "input": {}, "submit": {},
	"keypress": {}, "keydown": {}, "keyup": {}, "mouseenter": {}, "mouseleave": {},
	"doubleclick": {}, "scroll": {},
}

// HasEventHandlers reports whether component listens for any supported event.
func HasEventHandlers(c *ir.Component) bool {
	if c == nil {
		return false
	}
	for _, ev := range c.Events {
		if _, ok := handlerEvents[strings.ToLower(ev.Type)]; ok {
			return true
		}
	}
	return false
}

// HasLayout reports whether component layout produces any output.
func HasLayout(c *ir.Component) bool {
	if c == nil || c.Layout == nil {
		return false
	}
	l := c.Layout
	return l.DisplayExplicit || l.Flex.Gap > 0 ||
		!l.MinWidth.IsAuto() || !l.MaxWidth.IsAuto() || !l.MinHeight.IsAuto() || !l.MaxHeight.IsAuto()
}
