package cssgen

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"kryweb/ir"
)

func hasAnimations(root *ir.Component) bool {
	found := false
	root.Walk(func(c *ir.Component, _ int) bool {
		if c.Style != nil && len(c.Style.Animations) > 0 {
			found = true
		}
		return !found
	})
	return found
}

// Keyframes writes @keyframes block for every animation in the tree. Blocks
// are not merged by name, repeated names are reported.
func (p *Pass) Keyframes(root *ir.Component) {
	if !hasAnimations(root) {
		return
	}
	p.w.write("/* Keyframe Animations */\n")

	names := make(map[string]uint32)
	root.Walk(func(c *ir.Component, _ int) bool {
		if c.Style == nil {
			return true
		}
		for _, a := range c.Style.Animations {
			if a == nil || len(a.Name) == 0 || len(a.Keyframes) == 0 {
				continue
			}
			if first, ok := names[a.Name]; ok {
				p.log.Warn("Duplicate keyframes name",
					zap.String("name", a.Name), zap.Uint32("component", c.ID), zap.Uint32("first", first))
			} else {
				names[a.Name] = c.ID
			}
			p.animation(a)
		}
		return p.w.err == nil
	})
}

func (p *Pass) animation(a *ir.Animation) {
	p.w.write("@keyframes " + a.Name + " {\n")
	for _, kf := range a.Keyframes {
		p.w.printf("  %.1f%% {\n", kf.Offset*100)
		if t := frameTransform(kf); len(t) > 0 {
			p.w.prop(2, "transform", t)
		}
		bgDone := false
		for _, prop := range kf.Properties {
			switch {
			case prop.Property == ir.AnimOpacity:
				p.w.prop(2, "opacity", fmt.Sprintf("%.2f", prop.Value))
			case prop.Property == ir.AnimBackgroundColor && !bgDone:
				p.w.prop(2, "background-color", rgba(prop.ColorValue()))
				bgDone = true
			}
		}
		p.w.write("  }\n")
	}
	p.w.write("}\n\n")
}

// frameTransform merges transform components of a keyframe into a single
// value.
func frameTransform(kf ir.Keyframe) string {
	var (
		tx, ty, rot                float64
		sx, sy                     = 1.0, 1.0
		hasTrans, hasScale, hasRot bool
	)
	for _, prop := range kf.Properties {
		switch prop.Property {
		case ir.AnimTranslateX:
			tx, hasTrans = prop.Value, true
		case ir.AnimTranslateY:
			ty, hasTrans = prop.Value, true
		case ir.AnimScaleX:
			sx, hasScale = prop.Value, true
		case ir.AnimScaleY:
			sy, hasScale = prop.Value, true
		case ir.AnimRotate:
			rot, hasRot = prop.Value, true
		}
	}
	var parts []string
	if hasTrans {
		parts = append(parts, fmt.Sprintf("translate(%.1fpx, %.1fpx)", tx, ty))
	}
	if hasScale {
		parts = append(parts, fmt.Sprintf("scale(%.2f, %.2f)", sx, sy))
	}
	if hasRot {
		parts = append(parts, fmt.Sprintf("rotate(%.1fdeg)", rot))
	}
	return strings.Join(parts, " ")
}
