package cssgen

import (
	"fmt"
	"strings"

	"kryweb/ir"
)

func containerKey(sel selector) string {
	return sel.key + "-container"
}

func (p *Pass) containerProps(depth int, s *ir.Style) {
	p.w.prop(depth, "container-type", s.ContainerType.String())
	if len(s.ContainerName) > 0 {
		p.w.prop(depth, "container-name", s.ContainerName)
	}
}

// containerRule declares component as a size container for its children in
// a block of its own following the base rule.
func (p *Pass) containerRule(c *ir.Component, sel selector) {
	s := c.Style
	if s.ContainerType == ir.ContainerNormal || sel.skipped() {
		return
	}
	if !p.reg.Add(RuleContainer, containerKey(sel)) {
		return
	}
	p.w.write(sel.text + " {\n")
	p.containerProps(1, s)
	p.w.write("}\n\n")
}

// queryPrelude returns at-rule for breakpoint: container query when parent
// is a container, media query otherwise. Every condition is a separate
// feature test.
func queryPrelude(c *ir.Component, bp ir.Breakpoint) string {
	conds := make([]string, 0, len(bp.Conditions))
	for _, q := range bp.Conditions {
		conds = append(conds, fmt.Sprintf("(%s: %.0fpx)", q.Type, q.Value))
	}
	at := "@media"
	if parent := c.Parent; parent != nil && parent.Style != nil && parent.Style.ContainerType != ir.ContainerNormal {
		at = "@container"
		if len(parent.Style.ContainerName) > 0 {
			at += " " + parent.Style.ContainerName
		}
	}
	return at + " " + strings.Join(conds, " and ")
}

// responsiveRules writes overrides for every breakpoint with conditions. Blocks
// are not deduplicated: components sharing a class keep their own overrides.
func (p *Pass) responsiveRules(c *ir.Component, sel selector) {
	for _, bp := range c.Style.Breakpoints {
		if len(bp.Conditions) == 0 {
			continue
		}
		prelude := queryPrelude(c, bp)

		start := p.w.mark()
		p.w.write(prelude + " {\n  " + sel.text + " {\n")
		body := p.w.mark()

		if !bp.Width.IsAuto() {
			p.w.prop(2, "width", FormatDimension(bp.Width))
		}
		if !bp.Height.IsAuto() {
			p.w.prop(2, "height", FormatDimension(bp.Height))
		}
		if !bp.Visible {
			p.w.prop(2, "display", "none")
		}
		if bp.Opacity >= 0 && bp.Opacity <= 1 {
			p.w.prop(2, "opacity", fmt.Sprintf("%.2f", bp.Opacity))
		}
		if bp.Display != nil {
			p.w.prop(2, "display", bp.Display.String())
		}

		if p.w.mark() == body {
			p.w.rollback(start)
			continue
		}
		p.w.write("  }\n}\n\n")
		p.queries++
	}
}
