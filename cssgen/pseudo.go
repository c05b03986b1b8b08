package cssgen

import (
	"fmt"

	"kryweb/ir"
)

// pseudoRules writes one rule per pseudo-class override.
func (p *Pass) pseudoRules(c *ir.Component, sel selector) {
	for _, ps := range c.Style.Pseudo {
		key := sel.key + "-pseudo-" + ps.State.String()
		if p.reg.Has(RulePseudo, key) {
			continue
		}
		p.reg.Add(RulePseudo, key)

		start := p.w.mark()
		p.w.write(sel.text + ":" + ps.State.String() + " {\n")
		body := p.w.mark()

		if bg := ps.Background; bg != nil {
			if bg.Kind.IsGradient() {
				p.w.prop(1, "background", p.palette.Color(*bg))
			} else {
				p.w.prop(1, "background-color", p.palette.Color(*bg))
			}
		}
		if ps.TextColor != nil {
			p.w.prop(1, "color", p.palette.Color(*ps.TextColor))
		}
		if ps.BorderColor != nil {
			p.w.prop(1, "border-color", p.palette.Color(*ps.BorderColor))
		}
		if ps.Opacity != nil {
			p.w.prop(1, "opacity", fmt.Sprintf("%.2f", *ps.Opacity))
		}
		if ps.Transform != nil && !ps.Transform.IsIdentity() {
			p.w.prop(1, "transform", transformValue(*ps.Transform, "%.2f", "%.2f"))
		}

		if p.w.mark() == body {
			p.w.rollback(start)
			continue
		}
		p.w.write("}\n\n")
	}
}
