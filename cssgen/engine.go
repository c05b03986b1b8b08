// Package cssgen generates stylesheet for a component tree.
package cssgen

import (
	"go.uber.org/zap"

	"kryweb/ir"
)

// Engine produces CSS rules for component trees. It keeps no state between
// passes and may be shared.
type Engine struct {
	log   *zap.Logger
	limit int
}

type Option func(*Engine)

// WithSizeLimit makes every pass fail once its output grows over limit bytes.
func WithSizeLimit(limit int) Option {
	return func(e *Engine) {
		e.limit = limit
	}
}

func New(log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{log: log.Named("cssgen")}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Pass is a single stylesheet generation. Its registry is created empty and
// only lives as long as the pass.
type Pass struct {
	log     *zap.Logger
	w       *writer
	reg     *Registry
	palette Palette
	queries int
}

// NewPass starts generation. Colors equal to any of the vars are written as
// var() references.
func (e *Engine) NewPass(vars []ir.CSSVariable) *Pass {
	return &Pass{
		log:     e.log,
		w:       &writer{limit: e.limit},
		reg:     NewRegistry(),
		palette: Palette(vars),
	}
}

// Rules is a convenience wrapper generating component rules for the tree in
// a fresh pass.
func (e *Engine) Rules(root *ir.Component) (string, error) {
	p := e.NewPass(nil)
	p.Rules(root)
	return p.Result()
}

// Rules emits rules for the tree in document order: component base rule,
// container context, pseudo-class and responsive rules, then children.
func (p *Pass) Rules(root *ir.Component) {
	root.Walk(func(c *ir.Component, _ int) bool {
		if p.w.err != nil {
			return false
		}
		p.componentRules(c)
		return true
	})
}

func (p *Pass) componentRules(c *ir.Component) {
	sel := selectorOf(c)
	p.baseRule(c, sel)
	if c.Style == nil {
		return
	}
	p.containerRule(c, sel)
	p.pseudoRules(c, sel)
	p.responsiveRules(c, sel)
}

// Registry exposes rules registered so far.
func (p *Pass) Registry() *Registry {
	return p.reg
}

// Result returns generated text or the first write failure.
func (p *Pass) Result() (string, error) {
	if p.w.err != nil {
		return "", p.w.err
	}
	return p.w.String(), nil
}

// Err returns the first write failure of the pass.
func (p *Pass) Err() error {
	return p.w.err
}
