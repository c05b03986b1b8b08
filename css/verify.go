package css

import (
	"fmt"

	"go.uber.org/multierr"
)

// ProblemKind classifies violations found by Verify.
type ProblemKind int

const (
	ProblemDuplicate ProblemKind = iota
	ProblemEmpty
)

func (k ProblemKind) String() string {
	switch k {
	case ProblemDuplicate:
		return "duplicate rule"
	case ProblemEmpty:
		return "empty rule"
	}
	return fmt.Sprintf("ProblemKind(%d)", int(k))
}

// Problem is a single rule violating generator guarantees.
type Problem struct {
	Kind     ProblemKind
	Context  string // enclosing at-rule, empty for top level
	Selector string
}

func (p *Problem) Error() string {
	if len(p.Context) == 0 {
		return fmt.Sprintf("%s: %s", p.Kind, p.Selector)
	}
	return fmt.Sprintf("%s: %s in %s", p.Kind, p.Selector, p.Context)
}

// isContainerContext reports rule which only declares size container.
func isContainerContext(r *Rule) bool {
	for _, d := range r.Declarations {
		if d.Property != "container-type" && d.Property != "container-name" {
			return false
		}
	}
	return len(r.Declarations) > 0
}

// Verify checks that no rule is empty and that every top level selector has
// at most one rule of each kind: regular rule and container context
// declaration. Rules inside conditional blocks are overrides, several
// components may carry them, so only emptiness is checked there. Keyframe
// frames are not checked. All problems are returned combined, use
// multierr.Errors to get them individually.
func Verify(sheet *Stylesheet) error {
	if sheet == nil {
		return nil
	}

	var errs error
	seen := make(map[string]struct{})
	check := func(context string, r *Rule) {
		if len(r.Declarations) == 0 {
			errs = multierr.Append(errs, &Problem{Kind: ProblemEmpty, Context: context, Selector: r.Selector.Raw})
		}
		if len(context) > 0 {
			return
		}
		key := r.Selector.Raw
		if isContainerContext(r) {
			key += "\x00container"
		}
		if _, dup := seen[key]; dup {
			errs = multierr.Append(errs, &Problem{Kind: ProblemDuplicate, Selector: r.Selector.Raw})
			return
		}
		seen[key] = struct{}{}
	}

	for _, item := range sheet.Items {
		switch {
		case item.Rule != nil:
			check("", item.Rule)
		case item.Block != nil && item.Block.Kind != BlockKeyframes:
			for i := range item.Block.Rules {
				check(item.Block.Context(), &item.Block.Rules[i])
			}
		}
	}
	return errs
}
