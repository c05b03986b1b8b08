package cssgen

// RuleKind separates registry namespaces so that keys of different rule
// kinds never collide.
type RuleKind int

const (
	RuleBase RuleKind = iota
	RulePseudo
	RuleContainer

	ruleKinds
)

// Registry remembers rules already emitted during a single generation pass.
// It only grows and is discarded together with the pass.
type Registry struct {
	seen [ruleKinds]map[string]struct{}
}

func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.seen {
		r.seen[i] = make(map[string]struct{})
	}
	return r
}

// Has reports whether rule with the key has been emitted.
func (r *Registry) Has(kind RuleKind, key string) bool {
	_, ok := r.seen[kind][key]
	return ok
}

// Add registers key and reports whether it was new.
func (r *Registry) Add(kind RuleKind, key string) bool {
	if r.Has(kind, key) {
		return false
	}
	r.seen[kind][key] = struct{}{}
	return true
}

// Len returns number of registered keys of the kind.
func (r *Registry) Len(kind RuleKind) int {
	return len(r.seen[kind])
}
