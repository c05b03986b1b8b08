package css_test

import (
	"errors"
	"testing"

	"go.uber.org/multierr"

	"kryweb/css"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []css.ProblemKind
	}{
		{
			name: "clean",
			src: `.a { color: red; }
.a:hover { color: blue; }
@media (max-width: 768px) { .a { display: none; } }
@media (max-width: 480px) { .a { display: none; } }`,
		},
		{
			name:  "duplicate top level",
			src:   `.a { color: red; } .b { color: red; } .a { margin: 0; }`,
			kinds: []css.ProblemKind{css.ProblemDuplicate},
		},
		{
			name: "overrides repeat in blocks with same prelude",
			src: `@media (max-width: 768px) { .a { display: none; } }
@media (max-width: 768px) { .a { opacity: 0.50; } }`,
		},
		{
			name: "container context next to regular rule",
			src:  `.a { color: red; } .a { container-type: inline-size; container-name: side; }`,
		},
		{
			name:  "duplicate container context",
			src:   `.a { container-type: size; } .a { container-type: inline-size; }`,
			kinds: []css.ProblemKind{css.ProblemDuplicate},
		},
		{
			name:  "empty rule in block",
			src:   `@media (max-width: 768px) { .a { } }`,
			kinds: []css.ProblemKind{css.ProblemEmpty},
		},
		{
			name:  "empty rule",
			src:   `.a { }`,
			kinds: []css.ProblemKind{css.ProblemEmpty},
		},
		{
			name:  "empty and duplicate",
			src:   `.a { color: red; } .a { }`,
			kinds: []css.ProblemKind{css.ProblemEmpty, css.ProblemDuplicate},
		},
		{
			name: "keyframes are not checked",
			src:  `@keyframes x { 0.0% { } 0.0% { opacity: 1.00; } }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := css.Verify(parse(t, tt.src))
			errs := multierr.Errors(err)
			if len(errs) != len(tt.kinds) {
				t.Fatalf("Verify() = %v, want %d problems", err, len(tt.kinds))
			}
			for i, e := range errs {
				var p *css.Problem
				if !errors.As(e, &p) {
					t.Fatalf("problem %d has type %T", i, e)
				}
				if p.Kind != tt.kinds[i] {
					t.Errorf("problem %d kind = %v, want %v", i, p.Kind, tt.kinds[i])
				}
			}
		})
	}
}

func TestVerify_ProblemContext(t *testing.T) {
	err := css.Verify(parse(t, `@media (max-width: 768px) { .a { } }`))

	var p *css.Problem
	if !errors.As(err, &p) {
		t.Fatalf("Verify() = %v, want *css.Problem", err)
	}
	if p.Context != "@media (max-width: 768px)" || p.Selector != ".a" {
		t.Errorf("problem = %+v", p)
	}
	want := "empty rule: .a in @media (max-width: 768px)"
	if p.Error() != want {
		t.Errorf("Error() = %q, want %q", p.Error(), want)
	}
}

func TestVerify_Nil(t *testing.T) {
	if err := css.Verify(nil); err != nil {
		t.Errorf("Verify(nil) = %v, want nil", err)
	}
}
