package cssgen_test

import (
	"testing"

	"kryweb/cssgen"
	"kryweb/ir"
)

func TestHasCustomStyle(t *testing.T) {
	tests := []struct {
		name  string
		style *ir.Style
		want  bool
	}{
		{"nil", nil, false},
		{"defaults", ir.NewStyle(), false},
		{"default weight", style(func(s *ir.Style) { s.Font.Weight = 400 }), false},
		{"weight", style(func(s *ir.Style) { s.Font.Weight = 700 }), true},
		{"line height", style(func(s *ir.Style) { s.Font.LineHeight = 1.2 }), true},
		{"background", style(func(s *ir.Style) { s.Background = solid(1, 1, 1) }), true},
		{"opacity", style(func(s *ir.Style) { s.Opacity = 0.3 }), true},
		{"invisible", style(func(s *ir.Style) { s.Visible = false }), true},
		{"grid item", style(func(s *ir.Style) { s.GridItem.RowStart = 0 }), true},
		{"transform", style(func(s *ir.Style) { s.Transform.Rotate = 45 }), true},
		{"padding", style(func(s *ir.Style) { s.Padding = ir.Uniform(0) }), true},
		{"fade without length", style(func(s *ir.Style) { s.Fade = ir.FadeVertical }), false},
		{"container", style(func(s *ir.Style) { s.ContainerType = ir.ContainerSize }), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cssgen.HasCustomStyle(tt.style); got != tt.want {
				t.Errorf("HasCustomStyle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasEventHandlers(t *testing.T) {
	tests := []struct {
		name   string
		events []ir.Event
		want   bool
	}{
		{"none", nil, false},
		{"click", []ir.Event{{Type: "click"}}, true},
		{"case insensitive", []ir.Event{{Type: "MouseEnter"}}, true},
		{"unsupported", []ir.Event{{Type: "drag"}}, false},
		{"mixed", []ir.Event{{Type: "drag"}, {Type: "keyup"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &ir.Component{Events: tt.events}
			if got := cssgen.HasEventHandlers(c); got != tt.want {
				t.Errorf("HasEventHandlers() = %v, want %v", got, tt.want)
			}
		})
	}
	if cssgen.HasEventHandlers(nil) {
		t.Error("HasEventHandlers(nil) = true")
	}
}

func TestHasLayout(t *testing.T) {
	if cssgen.HasLayout(&ir.Component{}) {
		t.Error("component without layout reported layout")
	}
	if cssgen.HasLayout(&ir.Component{Layout: ir.NewLayout()}) {
		t.Error("default layout reported layout")
	}
	if !cssgen.HasLayout(&ir.Component{Layout: &ir.Layout{DisplayExplicit: true}}) {
		t.Error("explicit display not reported")
	}
	if !cssgen.HasLayout(&ir.Component{Layout: &ir.Layout{Flex: ir.Flex{Gap: 2}}}) {
		t.Error("flex gap not reported")
	}
}

func TestNaturalClassName(t *testing.T) {
	tests := []struct {
		name string
		c    *ir.Component
		want string
	}{
		{"nil", nil, "element"},
		{"class wins", &ir.Component{Kind: ir.KindButton, Class: "cta", Tag: "nav"}, "cta"},
		{"tag", &ir.Component{Kind: ir.KindContainer, Tag: "header"}, "header"},
		{"kind", &ir.Component{Kind: ir.KindTabBar}, "tab-bar"},
		{"table cell", &ir.Component{Kind: ir.KindTableHeaderCell}, "table-header-cell"},
		{"unknown kind", &ir.Component{Kind: ir.Kind(999)}, "element"},
		{"multiple classes", &ir.Component{Class: "  btn   primary "}, "btn primary"},
		{"unsafe class", &ir.Component{Class: "Hello World!"}, "Hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cssgen.NaturalClassName(tt.c); got != tt.want {
				t.Errorf("NaturalClassName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeClasses(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"btn", "btn"},
		{"btn_primary is-active", "btn_primary is-active"},
		{"card:hover", "card-hover"},
		{"Ünïcode", "unicode"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := cssgen.SanitizeClasses(tt.in); got != tt.want {
			t.Errorf("SanitizeClasses(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassesToSelector(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"card", ".card"},
		{"btn primary", ".btn.primary"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cssgen.ClassesToSelector(tt.in); got != tt.want {
			t.Errorf("ClassesToSelector(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSelectorFor(t *testing.T) {
	tests := []struct {
		name string
		c    *ir.Component
		want string
	}{
		{"nil", nil, ""},
		{"class", &ir.Component{Kind: ir.KindButton, Class: "btn primary"}, ".btn.primary"},
		{"element", &ir.Component{SelectorType: ir.SelectorElement, Tag: "Nav"}, "nav"},
		{"unknown element", &ir.Component{SelectorType: ir.SelectorElement, Tag: "widget"}, ".widget"},
		{"id", &ir.Component{SelectorType: ir.SelectorID, Class: "main"}, "#main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cssgen.SelectorFor(tt.c); got != tt.want {
				t.Errorf("SelectorFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTargetFor(t *testing.T) {
	tests := []struct {
		name string
		c    *ir.Component
		want cssgen.Target
	}{
		{"nil", nil, cssgen.Target{}},
		{"class", &ir.Component{Kind: ir.KindButton, Class: "btn primary"}, cssgen.Target{Class: "btn primary"}},
		{"kind default", &ir.Component{Kind: ir.KindRow}, cssgen.Target{Class: "row"}},
		{"element", &ir.Component{SelectorType: ir.SelectorElement, Tag: "Nav"}, cssgen.Target{Tag: "nav"}},
		{"id", &ir.Component{SelectorType: ir.SelectorID, Class: "main area"}, cssgen.Target{ID: "main-area"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cssgen.TargetFor(tt.c); got != tt.want {
				t.Errorf("TargetFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestElementFor(t *testing.T) {
	if e := cssgen.ElementFor(ir.KindImage); e.Tag != "img" || !e.SelfClosing {
		t.Errorf("ElementFor(Image) = %+v", e)
	}
	if e := cssgen.ElementFor(ir.Kind(-1)); e.Tag != "div" || e.Class != "element" {
		t.Errorf("ElementFor(unknown) = %+v", e)
	}
}

func TestRegistry(t *testing.T) {
	r := cssgen.NewRegistry()
	if !r.Add(cssgen.RuleBase, "card") {
		t.Error("first Add() = false")
	}
	if r.Add(cssgen.RuleBase, "card") {
		t.Error("second Add() = true")
	}
	// namespaces are separate
	if r.Has(cssgen.RulePseudo, "card") {
		t.Error("key leaked into another namespace")
	}
	if !r.Add(cssgen.RulePseudo, "card") {
		t.Error("Add() in other namespace = false")
	}
	if r.Len(cssgen.RuleBase) != 1 || r.Len(cssgen.RuleContainer) != 0 {
		t.Errorf("Len() = %d, %d", r.Len(cssgen.RuleBase), r.Len(cssgen.RuleContainer))
	}
}
