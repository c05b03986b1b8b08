package markup

import (
	"testing"

	"kryweb/ir"
)

func TestDataAttr(t *testing.T) {
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"habit", "data-habit", true},
		{"habitIndex", "data-habit-index", true},
		{"Date", "data-date", true},
		{"item_id", "data-item_id", true},
		{"x-y", "data-x-y", true},
		{"", "", false},
		{"-x", "", false},
		{"a b", "", false},
		{"на", "", false},
	}
	for _, tt := range tests {
		got, ok := dataAttr(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("dataAttr(%q) = %q, %v, want %q, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTagFor(t *testing.T) {
	tests := []struct {
		name string
		c    *ir.Component
		want string
	}{
		{"default", &ir.Component{Kind: ir.KindParagraph}, "p"},
		{"heading level", &ir.Component{Kind: ir.KindHeading, Data: map[string]string{"level": "2"}}, "h2"},
		{"heading out of range", &ir.Component{Kind: ir.KindHeading, Data: map[string]string{"level": "9"}}, "h1"},
		{"unordered list", &ir.Component{Kind: ir.KindList}, "ul"},
		{"ordered list", &ir.Component{Kind: ir.KindList, Data: map[string]string{"ordered": "1"}}, "ol"},
		{"element selector", &ir.Component{Kind: ir.KindContainer, SelectorType: ir.SelectorElement, Tag: "Section"}, "section"},
		{"unknown element falls back to kind tag", &ir.Component{Kind: ir.KindContainer, SelectorType: ir.SelectorElement, Tag: "widget"}, "div"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tagFor(tt.c); got != tt.want {
				t.Errorf("tagFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
