package cssgen_test

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"kryweb/common"
	"kryweb/css"
	"kryweb/cssgen"
	"kryweb/ir"
)

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func style(mod func(s *ir.Style)) *ir.Style {
	s := ir.NewStyle()
	mod(s)
	return s
}

func node(id uint32, kind ir.Kind, class string, s *ir.Style, children ...*ir.Component) *ir.Component {
	c := &ir.Component{ID: id, Kind: kind, Class: class, Style: s, Children: children}
	for _, child := range children {
		child.Parent = c
	}
	return c
}

func solid(r, g, b uint8) ir.Color {
	return ir.Solid(r, g, b, 255)
}

func rules(t *testing.T, root *ir.Component) string {
	t.Helper()
	out, err := cssgen.New(zap.NewNop()).Rules(root)
	if err != nil {
		t.Fatalf("Rules() error = %v", err)
	}
	return out
}

func TestEngine_CardRule(t *testing.T) {
	doc, err := ir.Load(strings.NewReader(`{"root": {
		"id": 1, "type": "Container", "cssClass": "card",
		"style": {"background": "#0a0a0a", "padding": 16}
	}}`), common.IRFormatJSON)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := rules(t, doc.Root)
	want := ".card { background-color: rgba(10, 10, 10, 1.00); padding: 16px; }"
	if collapse(got) != want {
		t.Errorf("Rules() = %q, want %q", collapse(got), want)
	}
}

func TestEngine_Dedup(t *testing.T) {
	bg := style(func(s *ir.Style) { s.Background = solid(1, 2, 3) })
	root := node(1, ir.KindColumn, "", nil,
		node(2, ir.KindContainer, "card", bg),
		node(3, ir.KindContainer, "card", style(func(s *ir.Style) { s.Opacity = 0.5 })),
		node(4, ir.KindContainer, "other", bg),
	)

	got := rules(t, root)
	if n := strings.Count(got, ".card {"); n != 1 {
		t.Errorf("expected single .card rule, got %d in\n%s", n, got)
	}
	// first registration wins
	if strings.Contains(got, "opacity") {
		t.Errorf("second .card rule leaked into output:\n%s", got)
	}
	if !strings.Contains(got, ".other {") {
		t.Errorf("expected .other rule in\n%s", got)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	root := node(1, ir.KindColumn, "app", style(func(s *ir.Style) {
		s.Padding = ir.Uniform(4)
		s.Pseudo = []ir.PseudoStyle{{State: ir.PseudoHover, TextColor: &ir.Color{Kind: ir.ColorVarRef, VarID: 2}}}
	}), node(2, ir.KindText, "label", style(func(s *ir.Style) { s.Font.Size = 14 })))

	e := cssgen.New(zap.NewNop())
	first, err := e.Rules(root)
	if err != nil {
		t.Fatalf("Rules() error = %v", err)
	}
	second, err := e.Rules(root)
	if err != nil {
		t.Fatalf("Rules() error = %v", err)
	}
	if first != second {
		t.Errorf("passes differ:\n%s\n---\n%s", first, second)
	}
}

func TestEngine_EmptyRuleElided(t *testing.T) {
	// width is custom but is never written to stylesheet
	root := node(1, ir.KindContainer, "box", style(func(s *ir.Style) { s.Width = ir.Px(100) }))

	p := cssgen.New(zap.NewNop()).NewPass(nil)
	p.Rules(root)
	got, err := p.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if got != "" {
		t.Errorf("Result() = %q, want empty", got)
	}
	if !p.Registry().Has(cssgen.RuleBase, "box") {
		t.Error("elided rule key must stay registered")
	}
}

func TestEngine_NoStyleNoLayout(t *testing.T) {
	root := node(1, ir.KindContainer, "plain", nil, node(2, ir.KindText, "", ir.NewStyle()))
	if got := rules(t, root); got != "" {
		t.Errorf("Rules() = %q, want empty", got)
	}
}

func TestEngine_ElementSelectors(t *testing.T) {
	red := style(func(s *ir.Style) { s.Background = solid(255, 0, 0) })
	para := &ir.Component{ID: 2, Kind: ir.KindParagraph, SelectorType: ir.SelectorElement, Tag: "p", Style: red}
	button := &ir.Component{ID: 3, Kind: ir.KindButton, SelectorType: ir.SelectorElement, Tag: "BUTTON", Style: red}
	byID := &ir.Component{ID: 4, Kind: ir.KindContainer, SelectorType: ir.SelectorID, Class: "main", Style: red}
	root := node(1, ir.KindColumn, "", nil, para, button, byID)

	got := rules(t, root)
	if strings.Contains(got, "p {") {
		t.Errorf("content tag must not get element rule:\n%s", got)
	}
	if !strings.Contains(got, "button {") {
		t.Errorf("expected button element rule in\n%s", got)
	}
	if !strings.Contains(got, "#main {") {
		t.Errorf("expected #main rule in\n%s", got)
	}
}

func TestEngine_Spacing(t *testing.T) {
	tests := []struct {
		name    string
		spacing ir.Spacing
		want    string
	}{
		{"shorthand", ir.Spacing{Top: 5, Right: 10, Bottom: 5, Left: 10, Set: ir.AllSides}, ".m { margin: 5px 10px; }"},
		{"zero", ir.Uniform(0), ".m { margin: 0; }"},
		{"centered", ir.Spacing{Right: ir.SpacingAuto, Left: ir.SpacingAuto, Set: ir.AllSides}, ".m { margin: 0 auto; }"},
		{"partial", ir.Spacing{Top: 8, Left: ir.SpacingAuto, Set: ir.SideTop | ir.SideLeft}, ".m { margin-top: 8px; margin-left: auto; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := node(1, ir.KindContainer, "m", style(func(s *ir.Style) { s.Margin = tt.spacing }))
			if got := collapse(rules(t, root)); got != tt.want {
				t.Errorf("Rules() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngine_PropertyOrder(t *testing.T) {
	root := node(1, ir.KindButton, "btn primary", style(func(s *ir.Style) {
		s.Background = solid(0, 0, 0)
		s.Border = ir.Border{Width: 1, Color: solid(255, 255, 255), Radius: 4}
		s.Padding = ir.Uniform(8)
		s.Font.Size = 14
		s.Font.Weight = 600
		s.Font.Align = ir.AlignCenter
		s.Opacity = 0.75
		s.ZIndex = 2
	}))

	want := ".btn.primary { background-color: rgba(0, 0, 0, 1.00); border: 1px solid rgba(255, 255, 255, 1.00); " +
		"border-radius: 4px; padding: 8px; font-size: 14px; font-weight: 600; text-align: center; " +
		"opacity: 0.75; z-index: 2; }"
	if got := collapse(rules(t, root)); got != want {
		t.Errorf("Rules() =\n%q\nwant\n%q", got, want)
	}
}

func TestEngine_Layout(t *testing.T) {
	flex := func(kind ir.Kind, class string, f ir.Flex) *ir.Component {
		l := ir.NewLayout()
		l.Display = ir.DisplayFlex
		l.DisplayExplicit = true
		f.Shrink = 1
		l.Flex = f
		return &ir.Component{ID: 1, Kind: kind, Class: class, Layout: l}
	}
	tests := []struct {
		name string
		root *ir.Component
		want string
	}{
		{
			"row", flex(ir.KindRow, "", ir.Flex{Gap: 8, Justify: ir.AlignCenterItems}),
			".row { display: flex; flex-direction: row; gap: 8px; justify-content: center; }",
		},
		{
			"center", flex(ir.KindCenter, "", ir.Flex{Justify: ir.AlignEnd}),
			".center { display: flex; justify-content: center; align-items: center; }",
		},
		{
			"column wrap", flex(ir.KindColumn, "list", ir.Flex{Wrap: true, CrossAxis: ir.AlignEnd, Grow: 1}),
			".list { display: flex; flex-direction: column; flex-wrap: wrap; align-items: flex-end; flex-grow: 1; }",
		},
		{
			"implicit gap", &ir.Component{ID: 1, Kind: ir.KindContainer, Layout: &ir.Layout{Flex: ir.Flex{Gap: 4, Shrink: 1}}},
			".container { gap: 4px; }",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collapse(rules(t, tt.root)); got != tt.want {
				t.Errorf("Rules() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngine_Pseudo(t *testing.T) {
	blue := solid(0, 0, 255)
	opacity := 0.5
	root := node(1, ir.KindButton, "btn", style(func(s *ir.Style) {
		s.Background = solid(255, 0, 0)
		s.Pseudo = []ir.PseudoStyle{
			{State: ir.PseudoHover, Background: &blue},
			{State: ir.PseudoDisabled, Opacity: &opacity},
			{State: ir.PseudoFocus},
		}
	}))

	got := rules(t, root)
	if !strings.Contains(got, ".btn:hover {\n  background-color: rgba(0, 0, 255, 1.00);\n}") {
		t.Errorf("missing hover rule in\n%s", got)
	}
	if !strings.Contains(got, ".btn:disabled {\n  opacity: 0.50;\n}") {
		t.Errorf("missing disabled rule in\n%s", got)
	}
	if strings.Contains(got, ":focus") {
		t.Errorf("empty pseudo rule must be elided:\n%s", got)
	}
}

func TestEngine_MediaQuery(t *testing.T) {
	bp := ir.NewBreakpoint()
	bp.Conditions = []ir.QueryCondition{{Type: ir.QueryMaxWidth, Value: 768}}
	bp.Visible = false
	empty := ir.NewBreakpoint()
	empty.Conditions = []ir.QueryCondition{{Type: ir.QueryMinWidth, Value: 1}}

	root := node(1, ir.KindContainer, "card", style(func(s *ir.Style) {
		s.Background = solid(1, 1, 1)
		s.Breakpoints = []ir.Breakpoint{bp, empty}
	}))

	got := rules(t, root)
	if !strings.Contains(got, "@media (max-width: 768px) {\n  .card {\n    display: none;\n  }\n}") {
		t.Errorf("missing media rule in\n%s", got)
	}
	if strings.Contains(got, "min-width") {
		t.Errorf("breakpoint without overrides must be elided:\n%s", got)
	}
}

func TestEngine_ContainerQuery(t *testing.T) {
	bp := ir.NewBreakpoint()
	bp.Conditions = []ir.QueryCondition{{Type: ir.QueryMinWidth, Value: 400}, {Type: ir.QueryMaxWidth, Value: 800}}
	bp.Opacity = 0.5

	root := node(1, ir.KindColumn, "sidebar", style(func(s *ir.Style) {
		s.ContainerType = ir.ContainerInlineSize
		s.ContainerName = "side"
	}), node(2, ir.KindContainer, "card", style(func(s *ir.Style) {
		s.Breakpoints = []ir.Breakpoint{bp}
	})))

	got := rules(t, root)
	want := ".sidebar { container-type: inline-size; container-name: side; } " +
		"@container side (min-width: 400px) and (max-width: 800px) { .card { opacity: 0.50; } }"
	if collapse(got) != want {
		t.Errorf("Rules() =\n%q\nwant\n%q", collapse(got), want)
	}
}

func TestEngine_ContainerContextRule(t *testing.T) {
	root := node(1, ir.KindColumn, "box", style(func(s *ir.Style) {
		s.Background = solid(1, 2, 3)
		s.ContainerType = ir.ContainerInlineSize
	}), node(2, ir.KindColumn, "box", style(func(s *ir.Style) {
		s.ContainerType = ir.ContainerInlineSize
	})))

	got := collapse(rules(t, root))
	want := ".box { background-color: rgba(1, 2, 3, 1.00); } .box { container-type: inline-size; }"
	if got != want {
		t.Errorf("Rules() =\n%q\nwant\n%q", got, want)
	}
}

func TestEngine_ResponsiveRulesPerComponent(t *testing.T) {
	narrow := func(opacity float64) ir.Breakpoint {
		bp := ir.NewBreakpoint()
		bp.Conditions = []ir.QueryCondition{{Type: ir.QueryMaxWidth, Value: 480}}
		bp.Opacity = opacity
		return bp
	}
	root := node(1, ir.KindColumn, "app", nil,
		node(2, ir.KindContainer, "card", style(func(s *ir.Style) { s.Breakpoints = []ir.Breakpoint{narrow(0.5)} })),
		node(3, ir.KindContainer, "card", style(func(s *ir.Style) { s.Breakpoints = []ir.Breakpoint{narrow(0.25)} })),
	)

	got := collapse(rules(t, root))
	want := "@media (max-width: 480px) { .card { opacity: 0.50; } } " +
		"@media (max-width: 480px) { .card { opacity: 0.25; } }"
	if got != want {
		t.Errorf("Rules() =\n%q\nwant\n%q", got, want)
	}
}

func TestEngine_SizeLimit(t *testing.T) {
	root := node(1, ir.KindContainer, "card", style(func(s *ir.Style) { s.Padding = ir.Uniform(16) }))
	_, err := cssgen.New(zap.NewNop(), cssgen.WithSizeLimit(10)).Rules(root)
	if !errors.Is(err, cssgen.ErrOutputTooLarge) {
		t.Errorf("Rules() error = %v, want ErrOutputTooLarge", err)
	}
}

func fade() *ir.Animation {
	a := ir.NewAnimation()
	a.Name = "fade"
	a.Duration = 1
	a.Keyframes = []ir.Keyframe{
		{Offset: 0, Properties: []ir.KeyframeProperty{{Property: ir.AnimOpacity, Value: 0}}},
		{Offset: 1, Properties: []ir.KeyframeProperty{
			{Property: ir.AnimOpacity, Value: 1},
			{Property: ir.AnimTranslateX, Value: 10},
		}},
	}
	return a
}

func TestPass_Keyframes(t *testing.T) {
	root := node(1, ir.KindContainer, "box", style(func(s *ir.Style) {
		s.Animations = []*ir.Animation{fade()}
	}))

	p := cssgen.New(zap.NewNop()).NewPass(nil)
	p.Keyframes(root)
	got, err := p.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	want := "/* Keyframe Animations */\n" +
		"@keyframes fade {\n" +
		"  0.0% {\n    opacity: 0.00;\n  }\n" +
		"  100.0% {\n    transform: translate(10.0px, 0.0px);\n    opacity: 1.00;\n  }\n" +
		"}\n\n"
	if got != want {
		t.Errorf("Keyframes() =\n%s\nwant\n%s", got, want)
	}

	if r := rules(t, root); collapse(r) != ".box { animation: fade 1.00s ease 0.00s; }" {
		t.Errorf("Rules() = %q", collapse(r))
	}
}

func TestPass_KeyframesDuplicateNames(t *testing.T) {
	root := node(1, ir.KindColumn, "", nil,
		node(2, ir.KindContainer, "a", style(func(s *ir.Style) { s.Animations = []*ir.Animation{fade()} })),
		node(3, ir.KindContainer, "b", style(func(s *ir.Style) { s.Animations = []*ir.Animation{fade()} })),
	)
	p := cssgen.New(zap.NewNop()).NewPass(nil)
	p.Keyframes(root)
	got, _ := p.Result()
	if n := strings.Count(got, "@keyframes fade {"); n != 2 {
		t.Errorf("expected 2 keyframes blocks, got %d", n)
	}
	if n := strings.Count(got, "/* Keyframe Animations */"); n != 1 {
		t.Errorf("expected single header, got %d", n)
	}
}

func TestPass_NoKeyframes(t *testing.T) {
	p := cssgen.New(zap.NewNop()).NewPass(nil)
	p.Keyframes(node(1, ir.KindContainer, "box", ir.NewStyle()))
	if got, _ := p.Result(); got != "" {
		t.Errorf("Keyframes() = %q, want empty", got)
	}
}

func TestGenerator_Document(t *testing.T) {
	manifest := &ir.Manifest{Variables: []ir.Variable{
		{Name: "css:accent", Type: "string", Value: "#ff0000"},
		{Name: "counter", Type: "int", Value: 1},
	}}
	hover := solid(0, 0, 0)
	root := node(1, ir.KindColumn, "app", style(func(s *ir.Style) {
		s.Background = solid(255, 0, 0)
		s.Animations = []*ir.Animation{fade()}
	}),
		node(2, ir.KindButton, "btn", style(func(s *ir.Style) {
			s.Font.Color = solid(255, 0, 0)
			s.Pseudo = []ir.PseudoStyle{{State: ir.PseudoHover, Background: &hover}}
		})),
		node(3, ir.KindButton, "btn", style(func(s *ir.Style) { s.Padding = ir.Uniform(2) })),
	)

	g := cssgen.NewGenerator(cssgen.New(zap.NewNop()), cssgen.DefaultDocumentOptions())
	out, err := g.Generate(root, manifest)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !strings.HasPrefix(out, "/* Kryon Generated CSS */") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, ":root {\n  --accent: #ff0000;\n  --bg-color: #3d3d3d;") {
		t.Errorf("missing custom properties:\n%s", out)
	}

	sheet := css.NewParser(zap.NewNop()).Parse([]byte(out))
	if err := css.Verify(sheet); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	body := sheet.RulesBySelector("body")
	if len(body) != 1 {
		t.Fatalf("expected single body rule, got %d", len(body))
	}
	if v, _ := body[0].GetProperty("color"); v.Raw != "#ffffff" {
		t.Errorf("body color = %q, want #ffffff", v.Raw)
	}

	app := sheet.RulesBySelector(".app")
	if len(app) != 1 {
		t.Fatalf("expected single .app rule, got %d", len(app))
	}
	if v, _ := app[0].GetProperty("background-color"); v.Raw != "var(--accent)" {
		t.Errorf(".app background-color = %q, want var(--accent)", v.Raw)
	}
	if v, _ := sheet.RulesBySelector(".btn")[0].GetProperty("color"); v.Raw != "var(--accent)" {
		t.Errorf(".btn color = %q, want var(--accent)", v.Raw)
	}
	if got := sheet.Keyframes(); len(got) != 1 || got[0] != "fade" {
		t.Errorf("Keyframes() = %v, want [fade]", got)
	}
	if len(sheet.RulesBySelector(".btn:hover")) != 1 {
		t.Error("expected .btn:hover rule")
	}
	if len(sheet.RulesBySelector(".kryon-forEach")) != 1 {
		t.Error("expected helper styles")
	}
}

func TestGenerator_BodyRoot(t *testing.T) {
	root := &ir.Component{ID: 1, Kind: ir.KindContainer, SelectorType: ir.SelectorElement, Tag: "body",
		Style: style(func(s *ir.Style) {
			s.Background = solid(255, 255, 255)
			s.Font.Color = solid(0, 0, 255)
			s.Font.Family = "Georgia, serif"
		})}

	opts := cssgen.DefaultDocumentOptions()
	opts.Header = false
	opts.HelperStyles = false
	out, err := cssgen.NewGenerator(cssgen.New(zap.NewNop()), opts).Generate(root, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if n := strings.Count(out, "body {"); n != 1 {
		t.Fatalf("expected single body rule, got %d in\n%s", n, out)
	}
	want := "body { margin: 0; padding: 0; font-family: Georgia, serif; " +
		"background-color: rgba(255, 255, 255, 1.00); color: rgba(0, 0, 255, 1.00); line-height: 1.5; }"
	if !strings.Contains(collapse(out), want) {
		t.Errorf("Generate() =\n%s\nwant body rule %q", out, want)
	}
}

func TestGenerator_NilRoot(t *testing.T) {
	out, err := cssgen.NewGenerator(cssgen.New(zap.NewNop()), cssgen.DefaultDocumentOptions()).Generate(nil, nil)
	if err != nil || out != "" {
		t.Errorf("Generate(nil) = %q, %v", out, err)
	}
}
