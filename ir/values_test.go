package ir

import (
	"encoding/json"
	"testing"
)

func TestDimension_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Dimension
	}{
		{`12`, Dimension{Unit: UnitPx, Value: 12}},
		{`"auto"`, Dimension{}},
		{`null`, Dimension{}},
		{`"50%"`, Dimension{Unit: UnitPercent, Value: 50}},
		{`"1.5rem"`, Dimension{Unit: UnitRem, Value: 1.5}},
		{`"2fr"`, Dimension{Unit: UnitFr, Value: 2}},
		{`"100vh"`, Dimension{Unit: UnitVH, Value: 100}},
		{`"10"`, Dimension{Unit: UnitPx, Value: 10}},
		{`{"unit":"em","value":3}`, Dimension{Unit: UnitEm, Value: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Dimension
			if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if d != tt.want {
				t.Errorf("Unmarshal() = %+v, want %+v", d, tt.want)
			}
		})
	}
}

func TestDimension_UnmarshalJSONErrors(t *testing.T) {
	for _, in := range []string{`"12parsecs"`, `"px"`, `true`} {
		var d Dimension
		if err := json.Unmarshal([]byte(in), &d); err == nil {
			t.Errorf("Unmarshal(%s) expected error", in)
		}
	}
}

func TestSpacing_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Spacing
	}{
		{"number", `8`, Uniform(8)},
		{"pair", `[5, 10]`, Spacing{Top: 5, Right: 10, Bottom: 5, Left: 10, Set: AllSides}},
		{"triple", `[1, 2, 3]`, Spacing{Top: 1, Right: 2, Bottom: 3, Left: 2, Set: AllSides}},
		{"auto sides", `{"top":0,"right":"auto","bottom":0,"left":"auto"}`,
			Spacing{Right: SpacingAuto, Left: SpacingAuto, Set: AllSides}},
		{"partial", `{"top":4}`, Spacing{Top: 4, Set: SideTop}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Spacing
			if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if s != tt.want {
				t.Errorf("Unmarshal() = %+v, want %+v", s, tt.want)
			}
		})
	}
}

func TestSpacing_IsZero(t *testing.T) {
	if !(Spacing{}).IsZero() {
		t.Error("unset spacing should be zero")
	}
	if !Uniform(0).IsZero() {
		t.Error("all zero spacing should be zero")
	}
	if Uniform(1).IsZero() {
		t.Error("non zero spacing reported as zero")
	}
	if (Spacing{Left: SpacingAuto, Set: SideLeft}).IsZero() {
		t.Error("auto side reported as zero")
	}
}

func TestColor_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Color
	}{
		{"hex", `"#0a0b0c"`, Solid(10, 11, 12, 255)},
		{"hex alpha", `"#0a0b0c80"`, Solid(10, 11, 12, 128)},
		{"short hex", `"#fff"`, Solid(255, 255, 255, 255)},
		{"named", `"white"`, Solid(255, 255, 255, 255)},
		{"transparent", `"transparent"`, Color{}},
		{"css variable", `"var(--accent)"`, Color{Kind: ColorVarRef, VarName: "var(--accent)"}},
		{"object", `{"type":"solid","r":1,"g":2,"b":3}`, Solid(1, 2, 3, 255)},
		{"numbered var", `{"type":"var","id":7}`, Color{Kind: ColorVarRef, VarID: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Color
			if err := json.Unmarshal([]byte(tt.in), &c); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if c.Kind != tt.want.Kind || c.RGBA != tt.want.RGBA || c.VarID != tt.want.VarID || c.VarName != tt.want.VarName {
				t.Errorf("Unmarshal() = %+v, want %+v", c, tt.want)
			}
		})
	}
}

func TestColor_Gradient(t *testing.T) {
	in := `{"type":"radial","centerX":0.25,"stops":[{"position":0,"color":"#ff0000"},{"position":1,"color":"#0000ff"}]}`
	var c Color
	if err := json.Unmarshal([]byte(in), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if c.Kind != ColorRadialGradient {
		t.Fatalf("Kind = %v, want radial", c.Kind)
	}
	if c.Gradient.CenterX != 0.25 || c.Gradient.CenterY != 0.5 {
		t.Errorf("center = %v,%v, want 0.25,0.5", c.Gradient.CenterX, c.Gradient.CenterY)
	}
	if len(c.Gradient.Stops) != 2 || c.Gradient.Stops[1].Color != (RGBA{0, 0, 255, 255}) {
		t.Errorf("stops = %+v", c.Gradient.Stops)
	}
}

func TestColor_IsTransparent(t *testing.T) {
	if !(Color{}).IsTransparent() {
		t.Error("zero color should be transparent")
	}
	if !Solid(1, 2, 3, 0).IsTransparent() {
		t.Error("zero alpha should be transparent")
	}
	if Solid(1, 2, 3, 1).IsTransparent() {
		t.Error("visible color reported transparent")
	}
}
