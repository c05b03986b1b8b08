package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// RGBA is 8 bit per channel color.
type RGBA struct {
	R, G, B, A uint8
}

// GradientStop is a gradient color at relative position 0..1.
type GradientStop struct {
	Position float64
	Color    RGBA
}

// Gradient parameters. Angle is used by linear gradients, center by radial
// and conic ones.
type Gradient struct {
	Angle   float64
	CenterX float64
	CenterY float64
	Stops   []GradientStop
}

// Color is a paint value: transparent, solid, reference to numbered theme
// variable or gradient. VarName is set when value was given as a CSS
// variable reference and is emitted verbatim.
type Color struct {
	Kind     ColorKind
	RGBA     RGBA
	VarID    uint16
	VarName  string
	Gradient *Gradient
}

// Solid returns solid color value.
func Solid(r, g, b, a uint8) Color {
	return Color{Kind: ColorSolid, RGBA: RGBA{r, g, b, a}}
}

// IsTransparent reports color which paints nothing.
func (c Color) IsTransparent() bool {
	if c.VarName != "" {
		return false
	}
	return c.Kind == ColorTransparent || (c.Kind == ColorSolid && c.RGBA.A == 0)
}

func (c *Color) UnmarshalJSON(data []byte) error { return unmarshalJSONValue(data, c) }

func (c *Color) DecodeMsgpack(dec *msgpack.Decoder) error { return decodeMsgpackValue(dec, c) }

func (c *Color) fromValue(v any) error {
	*c = Color{}
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return c.parse(s)
	}
	m, ok := toMap(v)
	if !ok {
		return fmt.Errorf("unsupported color value %v", v)
	}
	kind := strings.ToLower(stringField(m, "type"))
	switch kind {
	case "", "solid":
		if hex := stringField(m, "value"); hex != "" {
			return c.parse(hex)
		}
		*c = Solid(channel(m, "r", 0), channel(m, "g", 0), channel(m, "b", 0), channel(m, "a", 255))
	case "transparent":
	case "var":
		c.Kind = ColorVarRef
		c.VarID = uint16(floatField(m, "id", 0))
		c.VarName = stringField(m, "name")
	case "linear", "radial", "conic":
		g := &Gradient{
			Angle:   floatField(m, "angle", 0),
			CenterX: floatField(m, "centerX", 0.5),
			CenterY: floatField(m, "centerY", 0.5),
		}
		stops, _ := m["stops"].([]any)
		for _, s := range stops {
			sm, ok := toMap(s)
			if !ok {
				return fmt.Errorf("unsupported gradient stop %v", s)
			}
			var sc Color
			if err := sc.fromValue(sm["color"]); err != nil {
				return err
			}
			g.Stops = append(g.Stops, GradientStop{Position: floatField(sm, "position", 0), Color: sc.RGBA})
		}
		c.Gradient = g
		c.Kind = map[string]ColorKind{
			"linear": ColorLinearGradient,
			"radial": ColorRadialGradient,
			"conic":  ColorConicGradient,
		}[kind]
	default:
		return fmt.Errorf("unknown color type %q", kind)
	}
	return nil
}

func channel(m map[string]any, key string, def float64) uint8 {
	f := floatField(m, key, def)
	switch {
	case f < 0:
		return 0
	case f > 255:
		return 255
	}
	return uint8(f)
}

func (c *Color) parse(s string) error {
	s = strings.TrimSpace(s)
	ls := strings.ToLower(s)
	switch {
	case ls == "" || ls == "transparent" || ls == "none":
		*c = Color{}
		return nil
	case strings.HasPrefix(ls, "var("):
		*c = Color{Kind: ColorVarRef, VarName: s}
		return nil
	case strings.HasPrefix(ls, "#"):
		rgba, err := parseHex(ls[1:])
		if err != nil {
			return fmt.Errorf("bad color %q: %w", s, err)
		}
		*c = Color{Kind: ColorSolid, RGBA: rgba}
		return nil
	}
	if rgba, ok := namedColors[ls]; ok {
		*c = Color{Kind: ColorSolid, RGBA: rgba}
		return nil
	}
	return fmt.Errorf("unsupported color %q", s)
}

func parseHex(h string) (RGBA, error) {
	switch len(h) {
	case 3, 4:
		// short form, each digit doubled
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return RGBA{}, fmt.Errorf("unexpected length %d", len(h))
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, err
	}
	return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

var namedColors = map[string]RGBA{
	"black":  {0, 0, 0, 255},
	"white":  {255, 255, 255, 255},
	"red":    {255, 0, 0, 255},
	"green":  {0, 128, 0, 255},
	"blue":   {0, 0, 255, 255},
	"yellow": {255, 255, 0, 255},
	"gray":   {128, 128, 128, 255},
	"grey":   {128, 128, 128, 255},
	"orange": {255, 165, 0, 255},
	"purple": {128, 0, 128, 255},
}
