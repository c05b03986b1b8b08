package ir

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Several IR values have compact and verbose serialized forms (e.g. padding
// may be a number, a list or an object). Both JSON and msgpack decoders first
// produce generic value which is then interpreted by fromValue.

type valueDecoder interface {
	fromValue(v any) error
}

func unmarshalJSONValue(data []byte, dst valueDecoder) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return dst.fromValue(v)
}

func decodeMsgpackValue(dec *msgpack.Decoder, dst valueDecoder) error {
	v, err := dec.DecodeInterface()
	if err != nil {
		return err
	}
	return dst.fromValue(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func floatField(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok {
		if f, ok := toFloat(v); ok {
			return f
		}
	}
	return def
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// Dimension is a length with unit. Zero value is "auto".
type Dimension struct {
	Unit  Unit
	Value float64
}

func Px(v float64) Dimension { return Dimension{Unit: UnitPx, Value: v} }

// IsAuto reports unset dimension.
func (d Dimension) IsAuto() bool { return d.Unit == UnitAuto }

func (d *Dimension) UnmarshalJSON(data []byte) error { return unmarshalJSONValue(data, d) }

func (d *Dimension) DecodeMsgpack(dec *msgpack.Decoder) error { return decodeMsgpackValue(dec, d) }

func (d *Dimension) fromValue(v any) error {
	if v == nil {
		*d = Dimension{}
		return nil
	}
	if f, ok := toFloat(v); ok {
		if _, isString := v.(string); !isString {
			*d = Px(f)
			return nil
		}
	}
	if s, ok := v.(string); ok {
		return d.parse(s)
	}
	if m, ok := toMap(v); ok {
		var u Unit
		if err := u.fromName(stringField(m, "unit")); err != nil {
			return err
		}
		*d = Dimension{Unit: u, Value: floatField(m, "value", 0)}
		return nil
	}
	return fmt.Errorf("unsupported dimension value %v", v)
}

func (d *Dimension) parse(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		*d = Dimension{}
		return nil
	}
	end := strings.LastIndexFunc(s, func(r rune) bool { return (r >= '0' && r <= '9') || r == '.' }) + 1
	num, unit := s[:end], s[end:]
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return fmt.Errorf("bad dimension %q: %w", s, err)
	}
	var u Unit
	if unit == "" {
		u = UnitPx
	} else if err := u.fromName(unit); err != nil {
		return err
	}
	*d = Dimension{Unit: u, Value: f}
	return nil
}

func (u *Unit) fromName(name string) error {
	if name == "" {
		*u = UnitAuto
		return nil
	}
	if name == "percent" {
		*u = UnitPercent
		return nil
	}
	v, err := parseEnum("unit", unitNames, []byte(name))
	*u = Unit(v)
	return err
}

// Sides is a set of box sides.
type Sides uint8

const (
	SideTop Sides = 1 << iota
	SideRight
	SideBottom
	SideLeft

	AllSides = SideTop | SideRight | SideBottom | SideLeft
)

// SpacingAuto is a sentinel side value meaning "auto".
var SpacingAuto = math.Inf(1)

// IsAutoValue reports whether spacing side value is the auto sentinel.
func IsAutoValue(v float64) bool { return math.IsInf(v, 1) }

// Spacing is a four-sided box value (margin or padding). Set tracks which
// sides were given explicitly.
type Spacing struct {
	Top, Right, Bottom, Left float64
	Set                      Sides
}

// Uniform returns spacing with all sides set to v.
func Uniform(v float64) Spacing {
	return Spacing{Top: v, Right: v, Bottom: v, Left: v, Set: AllSides}
}

// IsZero reports spacing which does not produce any output.
func (s Spacing) IsZero() bool {
	if s.Set == 0 {
		return true
	}
	return s.Top == 0 && s.Right == 0 && s.Bottom == 0 && s.Left == 0
}

func (s *Spacing) UnmarshalJSON(data []byte) error { return unmarshalJSONValue(data, s) }

func (s *Spacing) DecodeMsgpack(dec *msgpack.Decoder) error { return decodeMsgpackValue(dec, s) }

func spacingSide(v any) (float64, error) {
	if str, ok := v.(string); ok && strings.EqualFold(strings.TrimSpace(str), "auto") {
		return SpacingAuto, nil
	}
	if f, ok := toFloat(v); ok {
		return f, nil
	}
	return 0, fmt.Errorf("unsupported spacing value %v", v)
}

func (s *Spacing) fromValue(v any) error {
	*s = Spacing{}
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		vals := make([]float64, 0, 4)
		for _, item := range val {
			f, err := spacingSide(item)
			if err != nil {
				return err
			}
			vals = append(vals, f)
		}
		// CSS shorthand expansion order
		switch len(vals) {
		case 1:
			s.Top, s.Right, s.Bottom, s.Left = vals[0], vals[0], vals[0], vals[0]
		case 2:
			s.Top, s.Right, s.Bottom, s.Left = vals[0], vals[1], vals[0], vals[1]
		case 3:
			s.Top, s.Right, s.Bottom, s.Left = vals[0], vals[1], vals[2], vals[1]
		case 4:
			s.Top, s.Right, s.Bottom, s.Left = vals[0], vals[1], vals[2], vals[3]
		default:
			return fmt.Errorf("spacing list must have 1 to 4 values, got %d", len(vals))
		}
		s.Set = AllSides
		return nil
	}
	if m, ok := toMap(v); ok {
		sides := []struct {
			name string
			flag Sides
			dst  *float64
		}{
			{"top", SideTop, &s.Top}, {"right", SideRight, &s.Right},
			{"bottom", SideBottom, &s.Bottom}, {"left", SideLeft, &s.Left},
		}
		for _, side := range sides {
			raw, ok := m[side.name]
			if !ok {
				continue
			}
			f, err := spacingSide(raw)
			if err != nil {
				return err
			}
			*side.dst = f
			s.Set |= side.flag
		}
		return nil
	}
	f, err := spacingSide(v)
	if err != nil {
		return err
	}
	*s = Spacing{Top: f, Right: f, Bottom: f, Left: f, Set: AllSides}
	return nil
}
