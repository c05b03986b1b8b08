package ir

import (
	"fmt"
	"slices"
	"strings"
)

// Enumerations in this package are serialized by name so KIR files stay
// readable. Each enum keeps its names in a table indexed by value.

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%d", v)
	}
	return names[v]
}

func parseEnum(what string, names []string, text []byte) (int, error) {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	if i := slices.IndexFunc(names, func(n string) bool { return strings.ToLower(n) == s }); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("%q is not a valid %s", string(text), what)
}

// SelectorType tells how the component is addressed by the stylesheet.
type SelectorType int

const (
	SelectorNone SelectorType = iota
	SelectorElement
	SelectorClass
	SelectorID
)

var selectorTypeNames = []string{"none", "element", "class", "id"}

func (s SelectorType) String() string { return enumName(selectorTypeNames, int(s)) }

func (s SelectorType) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SelectorType) UnmarshalText(text []byte) error {
	v, err := parseEnum("selector type", selectorTypeNames, text)
	*s = SelectorType(v)
	return err
}

// ColorKind discriminates Color values.
type ColorKind int

const (
	ColorTransparent ColorKind = iota
	ColorSolid
	ColorVarRef
	ColorLinearGradient
	ColorRadialGradient
	ColorConicGradient
)

var colorKindNames = []string{"transparent", "solid", "var", "linear", "radial", "conic"}

func (k ColorKind) String() string { return enumName(colorKindNames, int(k)) }

// IsGradient reports whether color is one of the gradient kinds.
func (k ColorKind) IsGradient() bool {
	return k == ColorLinearGradient || k == ColorRadialGradient || k == ColorConicGradient
}

// Unit is a dimension unit.
type Unit int

const (
	UnitAuto Unit = iota
	UnitPx
	UnitPercent
	UnitVW
	UnitVH
	UnitVMin
	UnitVMax
	UnitRem
	UnitEm
	UnitFr
)

var unitNames = []string{"auto", "px", "%", "vw", "vh", "vmin", "vmax", "rem", "em", "fr"}

func (u Unit) String() string { return enumName(unitNames, int(u)) }

// BackgroundClip values.
type BackgroundClip int

const (
	ClipBorderBox BackgroundClip = iota
	ClipPaddingBox
	ClipContentBox
	ClipText
)

var backgroundClipNames = []string{"border-box", "padding-box", "content-box", "text"}

func (b BackgroundClip) String() string { return enumName(backgroundClipNames, int(b)) }

func (b BackgroundClip) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *BackgroundClip) UnmarshalText(text []byte) error {
	v, err := parseEnum("background clip", backgroundClipNames, text)
	*b = BackgroundClip(v)
	return err
}

// TextAlign values.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignRight
	AlignCenter
	AlignJustify
)

var textAlignNames = []string{"left", "right", "center", "justify"}

func (t TextAlign) String() string { return enumName(textAlignNames, int(t)) }

func (t TextAlign) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TextAlign) UnmarshalText(text []byte) error {
	v, err := parseEnum("text alignment", textAlignNames, text)
	*t = TextAlign(v)
	return err
}

// TextOverflow values.
type TextOverflow int

const (
	TextOverflowVisible TextOverflow = iota
	TextOverflowEllipsis
	TextOverflowClip
)

var textOverflowNames = []string{"visible", "ellipsis", "clip"}

func (t TextOverflow) String() string { return enumName(textOverflowNames, int(t)) }

func (t TextOverflow) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TextOverflow) UnmarshalText(text []byte) error {
	v, err := parseEnum("text overflow", textOverflowNames, text)
	*t = TextOverflow(v)
	return err
}

// FadeType selects a text fade mask.
type FadeType int

const (
	FadeNone FadeType = iota
	FadeHorizontal
	FadeVertical
	FadeRadial
)

var fadeTypeNames = []string{"none", "horizontal", "vertical", "radial"}

func (f FadeType) String() string { return enumName(fadeTypeNames, int(f)) }

func (f FadeType) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *FadeType) UnmarshalText(text []byte) error {
	v, err := parseEnum("fade type", fadeTypeNames, text)
	*f = FadeType(v)
	return err
}

// FilterType of a single filter function.
type FilterType int

const (
	FilterBlur FilterType = iota
	FilterBrightness
	FilterContrast
	FilterGrayscale
	FilterHueRotate
	FilterInvert
	FilterOpacity
	FilterSaturate
	FilterSepia
)

var filterTypeNames = []string{"blur", "brightness", "contrast", "grayscale", "hue-rotate", "invert", "opacity", "saturate", "sepia"}

func (f FilterType) String() string { return enumName(filterTypeNames, int(f)) }

func (f FilterType) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *FilterType) UnmarshalText(text []byte) error {
	v, err := parseEnum("filter", filterTypeNames, text)
	*f = FilterType(v)
	return err
}

// PositionMode of a component.
type PositionMode int

const (
	PositionRelative PositionMode = iota
	PositionAbsolute
	PositionFixed
	PositionStatic
)

var positionModeNames = []string{"relative", "absolute", "fixed", "static"}

func (p PositionMode) String() string { return enumName(positionModeNames, int(p)) }

func (p PositionMode) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *PositionMode) UnmarshalText(text []byte) error {
	v, err := parseEnum("position", positionModeNames, text)
	*p = PositionMode(v)
	return err
}

// Overflow mode of one axis.
type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

var overflowNames = []string{"visible", "hidden", "scroll", "auto"}

func (o Overflow) String() string { return enumName(overflowNames, int(o)) }

func (o Overflow) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Overflow) UnmarshalText(text []byte) error {
	v, err := parseEnum("overflow", overflowNames, text)
	*o = Overflow(v)
	return err
}

// Alignment is used for flex and grid alignment properties.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenterItems
	AlignEnd
	AlignStretch
	AlignSpaceBetween
	AlignSpaceAround
	AlignSpaceEvenly
	AlignBaseline
)

var alignmentNames = []string{"start", "center", "end", "stretch", "space-between", "space-around", "space-evenly", "baseline"}

func (a Alignment) String() string { return enumName(alignmentNames, int(a)) }

func (a Alignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Alignment) UnmarshalText(text []byte) error {
	v, err := parseEnum("alignment", alignmentNames, text)
	*a = Alignment(v)
	return err
}

// ContainerType for CSS container queries.
type ContainerType int

const (
	ContainerNormal ContainerType = iota
	ContainerSize
	ContainerInlineSize
)

var containerTypeNames = []string{"normal", "size", "inline-size"}

func (c ContainerType) String() string { return enumName(containerTypeNames, int(c)) }

func (c ContainerType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ContainerType) UnmarshalText(text []byte) error {
	v, err := parseEnum("container type", containerTypeNames, text)
	*c = ContainerType(v)
	return err
}

// PseudoState is an interactive or structural pseudo-class.
type PseudoState int

const (
	PseudoHover PseudoState = iota
	PseudoActive
	PseudoFocus
	PseudoDisabled
	PseudoChecked
	PseudoFirstChild
	PseudoLastChild
	PseudoVisited
)

var pseudoStateNames = []string{"hover", "active", "focus", "disabled", "checked", "first-child", "last-child", "visited"}

func (p PseudoState) String() string { return enumName(pseudoStateNames, int(p)) }

func (p PseudoState) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *PseudoState) UnmarshalText(text []byte) error {
	v, err := parseEnum("pseudo state", pseudoStateNames, text)
	*p = PseudoState(v)
	return err
}

// QueryType of a single breakpoint condition.
type QueryType int

const (
	QueryMinWidth QueryType = iota
	QueryMaxWidth
	QueryMinHeight
	QueryMaxHeight
)

var queryTypeNames = []string{"min-width", "max-width", "min-height", "max-height"}

func (q QueryType) String() string { return enumName(queryTypeNames, int(q)) }

func (q QueryType) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

func (q *QueryType) UnmarshalText(text []byte) error {
	v, err := parseEnum("query condition", queryTypeNames, text)
	*q = QueryType(v)
	return err
}

// Easing function for animations and transitions.
type Easing int

const (
	EaseLinear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInBounce
	EaseOutBounce
	EaseDefault
)

var easingNames = []string{"linear", "ease-in", "ease-out", "ease-in-out",
	"ease-in-quad", "ease-out-quad", "ease-in-out-quad",
	"ease-in-cubic", "ease-out-cubic", "ease-in-out-cubic",
	"ease-in-bounce", "ease-out-bounce", "ease"}

func (e Easing) String() string { return enumName(easingNames, int(e)) }

func (e Easing) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *Easing) UnmarshalText(text []byte) error {
	v, err := parseEnum("easing", easingNames, text)
	*e = Easing(v)
	return err
}

// AnimProperty is a property animated by keyframes or transitions.
type AnimProperty int

const (
	AnimOpacity AnimProperty = iota
	AnimTranslateX
	AnimTranslateY
	AnimScaleX
	AnimScaleY
	AnimRotate
	AnimBackgroundColor
	AnimWidth
	AnimHeight
	AnimCustom
)

var animPropertyNames = []string{"opacity", "translate-x", "translate-y", "scale-x", "scale-y", "rotate",
	"background-color", "width", "height", "custom"}

func (a AnimProperty) String() string { return enumName(animPropertyNames, int(a)) }

func (a AnimProperty) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *AnimProperty) UnmarshalText(text []byte) error {
	v, err := parseEnum("animation property", animPropertyNames, text)
	*a = AnimProperty(v)
	return err
}

// IsTransform reports whether property is a transform component.
func (a AnimProperty) IsTransform() bool {
	switch a {
	case AnimTranslateX, AnimTranslateY, AnimScaleX, AnimScaleY, AnimRotate:
		return true
	}
	return false
}

// DisplayMode of a layout.
type DisplayMode int

const (
	DisplayFlex DisplayMode = iota
	DisplayInlineFlex
	DisplayGrid
	DisplayInlineGrid
	DisplayBlock
	DisplayInline
	DisplayInlineBlock
	DisplayNone
)

var displayModeNames = []string{"flex", "inline-flex", "grid", "inline-grid", "block", "inline", "inline-block", "none"}

func (d DisplayMode) String() string { return enumName(displayModeNames, int(d)) }

func (d DisplayMode) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *DisplayMode) UnmarshalText(text []byte) error {
	v, err := parseEnum("display mode", displayModeNames, text)
	*d = DisplayMode(v)
	return err
}

// IsFlex reports flex and inline-flex modes.
func (d DisplayMode) IsFlex() bool { return d == DisplayFlex || d == DisplayInlineFlex }

// IsGrid reports grid and inline-grid modes.
func (d DisplayMode) IsGrid() bool { return d == DisplayGrid || d == DisplayInlineGrid }

// TrackType is a grid track sizing kind.
type TrackType int

const (
	TrackAuto TrackType = iota
	TrackPx
	TrackPercent
	TrackFr
	TrackMinContent
	TrackMaxContent
)

var trackTypeNames = []string{"auto", "px", "percent", "fr", "min-content", "max-content"}

func (t TrackType) String() string { return enumName(trackTypeNames, int(t)) }

func (t TrackType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TrackType) UnmarshalText(text []byte) error {
	v, err := parseEnum("grid track", trackTypeNames, text)
	*t = TrackType(v)
	return err
}

// RepeatMode of grid repeat().
type RepeatMode int

const (
	RepeatNone RepeatMode = iota
	RepeatAutoFit
	RepeatAutoFill
	RepeatCount
)

var repeatModeNames = []string{"none", "auto-fit", "auto-fill", "count"}

func (r RepeatMode) String() string { return enumName(repeatModeNames, int(r)) }

func (r RepeatMode) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *RepeatMode) UnmarshalText(text []byte) error {
	v, err := parseEnum("repeat mode", repeatModeNames, text)
	*r = RepeatMode(v)
	return err
}
