package ir

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Border widths are per side; Width, when non zero, applies to all sides.
type Border struct {
	Width  float64 `json:"width,omitempty"`
	Top    float64 `json:"top,omitempty"`
	Right  float64 `json:"right,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty"`
	Color  Color   `json:"color"`
	Radius uint32  `json:"radius,omitempty"`
}

// Font describes typography. Size 0 means inherited.
type Font struct {
	Size          float64   `json:"size,omitempty"`
	Family        string    `json:"family,omitempty"`
	Color         Color     `json:"color"`
	Weight        uint16    `json:"weight,omitempty"`
	Bold          bool      `json:"bold,omitempty"`
	Italic        bool      `json:"italic,omitempty"`
	LineHeight    float64   `json:"lineHeight,omitempty"`
	LetterSpacing float64   `json:"letterSpacing,omitempty"`
	WordSpacing   float64   `json:"wordSpacing,omitempty"`
	Align         TextAlign `json:"align,omitempty"`
	Underline     bool      `json:"underline,omitempty"`
	Overline      bool      `json:"overline,omitempty"`
	LineThrough   bool      `json:"lineThrough,omitempty"`
}

type Shadow struct {
	Enabled bool    `json:"enabled,omitempty"`
	OffsetX float64 `json:"offsetX,omitempty"`
	OffsetY float64 `json:"offsetY,omitempty"`
	Blur    float64 `json:"blur,omitempty"`
	Spread  float64 `json:"spread,omitempty"`
	Color   Color   `json:"color"`
	Inset   bool    `json:"inset,omitempty"`
}

type Filter struct {
	Type  FilterType `json:"type"`
	Value float64    `json:"value"`
}

// Transform is identity when translation and rotation are 0 and scale is 1.
type Transform struct {
	TranslateX float64 `json:"translateX,omitempty"`
	TranslateY float64 `json:"translateY,omitempty"`
	ScaleX     float64 `json:"scaleX"`
	ScaleY     float64 `json:"scaleY"`
	Rotate     float64 `json:"rotate,omitempty"`
}

// IdentityTransform returns transform which does nothing.
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

func (t Transform) HasTranslate() bool { return t.TranslateX != 0 || t.TranslateY != 0 }
func (t Transform) HasScale() bool     { return t.ScaleX != 1 || t.ScaleY != 1 }
func (t Transform) HasRotate() bool    { return t.Rotate != 0 }

func (t Transform) IsIdentity() bool {
	return !t.HasTranslate() && !t.HasScale() && !t.HasRotate()
}

// GridItem places component into parent grid, -1 means automatic placement.
type GridItem struct {
	RowStart    int       `json:"rowStart"`
	RowEnd      int       `json:"rowEnd"`
	ColumnStart int       `json:"columnStart"`
	ColumnEnd   int       `json:"columnEnd"`
	JustifySelf Alignment `json:"justifySelf,omitempty"`
	AlignSelf   Alignment `json:"alignSelf,omitempty"`
}

// PseudoStyle overrides some properties for a pseudo-class state. Nil fields
// are not overridden.
type PseudoStyle struct {
	State       PseudoState `json:"state"`
	Background  *Color      `json:"background,omitempty"`
	TextColor   *Color      `json:"textColor,omitempty"`
	BorderColor *Color      `json:"borderColor,omitempty"`
	Opacity     *float64    `json:"opacity,omitempty"`
	Transform   *Transform  `json:"transform,omitempty"`
}

type QueryCondition struct {
	Type  QueryType `json:"type"`
	Value float64   `json:"value"`
}

// Breakpoint is a set of overrides applied when all conditions hold. Opacity
// below 0 means not overridden.
type Breakpoint struct {
	Conditions []QueryCondition `json:"conditions"`
	Width      Dimension        `json:"width"`
	Height     Dimension        `json:"height"`
	Visible    bool             `json:"visible"`
	Opacity    float64          `json:"opacity"`
	Display    *DisplayMode     `json:"display,omitempty"`
}

// NewBreakpoint returns breakpoint without overrides.
func NewBreakpoint() Breakpoint {
	return Breakpoint{Visible: true, Opacity: -1}
}

type plainBreakpoint Breakpoint

func (b *Breakpoint) UnmarshalJSON(data []byte) error {
	p := plainBreakpoint(NewBreakpoint())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = Breakpoint(p)
	return nil
}

func (b *Breakpoint) DecodeMsgpack(dec *msgpack.Decoder) error {
	p := plainBreakpoint(NewBreakpoint())
	if err := dec.Decode(&p); err != nil {
		return err
	}
	*b = Breakpoint(p)
	return nil
}

// Style is visual description of a component. Every field has a default set
// by NewStyle, analyzer compares against those.
type Style struct {
	Background      Color          `json:"background"`
	BackgroundImage string         `json:"backgroundImage,omitempty"`
	BackgroundClip  BackgroundClip `json:"backgroundClip,omitempty"`
	TextFillColor   Color          `json:"textFillColor"`

	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`

	Margin  Spacing `json:"margin"`
	Padding Spacing `json:"padding"`
	Border  Border  `json:"border"`
	Font    Font    `json:"font"`

	TextShadow   Shadow       `json:"textShadow"`
	TextOverflow TextOverflow `json:"textOverflow,omitempty"`
	Fade         FadeType     `json:"fade,omitempty"`
	FadeLength   float64      `json:"fadeLength,omitempty"`

	BoxShadow Shadow    `json:"boxShadow"`
	Filters   []Filter  `json:"filters,omitempty"`
	Transform Transform `json:"transform"`

	Opacity   float64      `json:"opacity"`
	Visible   bool         `json:"visible"`
	Position  PositionMode `json:"position,omitempty"`
	Left      float64      `json:"left,omitempty"`
	Top       float64      `json:"top,omitempty"`
	ZIndex    uint32       `json:"zIndex,omitempty"`
	OverflowX Overflow     `json:"overflowX,omitempty"`
	OverflowY Overflow     `json:"overflowY,omitempty"`
	GridItem  GridItem     `json:"gridItem"`

	Animations  []*Animation  `json:"animations,omitempty"`
	Transitions []Transition  `json:"transitions,omitempty"`
	Pseudo      []PseudoStyle `json:"pseudo,omitempty"`
	Breakpoints []Breakpoint  `json:"breakpoints,omitempty"`

	ContainerType ContainerType `json:"containerType,omitempty"`
	ContainerName string        `json:"containerName,omitempty"`
}

// NewStyle returns style with all properties at their defaults.
func NewStyle() *Style {
	return &Style{
		Font: Font{
			Weight:     400,
			LineHeight: 1.5,
		},
		Transform: IdentityTransform(),
		Opacity:   1,
		Visible:   true,
		GridItem: GridItem{
			RowStart:    -1,
			RowEnd:      -1,
			ColumnStart: -1,
			ColumnEnd:   -1,
		},
	}
}

type plainStyle Style

func (s *Style) UnmarshalJSON(data []byte) error {
	p := plainStyle(*NewStyle())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Style(p)
	return nil
}

func (s *Style) DecodeMsgpack(dec *msgpack.Decoder) error {
	p := plainStyle(*NewStyle())
	if err := dec.Decode(&p); err != nil {
		return err
	}
	*s = Style(p)
	return nil
}
