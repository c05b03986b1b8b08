package ir

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Flex container parameters. Direction is "row" or "column", empty means
// derived from component kind.
type Flex struct {
	Direction string    `json:"direction,omitempty"`
	Wrap      bool      `json:"wrap,omitempty"`
	Gap       uint32    `json:"gap,omitempty"`
	Justify   Alignment `json:"justify,omitempty"`
	CrossAxis Alignment `json:"crossAxis,omitempty"`
	Grow      uint32    `json:"grow,omitempty"`
	Shrink    uint32    `json:"shrink"`
}

type Track struct {
	Type  TrackType `json:"type"`
	Value float64   `json:"value,omitempty"`
}

// MinMax is grid minmax() argument pair.
type MinMax struct {
	Min Track `json:"min"`
	Max Track `json:"max"`
}

// Repeat is grid repeat() definition. When MinMax is set it is used instead of
// Track.
type Repeat struct {
	Mode   RepeatMode `json:"mode"`
	Count  uint32     `json:"count,omitempty"`
	Track  Track      `json:"track"`
	MinMax *MinMax    `json:"minmax,omitempty"`
}

type Grid struct {
	Columns      []Track   `json:"columns,omitempty"`
	Rows         []Track   `json:"rows,omitempty"`
	ColumnRepeat *Repeat   `json:"columnRepeat,omitempty"`
	RowRepeat    *Repeat   `json:"rowRepeat,omitempty"`
	RowGap       float64   `json:"rowGap,omitempty"`
	ColumnGap    float64   `json:"columnGap,omitempty"`
	JustifyItems Alignment `json:"justifyItems,omitempty"`
	AlignItems   Alignment `json:"alignItems,omitempty"`
}

// Layout describes how component arranges its children. Display is only
// emitted when DisplayExplicit is set.
type Layout struct {
	Display         DisplayMode `json:"display"`
	DisplayExplicit bool        `json:"displayExplicit,omitempty"`
	Flex            Flex        `json:"flex"`
	Grid            Grid        `json:"grid"`
	MinWidth        Dimension   `json:"minWidth"`
	MinHeight       Dimension   `json:"minHeight"`
	MaxWidth        Dimension   `json:"maxWidth"`
	MaxHeight       Dimension   `json:"maxHeight"`
}

// NewLayout returns layout with defaults.
func NewLayout() *Layout {
	return &Layout{Flex: Flex{Shrink: 1}}
}

type plainLayout Layout

func (l *Layout) UnmarshalJSON(data []byte) error {
	p := plainLayout(*NewLayout())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*l = Layout(p)
	return nil
}

func (l *Layout) DecodeMsgpack(dec *msgpack.Decoder) error {
	p := plainLayout(*NewLayout())
	if err := dec.Decode(&p); err != nil {
		return err
	}
	*l = Layout(p)
	return nil
}
