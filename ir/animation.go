package ir

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// KeyframeProperty is a single animated value. Color is used by background
// color, Value by everything else.
type KeyframeProperty struct {
	Property AnimProperty `json:"property"`
	Value    float64      `json:"value,omitempty"`
	Color    *Color       `json:"color,omitempty"`
}

// ColorValue returns color of background color property.
func (p KeyframeProperty) ColorValue() RGBA {
	if p.Color == nil {
		return RGBA{}
	}
	return p.Color.RGBA
}

// Keyframe is a set of properties at relative offset 0..1 of the animation.
type Keyframe struct {
	Offset     float64            `json:"offset"`
	Properties []KeyframeProperty `json:"properties"`
}

// Animation is named keyframe animation. Iterations below zero mean infinite.
type Animation struct {
	Name       string     `json:"name"`
	Duration   float64    `json:"duration"`
	Delay      float64    `json:"delay,omitempty"`
	Easing     Easing     `json:"easing"`
	Iterations int        `json:"iterations"`
	Alternate  bool       `json:"alternate,omitempty"`
	Keyframes  []Keyframe `json:"keyframes,omitempty"`
}

// NewAnimation returns animation defaults.
func NewAnimation() *Animation {
	return &Animation{Easing: EaseDefault, Iterations: 1}
}

type plainAnimation Animation

func (a *Animation) UnmarshalJSON(data []byte) error {
	p := plainAnimation(*NewAnimation())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Animation(p)
	return nil
}

func (a *Animation) DecodeMsgpack(dec *msgpack.Decoder) error {
	p := plainAnimation(*NewAnimation())
	if err := dec.Decode(&p); err != nil {
		return err
	}
	*a = Animation(p)
	return nil
}

// Transition animates changes of a single property.
type Transition struct {
	Property AnimProperty `json:"property"`
	Duration float64      `json:"duration"`
	Delay    float64      `json:"delay,omitempty"`
	Easing   Easing       `json:"easing"`
}
