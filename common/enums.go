// Package common keeps enums shared between configuration and generation
// packages so that neither has to import the other.
package common

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrInvalidEnum = errors.New("not a valid enum value")

// CSSPlacement specifies where generated stylesheet goes.
type CSSPlacement int

const (
	CSSPlacementSeparate CSSPlacement = iota
	CSSPlacementEmbedded
)

var cssPlacementNames = map[CSSPlacement]string{
	CSSPlacementSeparate: "separate",
	CSSPlacementEmbedded: "embedded",
}

func (p CSSPlacement) String() string {
	if s, ok := cssPlacementNames[p]; ok {
		return s
	}
	return fmt.Sprintf("CSSPlacement(%d)", int(p))
}

func (p CSSPlacement) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *CSSPlacement) UnmarshalText(text []byte) error {
	for k, v := range cssPlacementNames {
		if strings.EqualFold(v, string(text)) {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("%s is %w for CSSPlacement", string(text), ErrInvalidEnum)
}

// IRFormat is serialization of input IR document.
type IRFormat int

const (
	IRFormatUnknown IRFormat = iota
	IRFormatJSON
	IRFormatMsgpack
)

var irFormatNames = map[IRFormat]string{
	IRFormatUnknown: "unknown",
	IRFormatJSON:    "kir",
	IRFormatMsgpack: "kirb",
}

func (f IRFormat) String() string {
	if s, ok := irFormatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("IRFormat(%d)", int(f))
}

func (f IRFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *IRFormat) UnmarshalText(text []byte) error {
	for k, v := range irFormatNames {
		if strings.EqualFold(v, string(text)) {
			*f = k
			return nil
		}
	}
	return fmt.Errorf("%s is %w for IRFormat", string(text), ErrInvalidEnum)
}

// Ext returns file name extension for the format.
func (f IRFormat) Ext() string {
	switch f {
	case IRFormatJSON:
		return ".kir"
	case IRFormatMsgpack:
		return ".kirb"
	default:
		// this should never happen
		panic("unsupported IR format requested")
	}
}

// FormatFromName detects IR format by file name extension.
func FormatFromName(name string) IRFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".kir", ".json":
		return IRFormatJSON
	case ".kirb":
		return IRFormatMsgpack
	}
	return IRFormatUnknown
}
