package ir

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

// CSSVariablePrefix marks manifest variables which seed :root custom properties.
const CSSVariablePrefix = "css:"

// Variable is reactive state declared by the application.
type Variable struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value any    `json:"initialValue,omitempty"`
}

// Text returns initial value as text. String values may arrive JSON encoded
// and are unquoted.
func (v Variable) Text() string {
	switch val := v.Value.(type) {
	case nil:
		return ""
	case string:
		if s, err := strconv.Unquote(val); err == nil {
			return s
		}
		return val
	case bool:
		return strconv.FormatBool(val)
	}
	if f, ok := toFloat(v.Value); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v.Value)
}

// Manifest is reactive manifest of the application.
type Manifest struct {
	Variables []Variable `json:"variables,omitempty"`
}

// CSSVariable is a custom property seeded from manifest.
type CSSVariable struct {
	Name  string
	Value string
}

// CSSVariables returns custom properties in natural order of names. Variables
// with empty names or values are skipped.
func (m *Manifest) CSSVariables() []CSSVariable {
	if m == nil {
		return nil
	}
	var vars []CSSVariable
	for _, v := range m.Variables {
		name, ok := strings.CutPrefix(v.Name, CSSVariablePrefix)
		if !ok || len(name) == 0 {
			continue
		}
		value := strings.TrimSpace(v.Text())
		if len(value) == 0 {
			continue
		}
		vars = append(vars, CSSVariable{Name: name, Value: value})
	}
	slices.SortStableFunc(vars, func(a, b CSSVariable) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})
	return vars
}
