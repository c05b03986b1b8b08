package ir

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"kryweb/common"
)

// Metadata of IR document.
type Metadata struct {
	Title          string `json:"title,omitempty"`
	Language       string `json:"language,omitempty"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
	SourceFile     string `json:"sourceFile,omitempty"`
}

// Document is a loaded IR file.
type Document struct {
	Format   string     `json:"format,omitempty"`
	Metadata Metadata   `json:"metadata"`
	Root     *Component `json:"root"`
	Manifest *Manifest  `json:"reactiveManifest,omitempty"`
}

var ErrNoRoot = errors.New("document has no root component")

// Load decodes IR document and links component tree.
func Load(r io.Reader, format common.IRFormat) (*Document, error) {
	doc := &Document{}
	switch format {
	case common.IRFormatJSON:
		if err := json.NewDecoder(r).Decode(doc); err != nil {
			return nil, fmt.Errorf("unable to decode IR json: %w", err)
		}
	case common.IRFormatMsgpack:
		dec := msgpack.NewDecoder(bufio.NewReader(r))
		// share field names with json serialization
		dec.SetCustomStructTag("json")
		if err := dec.Decode(doc); err != nil {
			return nil, fmt.Errorf("unable to decode IR msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported IR format %s", format)
	}
	if doc.Root == nil {
		return nil, ErrNoRoot
	}
	doc.Root.linkParents()
	return doc, nil
}

// Handlers returns all handler sources of the tree in document order.
func (d *Document) Handlers() []ComponentHandler {
	var out []ComponentHandler
	d.Root.Walk(func(c *Component, _ int) bool {
		for _, ev := range c.Events {
			if ev.Handler == nil || len(ev.Handler.Code) == 0 {
				continue
			}
			out = append(out, ComponentHandler{ComponentID: c.ID, Event: ev.Type, Source: *ev.Handler})
		}
		return true
	})
	return out
}

// ComponentHandler is handler source bound to a component.
type ComponentHandler struct {
	ComponentID uint32
	Event       string
	Source      HandlerSource
}
