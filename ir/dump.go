package ir

import (
	"strconv"

	"kryweb/utils/debug"
)

// Dump returns human readable presentation of the document for debug report.
func (d *Document) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Attrs(0, "Document", "format", d.Format, "title", d.Metadata.Title, "source", d.Metadata.SourceLanguage)
	if vars := d.Manifest.CSSVariables(); len(vars) > 0 {
		tw.Line(0, "CSS variables")
		for _, v := range vars {
			tw.Line(1, "--%s: %s", v.Name, v.Value)
		}
	}
	d.Root.Walk(func(c *Component, depth int) bool {
		dumpComponent(tw, c, depth)
		return true
	})
	return tw.String()
}

func dumpComponent(tw *debug.TreeWriter, c *Component, depth int) {
	kv := []string{"id", strconv.FormatUint(uint64(c.ID), 10), "tag", c.Tag, "class", c.Class}
	if c.SelectorType != SelectorNone {
		kv = append(kv, "selector", c.SelectorType.String())
	}
	if c.Style != nil {
		kv = append(kv, "style", "yes")
	}
	if c.Layout != nil {
		kv = append(kv, "layout", c.Layout.Display.String())
	}
	tw.Attrs(depth, c.Kind.String(), kv...)
	if len(c.Text) > 0 {
		tw.TextBlock(depth+1, "text", c.Text)
	}
	for _, ev := range c.Events {
		if ev.Handler == nil {
			tw.Line(depth+1, "on %s", ev.Type)
			continue
		}
		tw.TextBlock(depth+1, "on "+ev.Type, ev.Handler.Code)
	}
}
