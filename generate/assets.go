package generate

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/h2non/filetype"

	"kryweb/ir"
)

// collectAssets returns local resources referenced by the tree in document
// order, each once. External URLs, data URIs and references leaving document
// directory are skipped.
func collectAssets(root *ir.Component) []string {
	var (
		refs []string
		seen = make(map[string]struct{})
	)
	root.Walk(func(c *ir.Component, _ int) bool {
		if c.Kind != ir.KindImage {
			return true
		}
		ref, ok := localRef(c.DataValue("src"))
		if !ok {
			return true
		}
		if _, dup := seen[ref]; !dup {
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
		return true
	})
	return refs
}

// localRef normalizes reference to slash separated path relative to document
// directory.
func localRef(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "//") || strings.HasPrefix(ref, "#") {
		return "", false
	}
	if i := strings.IndexByte(ref, ':'); i > 0 && !strings.ContainsAny(ref[:i], "/.") {
		// http:, https:, data:, blob: and alike
		return "", false
	}
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	ref = path.Clean(strings.TrimPrefix(strings.ReplaceAll(ref, `\`, "/"), "./"))
	if !fs.ValidPath(ref) || ref == "." {
		return "", false
	}
	return ref, true
}

// loadAsset reads referenced image and checks it is one.
func loadAsset(fsys fs.FS, dir, ref string) ([]byte, error) {
	name := path.Join(dir, ref)
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("asset %s is outside of the source", ref)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	if filetype.IsImage(data) || isSVG(ref, data) {
		return data, nil
	}
	kind, _ := filetype.Match(data)
	return nil, fmt.Errorf("asset %s is not an image (%s)", ref, kind.MIME.Value)
}

func isSVG(name string, data []byte) bool {
	if !strings.EqualFold(path.Ext(name), ".svg") {
		return false
	}
	head := data[:min(len(data), sniffSize)]
	return bytes.Contains(head, []byte("<svg"))
}
