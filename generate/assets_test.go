package generate

import (
	"slices"
	"testing"
	"testing/fstest"

	"kryweb/ir"
)

func TestLocalRef(t *testing.T) {
	tests := []struct {
		ref  string
		want string
		ok   bool
	}{
		{"logo.png", "logo.png", true},
		{"./images/logo.png", "images/logo.png", true},
		{`images\logo.png`, "images/logo.png", true},
		{"images/logo.png?v=2", "images/logo.png", true},
		{"images/../logo.png", "logo.png", true},
		{"https://example.com/logo.png", "", false},
		{"//cdn.example.com/logo.png", "", false},
		{"data:image/png;base64,AAAA", "", false},
		{"/etc/passwd", "", false},
		{"../outside.png", "", false},
		{"#anchor", "", false},
		{"", "", false},
		{".", "", false},
	}
	for _, tt := range tests {
		got, ok := localRef(tt.ref)
		if got != tt.want || ok != tt.ok {
			t.Errorf("localRef(%q) = %q, %v, want %q, %v", tt.ref, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCollectAssets(t *testing.T) {
	img := func(src string) *ir.Component {
		return &ir.Component{Kind: ir.KindImage, Data: map[string]string{"src": src}}
	}
	root := &ir.Component{Kind: ir.KindColumn, Children: []*ir.Component{
		img("b.png"),
		{Kind: ir.KindRow, Children: []*ir.Component{img("a.svg"), img("./b.png")}},
		img("http://example.com/c.png"),
		{Kind: ir.KindLink, Data: map[string]string{"src": "d.png"}},
		img(""),
	}}
	want := []string{"b.png", "a.svg"}
	if got := collectAssets(root); !slices.Equal(got, want) {
		t.Errorf("collectAssets() = %q, want %q", got, want)
	}
}

func TestLoadAsset(t *testing.T) {
	fsys := fstest.MapFS{
		"app/logo.png":  {Data: pngHeader},
		"app/icon.svg":  {Data: []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)},
		"app/fake.svg":  {Data: []byte("not really")},
		"app/notes.png": {Data: []byte("plain text")},
	}
	tests := []struct {
		ref     string
		wantErr bool
	}{
		{"logo.png", false},
		{"icon.svg", false},
		{"fake.svg", true},
		{"notes.png", true},
		{"missing.png", true},
	}
	for _, tt := range tests {
		_, err := loadAsset(fsys, "app", tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("loadAsset(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
		}
	}
}
