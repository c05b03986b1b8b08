package generate

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"kryweb/common"
)

func writeFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func zipBytes(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for name, data := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("Write(%s) error = %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestIsArchiveFile(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"real archive", writeFile(t, filepath.Join(dir, "apps.zip"), zipBytes(t, map[string][]byte{"a.kir": []byte("{}")})), true},
		{"upper case extension", writeFile(t, filepath.Join(dir, "APPS.ZIP"), zipBytes(t, map[string][]byte{"a.kir": []byte("{}")})), true},
		{"zip extension, other content", writeFile(t, filepath.Join(dir, "fake.zip"), []byte("not a zip")), false},
		{"archive without extension", writeFile(t, filepath.Join(dir, "apps.bin"), zipBytes(t, map[string][]byte{"a.kir": []byte("{}")})), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := isArchiveFile(tt.path)
			if err != nil {
				t.Fatalf("isArchiveFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("isArchiveFile() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := isArchiveFile(filepath.Join(dir, "missing.zip")); err == nil {
		t.Error("isArchiveFile() error = nil for missing file")
	}
}

func TestSniffFormat(t *testing.T) {
	packed, err := msgpack.Marshal(map[string]any{"root": map[string]any{"id": 1}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	tests := []struct {
		name string
		file string
		head []byte
		want common.IRFormat
	}{
		{"json", "app.kir", []byte(`{"root":{}}`), common.IRFormatJSON},
		{"json with bom and spaces", "app.kir", []byte("\xEF\xBB\xBF\n  {"), common.IRFormatJSON},
		{"json extension", "app.json", []byte(`{}`), common.IRFormatJSON},
		{"json array", "app.kir", []byte(`[1]`), common.IRFormatUnknown},
		{"msgpack", "app.kirb", packed, common.IRFormatMsgpack},
		{"msgpack not a map", "app.kirb", []byte{0x93, 1, 2, 3}, common.IRFormatUnknown},
		{"empty", "app.kir", nil, common.IRFormatUnknown},
		{"other extension", "app.txt", []byte(`{}`), common.IRFormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sniffFormat(tt.file, tt.head); got != tt.want {
				t.Errorf("sniffFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDocumentFile(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, filepath.Join(dir, "app.kir"), []byte(counterKIR))
	if got, err := isDocumentFile(doc); err != nil || got != common.IRFormatJSON {
		t.Errorf("isDocumentFile() = %v, %v, want kir", got, err)
	}
	txt := writeFile(t, filepath.Join(dir, "notes.txt"), []byte("{}"))
	if got, err := isDocumentFile(txt); err != nil || got != common.IRFormatUnknown {
		t.Errorf("isDocumentFile() = %v, %v, want unknown", got, err)
	}
}
