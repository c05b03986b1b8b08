package generate

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"kryweb/common"
)

// documentExts are looked for when walking directories and archives.
var documentExts = []string{".kir", ".kirb"}

const sniffSize = 512

func readHead(r io.Reader) ([]byte, error) {
	head := make([]byte, sniffSize)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return head[:n], nil
}

// isArchiveFile reports whether path names zip archive.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// sniffFormat confirms format suggested by name with document content.
func sniffFormat(name string, head []byte) common.IRFormat {
	format := common.FormatFromName(name)
	switch format {
	case common.IRFormatJSON:
		if trimmed := bytes.TrimLeft(bytes.TrimPrefix(head, []byte{0xEF, 0xBB, 0xBF}), " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '{' {
			return format
		}
	case common.IRFormatMsgpack:
		// fixmap, map16 or map32
		if len(head) > 0 && (head[0]&0xf0 == 0x80 || head[0] == 0xde || head[0] == 0xdf) {
			return format
		}
	}
	return common.IRFormatUnknown
}

// isDocumentFile detects IR document format of the file, IRFormatUnknown
// means file is not an IR document.
func isDocumentFile(path string) (common.IRFormat, error) {
	if common.FormatFromName(path) == common.IRFormatUnknown {
		return common.IRFormatUnknown, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return common.IRFormatUnknown, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return common.IRFormatUnknown, fmt.Errorf("unable to read %s: %w", path, err)
	}
	return sniffFormat(path, head), nil
}

// isDocumentInArchive detects IR document format of archive entry.
func isDocumentInArchive(f *zip.File) (common.IRFormat, error) {
	r, err := f.Open()
	if err != nil {
		return common.IRFormatUnknown, err
	}
	defer r.Close()

	head, err := readHead(r)
	if err != nil {
		return common.IRFormatUnknown, fmt.Errorf("unable to read %s: %w", f.Name, err)
	}
	return sniffFormat(f.Name, head), nil
}
