package generate

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"kryweb/common"
	"kryweb/config"
	"kryweb/ir"
)

// Values holds variables available for output name template expansion.
type Values struct {
	Context string
	// Name is input document file name without extension.
	Name           string
	Title          string
	Language       string
	SourceFile     string
	SourceLanguage string
	Format         string
	Components     int
	// BuildID is identity of generated artifacts.
	BuildID string
}

func buildValues(doc *ir.Document, src string, format common.IRFormat, buildID string) Values {
	return Values{
		Name:           strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Title:          doc.Metadata.Title,
		Language:       doc.Metadata.Language,
		SourceFile:     strings.TrimSuffix(filepath.Base(doc.Metadata.SourceFile), filepath.Ext(doc.Metadata.SourceFile)),
		SourceLanguage: doc.Metadata.SourceLanguage,
		Format:         format.String(),
		Components:     doc.Root.Count(),
		BuildID:        buildID,
	}
}

func expandTemplate(values Values, name config.TemplateFieldName, field string) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
