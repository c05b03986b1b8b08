package generate

import (
	"testing"

	"kryweb/common"
	"kryweb/config"
)

func TestBuildValues(t *testing.T) {
	doc := loadDoc(t, counterKIR)
	v := buildValues(doc, "apps/counter.kir", common.IRFormatJSON, "0123")
	want := Values{
		Name:           "counter",
		Title:          "Counter",
		Language:       "de-DE",
		SourceFile:     "main",
		SourceLanguage: "lua",
		Format:         "kir",
		Components:     5,
		BuildID:        "0123",
	}
	if v != want {
		t.Errorf("buildValues() = %+v, want %+v", v, want)
	}
}

func TestExpandTemplate(t *testing.T) {
	values := Values{Name: "counter", Title: "My Counter", Language: "de-DE", Format: "kirb", Components: 5}
	tests := []struct {
		name    string
		field   string
		want    string
		wantErr bool
	}{
		{"plain text", "site", "site", false},
		{"title", "{{ .Title }}", "My Counter", false},
		{"sprig", "{{ .Title | lower | replace \" \" \"-\" }}", "my-counter", false},
		{"subdirectories", "{{ .Language }}/{{ .Name }}-{{ .Format }}", "de-DE/counter-kirb", false},
		{"context", "{{ .Context }}", string(config.OutputNameTemplateFieldName), false},
		{"number", "{{ .Components }}", "5", false},
		{"invalid template", "{{ .Title", "", true},
		{"invalid field", "{{ .Missing }}", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(values, config.OutputNameTemplateFieldName, tt.field)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandTemplate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}
