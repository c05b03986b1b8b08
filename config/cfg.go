package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"kryweb/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	CSSConfig struct {
		Placement    common.CSSPlacement `yaml:"placement"`
		Header       bool                `yaml:"header"`
		Background   string              `yaml:"background" validate:"omitempty,hexcolor"`
		Text         string              `yaml:"text" validate:"omitempty,hexcolor"`
		Border       string              `yaml:"border" validate:"omitempty,hexcolor"`
		BodyFont     string              `yaml:"body_font"`
		HelperStyles bool                `yaml:"helper_styles"`
		SizeLimit    int                 `yaml:"size_limit" validate:"gte=0"`
	}

	ScriptConfig struct {
		SearchPaths   []string `yaml:"search_paths" validate:"dive,required"`
		BindingsRoot  string   `yaml:"bindings_root"`
		WebModules    bool     `yaml:"web_modules"`
		Namespace     string   `yaml:"namespace" validate:"omitempty,excludesall=.:"`
		Embed         bool     `yaml:"embed"`
		Charset       string   `yaml:"charset"`
		SelfContained bool     `yaml:"self_contained"`
	}

	HTMLConfig struct {
		Title     string `yaml:"title"`
		Lang      string `yaml:"lang" validate:"omitempty,bcp47_language_tag"`
		LuaVM     string `yaml:"lua_vm"`
		LuaVMPath string `yaml:"lua_vm_path" sanitize:"assure_file_access"`
	}

	OutputConfig struct {
		NameTemplate     string `yaml:"name_template"`
		Transliterate    bool   `yaml:"transliterate"`
		CopyAssets       bool   `yaml:"copy_assets"`
		VerifyStylesheet bool   `yaml:"verify_stylesheet"`
	}

	GeneratorConfig struct {
		CSS    CSSConfig    `yaml:"css"`
		Script ScriptConfig `yaml:"script"`
		HTML   HTMLConfig   `yaml:"html"`
		Output OutputConfig `yaml:"output"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Generator GeneratorConfig `yaml:"generator"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputNameTemplateFieldName TemplateFieldName = "name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields defined above are accepted, so no yaml.Unmarshal here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration expands embedded template to get defaults, then
// superimposes values from the file at path (if any) and validates result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded configuration template.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
