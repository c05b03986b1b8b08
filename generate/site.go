package generate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"kryweb/bundler"
	"kryweb/common"
	"kryweb/config"
	"kryweb/css"
	"kryweb/cssgen"
	"kryweb/ir"
	"kryweb/markup"
)

// Names of generated files.
const (
	pageName       = "index.html"
	stylesheetName = "kryon.css"
	runtimeName    = "kryon.js"
	scriptName     = "app.lua"
)

// File is a single generated file, Name is slash separated and relative to
// site directory.
type File struct {
	Name string
	Data []byte
}

// Site is everything generated for a single document.
type Site struct {
	Files   []File
	BuildID string
}

// File returns content of generated file or nil.
func (s *Site) File(name string) []byte {
	for _, f := range s.Files {
		if f.Name == name {
			return f.Data
		}
	}
	return nil
}

func (s *Site) add(name string, data []byte) {
	s.Files = append(s.Files, File{Name: name, Data: data})
}

// Input is a loaded document with access to its surroundings.
type Input struct {
	Doc *ir.Document
	// FS and Dir locate document directory for asset lookup.
	FS  fs.FS
	Dir string
	// MainDir is OS directory document main source is resolved against.
	// Empty means document has no accessible sources.
	MainDir string
}

// Builder turns IR documents into sites. It keeps no per-document state.
type Builder struct {
	log   *zap.Logger
	cfg   *config.GeneratorConfig
	luaVM []byte
}

func NewBuilder(log *zap.Logger, cfg *config.GeneratorConfig, luaVM []byte) *Builder {
	return &Builder{log: log, cfg: cfg, luaVM: luaVM}
}

func documentOptions(cfg *config.CSSConfig) cssgen.DocumentOptions {
	opts := cssgen.DefaultDocumentOptions()
	opts.Header = cfg.Header
	opts.HelperStyles = cfg.HelperStyles
	if len(cfg.Background) > 0 {
		opts.Background = cfg.Background
	}
	if len(cfg.Text) > 0 {
		opts.Text = cfg.Text
	}
	if len(cfg.Border) > 0 {
		opts.Border = cfg.Border
	}
	if len(cfg.BodyFont) > 0 {
		opts.BodyFont = cfg.BodyFont
	}
	return opts
}

// Build generates page, stylesheet, scripts and assets for the document.
func (b *Builder) Build(in Input) (*Site, error) {
	if in.Doc == nil || in.Doc.Root == nil {
		return nil, ir.ErrNoRoot
	}
	doc := in.Doc

	stylesheet, err := b.stylesheet(doc)
	if err != nil {
		return nil, err
	}

	var script string
	scripting := len(b.cfg.HTML.LuaVM) > 0
	if scripting {
		if script, err = b.script(doc, in.MainDir); err != nil {
			return nil, err
		}
	} else {
		b.log.Debug("Lua VM is not configured, page will have no scripting")
	}
	runtime := markup.Runtime()

	opts := markup.DefaultOptions()
	opts.Title = b.cfg.HTML.Title
	if len(doc.Metadata.Title) > 0 {
		opts.Title = doc.Metadata.Title
	}
	opts.Lang = b.pageLang(doc)
	opts.LuaVM = b.cfg.HTML.LuaVM
	if b.cfg.CSS.Placement == common.CSSPlacementEmbedded {
		opts.CSS, opts.Stylesheet = stylesheet, ""
	}
	if b.cfg.Script.Embed {
		opts.Fragment, opts.Script = script, ""
	}
	opts.BuildID = markup.BuildID([]byte(stylesheet), []byte(script), runtime)

	page, err := markup.Render(b.log, doc.Root, opts)
	if err != nil {
		return nil, fmt.Errorf("unable to render page: %w", err)
	}

	site := &Site{BuildID: opts.BuildID}
	site.add(pageName, page)
	if len(opts.Stylesheet) > 0 {
		site.add(stylesheetName, []byte(stylesheet))
	}
	site.add(runtimeName, runtime)
	if scripting && len(opts.Script) > 0 {
		site.add(scriptName, []byte(script))
	}
	if scripting && len(b.luaVM) > 0 {
		if name, ok := localRef(b.cfg.HTML.LuaVM); ok {
			site.add(name, b.luaVM)
		} else {
			b.log.Warn("Lua VM is not referenced locally, not copying it", zap.String("href", b.cfg.HTML.LuaVM))
		}
	}
	if b.cfg.Output.CopyAssets && in.FS != nil {
		b.assets(site, in)
	}
	return site, nil
}

func (b *Builder) stylesheet(doc *ir.Document) (string, error) {
	engine := cssgen.New(b.log, cssgen.WithSizeLimit(b.cfg.CSS.SizeLimit))
	text, err := cssgen.NewGenerator(engine, documentOptions(&b.cfg.CSS)).Generate(doc.Root, doc.Manifest)
	if err != nil {
		return "", fmt.Errorf("unable to generate stylesheet: %w", err)
	}
	if b.cfg.Output.VerifyStylesheet {
		sheet := css.NewParser(b.log).Parse([]byte(text), stylesheetName)
		for _, w := range sheet.Warnings {
			b.log.Warn("Generated stylesheet parsing problem", zap.String("warning", w))
		}
		if err := css.Verify(sheet); err != nil {
			for _, e := range multierr.Errors(err) {
				b.log.Warn("Generated stylesheet verification problem", zap.Error(e))
			}
		}
	}
	return text, nil
}

func (b *Builder) pageLang(doc *ir.Document) string {
	lang := b.cfg.HTML.Lang
	if len(doc.Metadata.Language) == 0 {
		return lang
	}
	tag, err := language.Parse(doc.Metadata.Language)
	if err != nil {
		b.log.Debug("Ignoring document language", zap.String("language", doc.Metadata.Language), zap.Error(err))
		return lang
	}
	return tag.String()
}

// mainSource returns path to document main Lua source or empty string when
// script has to be self-contained.
func (b *Builder) mainSource(doc *ir.Document, mainDir string) string {
	src := doc.Metadata.SourceFile
	switch {
	case b.cfg.Script.SelfContained || len(src) == 0:
		return ""
	case !strings.EqualFold(doc.Metadata.SourceLanguage, "lua") && !strings.EqualFold(filepath.Ext(src), ".lua"):
		b.log.Debug("Main source is not Lua, bundling handlers only",
			zap.String("source", src), zap.String("language", doc.Metadata.SourceLanguage))
		return ""
	}
	if !filepath.IsAbs(src) {
		if len(mainDir) == 0 {
			b.log.Debug("Main source is not accessible, bundling handlers only", zap.String("source", src))
			return ""
		}
		src = filepath.Join(mainDir, src)
	}
	if _, err := os.Stat(src); err != nil {
		b.log.Warn("Main source is not accessible, bundling handlers only", zap.String("source", src), zap.Error(err))
		return ""
	}
	return src
}

// searchPaths makes relative search paths relative to base directory.
func searchPaths(paths []string, base string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) && len(base) > 0 {
			p = filepath.Join(base, p)
		}
		out = append(out, p)
	}
	return out
}

func (b *Builder) script(doc *ir.Document, mainDir string) (string, error) {
	main := b.mainSource(doc, mainDir)
	base := mainDir
	if len(main) > 0 {
		base = filepath.Dir(main)
	}

	bndl, err := bundler.New(b.log, bundler.Options{
		SearchPaths:  searchPaths(b.cfg.Script.SearchPaths, base),
		BindingsRoot: b.cfg.Script.BindingsRoot,
		WebModules:   b.cfg.Script.WebModules,
		Namespace:    b.cfg.Script.Namespace,
		Charset:      b.cfg.Script.Charset,
		WrapTag:      b.cfg.Script.Embed,
	})
	if err != nil {
		return "", fmt.Errorf("unable to prepare bundler: %w", err)
	}

	s := bndl.NewSession()
	if len(main) > 0 {
		if err := s.LoadMain(main); err != nil {
			return "", err
		}
	}
	n := s.AddHandlers(doc.Handlers())

	if err := s.Err(); err != nil {
		var cycle *bundler.CycleError
		b.log.Warn("Script bundled with problems",
			zap.Int("problems", len(multierr.Errors(err))), zap.Bool("cycles", errors.As(err, &cycle)))
	}
	b.log.Debug("Script bundled",
		zap.String("main", main), zap.Int("modules", len(s.Modules())), zap.Int("handlers", n))
	return s.Script(), nil
}

func (b *Builder) assets(site *Site, in Input) {
	for _, ref := range collectAssets(in.Doc.Root) {
		data, err := loadAsset(in.FS, in.Dir, ref)
		if err != nil {
			b.log.Warn("Skipping asset", zap.String("asset", ref), zap.Error(err))
			continue
		}
		if site.File(ref) != nil || isReserved(ref) {
			b.log.Warn("Asset name collides with generated file, skipping", zap.String("asset", ref))
			continue
		}
		site.add(ref, data)
	}
}

func isReserved(name string) bool {
	switch name {
	case pageName, stylesheetName, runtimeName, scriptName:
		return true
	}
	return false
}
