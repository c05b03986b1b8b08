// Package bundler assembles Lua scripting payload of generated page: required
// modules, application code and dispatch table of component event handlers.
package bundler

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"kryweb/ir"
)

// Options control module resolution and script layout.
type Options struct {
	// SearchPaths are directories modules are looked up in, in order.
	SearchPaths []string
	// BindingsRoot is directory with kryon.* runtime bindings.
	BindingsRoot string
	// WebModules prefers *_web.lua variants of bindings.
	WebModules bool
	// Namespace is Lua table application functions are exported to. Empty
	// disables export and handler call rewriting.
	Namespace string
	// Charset of module sources, UTF-8 when empty.
	Charset string
	// WrapTag wraps script into <script type="application/lua"> element.
	WrapTag bool
}

// builtins are modules provided by browser Lua VM.
var builtins = map[string]struct{}{
	"js": {}, "ffi": {}, "string": {}, "table": {}, "math": {}, "os": {},
	"io": {}, "bit": {}, "coroutine": {}, "utf8": {}, "debug": {},
}

// Bundler produces bundling sessions sharing configuration. It keeps no state
// between sessions and may be shared.
type Bundler struct {
	log       *zap.Logger
	opts      Options
	fsys      FileSystem
	extractor Extractor
	enc       encoding.Encoding
	resolver  *Resolver
}

type Option func(*Bundler)

func WithFileSystem(fsys FileSystem) Option {
	return func(b *Bundler) {
		b.fsys = fsys
	}
}

func WithExtractor(e Extractor) Option {
	return func(b *Bundler) {
		b.extractor = e
	}
}

func New(log *zap.Logger, opts Options, options ...Option) (*Bundler, error) {
	b := &Bundler{
		log:       log.Named("bundler"),
		opts:      opts,
		fsys:      osFS{},
		extractor: Lexical{},
	}
	for _, opt := range options {
		opt(b)
	}

	if len(opts.Namespace) > 0 && !validName(opts.Namespace) {
		return nil, fmt.Errorf("namespace %q is not a valid Lua name", opts.Namespace)
	}
	if len(opts.Charset) > 0 {
		enc, err := ianaindex.IANA.Encoding(opts.Charset)
		if err != nil {
			return nil, fmt.Errorf("unknown module source charset %q: %w", opts.Charset, err)
		}
		if enc == nil {
			return nil, fmt.Errorf("unsupported module source charset %q", opts.Charset)
		}
		b.enc = enc
	}
	b.resolver = NewResolver(b.fsys, opts.SearchPaths, opts.BindingsRoot, opts.WebModules)
	return b, nil
}

func validName(s string) bool {
	toks := tokenize(s)
	return len(toks) == 1 && isIdent(toks[0]) && toks[0].text == s
}

// Resolver returns module resolver of the bundler.
func (b *Bundler) Resolver() *Resolver {
	return b.resolver
}

func (b *Bundler) read(path string) (string, error) {
	data, err := b.fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	if b.enc != nil {
		if data, err = b.enc.NewDecoder().Bytes(data); err != nil {
			return "", fmt.Errorf("unable to decode %s: %w", path, err)
		}
	}
	return string(data), nil
}

type state int

const (
	unvisited state = iota
	inProgress
	done
)

// Module is a bundled module. Module sharing file with one bundled earlier
// carries no source and refers to it with AliasOf.
type Module struct {
	Name    string
	Path    string
	Source  string
	AliasOf string

	state state
}

// CycleError reports require chain leading back to module being bundled.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "require cycle: " + strings.Join(e.Chain, " -> ")
}

// ResolveError reports module which could not be found.
type ResolveError struct {
	Module string
	From   string
}

func (e *ResolveError) Error() string {
	if len(e.From) == 0 {
		return fmt.Sprintf("unable to resolve module %q", e.Module)
	}
	return fmt.Sprintf("unable to resolve module %q required by %s", e.Module, e.From)
}

var ErrMainSet = errors.New("main source already set")

// Session is a single bundling. Modules, handlers and namespace live as long
// as the session.
type Session struct {
	b   *Bundler
	log *zap.Logger

	modules []*Module
	byName  map[string]*Module
	byPath  map[string]*Module
	stack   []string
	errs    error

	main     string
	hasMain  bool
	ns       Namespace
	handlers *Registry
}

func (b *Bundler) NewSession() *Session {
	return &Session{
		b:        b,
		log:      b.log,
		byName:   make(map[string]*Module),
		byPath:   make(map[string]*Module),
		ns:       Namespace{Table: b.opts.Namespace},
		handlers: NewRegistry(b.log),
	}
}

// Require bundles module with everything it requires. Problems are logged and
// collected, offending require is dropped.
func (s *Session) Require(name string) {
	s.require(name, "")
}

func (s *Session) require(name, from string) {
	if _, ok := builtins[name]; ok {
		return
	}
	if m, ok := s.byName[name]; ok {
		if m.state == inProgress {
			s.cycle(name, name)
		}
		return
	}

	path, ok := s.b.resolver.Resolve(name)
	if !ok {
		s.log.Warn("Unable to resolve module, dropping require", zap.String("module", name), zap.String("from", from))
		s.errs = multierr.Append(s.errs, &ResolveError{Module: name, From: from})
		return
	}
	if other, ok := s.byPath[path]; ok {
		if other.state == inProgress {
			s.cycle(other.Name, name)
			return
		}
		m := &Module{Name: name, Path: path, AliasOf: other.Name, state: done}
		s.byName[name] = m
		s.modules = append(s.modules, m)
		s.log.Debug("Module aliased", zap.String("module", name), zap.String("alias_of", other.Name))
		return
	}

	src, err := s.b.read(path)
	if err != nil {
		s.log.Warn("Unable to read module, dropping require", zap.String("module", name), zap.String("path", path), zap.Error(err))
		s.errs = multierr.Append(s.errs, fmt.Errorf("unable to read module %q: %w", name, err))
		return
	}

	m := &Module{Name: name, Path: path, Source: src, state: inProgress}
	s.byName[name] = m
	s.byPath[path] = m
	s.modules = append(s.modules, m)
	s.stack = append(s.stack, name)
	s.log.Debug("Bundling module", zap.String("module", name), zap.String("path", path))

	for _, dep := range s.b.extractor.Requires(src) {
		s.require(dep, fmt.Sprintf("%q", name))
	}

	s.stack = s.stack[:len(s.stack)-1]
	m.state = done
}

// cycle records require of target (reached as name) while target is still
// being bundled.
func (s *Session) cycle(target, name string) {
	chain := []string{name}
	if i := slices.Index(s.stack, target); i >= 0 {
		chain = append(slices.Clone(s.stack[i:]), name)
	}
	err := &CycleError{Chain: chain}
	s.log.Warn("Require cycle, dropping require", zap.Strings("chain", chain))
	s.errs = multierr.Append(s.errs, err)
}

// SetMain sets application code. Its trailing chunk level return is removed,
// required modules are bundled and chunk level function names are captured
// for namespace export.
func (s *Session) SetMain(src string) error {
	if s.hasMain {
		return ErrMainSet
	}
	s.main = s.b.extractor.StripReturn(src)
	s.hasMain = true
	if len(s.ns.Table) > 0 {
		s.ns.Names = s.b.extractor.FunctionNames(s.main)
	}
	for _, dep := range s.b.extractor.Requires(s.main) {
		s.require(dep, "main")
	}
	return nil
}

// LoadMain reads application code from file and sets it.
func (s *Session) LoadMain(path string) error {
	src, err := s.b.read(path)
	if err != nil {
		return fmt.Errorf("unable to read main source: %w", err)
	}
	return s.SetMain(src)
}

// AddHandler registers component handler and bundles modules its code
// requires.
func (s *Session) AddHandler(h Handler) bool {
	if !s.handlers.Add(h) {
		return false
	}
	for _, dep := range s.b.extractor.Requires(h.Code) {
		s.require(dep, fmt.Sprintf("handler of component %d", h.ComponentID))
	}
	return true
}

// AddHandlers registers handlers collected from IR document and returns number
// of accepted ones.
func (s *Session) AddHandlers(handlers []ir.ComponentHandler) int {
	n := 0
	for _, ch := range handlers {
		if s.AddHandler(Handler{
			ComponentID:  ch.ComponentID,
			Code:         ch.Source.Code,
			UsesClosures: ch.Source.UsesClosures,
			ClosureVars:  ch.Source.ClosureVars,
		}) {
			n++
		}
	}
	return n
}

// Modules returns bundled modules in order of discovery.
func (s *Session) Modules() []*Module {
	return slices.Clone(s.modules)
}

// Namespace returns namespace captured from main source.
func (s *Session) Namespace() Namespace {
	return s.ns
}

// Handlers returns handler registry of the session.
func (s *Session) Handlers() *Registry {
	return s.handlers
}

// Err returns all problems met during bundling: *ResolveError, *CycleError
// and read errors.
func (s *Session) Err() error {
	return s.errs
}
