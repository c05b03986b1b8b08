package bundler

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is read access to module sources. Paths are passed as built
// from configured directories, so testing/fstest.MapFS works with relative
// ones.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

type osFS struct{}

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

const (
	bindingsPrefix = "kryon."
	storageModule  = "storage"
	webSuffix      = "_web"
	luaExt         = ".lua"
)

// Resolver maps module names to source files.
type Resolver struct {
	fsys        FileSystem
	searchPaths []string
	bindings    string
	web         bool
}

// NewResolver creates resolver. Bindings root is where kryon.* modules are
// looked up first, with web variants preferred when web is set.
func NewResolver(fsys FileSystem, searchPaths []string, bindings string, web bool) *Resolver {
	return &Resolver{
		fsys:        fsys,
		searchPaths: searchPaths,
		bindings:    bindings,
		web:         web,
	}
}

// modulePath converts "a.b.c" to "a/b/c.lua".
func modulePath(name string) string {
	return filepath.FromSlash(strings.ReplaceAll(name, ".", "/")) + luaExt
}

// Candidates returns paths tried for module in order.
func (r *Resolver) Candidates(name string) []string {
	if len(name) == 0 || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil
	}
	rel := modulePath(name)
	base := strings.TrimSuffix(rel, luaExt)

	var paths []string
	if len(r.bindings) > 0 {
		if strings.HasPrefix(name, bindingsPrefix) {
			if r.web {
				paths = append(paths, filepath.Join(r.bindings, base+webSuffix+luaExt))
			}
			paths = append(paths, filepath.Join(r.bindings, rel))
		}
		if r.web && name == storageModule {
			paths = append(paths, filepath.Join(r.bindings, storageModule+webSuffix+luaExt))
		}
	}
	for _, dir := range r.searchPaths {
		paths = append(paths, filepath.Join(dir, rel), filepath.Join(dir, base, "init"+luaExt))
	}
	return paths
}

// Resolve returns first existing regular file for module.
func (r *Resolver) Resolve(name string) (string, bool) {
	for _, path := range r.Candidates(name) {
		if fi, err := r.fsys.Stat(path); err == nil && fi.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}
