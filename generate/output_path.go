package generate

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"kryweb/config"
	"kryweb/state"
)

const fallbackName = "kryon-app"

// buildOutputDir returns directory generated page goes to. Default name is
// input file name without extension, placed under source subdirectories
// unless NoDirs is set. User template may produce several path segments, every
// segment is cleaned and, if requested, transliterated.
func buildOutputDir(values Values, src, dst string, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	defaultDir := cleanPathSegment(values.Name, env)

	tmpl := env.Cfg.Generator.Output.NameTemplate
	if tmpl == "" {
		return filepath.Join(outDir, defaultDir)
	}

	expanded, err := expandTemplate(values, config.OutputNameTemplateFieldName, tmpl)
	if err != nil {
		env.Log.Warn("Unable to prepare output directory name", zap.Error(err))
		return filepath.Join(outDir, defaultDir)
	}
	segments := splitPath(filepath.FromSlash(strings.TrimSpace(expanded)))
	if len(segments) == 0 {
		return filepath.Join(outDir, defaultDir)
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, segment := range segments {
		parts = append(parts, cleanPathSegment(segment, env))
	}
	return filepath.Join(parts...)
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

// splitPath returns path segments, dropping empty ones and "." / "..".
func splitPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); ; head, tail = filepath.Split(head) {
		if tail != "" && tail != "." && tail != ".." {
			segments = slices.Insert(segments, 0, tail)
		}
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" || head == path {
			break
		}
		path = head
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Generator.Output.Transliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment, fallbackName)
}
