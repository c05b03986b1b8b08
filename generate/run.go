// Package generate turns Kryon IR documents found in files, directory trees
// and zip archives into static web pages.
package generate

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"kryweb/archive"
	"kryweb/common"
	"kryweb/ir"
	"kryweb/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set name. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	if err := env.LoadLuaVM(); err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process determines input type (directory, archive, path inside archive or
// single document) and processes it.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, tail, "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		format, err := isDocumentFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if format != common.IRFormatUnknown && len(tail) == 0 {
			dir := filepath.Dir(head)
			in := Input{FS: os.DirFS(dir), Dir: ".", MainDir: dir}
			if err := processFile(ctx, head, filepath.Base(head), format, in, dst, log); err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			}
			break
		}
		return fmt.Errorf("input was not recognized as Kryon IR document (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

func processFile(ctx context.Context, name, src string, format common.IRFormat, in Input, dst string, log *zap.Logger) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return processDocument(ctx, file, src, format, in, dst, log)
}

// processDir walks directory tree finding IR documents and archives.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		isArchive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		if !archive.WithExt(documentExts...)(path) {
			return nil
		}
		format, err := isDocumentFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if format == common.IRFormatUnknown {
			log.Debug("Skipping file, not recognized as IR document", zap.String("file", path))
			return nil
		}

		count++

		docDir := filepath.Dir(path)
		in := Input{FS: os.DirFS(docDir), Dir: ".", MainDir: docDir}
		if err := processFile(ctx, path, rel, format, in, dst, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
}

// processArchive processes IR documents under "pathIn" inside archive.
// Documents in archives have no accessible main source, their scripts are
// self-contained, assets are read from the archive.
func processArchive(ctx context.Context, arcPath, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", arcPath))
		}
	}()

	zr, err := zip.OpenReader(arcPath)
	if err != nil {
		return err
	}
	defer zr.Close()

	return archive.Walk(arcPath, pathIn, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		format, err := isDocumentInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", arc), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if format == common.IRFormatUnknown {
			log.Debug("Skipping file, not recognized as IR document", zap.String("archive", arc), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		in := Input{FS: &zr.Reader, Dir: path.Dir(f.FileHeader.Name)}
		src := filepath.Join(pathOut, decodeName(ctx, f, log))
		if err := processDocument(ctx, r, src, format, in, dst, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	}, archive.WithExt(documentExts...))
}

// decodeName returns entry name, forcing configured code page on names not
// flagged as UTF-8.
func decodeName(ctx context.Context, f *zip.File, log *zap.Logger) string {
	name := f.FileHeader.Name
	cp := state.EnvFromContext(ctx).CodePage
	if cp == nil || !f.FileHeader.NonUTF8 {
		return filepath.FromSlash(name)
	}
	if n, err := cp.NewDecoder().String(name); err == nil {
		name = n
	} else {
		n, _ = ianaindex.IANA.Name(cp)
		log.Warn("Unable to convert archive name from specified encoding",
			zap.String("charset", n), zap.String("path", name), zap.Error(err))
	}
	return filepath.FromSlash(name)
}

// processDocument generates page for single IR document. "src" is part of the
// source path relative to the original input, always including file name.
// "dst" is the destination directory.
func processDocument(ctx context.Context, r io.Reader, src string, format common.IRFormat, in Input, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputDir, buildID string

	log.Info("Generation starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Generation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputDir), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("generation panic: %v", r)
		} else if rerr == nil {
			log.Info("Generation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputDir), zap.String("build_id", buildID))
		}
	}(time.Now())

	doc, err := ir.Load(r, format)
	if err != nil {
		return fmt.Errorf("unable to load IR document (%s): %w", src, err)
	}
	in.Doc = doc

	site, err := NewBuilder(log, &env.Cfg.Generator, env.LuaVM).Build(in)
	if err != nil {
		return fmt.Errorf("unable to generate page (%s): %w", src, err)
	}
	buildID = site.BuildID

	if env.Rpt != nil {
		env.Rpt.StoreData(reportName(src, buildID, "ir.txt"), []byte(doc.Dump()))
	}

	outputDir = buildOutputDir(buildValues(doc, src, format, buildID), src, dst, env)
	if err := writeSite(site, outputDir, env.Overwrite, log); err != nil {
		return err
	}

	if env.Rpt != nil {
		if err := env.Rpt.StoreCopy(reportName(src, buildID, "site"), outputDir); err != nil {
			log.Warn("Unable to store generated site in report", zap.Error(err))
		}
	}
	return nil
}

func reportName(src, buildID, suffix string) string {
	name := slug.Make(src)
	if len(name) == 0 {
		name = fallbackName
	}
	return fmt.Sprintf("%s-%s-%s", name, buildID[:min(len(buildID), 8)], suffix)
}

// writeSite puts generated files into directory. Existing page is only
// replaced when overwrite is requested, other files in the directory are left
// alone.
func writeSite(site *Site, dir string, overwrite bool, log *zap.Logger) error {
	page := filepath.Join(dir, pageName)
	if _, err := os.Stat(page); err == nil {
		if !overwrite {
			return fmt.Errorf("output already exists: %s", page)
		}
		log.Warn("Overwriting existing page", zap.String("dir", dir))
	} else if !os.IsNotExist(err) {
		return err
	}

	for _, f := range site.Files {
		name := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
		if err := os.WriteFile(name, f.Data, 0644); err != nil {
			return fmt.Errorf("unable to write %s: %w", f.Name, err)
		}
	}
	return nil
}
