// Package batch recolors every SVG file of a directory, either into a
// destination directory or in place.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"

	errUtils "github.com/benoitkugler/chemsvg/errors"
	"github.com/benoitkugler/chemsvg/svgdoc"
	"github.com/benoitkugler/chemsvg/svgtheme"
)

// Extension is matched case-insensitively against file names.
const Extension = ".svg"

// IsSVG reports whether name carries the SVG extension.
func IsSVG(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Extension)
}

// List returns the SVG files directly inside dir, sorted by name.
// Subdirectories are not visited.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Mark(errors.Wrapf(err, "list %s", dir), errUtils.ErrSourceNotFound)
		}
		return nil, errors.Wrapf(err, "list %s", dir)
	}
	files := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return filepath.Join(dir, e.Name()), !e.IsDir() && IsSVG(e.Name())
	})
	sort.Strings(files)
	return files, nil
}

// FileError is the failure of one file of a batch.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// Summary reports the outcome of Run.
type Summary struct {
	Output    string      // destination directory
	Converted []string    // source files written successfully
	Skipped   []string    // source files not attempted after an abort
	Failed    []FileError // per-file failures
}

// Runner converts batches of files. The zero value is not usable: a
// Recolorer is required.
type Runner struct {
	Recolorer *svgtheme.Recolorer
	// Jobs bounds the number of files converted concurrently.
	// Values below 1 mean 1, which processes files in name order.
	Jobs int
	// ContinueOnError keeps converting the remaining files after a
	// failure. When false the first failure aborts the batch.
	ContinueOnError bool
	Logger          *log.Logger
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

// ConvertFile recolors src and writes the result to dst, which may be
// src itself. Nothing is written once ctx is done.
func (r *Runner) ConvertFile(ctx context.Context, src, dst string) (svgtheme.Stats, error) {
	if err := ctx.Err(); err != nil {
		return svgtheme.Stats{}, err
	}
	doc, err := svgdoc.ReadFile(src)
	if err != nil {
		return svgtheme.Stats{}, err
	}
	st, err := r.Recolorer.Apply(doc)
	if err != nil {
		return st, errors.Wrapf(err, "recolor %s", src)
	}
	if err := ctx.Err(); err != nil {
		return st, err
	}
	if err := svgdoc.WriteFile(dst, doc); err != nil {
		return st, err
	}
	r.logger().Debug("converted", "file", src, "output", dst,
		"labels", st.Labels, "subscripts", st.Subscripts, "polymers", st.Polymers,
		"paths", st.Paths, "styles_replaced", st.StylesRemoved)
	return st, nil
}

// Run converts every SVG file of src. An empty dst, or dst equal to src,
// overwrites the files in place; otherwise dst is created when missing
// and receives files of the same base name.
//
// The returned error joins every file failure. With ContinueOnError
// unset, the first failure cancels the files not yet started, which are
// listed in Summary.Skipped.
func (r *Runner) Run(ctx context.Context, src, dst string) (Summary, error) {
	if dst == "" {
		dst = src
	}
	sum := Summary{Output: dst}

	files, err := List(src)
	if err != nil {
		return sum, err
	}
	if !sameDir(src, dst) {
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return sum, errors.Mark(errors.Wrapf(err, "create %s", dst), errUtils.ErrDestination)
		}
	}
	log := r.logger()
	log.Info("converting", "files", len(files), "source", src, "output", dst, "jobs", max(r.Jobs, 1))

	var mu sync.Mutex
	p := pool.New().WithContext(ctx).WithMaxGoroutines(max(r.Jobs, 1))
	if !r.ContinueOnError {
		p = p.WithCancelOnError()
	}
	for _, file := range files {
		p.Go(func(ctx context.Context) error {
			out := filepath.Join(dst, filepath.Base(file))
			_, err := r.ConvertFile(ctx, file, out)

			mu.Lock()
			defer mu.Unlock()
			if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				// cancelled before the file was written
				sum.Skipped = append(sum.Skipped, file)
				return nil
			}
			if err != nil {
				log.Error("conversion failed", "file", file, "error", err)
				fe := FileError{Path: file, Err: errors.Mark(err, errUtils.ErrConvert)}
				sum.Failed = append(sum.Failed, fe)
				return &fe
			}
			sum.Converted = append(sum.Converted, file)
			return nil
		})
	}
	waitErr := p.Wait()

	sort.Strings(sum.Converted)
	sort.Strings(sum.Skipped)
	sort.Slice(sum.Failed, func(i, j int) bool { return sum.Failed[i].Path < sum.Failed[j].Path })
	if waitErr == nil && len(sum.Skipped) > 0 && ctx.Err() != nil {
		// cancelled from outside before every file ran
		return sum, ctx.Err()
	}
	if len(sum.Failed) == 0 {
		return sum, nil
	}
	errs := make([]error, len(sum.Failed))
	for i := range sum.Failed {
		errs[i] = &sum.Failed[i]
	}
	return sum, errors.Join(errs...)
}

func sameDir(a, b string) bool {
	if a == b {
		return true
	}
	ia, errA := os.Stat(a)
	ib, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(ia, ib)
}
