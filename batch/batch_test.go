package batch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/benoitkugler/chemsvg/errors"
	"github.com/benoitkugler/chemsvg/palette"
	"github.com/benoitkugler/chemsvg/svgdoc"
	"github.com/benoitkugler/chemsvg/svgtheme"
)

const ethanol = `<svg xmlns="http://www.w3.org/2000/svg"><text>OH</text><path d="M0 0L5 5" stroke="#000"/></svg>`

func newRunner() *Runner {
	return &Runner{
		Recolorer: svgtheme.New(palette.Default(), svgtheme.MatchPrefix),
		Logger:    log.New(io.Discard),
	}
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.svg": ethanol, "A.SVG": ethanol, "c.Svg": ethanol,
		"notes.txt": "x", "svg": "x",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.svg"), 0o755))
	writeFiles(t, filepath.Join(dir, "nested.svg"), map[string]string{"deep.svg": ethanol})

	files, err := List(dir)
	require.NoError(t, err)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	assert.Equal(t, []string{"A.SVG", "b.svg", "c.Svg"}, names)

	_, err = List(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, errUtils.ErrSourceNotFound)
}

func TestRunToDestination(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out", "themed")
	writeFiles(t, src, map[string]string{"ethanol.svg": ethanol, "readme.md": "#"})

	sum, err := newRunner().Run(context.Background(), src, dst)
	require.NoError(t, err)
	assert.Equal(t, dst, sum.Output)
	assert.Equal(t, []string{filepath.Join(src, "ethanol.svg")}, sum.Converted)

	out, err := os.ReadFile(filepath.Join(dst, "ethanol.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `fill="var(--o)"`)
	assert.Contains(t, string(out), `stroke="var(--bonds)"`)

	orig, err := os.ReadFile(filepath.Join(src, "ethanol.svg"))
	require.NoError(t, err)
	assert.Equal(t, ethanol, string(orig), "source is left alone")
	_, err = os.Stat(filepath.Join(dst, "readme.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunInPlaceTwice(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"ethanol.svg": ethanol})

	r := newRunner()
	_, err := r.Run(context.Background(), dir, "")
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(dir, "ethanol.svg"))
	require.NoError(t, err)

	_, err = r.Run(context.Background(), dir, dir)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dir, "ethanol.svg"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, 1, strings.Count(string(second), "<style>"))
}

func TestRunStopsOnFirstFailure(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		"a.svg": ethanol, "b.svg": "<svg><text></svg>", "c.svg": ethanol,
	})
	dst := t.TempDir()

	sum, err := newRunner().Run(context.Background(), src, dst)
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrParse)
	assert.ErrorIs(t, err, errUtils.ErrConvert)

	require.Len(t, sum.Failed, 1)
	assert.Equal(t, filepath.Join(src, "b.svg"), sum.Failed[0].Path)
	assert.Equal(t, []string{filepath.Join(src, "a.svg")}, sum.Converted)
	assert.Equal(t, []string{filepath.Join(src, "c.svg")}, sum.Skipped)
}

func TestRunContinueOnError(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		"a.svg": "", "b.svg": "<svg><text></svg>", "c.svg": ethanol, "d.svg": ethanol,
	})

	r := newRunner()
	r.ContinueOnError = true
	r.Jobs = 3
	sum, err := r.Run(context.Background(), src, t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrInvalidDocument)
	assert.ErrorIs(t, err, errUtils.ErrParse)

	assert.Len(t, sum.Failed, 2)
	assert.Len(t, sum.Converted, 2)
	assert.Empty(t, sum.Skipped)
}

func TestRunMissingSource(t *testing.T) {
	_, err := newRunner().Run(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())
	assert.ErrorIs(t, err, errUtils.ErrSourceNotFound)
}

func TestRunDestinationIsAFile(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{"a.svg": ethanol})
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := newRunner().Run(context.Background(), src, filepath.Join(blocker, "out"))
	assert.ErrorIs(t, err, errUtils.ErrDestination)
}

func TestConvertFileStats(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"in.svg": ethanol})

	st, err := newRunner().ConvertFile(context.Background(), filepath.Join(dir, "in.svg"), filepath.Join(dir, "out.svg"))
	require.NoError(t, err)
	assert.Equal(t, svgtheme.Stats{Labels: 1, Paths: 1}, st)

	doc, err := svgdoc.ReadFile(filepath.Join(dir, "out.svg"))
	require.NoError(t, err)
	assert.Len(t, svgdoc.Children(doc.Root(), "style"), 1)
}

func TestConvertFileCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"in.svg": ethanol})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().ConvertFile(ctx, filepath.Join(dir, "in.svg"), filepath.Join(dir, "out.svg"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "out.svg"))
}
