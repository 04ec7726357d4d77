package svgdoc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/benoitkugler/chemsvg/errors"
)

const water = `<?xml version="1.0" standalone="no"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20"><text x="1">H</text>
<text x="6">2</text><!-- sep --><text x="11">O</text><path d="M0 0L10 10" fill="#000000"/></svg>`

func TestReadStream(t *testing.T) {
	doc, err := ReadStream(strings.NewReader(water))
	require.NoError(t, err)

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "svg", root.Tag)
	assert.Len(t, Children(root, "text"), 3)
	assert.Len(t, Children(root, "path"), 1)
}

func TestReadStreamErrors(t *testing.T) {
	_, err := ReadStream(strings.NewReader(""))
	assert.ErrorIs(t, err, errUtils.ErrInvalidDocument)

	_, err = ReadStream(strings.NewReader("<svg><text></svg>"))
	assert.ErrorIs(t, err, errUtils.ErrParse)
}

func TestReadLatin1(t *testing.T) {
	src := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<svg><title>\xe9</title></svg>")
	doc, err := ReadStream(bytes.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "é", doc.Root().SelectElement("title").Text())
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.svg"))
	assert.ErrorIs(t, err, errUtils.ErrSourceNotFound)
}

func TestWriteStream(t *testing.T) {
	doc, err := ReadStream(strings.NewReader(water))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteStream(&buf, doc))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`), out)
	assert.Equal(t, 1, strings.Count(out, "<?xml"))
	assert.Contains(t, out, "\n  <text x=\"1\">H</text>\n")
	assert.NotContains(t, out, "standalone")
}

func TestWriteStreamMixedContent(t *testing.T) {
	const methyl = `<svg xmlns="http://www.w3.org/2000/svg"><g><text x="1">CH<tspan dy="3">3</tspan></text><path d="M0 0L5 5"/></g></svg>`
	doc, err := ReadStream(strings.NewReader(methyl))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteStream(&buf, doc))
	out := buf.String()
	assert.Contains(t, out, "\n    <text x=\"1\">CH<tspan dy=\"3\">3</tspan></text>\n", out)
	assert.Contains(t, out, "\n    <path d=\"M0 0L5 5\"/>\n", out)

	// a second round trip keeps the label intact
	again, err := ReadStream(&buf)
	require.NoError(t, err)
	var buf2 bytes.Buffer
	require.NoError(t, WriteStream(&buf2, again))
	assert.Equal(t, out, buf2.String())
	assert.Equal(t, "CH", again.FindElement("//text").Text())
}

func TestWriteStreamNoRoot(t *testing.T) {
	err := WriteStream(&bytes.Buffer{}, etree.NewDocument())
	assert.ErrorIs(t, err, errUtils.ErrNoRoot)
}

func TestWriteFileReplaces(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "water.svg")
	require.NoError(t, os.WriteFile(name, []byte("old"), 0o644))

	doc, err := ReadStream(strings.NewReader(water))
	require.NoError(t, err)
	require.NoError(t, WriteFile(name, doc))

	got, err := ReadFile(name)
	require.NoError(t, err)
	assert.Len(t, Children(got.Root(), "text"), 3)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestNextSibling(t *testing.T) {
	doc, err := ReadStream(strings.NewReader(water))
	require.NoError(t, err)
	texts := Children(doc.Root(), "text")

	assert.Same(t, texts[1], NextSibling(texts[0]), "whitespace is skipped")
	assert.Nil(t, NextSibling(texts[1]), "a comment breaks adjacency")
	assert.Equal(t, "path", NextSibling(texts[2]).Tag)
	assert.Nil(t, NextSibling(doc.Root().SelectElement("path")))
}

func TestIsIgnoresPrefix(t *testing.T) {
	doc, err := ReadStream(strings.NewReader(`<svg:svg xmlns:svg="http://www.w3.org/2000/svg"><svg:text>C</svg:text><subtext>C</subtext></svg:svg>`))
	require.NoError(t, err)

	var texts int
	Walk(doc.Root(), func(e *etree.Element) {
		if Is(e, "text") {
			texts++
		}
	})
	assert.Equal(t, 1, texts)
}
