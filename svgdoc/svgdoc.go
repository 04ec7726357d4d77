// Loads SVG files into a mutable element tree and writes them back.
// Documents are held as github.com/beevik/etree trees so that node
// order, attributes and unknown elements survive a round trip.
package svgdoc

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/cockroachdb/errors"
	"golang.org/x/net/html/charset"

	errUtils "github.com/benoitkugler/chemsvg/errors"
)

// Declaration is written at the top of every serialized document.
const Declaration = `version="1.0" encoding="UTF-8"`

// IndentSpaces is the indentation width of serialized documents.
const IndentSpaces = 2

// ReadStream parses the document from the given io.Reader.
// Legacy encodings declared in the XML prolog are decoded to UTF-8.
func ReadStream(stream io.Reader) (*etree.Document, error) {
	b, err := io.ReadAll(stream)
	if err != nil {
		return nil, errors.Wrap(err, "read svg")
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, errors.Wrap(errUtils.ErrInvalidDocument, "empty input")
	}
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse svg"), errUtils.ErrParse)
	}
	if doc.Root() == nil {
		return nil, errors.Wrap(errUtils.ErrInvalidDocument, "no root element")
	}
	return doc, nil
}

// ReadFile reads the document from the named file.
func ReadFile(name string) (*etree.Document, error) {
	fin, err := os.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Mark(errors.Wrapf(err, "open %s", name), errUtils.ErrSourceNotFound)
		}
		return nil, errors.Wrapf(err, "open %s", name)
	}
	defer fin.Close()
	doc, err := ReadStream(fin)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return doc, nil
}

// WriteStream serializes doc with a fresh UTF-8 XML declaration and
// two-space indentation. doc is modified accordingly.
func WriteStream(w io.Writer, doc *etree.Document) error {
	if doc.Root() == nil {
		return errUtils.ErrNoRoot
	}
	setDeclaration(doc)
	indent(doc)
	if _, err := doc.WriteTo(w); err != nil {
		return errors.Mark(errors.Wrap(err, "serialize svg"), errUtils.ErrWrite)
	}
	return nil
}

// WriteFile serializes doc to name. The content goes to a temporary
// file of the same directory first, which is then renamed over name.
func WriteFile(name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if err := WriteStream(&buf, doc); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "write %s", name), errUtils.ErrWrite)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed
	if _, err = tmp.Write(buf.Bytes()); err == nil {
		err = tmp.Chmod(0o644)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), name)
	}
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "write %s", name), errUtils.ErrWrite)
	}
	return nil
}

// indent pretty-prints doc. Elements mixing text and child elements,
// such as <text>CH<tspan>3</tspan></text>, are kept verbatim: any
// whitespace added between their tokens would be rendered.
func indent(doc *etree.Document) {
	held := make(map[*etree.Element][]etree.Token)
	var hold func(e *etree.Element)
	hold = func(e *etree.Element) {
		if isMixed(e) {
			held[e] = e.Child
			e.Child = nil
			return
		}
		for _, c := range e.ChildElements() {
			hold(c)
		}
	}
	hold(doc.Root())
	doc.Indent(IndentSpaces)
	for e, child := range held {
		e.Child = child
	}
}

// isMixed reports whether e has both non blank text and other tokens.
func isMixed(e *etree.Element) bool {
	var text, markup bool
	for _, c := range e.Child {
		if cd, ok := c.(*etree.CharData); ok {
			text = text || !cd.IsWhitespace()
		} else {
			markup = true
		}
	}
	return text && markup
}

// setDeclaration removes any XML declaration and inserts the canonical
// one as the first token of the document.
func setDeclaration(doc *etree.Document) {
	for i := len(doc.Child) - 1; i >= 0; i-- {
		if pi, ok := doc.Child[i].(*etree.ProcInst); ok && pi.Target == "xml" {
			doc.RemoveChildAt(i)
		}
	}
	doc.InsertChildAt(0, etree.NewProcInst("xml", Declaration))
}
