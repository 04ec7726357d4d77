package svgdoc

import "github.com/beevik/etree"

// Is reports whether e has the given local name, whatever its namespace
// prefix. "svg:text" and "text" are both text labels; "subtext" is not.
func Is(e *etree.Element, local string) bool {
	return e != nil && e.Tag == local
}

// Walk calls fn for e and all its descendant elements, in document order.
func Walk(e *etree.Element, fn func(*etree.Element)) {
	fn(e)
	for _, c := range e.Child {
		if ce, ok := c.(*etree.Element); ok {
			Walk(ce, fn)
		}
	}
}

// NextSibling returns the element immediately following e under the same
// parent. Character data between the two is skipped; any other token
// (comment, processing instruction) breaks the adjacency and yields nil.
func NextSibling(e *etree.Element) *etree.Element {
	parent := e.Parent()
	if parent == nil {
		return nil
	}
	for _, c := range parent.Child[e.Index()+1:] {
		switch t := c.(type) {
		case *etree.CharData:
			continue
		case *etree.Element:
			return t
		default:
			return nil
		}
	}
	return nil
}

// Children returns the direct child elements of e with the given local name.
func Children(e *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if Is(c, local) {
			out = append(out, c)
		}
	}
	return out
}
