package markup

import (
	"bytes"
	"io"
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is a piece of markup that knows how to attach itself to a parent in
// an html node tree.
type Node interface {
	Build(parent *html.Node)
}

// Group is an ordered sequence of nodes rendered one after another.
type Group []Node

// Build attaches every non-nil member of g to parent.
func (g Group) Build(parent *html.Node) {
	for _, n := range g {
		build(parent, n)
	}
}

// Frag groups nodes without introducing a wrapping element.
func Frag(nodes ...Node) Node {
	return Group(slices.Clone(nodes))
}

// Text is a run of character data. It is escaped on output.
type Text string

// Build appends the text to parent.
func (t Text) Build(parent *html.Node) {
	parent.AppendChild(&html.Node{Type: html.TextNode, Data: string(t)})
}

// Comment is an HTML comment.
type Comment string

// Build appends the comment to parent.
func (c Comment) Build(parent *html.Node) {
	parent.AppendChild(&html.Node{Type: html.CommentNode, Data: string(c)})
}

// Attr is an attribute of the enclosing element. Attributes are emitted in
// the order they were given.
type Attr struct {
	Key string
	Val string
}

// Build adds the attribute to parent.
func (a Attr) Build(parent *html.Node) {
	parent.Attr = append(parent.Attr, html.Attribute{Key: a.Key, Val: a.Val})
}

// A returns the attribute key="val".
func A(key, val string) Attr { return Attr{Key: key, Val: val} }

// Class returns a class attribute.
func Class(v string) Attr { return Attr{Key: "class", Val: v} }

// ID returns an id attribute.
func ID(v string) Attr { return Attr{Key: "id", Val: v} }

// Href returns an href attribute.
func Href(v string) Attr { return Attr{Key: "href", Val: v} }

// Flag returns a boolean attribute such as crossorigin.
func Flag(key string) Attr { return Attr{Key: key} }

type element struct {
	tag      string
	children []Node
}

// El returns an element with the given tag. Children may mix attributes and
// content nodes; nil children are skipped.
func El(tag string, children ...Node) Node {
	return element{tag: tag, children: slices.Clone(children)}
}

func (e element) Build(parent *html.Node) {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     e.tag,
		DataAtom: atom.Lookup([]byte(e.tag)),
	}
	for _, c := range e.children {
		build(n, c)
	}
	parent.AppendChild(n)
}

// If returns n when cond holds and the absent node otherwise.
func If(cond bool, n Node) Node {
	if !cond {
		return nil
	}
	return n
}

func build(parent *html.Node, n Node) {
	if n == nil {
		return
	}
	n.Build(parent)
}

// Document materializes root into a new html document node preceded by an
// HTML5 doctype.
func Document(root Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	build(doc, root)
	return doc
}

// Render writes root as a complete HTML document to w.
func Render(w io.Writer, root Node) error {
	return html.Render(w, Document(root))
}

// String renders root and returns the document as a string.
func String(root Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}
