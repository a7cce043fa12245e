// Package dom implements the DOM tree data model: Document,
// Element and Text nodes linked by parent/first-child/last-child/
// prev-sibling/next-sibling pointers, produced by package html/parse and
// consumed by package style/cascade and style/counters.
//
// Nodes are owned by their parent: Remove detaches a node from its
// previous parent atomically (single assignment of the sibling/child
// pointers), and the whole tree is dropped together with its Document's
// Arena.
package dom

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/foliocraft/htmlbook/arena"
	"github.com/foliocraft/htmlbook/intern"
)

func tracer() tracing.Trace {
	return tracing.Select("htmlbook.dom")
}

// NodeType discriminates the five node kinds DOM nodes may be.
type NodeType uint8

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
	DoctypeNode
)

// Namespace identifies which vocabulary an Element's tag belongs to.
type Namespace uint8

const (
	HTML Namespace = iota
	SVG
	MathML
)

// Attribute is an (interned name, arena value) pair. Attribute lists
// preserve insertion order; re-inserting a name that is already present
// is a no-op (first wins), matching HTML parsing rules.
type Attribute struct {
	Name      intern.Name
	Namespace Namespace // attribute namespace, usually HTML (none)
	Value     arena.String
}

// Node is one of {Document, Element, Text, Comment, Doctype}.
//
// Every node carries owning-document, parent and sibling links. The
// invariant holds by construction: for every non-root
// node x with parent p, x appears exactly once in the
// firstChild…lastChild list and the sibling pointers are mutually
// consistent — AppendChild/InsertBefore/Remove are the only mutators and
// each maintains both directions of the links atomically.
type Node struct {
	Type NodeType
	Doc  *Document

	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	PrevSibling *Node
	NextSibling *Node

	// Element fields.
	Tag       intern.Name
	NS        Namespace
	Attrs     []Attribute
	cachedID  *intern.Name
	cachedCls []intern.Name

	// Text/Comment/Doctype fields.
	Text arena.String

	// Doctype fields.
	DoctypePublic, DoctypeSystem arena.String
	ForceQuirks                  bool
}

// Document is the root container of a DOM tree and owns its Arena.
type Document struct {
	Arena     *arena.Arena
	Root      *Node // the Document node itself
	QuirksMode QuirksMode
	BaseURL    string
}

// QuirksMode reflects the DOCTYPE sniffing result.
type QuirksMode uint8

const (
	NoQuirks QuirksMode = iota
	Quirks
	LimitedQuirks
)

// NewDocument creates an empty document with a fresh arena.
func NewDocument(maxArenaBytes int64) *Document {
	d := &Document{Arena: arena.New(maxArenaBytes)}
	root := &Node{Type: DocumentNode, Doc: d}
	d.Root = root
	return d
}

// NewElement creates a detached element node in doc's arena-backed
// namespace. Attribute values must already be arena strings (callers are
// the tokenizer/tree-builder, which allocate through doc.Arena).
func (d *Document) NewElement(tag intern.Name, ns Namespace) *Node {
	return &Node{Type: ElementNode, Doc: d, Tag: tag, NS: ns}
}

// NewText creates a detached text node.
func (d *Document) NewText(s arena.String) *Node {
	return &Node{Type: TextNode, Doc: d, Text: s}
}

// NewComment creates a detached comment node.
func (d *Document) NewComment(s arena.String) *Node {
	return &Node{Type: CommentNode, Doc: d, Text: s}
}

// AppendChild appends ch as the last child of n, detaching ch from any
// previous parent first.
func (n *Node) AppendChild(ch *Node) {
	if ch == nil {
		return
	}
	ch.Remove()
	ch.Parent = n
	ch.PrevSibling = n.LastChild
	ch.NextSibling = nil
	if n.LastChild != nil {
		n.LastChild.NextSibling = ch
	} else {
		n.FirstChild = ch
	}
	n.LastChild = ch
}

// InsertBefore inserts ch immediately before ref among n's children. If
// ref is nil, behaves like AppendChild.
func (n *Node) InsertBefore(ch, ref *Node) {
	if ch == nil {
		return
	}
	if ref == nil {
		n.AppendChild(ch)
		return
	}
	ch.Remove()
	ch.Parent = n
	ch.NextSibling = ref
	ch.PrevSibling = ref.PrevSibling
	if ref.PrevSibling != nil {
		ref.PrevSibling.NextSibling = ch
	} else {
		n.FirstChild = ch
	}
	ref.PrevSibling = ch
}

// Remove detaches n from its parent, if any, repairing sibling links.
func (n *Node) Remove() {
	p := n.Parent
	if p == nil {
		return
	}
	if n.PrevSibling != nil {
		n.PrevSibling.NextSibling = n.NextSibling
	} else {
		p.FirstChild = n.NextSibling
	}
	if n.NextSibling != nil {
		n.NextSibling.PrevSibling = n.PrevSibling
	} else {
		p.LastChild = n.PrevSibling
	}
	n.Parent, n.PrevSibling, n.NextSibling = nil, nil, nil
}

// ReparentChildren moves all of old's children to be children of n,
// appended in order, used by the adoption agency algorithm to relocate a
// furthest block's children onto its clone.
func (n *Node) ReparentChildren(old *Node) {
	for ch := old.FirstChild; ch != nil; {
		next := ch.NextSibling
		ch.Remove()
		n.AppendChild(ch)
		ch = next
	}
}

// Attr returns the value of the first attribute named name, if present.
func (n *Node) Attr(name intern.Name) (arena.String, bool) {
	for _, a := range n.Attrs {
		if a.Name.Equal(name) {
			return a.Value, true
		}
	}
	return nil, false
}

// SetAttr appends an attribute, unless one with the same name is already
// present (first wins, per HTML parsing rules).
func (n *Node) SetAttr(name intern.Name, value arena.String) {
	for _, a := range n.Attrs {
		if a.Name.Equal(name) {
			return
		}
	}
	n.Attrs = append(n.Attrs, Attribute{Name: name, Value: value})
	n.invalidateCaches(name)
}

// MergeAttrsFirstWins merges attrs into n, keeping n's existing value for
// any name already present. Used when a repeated <html>/<body> start tag
// is encountered.
func (n *Node) MergeAttrsFirstWins(attrs []Attribute) {
	for _, a := range attrs {
		n.SetAttr(a.Name, a.Value)
	}
}

func (n *Node) invalidateCaches(name intern.Name) {
	if name.Equal(intern.AttrID) {
		n.cachedID = nil
	}
	if name.Equal(intern.AttrClass) {
		n.cachedCls = nil
	}
}

// ID returns the element's id attribute value, cached after first lookup.
func (n *Node) ID() (intern.Name, bool) {
	if n.cachedID != nil {
		return *n.cachedID, !n.cachedID.IsZero()
	}
	v, ok := n.Attr(intern.AttrID)
	var id intern.Name
	if ok {
		id = intern.Intern(v.String())
	}
	n.cachedID = &id
	return id, ok
}

// ClassList returns the element's space-separated class attribute value
// as a slice of interned class names, cached after first lookup.
func (n *Node) ClassList() []intern.Name {
	if n.cachedCls != nil {
		return n.cachedCls
	}
	v, ok := n.Attr(intern.AttrClass)
	if !ok {
		n.cachedCls = []intern.Name{}
		return n.cachedCls
	}
	var out []intern.Name
	field := v.String()
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			out = append(out, intern.Intern(field[start:end]))
		}
		start = -1
	}
	for i, r := range field {
		if r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r' {
			flush(i)
		} else if start < 0 {
			start = i
		}
	}
	flush(len(field))
	n.cachedCls = out
	return out
}

// HasClass reports whether the element carries class name c.
func (n *Node) HasClass(c intern.Name) bool {
	for _, cl := range n.ClassList() {
		if cl.Equal(c) {
			return true
		}
	}
	return false
}

// IsElement reports whether n is an element with the given tag.
func (n *Node) IsElement(tag intern.Name) bool {
	return n.Type == ElementNode && n.Tag.Equal(tag)
}

// TextContent concatenates the text of n and all of its descendants,
// depth first.
func (n *Node) TextContent() string {
	var b []byte
	var walk func(*Node)
	walk = func(x *Node) {
		if x.Type == TextNode {
			b = append(b, x.Text...)
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return string(b)
}
