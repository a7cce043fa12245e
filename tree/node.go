// Package tree implements a small generic tree of nodes carrying an
// arbitrary payload, used wherever this module needs to wrap a domain
// object (a styled element, a generated box) in tree structure without
// re-deriving parent/child bookkeeping each time.
//
// Documents are parsed, styled and box-constructed synchronously on a
// single goroutine, so no locking or channel machinery is needed here:
// Walk is a plain recursive traversal.
package tree

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Node is the base type trees in this module are built of.
type Node[T any] struct {
	parent   *Node[T]
	children []*Node[T]
	Payload  T
}

// NewNode creates a new tree node with a given payload.
func NewNode[T any](payload T) *Node[T] {
	return &Node[T]{Payload: payload}
}

func (n *Node[T]) String() string {
	return fmt.Sprintf("(Node #ch=%d %v)", len(n.children), n.Payload)
}

// AddChild appends a new child, linking it to n as parent. Returns n to
// allow chaining.
func (n *Node[T]) AddChild(ch *Node[T]) *Node[T] {
	if ch != nil {
		ch.parent = n
		n.children = append(n.children, ch)
	}
	return n
}

// Parent returns the parent node, or nil for the root.
func (n *Node[T]) Parent() *Node[T] {
	if n == nil {
		return nil
	}
	return n.parent
}

// ChildCount returns the number of children.
func (n *Node[T]) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Child returns the i-th child, or (nil, false) if out of range.
func (n *Node[T]) Child(i int) (*Node[T], bool) {
	if n == nil || i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.children[i], true
}

// Children returns the slice of children (not a copy; callers must not
// mutate it).
func (n *Node[T]) Children() []*Node[T] {
	if n == nil {
		return nil
	}
	return n.children
}

// Dump renders the subtree rooted at n as an indented ASCII tree,
// labeling each node with label(payload). Intended for debug logging of
// a styled or box tree, not for parsing back.
func (n *Node[T]) Dump(label func(T) string) string {
	if n == nil {
		return ""
	}
	p := treeprint.New()
	dumpNode(p, n, label)
	return p.String()
}

func dumpNode[T any](p treeprint.Tree, n *Node[T], label func(T) string) {
	if len(n.children) == 0 {
		p.AddNode(label(n.Payload))
		return
	}
	branch := p.AddBranch(label(n.Payload))
	for _, ch := range n.children {
		dumpNode(branch, ch, label)
	}
}

// Walk visits n and every descendant, depth first, pre-order, calling fn
// for each. Walk stops early and returns the first non-nil error from fn.
func Walk[T any](n *Node[T], fn func(*Node[T]) error) error {
	if n == nil {
		return nil
	}
	if err := fn(n); err != nil {
		return err
	}
	for _, ch := range n.children {
		if err := Walk(ch, fn); err != nil {
			return err
		}
	}
	return nil
}
