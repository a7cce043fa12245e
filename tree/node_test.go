package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func labelString(s string) string { return s }

func TestDumpRendersLeafWithoutBranch(t *testing.T) {
	n := NewNode("root")
	dump := n.Dump(labelString)
	assert.Contains(t, dump, "root")
}

func TestDumpRendersNestedChildren(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	grandchild := NewNode("grandchild")
	root.AddChild(child)
	child.AddChild(grandchild)

	dump := root.Dump(labelString)
	assert.Contains(t, dump, "root")
	assert.Contains(t, dump, "child")
	assert.Contains(t, dump, "grandchild")
	// grandchild appears after child, as a nested line below it.
	assert.Less(t, strings.Index(dump, "child"), strings.Index(dump, "grandchild"))
}

func TestDumpOnNilNodeReturnsEmptyString(t *testing.T) {
	var n *Node[string]
	assert.Equal(t, "", n.Dump(labelString))
}
