package jsast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalk_SlotOrder(t *testing.T) {
	t.Parallel()

	param := &Node{Type: "param"}
	body := &Node{Type: "body", Kind: KindBlock, Children: []*Node{{Type: "stmt"}}}
	value := &Node{Type: "value"}
	child := &Node{Type: "child"}
	root := &Node{
		Type:     "root",
		Params:   []*Node{param},
		Body:     body,
		Value:    value,
		Children: []*Node{child},
	}

	var order []string
	WalkNode(root, func(n *Node) { order = append(order, n.Type) })
	assert.Equal(t, []string{"root", "param", "body", "stmt", "value", "child"}, order)
}

func TestWalk_SequenceNotVisited(t *testing.T) {
	t.Parallel()

	a := &Node{Type: "a"}
	b := &Node{Type: "b"}

	visits := 0
	Walk([]*Node{a, nil, b}, func(*Node) { visits++ })
	assert.Equal(t, 2, visits)

	WalkNode(nil, func(*Node) { visits++ })
	assert.Equal(t, 2, visits)
}

func TestSpan(t *testing.T) {
	t.Parallel()

	outer := Span{Start: 10, End: 50}
	assert.True(t, outer.Contains(Span{Start: 10, End: 50}))
	assert.True(t, outer.Contains(Span{Start: 20, End: 30}))
	assert.False(t, outer.Contains(Span{Start: 5, End: 30}))
	assert.False(t, outer.Contains(Span{Start: 40, End: 51}))
	assert.Equal(t, 40, outer.Len())
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "arrow_function", KindArrowFunction.String())
	assert.Equal(t, "unknown", Kind(99).String())
	assert.True(t, KindMethodDefinition.IsFunction())
	assert.False(t, KindClassProperty.IsFunction())
	assert.False(t, (*Node)(nil).HasBlockBody())
}
