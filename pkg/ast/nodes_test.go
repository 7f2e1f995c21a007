package ast

import (
	"testing"

	"github.com/mabescript/mabescript/internal/entry"
	"github.com/stretchr/testify/require"
)

func TestBlockAppendAndWalkOrder(t *testing.T) {
	scope := entry.NewScope("root", "", "", nil)
	block := NewBlock(scope, Position{Line: 1})

	a := NewLeaf(entry.NewValue("a", 1, "", scope), false, Position{})
	b := NewLeaf(entry.NewValue("b", 2, "", scope), false, Position{})
	block.Append(a)
	block.Append(b)

	var seen []entry.Entry
	WalkSimple(block, &SimpleVisitor{
		LeafFn: func(n *LeafNode) { seen = append(seen, n.Entry) },
	})

	require.Equal(t, []entry.Entry{a.Entry, b.Entry}, seen)
}

func TestMathUnaryCarriesFn(t *testing.T) {
	scope := entry.NewScope("root", "", "", nil)
	child := NewLeaf(entry.NewValue("x", 4, "", scope), false, Position{})

	node := NewMathUnary("!", child, func(v float64) float64 {
		if v == 0 {
			return 1
		}
		return 0
	}, Position{})
	require.Equal(t, 0.0, node.Fn(4))
	require.Equal(t, 1.0, node.Fn(0))
	require.Equal(t, NodeMathUnary, node.GetType())
}

func TestMathBinaryCarriesFn(t *testing.T) {
	scope := entry.NewScope("root", "", "", nil)
	left := NewLeaf(entry.NewValue("x", 2, "", scope), false, Position{})
	right := NewLeaf(entry.NewValue("y", 3, "", scope), false, Position{})

	node := NewMathBinary("+", left, right, func(a, b float64) float64 { return a + b }, Position{})
	require.Equal(t, 5.0, node.Fn(2, 3))
	require.Equal(t, NodeMathBinary, node.GetType())
}

func TestWalkVisitsAssignChildren(t *testing.T) {
	scope := entry.NewScope("root", "", "", nil)
	lhs := NewLeaf(entry.NewValue("x", 0, "", scope), false, Position{})
	rhs := NewLeaf(entry.NewValue("tmp", 7, "", scope), true, Position{})
	assign := NewAssign(lhs, rhs, Position{})

	count := 0
	Walk(assign, &countingVisitor{count: &count})
	require.Equal(t, 2, count)
}

type countingVisitor struct {
	BaseVisitor
	count *int
}

func (v *countingVisitor) VisitLeaf(n *LeafNode) bool {
	*v.count++
	return true
}
