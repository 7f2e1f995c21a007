// Package evaluator walks the AST produced by internal/parser and computes
// entry values, exactly dispatching on the eight node kinds as described in
// spec.md §4.4.
package evaluator

import (
	"fmt"

	"github.com/mabescript/mabescript/internal/entry"
	"github.com/mabescript/mabescript/pkg/ast"
)

// Evaluator runs AST nodes to completion; it holds no state of its own
// (spec.md §5: "every node's evaluate runs to completion... no suspension
// points"), so one instance can be shared across an entire controller.
type Evaluator struct{}

// New builds an Evaluator.
func New() *Evaluator { return &Evaluator{} }

// Eval dispatches node to the matching evaluation rule and returns the
// resulting entry (nil for nodes that produce no value, i.e. Block and
// Event).
func (e *Evaluator) Eval(node ast.Node) entry.Entry {
	switch n := node.(type) {
	case nil:
		return nil

	case *ast.LeafNode:
		return n.Entry

	case *ast.BlockNode:
		for _, child := range n.Children {
			e.Eval(child) // result (if any) is a discarded temporary
		}
		return nil

	case *ast.MathUnaryNode:
		v := e.Eval(n.Child)
		result := entry.NewValue("", n.Fn(v.AsNumber()), "Temporary value", nil)
		result.SetTemporary(true)
		return result

	case *ast.MathBinaryNode:
		left := e.Eval(n.Left)
		right := e.Eval(n.Right)
		result := entry.NewValue("", n.Fn(left.AsNumber(), right.AsNumber()), "Temporary value", nil)
		result.SetTemporary(true)
		return result

	case *ast.StringBinaryNode:
		left := e.Eval(n.Left)
		right := e.Eval(n.Right)
		result := n.Fn(left, right)
		result.SetTemporary(true)
		return result

	case *ast.AssignNode:
		return e.evalAssign(n)

	case *ast.CallNode:
		return e.evalCall(n)

	case *ast.EventNode:
		e.evalEvent(n)
		return nil

	default:
		return entry.NewError(fmt.Sprintf("cannot evaluate unknown node kind %T", node))
	}
}

func (e *Evaluator) evalAssign(n *ast.AssignNode) entry.Entry {
	lhs := e.Eval(n.Left)
	rhs := e.Eval(n.Right)

	if lhs == nil || lhs.IsFunction() || lhs.IsError() {
		return entry.NewError(fmt.Sprintf("cannot assign into '%s'", describeTarget(lhs)))
	}
	if err := lhs.CopyValueFrom(rhs); err != nil {
		return entry.NewError(err.Error())
	}
	return lhs
}

func describeTarget(e entry.Entry) string {
	if e == nil {
		return "<null>"
	}
	return e.Name()
}

func (e *Evaluator) evalCall(n *ast.CallNode) entry.Entry {
	callee := e.Eval(n.Callee)
	if callee == nil || !callee.IsFunction() {
		name := describeTarget(callee)
		return entry.NewError(fmt.Sprintf("cannot call a function on non-function '%s'", name))
	}

	args := make([]entry.Entry, len(n.Args))
	for i, argNode := range n.Args {
		args[i] = e.Eval(argNode)
	}

	result := callee.Call(args)
	if result != nil {
		result.SetTemporary(true)
	}
	return result
}

func (e *Evaluator) evalEvent(n *ast.EventNode) {
	vals := make([]float64, len(n.Args))
	for i, argNode := range n.Args {
		vals[i] = e.Eval(argNode).AsNumber()
	}
	if n.Schedule == nil {
		return
	}
	if err := n.Schedule(vals, n.Action); err != nil {
		// Scheduling failures (e.g. an unregistered event type slipping past
		// the parser) have no symbol-table entry to report into; they're
		// surfaced the same way a call error would be, via an error entry
		// that's immediately discarded as a temporary (spec.md §7).
		errEntry := entry.NewError(err.Error())
		errEntry.SetTemporary(true)
	}
}
