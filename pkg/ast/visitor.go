package ast

// Visitor is the interface for visiting AST nodes. Return true from a
// Visit method to recurse into the node's children, false to stop there.
type Visitor interface {
	VisitLeaf(node *LeafNode) bool
	VisitBlock(node *BlockNode) bool
	VisitMathUnary(node *MathUnaryNode) bool
	VisitMathBinary(node *MathBinaryNode) bool
	VisitStringBinary(node *StringBinaryNode) bool
	VisitAssign(node *AssignNode) bool
	VisitCall(node *CallNode) bool
	VisitEvent(node *EventNode) bool
}

// BaseVisitor provides default (recurse-everywhere) implementations so
// callers only need to override the methods they care about.
type BaseVisitor struct{}

func (v *BaseVisitor) VisitLeaf(node *LeafNode) bool                 { return true }
func (v *BaseVisitor) VisitBlock(node *BlockNode) bool                { return true }
func (v *BaseVisitor) VisitMathUnary(node *MathUnaryNode) bool        { return true }
func (v *BaseVisitor) VisitMathBinary(node *MathBinaryNode) bool      { return true }
func (v *BaseVisitor) VisitStringBinary(node *StringBinaryNode) bool  { return true }
func (v *BaseVisitor) VisitAssign(node *AssignNode) bool              { return true }
func (v *BaseVisitor) VisitCall(node *CallNode) bool                  { return true }
func (v *BaseVisitor) VisitEvent(node *EventNode) bool                { return true }

// Walk traverses node and its children in evaluation order, dispatching to
// visitor, for observation-only passes over a tree; the evaluator has its
// own switch (see
// internal/evaluator) rather than going through Walk, since it needs to
// return a value from each node rather than just observe it.
func Walk(node Node, visitor Visitor) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *LeafNode:
		visitor.VisitLeaf(n)
	case *BlockNode:
		if visitor.VisitBlock(n) {
			for _, child := range n.Children {
				Walk(child, visitor)
			}
		}
	case *MathUnaryNode:
		if visitor.VisitMathUnary(n) {
			Walk(n.Child, visitor)
		}
	case *MathBinaryNode:
		if visitor.VisitMathBinary(n) {
			Walk(n.Left, visitor)
			Walk(n.Right, visitor)
		}
	case *StringBinaryNode:
		if visitor.VisitStringBinary(n) {
			Walk(n.Left, visitor)
			Walk(n.Right, visitor)
		}
	case *AssignNode:
		if visitor.VisitAssign(n) {
			Walk(n.Left, visitor)
			Walk(n.Right, visitor)
		}
	case *CallNode:
		if visitor.VisitCall(n) {
			Walk(n.Callee, visitor)
			for _, arg := range n.Args {
				Walk(arg, visitor)
			}
		}
	case *EventNode:
		if visitor.VisitEvent(n) {
			for _, arg := range n.Args {
				Walk(arg, visitor)
			}
			Walk(n.Action, visitor)
		}
	}
}

// SimpleVisitor lets callers supply only the callbacks they need, as plain
// funcs rather than implementing the full Visitor interface.
type SimpleVisitor struct {
	LeafFn         func(*LeafNode)
	BlockFn        func(*BlockNode)
	MathUnaryFn    func(*MathUnaryNode)
	MathBinaryFn   func(*MathBinaryNode)
	StringBinaryFn func(*StringBinaryNode)
	AssignFn       func(*AssignNode)
	CallFn         func(*CallNode)
	EventFn        func(*EventNode)
}

// WalkSimple traverses node and its children, invoking whichever callback
// in visitor matches each node's kind.
func WalkSimple(node Node, visitor *SimpleVisitor) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *LeafNode:
		if visitor.LeafFn != nil {
			visitor.LeafFn(n)
		}
	case *BlockNode:
		if visitor.BlockFn != nil {
			visitor.BlockFn(n)
		}
		for _, child := range n.Children {
			WalkSimple(child, visitor)
		}
	case *MathUnaryNode:
		if visitor.MathUnaryFn != nil {
			visitor.MathUnaryFn(n)
		}
		WalkSimple(n.Child, visitor)
	case *MathBinaryNode:
		if visitor.MathBinaryFn != nil {
			visitor.MathBinaryFn(n)
		}
		WalkSimple(n.Left, visitor)
		WalkSimple(n.Right, visitor)
	case *StringBinaryNode:
		if visitor.StringBinaryFn != nil {
			visitor.StringBinaryFn(n)
		}
		WalkSimple(n.Left, visitor)
		WalkSimple(n.Right, visitor)
	case *AssignNode:
		if visitor.AssignFn != nil {
			visitor.AssignFn(n)
		}
		WalkSimple(n.Left, visitor)
		WalkSimple(n.Right, visitor)
	case *CallNode:
		if visitor.CallFn != nil {
			visitor.CallFn(n)
		}
		WalkSimple(n.Callee, visitor)
		for _, arg := range n.Args {
			WalkSimple(arg, visitor)
		}
	case *EventNode:
		if visitor.EventFn != nil {
			visitor.EventFn(n)
		}
		for _, arg := range n.Args {
			WalkSimple(arg, visitor)
		}
		WalkSimple(n.Action, visitor)
	}
}
