// Package ast defines the AST node types produced by the parser and
// consumed by the evaluator: a small, closed set of eight node kinds
// (spec.md §3/§4.4), each carrying just enough precomputed behavior (a
// closure baked in at parse time) that the evaluator never has to branch on
// operator text again.
package ast

import "github.com/mabescript/mabescript/internal/entry"

// NodeType identifies which of the eight AST node kinds a Node is.
type NodeType string

const (
	NodeLeaf         NodeType = "Leaf"
	NodeBlock        NodeType = "Block"
	NodeMathUnary    NodeType = "MathUnary"
	NodeMathBinary   NodeType = "MathBinary"
	NodeStringBinary NodeType = "StringBinary"
	NodeAssign       NodeType = "Assign"
	NodeCall         NodeType = "Call"
	NodeEvent        NodeType = "Event"
)

// Position is a line/column source location, recorded for diagnostics.
type Position struct {
	Line   int
	Column int
}

// Node is the interface every AST node kind implements.
type Node interface {
	GetType() NodeType
	GetPosition() Position
}

// BaseNode supplies the fields common to every node kind (the idiomatic Go
// substitute for the original's ASTNode base class).
type BaseNode struct {
	Type NodeType
	Pos  Position
}

func (n *BaseNode) GetType() NodeType      { return n.Type }
func (n *BaseNode) GetPosition() Position  { return n.Pos }

// LeafNode holds a single entry pointer plus an ownership bit (set when the
// leaf was constructed from a temporary, e.g. a literal or a parse-error
// placeholder, rather than referring to a named symbol-table entry).
type LeafNode struct {
	BaseNode
	Entry     entry.Entry
	Temporary bool
}

// NewLeaf builds a leaf wrapping e.
func NewLeaf(e entry.Entry, temporary bool, pos Position) *LeafNode {
	return &LeafNode{BaseNode: BaseNode{Type: NodeLeaf, Pos: pos}, Entry: e, Temporary: temporary}
}

// BlockNode holds an ordered sequence of statements sharing a scope.
// Evaluating it runs each child in order, discarding temporaries, and
// always yields null (spec.md §3 "Block").
type BlockNode struct {
	BaseNode
	Scope    *entry.Scope
	Children []Node
}

// NewBlock builds an (initially empty) block associated with scope.
func NewBlock(scope *entry.Scope, pos Position) *BlockNode {
	return &BlockNode{BaseNode: BaseNode{Type: NodeBlock, Pos: pos}, Scope: scope}
}

// Append adds child as the block's next statement.
func (b *BlockNode) Append(child Node) { b.Children = append(b.Children, child) }

// MathUnaryNode applies a double -> double operator to one child
// (spec.md §3 "Math-unary"), e.g. unary minus or logical not.
type MathUnaryNode struct {
	BaseNode
	Op    string
	Child Node
	Fn    func(v float64) float64
}

// NewMathUnary builds a unary math node; fn is chosen by the parser at parse
// time (internal/parser), never re-dispatched on Op at eval.
func NewMathUnary(op string, child Node, fn func(float64) float64, pos Position) *MathUnaryNode {
	return &MathUnaryNode{BaseNode: BaseNode{Type: NodeMathUnary, Pos: pos}, Op: op, Child: child, Fn: fn}
}

// MathBinaryNode applies a double x double -> double operator to two
// children (spec.md §3 "Math-binary"). Built only when the parser has
// determined, from the left operand's statically-known kind, that this
// operation is numeric (grounded on Config::ProcessOperation's
// `in_node1->IsNumeric()` branch).
type MathBinaryNode struct {
	BaseNode
	Op          string
	Left, Right Node
	Fn          func(a, b float64) float64
}

// NewMathBinary builds a binary math node.
func NewMathBinary(op string, left, right Node, fn func(a, b float64) float64, pos Position) *MathBinaryNode {
	return &MathBinaryNode{BaseNode: BaseNode{Type: NodeMathBinary, Pos: pos}, Op: op, Left: left, Right: right, Fn: fn}
}

// StringBinaryNode applies a string, or string/number, operator to two
// children: concatenation, repetition, or lexicographic comparison
// (spec.md §3 "String-binary"). Result carries its own kind (a StringEntry
// for concat/repeat, a ValueEntry for comparisons) via Fn's return.
type StringBinaryNode struct {
	BaseNode
	Op          string
	Left, Right Node
	Fn          func(left, right entry.Entry) entry.Entry
	// Numeric records whether Fn returns a ValueEntry (comparisons) rather
	// than a StringEntry (concat/repeat), so later operators chained onto
	// this node's result pick the right operand family without having to
	// run Fn first.
	Numeric bool
}

// NewStringBinary builds a binary string node.
func NewStringBinary(op string, left, right Node, fn func(left, right entry.Entry) entry.Entry, pos Position) *StringBinaryNode {
	return &StringBinaryNode{BaseNode: BaseNode{Type: NodeStringBinary, Pos: pos}, Op: op, Left: left, Right: right, Fn: fn}
}

// AssignNode copies Right's value into Left's entry on evaluation
// (spec.md §3 "Assign"); Left must resolve to a non-temporary, non-function
// entry.
type AssignNode struct {
	BaseNode
	Left, Right Node
}

// NewAssign builds an assignment node.
func NewAssign(left, right Node, pos Position) *AssignNode {
	return &AssignNode{BaseNode: BaseNode{Type: NodeAssign, Pos: pos}, Left: left, Right: right}
}

// CallNode invokes a function entry with evaluated arguments
// (spec.md §3 "Call"). Callee is evaluated first and must yield a function
// entry; Args are evaluated left to right.
type CallNode struct {
	BaseNode
	Callee Node
	Args   []Node
}

// NewCall builds a function-call node.
func NewCall(callee Node, args []Node, pos Position) *CallNode {
	return &CallNode{BaseNode: BaseNode{Type: NodeCall, Pos: pos}, Callee: callee, Args: args}
}

// EventNode registers a scheduled action with the event scheduler on
// evaluation: Args holds zero to three expressions (first-fire time,
// repeat interval, end time), and Action is the statement to run each time
// the event fires (spec.md §3 "Event", §4.3 "Event parsing").
type EventNode struct {
	BaseNode
	EventName string
	Args      []Node
	Action    Node
	// Schedule is invoked with the evaluated Args and registers Action with
	// the event scheduler under EventName; bound by the parser/engine since
	// the AST package itself has no scheduler dependency (spec.md §4.4:
	// "invokes the registered setup callback").
	Schedule func(args []float64, action Node) error
}

// NewEvent builds an event-declaration node.
func NewEvent(eventName string, args []Node, action Node, schedule func([]float64, Node) error, pos Position) *EventNode {
	return &EventNode{
		BaseNode:  BaseNode{Type: NodeEvent, Pos: pos},
		EventName: eventName,
		Args:      args,
		Action:    action,
		Schedule:  schedule,
	}
}
