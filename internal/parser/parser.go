// Package parser implements the recursive-descent, precedence-climbing
// parser described in spec.md §4.3: it turns a token stream into the
// eight-kind AST straight against a live scope tree, so declarations,
// lookups, and type resolution all happen during parsing rather than in a
// separate binding pass.
package parser

import (
	"fmt"

	"github.com/mabescript/mabescript/internal/entry"
	"github.com/mabescript/mabescript/internal/lexer"
	"github.com/mabescript/mabescript/internal/typeregistry"
	"github.com/mabescript/mabescript/pkg/ast"
)

// Error is a single parse diagnostic (spec.md §7 "Parse error").
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Config bundles the dependencies the parser needs from its host
// controller: the type registry for declarations, and the event hooks for
// `@Name(...)` statements (spec.md §4.3 "Event parsing").
type Config struct {
	Types *typeregistry.Registry

	// IsEventName reports whether name has already been registered as an
	// event type with the controller; parsing an unknown event name is a
	// parse error.
	IsEventName func(name string) bool

	// ScheduleEvent is invoked when an event node evaluates: it adapts the
	// evaluated first/repeat/max args and the action node into a call
	// against the controller's scheduler.
	ScheduleEvent func(eventName string, args []float64, action ast.Node) error

	// Tolerant, when true, recovers from each parse error by skipping to
	// the next statement boundary. When false, each error is recorded and
	// the parser skips a single token and keeps going; either way Parse
	// returns every error collected.
	Tolerant bool
}

// Parser holds the mutable state of one parse pass.
type Parser struct {
	tokens     []lexer.Token
	pos        int
	precedence map[string]int
	cfg        Config
	errors     []*Error
}

// precedenceTable is the fixed operator table from spec.md §6: lower
// numbers bind *tighter*. "(" binds tightest (always consumed first, for
// function calls); "=" binds loosest (consumed only at the outermost
// level). ParseExpression only consumes an operator while its value is
// strictly less than the caller's limit, and recurses into the right
// operand with that operator's own value as the new limit — so only
// strictly tighter-binding operators get folded into the operand.
func precedenceTable() map[string]int {
	table := map[string]int{}
	prec := 0
	table["("] = prec
	prec++
	table["**"] = prec
	prec++
	table["*"], table["/"], table["%"] = prec, prec, prec
	prec++
	table["+"], table["-"] = prec, prec
	prec++
	table["<"], table["<="], table[">"], table[">="] = prec, prec, prec, prec
	prec++
	table["=="], table["!="] = prec, prec
	prec++
	table["&&"] = prec
	prec++
	table["||"] = prec
	prec++
	table["="] = prec
	return table
}

// New builds a parser over tokens.
func New(tokens []lexer.Token, cfg Config) *Parser {
	return &Parser{tokens: tokens, precedence: precedenceTable(), cfg: cfg}
}

// Parse parses the full token stream as a statement list into rootScope,
// returning the resulting block and any accumulated errors.
func Parse(tokens []lexer.Token, rootScope *entry.Scope, cfg Config) (*ast.BlockNode, []*Error) {
	p := New(tokens, cfg)
	block := p.parseStatementList(rootScope)
	return block, p.errors
}

// ParseStatement parses tokens as exactly one statement against scope,
// the entry point the controller's Eval uses (spec.md §4.7 "eval(text)":
// "parse a single expression/statement").
func ParseStatement(tokens []lexer.Token, scope *entry.Scope, cfg Config) (ast.Node, []*Error) {
	p := New(tokens, cfg)
	node := p.parseStatement(scope)
	return node, p.errors
}
