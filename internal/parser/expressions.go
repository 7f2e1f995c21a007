package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mabescript/mabescript/internal/entry"
	"github.com/mabescript/mabescript/internal/lexer"
	"github.com/mabescript/mabescript/pkg/ast"
)

// topLevelPrecedence is passed as the initial limit to parseExpression: no
// real operator precedence reaches this high, so the first call always
// consumes the whole expression (grounded on Config::ParseExpression's
// default prec_limit=1000).
const topLevelPrecedence = 1 << 30

func (p *Parser) pos() ast.Position {
	tok := p.peek()
	return ast.Position{Line: tok.Line, Column: tok.Column}
}

// currentOperatorSymbol returns the text of the current token if it is a
// SYMBOL, so the expression loop can look it up in the precedence table.
func (p *Parser) currentOperatorSymbol() (string, bool) {
	tok := p.peek()
	if tok.Type != lexer.SYMBOL {
		return "", false
	}
	return tok.Value, true
}

// parseExpression is the precedence-climbing core described in spec.md
// §4.3: repeatedly fold in operators whose precedence is tighter than
// precLimit, recursing into the right operand with that operator's own
// precedence as the new limit.
func (p *Parser) parseExpression(scope *entry.Scope, precLimit int) ast.Node {
	cur := p.parseValue(scope)

	for {
		sym, isSym := p.currentOperatorSymbol()
		if !isSym {
			break
		}
		prec, known := p.precedence[sym]
		if !known || prec >= precLimit {
			break
		}
		startPos := p.pos()
		p.advance()

		if sym == "(" {
			var args []ast.Node
			for !p.checkSymbol(")") && !p.isAtEnd() {
				args = append(args, p.parseExpression(scope, topLevelPrecedence))
				if p.checkSymbol(",") {
					p.advance()
					continue
				}
				break
			}
			p.expectSymbol(")", "to end function call")
			cur = ast.NewCall(cur, args, startPos)
			continue
		}

		rhs := p.parseExpression(scope, prec)
		cur = p.buildOperation(sym, cur, rhs, startPos)
	}

	return cur
}

// parseValue parses a single operand: a variable reference, a literal, a
// parenthesized sub-expression, or a unary operator applied to one of
// those (grounded on Config::ParseValue).
func (p *Parser) parseValue(scope *entry.Scope) ast.Node {
	tok := p.peek()
	pos := p.pos()

	switch {
	case tok.Type == lexer.IDENTIFIER || tok.Type == lexer.DOTS:
		return p.parseVar(scope, true)

	case tok.Type == lexer.NUMBER:
		p.advance()
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			p.addError(fmt.Sprintf("malformed number literal %q", tok.Value))
		}
		return ast.NewLeaf(entry.NewValue("", val, "Temporary value", nil), true, pos)

	case tok.Type == lexer.CHAR:
		p.advance()
		var v float64
		if r := []rune(tok.Value); len(r) > 0 {
			v = float64(r[0])
		}
		return ast.NewLeaf(entry.NewValue("", v, "Temporary value", nil), true, pos)

	case tok.Type == lexer.STRING:
		p.advance()
		return ast.NewLeaf(entry.NewString("", tok.Value, "Temporary string", nil), true, pos)

	case p.checkSymbol("-"):
		p.advance()
		child := p.parseValue(scope)
		return ast.NewMathUnary("-", child, func(v float64) float64 { return -v }, pos)

	case p.checkSymbol("!"):
		p.advance()
		child := p.parseValue(scope)
		return ast.NewMathUnary("!", child, func(v float64) float64 {
			if v == 0 {
				return 1
			}
			return 0
		}, pos)

	case p.checkSymbol("("):
		p.advance()
		inner := p.parseExpression(scope, topLevelPrecedence)
		p.expectSymbol(")", "to close a parenthesized expression")
		return inner

	default:
		p.addError(fmt.Sprintf("expected a value, found '%s'", tok.Value))
		if !p.cfg.Tolerant {
			p.advance()
		}
		return ast.NewLeaf(entry.NewError(fmt.Sprintf("expected a value, found '%s'", tok.Value)), true, pos)
	}
}

// parseVar resolves an identifier, optionally preceded by a run of dots
// restricting/ascending scope, into a leaf referring to the named entry
// (grounded on Config::ParseVar). A trailing dot continues the path into a
// nested scope (`a.b.c`).
func (p *Parser) parseVar(scope *entry.Scope, scanScopes bool) ast.Node {
	cur := scope
	pos := p.pos()

	if p.check(lexer.DOTS) {
		dotsTok := p.advance()
		numDots := len(dotsTok.Value)
		scanScopes = false
		for numDots > 1 {
			if cur.ParentScope() == nil {
				p.addError("too many dots; goes beyond outermost scope")
				break
			}
			cur = cur.ParentScope()
			numDots--
		}
	}

	nameTok := p.expectIdentifier("as a variable")
	name := nameTok.Value

	found := cur.Lookup(name, scanScopes)
	if found == nil {
		p.addError(fmt.Sprintf("'%s' does not exist as a parameter, variable, or type", name))
		return ast.NewLeaf(entry.NewError(fmt.Sprintf("unknown identifier '%s'", name)), true, pos)
	}

	if p.check(lexer.DOTS) {
		childScope, ok := found.(*entry.Scope)
		if !ok {
			p.addError(fmt.Sprintf("'%s' is not a scope; cannot descend further", name))
			return ast.NewLeaf(entry.NewError(fmt.Sprintf("'%s' is not a scope", name)), true, pos)
		}
		return p.parseVar(childScope, false)
	}

	return ast.NewLeaf(found, false, pos)
}

// nodeIsNumeric reports the statically-known kind of node's result, used
// by buildOperation to pick the math or string operator family
// (grounded on Config::ProcessOperation's `in_node1->IsNumeric()` check).
// An assignment takes the kind of its left-hand side. Calls default to
// numeric: return type isn't known until evaluation, and the built-in math
// library is numeric-returning (EVAL, which returns a string, is still
// treated as numeric here).
func nodeIsNumeric(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.LeafNode:
		return v.Entry.IsNumeric()
	case *ast.MathUnaryNode, *ast.MathBinaryNode:
		return true
	case *ast.StringBinaryNode:
		return v.Numeric
	case *ast.AssignNode:
		return nodeIsNumeric(v.Left)
	default:
		return true
	}
}

// buildOperation dispatches an operator symbol against its operands,
// choosing assign, math, or string node construction (grounded on
// Config::ProcessOperation).
func (p *Parser) buildOperation(symbol string, lhs, rhs ast.Node, pos ast.Position) ast.Node {
	if symbol == "=" {
		return ast.NewAssign(lhs, rhs, pos)
	}

	if nodeIsNumeric(lhs) {
		fn, ok := numericOps[symbol]
		if !ok {
			p.addError(fmt.Sprintf("operator '%s' is not valid between numbers", symbol))
			return ast.NewLeaf(entry.NewError("invalid numeric operator"), true, pos)
		}
		return ast.NewMathBinary(symbol, lhs, rhs, fn, pos)
	}

	switch symbol {
	case "+":
		node := ast.NewStringBinary(symbol, lhs, rhs, func(l, r entry.Entry) entry.Entry {
			return entry.NewString("", l.AsString()+r.AsString(), "Temporary string", nil)
		}, pos)
		node.Numeric = false
		return node
	case "*":
		node := ast.NewStringBinary(symbol, lhs, rhs, func(l, r entry.Entry) entry.Entry {
			count := int(r.AsNumber())
			if count < 0 {
				count = 0
			}
			return entry.NewString("", strings.Repeat(l.AsString(), count), "Temporary string", nil)
		}, pos)
		node.Numeric = false
		return node
	case "==", "!=", "<", "<=", ">", ">=":
		cmp, ok := stringComparisons[symbol]
		if !ok {
			break
		}
		node := ast.NewStringBinary(symbol, lhs, rhs, func(l, r entry.Entry) entry.Entry {
			result := 0.0
			if cmp(l.AsString(), r.AsString()) {
				result = 1
			}
			return entry.NewValue("", result, "Temporary value", nil)
		}, pos)
		node.Numeric = true
		return node
	}

	p.addError(fmt.Sprintf("operator '%s' is not valid between strings", symbol))
	return ast.NewLeaf(entry.NewError("invalid string operator"), true, pos)
}

var numericOps = map[string]func(a, b float64) float64{
	"+":  func(a, b float64) float64 { return a + b },
	"-":  func(a, b float64) float64 { return a - b },
	"*":  func(a, b float64) float64 { return a * b },
	"/":  func(a, b float64) float64 { return a / b },
	"%":  mod,
	"**": powOp,
	"==": boolOp(func(a, b float64) bool { return a == b }),
	"!=": boolOp(func(a, b float64) bool { return a != b }),
	"<":  boolOp(func(a, b float64) bool { return a < b }),
	"<=": boolOp(func(a, b float64) bool { return a <= b }),
	">":  boolOp(func(a, b float64) bool { return a > b }),
	">=": boolOp(func(a, b float64) bool { return a >= b }),
	"&&": boolOp(func(a, b float64) bool { return a != 0 && b != 0 }),
	"||": boolOp(func(a, b float64) bool { return a != 0 || b != 0 }),
}

var stringComparisons = map[string]func(a, b string) bool{
	"==": func(a, b string) bool { return a == b },
	"!=": func(a, b string) bool { return a != b },
	"<":  func(a, b string) bool { return a < b },
	"<=": func(a, b string) bool { return a <= b },
	">":  func(a, b string) bool { return a > b },
	">=": func(a, b string) bool { return a >= b },
}

func boolOp(cmp func(a, b float64) bool) func(a, b float64) float64 {
	return func(a, b float64) float64 {
		if cmp(a, b) {
			return 1
		}
		return 0
	}
}
