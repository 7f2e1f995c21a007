package parser

import (
	"fmt"

	"github.com/mabescript/mabescript/internal/entry"
	"github.com/mabescript/mabescript/internal/lexer"
	"github.com/mabescript/mabescript/pkg/ast"
)

// parseStatementList parses statements until EOF or a matching '}' (left
// to the caller to consume), appending each non-nil statement to a block
// associated with scope (grounded on Config::ParseStatementList via the
// repeated ParseStatement calls in ParseDeclaration/ParseEvent/top level).
func (p *Parser) parseStatementList(scope *entry.Scope) *ast.BlockNode {
	block := ast.NewBlock(scope, p.pos())
	for !p.isAtEnd() && !p.checkSymbol("}") {
		stmt := p.parseStatement(scope)
		if stmt != nil {
			block.Append(stmt)
		}
	}
	return block
}

// parseStatement parses one statement: an empty statement, a brace-delimited
// anonymous block, an event declaration, a type declaration, or a bare
// expression statement (grounded on Config::ParseStatement).
func (p *Parser) parseStatement(scope *entry.Scope) ast.Node {
	if p.checkSymbol(";") {
		p.advance()
		return nil
	}

	if p.checkSymbol("{") {
		p.advance()
		block := p.parseStatementList(scope)
		p.expectSymbol("}", "to close a scope")
		return block
	}

	if p.checkSymbol("@") {
		return p.parseEvent(scope)
	}

	if p.isTypeName() {
		newEntry, ok := p.parseDeclaration(scope)
		if !ok {
			return nil
		}

		if p.checkSymbol(";") {
			p.advance()
			return nil
		}

		if childScope, isScope := newEntry.(*entry.Scope); isScope {
			p.expectSymbol("{", fmt.Sprintf("to begin the definition of scope '%s'", newEntry.Name()))
			block := p.parseStatementList(childScope)
			p.expectSymbol("}", fmt.Sprintf("to end the definition of scope '%s'", newEntry.Name()))
			return block
		}

		// Otherwise rewind the declared name so it can start an expression,
		// e.g. `Value x = 3;` declares x then immediately assigns into it.
		p.pos--
	}

	expr := p.parseExpression(scope, topLevelPrecedence)
	p.expectSymbol(";", "at the end of a statement")
	return expr
}

// isTypeName reports whether the current token names a registered type
// (spec.md §4.3 "Declaration (starts with a recognized type name...)").
func (p *Parser) isTypeName() bool {
	return p.check(lexer.IDENTIFIER) && p.cfg.Types != nil && p.cfg.Types.IsTypeName(p.peek().Value)
}

// parseDeclaration consumes "TypeName identifier" and installs the
// corresponding entry into scope (grounded on Config::ParseDeclaration).
func (p *Parser) parseDeclaration(scope *entry.Scope) (entry.Entry, bool) {
	typeTok := p.advance()
	typeName := typeTok.Value
	nameTok := p.expectIdentifier(fmt.Sprintf("after type name '%s'", typeName))
	varName := nameTok.Value

	switch typeName {
	case "String":
		e, err := scope.AddStringVar(varName, "Local string variable.")
		if err != nil {
			p.addError(err.Error())
			return nil, false
		}
		return e, true
	case "Value":
		e, err := scope.AddValueVar(varName, "Local value variable.")
		if err != nil {
			p.addError(err.Error())
			return nil, false
		}
		return e, true
	case "Struct":
		e, err := scope.AddScope(varName, "Local struct.", "Struct")
		if err != nil {
			p.addError(err.Error())
			return nil, false
		}
		return e, true
	}

	info, ok := p.cfg.Types.Lookup(typeName)
	if !ok || info.New == nil {
		p.addError(fmt.Sprintf("unknown type '%s'", typeName))
		return nil, false
	}

	newScope, err := scope.AddScope(varName, info.Desc, typeName)
	if err != nil {
		p.addError(err.Error())
		return nil, false
	}
	host := info.New(varName)
	host.SetupScope(newScope)

	// Install the type's registered member functions as builtins closing
	// over host, so `.` calls against newScope dispatch through the C7
	// member-function table rather than requiring SetupScope to have
	// installed them by hand (spec.md §4.6: "first argument is the target
	// host object").
	for fnName, mf := range info.MemberFuncs {
		mf := mf
		newScope.AddBuiltinFunction(fnName, func(args []entry.Entry) entry.Entry {
			return mf.Fn(host, args)
		}, mf.Desc)
	}

	host.SetupConfig()

	return newScope, true
}

// parseEvent parses `@EventName(args...) statement` (grounded on
// Config::ParseEvent).
func (p *Parser) parseEvent(scope *entry.Scope) ast.Node {
	pos := p.pos()
	p.expectSymbol("@", "to begin an event declaration")
	nameTok := p.expectIdentifier("naming the event type")
	eventName := nameTok.Value

	if p.cfg.IsEventName != nil && !p.cfg.IsEventName(eventName) {
		p.addError(fmt.Sprintf("'%s' is not a registered event type", eventName))
	}

	p.expectSymbol("(", fmt.Sprintf("after event name '%s'", eventName))

	var args []ast.Node
	for !p.checkSymbol(")") && !p.isAtEnd() {
		args = append(args, p.parseExpression(scope, topLevelPrecedence))
		if p.checkSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	p.expectSymbol(")", "to end an event's argument list")

	action := p.parseStatement(scope)

	schedule := p.cfg.ScheduleEvent
	return ast.NewEvent(eventName, args, action, func(vals []float64, act ast.Node) error {
		if schedule == nil {
			return nil
		}
		return schedule(eventName, vals, act)
	}, pos)
}
