// Package engine is the controller facade (spec.md §4.7): the single entry
// point that ties the lexer, parser, evaluator, type registry, and event
// scheduler together around one persistent root scope.
package engine

import (
	"fmt"
	"io"
	"os"

	"github.com/mabescript/mabescript/internal/entry"
	"github.com/mabescript/mabescript/internal/evaluator"
	"github.com/mabescript/mabescript/internal/events"
	"github.com/mabescript/mabescript/internal/lexer"
	"github.com/mabescript/mabescript/internal/parser"
	"github.com/mabescript/mabescript/internal/typeregistry"
	"github.com/mabescript/mabescript/pkg/ast"
	"github.com/sirupsen/logrus"
)

// Controller owns the whole live configuration: the root scope, the
// type registry, the event scheduler, and the single persistent AST that
// every Load/LoadStatements/Eval call appends into (spec.md §5 "AST trees
// are immutable after parsing; event nodes hold borrowed pointers into the
// master AST, which must outlive the scheduler").
type Controller struct {
	root      *entry.Scope
	astRoot   *ast.BlockNode
	types     *typeregistry.Registry
	scheduler *events.Scheduler
	eval      *evaluator.Evaluator
	log       *logrus.Logger
	stdout    io.Writer
	onExit    func()

	eventNames map[string]bool
}

// Option configures a Controller at construction time.
type Option func(*Controller)

// WithLogger overrides the default logrus logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithStdout overrides where PRINT writes (defaults to os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(c *Controller) { c.stdout = w }
}

// WithExitHandler registers the callback EXIT invokes (spec.md §4.7: EXIT
// is one of the controller's fixed built-ins; what "stop running" means is
// the host's business, grounded on MABEScript.hpp's `control.RequestExit()`).
func WithExitHandler(fn func()) Option {
	return func(c *Controller) { c.onExit = fn }
}

// New builds a Controller with its root scope, type registry, and event
// scheduler constructed fresh, and the fixed built-in function library
// installed (spec.md §4.7, §9 "Global state": these tables are per-controller
// and frozen once construction completes).
func New(opts ...Option) *Controller {
	root := entry.NewScope("MABE", "Outer-most, global scope.", "", nil)
	c := &Controller{
		root:       root,
		astRoot:    ast.NewBlock(root, ast.Position{}),
		types:      typeregistry.New(),
		eval:       evaluator.New(),
		log:        logrus.New(),
		stdout:     os.Stdout,
		eventNames: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.scheduler = events.New(c.log)
	c.registerBuiltins()
	return c
}

// RootScope exposes the controller's root scope for host wiring (register_type,
// link_variable, etc. all ultimately reach into this tree).
func (c *Controller) RootScope() *entry.Scope { return c.root }

// RegisterType installs a host module type under name, usable thereafter as
// a declaration type in script (spec.md §6 "register_type").
func (c *Controller) RegisterType(name, desc string, newFn func(name string) typeregistry.HostModule) error {
	return c.types.Register(name, desc, newFn)
}

// AddMemberFunction attaches a callable member function to a registered type
// (spec.md §6; C7 member-function dispatch).
func (c *Controller) AddMemberFunction(typeName, fnName, desc string, fn typeregistry.MemberFunc) error {
	return c.types.AddMemberFunction(typeName, fnName, desc, fn)
}

// LinkVariable exposes a host field directly as a script entry (spec.md §6
// "link_variable").
func LinkVariable[T entry.LinkedScalar](scope *entry.Scope, name string, ptr *T, desc string, builtin bool) (*entry.LinkedEntry[T], error) {
	return entry.LinkVarInto(scope, name, ptr, desc, builtin)
}

// LinkGetters exposes a host getter/setter pair as a script entry (spec.md
// §6 "link_getters").
func LinkGetters[T entry.LinkedScalar](scope *entry.Scope, name string, get func() T, set func(T), desc string, builtin bool) (*entry.LinkedFuncEntry[T], error) {
	return entry.LinkFunsInto(scope, name, get, set, desc, builtin)
}

// RegisterEventType declares name as a valid event-declaration target in
// script (spec.md §6 "register_event_type") and gives it its own scheduler
// queue.
func (c *Controller) RegisterEventType(name string) {
	c.eventNames[name] = true
	c.scheduler.RegisterEventType(name)
}

// ScheduleEvent installs (action, first, repeat, max) under name directly,
// bypassing script parsing (spec.md §6 "schedule_event"); used by host code
// and by the parser's own event-node callback.
func (c *Controller) ScheduleEvent(name string, first, repeat, max float64, action ast.Node) error {
	if !c.eventNames[name] {
		return fmt.Errorf("event type %q is not registered", name)
	}
	c.scheduler.Schedule(name, action, first, repeat, max)
	return nil
}

// UpdateEventValue advances the named event type's clock, firing every due
// action (spec.md §4.7 "Update" / §4.5 `update_value`).
func (c *Controller) UpdateEventValue(name string, newValue float64) error {
	if !c.eventNames[name] {
		return fmt.Errorf("event type %q is not registered", name)
	}
	c.scheduler.UpdateValue(name, newValue, c.evalAction)
	return nil
}

// TriggerEvent fires every queued action of one event type, ignoring fire
// times (spec.md §6 "trigger_event").
func (c *Controller) TriggerEvent(name string) error {
	if !c.eventNames[name] {
		return fmt.Errorf("event type %q is not registered", name)
	}
	c.scheduler.TriggerName(name, c.evalAction)
	return nil
}

func (c *Controller) evalAction(action ast.Node) error {
	result := c.eval.Eval(action)
	if result != nil && result.IsError() {
		return fmt.Errorf("%s", result.AsString())
	}
	return nil
}

func (c *Controller) parserConfig() parser.Config {
	return parser.Config{
		Types:       c.types,
		IsEventName: func(name string) bool { return c.eventNames[name] },
		ScheduleEvent: func(name string, args []float64, action ast.Node) error {
			first, repeat, max := 0.0, 0.0, -1.0
			if len(args) > 0 {
				first = args[0]
			}
			if len(args) > 1 {
				repeat = args[1]
			}
			if len(args) > 2 {
				max = args[2]
			}
			return c.ScheduleEvent(name, first, repeat, max, action)
		},
	}
}

// parseAndRun tokenizes src, parses it against the root scope, evaluates the
// resulting block, and appends it to the controller's persistent AST
// (spec.md §6.7 / SPEC_FULL.md §6.7's Eval-persistence correction — Load and
// LoadStatements funnel through here, and Eval appends its parsed statement
// the same way, so event actions scheduled from any of them stay valid for
// the controller's lifetime).
func (c *Controller) parseAndRun(src, name string) (*ast.BlockNode, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	block, errs := parser.Parse(tokens, c.root, c.parserConfig())
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", name, errs[0])
	}

	c.eval.Eval(block)
	c.astRoot.Append(block)
	return block, nil
}

// Load reads filename from disk and runs it as a top-level program
// (spec.md §4.7 "load(filename)").
func (c *Controller) Load(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("loading %q: %w", filename, err)
	}
	c.log.WithField("file", filename).Debug("loading configuration")
	_, err = c.parseAndRun(string(data), filename)
	return err
}

// LoadStatements runs a pre-assembled source string as a top-level program,
// labeled name for error messages (spec.md §4.7 "load" variant taking a
// statement list rather than a filename).
func (c *Controller) LoadStatements(src, name string) error {
	_, err := c.parseAndRun(src, name)
	return err
}

// Eval parses and evaluates a single statement against the root scope and
// returns its string result, discarding any temporary produced (spec.md
// §4.7 "eval(text)").
func (c *Controller) Eval(statement string) (string, error) {
	tokens, err := lexer.Tokenize(statement + ";")
	if err != nil {
		return "", fmt.Errorf("eval command: %w", err)
	}

	node, perrs := parser.ParseStatement(tokens, c.root, c.parserConfig())
	if len(perrs) > 0 {
		return "", fmt.Errorf("eval command: %w", perrs[0])
	}

	result := c.eval.Eval(node)
	if node != nil {
		c.astRoot.Append(node)
	}

	if result == nil {
		return "", nil
	}
	return result.AsString(), nil
}

// Write serializes the root scope's non-built-in contents followed by the
// pending event queue (spec.md §6 "write(filename_or_stream)"). Each pending
// event is written as its "@Name(first[, repeat[, max]]) " header followed
// by ";"; the event's action is not written.
func (c *Controller) Write(w io.Writer) error {
	ww := entry.NewWriter(w)
	c.root.WriteContents(ww, "", 0)
	fmt.Fprintln(w)
	for _, p := range c.scheduler.Pending() {
		fmt.Fprint(w, p.Header())
		fmt.Fprintln(w, ";")
	}
	return nil
}
