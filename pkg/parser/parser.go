// Package parser is the public entry point for loading and evaluating
// configuration scripts: a thin wrapper around internal/engine's
// controller, exposing just enough surface for host programs that want to
// parse and run a script without reaching into internal packages.
package parser

import (
	"io"

	"github.com/mabescript/mabescript/internal/engine"
	"github.com/mabescript/mabescript/internal/typeregistry"
)

// Options configures the controller a Parse call builds.
type Options struct {
	// Stdout receives PRINT output (defaults to os.Stdout).
	Stdout io.Writer
	// OnExit is invoked when the script calls EXIT() (defaults to a no-op).
	OnExit func()
	// EventTypes are registered on the controller before the script runs,
	// so @Name(...) event declarations in source can reference them.
	EventTypes []string
	// Types are host modules registered before the script runs, so source
	// can declare variables of these types.
	Types []HostType
}

// HostType pairs a type name with its registration, for Options.Types.
type HostType struct {
	Name        string
	Description string
	New         func(name string) typeregistry.HostModule
}

func (o *Options) apply(c *engine.Controller) error {
	for _, name := range o.EventTypes {
		c.RegisterEventType(name)
	}
	for _, ht := range o.Types {
		if err := c.RegisterType(ht.Name, ht.Description, ht.New); err != nil {
			return err
		}
	}
	return nil
}

func newController(opts *Options) (*engine.Controller, error) {
	if opts == nil {
		opts = &Options{}
	}

	var ctrlOpts []engine.Option
	if opts.Stdout != nil {
		ctrlOpts = append(ctrlOpts, engine.WithStdout(opts.Stdout))
	}
	if opts.OnExit != nil {
		ctrlOpts = append(ctrlOpts, engine.WithExitHandler(opts.OnExit))
	}

	c := engine.New(ctrlOpts...)
	if err := opts.apply(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse loads source as a top-level program and returns the controller
// holding its resulting scope, event queue, and persistent AST.
func Parse(source string, opts *Options) (*engine.Controller, error) {
	c, err := newController(opts)
	if err != nil {
		return nil, err
	}
	if err := c.LoadStatements(source, "source"); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseFile reads filename from disk and loads it as a top-level program.
func ParseFile(filename string, opts *Options) (*engine.Controller, error) {
	c, err := newController(opts)
	if err != nil {
		return nil, err
	}
	if err := c.Load(filename); err != nil {
		return nil, err
	}
	return c, nil
}

// Eval parses and evaluates a single statement against a fresh controller's
// root scope and returns its string result.
func Eval(statement string, opts *Options) (string, error) {
	c, err := newController(opts)
	if err != nil {
		return "", err
	}
	return c.Eval(statement)
}
