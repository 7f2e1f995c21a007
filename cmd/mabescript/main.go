package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/mabescript/mabescript/internal/engine"
	"github.com/mabescript/mabescript/pkg/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set during build via ldflags, or detected from build info)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func init() {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.Main.Version != "" && info.Main.Version != "(devel)" {
				Version = info.Main.Version
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					if len(setting.Value) >= 7 {
						GitCommit = setting.Value[:7]
					}
				case "vcs.time":
					BuildTime = setting.Value
				}
			}
		}
	}
}

var (
	outputFile string
	ticks      int
	verbose    bool
)

func main() {
	log := logrus.New()

	rootCmd := &cobra.Command{
		Use:     "mabescript",
		Short:   "mabescript: a configuration and scripting engine",
		Long:    `mabescript loads, evaluates, and serializes scripts in the MABE configuration language.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	loadCmd := &cobra.Command{
		Use:   "load [file]",
		Short: "Parse and evaluate a script, then print the resulting scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(log, args[0])
		},
	}
	loadCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")

	evalCmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate a single expression or statement and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(log, args[0])
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Load a script, advance its UPDATE event N times, and print the final scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(log, args[0])
		},
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 1, "number of UPDATE ticks to run")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")

	fmtCmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Load a script and print it back in its canonical serialized form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(log, args[0])
		},
	}
	fmtCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version.BuildInfo())
			return nil
		},
	}

	rootCmd.AddCommand(loadCmd, evalCmd, runCmd, fmtCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runLoad(log *logrus.Logger, filename string) error {
	c := engine.New(engine.WithLogger(log))
	if err := c.Load(filename); err != nil {
		return fmt.Errorf("Error (in '%s'): %w\nAborting.", filename, err)
	}
	return writeScope(c)
}

func runEval(log *logrus.Logger, expr string) error {
	c := engine.New(engine.WithLogger(log))
	result, err := c.Eval(expr)
	if err != nil {
		return fmt.Errorf("Error (in 'eval command'): %w\nAborting.", err)
	}
	fmt.Println(result)
	return nil
}

func runRun(log *logrus.Logger, filename string) error {
	c := engine.New(engine.WithLogger(log))
	c.RegisterEventType("UPDATE")

	if err := c.Load(filename); err != nil {
		return fmt.Errorf("Error (in '%s'): %w\nAborting.", filename, err)
	}

	for i := 0; i < ticks; i++ {
		if err := c.UpdateEventValue("UPDATE", float64(i+1)); err != nil {
			return err
		}
	}

	return writeScope(c)
}

func runFmt(log *logrus.Logger, filename string) error {
	c := engine.New(engine.WithLogger(log))
	if err := c.Load(filename); err != nil {
		return fmt.Errorf("Error (in '%s'): %w\nAborting.", filename, err)
	}
	return writeScope(c)
}

func writeScope(c *engine.Controller) error {
	var w *os.File = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return c.Write(w)
}
