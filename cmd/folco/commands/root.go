package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/esimov/folco"
	"github.com/esimov/folco/internal/config"
	"github.com/esimov/folco/utils"
)

// errBatchFailed is returned when a batch did not succeed on every
// directory. The details were already reported on the progress stream.
var errBatchFailed = errors.New("some directories could not be processed")

// app holds the state shared by the subcommands.
type app struct {
	cfg     config.Config
	log     *zap.Logger
	verbose bool
	debug   bool
	stdout  io.Writer
	stderr  io.Writer
}

// Execute runs the folco CLI.
func Execute(version string) error {
	root, a := newRootCmd(version, os.Stdout, os.Stderr)
	return a.execute(root)
}

func newRootCmd(version string, stdout, stderr io.Writer) (*cobra.Command, *app) {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "folco",
		Short:         "Customize folder icons with colours, decals and emoji overlays",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "print full error chains")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(customizeCmd(a), resetCmd(a), schemaCmd(a), colorsCmd(a))
	return root, a
}

// execute runs root and reports the error which made it fail, unless the
// progress stream already did.
func (a *app) execute(root *cobra.Command) error {
	err := root.Execute()
	if err != nil && !errors.Is(err, errBatchFailed) {
		fmt.Fprintln(a.stderr, utils.DecorateText("error: "+a.describe(err), utils.ErrorMessage))
	}
	return err
}

// setup loads the configuration and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.verbose = a.verbose || cfg.Verbose

	l, err := newLogger(a.debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(l)
	a.log = l

	utils.NoColor = !utils.IsTerminal(a.stderr)
	return nil
}

// newLogger returns a development logger in debug mode and a production
// logger reporting warnings and errors otherwise.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// describe formats err according to the verbosity.
func (a *app) describe(err error) string {
	if a.verbose {
		return err.Error()
	}
	return folco.Summary(err)
}
