// treepath searches C# syntax trees with path expressions.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phobologic/treepath/internal/config"
)

var version = "dev"

// errNoMatches makes the process exit with status 1 without a message.
var errNoMatches = errors.New("no matches")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errNoMatches) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the root flags are parsed.
type app struct {
	stdout, stderr io.Writer

	cfgFile string
	verbose bool

	cfg    config.Config
	logger *zap.Logger
}

func run(args []string, stdout, stderr io.Writer) error {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := root.ExecuteContext(ctx)
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "treepath",
		Short:         "Search C# syntax trees with path expressions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetVersionTemplate("treepath {{.Version}}\n")
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default "+config.DefaultPath+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		a.findCmd(),
		a.treeCmd(),
		a.checkCmd(),
		a.keywordsCmd(),
		a.initCmd(),
	)
	return root
}

func (a *app) setup() error {
	path, explicit := a.cfgFile, a.cfgFile != ""
	if !explicit {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(a.stderr, a.verbose)
	a.logger.Debug("Loaded config", zap.String("path", path), zap.Bool("explicit", explicit))
	return nil
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	encoderCfg := zap.NewProductionEncoderConfig()
	if verbose {
		level = zapcore.DebugLevel
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// useColor reports whether text output to stdout should be styled.
func (a *app) useColor(noColor bool) bool {
	if noColor || color.NoColor {
		return false
	}
	return a.stdout == os.Stdout
}
