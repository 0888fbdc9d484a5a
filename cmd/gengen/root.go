// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/gengen/gengen/internal/issue"
	"github.com/gengen/gengen/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the raw flag values of one invocation.
type rootFlags struct {
	generator  string
	function   string
	outputDir  string
	runtime    string
	emit       string
	extensions string
	fileBase   string
	configFile string
	verbose    bool
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

func newRootCommand(app *App) *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:   "gengen [flags] target=target-string[,target-string...] [generator_arg=value ...]",
		Short: "Build registered generators into native artifacts",
		Long: TitleStyle.Render("gengen") + SubtitleStyle.Render(" - generator build driver") + `

gengen instantiates a generator linked into this binary, binds its
generator params from name=value arguments, and writes the requested
artifacts for one target. Several comma-separated targets produce a single
header and a static library that dispatches between them at runtime.

` + SubtitleStyle.Render("Examples:") + `
  gengen -g blur -o out target=host
  gengen -g blur -o out -e h,o,stmt target=x86-64-linux radius=3
  gengen -g blur -o out target=x86-64-linux-avx-sse41,x86-64-linux
  gengen -r gengen_runtime -o out target=host`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, f, args)
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	flags := root.Flags()
	flags.StringVarP(&f.generator, "generator", "g", "", "generator name (default: the only registered generator)")
	flags.StringVarP(&f.function, "function", "f", "", "function name, optionally namespace-qualified (default: generator name)")
	flags.StringVarP(&f.outputDir, "output", "o", "", "output directory (required)")
	flags.StringVarP(&f.runtime, "runtime", "r", "", "build the standalone runtime under this name")
	flags.StringVarP(&f.emit, "emit", "e", "", "comma-separated artifacts to emit (default: static_library,h)")
	flags.StringVarP(&f.extensions, "extensions", "x", "", "comma-separated .old=.new extension overrides")
	flags.StringVarP(&f.fileBase, "name", "n", "", "file base name (default: derived from the function name)")
	flags.StringVar(&f.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/gengen/config.cue)")
	flags.BoolVar(&f.verbose, "verbose", false, "enable debug logging and full error chains")

	root.SetOut(app.stdout)
	root.SetErr(app.stderr)
	return root
}

// Run executes the driver with args and returns the process exit code.
func Run(ctx context.Context, app *App, args []string) types.ExitCode {
	root := newRootCommand(app)
	root.SetArgs(args)

	err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithErrorHandler(func(io.Writer, fang.Styles, error) {}),
	)
	if err == nil {
		return types.ExitSuccess
	}

	app.reportError(err)
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code.Validate() == nil {
		return exitErr.Code
	}
	return types.ExitFailure
}

// Execute runs the driver on os.Args and exits. It is called by main.main().
func Execute() {
	os.Exit(int(Run(context.Background(), NewApp(Dependencies{}), os.Args[1:])))
}

// reportError writes err to stderr: usage errors get the usage text and the
// usage catalog entry, service errors get their own entry.
func (a *App) reportError(err error) {
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, a.verbose))

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprint(a.stderr, usageText)
		renderIssue(a.stderr, issue.UsageErrorId, a.issueStyle)
		return
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(a.stderr, svcErr, a.issueStyle)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
