package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"grun/internal/driver"
	"grun/internal/source"
	"grun/internal/version"
)

// maxExitCode is the largest status POSIX keeps; larger counts are clamped.
const maxExitCode = 255

// exitCode carries a non-zero status out of RunE without printing anything.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run builds a fresh command tree, executes it and maps the outcome to a
// process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cleanups []func()
	root := newRootCmd(&cleanups)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	var code exitCode
	switch {
	case err == nil:
		return 0
	case errors.As(err, &code):
		return min(int(code), maxExitCode)
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func newRootCmd(cleanups *[]func()) *cobra.Command {
	root := &cobra.Command{
		Use:   "grun [flags] <input-file-path>",
		Short: "Grammar conformance test harness",
		Long: `grun tokenizes a source file, prints one canonical line per token,
parses it and exits with the number of syntax errors found.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cleanupTrace, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			*cleanups = append(*cleanups, cleanupTrace)
			cleanupProf, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			*cleanups = append(*cleanups, cleanupProf)
			return nil
		},
		RunE: runHarness,
	}
	root.Version = version.Version

	flags := root.PersistentFlags()
	flags.String("grammar", driver.DefaultGrammar, "grammar to run (see `grun grammars`)")
	flags.String("encoding", source.EncodingUTF8, "input encoding (utf-8, ascii or any IANA name)")
	flags.Bool("keep-ws", false, "emit inline whitespace as WS tokens on the hidden channel")
	flags.String("color", "auto", "colorize diagnostics (auto|on|off)")
	flags.Bool("show-codes", false, "prefix diagnostics with their code")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics shown per phase (0 = all)")
	flags.Bool("timings", false, "print phase timings to stderr")

	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "auto", "trace storage (auto|stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept for crash dumps")

	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")

	root.AddCommand(newSuiteCmd())
	root.AddCommand(newGrammarsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func runHarness(cmd *cobra.Command, args []string) error {
	cfg, err := harnessConfig(cmd)
	if err != nil {
		return err
	}
	if code := driver.Run(cmd.Context(), args, cfg); code != 0 {
		return exitCode(code)
	}
	return nil
}

// harnessConfig collects the persistent flags into a driver.Config.
func harnessConfig(cmd *cobra.Command) (driver.Config, error) {
	flags := cmd.Root().PersistentFlags()
	var cfg driver.Config
	var err error
	if cfg.Grammar, err = flags.GetString("grammar"); err != nil {
		return cfg, fmt.Errorf("failed to get grammar flag: %w", err)
	}
	if cfg.Encoding, err = flags.GetString("encoding"); err != nil {
		return cfg, fmt.Errorf("failed to get encoding flag: %w", err)
	}
	if cfg.KeepWhitespace, err = flags.GetBool("keep-ws"); err != nil {
		return cfg, fmt.Errorf("failed to get keep-ws flag: %w", err)
	}
	if cfg.ShowCodes, err = flags.GetBool("show-codes"); err != nil {
		return cfg, fmt.Errorf("failed to get show-codes flag: %w", err)
	}
	if cfg.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return cfg, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if cfg.Timings, err = flags.GetBool("timings"); err != nil {
		return cfg, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if cfg.Color, err = colorEnabled(cmd, cmd.ErrOrStderr()); err != nil {
		return cfg, err
	}
	cfg.Stdout = cmd.OutOrStdout()
	cfg.Stderr = cmd.ErrOrStderr()
	return cfg, nil
}

// colorEnabled resolves --color for output going to w.
func colorEnabled(cmd *cobra.Command, w io.Writer) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(w), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
