package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"grun/internal/grammar"
	"grun/internal/suite"
	"grun/internal/version"
)

func newSuiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suite [flags] [dir]",
		Short: "Run every conformance case under dir against its golden token dump",
		Long: `suite discovers cases matching the manifest pattern (default *.py),
runs the harness on each and compares stdout with <case>.tokens and the exit
code with the [expect] table of grun.toml. The exit status is the number of
failing cases.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSuite,
	}
	cmd.Flags().Bool("update", false, "rewrite golden files from the actual output")
	cmd.Flags().Int("jobs", 0, "parallel cases (0 = GOMAXPROCS)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	cmd.Flags().Bool("clear-cache", false, "drop every cached result before running")
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	cmd.Flags().BoolP("verbose", "v", false, "list passing cases and harness diagnostics")
	cmd.Flags().Duration("heartbeat", 0, "emit trace heartbeats at this interval")
	return cmd
}

func runSuite(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	manifest, err := suite.LoadManifest(dir)
	if err != nil {
		return err
	}
	if err := applyManifestOverrides(cmd, &manifest); err != nil {
		return err
	}
	if _, err := grammar.Lookup(manifest.Grammar); err != nil {
		return err
	}

	flags := cmd.Flags()
	update, _ := flags.GetBool("update")
	jobs, _ := flags.GetInt("jobs")
	noCache, _ := flags.GetBool("no-cache")
	clearCache, _ := flags.GetBool("clear-cache")
	uiValue, _ := flags.GetString("ui")
	verbose, _ := flags.GetBool("verbose")
	heartbeat, _ := flags.GetDuration("heartbeat")
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	opts := suite.Options{
		Dir:            dir,
		Manifest:       manifest,
		Jobs:           jobs,
		Update:         update,
		ToolVersion:    version.Version,
		MaxDiagnostics: maxDiagnostics,
		Heartbeat:      heartbeat,
	}
	if !noCache && !update {
		cache, err := suite.OpenCache("grun")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: result cache disabled: %v\n", err)
		} else {
			if clearCache {
				if err := cache.DropAll(); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
			}
			opts.Cache = cache
		}
	}

	out := cmd.OutOrStdout()
	var report *suite.Report
	if shouldUseTUI(mode, out) {
		report, err = runSuiteWithUI(cmd.Context(), out, opts)
	} else {
		report, err = suite.Run(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	colored, err := colorEnabled(cmd, out)
	if err != nil {
		return err
	}
	if err := report.WriteText(out, suite.TextOpts{Color: colored, Verbose: verbose, Stderr: verbose}); err != nil {
		return err
	}
	if failures := report.Failures(); failures > 0 {
		return exitCode(failures)
	}
	return nil
}

// applyManifestOverrides lets explicitly set root flags win over grun.toml.
func applyManifestOverrides(cmd *cobra.Command, m *suite.Manifest) error {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("grammar") {
		m.Grammar, _ = flags.GetString("grammar")
	}
	if flags.Changed("encoding") {
		m.Encoding, _ = flags.GetString("encoding")
	}
	if flags.Changed("keep-ws") {
		m.KeepWS, _ = flags.GetBool("keep-ws")
	}
	return m.Validate()
}

type suiteOutcome struct {
	report *suite.Report
	err    error
}

// runSuiteWithUI runs the suite in the background and renders its events
// with the Bubble Tea progress model until the run finishes.
func runSuiteWithUI(ctx context.Context, out io.Writer, opts suite.Options) (*suite.Report, error) {
	cases, err := suite.Discover(opts.Dir, opts.Manifest)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cases))
	for i, c := range cases {
		names[i] = c.Rel
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan suite.Event, 256)
	outcomeCh := make(chan suiteOutcome, 1)
	go func() {
		runOpts := opts
		runOpts.Progress = suite.ChannelSink{Ch: events}
		report, err := suite.Run(runCtx, runOpts)
		outcomeCh <- suiteOutcome{report: report, err: err}
		close(events)
	}()

	title := fmt.Sprintf("grun suite %s (%s)", opts.Dir, opts.Manifest.Grammar)
	uiErr := runProgressUI(ctx, out, title, names, events)
	// UI закрыт раньше времени (ctrl+c): останавливаем прогон и дочитываем события
	cancel()
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
