package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"grun/internal/version"
)

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
}

type versionPayload struct {
	Tool string `json:"tool"`
	version.Info
}

func newVersionCmd() *cobra.Command {
	var opts versionOptions
	var full bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show grun build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.format = strings.ToLower(opts.format)
			opts.showHash = opts.showHash || full
			opts.showDate = opts.showDate || full

			info := version.Get()
			switch opts.format {
			case "pretty":
				colored, err := colorEnabled(cmd, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				return renderVersionPretty(cmd.OutOrStdout(), info, opts, colored)
			case "json":
				return renderVersionJSON(cmd.OutOrStdout(), info, opts)
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", opts.format)
			}
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "pretty", "output format (pretty|json)")
	cmd.Flags().BoolVar(&opts.showHash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&opts.showDate, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&full, "full", false, "show every recorded bit of build metadata")
	return cmd
}

func renderVersionPretty(out io.Writer, info version.Info, opts versionOptions, colored bool) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "grun %s\n", version.Pretty(colored))
	if opts.showHash {
		fmt.Fprintf(&sb, "commit: %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(&sb, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
	_, err := io.WriteString(out, sb.String())
	return err
}

func renderVersionJSON(out io.Writer, info version.Info, opts versionOptions) error {
	payload := versionPayload{Tool: "grun", Info: version.Info{Version: info.Version}}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
