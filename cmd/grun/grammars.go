package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"grun/internal/grammar"
)

type grammarPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Symbols     []string `json:"symbols"`
	Channels    []string `json:"channels"`
}

func newGrammarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammars",
		Short: "List registered grammars with their token and channel names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			payload, err := collectGrammars()
			if err != nil {
				return err
			}
			switch strings.ToLower(format) {
			case "text", "pretty":
				return renderGrammarsText(cmd.OutOrStdout(), payload)
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			default:
				return fmt.Errorf("unsupported format %q (must be text or json)", format)
			}
		},
	}
	cmd.Flags().String("format", "text", "output format (text|json)")
	return cmd
}

func collectGrammars() ([]grammarPayload, error) {
	names := grammar.Names()
	out := make([]grammarPayload, 0, len(names))
	for _, name := range names {
		g, err := grammar.Lookup(name)
		if err != nil {
			return nil, err
		}
		vocab := g.Vocabulary()
		symbols := vocab.SymbolicNames()
		// нулевой тип зарезервирован и в дамп не попадает
		if len(symbols) > 0 {
			symbols = symbols[1:]
		}
		out = append(out, grammarPayload{
			Name:        g.Name(),
			Description: g.Description(),
			Symbols:     symbols,
			Channels:    vocab.ChannelNames(),
		})
	}
	return out, nil
}

func renderGrammarsText(w io.Writer, grammars []grammarPayload) error {
	var sb strings.Builder
	for _, g := range grammars {
		fmt.Fprintf(&sb, "%s\t%s\n", g.Name, g.Description)
		fmt.Fprintf(&sb, "  symbols:  %s\n", strings.Join(g.Symbols, " "))
		fmt.Fprintf(&sb, "  channels: %s\n", strings.Join(g.Channels, " "))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
