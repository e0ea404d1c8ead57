package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"grun/internal/diag"
	"grun/internal/source"
)

// Pretty форматирует диагностики в виде, привычном для ANTLR-инструментов:
//
//	line <line>:<col> <message>
//
// Идёт по bag.Items() в порядке добавления. Позиции берутся из FileSet.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	posColor := color.New(color.Bold)
	errColor := color.New(color.FgRed)
	warnColor := color.New(color.FgYellow)
	noteColor := color.New(color.FgCyan)
	for _, c := range []*color.Color{posColor, errColor, warnColor, noteColor} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, d := range bag.Items() {
		var sb strings.Builder
		sb.WriteString(posColor.Sprint(position(fs, d.Primary)))
		sb.WriteByte(' ')
		msg := d.Message
		if opts.ShowCodes {
			msg = "[" + d.Code.ID() + "] " + msg
		}
		switch {
		case d.Severity >= diag.SevError:
			sb.WriteString(errColor.Sprint(msg))
		case d.Severity == diag.SevWarning:
			sb.WriteString(warnColor.Sprint(msg))
		default:
			sb.WriteString(msg)
		}
		sb.WriteByte('\n')
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(&sb, "  %s %s\n", noteColor.Sprint("note:"), n.Msg)
			}
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		if _, err := fmt.Fprintf(w, "... %d more diagnostics not shown\n", dropped); err != nil {
			return err
		}
	}
	return nil
}

func position(fs *source.FileSet, sp source.Span) string {
	if fs == nil {
		return "line 0:0"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("line %d:%d", start.Line, start.Col)
}
