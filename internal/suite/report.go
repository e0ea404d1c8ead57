package suite

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Report collects case results in path order.
type Report struct {
	Dir      string
	Manifest Manifest
	Results  []CaseResult
}

// Count returns how many cases ended with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Failures counts failed and errored cases.
func (r *Report) Failures() int {
	n := 0
	for _, res := range r.Results {
		if res.Status.Failed() {
			n++
		}
	}
	return n
}

// FirstDiff describes the first line where got departs from want, or
// returns "" when they are identical.
func FirstDiff(want, got []byte) string {
	wl := strings.Split(string(want), "\n")
	gl := strings.Split(string(got), "\n")
	for i := 0; i < max(len(wl), len(gl)); i++ {
		if i >= len(wl) || i >= len(gl) || wl[i] != gl[i] {
			return fmt.Sprintf("line %d: want %s, got %s", i+1, quoteLine(wl, i), quoteLine(gl, i))
		}
	}
	return ""
}

func quoteLine(lines []string, i int) string {
	if i >= len(lines) {
		return "<end of output>"
	}
	return fmt.Sprintf("%q", lines[i])
}

// TextOpts configure WriteText.
type TextOpts struct {
	Color   bool
	Verbose bool // list passing cases too
	Stderr  bool // include harness diagnostics of failed cases
}

// WriteText prints one line per interesting case and a summary line.
func (r *Report) WriteText(w io.Writer, opts TextOpts) error {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)
	for _, c := range []*color.Color{pass, fail, dim} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var sb strings.Builder
	for _, res := range r.Results {
		switch {
		case res.Status.Failed():
			fmt.Fprintf(&sb, "%s %s: %s\n", fail.Sprint("FAIL"), res.Case.Rel, res.Detail)
			if opts.Stderr && res.Stderr != "" {
				for _, line := range strings.Split(strings.TrimRight(res.Stderr, "\n"), "\n") {
					sb.WriteString("     ")
					sb.WriteString(dim.Sprint(line))
					sb.WriteByte('\n')
				}
			}
		case opts.Verbose || res.Status == StatusUpdated:
			fmt.Fprintf(&sb, "%s %s %s\n", pass.Sprint(strings.ToUpper(string(res.Status))),
				res.Case.Rel, dim.Sprint(res.Duration.Round(time.Microsecond)))
		}
	}

	summary := fmt.Sprintf("%d cases: %d passed, %d cached, %d updated, %d failed",
		len(r.Results), r.Count(StatusPass), r.Count(StatusCached), r.Count(StatusUpdated), r.Failures())
	if r.Failures() > 0 {
		sb.WriteString(fail.Sprint(summary))
	} else {
		sb.WriteString(pass.Sprint(summary))
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}
