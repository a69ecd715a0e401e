// Package diagfmt renders diagnostic bags for humans and tools. The
// core solvers only fill bags; everything presentation-shaped lives
// here.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"gaia/internal/diag"
)

// PrettyOpts controls the human-readable renderer.
type PrettyOpts struct {
	Color bool
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.Faint)
	itemColor    = color.New(color.Bold)
)

// Pretty writes one line per diagnostic:
//
//	<item>: <SEVERITY> <CODE>: <message>
//
// followed by indented note lines. Callers sort the bag first when
// they want deterministic output.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	restore := color.NoColor
	color.NoColor = !opts.Color
	defer func() { color.NoColor = restore }()

	for _, d := range bag.Items() {
		sev := severityColor(d.Severity).Sprint(d.Severity.String())
		code := codeColor.Sprint(d.Code.String())
		if d.Item != "" {
			fmt.Fprintf(w, "%s: %s %s: %s\n", itemColor.Sprint(d.Item), sev, code, d.Message)
		} else {
			fmt.Fprintf(w, "%s %s: %s\n", sev, code, d.Message)
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  note: %s\n", n.Msg)
		}
	}
}

// Summary writes the closing error/warning count line.
func Summary(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	restore := color.NoColor
	color.NoColor = !opts.Color
	defer func() { color.NoColor = restore }()

	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	switch {
	case errs > 0:
		fmt.Fprintf(w, "%s: %d error(s), %d warning(s)\n", errorColor.Sprint("check failed"), errs, warns)
	case warns > 0:
		fmt.Fprintf(w, "check passed with %d warning(s)\n", warns)
	default:
		fmt.Fprintln(w, "check passed")
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
