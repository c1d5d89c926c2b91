// Package render serializes change reports for the CLI: machine-readable
// JSON, a colored human summary, and a table view.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/astdiff/internal/config"
	"github.com/Sumatoshi-tech/astdiff/pkg/analyzer"
)

// ErrUnsupportedFormat is returned for format names the renderer does not
// know.
var ErrUnsupportedFormat = errors.New("unsupported format")

// msgNoChanges is printed when a comparison found nothing.
const msgNoChanges = "No changes detected."

// Renderer writes reports in a configured format.
type Renderer struct {
	format   string
	colorize bool
}

// New creates a Renderer for the given format name.
func New(format string, colorize bool) (*Renderer, error) {
	switch format {
	case config.FormatJSON, config.FormatSummary, config.FormatTable:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return &Renderer{format: format, colorize: colorize}, nil
}

// Render writes the report to w in the renderer's format.
func (r *Renderer) Render(w io.Writer, report *analyzer.Report) error {
	switch r.format {
	case config.FormatJSON:
		return r.renderJSON(w, report)
	case config.FormatSummary:
		return r.renderSummary(w, report)
	case config.FormatTable:
		return r.renderTable(w, report)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, r.format)
	}
}

func (r *Renderer) renderJSON(w io.Writer, report *analyzer.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	encodeErr := enc.Encode(report)
	if encodeErr != nil {
		return fmt.Errorf("encode JSON: %w", encodeErr)
	}

	return nil
}

func (r *Renderer) renderSummary(w io.Writer, report *analyzer.Report) error {
	if report.Empty() {
		fmt.Fprintln(w, msgNoChanges)

		return nil
	}

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	changed := color.New(color.FgYellow)

	if !r.colorize {
		added.DisableColor()
		removed.DisableColor()
		changed.DisableColor()
	}

	for _, name := range report.Added {
		added.Fprintf(w, "+ %s\n", name)
	}

	for _, name := range report.Removed {
		removed.Fprintf(w, "- %s\n", name)
	}

	for _, fc := range report.Functions {
		changed.Fprintf(w, "~ %s %s\n", fc.Name, changeTags(&fc))
	}

	for _, mc := range report.Methods {
		changed.Fprintf(w, "~ %s.%s %s\n", mc.Class, mc.Name, changeTags(&mc.FunctionChange))
	}

	return nil
}

// changeTags renders the per-record flags in a compact bracket form.
func changeTags(fc *analyzer.FunctionChange) string {
	tags := ""

	if fc.SignatureChange {
		tags += "[signature]"
	}

	if fc.Body.IsChange() {
		tags += "[body:" + string(fc.Body.Category) + "]"
	}

	if fc.NestedChange {
		tags += "[nested]"
	}

	if len(fc.LineChanges) > 0 {
		tags += "[lines:" + strconv.Itoa(len(fc.LineChanges)) + "]"
	}

	return tags
}

func (r *Renderer) renderTable(w io.Writer, report *analyzer.Report) error {
	if report.Empty() {
		fmt.Fprintln(w, msgNoChanges)

		return nil
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"Definition", "Kind", "Signature", "Body", "Reason", "Priority", "Nested"})

	for _, name := range report.Added {
		tbl.AppendRow(table.Row{name, "added", "", "", "", "", ""})
	}

	for _, name := range report.Removed {
		tbl.AppendRow(table.Row{name, "removed", "", "", "", "", ""})
	}

	for _, fc := range report.Functions {
		tbl.AppendRow(changeRow(fc.Name, "function", &fc))
	}

	for _, mc := range report.Methods {
		tbl.AppendRow(changeRow(mc.Class+"."+mc.Name, "method", &mc.FunctionChange))
	}

	tbl.Render()

	return nil
}

func changeRow(name, kind string, fc *analyzer.FunctionChange) table.Row {
	return table.Row{
		name,
		kind,
		fc.SignatureChange,
		string(fc.Body.Category),
		string(fc.Body.Reason),
		fc.Body.Priority,
		fc.NestedChange,
	}
}
