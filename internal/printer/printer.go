// Package printer handles output formatting for matched entries.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/bethropolis/globber"
)

// Printer writes matched paths or entry records to the configured
// destination.
type Printer struct {
	output    io.Writer
	useColors bool
	count     int64

	jsonOutput  bool
	jsonStarted bool

	tableOutput bool
	tbl         table.Writer
}

// New creates a Printer writing plain paths to stdout.
func New() *Printer {
	return &Printer{output: os.Stdout}
}

// WithOutput sets the output destination.
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output.
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithJSON enables the streamed JSON array format.
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// WithTable enables the tabular format.
func (p *Printer) WithTable(enabled bool) *Printer {
	p.tableOutput = enabled
	if enabled && p.tbl == nil {
		p.tbl = table.NewWriter()
		p.tbl.SetStyle(table.StyleLight)
		p.tbl.AppendHeader(table.Row{"Path", "Type", "Size", "Modified"})
	}
	return p
}

// PrintPath outputs one bare path.
func (p *Printer) PrintPath(path string) {
	p.count++
	fmt.Fprintln(p.output, path)
}

// PrintEntry outputs one entry record in the active format.
func (p *Printer) PrintEntry(e globber.Entry) {
	p.count++

	switch {
	case p.jsonOutput:
		if !p.jsonStarted {
			fmt.Fprint(p.output, "[\n")
			p.jsonStarted = true
		} else {
			fmt.Fprint(p.output, ",\n")
		}
		data, err := json.MarshalIndent(e, "  ", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error marshaling entry: %v\n", err)
			return
		}
		fmt.Fprintf(p.output, "  %s", data)
	case p.tableOutput:
		p.tbl.AppendRow(table.Row{e.Path, entryType(e), entrySize(e), entryMTime(e)})
	default:
		if p.useColors && e.Dirent != nil && e.Dirent.IsDirectory {
			fmt.Fprintln(p.output, color.CyanString(e.Path))
			return
		}
		fmt.Fprintln(p.output, e.Path)
	}
}

// Finalize flushes pending output (the JSON array close, the rendered
// table).
func (p *Printer) Finalize() {
	if p.jsonOutput {
		if p.jsonStarted {
			fmt.Fprint(p.output, "\n]\n")
		} else {
			fmt.Fprint(p.output, "[]\n")
		}
	}
	if p.tableOutput && p.tbl != nil {
		p.tbl.SetOutputMirror(p.output)
		p.tbl.Render()
	}
}

// Count returns the number of entries printed.
func (p *Printer) Count() int64 { return p.count }

func entryType(e globber.Entry) string {
	switch {
	case e.Dirent == nil:
		return "?"
	case e.Dirent.IsSymlink:
		return "link"
	case e.Dirent.IsDirectory:
		return "dir"
	default:
		return "file"
	}
}

func entrySize(e globber.Entry) string {
	if e.Stats == nil {
		return ""
	}
	return fmt.Sprintf("%d", e.Stats.Size)
}

func entryMTime(e globber.Entry) string {
	if e.Stats == nil {
		return ""
	}
	return time.Unix(e.Stats.MTime, 0).Format(time.RFC3339)
}
