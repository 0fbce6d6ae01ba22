package output

import (
	"fmt"
	"io"
)

// Printer writes results in one configured format.
type Printer struct {
	Out    io.Writer
	Format Format
	Wide   bool
}

// NewPrinter creates a Printer.
func NewPrinter(w io.Writer, format Format, wide bool) *Printer {
	return &Printer{Out: w, Format: format, Wide: wide}
}

// Print writes data. In table format a non-nil table is rendered
// instead of data; json and yaml always encode data.
func (p *Printer) Print(data any, table *Table) error {
	if p.Format == FormatTable || p.Format == "" {
		if table != nil {
			return table.Render(p.Out)
		}
	}
	return NewFormatter(p.Format, p.Wide).Format(p.Out, data)
}

// Message writes a human-readable line. It is dropped in json and yaml
// formats so machine output stays parseable.
func (p *Printer) Message(format string, args ...any) {
	if p.Format != FormatTable && p.Format != "" {
		return
	}
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// Human reports whether output is for people rather than scripts.
func (p *Printer) Human() bool {
	return p.Format == FormatTable || p.Format == ""
}
