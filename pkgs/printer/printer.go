// Package printer renders user facing command output. Diagnostics go through
// zerolog; everything a user is expected to read goes through a Printer.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/wrangler-manager/pkgs/styles"
)

var ConsolePrinter = New(os.Stdout)

func Ctx(ctx context.Context) *Printer {
	return ConsolePrinter.Ctx(ctx)
}

// Detailer is implemented by errors that carry a richer, multi-line
// rendering than their Error string.
type Detailer interface {
	Detail() string
}

type StatusListItem struct {
	Ok     bool
	Status string
}

type Printer struct {
	out    io.Writer
	errOut io.Writer
}

func New(w io.Writer) *Printer {
	return &Printer{out: w, errOut: os.Stderr}
}

// Ctx returns a copy of the printer that writes to the writer stored on ctx
// by [WithWriter], or the printer itself when none is set.
func (p *Printer) Ctx(ctx context.Context) *Printer {
	w, ok := GetWriter(ctx)
	if !ok {
		return p
	}

	return &Printer{out: w, errOut: p.errOut}
}

// WithErrorWriter returns a copy of the printer that reports fatal errors to w.
func (p *Printer) WithErrorWriter(w io.Writer) *Printer {
	return &Printer{out: p.out, errOut: w}
}

// Write writes b to standard output unstyled, making a Printer an io.Writer.
func (p *Printer) Write(b []byte) (int, error) {
	return p.out.Write(b)
}

func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", styles.Success(styles.Check), msg)
}

func (p *Printer) Skip(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", styles.Warning(styles.Warn), styles.Subtle(msg))
}

func (p *Printer) Title(title string) {
	fmt.Fprintln(p.out, styles.Bold(title))
}

func (p *Printer) LineBreak() {
	fmt.Fprintln(p.out)
}

// List prints a title followed by one bulleted line per item.
func (p *Printer) List(title string, items []string) {
	p.Title(title)
	for _, item := range items {
		fmt.Fprintf(p.out, "  %s %s\n", styles.Subtle(styles.Dot), item)
	}
}

// NumberedList prints a title followed by numbered items, starting at 1.
func (p *Printer) NumberedList(title string, items []string) {
	p.Title(title)
	for i, item := range items {
		fmt.Fprintf(p.out, "  %s %s\n", styles.Subtle(fmt.Sprintf("%d.", i+1)), item)
	}
}

func (p *Printer) StatusList(title string, items []StatusListItem) {
	p.Title(title)
	for _, item := range items {
		marker := styles.Success(styles.Check)
		if !item.Ok {
			marker = styles.Error(styles.Cross)
		}

		fmt.Fprintf(p.out, "  %s %s\n", marker, item.Status)
	}
}

// FatalError writes err to the error writer. Errors implementing [Detailer]
// are printed using their detailed form.
func (p *Printer) FatalError(err error) {
	var d Detailer
	if errors.As(err, &d) {
		fmt.Fprintln(p.errOut, d.Detail())
		return
	}

	fmt.Fprintln(p.errOut, styles.ErrorBox(styles.Cross+" Error", err.Error()))
}
