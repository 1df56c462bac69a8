package printer

import (
	"bytes"
	"io"
)

// DeferredWriter buffers everything written to it until Flush is called. The
// CLI uses it so command output lands after log lines on the terminal.
type DeferredWriter struct {
	buff   bytes.Buffer
	writer io.Writer
}

func NewDeferredWriter(w io.Writer) *DeferredWriter {
	return &DeferredWriter{
		writer: w,
	}
}

func (dw *DeferredWriter) Write(p []byte) (int, error) {
	return dw.buff.Write(p)
}

func (dw *DeferredWriter) Flush() error {
	_, err := dw.buff.WriteTo(dw.writer)
	return err
}
