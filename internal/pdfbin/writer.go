package pdfbin

import (
	"bytes"
	"fmt"
)

const header = "%PDF-1.4\n%\xE2\xE3\xCF\xD3\n"

// Writer appends numbered objects to a byte arena and records each object's
// offset. Objects must be written in id order starting at 1. After Finish the
// writer is sealed and rejects further writes.
type Writer struct {
	buf     bytes.Buffer
	offsets []int
	sealed  bool
}

// NewWriter starts a document with the PDF header
func NewWriter() *Writer {
	w := &Writer{}
	w.buf.WriteString(header)
	return w
}

// Object writes a plain object
func (w *Writer) Object(id int, body string) error {
	if err := w.begin(id); err != nil {
		return err
	}
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nendobj\n", id, body)
	return nil
}

// Stream writes a stream object. dict holds the dictionary entries without the
// surrounding << >>; /Length is appended from len(data).
func (w *Writer) Stream(id int, dict string, data []byte) error {
	if err := w.begin(id); err != nil {
		return err
	}
	if dict != "" {
		dict += " "
	}
	fmt.Fprintf(&w.buf, "%d 0 obj\n<< %s/Length %d >>\nstream\n", id, dict, len(data))
	w.buf.Write(data)
	w.buf.WriteString("\nendstream\nendobj\n")
	return nil
}

func (w *Writer) begin(id int) error {
	if w.sealed {
		return ErrSealed
	}
	if id != len(w.offsets)+1 {
		return fmt.Errorf("pdf object %d written out of order, expected %d", id, len(w.offsets)+1)
	}
	w.offsets = append(w.offsets, w.buf.Len())
	return nil
}

// Offset returns the byte offset recorded for object id
func (w *Writer) Offset(id int) (int, bool) {
	if id < 1 || id > len(w.offsets) {
		return 0, false
	}
	return w.offsets[id-1], true
}

// Finish writes the cross-reference table and trailer, seals the writer and
// returns the document bytes.
func (w *Writer) Finish(root int) ([]byte, error) {
	if w.sealed {
		return nil, ErrSealed
	}
	w.sealed = true

	xref := w.buf.Len()
	size := len(w.offsets) + 1
	fmt.Fprintf(&w.buf, "xref\n0 %d\n", size)
	w.buf.WriteString("0000000000 65535 f \n")
	for _, offset := range w.offsets {
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, root, xref)

	return w.buf.Bytes(), nil
}
