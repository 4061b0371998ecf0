package emit

import (
	"bufio"
	"io"
	"strconv"

	"github.com/teranos/castxml/errors"
	"github.com/teranos/castxml/internal/xmlutil"
)

// writer buffers document text. The first write error sticks and every
// later write is dropped; flush reports it.
type writer struct {
	w   *bufio.Writer
	err error
}

func newWriter(w io.Writer) *writer {
	return &writer{w: bufio.NewWriterSize(w, 64*1024)}
}

func (w *writer) str(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.WriteString(s)
}

// open starts a top-level element.
func (w *writer) open(tag string) { w.str("  <" + tag) }

// child starts an element nested in a top-level one.
func (w *writer) child(tag string) { w.str("    <" + tag) }

// attr writes an escaped attribute.
func (w *writer) attr(name, value string) {
	w.str(" " + name + `="` + xmlutil.Attr(value) + `"`)
}

func (w *writer) idAttr(name string, id ID) {
	w.str(" " + name + `="` + id.String() + `"`)
}

func (w *writer) uintAttr(name string, v uint64) {
	w.str(" " + name + `="` + strconv.FormatUint(v, 10) + `"`)
}

func (w *writer) intAttr(name string, v int64) {
	w.str(" " + name + `="` + strconv.FormatInt(v, 10) + `"`)
}

// flag writes name="1" when on.
func (w *writer) flag(name string, on bool) {
	if on {
		w.str(" " + name + `="1"`)
	}
}

func (w *writer) closeEmpty()      { w.str("/>\n") }
func (w *writer) closeStart()      { w.str(">\n") }
func (w *writer) end(tag string)   { w.str("  </" + tag + ">\n") }
func (w *writer) line(text string) { w.str(text + "\n") }

func (w *writer) flush() error {
	if w.err == nil {
		w.err = w.w.Flush()
	}
	if w.err != nil {
		return errors.Wrap(w.err, "failed to write XML document")
	}
	return nil
}
