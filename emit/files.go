package emit

import (
	"strconv"

	"github.com/teranos/castxml/ast"
)

// fileTable numbers source files in the order locations mention them.
// f0 is reserved for the builtin pseudo-file of implicit declarations.
type fileTable struct {
	ids     map[*ast.File]uint32
	order   []*ast.File
	builtin bool
}

func newFileTable() *fileTable {
	return &fileTable{ids: make(map[*ast.File]uint32)}
}

func (f *fileTable) id(file *ast.File) uint32 {
	if id, ok := f.ids[file]; ok {
		return id
	}
	f.order = append(f.order, file)
	id := uint32(len(f.order))
	f.ids[file] = id
	return id
}

// write emits the File elements and returns how many were written.
func (f *fileTable) write(w *writer) int {
	n := 0
	if f.builtin {
		w.open("File")
		w.str(` id="f0"`)
		w.attr("name", "<builtin>")
		w.closeEmpty()
		n++
	}
	for i, file := range f.order {
		w.open("File")
		w.str(` id="f` + strconv.Itoa(i+1) + `"`)
		w.attr("name", file.Name)
		w.closeEmpty()
		n++
	}
	return n
}
