package emit

import (
	"strconv"

	"github.com/teranos/castxml/ast"
)

// ID identifies one emitted node. N is assigned in discovery order. In
// suffix mode a cv-qualified wrapper shares N with the type it wraps and
// carries the qualifiers in Q.
type ID struct {
	N uint32
	Q ast.Qualifiers
}

// Valid reports whether an id was assigned.
func (id ID) Valid() bool { return id.N != 0 }

// String renders the id as written in the document, e.g. "_12" or "_12cv".
func (id ID) String() string {
	return "_" + strconv.FormatUint(uint64(id.N), 10) + id.Q.Suffix()
}

// Less orders ids by number, then unqualified before qualified with
// const ranking above volatile above restrict.
func (id ID) Less(o ID) bool {
	if id.N != o.N {
		return id.N < o.N
	}
	return id.Q.Rank() < o.Q.Rank()
}
