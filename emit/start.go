package emit

import (
	"strings"

	"github.com/teranos/castxml/ast"
)

type startKey struct {
	scope *ast.Decl
	name  string
}

// lookupStart resolves a "::" separated name in dc and requests every
// declaration it names. Each scope is searched directly and through the
// namespaces its using-directives nominate. It returns the number of start
// nodes found.
func (e *emitter) lookupStart(dc *ast.Decl, name string, seen map[startKey]bool) int {
	k := startKey{scope: dc.Canonical(), name: name}
	if seen[k] {
		return 0
	}
	seen[k] = true

	found := 0
	cur, rest, nested := strings.Cut(name, "::")
	for _, d := range dc.Lookup(cur) {
		switch {
		case !nested:
			found += e.addStartDecl(d)
		case d.IsDeclContext():
			found += e.lookupStart(d, rest, seen)
		}
	}
	for _, ns := range dc.UsingDirectives() {
		found += e.lookupStart(ns, name, seen)
	}
	return found
}
