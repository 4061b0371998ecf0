package emit

import (
	"github.com/teranos/castxml/ast"
)

type nodeKind int

const (
	kindQual nodeKind = iota
	kindDecl
	kindType
)

// dumpType keys a type node. class is set only for the method type behind
// a pointer to member function, so one prototype yields one MethodType per
// owning class.
type dumpType struct {
	t     *ast.Type
	class *ast.Type
}

type qualKey struct {
	base  ID
	quals ast.Qualifiers
}

// node is the dump state of one identified entity.
type node struct {
	id       ID
	kind     nodeKind
	complete bool
	queued   bool

	decl *ast.Decl
	typ  dumpType
	qual qualKey
}

// table assigns ids. It owns every node; encoders only request ids.
type table struct {
	decls map[*ast.Decl]*node
	types map[dumpType]*node
	quals map[qualKey]*node
	order []*node
	count uint32

	// requireComplete is true during the complete pass. New incomplete
	// nodes are only queued once it drops to false.
	requireComplete bool
	numericQuals    bool
	queue           queue
}

func newTable(numericQuals bool) *table {
	return &table{
		decls:           make(map[*ast.Decl]*node),
		types:           make(map[dumpType]*node),
		quals:           make(map[qualKey]*node),
		requireComplete: true,
		numericQuals:    numericQuals,
	}
}

func (t *table) push(n *node) {
	if n.queued {
		return
	}
	n.queued = true
	t.queue.push(n)
}

func (t *table) pop() *node {
	n := t.queue.pop()
	n.queued = false
	return n
}

// intern returns the id of n, creating or upgrading it as complete demands.
func (t *table) intern(n *node, isNew bool, complete bool) ID {
	if !t.requireComplete {
		complete = false
	}
	if !isNew {
		if complete && !n.complete {
			n.complete = true
			t.push(n)
		}
		return n.id
	}
	t.count++
	n.id = ID{N: t.count}
	n.complete = complete
	t.order = append(t.order, n)
	if complete || !t.requireComplete {
		t.push(n)
	}
	return n.id
}

func (t *table) declNode(d *ast.Decl, complete bool) ID {
	n, ok := t.decls[d]
	if !ok {
		n = &node{kind: kindDecl, decl: d}
		t.decls[d] = n
	}
	return t.intern(n, !ok, complete)
}

func (t *table) typeNode(dt dumpType, complete bool) ID {
	n, ok := t.types[dt]
	if !ok {
		n = &node{kind: kindType, typ: dt}
		t.types[dt] = n
	}
	return t.intern(n, !ok, complete)
}

// qualNode returns the id of the cv-qualified wrapper around base. Wrappers
// are always complete and written once.
func (t *table) qualNode(base ID, quals ast.Qualifiers) ID {
	k := qualKey{base: base, quals: quals}
	if n, ok := t.quals[k]; ok {
		return n.id
	}
	n := &node{kind: kindQual, qual: k, complete: true}
	if t.numericQuals {
		t.count++
		n.id = ID{N: t.count}
	} else {
		n.id = ID{N: base.N, Q: quals}
	}
	t.quals[k] = n
	t.order = append(t.order, n)
	t.push(n)
	return n.id
}

// queueIncomplete switches to the incomplete pass and queues every
// declaration and type node that was never required in full.
func (t *table) queueIncomplete() int {
	t.requireComplete = false
	queued := 0
	for _, n := range t.order {
		if n.kind != kindQual && !n.complete {
			t.push(n)
			queued++
		}
	}
	return queued
}
