package emit

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/castxml/ast"
)

// element is one top-level document element with its nested children.
type element struct {
	Name     string
	Attrs    map[string]string
	Children []element
}

func (e element) attr(name string) string { return e.Attrs[name] }

type document struct {
	root  string
	elems []element
	byID  map[string]element
}

func generate(t *testing.T, tu *ast.TranslationUnit, opts Options) string {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = zaptest.NewLogger(t).Sugar()
	}
	var buf bytes.Buffer
	_, err := Generate(&buf, tu, opts)
	require.NoError(t, err)
	return buf.String()
}

func parse(t *testing.T, text string) document {
	t.Helper()
	doc := document{byID: make(map[string]element)}
	dec := xml.NewDecoder(strings.NewReader(text))
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		switch tok := tok.(type) {
		case xml.StartElement:
			depth++
			el := element{Name: tok.Name.Local, Attrs: make(map[string]string)}
			for _, a := range tok.Attr {
				el.Attrs[a.Name.Local] = a.Value
			}
			switch depth {
			case 1:
				doc.root = el.Name
			case 2:
				doc.elems = append(doc.elems, el)
			case 3:
				last := &doc.elems[len(doc.elems)-1]
				last.Children = append(last.Children, el)
			}
		case xml.EndElement:
			depth--
		}
	}
	for _, el := range doc.elems {
		if id := el.attr("id"); id != "" {
			_, dup := doc.byID[id]
			require.False(t, dup, "id %s written twice", id)
			doc.byID[id] = el
		}
	}
	return doc
}

func generateDoc(t *testing.T, tu *ast.TranslationUnit, opts Options) document {
	t.Helper()
	doc := parse(t, generate(t, tu, opts))
	requireNoDangling(t, doc)
	return doc
}

// named returns the elements with the given tag and name.
func (d document) named(tag, name string) []element {
	var out []element
	for _, el := range d.elems {
		if el.Name == tag && el.attr("name") == name {
			out = append(out, el)
		}
	}
	return out
}

func (d document) one(t *testing.T, tag, name string) element {
	t.Helper()
	els := d.named(tag, name)
	require.Len(t, els, 1, "want exactly one <%s name=%q>", tag, name)
	return els[0]
}

func (d document) count(tag string) int {
	n := 0
	for _, el := range d.elems {
		if el.Name == tag {
			n++
		}
	}
	return n
}

func (d document) hasName(name string) bool {
	for _, el := range d.elems {
		if el.attr("name") == name {
			return true
		}
	}
	return false
}

var refAttrs = []string{"type", "returns", "context", "basetype", "members", "bases", "befriending", "throw", "overrides"}

// requireNoDangling checks that every referenced id and file is written.
func requireNoDangling(t *testing.T, doc document) {
	t.Helper()
	files := make(map[string]bool)
	for _, el := range doc.elems {
		if el.Name == "File" {
			files[el.attr("id")] = true
		}
	}
	check := func(el element) {
		for _, name := range refAttrs {
			v, ok := el.Attrs[name]
			if !ok {
				continue
			}
			for _, ref := range strings.Fields(v) {
				ref = strings.TrimPrefix(strings.TrimPrefix(ref, "private:"), "protected:")
				_, found := doc.byID[ref]
				require.True(t, found, "<%s id=%q> %s references unknown %s", el.Name, el.attr("id"), name, ref)
			}
		}
		if f, ok := el.Attrs["file"]; ok {
			require.True(t, files[f], "<%s id=%q> references unknown file %s", el.Name, el.attr("id"), f)
		}
	}
	for _, el := range doc.elems {
		check(el)
		for _, c := range el.Children {
			check(c)
		}
	}
}
