package astdoc

import (
	"sort"

	"github.com/teranos/castxml/ast"
)

// KindCount is the number of declarations of one kind.
type KindCount struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// Summary describes the contents of a loaded translation unit.
type Summary struct {
	Triple    string      `json:"triple"`
	CPlusPlus bool        `json:"cplusplus"`
	Files     int         `json:"files"`
	Types     int         `json:"types"`
	Decls     int         `json:"decls"`
	Kinds     []KindCount `json:"kinds"` // Most frequent first
}

// Summarize counts the declarations reachable from the unit's root.
func Summarize(tu *ast.TranslationUnit) Summary {
	s := Summary{
		Triple:    tu.Target.Triple,
		CPlusPlus: tu.CPlusPlus,
		Files:     len(tu.Files),
		Types:     tu.Context.Len(),
	}
	counts := make(map[string]int)
	ast.Walk(tu.Root, func(d *ast.Decl) bool {
		kind := d.Kind.String()
		if d.Kind == ast.OtherDecl && d.KindName != "" {
			kind = d.KindName
		}
		counts[kind]++
		s.Decls++
		return true
	})
	for k, n := range counts {
		s.Kinds = append(s.Kinds, KindCount{Kind: k, Count: n})
	}
	sort.Slice(s.Kinds, func(i, j int) bool {
		if s.Kinds[i].Count != s.Kinds[j].Count {
			return s.Kinds[i].Count > s.Kinds[j].Count
		}
		return s.Kinds[i].Kind < s.Kinds[j].Kind
	})
	return s
}
