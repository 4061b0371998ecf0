package ast

// TargetInfo describes the compilation target.
type TargetInfo struct {
	Triple      string
	HasFloat128 bool
}

// TranslationUnit is a parsed and semantically checked translation unit.
type TranslationUnit struct {
	Context   *Context
	Root      *Decl
	Target    TargetInfo
	CPlusPlus bool
	Files     []*File
}

// NewTranslationUnit creates an empty C++ translation unit.
func NewTranslationUnit() *TranslationUnit {
	return &TranslationUnit{
		Context:   NewContext(),
		Root:      &Decl{Kind: TranslationUnitDecl},
		CPlusPlus: true,
	}
}

// Policy returns the printing policy for the unit's language.
func (tu *TranslationUnit) Policy() PrintingPolicy {
	return PrintingPolicy{CPlusPlus: tu.CPlusPlus}
}

// File returns the file named name, creating it on first use.
func (tu *TranslationUnit) File(name string) *File {
	for _, f := range tu.Files {
		if f.Name == name {
			return f
		}
	}
	f := &File{Name: name}
	tu.Files = append(tu.Files, f)
	return f
}

// Walk visits d and every declaration nested in it once, depth first,
// including template patterns and specializations. Returning false from fn
// prunes the subtree.
func Walk(d *Decl, fn func(*Decl) bool) {
	seen := make(map[*Decl]bool)
	var walk func(*Decl)
	walk = func(d *Decl) {
		if d == nil || seen[d] {
			return
		}
		seen[d] = true
		if !fn(d) {
			return
		}
		for _, group := range [][]*Decl{d.Members, d.Enumerators, d.Params, d.Specializations} {
			for _, m := range group {
				walk(m)
			}
		}
		walk(d.Pattern)
	}
	walk(d)
}
