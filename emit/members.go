package emit

import (
	"strings"

	"github.com/teranos/castxml/ast"
)

// addTemplateSpecializations requests every instantiation of a class or
// function template. Uninstantiated templates are never written.
func (e *emitter) addTemplateSpecializations(d *ast.Decl, members idSet) int {
	added := 0
	for _, s := range d.Specializations {
		if id := e.declID(s, true); id.Valid() {
			added++
			if members != nil {
				members.add(id)
			}
		}
	}
	return added
}

// addContextMembers requests the members of dc in full and collects their
// ids. Non-semantic members are skipped; linkage specifications and inline
// namespaces contribute their own members.
func (e *emitter) addContextMembers(dc *ast.Decl, members idSet) {
	isTU := dc.Kind == ast.TranslationUnitDecl
	for _, d := range dc.Members {
		if d.Parent != dc {
			continue
		}
		// Declarations castxml injects into every unit for itself.
		if isTU && strings.Contains(d.Identifier(), "__castxml") {
			continue
		}

		switch d.Kind {
		case ast.AccessSpecDecl, ast.ClassTemplatePartialSpecializationDecl, ast.EmptyDecl,
			ast.FriendDecl, ast.UsingDecl, ast.UsingDirectiveDecl:
			continue
		case ast.CXXRecordDecl:
			if d.InjectedClassName {
				continue
			}
		case ast.ClassTemplateDecl, ast.FunctionTemplateDecl:
			e.addTemplateSpecializations(d, members)
			continue
		case ast.LinkageSpecDecl:
			e.addContextMembers(d, members)
			continue
		case ast.NamespaceDecl:
			if d.Inline {
				e.addContextMembers(d, members)
				continue
			}
		}

		members.add(e.declID(d, true))
	}
}

// addStartDecl requests a start declaration in full and reports how many
// nodes it contributed.
func (e *emitter) addStartDecl(d *ast.Decl) int {
	switch d.Kind {
	case ast.ClassTemplateDecl, ast.FunctionTemplateDecl:
		return e.addTemplateSpecializations(d, nil)
	case ast.NamespaceDecl:
		if d.IsInlineNamespace() {
			return 0
		}
	case ast.UsingDecl:
		added := 0
		for _, s := range d.Shadows {
			if e.declID(s, true).Valid() {
				added++
			}
		}
		return added
	}
	if e.declID(d, true).Valid() {
		return 1
	}
	return 0
}
