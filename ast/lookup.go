package ast

// Lookup finds the declarations named name that are members of d,
// including names made visible by transparent member contexts (linkage
// specifications, inline namespaces, unscoped enums). Namespaces are
// searched across all their redeclarations and records through their
// definition. Each entity is reported once, by its most recent declaration.
func (d *Decl) Lookup(name string) []*Decl {
	var out []*Decl
	seen := make(map[*Decl]int)
	for _, ctx := range d.lookupContexts() {
		collectNamed(ctx, name, func(m *Decl) {
			c := m.Canonical()
			if i, ok := seen[c]; ok {
				out[i] = m
				return
			}
			seen[c] = len(out)
			out = append(out, m)
		})
	}
	return out
}

func (d *Decl) lookupContexts() []*Decl {
	switch {
	case d.Kind == NamespaceDecl:
		return d.Redecls()
	case d.IsRecord():
		if def := d.Definition(); def != nil {
			return []*Decl{def}
		}
	}
	return []*Decl{d}
}

func collectNamed(ctx *Decl, name string, add func(*Decl)) {
	if ctx.Kind == EnumDecl {
		for _, e := range ctx.Enumerators {
			if e.Name == name {
				add(e)
			}
		}
	}
	for _, m := range ctx.Members {
		if m.Name == name && m.Kind != UsingDirectiveDecl && !m.InjectedClassName {
			add(m)
		}
		if m.IsTransparentContext() {
			if m.Kind == EnumDecl {
				for _, e := range m.Enumerators {
					if e.Name == name {
						add(e)
					}
				}
				continue
			}
			for _, r := range m.lookupContexts() {
				collectNamed(r, name, add)
			}
		}
	}
}

// UsingDirectives lists the namespaces nominated by using-directives
// written directly in d or in its transparent member contexts.
func (d *Decl) UsingDirectives() []*Decl {
	var out []*Decl
	var walk func(ctx *Decl)
	walk = func(ctx *Decl) {
		for _, m := range ctx.Members {
			switch {
			case m.Kind == UsingDirectiveDecl && m.Target != nil:
				out = append(out, m.Target)
			case m.Kind == LinkageSpecDecl:
				walk(m)
			}
		}
	}
	for _, ctx := range d.lookupContexts() {
		walk(ctx)
	}
	return out
}
