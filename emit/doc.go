// Package emit serializes a translation unit into a castxml or gccxml
// document.
//
// Every declaration and type reachable from the start points receives one
// numeric id. Many AST nodes denote the same entity (typedef sugar,
// elaborated names, redeclarations, qualified types); the desugaring rules
// in desugar.go collapse them before an id is assigned. Nodes are written
// in two passes: first everything that must be described completely, then
// reference-only placeholders for what was only ever pointed at.
//
// Usage:
//
//	stats, err := emit.Generate(w, tu, emit.Options{StartNames: []string{"ns::Widget"}})
package emit
