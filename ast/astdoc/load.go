package astdoc

import (
	"bytes"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/teranos/castxml/ast"
	"github.com/teranos/castxml/errors"
)

// LoadFile reads the AST document at path.
func LoadFile(path string) (*ast.TranslationUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read AST document %s", path)
	}
	tu, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load AST document %s", path)
	}
	return tu, nil
}

// Load decodes an AST document and builds its translation unit. JSON
// documents are accepted as the YAML subset they are.
func Load(r io.Reader) (*ast.TranslationUnit, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// Decode parses a document without resolving it. Unknown fields are errors.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.NewInvalidDocumentError("empty document")
		}
		if errors.IsInvalidDocumentError(err) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrInvalidDocument, err.Error())
	}
	if err := checkSchema(doc.Schema); err != nil {
		return nil, err
	}
	return &doc, nil
}

func checkSchema(schema string) error {
	if schema == "" {
		return errors.NewInvalidDocumentError("missing schema version")
	}
	v, err := semver.NewVersion(schema)
	if err != nil {
		return errors.NewInvalidDocumentError("invalid schema version %q: %v", schema, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return errors.Wrap(err, "invalid supported schema constraint")
	}
	if !constraint.Check(v) {
		err := errors.Wrapf(errors.ErrUnsupportedFormat, "schema %s", schema)
		return errors.WithHintf(err, "this castxml reads schema %s", SupportedSchema)
	}
	return nil
}

// Build resolves a decoded document into a translation unit.
func Build(doc *Document) (*ast.TranslationUnit, error) {
	r := newResolver(doc)
	steps := []func() error{
		r.target,
		r.files,
		r.allocateDecls,
		r.linkRedecls,
		r.linkDecls,
		r.checkDeclLoops,
		r.buildTypes,
		r.typeDecls,
		r.root,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return r.tu, nil
}
