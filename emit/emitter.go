package emit

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/castxml/ast"
	"github.com/teranos/castxml/errors"
	"github.com/teranos/castxml/logger"
	"github.com/teranos/castxml/version"
)

// Stats summarizes one Generate run.
type Stats struct {
	Nodes    int           // Ids assigned, qualified wrappers included
	Files    int           // File elements written
	Duration time.Duration // Wall time of the run
}

// emitter holds the state of one run. It is single use and not safe for
// concurrent use.
type emitter struct {
	tu     *ast.TranslationUnit
	opts   Options
	log    *zap.SugaredLogger
	w      *writer
	table  *table
	files  *fileTable
	policy ast.PrintingPolicy
}

// Generate writes the document for tu to w. AST content never fails a run:
// constructs without an encoder become Unimplemented elements and
// unrepresentable declarations are left out. Only option and write
// errors are returned.
func Generate(w io.Writer, tu *ast.TranslationUnit, opts Options) (*Stats, error) {
	if tu == nil || tu.Root == nil {
		return nil, errors.New("no translation unit to generate from")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logger.Logger.Named("emit")
	}

	e := &emitter{
		tu:     tu,
		opts:   opts,
		log:    log,
		w:      newWriter(w),
		table:  newTable(opts.QualifiedIDs == QualNumeric),
		files:  newFileTable(),
		policy: tu.Policy(),
	}
	return e.run()
}

func (e *emitter) run() (*Stats, error) {
	start := time.Now()

	if len(e.opts.StartNames) > 0 {
		for _, name := range e.opts.StartNames {
			found := e.lookupStart(e.tu.Root, name, make(map[startKey]bool))
			if found == 0 {
				e.log.Warnw("start name matched nothing", logger.FieldStart, name)
			} else {
				e.log.Debugw("start name resolved", logger.FieldStart, name, logger.FieldCount, found)
			}
		}
	} else {
		e.addStartDecl(e.tu.Root)
	}

	e.startTags()

	e.log.Debugw("complete pass", logger.FieldPass, "complete", logger.FieldQueueSize, e.table.queue.len())
	written := e.processQueue()

	queued := e.table.queueIncomplete()
	e.log.Debugw("incomplete pass",
		logger.FieldPass, "incomplete",
		logger.FieldQueueSize, queued,
		logger.FieldNodes, written)
	written += e.processQueue()

	files := e.files.write(e.w)
	e.endTags()

	if err := e.w.flush(); err != nil {
		return nil, err
	}

	stats := &Stats{Nodes: int(e.table.count), Files: files, Duration: time.Since(start)}
	e.log.Infow("document written",
		logger.FieldFormat, e.opts.Format.String(),
		logger.FieldNodes, stats.Nodes,
		logger.FieldCount, written,
		logger.FieldFiles, stats.Files,
		logger.FieldDurationMS, stats.Duration.Milliseconds())
	return stats, nil
}

func (e *emitter) processQueue() int {
	written := 0
	for e.table.queue.len() > 0 {
		n := e.table.pop()
		switch n.kind {
		case kindQual:
			e.outputQualified(n)
		case kindDecl:
			e.outputDecl(n)
		case kindType:
			e.outputType(n)
		}
		written++
	}
	return written
}

func (e *emitter) startTags() {
	e.w.line(`<?xml version="1.0"?>`)
	switch e.opts.Format {
	case FormatGCCXML:
		e.w.line(`<GCC_XML version="` + version.GCCXMLVersion + `" cvs_revision="` + version.GCCXMLRevision + `">`)
	default:
		e.w.line(`<CastXML format="` + version.FormatString(e.opts.EpicVersion) + `">`)
	}
}

func (e *emitter) endTags() {
	switch e.opts.Format {
	case FormatGCCXML:
		e.w.line("</GCC_XML>")
	default:
		e.w.line("</CastXML>")
	}
}

type declEncoder func(e *emitter, d *ast.Decl, n *node)

type typeEncoder func(e *emitter, t *ast.Type, n *node)

// Kinds missing from these tables are written as Unimplemented.
var declEncoders = map[ast.DeclKind]declEncoder{
	ast.TranslationUnitDecl:             (*emitter).outputTranslationUnit,
	ast.NamespaceDecl:                   (*emitter).outputNamespace,
	ast.RecordDecl:                      (*emitter).outputRecord,
	ast.CXXRecordDecl:                   (*emitter).outputCXXRecord,
	ast.ClassTemplateSpecializationDecl: (*emitter).outputCXXRecord,
	ast.TypedefDecl:                     (*emitter).outputTypedef,
	ast.TypeAliasDecl:                   (*emitter).outputTypedef,
	ast.EnumDecl:                        (*emitter).outputEnum,
	ast.FieldDecl:                       (*emitter).outputField,
	ast.VarDecl:                         (*emitter).outputVariable,
	ast.FunctionDecl:                    (*emitter).outputFunction,
	ast.CXXMethodDecl:                   (*emitter).outputMethod,
	ast.CXXConversionDecl:               (*emitter).outputConverter,
	ast.CXXConstructorDecl:              (*emitter).outputConstructor,
	ast.CXXDestructorDecl:               (*emitter).outputDestructor,
}

var typeEncoders = map[ast.TypeClass]typeEncoder{
	ast.BuiltinType:         (*emitter).outputFundamental,
	ast.ConstantArrayType:   (*emitter).outputArray,
	ast.IncompleteArrayType: (*emitter).outputArray,
	ast.FunctionProtoType:   (*emitter).outputFunctionType,
	ast.LValueReferenceType: (*emitter).outputReference,
	ast.MemberPointerType:   (*emitter).outputMemberPointer,
	ast.PointerType:         (*emitter).outputPointer,
	ast.ElaboratedType:      (*emitter).outputElaborated,
}

func (e *emitter) outputDecl(n *node) {
	if enc, ok := declEncoders[n.decl.Kind]; ok {
		enc(e, n.decl, n)
		return
	}
	e.unimplementedDecl(n.decl, n)
}

func (e *emitter) outputType(n *node) {
	if n.typ.class != nil {
		e.outputMethodType(n.typ.t, n.typ.class, n)
		return
	}
	if enc, ok := typeEncoders[n.typ.t.Class]; ok {
		enc(e, n.typ.t, n)
		return
	}
	e.unimplementedType(n.typ.t, n)
}

func (e *emitter) unimplementedDecl(d *ast.Decl, n *node) {
	kind := d.Kind.String()
	if d.Kind == ast.OtherDecl && d.KindName != "" {
		kind = d.KindName
	}
	e.w.open("Unimplemented")
	e.w.idAttr("id", n.id)
	e.w.attr("kind", kind)
	e.w.closeEmpty()
}

func (e *emitter) unimplementedType(t *ast.Type, n *node) {
	class := t.Class.String()
	if t.Class == ast.OtherType && t.ClassName != "" {
		class = t.ClassName
	}
	e.w.open("Unimplemented")
	e.w.idAttr("id", n.id)
	e.w.attr("type_class", class)
	e.w.closeEmpty()
}

// outputQualified writes the CvQualifiedType wrapper for a qualified type.
func (e *emitter) outputQualified(n *node) {
	q := n.qual.quals
	e.w.open("CvQualifiedType")
	e.w.idAttr("id", n.id)
	e.w.idAttr("type", n.qual.base)
	e.w.flag("const", q.IsConst())
	e.w.flag("volatile", q.IsVolatile())
	e.w.flag("restrict", q.IsRestrict())
	e.w.closeEmpty()
}
