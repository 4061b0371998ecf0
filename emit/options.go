package emit

import (
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/castxml/errors"
)

// Format selects the document dialect.
type Format int

const (
	// FormatCastXML writes <CastXML format="E.1.4">.
	FormatCastXML Format = iota
	// FormatGCCXML writes the legacy <GCC_XML> dialect.
	FormatGCCXML
)

func (f Format) String() string {
	if f == FormatGCCXML {
		return "gccxml"
	}
	return "castxml"
}

// ParseFormat parses "castxml" or "gccxml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "castxml":
		return FormatCastXML, nil
	case "gccxml":
		return FormatGCCXML, nil
	}
	return 0, errors.NewInvalidOptionError("unknown output format %q (want castxml or gccxml)", s)
}

// QualifiedIDs selects how ids of cv-qualified types are spelled.
type QualifiedIDs int

const (
	// QualSuffix spells a qualified type as its underlying id plus
	// qualifier letters, e.g. _5c or _5cv.
	QualSuffix QualifiedIDs = iota
	// QualNumeric gives each qualified type its own sequential number.
	QualNumeric
)

func (q QualifiedIDs) String() string {
	if q == QualNumeric {
		return "numeric"
	}
	return "suffix"
}

// ParseQualifiedIDs parses "suffix" or "numeric".
func ParseQualifiedIDs(s string) (QualifiedIDs, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "suffix":
		return QualSuffix, nil
	case "numeric":
		return QualNumeric, nil
	}
	return 0, errors.NewInvalidOptionError("unknown qualified id mode %q (want suffix or numeric)", s)
}

// Options configures one Generate run.
type Options struct {
	Format       Format             // Document dialect (default: FormatCastXML)
	EpicVersion  uint               // CastXML epic format version (default: 1)
	QualifiedIDs QualifiedIDs       // Spelling of qualified type ids (default: QualSuffix)
	StartNames   []string           // Qualified names to start from (default: whole translation unit)
	Logger       *zap.SugaredLogger // Optional logger (default: global logger named "emit")
}

// Validate checks the options and fills in defaults.
func (o *Options) Validate() error {
	switch o.Format {
	case FormatCastXML, FormatGCCXML:
	default:
		return errors.NewInvalidOptionError("unknown output format %d", int(o.Format))
	}
	switch o.QualifiedIDs {
	case QualSuffix, QualNumeric:
	default:
		return errors.NewInvalidOptionError("unknown qualified id mode %d", int(o.QualifiedIDs))
	}
	if o.Format == FormatGCCXML && o.QualifiedIDs == QualNumeric {
		err := errors.NewInvalidOptionError("numeric qualified ids are not available in gccxml output")
		return errors.WithHint(err, "gccxml consumers expect suffixed ids such as _5c")
	}
	if o.EpicVersion == 0 {
		o.EpicVersion = 1
	}
	for _, name := range o.StartNames {
		if strings.TrimSpace(name) == "" {
			return errors.NewInvalidOptionError("empty start name")
		}
	}
	return nil
}
