// Package specs holds the dialect registry: the static table mapping a
// (format-family, dialect) pair to its encoder, content type and
// mandatory-field contract. The registry is built once at process start and
// is read-only afterwards, so concurrent exports share it without locking.
package specs

import (
	"fmt"
	"strings"

	"github.com/brendan-oconnell/thoth/internal/encode"
	"github.com/brendan-oconnell/thoth/internal/encode/bibtex"
	"github.com/brendan-oconnell/thoth/internal/encode/doideposit"
	"github.com/brendan-oconnell/thoth/internal/encode/jsonmeta"
	"github.com/brendan-oconnell/thoth/internal/encode/marc21"
	"github.com/brendan-oconnell/thoth/internal/encode/onix2"
	"github.com/brendan-oconnell/thoth/internal/encode/onix3"
	"github.com/brendan-oconnell/thoth/internal/encode/tabular"
	"github.com/brendan-oconnell/thoth/internal/model"
)

// FormatFamily is a broad output format category.
type FormatFamily string

const (
	FamilyOnix30       FormatFamily = "onix_3.0"
	FamilyOnix21       FormatFamily = "onix_2.1"
	FamilyCSV          FormatFamily = "csv"
	FamilyJSON         FormatFamily = "json"
	FamilyKBART        FormatFamily = "kbart"
	FamilyBibTeX       FormatFamily = "bibtex"
	FamilyDOIDeposit   FormatFamily = "doideposit"
	FamilyMARC21Record FormatFamily = "marc21record"
	FamilyMARC21Markup FormatFamily = "marc21markup"
	FamilyMARC21XML    FormatFamily = "marc21xml"
)

// Dialect is a named consumer profile within a format family.
type Dialect string

// Descriptor binds one (family, dialect) pair to everything needed to serve
// it. Descriptors are immutable after registry construction.
type Descriptor struct {
	Family      FormatFamily
	Dialect     Dialect
	ContentType string
	Extension   string
	Requires    requirement
	Encoder     encode.Encoder
}

// ID returns the wire identifier, e.g. "onix_3.0::project_muse".
func (d Descriptor) ID() string {
	return string(d.Family) + "::" + string(d.Dialect)
}

// CheckMandatoryFields runs the descriptor's mandatory-field contract and
// returns a ValidationError naming every missing field, or nil.
func (d Descriptor) CheckMandatoryFields(work *model.Work) error {
	if missing := d.Requires(work); len(missing) > 0 {
		return &encode.ValidationError{Dialect: d.ID(), Fields: missing}
	}
	return nil
}

// UnsupportedDialectError reports a (family, dialect) pair with no registered
// descriptor. It is a client-input error and is never retried.
type UnsupportedDialectError struct {
	Family  string
	Dialect string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("unsupported specification %s::%s", e.Family, e.Dialect)
}

// Registry is the read-only dialect table.
type Registry struct {
	descriptors map[string]Descriptor
	order       []string
}

// NewRegistry builds the full descriptor table. It fails on a duplicate
// (family, dialect) key and when any encoder's vocabulary tables do not cover
// the canonical enums; both are deployment defects caught at startup.
func NewRegistry() (*Registry, error) {
	for _, verify := range []func() error{
		onix3.VerifyMappings,
		onix2.VerifyMappings,
		marc21.VerifyMappings,
		bibtex.VerifyMappings,
		doideposit.VerifyMappings,
	} {
		if err := verify(); err != nil {
			return nil, err
		}
	}

	r := &Registry{descriptors: make(map[string]Descriptor)}
	onixRequires := requireAll(requireTitle, requirePublicationDate, requireISBN)
	descriptors := []Descriptor{
		{FamilyOnix30, "thoth", "text/xml", ".xml", onixRequires, onix3.NewThoth()},
		{FamilyOnix30, "project_muse", "text/xml", ".xml", requireAll(onixRequires, requireDOI), onix3.NewProjectMUSE()},
		{FamilyOnix30, "oapen", "text/xml", ".xml", requireAll(onixRequires, requireLicense), onix3.NewOAPEN()},
		{FamilyOnix30, "jstor", "text/xml", ".xml", requireAll(onixRequires, requireDOI), onix3.NewJSTOR()},
		{FamilyOnix30, "google_books", "text/xml", ".xml", onixRequires, onix3.NewGoogleBooks()},
		{FamilyOnix30, "overdrive", "text/xml", ".xml", onixRequires, onix3.NewOverDrive()},
		{FamilyOnix21, "ebsco_host", "text/xml", ".xml", onixRequires, onix2.NewEBSCOHost()},
		{FamilyOnix21, "proquest_ebrary", "text/xml", ".xml", onixRequires, onix2.NewProQuestEbrary()},
		{FamilyCSV, "thoth", "text/csv", ".csv", requireAll(requireWorkID, requireTitle), tabular.NewCSV()},
		{FamilyJSON, "thoth", "application/json", ".json", requireAll(requireWorkID, requireTitle), jsonmeta.New()},
		{FamilyKBART, "oclc", "text/tab-separated-values", ".txt", requireAll(requireTitle, requireISBN), tabular.NewKBART()},
		{FamilyBibTeX, "thoth", "application/x-bibtex", ".bib", requireAll(requireTitle, requireAuthorOrEditor), bibtex.New()},
		{FamilyDOIDeposit, "crossref", "text/xml", ".xml", requireAll(requireDOI, requirePublicationDate, requireAuthor), doideposit.New()},
		{FamilyMARC21Record, "thoth", "application/marc", ".mrc", requireAll(requireTitle, requireISBN, requireOneMainLanguage), marc21.NewRecord()},
		{FamilyMARC21Markup, "thoth", "text/plain", ".mrk", requireAll(requireTitle, requireISBN, requireOneMainLanguage), marc21.NewMarkup()},
		{FamilyMARC21XML, "thoth", "application/marcxml+xml", ".xml", requireAll(requireTitle, requireISBN, requireOneMainLanguage), marc21.NewXML()},
	}
	for _, d := range descriptors {
		if err := r.add(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(d Descriptor) error {
	id := d.ID()
	if _, exists := r.descriptors[id]; exists {
		return fmt.Errorf("duplicate specification %s", id)
	}
	r.descriptors[id] = d
	r.order = append(r.order, id)
	return nil
}

// Resolve looks up the descriptor for a (family, dialect) pair.
func (r *Registry) Resolve(family FormatFamily, dialect Dialect) (Descriptor, error) {
	d, ok := r.descriptors[string(family)+"::"+string(dialect)]
	if !ok {
		return Descriptor{}, &UnsupportedDialectError{Family: string(family), Dialect: string(dialect)}
	}
	return d, nil
}

// ResolveID looks up a descriptor by its wire identifier, e.g. "csv::thoth".
func (r *Registry) ResolveID(id string) (Descriptor, error) {
	family, dialect, found := strings.Cut(id, "::")
	if !found {
		return Descriptor{}, &UnsupportedDialectError{Family: id}
	}
	return r.Resolve(FormatFamily(family), Dialect(dialect))
}

// List returns every descriptor in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.descriptors[id])
	}
	return out
}
