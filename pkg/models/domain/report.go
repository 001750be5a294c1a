package domain

import "fmt"

// TestType identifies one of the laboratory tests the clinic performs.
// The set is closed; adding a test means a new catalog file plus a new
// constant here.
type TestType string

const (
	TestTypeCBC      TestType = "CBC"
	TestTypeUrine    TestType = "Urine"
	TestTypeCRP      TestType = "CRP"
	TestTypeTroponin TestType = "Troponin"
)

// Slug is the URL path segment the test type is served under.
func (t TestType) Slug() string {
	switch t {
	case TestTypeCBC:
		return "cbc"
	case TestTypeUrine:
		return "urine"
	case TestTypeCRP:
		return "crp"
	case TestTypeTroponin:
		return "trop"
	}
	return ""
}

// ParseTestTypeSlug resolves a URL path segment back to a test type.
func ParseTestTypeSlug(slug string) (TestType, error) {
	for _, t := range []TestType{TestTypeCBC, TestTypeUrine, TestTypeCRP, TestTypeTroponin} {
		if t.Slug() == slug {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown test type %q", slug)
}

type SectionKind string

const (
	// SectionParams is a plain one-parameter-per-row table.
	SectionParams SectionKind = "params"
	// SectionPaired lays two independent row lists side by side; the
	// shorter list leaves its opposite cells blank.
	SectionPaired SectionKind = "paired"
	// SectionFolded wraps a single row list two entries per table row.
	SectionFolded SectionKind = "folded"
)

type ColumnKind string

const (
	ColumnAbbr   ColumnKind = "abbr"
	ColumnLabel  ColumnKind = "label"
	ColumnResult ColumnKind = "result"
	ColumnRange  ColumnKind = "range"
	ColumnUnit   ColumnKind = "unit"
)

// Column describes one table column: which row attribute it shows and the
// header text printed in the shaded header row.
type Column struct {
	Kind   ColumnKind `yaml:"kind"`
	Header string     `yaml:"header"`
}

// ParameterRow is a single line item of a reference template. Field is the
// flat form key the submitted result arrives under (e.g. cbc_WBC, phys_3,
// epi_squamous); saved forms depend on these keys, so they never change.
type ParameterRow struct {
	Abbr  string `yaml:"abbr"`
	Label string `yaml:"label"`
	Range string `yaml:"range"`
	Unit  string `yaml:"unit"`
	Field string `yaml:"field"`
}

// Section is a named group of parameters rendered as one table with a
// shaded header row. Rows is used by params and folded sections, Left and
// Right by paired sections.
type Section struct {
	Title   string         `yaml:"title"`
	Kind    SectionKind    `yaml:"kind"`
	Shade   string         `yaml:"shade"`
	Columns []Column       `yaml:"columns"`
	Rows    []ParameterRow `yaml:"rows"`
	Left    []ParameterRow `yaml:"left"`
	Right   []ParameterRow `yaml:"right"`
}

// NoteField is a labelled free-text line rendered below the tables, such
// as the CBC morphology notes.
type NoteField struct {
	Label string `yaml:"label"`
	Field string `yaml:"field"`
}

// Margins are page margins in centimeters.
type Margins struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// Style carries the per-test presentation constants: page margins, font
// point sizes and the print-page margin. Declared data, so the renderer
// stays free of per-test branches.
type Style struct {
	Margins      Margins `yaml:"margins"`
	HeaderSize   float64 `yaml:"header_size"`
	SubtitleSize float64 `yaml:"subtitle_size"`
	TitleSize    float64 `yaml:"title_size"`
	BodySize     float64 `yaml:"body_size"`
	TableSize    float64 `yaml:"table_size"`
	PageMarginMM int     `yaml:"page_margin_mm"`
}

// ReferenceTemplate is the immutable per-test catalog entry: ordered
// sections with labels, reference ranges and units, plus presentation
// style and document metadata. Section and row order define the rendered
// order in every output encoding.
type ReferenceTemplate struct {
	Type       TestType    `yaml:"type"`
	Code       string      `yaml:"code"`
	Title      string      `yaml:"title"`
	FilePrefix string      `yaml:"file_prefix"`
	Style      Style       `yaml:"style"`
	Sections   []Section   `yaml:"sections"`
	Notes      []NoteField `yaml:"notes"`
	Equipment  string      `yaml:"equipment"`
}

// Clinic is the identity block printed at the top of every document.
type Clinic struct {
	Name     string
	Subtitle string
	Phones   []string
}
