package domain

// Span is a piece of inline text; bold spans are the labels of the
// patient, note and footer lines.
type Span struct {
	Text string
	Bold bool
}

// Cell is one table cell of a rendered report. Result cells are the ones
// carrying submitted values; the print encoding emphasizes them.
type Cell struct {
	Text   string
	Result bool
}

// TableLayout is one rendered section: a shaded header row followed by
// data rows in template order.
type TableLayout struct {
	Title  string
	Shade  string
	Header []string
	Rows   [][]Cell
}

// ReportLayout is the encoding-neutral form of a finished report. Every
// output encoding (docx, print HTML, PDF) walks the same layout, which is
// what keeps section order and row counts identical between them.
type ReportLayout struct {
	ClinicName  string
	Subtitle    string
	Title       string
	PatientLine []Span
	Tables      []TableLayout
	NoteLine    []Span
	FooterLines [][]Span
	Style       Style
}
