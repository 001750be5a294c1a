// Package wordml writes .docx files covering the small WordprocessingML
// subset the report documents need: paragraphs with sized/bold/colored
// runs, bordered tables with shaded header cells, and A4 page margins.
// Output is byte-deterministic for identical input.
package wordml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"
)

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
)

// Margins are page margins in centimeters.
type Margins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

type block interface {
	writeXML(buf *bytes.Buffer)
}

// Document accumulates blocks in order and serializes them as a minimal
// OOXML package (content types, package rels, word/document.xml).
type Document struct {
	margins Margins
	blocks  []block
}

func New() *Document {
	return &Document{
		margins: Margins{Top: 2.5, Bottom: 2.5, Left: 2.5, Right: 2.5},
	}
}

func (d *Document) SetPageMargins(m Margins) {
	d.margins = m
}

func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{spaceBefore: -1, spaceAfter: -1}
	d.blocks = append(d.blocks, p)
	return p
}

func (d *Document) AddTable() *Table {
	t := &Table{}
	d.blocks = append(d.blocks, t)
	return t
}

// Paragraph holds runs plus the few paragraph properties the reports
// set: alignment and spacing before/after in points (-1 means unset).
type Paragraph struct {
	align       Alignment
	spaceBefore float64
	spaceAfter  float64
	runs        []*Run
}

func (p *Paragraph) SetAlignment(a Alignment) *Paragraph {
	p.align = a
	return p
}

func (p *Paragraph) SetSpaceBefore(pt float64) *Paragraph {
	p.spaceBefore = pt
	return p
}

func (p *Paragraph) SetSpaceAfter(pt float64) *Paragraph {
	p.spaceAfter = pt
	return p
}

func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{text: text}
	p.runs = append(p.runs, r)
	return r
}

// Run is a piece of text with character formatting. Size is in points;
// Color is a hex RGB string without the leading '#'.
type Run struct {
	text  string
	bold  bool
	size  float64
	color string
}

func (r *Run) SetBold(bold bool) *Run {
	r.bold = bold
	return r
}

func (r *Run) SetSize(pt float64) *Run {
	r.size = pt
	return r
}

func (r *Run) SetColor(hex string) *Run {
	r.color = strings.TrimPrefix(hex, "#")
	return r
}

type Table struct {
	rows []*TableRow
}

func (t *Table) AddRow() *TableRow {
	row := &TableRow{}
	t.rows = append(t.rows, row)
	return row
}

type TableRow struct {
	cells []*TableCell
}

func (r *TableRow) AddCell() *TableCell {
	c := &TableCell{}
	r.cells = append(r.cells, c)
	return c
}

// TableCell carries an optional header-row fill shade and one or more
// paragraphs. A cell with no paragraphs serializes with an empty one, as
// WordprocessingML requires.
type TableCell struct {
	shade string
	paras []*Paragraph
}

func (c *TableCell) SetShading(hex string) *TableCell {
	c.shade = strings.TrimPrefix(hex, "#")
	return c
}

func (c *TableCell) AddParagraph() *Paragraph {
	p := &Paragraph{spaceBefore: -1, spaceAfter: -1}
	c.paras = append(c.paras, p)
	return p
}

// Bytes serializes the document package.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes the document package to w.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", d.documentXML()},
	}
	for _, part := range parts {
		f, err := zw.CreateHeader(&zip.FileHeader{Name: part.name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.data)); err != nil {
			return fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize document: %w", err)
	}
	return nil
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// A4 page size in twentieths of a point.
const (
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
	twipsPerCm      = 567
)

func (d *Document) documentXML() string {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	buf.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	buf.WriteString(`<w:body>`)
	for _, b := range d.blocks {
		b.writeXML(&buf)
	}
	fmt.Fprintf(&buf,
		`<w:sectPr><w:pgSz w:w="%d" w:h="%d"/><w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr>`,
		pageWidthTwips, pageHeightTwips,
		cmToTwips(d.margins.Top), cmToTwips(d.margins.Right),
		cmToTwips(d.margins.Bottom), cmToTwips(d.margins.Left))
	buf.WriteString(`</w:body></w:document>`)
	return buf.String()
}

func (p *Paragraph) writeXML(buf *bytes.Buffer) {
	buf.WriteString(`<w:p>`)
	if p.align != "" || p.spaceBefore >= 0 || p.spaceAfter >= 0 {
		buf.WriteString(`<w:pPr>`)
		if p.spaceBefore >= 0 || p.spaceAfter >= 0 {
			buf.WriteString(`<w:spacing`)
			if p.spaceBefore >= 0 {
				fmt.Fprintf(buf, ` w:before="%d"`, ptToTwips(p.spaceBefore))
			}
			if p.spaceAfter >= 0 {
				fmt.Fprintf(buf, ` w:after="%d"`, ptToTwips(p.spaceAfter))
			}
			buf.WriteString(`/>`)
		}
		if p.align == AlignCenter {
			buf.WriteString(`<w:jc w:val="center"/>`)
		}
		buf.WriteString(`</w:pPr>`)
	}
	for _, r := range p.runs {
		r.writeXML(buf)
	}
	buf.WriteString(`</w:p>`)
}

func (r *Run) writeXML(buf *bytes.Buffer) {
	buf.WriteString(`<w:r>`)
	if r.bold || r.size > 0 || r.color != "" {
		buf.WriteString(`<w:rPr>`)
		if r.bold {
			buf.WriteString(`<w:b/>`)
		}
		if r.color != "" {
			fmt.Fprintf(buf, `<w:color w:val="%s"/>`, r.color)
		}
		if r.size > 0 {
			halfPoints := int(math.Round(r.size * 2))
			fmt.Fprintf(buf, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, halfPoints, halfPoints)
		}
		buf.WriteString(`</w:rPr>`)
	}
	buf.WriteString(`<w:t xml:space="preserve">`)
	escapeXML(buf, r.text)
	buf.WriteString(`</w:t></w:r>`)
}

func (t *Table) writeXML(buf *bytes.Buffer) {
	buf.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders>`)
	for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(buf, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="auto"/>`, edge)
	}
	buf.WriteString(`</w:tblBorders><w:tblLayout w:type="autofit"/></w:tblPr>`)
	for _, row := range t.rows {
		buf.WriteString(`<w:tr>`)
		for _, cell := range row.cells {
			cell.writeXML(buf)
		}
		buf.WriteString(`</w:tr>`)
	}
	buf.WriteString(`</w:tbl>`)
}

func (c *TableCell) writeXML(buf *bytes.Buffer) {
	buf.WriteString(`<w:tc><w:tcPr>`)
	if c.shade != "" {
		fmt.Fprintf(buf, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, c.shade)
	}
	buf.WriteString(`</w:tcPr>`)
	if len(c.paras) == 0 {
		buf.WriteString(`<w:p/>`)
	}
	for _, p := range c.paras {
		p.writeXML(buf)
	}
	buf.WriteString(`</w:tc>`)
}

func cmToTwips(cm float64) int {
	return int(math.Round(cm * twipsPerCm))
}

func ptToTwips(pt float64) int {
	return int(math.Round(pt * 20))
}

func escapeXML(buf *bytes.Buffer, s string) {
	// xml.EscapeText never fails writing to a bytes.Buffer.
	_ = xml.EscapeText(buf, []byte(s))
}
