// Package officedoc encodes a report layout as a Word document.
package officedoc

import (
	"github.com/premiummedi/labreport/pkg/export/wordml"
	"github.com/premiummedi/labreport/pkg/models/domain"
)

// ContentType is the MIME type of the generated documents.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Brand color of the clinic header line.
const headerColor = "006400"

// Render builds the .docx bytes for a report layout. Section order, row
// order and header shading follow the layout verbatim.
func Render(layout domain.ReportLayout) ([]byte, error) {
	doc := wordml.New()
	doc.SetPageMargins(wordml.Margins{
		Top:    layout.Style.Margins.Top,
		Bottom: layout.Style.Margins.Bottom,
		Left:   layout.Style.Margins.Left,
		Right:  layout.Style.Margins.Right,
	})

	header := doc.AddParagraph().SetAlignment(wordml.AlignCenter).SetSpaceAfter(0)
	header.AddRun(layout.ClinicName).
		SetBold(true).
		SetSize(layout.Style.HeaderSize).
		SetColor(headerColor)

	subtitle := doc.AddParagraph().SetAlignment(wordml.AlignCenter).SetSpaceAfter(4)
	subtitle.AddRun(layout.Subtitle).SetSize(layout.Style.SubtitleSize)

	title := doc.AddParagraph().SetAlignment(wordml.AlignCenter).SetSpaceAfter(8)
	title.AddRun(layout.Title).SetBold(true).SetSize(layout.Style.TitleSize)

	addSpans(doc.AddParagraph().SetSpaceAfter(8), layout.PatientLine, layout.Style.BodySize)

	for _, table := range layout.Tables {
		addTable(doc, table, layout.Style)
	}

	if len(layout.NoteLine) > 0 {
		addSpans(doc.AddParagraph().SetSpaceBefore(8).SetSpaceAfter(2), layout.NoteLine, layout.Style.BodySize)
	}
	for _, line := range layout.FooterLines {
		addSpans(doc.AddParagraph().SetSpaceBefore(12), line, layout.Style.BodySize)
	}

	return doc.Bytes()
}

func addSpans(p *wordml.Paragraph, spans []domain.Span, size float64) {
	for _, span := range spans {
		p.AddRun(span.Text).SetBold(span.Bold).SetSize(size)
	}
}

func addTable(doc *wordml.Document, table domain.TableLayout, style domain.Style) {
	if table.Title != "" {
		p := doc.AddParagraph().SetSpaceBefore(8).SetSpaceAfter(2)
		p.AddRun(table.Title).SetBold(true).SetSize(style.BodySize)
	}

	t := doc.AddTable()

	headerRow := t.AddRow()
	for _, header := range table.Header {
		cell := headerRow.AddCell().SetShading(table.Shade)
		p := cell.AddParagraph().SetSpaceAfter(1)
		p.AddRun(header).SetBold(true).SetSize(style.TableSize)
	}

	for _, row := range table.Rows {
		tr := t.AddRow()
		for _, c := range row {
			p := tr.AddCell().AddParagraph().SetSpaceAfter(1)
			p.AddRun(c.Text).SetSize(style.TableSize)
		}
	}
}
