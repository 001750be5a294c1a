// Package pdfrender encodes a report layout as an A4 PDF. A Unicode TTF
// font must be configured for Georgian text; without one the built-in
// Helvetica core font is used, which only covers Latin glyphs.
package pdfrender

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/premiummedi/labreport/pkg/models/domain"
)

// ContentType is the MIME type of the generated PDF files.
const ContentType = "application/pdf"

const fontFamily = "report"

// Render builds the PDF bytes for a report layout. fontPath may be empty;
// see the package comment.
func Render(layout domain.ReportLayout, fontPath string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")

	family := "Helvetica"
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", fontPath)
		pdf.AddUTF8Font(fontFamily, "B", fontPath)
		family = fontFamily
		translate = func(s string) string { return s }
	}

	margin := float64(layout.Style.PageMarginMM)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	contentWidth := 210 - 2*margin

	// Clinic header in the brand green.
	pdf.SetFont(family, "B", layout.Style.HeaderSize)
	pdf.SetTextColor(0, 100, 0)
	pdf.CellFormat(contentWidth, 8, translate(layout.ClinicName), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont(family, "", layout.Style.SubtitleSize)
	pdf.CellFormat(contentWidth, 6, translate(layout.Subtitle), "", 1, "C", false, 0, "")

	pdf.SetFont(family, "B", layout.Style.TitleSize)
	pdf.CellFormat(contentWidth, 8, translate(layout.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	writeSpans(pdf, family, layout.Style.BodySize, layout.PatientLine, translate)
	pdf.Ln(2)

	for _, table := range layout.Tables {
		writeTable(pdf, family, layout.Style, table, contentWidth, translate)
	}

	if len(layout.NoteLine) > 0 {
		pdf.Ln(2)
		writeSpans(pdf, family, layout.Style.BodySize, layout.NoteLine, translate)
	}
	pdf.Ln(3)
	for _, line := range layout.FooterLines {
		writeSpans(pdf, family, layout.Style.BodySize, line, translate)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSpans(pdf *fpdf.Fpdf, family string, size float64, spans []domain.Span, translate func(string) string) {
	for _, span := range spans {
		style := ""
		if span.Bold {
			style = "B"
		}
		pdf.SetFont(family, style, size)
		pdf.CellFormat(pdf.GetStringWidth(translate(span.Text))+1, 6, translate(span.Text), "", 0, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func writeTable(
	pdf *fpdf.Fpdf,
	family string,
	style domain.Style,
	table domain.TableLayout,
	contentWidth float64,
	translate func(string) string,
) {
	if table.Title != "" {
		pdf.Ln(2)
		pdf.SetFont(family, "B", style.BodySize)
		pdf.CellFormat(contentWidth, 6, translate(table.Title), "", 1, "L", false, 0, "")
	}

	colWidth := contentWidth / float64(len(table.Header))
	rowHeight := style.TableSize * 0.6

	r, g, b := shadeRGB(table.Shade)
	pdf.SetFillColor(r, g, b)
	pdf.SetFont(family, "B", style.TableSize)
	for _, header := range table.Header {
		pdf.CellFormat(colWidth, rowHeight, translate(header), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(rowHeight)

	pdf.SetFont(family, "", style.TableSize)
	for _, row := range table.Rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, rowHeight, translate(cell.Text), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(rowHeight)
	}
}

// shadeRGB parses a six-digit hex fill; malformed values fall back to a
// neutral gray rather than failing the render.
func shadeRGB(shade string) (int, int, int) {
	var r, g, b int
	if _, err := fmt.Sscanf(shade, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 230, 230, 230
	}
	return r, g, b
}
