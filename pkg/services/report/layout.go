package report

import (
	"fmt"
	"strings"

	"github.com/premiummedi/labreport/pkg/models/domain"
)

// BuildLayout flattens a reference template plus one submission into the
// encoding-neutral report layout. It is pure: same template and request
// always produce the same layout, and a missing submitted value always
// becomes an empty result cell.
func BuildLayout(tpl domain.ReferenceTemplate, req domain.ReportRequest, clinic domain.Clinic) domain.ReportLayout {
	layout := domain.ReportLayout{
		ClinicName: clinic.Name,
		Subtitle:   fmt.Sprintf("%s | ტელ: %s", clinic.Subtitle, strings.Join(clinic.Phones, ", ")),
		Title:      tpl.Title,
		PatientLine: []domain.Span{
			{Text: "პაციენტი: ", Bold: true},
			{Text: fmt.Sprintf("%s %s, %s წ.   ", req.FirstName, req.LastName, req.Age)},
			{Text: "თარიღი: ", Bold: true},
			{Text: req.TestDate},
		},
		Style: tpl.Style,
	}

	for _, section := range tpl.Sections {
		layout.Tables = append(layout.Tables, buildTable(section, req))
	}

	layout.NoteLine = buildNoteLine(tpl.Notes, req)
	layout.FooterLines = buildFooterLines(tpl.Equipment, req.DoctorName)
	return layout
}

func buildTable(section domain.Section, req domain.ReportRequest) domain.TableLayout {
	table := domain.TableLayout{
		Title: section.Title,
		Shade: section.Shade,
	}
	for _, col := range section.Columns {
		table.Header = append(table.Header, col.Header)
	}

	switch section.Kind {
	case domain.SectionPaired:
		table.Rows = pairedRows(section, req)
	case domain.SectionFolded:
		table.Rows = foldedRows(section, req)
	default:
		for _, row := range section.Rows {
			table.Rows = append(table.Rows, paramCells(section.Columns, row, req))
		}
	}
	return table
}

func paramCells(columns []domain.Column, row domain.ParameterRow, req domain.ReportRequest) []domain.Cell {
	cells := make([]domain.Cell, 0, len(columns))
	for _, col := range columns {
		switch col.Kind {
		case domain.ColumnAbbr:
			cells = append(cells, domain.Cell{Text: row.Abbr})
		case domain.ColumnLabel:
			cells = append(cells, domain.Cell{Text: row.Label})
		case domain.ColumnResult:
			cells = append(cells, domain.Cell{Text: req.Value(row.Field), Result: true})
		case domain.ColumnRange:
			cells = append(cells, domain.Cell{Text: row.Range})
		case domain.ColumnUnit:
			cells = append(cells, domain.Cell{Text: row.Unit})
		}
	}
	return cells
}

// pairedRows walks both lists in step; the shorter side renders blank
// label and result cells once it runs out.
func pairedRows(section domain.Section, req domain.ReportRequest) [][]domain.Cell {
	var rows [][]domain.Cell
	count := len(section.Left)
	if len(section.Right) > count {
		count = len(section.Right)
	}
	for i := 0; i < count; i++ {
		row := make([]domain.Cell, 4)
		row[1].Result = true
		row[3].Result = true
		if i < len(section.Left) {
			row[0].Text = section.Left[i].Label
			row[1].Text = req.Value(section.Left[i].Field)
		}
		if i < len(section.Right) {
			row[2].Text = section.Right[i].Label
			row[3].Text = req.Value(section.Right[i].Field)
		}
		rows = append(rows, row)
	}
	return rows
}

// foldedRows packs the single row list two parameters per table row.
func foldedRows(section domain.Section, req domain.ReportRequest) [][]domain.Cell {
	var rows [][]domain.Cell
	for i := 0; i < len(section.Rows); i += 2 {
		row := make([]domain.Cell, 4)
		row[1].Result = true
		row[3].Result = true
		row[0].Text = section.Rows[i].Label
		row[1].Text = req.Value(section.Rows[i].Field)
		if i+1 < len(section.Rows) {
			row[2].Text = section.Rows[i+1].Label
			row[3].Text = req.Value(section.Rows[i+1].Field)
		}
		rows = append(rows, row)
	}
	return rows
}

func buildNoteLine(notes []domain.NoteField, req domain.ReportRequest) []domain.Span {
	var line []domain.Span
	for i, note := range notes {
		value := req.Value(note.Field)
		if i < len(notes)-1 {
			value += "  "
		}
		line = append(line,
			domain.Span{Text: note.Label + ": ", Bold: true},
			domain.Span{Text: value},
		)
	}
	return line
}

func buildFooterLines(equipment, doctor string) [][]domain.Span {
	var lines [][]domain.Span
	if equipment != "" {
		lines = append(lines, []domain.Span{
			{Text: "აპარატურა: ", Bold: true},
			{Text: equipment},
		})
	}
	lines = append(lines, []domain.Span{
		{Text: "გამოკვლევა შეასრულა: ", Bold: true},
		{Text: doctor + "    "},
		{Text: "ხელმოწერა: _________"},
	})
	return lines
}
