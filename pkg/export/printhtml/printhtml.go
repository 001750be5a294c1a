// Package printhtml encodes a report layout as a standalone HTML page
// styled for A4 printing. The page triggers the browser print dialog on
// its own, once, half a second after load; no user click is assumed.
package printhtml

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/premiummedi/labreport/pkg/models/domain"
)

var pageTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>{{.Title}}</title>
<style>
@page{size:A4;margin:{{.MarginMM}}mm}
body{font-family:Arial,sans-serif;padding:10px;font-size:{{.BodyPx}}px}
h1{color:green;text-align:center;font-size:{{.HeaderPx}}px}
h2{text-align:center;font-size:{{.TitlePx}}px}
h3{font-size:{{.SectionPx}}px;margin:10px 0 5px 0}
p.center{text-align:center}
table{width:100%;border-collapse:collapse;margin:5px 0}
th,td{border:1px solid #ddd;padding:6px;text-align:left;font-size:{{.TablePx}}px}
</style></head><body>
<h1>{{.ClinicName}}</h1>
<p class="center">{{.Subtitle}}</p>
<h2>{{.Title}}</h2>
<p>{{template "spans" .PatientLine}}</p>
{{range .Tables}}{{if .Title}}<h3>{{.Title}}</h3>
{{end}}<table>
<tr>{{$shade := .Shade}}{{range .Header}}<th style="background:#{{$shade}}">{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}{{if .Result}}<td><b>{{.Text}}</b></td>{{else}}<td>{{.Text}}</td>{{end}}{{end}}</tr>
{{end}}</table>
{{end}}{{if .NoteLine}}<p>{{template "spans" .NoteLine}}</p>
{{end}}{{range .FooterLines}}<p>{{template "spans" .}}</p>
{{end}}<script>window.onload=function(){setTimeout(function(){window.print()},500)}</script>
</body></html>
{{define "spans"}}{{range .}}{{if .Bold}}<b>{{.Text}}</b>{{else}}{{.Text}}{{end}}{{end}}{{end}}`))

type pageData struct {
	domain.ReportLayout
	MarginMM  int
	HeaderPx  int
	TitlePx   int
	SectionPx int
	BodyPx    int
	TablePx   int
}

// Render produces the print page for a layout. Output is byte-identical
// for identical layouts.
func Render(layout domain.ReportLayout) (string, error) {
	data := pageData{
		ReportLayout: layout,
		MarginMM:     layout.Style.PageMarginMM,
		HeaderPx:     int(layout.Style.HeaderSize) + 4,
		TitlePx:      int(layout.Style.TitleSize) + 4,
		SectionPx:    int(layout.Style.BodySize) + 1,
		BodyPx:       int(layout.Style.BodySize) + 2,
		TablePx:      int(layout.Style.TableSize) + 1,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render print page: %w", err)
	}
	return buf.String(), nil
}
