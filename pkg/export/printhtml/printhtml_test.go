package printhtml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premiummedi/labreport/pkg/models/domain"
)

func sampleLayout() domain.ReportLayout {
	return domain.ReportLayout{
		ClinicName: "PREMIUM MEDI",
		Subtitle:   "საოჯახო მედიცინის ცენტრი | ტელ: 558-27-55-51",
		Title:      "შარდის საერთო ანალიზი",
		PatientLine: []domain.Span{
			{Text: "პაციენტი: ", Bold: true},
			{Text: "Ana Doe, 34 წ.   "},
		},
		Tables: []domain.TableLayout{
			{
				Title:  "ფიზიკო-ქიმიური თვისებები",
				Shade:  "FFF2CC",
				Header: []string{"პარამეტრი", "შედეგი"},
				Rows: [][]domain.Cell{
					{{Text: "ფერი"}, {Text: "ჩალისფერი", Result: true}},
					{{Text: "ცილა"}, {Text: "", Result: true}},
				},
			},
			{
				Title:  "მიკროსკოპია",
				Shade:  "E2EFDA",
				Header: []string{"ეპითელიუმი", "შედეგი"},
				Rows: [][]domain.Cell{
					{{Text: "ბრტყელი"}, {Text: "2-3", Result: true}},
				},
			},
		},
		FooterLines: [][]domain.Span{{
			{Text: "გამოკვლევა შეასრულა: ", Bold: true},
			{Text: "მ. კაპანაძე    "},
		}},
		Style: domain.Style{
			HeaderSize:   16,
			TitleSize:    14,
			BodySize:     13,
			TableSize:    11,
			PageMarginMM: 10,
		},
	}
}

func TestRenderPrintPage(t *testing.T) {
	page, err := Render(sampleLayout())
	require.NoError(t, err)

	assert.Contains(t, page, "<h1>PREMIUM MEDI</h1>")
	assert.Contains(t, page, "margin:10mm")
	assert.Contains(t, page, `<th style="background:#FFF2CC">`)
	assert.Contains(t, page, `<th style="background:#E2EFDA">`)
	assert.Contains(t, page, "<td><b>ჩალისფერი</b></td>")
	// An unsubmitted value still emits its (empty) cell.
	assert.Contains(t, page, "<td><b></b></td>")
	assert.Contains(t, page, "<b>პაციენტი: </b>")
}

func TestRenderTriggersPrintDialogOnce(t *testing.T) {
	page, err := Render(sampleLayout())
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(page, "window.print()"))
	assert.Contains(t, page, "setTimeout(function(){window.print()},500)")
}

func TestRenderKeepsSectionOrder(t *testing.T) {
	page, err := Render(sampleLayout())
	require.NoError(t, err)

	first := strings.Index(page, "ფიზიკო-ქიმიური თვისებები")
	second := strings.Index(page, "მიკროსკოპია")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestRenderIsByteIdentical(t *testing.T) {
	first, err := Render(sampleLayout())
	require.NoError(t, err)
	second, err := Render(sampleLayout())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
