package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premiummedi/labreport/pkg/models/domain"
	"github.com/premiummedi/labreport/pkg/services/catalog"
	"github.com/premiummedi/labreport/pkg/store/patientdb"
)

func newTestService(t *testing.T) (*Service, *patientdb.Store) {
	t.Helper()
	dir := t.TempDir()

	cat, err := catalog.NewCatalog()
	require.NoError(t, err)

	now := func() time.Time {
		return time.Date(2026, 8, 31, 12, 34, 56, 0, time.UTC)
	}
	store, err := patientdb.NewStore(patientdb.Settings{
		DBPath:  filepath.Join(dir, "patients_db.json"),
		DocsDir: filepath.Join(dir, "saved_docs"),
		Logger:  zerolog.Nop(),
		Now:     now,
	})
	require.NoError(t, err)

	service := NewService(Dependencies{
		Catalog: cat,
		Store:   store,
		Clinic:  testClinic,
		Now:     now,
	})
	return service, store
}

func cbcRequest() domain.ReportRequest {
	return domain.ReportRequest{
		FirstName:  "Ana",
		LastName:   "Doe",
		Age:        "34",
		TestDate:   "2026-08-31",
		DoctorName: "მ. კაპანაძე",
		Values: map[string]string{
			"cbc_WBC": "6.2",
			"cbc_HGB": "141",
			"leuko_3": "55",
		},
	}
}

func TestPrintPageSavesDocumentAndRecord(t *testing.T) {
	service, store := newTestService(t)

	page, err := service.PrintPage(context.Background(), domain.TestTypeCBC, cbcRequest())
	require.NoError(t, err)

	assert.Contains(t, page, "window.print()")
	assert.Contains(t, page, "6.2")
	assert.Contains(t, page, "PREMIUM MEDI")

	set, err := store.Load()
	require.NoError(t, err)
	require.Len(t, set.Patients, 1)

	record := set.Patients[0]
	assert.Equal(t, "Ana", record.FirstName)
	assert.Equal(t, "CBC", record.TestType)
	assert.Equal(t, "CBC_Doe_123456.docx", record.Filename)

	path, err := store.DocumentPath(record.Filename)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestDocumentReturnsFilenameAndBytes(t *testing.T) {
	service, store := newTestService(t)

	filename, data, err := service.Document(context.Background(), domain.TestTypeCRP, domain.ReportRequest{
		LastName: "Doe",
		Values:   map[string]string{"res_CRP": "4.2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "CRP_Doe_123456.docx", filename)
	// zip magic
	require.True(t, len(data) > 4)
	assert.Equal(t, []byte("PK"), data[:2])

	set, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, set.Patients, 1)
}

func TestPDFDoesNotTouchIndex(t *testing.T) {
	service, store := newTestService(t)

	filename, data, err := service.PDF(context.Background(), domain.TestTypeTroponin, domain.ReportRequest{
		LastName: "Doe",
		Values:   map[string]string{"result_value": "უარყოფითი"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Trop_Doe_123456.pdf", filename)
	require.True(t, len(data) > 5)
	assert.Equal(t, []byte("%PDF-"), data[:5])

	set, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, set.Patients)
}

func TestRenderIsSideEffectFree(t *testing.T) {
	service, store := newTestService(t)

	tests := []struct {
		format   Format
		filename string
	}{
		{FormatDocx, "Urine_Doe_123456.docx"},
		{FormatHTML, "Urine_Doe_123456.html"},
		{FormatPDF, "Urine_Doe_123456.pdf"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			filename, data, err := service.Render(domain.TestTypeUrine, domain.ReportRequest{LastName: "Doe"}, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.filename, filename)
			assert.NotEmpty(t, data)
		})
	}

	set, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, set.Patients)
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"docx", "html", "pdf"} {
		format, err := ParseFormat(valid)
		require.NoError(t, err)
		assert.Equal(t, Format(valid), format)
	}

	_, err := ParseFormat("odt")
	assert.Error(t, err)
}

// The same submission rendered as print HTML and as a document must show
// the same tables: same section count, same row counts per section.
func TestEncodingsShareSectionAndRowCounts(t *testing.T) {
	service, _ := newTestService(t)

	cat, err := catalog.NewCatalog()
	require.NoError(t, err)

	for _, tt := range cat.TestTypes() {
		tpl, err := cat.Get(tt)
		require.NoError(t, err)

		layout := BuildLayout(tpl, cbcRequest(), testClinic)
		require.Len(t, layout.Tables, len(tpl.Sections))

		for i, section := range tpl.Sections {
			expected := len(section.Rows)
			switch section.Kind {
			case domain.SectionPaired:
				expected = len(section.Left)
				if len(section.Right) > expected {
					expected = len(section.Right)
				}
			case domain.SectionFolded:
				expected = (len(section.Rows) + 1) / 2
			}
			assert.Len(t, layout.Tables[i].Rows, expected, "%s section %d", tt, i)
		}

		_, docBytes, err := service.Render(tt, cbcRequest(), FormatDocx)
		require.NoError(t, err)
		assert.NotEmpty(t, docBytes)

		_, htmlBytes, err := service.Render(tt, cbcRequest(), FormatHTML)
		require.NoError(t, err)
		assert.NotEmpty(t, htmlBytes)
	}
}
