package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordshandlers "github.com/premiummedi/labreport/pkg/handlers/records"
	reportshandlers "github.com/premiummedi/labreport/pkg/handlers/reports"
	"github.com/premiummedi/labreport/pkg/models/api"
	"github.com/premiummedi/labreport/pkg/models/domain"
	"github.com/premiummedi/labreport/pkg/services/catalog"
	"github.com/premiummedi/labreport/pkg/services/report"
	"github.com/premiummedi/labreport/pkg/store/patientdb"
	"github.com/premiummedi/labreport/pkg/web"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()

	cat, err := catalog.NewCatalog()
	require.NoError(t, err)

	store, err := patientdb.NewStore(patientdb.Settings{
		DBPath:  filepath.Join(dir, "patients_db.json"),
		DocsDir: filepath.Join(dir, "saved_docs"),
		Logger:  zerolog.Nop(),
		Now: func() time.Time {
			return time.Date(2026, 8, 31, 12, 34, 56, 0, time.UTC)
		},
	})
	require.NoError(t, err)

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	clinic := domain.Clinic{
		Name:     "PREMIUM MEDI",
		Subtitle: "საოჯახო მედიცინის ცენტრი",
		Phones:   []string{"558-27-55-51"},
	}
	service := report.NewService(report.Dependencies{
		Catalog: cat,
		Store:   store,
		Clinic:  clinic,
		Now: func() time.Time {
			return time.Date(2026, 8, 31, 12, 34, 56, 0, time.UTC)
		},
	})

	router := ConfigureRouter(zerolog.Nop(), Config{
		Dependencies: Dependencies{
			Reports: reportshandlers.NewHandler(service, renderer, clinic),
			Records: recordshandlers.NewHandler(store, cat, renderer, clinic),
		},
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

func postForm(t *testing.T, url string, form url.Values) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.PostForm(url, form)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, body
}

func cbcForm() url.Values {
	return url.Values{
		"first_name":  {"Ana"},
		"last_name":   {"Doe"},
		"age":         {"34"},
		"test_date":   {"2026-08-31"},
		"doctor_name": {"მ. კაპანაძე"},
		"cbc_WBC":     {"6.2"},
		"cbc_HGB":     {"141"},
	}
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "PREMIUM MEDI")
	for _, slug := range []string{"/cbc", "/urine", "/crp", "/trop"} {
		assert.Contains(t, body, `href="`+slug+`"`)
	}
}

func TestEntryForm(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/cbc")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="cbc_WBC"`)
	assert.Contains(t, body, `name="leuko_8"`)
	assert.Contains(t, body, `action="/cbc/print"`)
}

func TestEntryFormUnknownTest(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := get(t, srv.URL+"/biopsy")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPrintSavesRecord(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postForm(t, srv.URL+"/cbc/print", cbcForm())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "window.print()")
	assert.Contains(t, string(body), "6.2")

	resp, searchBody := get(t, srv.URL+"/search?q=doe")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var search api.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(searchBody), &search))
	require.Len(t, search.Results, 1)
	assert.Equal(t, "Ana", search.Results[0].FirstName)
	assert.Equal(t, "CBC_Doe_123456.docx", search.Results[0].Filename)
}

func TestDocumentDownloadRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postForm(t, srv.URL+"/crp/doc", url.Values{
		"last_name": {"Doe"},
		"res_CRP":   {"4.2"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "wordprocessingml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	require.True(t, len(body) > 2)
	assert.Equal(t, "PK", string(body[:2]))

	resp, dl := get(t, srv.URL+"/download/CRP_Doe_123456.docx")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(dl, "PK"))
}

func TestDownloadMissingFile(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := get(t, srv.URL+"/download/nope.docx")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPDFDoesNotCreateRecord(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postForm(t, srv.URL+"/trop/pdf", url.Values{
		"last_name":    {"Doe"},
		"result_value": {"უარყოფითი"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(body), "%PDF-"))

	resp, searchBody := get(t, srv.URL+"/search?q=")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var search api.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(searchBody), &search))
	assert.Empty(t, search.Results)
}

func TestDeleteRecord(t *testing.T) {
	srv := newTestServer(t)

	_, _ = postForm(t, srv.URL+"/cbc/print", cbcForm())

	resp, searchBody := get(t, srv.URL+"/search?q=doe")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var search api.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(searchBody), &search))
	require.Len(t, search.Results, 1)

	resp, delBody := postForm(t, srv.URL+"/delete/"+strconv.Itoa(search.Results[0].ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var del api.DeleteResponse
	require.NoError(t, json.Unmarshal(delBody, &del))
	assert.True(t, del.Success)

	resp, _ = get(t, srv.URL+"/download/"+search.Results[0].Filename)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteUnknownRecord(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postForm(t, srv.URL+"/delete/42", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var del api.DeleteResponse
	require.NoError(t, json.Unmarshal(body, &del))
	assert.False(t, del.Success)
}
