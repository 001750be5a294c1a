// Package report is the single parametrized report engine: it turns a
// reference template plus one submission into the output encodings, and
// performs the save-to-store side effect of the print pathway.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/premiummedi/labreport/pkg/export/officedoc"
	"github.com/premiummedi/labreport/pkg/export/pdfrender"
	"github.com/premiummedi/labreport/pkg/export/printhtml"
	"github.com/premiummedi/labreport/pkg/models/domain"
	"github.com/premiummedi/labreport/pkg/services/catalog"
	"github.com/premiummedi/labreport/pkg/store/patientdb"
)

type Dependencies struct {
	Catalog     catalog.Catalog
	Store       *patientdb.Store
	Clinic      domain.Clinic
	PDFFontPath string
	// Now is the clock used in generated file names; defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	catalog     catalog.Catalog
	store       *patientdb.Store
	clinic      domain.Clinic
	pdfFontPath string
	now         func() time.Time
}

func NewService(deps Dependencies) *Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		catalog:     deps.Catalog,
		store:       deps.Store,
		clinic:      deps.Clinic,
		pdfFontPath: deps.PDFFontPath,
		now:         now,
	}
}

// Template exposes the catalog entry for a test type, for form rendering.
func (s *Service) Template(t domain.TestType) (domain.ReferenceTemplate, error) {
	return s.catalog.Get(t)
}

// PrintPage renders the self-printing HTML page for a submission and
// performs the save side effect: the Word document is written to disk
// and the patient index gains a record.
func (s *Service) PrintPage(ctx context.Context, t domain.TestType, req domain.ReportRequest) (string, error) {
	tpl, err := s.catalog.Get(t)
	if err != nil {
		return "", err
	}
	layout := BuildLayout(tpl, req, s.clinic)

	if _, _, err := s.saveDocument(ctx, tpl, layout, req); err != nil {
		return "", err
	}
	return printhtml.Render(layout)
}

// Document renders the Word document for a submission, saves it with the
// usual side effect, and returns the stored file name plus its bytes.
func (s *Service) Document(ctx context.Context, t domain.TestType, req domain.ReportRequest) (string, []byte, error) {
	tpl, err := s.catalog.Get(t)
	if err != nil {
		return "", nil, err
	}
	layout := BuildLayout(tpl, req, s.clinic)

	filename, data, err := s.saveDocument(ctx, tpl, layout, req)
	if err != nil {
		return "", nil, err
	}
	return filename, data, nil
}

// PDF renders the PDF variant. PDFs are view-only output and do not
// touch the patient index.
func (s *Service) PDF(_ context.Context, t domain.TestType, req domain.ReportRequest) (string, []byte, error) {
	tpl, err := s.catalog.Get(t)
	if err != nil {
		return "", nil, err
	}
	layout := BuildLayout(tpl, req, s.clinic)

	data, err := pdfrender.Render(layout, s.pdfFontPath)
	if err != nil {
		return "", nil, err
	}
	filename := fmt.Sprintf("%s_%s_%s.pdf", tpl.FilePrefix, req.LastName, s.now().Format("150405"))
	return filename, data, nil
}

// Render produces one encoding of a report without touching the store
// or the patient index. It backs offline generation from the terminal.
func (s *Service) Render(t domain.TestType, req domain.ReportRequest, format Format) (string, []byte, error) {
	tpl, err := s.catalog.Get(t)
	if err != nil {
		return "", nil, err
	}
	layout := BuildLayout(tpl, req, s.clinic)
	filename := fmt.Sprintf("%s_%s_%s.%s", tpl.FilePrefix, req.LastName, s.now().Format("150405"), format)

	switch format {
	case FormatDocx:
		data, err := officedoc.Render(layout)
		return filename, data, err
	case FormatHTML:
		page, err := printhtml.Render(layout)
		return filename, []byte(page), err
	case FormatPDF:
		data, err := pdfrender.Render(layout, s.pdfFontPath)
		return filename, data, err
	default:
		return "", nil, fmt.Errorf("unknown output format: %q", format)
	}
}

// saveDocument is the write-file-then-append-record pair. The two steps
// are not transactional: when the append fails after a successful write,
// the orphan file stays on disk and the inconsistency is logged.
func (s *Service) saveDocument(
	ctx context.Context,
	tpl domain.ReferenceTemplate,
	layout domain.ReportLayout,
	req domain.ReportRequest,
) (string, []byte, error) {
	logger := zerolog.Ctx(ctx)

	data, err := officedoc.Render(layout)
	if err != nil {
		return "", nil, fmt.Errorf("failed to render document: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.docx", tpl.FilePrefix, req.LastName, s.now().Format("150405"))
	if _, err := s.store.SaveDocument(filename, data); err != nil {
		return "", nil, err
	}

	if _, err := s.store.Append(req.FirstName, req.LastName, req.Age, tpl.Type, filename, req.TestDate); err != nil {
		logger.Error().Err(err).
			Str("filename", filename).
			Msg("document saved but record append failed, index and disk are inconsistent")
	}
	return filename, data, nil
}
