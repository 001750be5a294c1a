package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/premiummedi/labreport/pkg/models/domain"
)

type TableConfig struct {
	IDWidth      int
	NameWidth    int
	TestWidth    int
	DateWidth    int
	CreatedWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:      4,
		NameWidth:    30,
		TestWidth:    10,
		DateWidth:    12,
		CreatedWidth: 20,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// Handle prints patient records as a bordered table.
func (c *Reporter) Handle(records []domain.PatientRecord) error {
	sep := fmt.Sprintf("+%s+%s+%s+%s+%s+",
		strings.Repeat("-", c.config.IDWidth+2),
		strings.Repeat("-", c.config.NameWidth+2),
		strings.Repeat("-", c.config.TestWidth+2),
		strings.Repeat("-", c.config.DateWidth+2),
		strings.Repeat("-", c.config.CreatedWidth+2))

	row := func(id, name, test, date, created string) string {
		return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s | %-*s |",
			c.config.IDWidth, id,
			c.config.NameWidth, name,
			c.config.TestWidth, test,
			c.config.DateWidth, date,
			c.config.CreatedWidth, created)
	}

	lines := []string{
		sep,
		row("ID", "Patient", "Test", "Date", "Created"),
		sep,
	}
	for _, r := range records {
		name := fmt.Sprintf("%s %s", r.FirstName, r.LastName)
		lines = append(lines, row(fmt.Sprint(r.ID), name, r.TestType, r.TestDate, r.CreatedAt))
	}
	lines = append(lines, sep, fmt.Sprintf("%d record(s)", len(records)))

	_, err := fmt.Fprintln(c.writer, strings.Join(lines, "\n"))
	return err
}
