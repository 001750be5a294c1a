package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/premiummedi/labreport/pkg/models/domain"
	"github.com/premiummedi/labreport/pkg/services/report"
)

type RenderCmd struct {
	testType   string
	format     string
	out        string
	valuesPath string
	firstName  string
	lastName   string
	age        string
	testDate   string
	doctorName string
	service    *report.Service
}

func NewRenderCmd(service *report.Service) *cobra.Command {
	rc := &RenderCmd{service: service}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a report document without saving a patient record",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.testType, "type", "", "Test type (cbc, urine, crp, trop)")
	cmd.Flags().StringVar(&rc.format, "format", "docx", "Output format (docx, html, pdf)")
	cmd.Flags().StringVar(&rc.out, "out", "", "Output file path (default is the generated name)")
	cmd.Flags().StringVar(&rc.valuesPath, "values", "", "Path to a JSON file of field values")
	cmd.Flags().StringVar(&rc.firstName, "first", "", "Patient first name")
	cmd.Flags().StringVar(&rc.lastName, "last", "", "Patient last name")
	cmd.Flags().StringVar(&rc.age, "age", "", "Patient age")
	cmd.Flags().StringVar(&rc.testDate, "date", "", "Test date")
	cmd.Flags().StringVar(&rc.doctorName, "doctor", "", "Performing doctor name")

	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func (rc *RenderCmd) run(cmd *cobra.Command, args []string) error {
	t, err := domain.ParseTestTypeSlug(rc.testType)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(rc.format)
	if err != nil {
		return err
	}

	values := map[string]string{}
	if rc.valuesPath != "" {
		raw, err := os.ReadFile(rc.valuesPath)
		if err != nil {
			return fmt.Errorf("failed to read values file: %w", err)
		}
		if err := json.Unmarshal(raw, &values); err != nil {
			return fmt.Errorf("failed to parse values file: %w", err)
		}
	}

	req := domain.ReportRequest{
		FirstName:  rc.firstName,
		LastName:   rc.lastName,
		Age:        rc.age,
		TestDate:   rc.testDate,
		DoctorName: rc.doctorName,
		Values:     values,
	}

	filename, data, err := rc.service.Render(t, req, format)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	out := rc.out
	if out == "" {
		out = filename
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
