package report

import "fmt"

// Format selects an output encoding for offline rendering.
type Format string

const (
	FormatDocx Format = "docx"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDocx, FormatHTML, FormatPDF:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format: %q", s)
	}
}
