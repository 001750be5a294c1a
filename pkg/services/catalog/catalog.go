// Package catalog holds the reference templates for every supported
// laboratory test: parameter rows, reference ranges, units and the
// per-test presentation style. Templates are parsed once from embedded
// YAML and are read-only afterwards.
package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/premiummedi/labreport/pkg/models/domain"
)

//go:embed templates/*.yaml
var templateFS embed.FS

// Catalog is a pure lookup of reference templates by test type.
type Catalog interface {
	Get(t domain.TestType) (domain.ReferenceTemplate, error)
	TestTypes() []domain.TestType
}

type catalog struct {
	templates map[domain.TestType]domain.ReferenceTemplate
}

// NewCatalog parses the embedded template files and validates that every
// supported test type is present exactly once.
func NewCatalog() (Catalog, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded templates: %w", err)
	}

	templates := make(map[domain.TestType]domain.ReferenceTemplate, len(entries))
	for _, entry := range entries {
		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", entry.Name(), err)
		}

		var tpl domain.ReferenceTemplate
		if err := yaml.Unmarshal(data, &tpl); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", entry.Name(), err)
		}
		if err := validate(tpl); err != nil {
			return nil, fmt.Errorf("invalid template %s: %w", entry.Name(), err)
		}
		if _, exists := templates[tpl.Type]; exists {
			return nil, fmt.Errorf("duplicate template for test type %s", tpl.Type)
		}
		templates[tpl.Type] = tpl
	}

	for _, t := range allTestTypes() {
		if _, ok := templates[t]; !ok {
			return nil, fmt.Errorf("missing template for test type %s", t)
		}
	}

	return &catalog{templates: templates}, nil
}

func (c *catalog) Get(t domain.TestType) (domain.ReferenceTemplate, error) {
	tpl, ok := c.templates[t]
	if !ok {
		return domain.ReferenceTemplate{}, fmt.Errorf("no template for test type %q", t)
	}
	return tpl, nil
}

func (c *catalog) TestTypes() []domain.TestType {
	return allTestTypes()
}

func allTestTypes() []domain.TestType {
	return []domain.TestType{
		domain.TestTypeCBC,
		domain.TestTypeUrine,
		domain.TestTypeCRP,
		domain.TestTypeTroponin,
	}
}

func validate(tpl domain.ReferenceTemplate) error {
	if tpl.Type.Slug() == "" {
		return fmt.Errorf("unsupported test type %q", tpl.Type)
	}
	if tpl.Title == "" {
		return fmt.Errorf("template has no title")
	}
	if tpl.FilePrefix == "" {
		return fmt.Errorf("template has no file prefix")
	}
	if len(tpl.Sections) == 0 {
		return fmt.Errorf("template has no sections")
	}
	for i, section := range tpl.Sections {
		if len(section.Columns) == 0 {
			return fmt.Errorf("section %d has no columns", i)
		}
		switch section.Kind {
		case domain.SectionParams, domain.SectionFolded:
			if len(section.Rows) == 0 {
				return fmt.Errorf("section %d has no rows", i)
			}
		case domain.SectionPaired:
			if len(section.Left) == 0 && len(section.Right) == 0 {
				return fmt.Errorf("section %d has no rows", i)
			}
		default:
			return fmt.Errorf("section %d has unknown kind %q", i, section.Kind)
		}
	}
	return nil
}
