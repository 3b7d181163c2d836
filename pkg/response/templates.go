package response

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed data/templates.yaml
var templateData []byte

// Section holds the alternative phrasings of one response type.
type Section struct {
	Intro      []string `yaml:"intro"`
	Detail     []string `yaml:"detail"`
	Conclusion []string `yaml:"conclusion"`
}

// Templates holds a Section per response type.
type Templates struct {
	Recommendation Section `yaml:"recommendation"`
	Optimization   Section `yaml:"optimization"`
	Cost           Section `yaml:"cost"`
}

// DefaultTemplates returns the built-in phrasings.
func DefaultTemplates() (Templates, error) {
	return ParseTemplates(templateData)
}

// ParseTemplates decodes a templates document and checks that every section
// has at least one phrasing per part and that every detail body parses.
func ParseTemplates(data []byte) (Templates, error) {
	var t Templates
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return Templates{}, fmt.Errorf("failed to parse response templates: %w", err)
	}

	for name, s := range map[Kind]Section{
		KindRecommendation: t.Recommendation,
		KindOptimization:   t.Optimization,
		KindCost:           t.Cost,
	} {
		if len(s.Intro) == 0 || len(s.Detail) == 0 || len(s.Conclusion) == 0 {
			return Templates{}, fmt.Errorf("response templates: %s needs intro, detail and conclusion entries", name)
		}
		for i, body := range s.Detail {
			if _, err := parseDetail(body); err != nil {
				return Templates{}, fmt.Errorf("response templates: %s detail %d: %w", name, i, err)
			}
		}
	}
	return t, nil
}

func (t Templates) section(k Kind) Section {
	switch k {
	case KindOptimization:
		return t.Optimization
	case KindCost:
		return t.Cost
	default:
		return t.Recommendation
	}
}

var funcs = template.FuncMap{
	"bullets": func(items []string) string {
		return strings.Join(items, "\n- ")
	},
}

func parseDetail(body string) (*template.Template, error) {
	return template.New("detail").Funcs(funcs).Option("missingkey=error").Parse(body)
}

func render(body string, data any) (string, error) {
	tmpl, err := parseDetail(body)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render response detail: %w", err)
	}
	return buf.String(), nil
}
