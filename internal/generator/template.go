package generator

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// SeedPlaceholder marks where the seed is substituted in a template.
const SeedPlaceholder = "{{.Seed}}"

// MinTemplates is the smallest catalog a TemplateGenerator accepts.
const MinTemplates = 4

// probeSeed is rendered through every template at construction time; it must
// come back out exactly once.
const probeSeed = "\x00ambient-prompt-seed\x00"

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the set of prompt templates and example seeds a deployment serves.
type Catalog struct {
	Templates []string `yaml:"templates"`
	Examples  []string `yaml:"examples"`
}

// LoadCatalog reads a YAML catalog from path, or the embedded default when
// path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = b
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.Templates) < MinTemplates {
		return nil, fmt.Errorf("catalog has %d templates, need at least %d", len(c.Templates), MinTemplates)
	}
	return &c, nil
}

// TemplateGenerator fills one of a fixed set of templates with the seed.
type TemplateGenerator struct {
	templates []*template.Template
	pick      func(n int) int
}

// NewTemplateGenerator parses at least MinTemplates templates. Each one must
// render the seed verbatim exactly once.
func NewTemplateGenerator(sources []string) (*TemplateGenerator, error) {
	if len(sources) < MinTemplates {
		return nil, fmt.Errorf("got %d templates, need at least %d", len(sources), MinTemplates)
	}

	g := &TemplateGenerator{pick: rand.IntN}
	for i, src := range sources {
		tmpl, err := template.New(fmt.Sprintf("prompt-%d", i)).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", i, err)
		}
		g.templates = append(g.templates, tmpl)

		out, err := g.render(i, probeSeed)
		if err != nil {
			return nil, err
		}
		if n := strings.Count(out, probeSeed); n != 1 {
			return nil, fmt.Errorf("template %d: seed must render exactly once, found %d", i, n)
		}
	}
	return g, nil
}

// Len returns the number of templates.
func (g *TemplateGenerator) Len() int { return len(g.templates) }

// Generate renders a uniformly chosen template with the seed.
func (g *TemplateGenerator) Generate(_ context.Context, seed string) (string, error) {
	return g.render(g.pick(len(g.templates)), seed)
}

func (g *TemplateGenerator) render(i int, seed string) (string, error) {
	var buf bytes.Buffer
	if err := g.templates[i].Execute(&buf, struct{ Seed string }{seed}); err != nil {
		return "", fmt.Errorf("render template %d: %w", i, err)
	}
	return buf.String(), nil
}
