package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func defaultGenerator(t *testing.T) *TemplateGenerator {
	t.Helper()
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	g, err := NewTemplateGenerator(c.Templates)
	if err != nil {
		t.Fatalf("new template generator: %v", err)
	}
	return g
}

func TestDefaultCatalog(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(c.Templates) < 4 {
		t.Errorf("len(templates) = %d, want at least 4", len(c.Templates))
	}
	if len(c.Examples) == 0 {
		t.Error("default catalog has no example seeds")
	}
}

func TestTemplateGenerator_EveryTemplateContainsSeed(t *testing.T) {
	g := defaultGenerator(t)
	seeds := []string{
		"forest",
		"gentle rain on a tin roof",
		"ocean waves & distant thunder",
		"<script>",
		"neon {{.Seed}} city",
		"überwald at dusk",
	}

	for i := 0; i < g.Len(); i++ {
		for _, seed := range seeds {
			got, err := g.render(i, seed)
			if err != nil {
				t.Fatalf("render(%d, %q): %v", i, seed, err)
			}
			if got == "" {
				t.Errorf("render(%d, %q) returned empty prompt", i, seed)
			}
			if !strings.Contains(got, seed) {
				t.Errorf("render(%d, %q) = %q, does not contain seed", i, seed, got)
			}
			if n := strings.Count(got, seed); n != 1 {
				t.Errorf("render(%d, %q) contains seed %d times, want 1", i, seed, n)
			}
		}
	}
}

func TestTemplateGenerator_GenerateUsesPicker(t *testing.T) {
	g := defaultGenerator(t)
	for i := 0; i < g.Len(); i++ {
		g.pick = func(n int) int {
			if n != g.Len() {
				t.Errorf("pick called with n = %d, want %d", n, g.Len())
			}
			return i
		}
		got, err := g.Generate(context.Background(), "rain")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		want, _ := g.render(i, "rain")
		if got != want {
			t.Errorf("Generate with pick=%d = %q, want %q", i, got, want)
		}
	}
}

func TestTemplateGenerator_RandomSelectionStaysInRange(t *testing.T) {
	g := defaultGenerator(t)
	for i := 0; i < 200; i++ {
		got, err := g.Generate(context.Background(), "morning birdsong")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !strings.Contains(got, "morning birdsong") {
			t.Fatalf("Generate = %q, missing seed", got)
		}
	}
}

// validTemplates returns MinTemplates-1 well-formed templates followed by extra.
func validTemplates(extra string) []string {
	var out []string
	for i := 1; i < MinTemplates; i++ {
		out = append(out, fmt.Sprintf("Piece %d drifting through {{.Seed}}.", i))
	}
	return append(out, extra)
}

func TestNewTemplateGenerator_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		templates []string
	}{
		{name: "empty list", templates: nil},
		{name: "too few templates", templates: validTemplates("")[:MinTemplates-1]},
		{name: "missing placeholder", templates: validTemplates("A piece about nothing.")},
		{name: "placeholder twice", templates: validTemplates("{{.Seed}} and {{.Seed}}")},
		{name: "parse error", templates: validTemplates("About {{.Seed}} {{if}}")},
		{name: "seed inside comment", templates: validTemplates("A drone piece {{/* {{.Seed}} */}} for nobody.")},
		{name: "seed in dead branch", templates: validTemplates("A drone piece {{if false}}{{.Seed}}{{end}} for nobody.")},
		{name: "seed truncated", templates: validTemplates("About {{printf \"%.2s\" .Seed}}.")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTemplateGenerator(tt.templates); err == nil {
				t.Errorf("NewTemplateGenerator(%q) = nil error, want error", tt.templates)
			}
		})
	}
}

func TestNewTemplateGenerator_AcceptsSeedInsideActions(t *testing.T) {
	g, err := NewTemplateGenerator(validTemplates("{{with .Seed}}Hum quietly beneath {{.}}.{{end}}"))
	if err != nil {
		t.Fatalf("NewTemplateGenerator: %v", err)
	}
	got, err := g.render(MinTemplates-1, "forest")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hum quietly beneath forest." {
		t.Errorf("render = %q, want %q", got, "Hum quietly beneath forest.")
	}
}

func TestLoadCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := "templates:\n" +
		"  - \"Drone piece for {{.Seed}}.\"\n" +
		"  - \"Slow swells around {{.Seed}}.\"\n" +
		"  - \"Tape loops of {{.Seed}}.\"\n" +
		"  - \"Held chords under {{.Seed}}.\"\n" +
		"examples:\n  - glacier\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(c.Templates) != 4 || c.Templates[0] != "Drone piece for {{.Seed}}." {
		t.Errorf("templates = %q", c.Templates)
	}
	if len(c.Examples) != 1 || c.Examples[0] != "glacier" {
		t.Errorf("examples = %q", c.Examples)
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("examples: [a]\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadCatalog(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadCatalog(missing) = nil error, want error")
	}
	if _, err := LoadCatalog(empty); err == nil {
		t.Error("LoadCatalog(no templates) = nil error, want error")
	}

	short := filepath.Join(dir, "short.yaml")
	if err := os.WriteFile(short, []byte("templates:\n  - \"About {{.Seed}}.\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCatalog(short); err == nil {
		t.Error("LoadCatalog(one template) = nil error, want error")
	}
}
