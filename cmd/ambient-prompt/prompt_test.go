package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/ambient-prompt/internal/api"
	"github.com/joestump/ambient-prompt/internal/generator"
	"github.com/joestump/ambient-prompt/internal/promptclient"
	"github.com/joestump/ambient-prompt/internal/session"
)

type fixedGenerator struct {
	prompt string
	err    error
}

func (g fixedGenerator) Generate(_ context.Context, seed string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.prompt + " " + seed, nil
}

var _ generator.Generator = fixedGenerator{}

// setupCLI points the CLI at a test API and a temporary file store.
func setupCLI(t *testing.T, gen generator.Generator) {
	t.Helper()
	srv := httptest.NewServer(api.NewRouter(api.Deps{
		Generator: gen,
		Examples:  []string{"forest ambience", "ocean waves"},
	}))
	t.Cleanup(srv.Close)

	t.Chdir(t.TempDir())
	t.Setenv("AMBIENT_CLIENT_BASE_URL", srv.URL)
	t.Setenv("AMBIENT_STORE_DRIVER", "file")
	t.Setenv("AMBIENT_STORE_DIR", t.TempDir())
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	return runContext(t, context.Background(), cmd, args...)
}

func runContext(t *testing.T, ctx context.Context, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	cmd.SetContext(ctx)
	err := cmd.Execute()
	return out.String(), err
}

// stallingGenerator never answers before the request is abandoned.
type stallingGenerator struct{}

func (stallingGenerator) Generate(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestGenerateShowClear(t *testing.T) {
	setupCLI(t, fixedGenerator{prompt: "Drift slowly through"})

	out, err := run(t, newGenerateCmd(), "-q", "forest", "ambience")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := strings.TrimSpace(out); got != "Drift slowly through forest ambience" {
		t.Errorf("generate output = %q", got)
	}

	out, err = run(t, newShowCmd())
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if got := strings.TrimSpace(out); got != "Drift slowly through forest ambience" {
		t.Errorf("show output = %q, want saved prompt", got)
	}

	out, _ = run(t, newClearCmd())
	if !strings.Contains(out, "Prompt cleared.") {
		t.Errorf("clear output = %q", out)
	}
	out, _ = run(t, newClearCmd())
	if !strings.Contains(out, "Nothing to clear.") {
		t.Errorf("second clear output = %q", out)
	}
	out, _ = run(t, newShowCmd())
	if !strings.Contains(out, "No prompt saved.") {
		t.Errorf("show after clear = %q", out)
	}
}

func TestGenerate_ServerFailureKeepsSavedPrompt(t *testing.T) {
	setupCLI(t, fixedGenerator{prompt: "Hold a single chord under"})
	if _, err := run(t, newGenerateCmd(), "-q", "rain"); err != nil {
		t.Fatalf("first generate: %v", err)
	}

	failing := fixedGenerator{err: errors.New("backend down")}
	srv := httptest.NewServer(api.NewRouter(api.Deps{Generator: failing}))
	defer srv.Close()
	t.Setenv("AMBIENT_CLIENT_BASE_URL", srv.URL)

	_, err := run(t, newGenerateCmd(), "-q", "storm")
	if err == nil {
		t.Fatal("generate against failing server = nil error")
	}
	if !strings.Contains(err.Error(), "Failed to generate prompt") {
		t.Errorf("error = %q, want server message", err)
	}

	out, _ := run(t, newShowCmd())
	if got := strings.TrimSpace(out); got != "Hold a single chord under rain" {
		t.Errorf("show after failure = %q, want previous prompt", got)
	}
}

func TestGenerate_InterruptReportsRetryHint(t *testing.T) {
	setupCLI(t, stallingGenerator{})

	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(20*time.Millisecond, cancel)
	defer timer.Stop()

	_, err := runContext(t, ctx, newGenerateCmd(), "-q", "--timeout", "5s", "tidal", "pools")
	if err == nil {
		t.Fatal("interrupted generate = nil error")
	}
	if !strings.Contains(err.Error(), "Request was cancelled.") {
		t.Errorf("error = %q, want cancellation message", err)
	}
	if !strings.Contains(err.Error(), `retry with: ambient-prompt generate "tidal pools"`) {
		t.Errorf("error = %q, want retry hint", err)
	}
}

func TestExamples(t *testing.T) {
	setupCLI(t, fixedGenerator{prompt: "x"})
	out, err := run(t, newExamplesCmd())
	if err != nil {
		t.Fatalf("examples: %v", err)
	}
	if out != "forest ambience\nocean waves\n" {
		t.Errorf("examples output = %q", out)
	}
}

func TestPrintState(t *testing.T) {
	var buf bytes.Buffer
	if err := printState(&buf, session.State{Status: session.Ready, Prompt: "p"}, "s"); err != nil || buf.String() != "p\n" {
		t.Errorf("ready: out=%q err=%v", buf.String(), err)
	}

	err := printState(&buf, session.State{Status: session.Error, Kind: promptclient.Timeout, Message: promptclient.TimeoutMessage}, "rain")
	if err == nil || !strings.Contains(err.Error(), promptclient.TimeoutMessage) || !strings.Contains(err.Error(), `generate "rain"`) {
		t.Errorf("error state = %v", err)
	}
}
