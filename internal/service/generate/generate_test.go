package generate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"sopgen/internal/domain"
	models "sopgen/internal/domain/models/sop"
	sopSvc "sopgen/internal/domain/services/sop"
)

type stubProvider struct {
	name      string
	available bool
	reply     string
	err       error
	calls     int
	lastReq   *sopSvc.PromptRequest
}

func (p *stubProvider) Name() string    { return p.name }
func (p *stubProvider) Available() bool { return p.available }

func (p *stubProvider) GenerateText(_ context.Context, req *sopSvc.PromptRequest) (string, error) {
	p.calls++
	p.lastReq = req
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRouteProviders(t *testing.T) {
	tests := []struct {
		title string
		first string
	}{
		{"Normative References", "anthropic"},
		{"Citation Index", "anthropic"},
		{"Test Procedure", "openai"},
		{"Assembly Method", "openai"},
		{"Purpose", "openai"},
		{"Scope", "openai"},
		{"Appendix", "openai"},
	}

	for _, tt := range tests {
		order := routeProviders(tt.title)
		if order[0] != tt.first {
			t.Errorf("routeProviders(%q)[0] = %q, want %q", tt.title, order[0], tt.first)
		}
		if order[len(order)-1] != "mock" {
			t.Errorf("routeProviders(%q) does not end with mock: %v", tt.title, order)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("Normative References", "Battery Testing", "cell qualification", "IEC 62133")
	for _, want := range []string{"Battery Testing", "cell qualification", "IEC 62133"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "{topic}") || strings.Contains(prompt, "{standards}") {
		t.Errorf("prompt has unexpanded placeholders:\n%s", prompt)
	}

	generic := buildPrompt("Unheard Of Section", "Battery Testing", "ctx", "")
	if !strings.Contains(generic, "'Unheard Of Section'") {
		t.Errorf("default template should name the section, got:\n%s", generic)
	}
}

func TestGenerateSectionContentFallsBack(t *testing.T) {
	oai := &stubProvider{name: "openai", available: true, err: errors.New("quota exceeded")}
	ant := &stubProvider{name: "anthropic", available: true, reply: "anthropic content"}
	mock := &stubProvider{name: "mock", available: true, reply: "mock content"}

	svc := NewService(testLogger(), oai, ant, mock)
	doc := models.NewDocument("Thermal Cycling", "SOP-001", "alice")

	got, err := svc.GenerateSectionContent(context.Background(), doc, "Test Procedure", "")
	if err != nil {
		t.Fatalf("GenerateSectionContent: %v", err)
	}
	if got != "anthropic content" {
		t.Errorf("content = %q, want fallback provider output", got)
	}
	if oai.calls != 1 || ant.calls != 1 || mock.calls != 0 {
		t.Errorf("call counts = openai %d anthropic %d mock %d", oai.calls, ant.calls, mock.calls)
	}
}

func TestGenerateSectionContentSkipsUnavailable(t *testing.T) {
	oai := &stubProvider{name: "openai", available: false, reply: "never"}
	mock := &stubProvider{name: "mock", available: true, reply: "mock content"}

	svc := NewService(testLogger(), oai, mock)
	doc := models.NewDocument("Thermal Cycling", "SOP-001", "alice")

	got, err := svc.GenerateSectionContent(context.Background(), doc, "Purpose", "")
	if err != nil {
		t.Fatalf("GenerateSectionContent: %v", err)
	}
	if got != "mock content" {
		t.Errorf("content = %q, want mock output", got)
	}
	if oai.calls != 0 {
		t.Errorf("unavailable provider was called %d times", oai.calls)
	}
}

func TestGenerateSectionContentUsesDocumentContext(t *testing.T) {
	mock := &stubProvider{name: "mock", available: true, reply: "ok"}
	svc := NewService(testLogger(), mock)

	doc := models.NewDocument("Thermal Cycling", "SOP-001", "alice")
	doc.Metadata.Description = "48V pack qualification"
	doc.Metadata.Standards = []string{"IEC 62133", "UN 38.3"}

	if _, err := svc.GenerateSectionContent(context.Background(), doc, "Normative References", ""); err != nil {
		t.Fatalf("GenerateSectionContent: %v", err)
	}
	if mock.lastReq == nil {
		t.Fatal("provider was not called")
	}
	if mock.lastReq.System != systemPrompt {
		t.Errorf("system prompt = %q", mock.lastReq.System)
	}
	for _, want := range []string{"48V pack qualification", "IEC 62133, UN 38.3"} {
		if !strings.Contains(mock.lastReq.Prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, mock.lastReq.Prompt)
		}
	}

	// Explicit context overrides the document description.
	if _, err := svc.GenerateSectionContent(context.Background(), doc, "Purpose", "focus on operator safety"); err != nil {
		t.Fatalf("GenerateSectionContent: %v", err)
	}
	if !strings.Contains(mock.lastReq.Prompt, "focus on operator safety") {
		t.Errorf("prompt missing override context:\n%s", mock.lastReq.Prompt)
	}
	if strings.Contains(mock.lastReq.Prompt, "48V pack qualification") {
		t.Errorf("prompt should not keep the description when context is given")
	}
}

func TestGenerateSectionContentAllFail(t *testing.T) {
	oai := &stubProvider{name: "openai", available: true, err: errors.New("down")}
	svc := NewService(testLogger(), oai)
	doc := models.NewDocument("Thermal Cycling", "SOP-001", "alice")

	if _, err := svc.GenerateSectionContent(context.Background(), doc, "Purpose", ""); err == nil {
		t.Fatal("expected error when every provider fails")
	}
}

func TestPopulateSection(t *testing.T) {
	mock := &stubProvider{name: "mock", available: true, reply: "drafted body"}
	svc := NewService(testLogger(), mock)

	doc := models.NewDocument("Thermal Cycling", "SOP-001", "alice")
	doc.AddSection("Purpose", "", models.ContentText, -1)

	if err := svc.PopulateSection(context.Background(), doc, "Purpose", ""); err != nil {
		t.Fatalf("PopulateSection: %v", err)
	}
	sec := doc.GetSection("Purpose")
	if sec.Content != "drafted body" {
		t.Errorf("content = %q", sec.Content)
	}
	if !sec.AIGenerated {
		t.Error("section not marked AI generated")
	}

	if err := svc.PopulateSection(context.Background(), doc, "Missing", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing section error = %v, want ErrNotFound", err)
	}

	sec.Locked = true
	if err := svc.PopulateSection(context.Background(), doc, "Purpose", ""); !errors.Is(err, domain.ErrLocked) {
		t.Errorf("locked section error = %v, want ErrLocked", err)
	}
}
