package translate

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	models "sopgen/internal/domain/models/sop"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTranslateServer answers with the gtx array shape, translating by
// uppercasing the query.
func fakeTranslateServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		reply := []interface{}{
			[]interface{}{
				[]interface{}{strings.ToUpper(q), q, nil, nil},
			},
			nil,
			"en",
		}
		json.NewEncoder(w).Encode(reply)
	}))
}

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hindi", "hi"},
		{"Chinese (Simplified)", "zh-CN"},
		{"English", "en"},
		{"", "en"},
		{"pt", "pt"},
	}
	for _, tt := range tests {
		if got := LanguageCode(tt.in); got != tt.want {
			t.Errorf("LanguageCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTranslateText(t *testing.T) {
	srv := fakeTranslateServer(t)
	defer srv.Close()

	tr := NewGoogleTranslator(testLogger(), WithEndpoint(srv.URL))
	ctx := context.Background()

	if got := tr.TranslateText(ctx, "hello world", "Spanish"); got != "HELLO WORLD" {
		t.Errorf("TranslateText = %q", got)
	}
	if got := tr.TranslateText(ctx, "keep as is", "English"); got != "keep as is" {
		t.Errorf("English target should pass through, got %q", got)
	}
	if got := tr.TranslateText(ctx, "   ", "Spanish"); got != "   " {
		t.Errorf("blank text should pass through, got %q", got)
	}
}

func TestTranslateTextErrorMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := NewGoogleTranslator(testLogger(), WithEndpoint(srv.URL))

	got := tr.TranslateText(context.Background(), "critical procedure text", "Hindi")
	if !strings.HasPrefix(got, "[Translation Error: critical procedure text") {
		t.Errorf("expected in-band error marker, got %q", got)
	}
}

func TestTranslateTextChunksLongInput(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		q := r.URL.Query().Get("q")
		if len(q) > 5000 {
			t.Errorf("chunk exceeds endpoint limit: %d chars", len(q))
		}
		json.NewEncoder(w).Encode([]interface{}{
			[]interface{}{[]interface{}{strings.ToUpper(q), q}},
		})
	}))
	defer srv.Close()

	tr := NewGoogleTranslator(testLogger(), WithEndpoint(srv.URL))

	para := strings.Repeat("lorem ipsum dolor sit amet ", 120) // ~3200 chars
	text := para + "\n\n" + para + "\n\n" + para

	got := tr.TranslateText(context.Background(), text, "French")
	if requests < 2 {
		t.Errorf("expected chunked requests, got %d", requests)
	}
	if !strings.Contains(got, "LOREM IPSUM") {
		t.Errorf("chunked translation lost content: %q", got[:80])
	}
	if strings.Count(got, "\n\n") != 2 {
		t.Errorf("paragraph joins = %d, want 2", strings.Count(got, "\n\n"))
	}
}

func TestSplitText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   []string
	}{
		{
			name:   "fits in one chunk",
			text:   "a\n\nb",
			maxLen: 100,
			want:   []string{"a\n\nb"},
		},
		{
			name:   "splits at paragraph boundary",
			text:   strings.Repeat("x", 60) + "\n\n" + strings.Repeat("y", 60),
			maxLen: 80,
			want:   []string{strings.Repeat("x", 60), strings.Repeat("y", 60)},
		},
		{
			name:   "oversized paragraph kept whole",
			text:   strings.Repeat("z", 200),
			maxLen: 80,
			want:   []string{strings.Repeat("z", 200)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitText(tt.text, tt.maxLen)
			if len(got) != len(tt.want) {
				t.Fatalf("chunks = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTranslateDocument(t *testing.T) {
	srv := fakeTranslateServer(t)
	defer srv.Close()

	tr := NewGoogleTranslator(testLogger(), WithEndpoint(srv.URL))

	doc := models.NewDocument("battery test", "SOP-001", "alice")
	doc.Metadata.Company = "acme corp"
	doc.AddSection("purpose", "do the thing", models.ContentText, -1)
	doc.AddSection("notes", "", models.ContentText, -1)

	out := tr.TranslateDocument(context.Background(), doc, "Spanish")

	if out.Title != "BATTERY TEST" {
		t.Errorf("title = %q", out.Title)
	}
	if out.Metadata.Company != "ACME CORP" {
		t.Errorf("company = %q", out.Metadata.Company)
	}
	if out.Metadata.TranslatedTo != "Spanish" || out.Metadata.OriginalLanguage != "English" {
		t.Errorf("language markers = %q / %q", out.Metadata.TranslatedTo, out.Metadata.OriginalLanguage)
	}

	sec := out.Sections[0]
	if sec.Title != "PURPOSE" || sec.Content != "DO THE THING" {
		t.Errorf("section = %q / %q", sec.Title, sec.Content)
	}
	if sec.Metadata["translated"] != "true" || sec.Metadata["language"] != "Spanish" {
		t.Errorf("section metadata = %v", sec.Metadata)
	}

	// Empty content stays empty but still gets markers.
	if out.Sections[1].Content != "" {
		t.Errorf("empty content changed: %q", out.Sections[1].Content)
	}
	if out.Sections[1].Metadata["translated"] != "true" {
		t.Errorf("empty section missing marker")
	}

	// The original document is untouched.
	if doc.Title != "battery test" || doc.Sections[0].Content != "do the thing" {
		t.Error("original document was mutated")
	}
	if doc.Metadata.TranslatedTo != "" {
		t.Error("original metadata was mutated")
	}
}
