package textsource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
)

type stubRunner struct {
	out  string
	err  error
	name string
	args []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.name = name
	s.args = args
	return []byte(s.out), []byte("stub stderr"), s.err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestExtractPlainText(t *testing.T) {
	path := writeFile(t, "resume.txt", "JOHN SMITH\r\nData\tScientist\n\n\n\nEmail:   john@x.io\fPage two\f")

	res, err := NewExtractor(Config{}, nil).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := []string{"JOHN SMITH\nData Scientist\n\nEmail: john@x.io", "Page two"}
	if diff := cmp.Diff(want, res.Pages); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
	if res.SourceType != constants.TEXT || res.Method != "plain" {
		t.Errorf("got source %q method %q", res.SourceType, res.Method)
	}
}

func TestExtractHTML(t *testing.T) {
	html := `<html><head><title>CV</title><style>p{color:red}</style></head>
<body><h1>Jane Doe</h1><p>jane@doe.dev<br>+1 555 010 9999</p><script>var x=1;</script>
<ul><li><a href="https://github.com/jdoe">github.com/jdoe</a></li></ul></body></html>`
	path := writeFile(t, "cv.html", html)

	res, err := NewExtractor(Config{}, nil).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(res.Pages))
	}
	var lines []string
	for _, ln := range strings.Split(res.Pages[0], "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	want := []string{"Jane Doe", "jane@doe.dev", "+1 555 010 9999", "github.com/jdoe"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractPDFWithPdftotext(t *testing.T) {
	path := writeFile(t, "resume.pdf", "%PDF-1.4 placeholder")
	stub := &stubRunner{out: "Jane Mary Doe\n\fSecond page\n\f"}
	e := NewExtractor(Config{Method: MethodPdftotext, Pdftotext: "/opt/poppler/pdftotext"}, nil).WithRunner(stub)

	res, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if stub.name != "/opt/poppler/pdftotext" {
		t.Errorf("runner called with %q", stub.name)
	}
	if got := stub.args[0]; got != "-layout" {
		t.Errorf("first arg = %q, want -layout", got)
	}
	if diff := cmp.Diff([]string{"Jane Mary Doe", "Second page"}, res.Pages); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
	if res.Method != "pdf-text" {
		t.Errorf("method = %q", res.Method)
	}
}

func TestExtractPdftotextFailure(t *testing.T) {
	path := writeFile(t, "resume.pdf", "%PDF-1.4 placeholder")
	stub := &stubRunner{err: errors.New("exit status 1")}
	e := NewExtractor(Config{Method: MethodPdftotext}, nil).WithRunner(stub)

	_, err := e.Extract(context.Background(), path)
	if !errors.Is(err, common.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestExtractMaxPages(t *testing.T) {
	path := writeFile(t, "long.txt", "one\ftwo\fthree")
	res, err := NewExtractor(Config{MaxPages: 2}, nil).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if diff := cmp.Diff([]string{"one", "two"}, res.Pages); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("expected a truncation warning, got %v", res.Warnings)
	}
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := writeFile(t, "broken.pdf", "this is not a pdf at all")
	unsupported := writeFile(t, "resume.docx", "PK")

	tests := []struct {
		name         string
		path         string
		wantSentinel error
	}{
		{"missing file", filepath.Join(dir, "nope.pdf"), common.ErrSourceUnavailable},
		{"directory", dir, common.ErrSourceUnavailable},
		{"unparseable pdf", garbage, common.ErrSourceUnavailable},
		{"unsupported extension", unsupported, common.ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExtractor(Config{}, nil).Extract(context.Background(), tt.path)
			if !errors.Is(err, tt.wantSentinel) {
				t.Fatalf("expected %v, got %v", tt.wantSentinel, err)
			}
			if !common.IsSourceUnavailable(err) {
				t.Errorf("IsSourceUnavailable(%v) = false", err)
			}
		})
	}
}

func TestCleanPage(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  a\t\tb  ", "a b"},
		{"a\r\nb\rc", "a\nb\nc"},
		{"top\n-----\nbottom", "top\n\nbottom"},
		{"a\n\n\n\n\nb", "a\n\nb"},
	}
	for _, tt := range tests {
		if got := CleanPage(tt.in); got != tt.want {
			t.Errorf("CleanPage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
