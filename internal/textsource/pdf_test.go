package textsource

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractPDFNativeKeepsLines(t *testing.T) {
	res, err := NewExtractor(Config{}, nil).Extract(context.Background(), "testdata/multiline.pdf")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := []string{"JOHN SMITH\nData Scientist\nMobile: +91 98765 43210\nlinkedin.com/in/jsmith"}
	if diff := cmp.Diff(want, res.Pages); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
	if res.Method != "pdf-native" {
		t.Errorf("method = %q", res.Method)
	}
}

func TestLineCollector(t *testing.T) {
	tests := []struct {
		name  string
		shows [][3]any // x, y, text
		want  string
	}{
		{
			name:  "vertical moves split lines",
			shows: [][3]any{{72.0, 720.0, "JOHN SMITH"}, {72.0, 706.0, "Data Scientist"}},
			want:  "JOHN SMITH\nData Scientist",
		},
		{
			name:  "same baseline gets a space",
			shows: [][3]any{{72.0, 700.0, "Email:"}, {120.0, 700.0, "j@x.io"}},
			want:  "Email: j@x.io",
		},
		{
			name:  "same position joins",
			shows: [][3]any{{72.0, 700.0, "Jo"}, {72.0, 700.0, "hn"}, {72.0, 700.0, ""}},
			want:  "John",
		},
		{
			name:  "existing space kept single",
			shows: [][3]any{{72.0, 700.0, "Jane "}, {110.0, 700.0, "Doe"}},
			want:  "Jane Doe",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := &lineCollector{}
			for _, s := range tt.shows {
				lc.show(s[0].(float64), s[1].(float64), s[2].(string))
			}
			if got := strings.Join(lc.lines, "\n"); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
