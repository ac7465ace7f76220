package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/names"
	"github.com/joseph-ayodele/resume-extractor/internal/record"
)

func sampleRecord() record.Record {
	return record.Assemble(record.Extracted{
		Name:        names.Name{First: "Jane", Last: "Doe"},
		Email:       "jane@doe.dev",
		SocialLinks: []string{"https://github.com/jdoe", "https://linkedin.com/in/jdoe"},
	})
}

var wantRows = [][]string{
	{"Field", "Value"},
	{"First Name", "Jane"},
	{"Middle Name", ""},
	{"Last Name", "Doe"},
	{"Email", "jane@doe.dev"},
	{"Mobile Phone", ""},
	{"Social Links", "https://github.com/jdoe, https://linkedin.com/in/jdoe"},
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := NewService(nil).Write(context.Background(), sampleRecord(), path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(f.GetActiveSheetIndex()); got != SheetName {
		t.Errorf("active sheet = %q, want %q", got, SheetName)
	}
	// Empty trailing cells are dropped by GetRows, so compare cell by cell.
	for i, want := range wantRows {
		for j, v := range want {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			got, err := f.GetCellValue(SheetName, cell)
			if err != nil {
				t.Fatalf("GetCellValue(%s): %v", cell, err)
			}
			if got != v {
				t.Errorf("cell %s = %q, want %q", cell, got, v)
			}
		}
	}
	if w, _ := f.GetColWidth(SheetName, "B"); w != 90 {
		t.Errorf("column B width = %v, want 90", w)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := NewService(nil).Write(context.Background(), sampleRecord(), path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if diff := cmp.Diff(wantRows, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := NewService(nil).Write(context.Background(), sampleRecord(), path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var keys []string
	gjson.ParseBytes(b).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	wantKeys := []string{"First Name", "Middle Name", "Last Name", "Email", "Mobile Phone", "Social Links"}
	if diff := cmp.Diff(wantKeys, keys); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
	if got := gjson.GetBytes(b, "Social Links.1").String(); got != "https://linkedin.com/in/jdoe" {
		t.Errorf("Social Links.1 = %q", got)
	}
	if got := gjson.GetBytes(b, "Middle Name"); !got.Exists() || got.String() != "" {
		t.Errorf("Middle Name = %s", got.Raw)
	}
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yml")
	if err := NewService(nil).Write(context.Background(), sampleRecord(), path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		First  string   `yaml:"First Name"`
		Middle string   `yaml:"Middle Name"`
		Links  []string `yaml:"Social Links"`
	}
	if err := yaml.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.First != "Jane" || got.Middle != "" {
		t.Errorf("names = %q/%q", got.First, got.Middle)
	}
	if diff := cmp.Diff([]string{"https://github.com/jdoe", "https://linkedin.com/in/jdoe"}, got.Links); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}
	if strings.Index(string(b), "First Name") > strings.Index(string(b), "Social Links") {
		t.Errorf("keys out of order:\n%s", b)
	}
}

func TestWriteErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		want error
	}{
		{"unsupported extension", filepath.Join(dir, "out.docx"), common.ErrUnsupportedFormat},
		{"missing directory", filepath.Join(dir, "nope", "out.xlsx"), common.ErrSinkWrite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewService(nil).Write(context.Background(), sampleRecord(), tt.path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if _, statErr := os.Stat(tt.path); !os.IsNotExist(statErr) {
				t.Errorf("file should not exist, stat err = %v", statErr)
			}
		})
	}
}

func TestWriteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := NewService(nil).Write(ctx, sampleRecord(), path); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
