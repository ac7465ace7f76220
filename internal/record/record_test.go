package record

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/names"
)

func sample() Extracted {
	return Extracted{
		Name:        names.Name{First: "Jane", Middle: "Mary", Last: "Doe"},
		Email:       "jane@doe.dev",
		Phone:       "+91 98765 43210",
		SocialLinks: []string{"https://github.com/jdoe", "https://linkedin.com/in/jdoe"},
	}
}

func TestAssembleKeepsAllKeysInOrder(t *testing.T) {
	for name, ex := range map[string]Extracted{"empty": {}, "full": sample()} {
		t.Run(name, func(t *testing.T) {
			rec := Assemble(ex)
			var keys []string
			for _, f := range rec.Fields() {
				keys = append(keys, f.Key)
			}
			if diff := cmp.Diff(constants.FieldKeys(), keys); diff != "" {
				t.Errorf("keys mismatch (-want +got):\n%s", diff)
			}
			v, ok := rec.Get(constants.FieldSocialLinks)
			if !ok || v.Kind() != KindSequence {
				t.Errorf("social links should be a sequence, got %v (ok=%v)", v.Kind(), ok)
			}
		})
	}
}

func TestRows(t *testing.T) {
	rows := Assemble(sample()).Rows()
	want := []Row{
		{"First Name", "Jane"},
		{"Middle Name", "Mary"},
		{"Last Name", "Doe"},
		{"Email", "jane@doe.dev"},
		{"Mobile Phone", "+91 98765 43210"},
		{"Social Links", "https://github.com/jdoe, https://linkedin.com/in/jdoe"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Assemble(sample()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"First Name":"Jane","Middle Name":"Mary","Last Name":"Doe","Email":"jane@doe.dev",` +
		`"Mobile Phone":"+91 98765 43210","Social Links":["https://github.com/jdoe","https://linkedin.com/in/jdoe"]}`
	if string(b) != want {
		t.Errorf("json = %s\nwant  %s", b, want)
	}

	empty, err := json.Marshal(Assemble(Extracted{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := gjson.GetBytes(empty, "Social Links"); !got.IsArray() || len(got.Array()) != 0 {
		t.Errorf("empty social links = %s, want []", got.Raw)
	}
	if got := gjson.GetBytes(empty, "Email"); !got.Exists() || got.String() != "" {
		t.Errorf("empty email = %s", got.Raw)
	}
}

func TestValueIsImmutable(t *testing.T) {
	links := []string{"https://github.com/jdoe"}
	rec := Assemble(Extracted{SocialLinks: links})
	links[0] = "mutated"

	v, _ := rec.Get(constants.FieldSocialLinks)
	items := v.Items()
	items[0] = "mutated again"
	if got := v.Items()[0]; got != "https://github.com/jdoe" {
		t.Errorf("sequence leaked, got %q", got)
	}
}

func TestFound(t *testing.T) {
	if n := Assemble(Extracted{}).Found(); n != 0 {
		t.Errorf("Found() = %d for empty record", n)
	}
	if n := Assemble(sample()).Found(); n != 6 {
		t.Errorf("Found() = %d, want 6", n)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Assemble(sample())); err != nil {
		t.Fatalf("Validate(sample): %v", err)
	}
	if err := Validate(Assemble(Extracted{})); err != nil {
		t.Fatalf("Validate(empty): %v", err)
	}

	upper := Assemble(Extracted{SocialLinks: []string{"HTTPS://GitHub.com/x"}})
	if err := Validate(upper); err != nil {
		t.Fatalf("Validate(uppercase scheme): %v", err)
	}

	bad := Assemble(Extracted{SocialLinks: []string{"github.com/jdoe"}})
	if err := Validate(bad); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation for scheme-less link, got %v", err)
	}

	if err := ValidateJSON([]byte(`{"Email":""}`)); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing keys, got %v", err)
	}
}
