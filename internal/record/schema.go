package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
)

// Schema returns the JSON-Schema of a serialized record as a generic map.
func Schema() map[string]any {
	str := map[string]any{"type": "string"}
	props := map[string]any{
		constants.FieldFirstName:  str,
		constants.FieldMiddleName: str,
		constants.FieldLastName:   str,
		constants.FieldEmail: map[string]any{
			"type":    "string",
			"pattern": `^$|^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`,
		},
		constants.FieldMobilePhone: map[string]any{
			"type":    "string",
			"pattern": `^$|^\+?\d[\d\s\-()]*\d$`,
		},
		constants.FieldSocialLinks: map[string]any{
			"type":        "array",
			"uniqueItems": true,
			"items": map[string]any{
				"type":    "string",
				"pattern": `^[hH][tT][tT][pP][sS]?://`,
			},
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             constants.FieldKeys(),
	}
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		b, err := json.Marshal(Schema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("record.json")
	})
	return compiled, compileErr
}

// Validate checks rec against Schema.
func Validate(rec Record) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(rec.toMap()); err != nil {
		return fmt.Errorf("%w: record does not match schema: %w", common.ErrValidation, err)
	}
	return nil
}

// ValidateJSON checks serialized record bytes against Schema.
func ValidateJSON(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: json does not match schema: %w", common.ErrValidation, err)
	}
	return nil
}
