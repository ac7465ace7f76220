// Package record assembles extracted values into the fixed six-field
// résumé record.
package record

import (
	"bytes"
	"encoding/json"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/names"
)

// Extracted is the raw output of the extractors for one document.
type Extracted struct {
	Name        names.Name
	Email       string
	Phone       string
	SocialLinks []string
}

// Field is one key/value entry of a Record.
type Field struct {
	Key   string
	Value Value
}

// Row is a display row with the value rendered as text.
type Row struct {
	Field string
	Value string
}

// Record always holds the six keys of constants.FieldKeys, in that order.
type Record struct {
	fields []Field
}

// Assemble builds the record. Missing values stay empty; keys are never dropped.
func Assemble(ex Extracted) Record {
	return Record{fields: []Field{
		{Key: constants.FieldFirstName, Value: Scalar(ex.Name.First)},
		{Key: constants.FieldMiddleName, Value: Scalar(ex.Name.Middle)},
		{Key: constants.FieldLastName, Value: Scalar(ex.Name.Last)},
		{Key: constants.FieldEmail, Value: Scalar(ex.Email)},
		{Key: constants.FieldMobilePhone, Value: Scalar(ex.Phone)},
		{Key: constants.FieldSocialLinks, Value: Sequence(ex.SocialLinks)},
	}}
}

// Fields returns the entries in key order.
func (r Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// Get returns the value stored under key.
func (r Record) Get(key string) (Value, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Rows renders every field for display, sequences comma-joined.
func (r Record) Rows() []Row {
	rows := make([]Row, len(r.fields))
	for i, f := range r.fields {
		rows[i] = Row{Field: f.Key, Value: f.Value.Display()}
	}
	return rows
}

// Found counts fields that carry a value.
func (r Record) Found() int {
	n := 0
	for _, f := range r.fields {
		if !f.Value.IsEmpty() {
			n++
		}
	}
	return n
}

// MarshalJSON writes an object whose keys keep record order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// toMap is the generic form fed to the schema validator.
func (r Record) toMap() map[string]any {
	m := make(map[string]any, len(r.fields))
	for _, f := range r.fields {
		m[f.Key] = f.Value.any()
	}
	return m
}
