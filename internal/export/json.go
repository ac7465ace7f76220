package export

import (
	"encoding/json"

	"github.com/joseph-ayodele/resume-extractor/internal/record"
)

// EncodeJSON returns the record as an indented object in key order.
// Output is checked against record.Schema before it is returned.
func EncodeJSON(rec record.Record) ([]byte, error) {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := record.ValidateJSON(b); err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
