package export

import (
	"bytes"
	"encoding/csv"

	"github.com/joseph-ayodele/resume-extractor/internal/record"
)

// EncodeCSV returns a Field,Value header followed by one line per key.
func EncodeCSV(rec record.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Field", "Value"}); err != nil {
		return nil, err
	}
	for _, r := range rec.Rows() {
		if err := w.Write([]string{r.Field, r.Value}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
