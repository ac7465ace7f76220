// Package report renders records and run history for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/record"
)

// Report formats.
const (
	FormatBullets = "bullets"
	FormatTable   = "table"
)

// Print writes rec in the given format; unknown formats fall back to bullets.
func Print(w io.Writer, format string, rec record.Record) error {
	if strings.EqualFold(format, FormatTable) {
		return Table(w, rec)
	}
	return Bullets(w, rec)
}

// Bullets writes one "• Key: Value" line per scalar field. Social links
// are listed as sub-bullets and omitted when there are none.
func Bullets(w io.Writer, rec record.Record) error {
	var b strings.Builder
	b.WriteString("\n--- Extracted Resume Information ---\n\n")
	for _, f := range rec.Fields() {
		if f.Value.Kind() == record.KindSequence {
			items := f.Value.Items()
			if len(items) == 0 {
				continue
			}
			fmt.Fprintf(&b, "• %s:\n", f.Key)
			for _, u := range items {
				fmt.Fprintf(&b, "   - %s\n", u)
			}
			continue
		}
		fmt.Fprintf(&b, "• %s: %s\n", f.Key, f.Value.Scalar())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Table writes the Field/Value rows as an ASCII table.
func Table(w io.Writer, rec record.Record) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	for _, f := range rec.Fields() {
		if f.Key == constants.FieldSocialLinks {
			table.Append([]string{f.Key, strings.Join(f.Value.Items(), "\n")})
			continue
		}
		table.Append([]string{f.Key, f.Value.Display()})
	}
	table.Render()
	return nil
}
