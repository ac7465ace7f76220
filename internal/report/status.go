package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

// Status lines are decorated with ✅/❌ only on a terminal.
type Status struct {
	W        io.Writer
	Decorate bool
}

func (s Status) mark(ok bool) string {
	if !s.Decorate {
		return ""
	}
	if ok {
		return "✅ "
	}
	return "❌ "
}

// Saved reports a written output file and its size.
func (s Status) Saved(path string, size int64) {
	fmt.Fprintf(s.W, "\n%sSaved to: %s (%s)\n", s.mark(true), path, humanize.Bytes(uint64(size)))
}

// NotFound reports a missing input file.
func (s Status) NotFound(path string) {
	fmt.Fprintf(s.W, "%sFile not found: %s\n", s.mark(false), path)
}

// Failed reports any other fatal error.
func (s Status) Failed(err error) {
	fmt.Fprintf(s.W, "%s%v\n", s.mark(false), err)
}

// History writes recent runs as a table, newest first.
func History(w io.Writer, runs []entity.Run, now time.Time) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Run", "Started", "Status", "Source", "Output", "Took"})
	table.SetAutoWrapText(false)
	for _, r := range runs {
		took := "-"
		if r.FinishedAt != nil {
			took = r.Duration().Round(time.Millisecond).String()
		}
		table.Append([]string{
			r.ID.String()[:8],
			humanize.RelTime(r.StartedAt, now, "ago", "from now"),
			string(r.Status),
			r.SourcePath,
			r.OutputPath,
			took,
		})
	}
	table.Render()
}
