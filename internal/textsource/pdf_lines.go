package textsource

import (
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// textState tracks the text and line matrices' translation while walking a
// content stream. Scale and rotation are kept for Td offsets.
type textState struct {
	a, b, c, d float64 // line matrix linear part
	x, y       float64 // line matrix origin
	leading    float64
	enc        pdf.TextEncoding
}

func (ts *textState) reset() {
	ts.a, ts.b, ts.c, ts.d = 1, 0, 0, 1
	ts.x, ts.y = 0, 0
}

func (ts *textState) move(tx, ty float64) {
	ts.x += tx*ts.a + ty*ts.c
	ts.y += tx*ts.b + ty*ts.d
}

// lineCollector groups shown strings into lines in content-stream order. A
// vertical move starts a new line; a horizontal move on the same baseline
// inserts a space.
type lineCollector struct {
	lines        []string
	lastX, lastY float64
}

func (lc *lineCollector) show(x, y float64, s string) {
	if s == "" {
		return
	}
	last := len(lc.lines) - 1
	switch {
	case last < 0 || math.Abs(y-lc.lastY) > 0.5:
		lc.lines = append(lc.lines, s)
	case math.Abs(x-lc.lastX) > 0.5 && !strings.HasSuffix(lc.lines[last], " ") && !strings.HasPrefix(s, " "):
		lc.lines[last] += " " + s
	default:
		lc.lines[last] += s
	}
	lc.lastX, lc.lastY = x, y
}

// pageLines rebuilds the page text one line per baseline. The library's
// plain-text reader only breaks lines on T*, so Td/TD/Tm moves would
// otherwise run lines together. ok is false when nothing was shown.
func pageLines(p pdf.Page) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text, ok = "", false
		}
	}()

	fonts := make(map[string]pdf.TextEncoding)
	for _, name := range p.Fonts() {
		fonts[name] = p.Font(name).Encoder()
	}

	ts := &textState{}
	ts.reset()
	lc := &lineCollector{}
	decode := func(v pdf.Value) string {
		if ts.enc == nil {
			return v.RawString()
		}
		return ts.enc.Decode(v.RawString())
	}
	nextLine := func() { ts.move(0, -ts.leading) }

	handle := func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}
		switch op {
		case "BT":
			ts.reset()
		case "Tf":
			if n == 2 {
				ts.enc = fonts[args[0].Name()]
			}
		case "TL":
			if n == 1 {
				ts.leading = args[0].Float64()
			}
		case "Td":
			if n == 2 {
				ts.move(args[0].Float64(), args[1].Float64())
			}
		case "TD":
			if n == 2 {
				ts.leading = -args[1].Float64()
				ts.move(args[0].Float64(), args[1].Float64())
			}
		case "Tm":
			if n == 6 {
				ts.a, ts.b, ts.c, ts.d = args[0].Float64(), args[1].Float64(), args[2].Float64(), args[3].Float64()
				ts.x, ts.y = args[4].Float64(), args[5].Float64()
			}
		case "T*":
			nextLine()
		case "Tj":
			if n == 1 {
				lc.show(ts.x, ts.y, decode(args[0]))
			}
		case "'":
			if n == 1 {
				nextLine()
				lc.show(ts.x, ts.y, decode(args[0]))
			}
		case "\"":
			if n == 3 {
				nextLine()
				lc.show(ts.x, ts.y, decode(args[2]))
			}
		case "TJ":
			if n == 1 {
				var b strings.Builder
				for i := 0; i < args[0].Len(); i++ {
					if v := args[0].Index(i); v.Kind() == pdf.String {
						b.WriteString(decode(v))
					}
				}
				lc.show(ts.x, ts.y, b.String())
			}
		}
	}

	contents := p.V.Key("Contents")
	if contents.Kind() == pdf.Array {
		for i := 0; i < contents.Len(); i++ {
			pdf.Interpret(contents.Index(i), handle)
		}
	} else {
		pdf.Interpret(contents, handle)
	}

	if len(lc.lines) == 0 {
		return "", false
	}
	return strings.Join(lc.lines, "\n"), true
}
