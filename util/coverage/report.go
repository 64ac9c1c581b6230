package coverage

import (
	"fmt"
	"io"
	"strings"

	"github.com/eventum/eventum/util/common"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
)

// WriteText prints the summary as a Name/Stmts/Miss/Cover table followed by a TOTAL row.
func WriteText(w io.Writer, s *Summary) error {
	width := len("TOTAL")
	for _, f := range s.Files {
		if len(f.Name) > width {
			width = len(f.Name)
		}
	}
	rule := strings.Repeat("-", width+23)

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s %7s %7s %7s\n", width, "Name", "Stmts", "Miss", "Cover")
	b.WriteString(rule + "\n")
	for _, f := range s.Files {
		fmt.Fprintf(&b, "%-*s %7d %7d %s\n", width, f.Name, f.Statements, f.Missed,
			percentCell(f.Covered(), f.Statements))
	}
	b.WriteString(rule + "\n")
	covered := s.Statements - s.Missed
	fmt.Fprintf(&b, "%-*s %7d %7d %s\n", width, "TOTAL", s.Statements, s.Missed,
		percentCell(covered, s.Statements))

	_, err := io.WriteString(w, b.String())
	return err
}

// percentCell pads before coloring so escape codes do not skew the columns.
func percentCell(covered, total int64) string {
	return colorFor(covered, total)(fmt.Sprintf("%7s", common.FormatPercent(covered, total)))
}

func colorFor(covered, total int64) func(a ...any) string {
	pct := 100.0
	if total > 0 {
		pct = float64(covered) * 100 / float64(total)
	}
	switch {
	case pct >= 80:
		return color.New(color.FgGreen).SprintFunc()
	case pct >= 50:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgRed).SprintFunc()
	}
}

// WriteJSON writes the summary with its total percentage.
func WriteJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*Summary
		Percent float64 `json:"percent"`
	}{s, s.Percent()})
}
