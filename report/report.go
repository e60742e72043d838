// Package report renders merged scan results for people and machines.
//
// The table output mirrors the classic bordered layout: one row per
// distinct type value, ordered by count descending, numeric cells
// right-justified. The JSON output carries the same rows plus the line
// and skip totals, for piping into other tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/adrianbenavides/word-counter/stats"
)

var tableHeader = [3]string{"Type", "Count", "Size Bytes"}

// Formatter renders a stats.Result. The zero value renders every row
// without totals.
type Formatter struct {
	// Top limits output to the N most frequent type values. 0 keeps all.
	Top int

	// Totals appends line, byte and skip totals after the table.
	Totals bool
}

// WriteTable renders a bordered table ordered by count descending, ties
// broken by name.
//
// Example:
//
//	+--------+-------+------------+
//	| Type   | Count | Size Bytes |
//	+--------+-------+------------+
//	|  nulla |     2 |         48 |
//	| dolore |     1 |         25 |
//	+--------+-------+------------+
func (f Formatter) WriteTable(w io.Writer, res *stats.Result) error {
	rows := f.rows(res)

	widths := [3]int{}
	for i, h := range tableHeader {
		widths[i] = len(h)
	}
	cells := make([][3]string, len(rows))
	for i, row := range rows {
		cells[i] = [3]string{
			row.Name,
			strconv.FormatUint(row.Count, 10),
			strconv.FormatUint(row.Bytes, 10),
		}
		for j, c := range cells[i] {
			if len(c) > widths[j] {
				widths[j] = len(c)
			}
		}
	}

	var b strings.Builder
	border := fmt.Sprintf("+-%s-+-%s-+-%s-+\n",
		strings.Repeat("-", widths[0]),
		strings.Repeat("-", widths[1]),
		strings.Repeat("-", widths[2]))

	b.WriteString(border)
	fmt.Fprintf(&b, "| %-*s | %-*s | %-*s |\n",
		widths[0], tableHeader[0], widths[1], tableHeader[1], widths[2], tableHeader[2])
	b.WriteString(border)
	for _, c := range cells {
		fmt.Fprintf(&b, "| %*s | %*s | %*s |\n",
			widths[0], c[0], widths[1], c[1], widths[2], c[2])
	}
	b.WriteString(border)

	if f.Totals {
		fmt.Fprintf(&b, "Lines:    %s\n", groupDigits(res.Lines()))
		fmt.Fprintf(&b, "Bytes:    %s\n", groupDigits(res.TotalBytes()))
		fmt.Fprintf(&b, "Distinct: %d\n", res.Len())
		fmt.Fprintf(&b, "Skipped:  %s malformed, %s missing\n",
			groupDigits(res.Malformed()), groupDigits(res.Missing()))
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// jsonReport is the wire shape of WriteJSON.
type jsonReport struct {
	Types      []jsonRow `json:"types"`
	Lines      uint64    `json:"lines"`
	TotalBytes uint64    `json:"total_bytes"`
	Malformed  uint64    `json:"malformed"`
	Missing    uint64    `json:"missing"`
}

type jsonRow struct {
	Type  string `json:"type"`
	Count uint64 `json:"count"`
	Bytes uint64 `json:"size_bytes"`
}

// WriteJSON renders the result as a single JSON object. Rows follow the
// same order and Top limit as WriteTable; the totals always cover the
// whole result.
func (f Formatter) WriteJSON(w io.Writer, res *stats.Result) error {
	rows := f.rows(res)

	out := jsonReport{
		Types:      make([]jsonRow, len(rows)),
		Lines:      res.Lines(),
		TotalBytes: res.TotalBytes(),
		Malformed:  res.Malformed(),
		Missing:    res.Missing(),
	}
	for i, row := range rows {
		out.Types[i] = jsonRow{Type: row.Name, Count: row.Count, Bytes: row.Bytes}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func (f Formatter) rows(res *stats.Result) []stats.NamedStats {
	rows := res.Sorted()
	if f.Top > 0 && f.Top < len(rows) {
		rows = rows[:f.Top]
	}

	return rows
}

// groupDigits formats n with comma separated thousand groups.
func groupDigits(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	return b.String()
}
