// core/grid/parse.go
package grid

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatError reports a table cell that failed numeric parsing. Inputs are
// whole-run fatal; there is no best-effort row skipping.
type FormatError struct {
	Line int
	Cell string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: non-numeric field %q", e.Line, e.Cell)
}

// ParseTable reads a whitespace-delimited numeric table: one header row naming
// the columns, then one row of float64 values per line. Blank lines and
// #-comments are skipped.
func ParseTable(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	var t *Table
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if t == nil {
			tab, err := New(f)
			if err != nil {
				return nil, err
			}
			t = tab
			continue
		}
		if len(f) != len(t.cols) {
			return nil, fmt.Errorf("line %d: %d fields, header has %d", ln, len(f), len(t.cols))
		}
		vals := make([]float64, len(f))
		for i, s := range f {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, &FormatError{Line: ln, Cell: s}
			}
			vals[i] = v
		}
		if err := t.Append(vals); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("empty table: no header row")
	}
	return t, nil
}
