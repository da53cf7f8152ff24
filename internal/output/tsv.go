// internal/output/tsv.go
package output

import (
	"bufio"
	"io"
	"strconv"

	"specclip-core/grid"
)

// WriteTSV writes a table as tab-separated text: one header row, then the
// rows in table order. Values are formatted so that a reload round-trips the
// exact float64 bits.
func WriteTSV(w io.Writer, t *grid.Table, header bool) error {
	bw := bufio.NewWriter(w)
	cols := t.Columns()
	if header {
		for i, c := range cols {
			if i > 0 {
				if err := bw.WriteByte('\t'); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(c); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	for i := 0; i < t.Len(); i++ {
		vals := t.Row(i).Values()
		for j, v := range vals {
			if j > 0 {
				if err := bw.WriteByte('\t'); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
