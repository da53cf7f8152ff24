// core/obs/obs.go
package obs

import (
	"fmt"
	"io"
	"strings"

	"specclip-core/grid"
)

// Measurement is one observed quantity with its 1-sigma uncertainty.
type Measurement struct {
	Value float64
	Err   float64
}

// Observations maps an observable name to its measurement. Built by pairing
// a value column X with its X_err column; only suffix-paired columns count.
type Observations map[string]Measurement

const errSuffix = "_err"

// FromTable extracts the observation set from the first data row of a parsed
// observation table (later rows, if any, are ignored).
func FromTable(t *grid.Table) (Observations, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("observations: table has no data rows")
	}
	row := t.Row(0)
	out := Observations{}
	for _, name := range t.Columns() {
		if strings.HasSuffix(name, errSuffix) {
			continue
		}
		ec, ok := t.Col(name + errSuffix)
		if !ok {
			continue
		}
		vc, _ := t.Col(name)
		out[name] = Measurement{Value: row.At(vc), Err: row.At(ec)}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("observations: no value/%s column pairs found", errSuffix)
	}
	return out, nil
}

// Parse reads a whitespace-delimited observation file (header row, one data
// row used). Non-numeric fields make the whole load fatal.
func Parse(r io.Reader) (Observations, error) {
	t, err := grid.ParseTable(r)
	if err != nil {
		return nil, err
	}
	return FromTable(t)
}
