// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"specclip-core/grid"
	"specclip/pkg/api"
)

// ToAPIGrid converts a filtered table to the stable wire schema (v1).
func ToAPIGrid(t *grid.Table, nsigma int) api.FilteredGridV1 {
	v := api.FilteredGridV1{
		NSigma:  nsigma,
		Columns: t.Columns(),
		Index:   make([]int, 0, t.Len()),
		Rows:    make([][]float64, 0, t.Len()),
	}
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		v.Index = append(v.Index, r.Index)
		v.Rows = append(v.Rows, r.Values())
	}
	return v
}

// WriteJSON writes the v1 filtered-grid document (pretty-indented).
func WriteJSON(w io.Writer, t *grid.Table, nsigma int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToAPIGrid(t, nsigma))
}
