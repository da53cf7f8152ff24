// pkg/api/filtered_v1.go
package api

// FilteredGridV1 is the stable JSON shape for a constraint-filtered model
// grid: the full column set of the source grid, the surviving rows in source
// order, and their original row indices.
type FilteredGridV1 struct {
	NSigma  int         `json:"nsigma"`
	Columns []string    `json:"columns"`
	Index   []int       `json:"index"`
	Rows    [][]float64 `json:"rows"`
}
