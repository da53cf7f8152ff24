// internal/gridio/write.go
package gridio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"specclip-core/grid"
	"specclip/internal/output"
)

// OutputName tags the source grid's file name with the sigma level, e.g.
// 3sigmaSpectro_grid.tsv for grid.tsv at nsigma=3. JSON output swaps the
// tabular extension for .json.
func OutputName(nsigma int, gridPath, format string) string {
	base := filepath.Base(gridPath)
	if format == "json" {
		base = strings.TrimSuffix(base, ".gz")
		if ext := filepath.Ext(base); ext != "" {
			base = strings.TrimSuffix(base, ext)
		}
		base += ".json"
	}
	return fmt.Sprintf("%dsigmaSpectro_%s", nsigma, base)
}

// WriteTable writes the filtered grid to path, creating directories as
// needed. A .gz path gets gzip-compressed content.
func WriteTable(path string, t *grid.Table, format string, nsigma int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = fh.Close() }()

	var w io.Writer = fh
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(fh)
		w = gz
	}

	var werr error
	switch format {
	case "json":
		werr = output.WriteJSON(w, t, nsigma)
	case "tsv":
		werr = output.WriteTSV(w, t, true)
	default:
		werr = fmt.Errorf("unsupported output %q", format)
	}
	if werr != nil {
		return werr
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return err
		}
	}
	return fh.Close()
}
