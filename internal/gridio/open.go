// internal/gridio/open.go
package gridio

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// openReader opens a table file for reading, transparently decompressing
// gzip. "-" reads stdin. Grids exported from evolution-code post-processing
// are often stored compressed under a plain name, so the payload is sniffed
// rather than trusting the extension alone.
func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !gzipped(fh, path) {
		return fh, nil
	}
	gr, err := gzip.NewReader(fh)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	return &gzipReadCloser{Reader: gr, gz: gr, file: fh}, nil
}

// gzipped sniffs the two-byte gzip magic, falling back to the .gz suffix for
// tables shorter than the header. The read offset is rewound either way.
func gzipped(fh *os.File, path string) bool {
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if n == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		return true
	}
	return strings.HasSuffix(path, ".gz")
}

// gzipReadCloser closes the decompressor before the file; the first error
// wins.
type gzipReadCloser struct {
	io.Reader
	gz   *gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Close() error {
	err := g.gz.Close()
	if cerr := g.file.Close(); err == nil {
		err = cerr
	}
	return err
}
