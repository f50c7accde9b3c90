package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// maxLineLen bounds a single input line. ISD lines with long remarks run to a
// few kilobytes.
const maxLineLen = 1 << 20

type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i]())
	}
	return errors.Join(errs...)
}

// OpenFile opens path for reading and decompresses ".gz" and ".zst" files.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		return &readCloser{Reader: zr, closers: []func() error{f.Close, zr.Close}}, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd %s: %w", path, err)
		}
		return &readCloser{Reader: zr, closers: []func() error{f.Close, func() error { zr.Close(); return nil }}}, nil
	default:
		return f, nil
	}
}

// ReadLines calls fn for every line of item's file that the item selects.
// Line numbers passed to fn are one-based positions in the whole file.
func ReadLines(item WorkItem, fn func(lineNo int, line string) error) error {
	r, err := OpenFile(item.Path)
	if err != nil {
		return err
	}
	defer r.Close()
	return scanLines(r, item, fn)
}

func scanLines(r io.Reader, item WorkItem, fn func(lineNo int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	for i := 0; sc.Scan(); i++ {
		if !item.Selects(i) {
			continue
		}
		if err := fn(i+1, sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}
