package edgelist

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-resilience/pkg/graph"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
)

// Format is the on-disk encoding of an edge list
type Format int

const (
	FormatPlain Format = iota
	FormatSnappy
	FormatGzip
)

func (f Format) String() string {
	switch f {
	case FormatSnappy:
		return "snappy"
	case FormatGzip:
		return "gzip"
	default:
		return "plain"
	}
}

// DetectFormat picks the encoding from the file extension
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sz", ".snappy":
		return FormatSnappy
	case ".gz":
		return FormatGzip
	default:
		return FormatPlain
	}
}

// Open returns a reader over the decoded contents of path. Plain files are
// memory-mapped; compressed files are streamed through their decoder.
func Open(path string) (io.ReadCloser, error) {
	switch DetectFormat(path) {
	case FormatSnappy:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		return &stackedReader{Reader: snappy.NewReader(f), closers: []io.Closer{f}}, nil

	case FormatGzip:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		zr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, f}}, nil

	default:
		m, err := mmap.Open(path)
		if err != nil {
			return nil, err
		}
		return &stackedReader{Reader: io.NewSectionReader(m, 0, int64(m.Len())), closers: []io.Closer{m}}, nil
	}
}

// Load reads the edge list at path
func Load(path string, opts Options) (*graph.Graph, Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	rc, err := Open(path)
	if err != nil {
		opts.Metrics.RecordGraphLoad("error", 0)
		return nil, Stats{}, fmt.Errorf("load %s: %w", path, err)
	}
	defer rc.Close()

	timer := logging.StartTimer(logger, "load edge list",
		logging.Path(path), logging.String("format", DetectFormat(path).String()))
	g, stats, err := Read(rc, opts)
	if err != nil {
		timer.EndError(err)
		return nil, stats, fmt.Errorf("load %s: %w", path, err)
	}
	timer.End(
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", stats.Edges),
		logging.Int("malformed", stats.Malformed),
		logging.Int("self_loops", stats.SelfLoops))
	return g, stats, nil
}

// Save writes g to path, compressing by extension like Open
func Save(path string, g *graph.Graph) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch DetectFormat(path) {
	case FormatSnappy:
		sw := snappy.NewBufferedWriter(f)
		if err := Write(sw, g); err != nil {
			return err
		}
		return sw.Close()
	case FormatGzip:
		zw := gzip.NewWriter(f)
		if err := Write(zw, g); err != nil {
			return err
		}
		return zw.Close()
	default:
		return Write(f, g)
	}
}

// stackedReader closes its layers innermost first
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
