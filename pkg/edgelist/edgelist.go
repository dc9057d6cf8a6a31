// Package edgelist reads undirected graphs from whitespace-separated edge
// lists, one "u v" pair per line.
package edgelist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dd0wney/cluso-resilience/pkg/graph"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/metrics"
)

var (
	// ErrMalformedLine marks a line with fewer than two tokens or a
	// non-numeric node id. Such lines are skipped, never fatal.
	ErrMalformedLine = errors.New("malformed edge line")

	// ErrLineTooLong is returned when a line exceeds Options.MaxLineBytes
	ErrLineTooLong = errors.New("edge line exceeds maximum length")
)

const (
	DefaultMaxLineBytes = 1 << 20
	initialBufferBytes  = 64 * 1024
)

// Options controls parsing
type Options struct {
	// CommentMarkers are line prefixes that mark a comment, checked after
	// leading whitespace is trimmed
	CommentMarkers []string
	// MaxLineBytes bounds a single line; <= 0 means DefaultMaxLineBytes
	MaxLineBytes int

	Logger  logging.Logger
	Metrics *metrics.Registry
}

// DefaultOptions skips '#' and '%' comment lines
func DefaultOptions() Options {
	return Options{
		CommentMarkers: []string{"#", "%"},
		MaxLineBytes:   DefaultMaxLineBytes,
	}
}

// Stats counts line outcomes of one read
type Stats struct {
	Lines     int `json:"lines"`
	Edges     int `json:"edges"`
	Comments  int `json:"comments"`
	Blank     int `json:"blank"`
	Malformed int `json:"malformed"`
	SelfLoops int `json:"self_loops"`
}

// Skipped is the number of lines that did not become an edge
func (s Stats) Skipped() int {
	return s.Lines - s.Edges
}

// Read builds a graph from r. Extra tokens after the first two are ignored.
// Malformed lines and self-loops are counted and skipped. An input with no
// edges yields an empty graph and no error; callers decide whether that is
// acceptable.
func Read(r io.Reader, opts Options) (*graph.Graph, Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	maxLine := opts.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}

	start := time.Now()
	g, stats, err := read(r, opts.CommentMarkers, maxLine, logger)
	if err != nil {
		opts.Metrics.RecordGraphLoad("error", time.Since(start))
		return nil, stats, err
	}
	opts.Metrics.RecordGraphLoad("success", time.Since(start))
	opts.Metrics.RecordIngestLines(stats.Edges, stats.Comments, stats.Malformed, stats.SelfLoops)
	return g, stats, nil
}

func read(r io.Reader, markers []string, maxLine int, logger logging.Logger) (*graph.Graph, Stats, error) {
	var stats Stats
	g := graph.New()
	debug := logger.GetLevel() <= logging.DebugLevel

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, min(initialBufferBytes, maxLine)), maxLine)
	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			stats.Blank++
			continue
		}
		if isComment(line, markers) {
			stats.Comments++
			continue
		}

		u, v, err := ParseLine(line)
		if err != nil {
			stats.Malformed++
			if debug {
				logger.Debug("skipping malformed line", logging.Int("line", stats.Lines), logging.Error(err))
			}
			continue
		}

		if _, err := g.AddEdge(u, v); err != nil {
			if errors.Is(err, graph.ErrSelfLoop) {
				stats.SelfLoops++
				if debug {
					logger.Debug("skipping self-loop", logging.Int("line", stats.Lines), logging.NodeID(u))
				}
				continue
			}
			return nil, stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}
		stats.Edges++
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, stats, fmt.Errorf("line %d: %w (%d bytes)", stats.Lines+1, ErrLineTooLong, maxLine)
		}
		return nil, stats, fmt.Errorf("read edge list: %w", err)
	}
	return g, stats, nil
}

// ParseLine extracts the two node ids of a non-comment line
func ParseLine(line string) (u, v uint64, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("%w: want 2 ids, got %d tokens", ErrMalformedLine, len(fields))
	}
	u, err = strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad id %q", ErrMalformedLine, fields[0])
	}
	v, err = strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad id %q", ErrMalformedLine, fields[1])
	}
	return u, v, nil
}

func isComment(line string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}

// Write emits every edge of g as one "u v" line, in edge insertion order.
// Isolated nodes follow as "u u" lines, which Read counts as self-loops but
// still registers, so a round trip keeps the node set and the component
// count. Isolated nodes move to the end of the insertion order.
func Write(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 48)
	line := func(u, v uint64) error {
		buf = strconv.AppendUint(buf[:0], u, 10)
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, v, 10)
		buf = append(buf, '\n')
		_, err := bw.Write(buf)
		return err
	}

	for _, e := range g.Edges() {
		if err := line(e.U, e.V); err != nil {
			return err
		}
	}
	for _, id := range g.Nodes() {
		if g.Degree(id) > 0 {
			continue
		}
		if err := line(id, id); err != nil {
			return err
		}
	}
	return bw.Flush()
}
