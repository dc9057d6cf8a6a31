package edgelist

import (
	"errors"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-resilience/pkg/metrics"
	"github.com/dd0wney/cluso-resilience/pkg/topology"
)

const sample = `# small network
% konect style header
1 0
0 2
2 1   extra tokens ignored

0 3
3 4
4 4
x 5
7
`

func TestRead_Sample(t *testing.T) {
	g, stats, err := Read(strings.NewReader(sample), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 11, stats.Lines)
	assert.Equal(t, 5, stats.Edges)
	assert.Equal(t, 2, stats.Comments)
	assert.Equal(t, 1, stats.Blank)
	assert.Equal(t, 2, stats.Malformed)
	assert.Equal(t, 1, stats.SelfLoops)
	assert.Equal(t, 6, stats.Skipped())

	assert.Equal(t, 5, g.NodeCount())
	assert.Equal(t, 5, g.EdgeCount())
	assert.True(t, g.HasEdge(2, 1))
	assert.True(t, g.HasEdge(4, 3))
	assert.False(t, g.HasNode(5), "ids on malformed lines must not create nodes")
	assert.False(t, g.HasNode(7))
}

func TestRead_Empty(t *testing.T) {
	g, stats, err := Read(strings.NewReader("# only comments\n\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, stats.Edges)
	assert.Equal(t, 1, stats.Comments)
}

func TestRead_CustomCommentMarkers(t *testing.T) {
	opts := DefaultOptions()
	opts.CommentMarkers = []string{"//"}

	g, stats, err := Read(strings.NewReader("// header\n# not a comment here\n1 2\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Comments)
	assert.Equal(t, 1, stats.Malformed)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestRead_IndentedComment(t *testing.T) {
	_, stats, err := Read(strings.NewReader("   # indented\n1 2\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Comments)
	assert.Equal(t, 0, stats.Malformed)
}

func TestRead_ParallelEdgesKept(t *testing.T) {
	g, stats, err := Read(strings.NewReader("1 2\n2 1\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Edges)
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, 1, g.Statistics().ParallelEdges)
}

func TestRead_LineTooLong(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxLineBytes = 16

	_, _, err := Read(strings.NewReader("1 2\n"+strings.Repeat("9", 64)+" 1\n"), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLineTooLong))
	assert.Contains(t, err.Error(), "line 2")
}

func TestRead_RecordsMetrics(t *testing.T) {
	reg := metrics.NewRegistry()
	opts := DefaultOptions()
	opts.Metrics = reg

	_, _, err := Read(strings.NewReader(sample), opts)
	require.NoError(t, err)

	var metric dto.Metric
	require.NoError(t, reg.IngestLinesTotal.WithLabelValues("malformed").Write(&metric))
	assert.Equal(t, float64(2), metric.Counter.GetValue())

	require.NoError(t, reg.GraphLoadsTotal.WithLabelValues("success").Write(&metric))
	assert.Equal(t, float64(1), metric.Counter.GetValue())
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line    string
		u, v    uint64
		wantErr bool
	}{
		{"1 2", 1, 2, false},
		{"10\t20", 10, 20, false},
		{"3 4 1.5", 3, 4, false},
		{"18446744073709551615 0", 18446744073709551615, 0, false},
		{"1", 0, 0, true},
		{"", 0, 0, true},
		{"-1 2", 0, 0, true},
		{"1 b", 0, 0, true},
		{"1.0 2", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			u, v, err := ParseLine(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedLine)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.u, u)
			assert.Equal(t, tt.v, v)
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	g := topology.SmallNetwork()

	var buf strings.Builder
	require.NoError(t, Write(&buf, g))
	assert.Equal(t, "1 0\n0 2\n2 1\n0 3\n3 4\n", buf.String())

	back, stats, err := Read(strings.NewReader(buf.String()), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, g.Edges(), back.Edges())
	assert.Equal(t, 5, stats.Edges)
}

func TestWrite_KeepsIsolatedNodes(t *testing.T) {
	// 3 arrives through a self-loop, 9 through AddNode
	g, _, err := Read(strings.NewReader("1 2\n3 3\n2 4\n"), DefaultOptions())
	require.NoError(t, err)
	g.AddNode(9)
	require.Equal(t, 2, g.Statistics().IsolatedNodes)

	var buf strings.Builder
	require.NoError(t, Write(&buf, g))
	assert.Equal(t, "1 2\n2 4\n3 3\n9 9\n", buf.String())

	back, stats, err := Read(strings.NewReader(buf.String()), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, g.NodeCount(), back.NodeCount())
	assert.Equal(t, g.EdgeCount(), back.EdgeCount())
	assert.Equal(t, 2, back.Statistics().IsolatedNodes)
	assert.Equal(t, 2, stats.SelfLoops)
}
