package driver_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/narrowstack/c4w/continuation"
	"github.com/narrowstack/c4w/driver"
	"github.com/narrowstack/c4w/field"
	"github.com/narrowstack/c4w/product"
	"github.com/narrowstack/c4w/sequence"
)

func testPipeline() driver.Pipeline {
	return driver.Pipeline{Epsilon: 1e-6, PosetBackend: "auto", Log: zerolog.New(&bytes.Buffer{})}
}

// A two-field table where the empty field reaches a true terminal
// (every piece yields an empty branch) via one piece only: a small,
// finite, loop-free instance.
func terminatingTable() *continuation.Table {
	var terminal field.Field
	terminal[0] = 0xFF // any distinct field value

	t := continuation.New()
	t.Put(field.Empty, field.I, []field.Field{terminal})
	t.Put(terminal, field.I, nil)
	return t
}

func TestBuildMaterializesOnlyReachableStates(t *testing.T) {
	tbl := terminatingTable()
	seq := sequence.NewUniform(0, false)
	enumerator, err := product.New(tbl, seq)
	require.NoError(t, err)

	c, err := driver.Build(enumerator)
	require.NoError(t, err)
	require.Equal(t, 2, c.RowCount())
}

func TestPipelineRunConvergesWithoutLoop(t *testing.T) {
	tbl := terminatingTable()
	seq := sequence.NewUniform(0, false)
	enumerator, err := product.New(tbl, seq)
	require.NoError(t, err)

	result, err := testPipeline().Run(enumerator)
	require.NoError(t, err)
	require.False(t, result.HasLoop)
	require.Len(t, result.Values, result.Quotient.RowCount())
	require.Equal(t, 2, len(result.Mapping))
	for _, cls := range result.Mapping {
		require.GreaterOrEqual(t, int(cls), 0)
		require.Less(t, int(cls), result.Quotient.RowCount())
	}
}

// A self-looping single-field table where every one of the seven pieces
// lands back on the empty field: no branch is ever empty, so nothing
// seeds the reverse-BFS and the state can be kept alive forever.
func TestPipelineRunDetectsLoop(t *testing.T) {
	tbl := continuation.New()
	for _, p := range field.PIECES {
		tbl.Put(field.Empty, p, []field.Field{field.Empty})
	}

	seq := sequence.NewUniform(0, false)
	enumerator, err := product.New(tbl, seq)
	require.NoError(t, err)

	result, err := testPipeline().Run(enumerator)
	require.NoError(t, err)
	require.True(t, result.HasLoop)
}

func TestRunBaselineAgreesWithFullRun(t *testing.T) {
	tbl := terminatingTable()
	seq := sequence.NewUniform(0, false)
	enumerator, err := product.New(tbl, seq)
	require.NoError(t, err)

	p := testPipeline()
	baseline, err := p.RunBaseline(enumerator)
	require.NoError(t, err)
	proved, err := p.Run(enumerator)
	require.NoError(t, err)

	require.Equal(t, len(baseline.Mapping), len(proved.Mapping))
	for i := range baseline.Mapping {
		require.InDelta(t, baseline.Values[baseline.Mapping[i]], proved.Values[proved.Mapping[i]], 1e-6)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tbl := terminatingTable()
	seq := sequence.NewUniform(0, false)
	enumerator, err := product.New(tbl, seq)
	require.NoError(t, err)

	result, err := testPipeline().Run(enumerator)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, driver.Save(&buf, result))

	loaded, err := driver.Load(&buf)
	require.NoError(t, err)
	require.Equal(t, result.Mapping, loaded.Mapping)
	require.Equal(t, result.Values, loaded.Values)
	require.Equal(t, result.Quotient.RowCount(), loaded.Quotient.RowCount())
}
