package inference_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/inference"
	"github.com/aschroede/vemap/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMax(t *testing.T) {
	vs := factor.MustVarSet(bvar(2), factor.Var{Label: 5, States: 3})
	// Flat index = x2 + 2·x5; the maximum sits at x2=1, x5=2.
	f, err := factor.NewWithValues(vs, []float64{0.1, 0.05, 0.2, 0.1, 0.05, 0.5})
	require.NoError(t, err)

	a, err := inference.ExtractMax(f, []int{5, 2}, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, []int{5, 2}, a.Targets)
	assert.Equal(t, []int{2, 1}, a.States)
	assert.Equal(t, 5, a.Index)
	assert.InDelta(t, 0.5, a.Probability, 1e-15)
}

func TestExtractMax_TiesPickLowestIndex(t *testing.T) {
	f, err := factor.NewWithValues(factor.MustVarSet(bvar(0), bvar(1)), []float64{0.1, 0.4, 0.1, 0.4})
	require.NoError(t, err)
	a, err := inference.ExtractMax(f, []int{0, 1}, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 1, a.Index)
	assert.Equal(t, []int{1, 0}, a.States)
}

func TestExtractMax_Degenerate(t *testing.T) {
	var buf bytes.Buffer
	f, err := factor.New(factor.MustVarSet(bvar(0)))
	require.NoError(t, err)
	f = f.Scale(0)

	a, err := inference.ExtractMax(f, []int{0}, logging.New(&buf, slog.LevelInfo))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, a.States)
	assert.Contains(t, buf.String(), "map_degenerate_factor")
	assert.Contains(t, buf.String(), "map_instantiation")
}

func TestExtractMax_Errors(t *testing.T) {
	_, err := inference.ExtractMax(factor.Factor{}, []int{0}, logging.Discard())
	assert.ErrorIs(t, err, inference.ErrEmptyFactor)

	f, err := factor.New(factor.MustVarSet(bvar(0)))
	require.NoError(t, err)
	_, err = inference.ExtractMax(f, []int{3}, logging.Discard())
	assert.ErrorIs(t, err, inference.ErrTargetNotInScope)
}
