package factorgraph_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aschroede/vemap/factorgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sprinkler is a three-variable network in .fg format:
// x0 cloudy, x1 rain | cloudy, x2 wet | rain (listed child-first).
const sprinkler = `# cloudy / rain / wet
3

1
0
2
2
0 0.5
1 0.5

2
0 1
2 2
4
0 0.8
1 0.2
2 0.2
3 0.8

2
2 1
2 2
4
0 0.9
1 0.1
2 0.1
3 0.9
`

func TestParse_Sprinkler(t *testing.T) {
	g, err := factorgraph.Parse(strings.NewReader(sprinkler))
	require.NoError(t, err)
	assert.Equal(t, 3, g.NrFactors())
	assert.Equal(t, []int{0, 1, 2}, g.Labels())

	// Third factor was listed as (x2, x1): file index = x2 + 2*x1.
	// Sorted index = x1 + 2*x2, so file entry 1 (x2=1,x1=0) lands at 2.
	wet := g.Factor(2)
	assert.Equal(t, []int{1, 2}, wet.Vars().Labels())
	assert.InDeltaSlice(t, []float64{0.9, 0.1, 0.1, 0.9}, wet.Values(), 1e-12)

	rain := g.Factor(1)
	assert.InDeltaSlice(t, []float64{0.8, 0.2, 0.2, 0.8}, rain.Values(), 1e-12)
}

func TestParse_PermutesAsymmetricTable(t *testing.T) {
	src := "1\n\n2\n1 0\n2 2\n1\n1 0.3\n"
	g, err := factorgraph.Parse(strings.NewReader(src))
	require.NoError(t, err)
	// listed index 1 => x1=1, x0=0 => sorted index 0 + 2*1 = 2
	assert.Equal(t, []float64{0, 0, 0.3, 0}, g.Factor(0).Values())
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"not a number":   "x\n",
		"short scope":    "1\n2\n0 1\n2\n",
		"index overflow": "1\n1\n0\n2\n1\n5 0.1\n",
		"bad value":      "1\n1\n0\n2\n1\n0 abc\n",
		"repeated label": "1\n2\n0 0\n2 2\n0\n",
		"trailing":       "1\n1\n0\n2\n0\n7\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := factorgraph.Parse(strings.NewReader(src))
			assert.ErrorIs(t, err, factorgraph.ErrSyntax)
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	g, err := factorgraph.Parse(strings.NewReader(sprinkler))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.Write(&buf))
	back, err := factorgraph.Parse(&buf)
	require.NoError(t, err)

	require.Equal(t, g.NrFactors(), back.NrFactors())
	for i := 0; i < g.NrFactors(); i++ {
		assert.Equal(t, g.Factor(i).Vars().Labels(), back.Factor(i).Vars().Labels())
		assert.InDeltaSlice(t, g.Factor(i).Values(), back.Factor(i).Values(), 1e-12)
	}
}

func TestReadFile_WriteFile(t *testing.T) {
	g, err := factorgraph.Parse(strings.NewReader(sprinkler))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sprinkler.fg")
	require.NoError(t, g.WriteFile(path))
	back, err := factorgraph.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, g.Labels(), back.Labels())

	_, err = factorgraph.ReadFile(filepath.Join(t.TempDir(), "missing.fg"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
