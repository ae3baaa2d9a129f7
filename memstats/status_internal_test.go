package memstats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusKB(t *testing.T) {
	status := "Name:\tvemap\nVmPeak:\t  20000 kB\nVmSize:\t   12345 kB\nVmRSS:\t  678 kB\n"

	v, err := statusKB(strings.NewReader(status), "VmSize")
	require.NoError(t, err)
	assert.Equal(t, int64(12345*1024), v)

	v, err = statusKB(strings.NewReader(status), "VmRSS")
	require.NoError(t, err)
	assert.Equal(t, int64(678*1024), v)

	_, err = statusKB(strings.NewReader(status), "VmSwap")
	assert.ErrorIs(t, err, ErrStatusField)

	_, err = statusKB(strings.NewReader("VmRSS:\tlots kB\n"), "VmRSS")
	assert.ErrorIs(t, err, ErrStatusField)
}
