package annotations

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostureColors_Color(t *testing.T) {
	p := NewPostureColors(rand.New(rand.NewPCG(1, 2)))

	assert.Equal(t, UnlabeledColor, p.Color(""))

	sitting := p.Color("Sitting")
	assert.Equal(t, sitting, p.Color("Sitting"), "colors are stable")
	assert.NotEqual(t, sitting, p.Color("Standing"))

	r, g, b := parseHex(t, sitting)
	for _, c := range []int{r, g, b} {
		assert.GreaterOrEqual(t, c, colorMin)
		assert.LessOrEqual(t, c, colorMax)
	}
	assert.True(t, saturated(r, g, b))
}

func TestPostureColors_Unique(t *testing.T) {
	p := NewPostureColors(rand.New(rand.NewPCG(7, 7)))

	seen := map[string]bool{}
	for i := range 200 {
		c := p.Color("posture-" + strconv.Itoa(i))
		require.False(t, seen[c], "duplicate color %s", c)
		seen[c] = true
	}
	assert.Len(t, p.Assigned(), 200)
}

func TestPostureColors_Fallback(t *testing.T) {
	p := NewPostureColors(nil)

	c := p.fallback("Lying")
	r, g, b := parseHex(t, c)
	assert.True(t, saturated(r, g, b))
	assert.Equal(t, c, p.fallback("Lying"), "fallback is deterministic")
}

func parseHex(t *testing.T, c string) (int, int, int) {
	t.Helper()
	require.Len(t, c, 7)
	v, err := strconv.ParseUint(c[1:], 16, 32)
	require.NoError(t, err)
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
