package palette

import (
	"testing"

	"github.com/ironsheep/mapcolor-mcp/internal/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()
	require.Equal(t, 12, p.Len())

	want := []imaging.Color{
		imaging.RGB(255, 0, 0), imaging.RGB(0, 255, 0), imaging.RGB(0, 0, 255),
		imaging.RGB(255, 255, 0), imaging.RGB(255, 165, 0), imaging.RGB(128, 0, 128),
		imaging.RGB(0, 255, 255), imaging.RGB(255, 192, 203), imaging.RGB(139, 69, 19),
		imaging.RGB(210, 180, 140), imaging.RGB(0, 0, 0), imaging.RGB(255, 255, 255),
	}
	for i, c := range want {
		assert.Equal(t, i, p[i].Index)
		assert.Equal(t, c, p[i].Color)
		assert.Equal(t, c.Hex(), p[i].Hex)
	}
}

func TestDefault_IsCopy(t *testing.T) {
	p := Default()
	p[0].Color = imaging.RGB(1, 2, 3)
	assert.Equal(t, imaging.RGB(255, 0, 0), Default()[0].Color)
}

func TestAt(t *testing.T) {
	p := Default()
	e, err := p.At(4)
	require.NoError(t, err)
	assert.Equal(t, "orange", e.Name)

	_, err = p.At(-1)
	assert.Error(t, err)
	_, err = p.At(12)
	assert.Error(t, err)
}

func TestIndexOf(t *testing.T) {
	p := Default()
	assert.Equal(t, 10, p.IndexOf(imaging.RGB(0, 0, 0)))
	assert.Equal(t, -1, p.IndexOf(imaging.RGB(1, 0, 0)))
}

func TestLookup(t *testing.T) {
	p := Default()

	tests := []struct {
		in   string
		want int
	}{
		{"red", 0},
		{"  Cyan ", 6},
		{"#FFC0CB", 7},
		{"ffffff", 11},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := p.Lookup(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Index)
		})
	}

	_, err := p.Lookup("magenta")
	assert.Error(t, err)
	_, err = p.Lookup("#123456")
	assert.Error(t, err)
}

func TestNearest(t *testing.T) {
	p := Default()
	assert.Equal(t, "red", p.Nearest(imaging.RGB(250, 10, 5)).Name)
	assert.Equal(t, "black", p.Nearest(imaging.RGB(12, 12, 12)).Name)
	assert.Equal(t, "white", p.Nearest(imaging.RGB(255, 255, 255)).Name)
}
