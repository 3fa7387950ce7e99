package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestPieRendersPNG(t *testing.T) {
	data := map[string]float64{
		"food":   70.00,
		"travel": 30.00,
	}

	img, err := Pie(data, "Expense Breakdown - January 2025")
	require.NoError(t, err)
	require.Greater(t, len(img), len(pngMagic))
	assert.Equal(t, pngMagic, img[:4], "output must be a PNG")
}

func TestPieRejectsEmptyData(t *testing.T) {
	_, err := Pie(nil, "empty")
	assert.Error(t, err)

	_, err = Pie(map[string]float64{}, "empty")
	assert.Error(t, err)
}
