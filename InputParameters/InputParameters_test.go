package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReductionParameters(t *testing.T) {
	data := `
Title: "ThermalBlock 2x2"
GridN: 2
FineN: 4
Penalty: 10.0
Diffusion:
  - [1.0, 1.0, 1.0, 1.0]
  - [0.1, 1.0, 1.0, 10.0]
Rounds: 5
Tolerance: 1.e-6
OutputFile: decay.csv
`
	var ip ReductionParameters
	require.NoError(t, ip.Parse([]byte(data)))
	assert.Equal(t, "ThermalBlock 2x2", ip.Title)
	assert.Equal(t, 2, ip.GridN)
	assert.Equal(t, 4, ip.FineN)
	assert.Equal(t, 10., ip.Penalty)
	require.Len(t, ip.Diffusion, 2)
	assert.Equal(t, []float64{0.1, 1, 1, 10}, ip.Diffusion[1])
	assert.Equal(t, 5, ip.Rounds)
	assert.Equal(t, 1.e-6, ip.Tolerance)
	assert.Equal(t, "decay.csv", ip.OutputFile)
	ip.Print()
}
