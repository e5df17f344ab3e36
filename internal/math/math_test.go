package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {

	type test struct {
		input     float64
		precision int
		output    string
	}

	tests := map[string]test{
		"0": {
			input:     0,
			precision: 2,
			output:    "0.00",
		},
		"-1": {
			input:     -1,
			precision: 2,
			output:    "-1.00",
		},
		"5": {
			input:     1.5555,
			precision: 2,
			output:    "1.56",
		},
		"gce": {
			input:     0.412713502,
			precision: 4,
			output:    "0.4127",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := Format(tt.input, tt.precision)
			assert.Equal(t, tt.output, s)
		})
	}

}

func TestArgMax(t *testing.T) {

	type test struct {
		input []float64
		index int
		value float64
	}

	tests := map[string]test{
		"single": {
			input: []float64{0.3},
			index: 0,
			value: 0.3,
		},
		"last": {
			input: []float64{0.1, 0.2, 0.7},
			index: 2,
			value: 0.7,
		},
		"tie-first-wins": {
			input: []float64{0.5, 0.5},
			index: 0,
			value: 0.5,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			i, v := ArgMax(tt.input)
			assert.Equal(t, tt.index, i)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestLinspace(t *testing.T) {

	type test struct {
		start, stop float64
		num         int
		endpoint    bool
		output      []float64
	}

	tests := map[string]test{
		"unit-4-endpoint": {
			start:    0,
			stop:     1,
			num:      5,
			endpoint: true,
			output:   []float64{0, 0.25, 0.5, 0.75, 1},
		},
		"count-no-endpoint": {
			start:  0,
			stop:   10,
			num:    4,
			output: []float64{0, 2.5, 5, 7.5},
		},
		"single-endpoint": {
			start:    0,
			stop:     1,
			num:      1,
			endpoint: true,
			output:   []float64{0},
		},
		"empty": {
			num:    0,
			output: []float64{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.output, Linspace(tt.start, tt.stop, tt.num, tt.endpoint))
		})
	}
}

func TestRoundIndex(t *testing.T) {
	assert.Equal(t, 0, RoundIndex(0.5))
	assert.Equal(t, 2, RoundIndex(1.5))
	assert.Equal(t, 2, RoundIndex(2.5))
	assert.Equal(t, 3, RoundIndex(2.6))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1e-17, 0, 1))
	assert.Equal(t, 1.0, Clamp(1+1e-15, 0, 1))
	assert.Equal(t, 0.3, Clamp(0.3, 0, 1))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.0, Sum(nil))
	assert.Equal(t, 6.0, Sum([]float64{1, 2, 3}))
}
