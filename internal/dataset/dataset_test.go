package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/go-calibration/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad(t *testing.T) {

	type test struct {
		content string
		name    string
		size    int
		classes int
		binary  bool
		err     error
	}

	tests := map[string]test{
		"rows": {
			content: `{"name":"three","probs":[[0.2,0.3,0.5],[0.6,0.3,0.1]],"labels":[2,0]}`,
			name:    "three",
			size:    2,
			classes: 3,
		},
		"flat": {
			content: `{"probs":[0.91,0.32,0.66],"labels":[1,0,1]}`,
			name:    "dataset",
			size:    3,
			classes: 1,
			binary:  true,
		},
		"empty": {
			content: `{"name":"none","probs":[],"labels":[]}`,
			name:    "none",
		},
		"missing-labels": {
			content: `{"probs":[[0.5,0.5]],"labels":[]}`,
			err:     ErrInvalid,
		},
		"ragged": {
			content: `{"probs":[[0.5,0.5],[1]],"labels":[0,1]}`,
			err:     ErrInvalid,
		},
		"wrong-type": {
			content: `{"probs":"high","labels":[0]}`,
			err:     ErrInvalid,
		},
		"broken": {
			content: `{"probs":`,
			err:     storage.CouldNotLoadErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := Load(write(t, "dataset.json", tt.content))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name)
			assert.Equal(t, tt.size, d.Size())
			assert.Equal(t, tt.classes, d.Classes())
			assert.Equal(t, tt.binary, d.Binary)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, storage.NotFoundErr)
}

func TestDataset_Matrix(t *testing.T) {
	d := Dataset{
		Probs:  [][]float64{{0.2, 0.8}, {0.7, 0.3}},
		Labels: []int{1, 0},
	}
	m := d.Matrix()
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 0.7, m.At(1, 0))

	assert.True(t, Dataset{}.Matrix().IsEmpty())
}

func TestDataset_JSON(t *testing.T) {
	d := Dataset{
		Name:   "binary",
		Probs:  [][]float64{{0.1}, {0.9}},
		Binary: true,
		Labels: []int{0, 1},
	}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"binary","probs":[0.1,0.9],"labels":[0,1]}`, string(b))

	var decoded Dataset
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, d, decoded)
}
