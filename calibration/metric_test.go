package calibration

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetric_Batches(t *testing.T) {
	probs, labels := multiClass()

	for _, cfg := range sweep() {
		t.Run(cfg.String(), func(t *testing.T) {
			metric, err := NewMetric(cfg)
			require.NoError(t, err)

			require.NoError(t, metric.Update(probs[:2], labels[:2]))
			require.NoError(t, metric.Update(probs[2:], labels[2:]))
			assert.Equal(t, 5, metric.Count())

			streamed, err := metric.Result()
			require.NoError(t, err)

			expected, err := GeneralCalibrationError(probs, labels, cfg)
			require.NoError(t, err)
			assert.Equal(t, expected, streamed)
		})
	}
}

func TestMetric_Binary(t *testing.T) {
	probs, labels := binaryClass()
	metric, err := NewMetric(ece30())
	require.NoError(t, err)

	require.NoError(t, metric.UpdateBinary(probs[:3], labels[:3]))
	require.NoError(t, metric.UpdateBinary(probs[3:], labels[3:]))

	gce, err := metric.Result()
	require.NoError(t, err)
	assert.InDelta(t, 0.18125, gce, delta)
}

func TestMetric_Errors(t *testing.T) {
	_, err := NewMetric(ece30().With(WithBins(0)))
	assert.ErrorIs(t, err, ErrInvalidBins)

	metric, err := NewMetric(ece30())
	require.NoError(t, err)

	probs, labels := multiClass()
	require.NoError(t, metric.Update(probs, labels))

	err = metric.Update([][]float64{{0.5, 0.5}}, []int{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	err = metric.Update(probs, labels[:1])
	assert.ErrorIs(t, err, ErrShapeMismatch)

	err = metric.Update([][]float64{{0.5, 0.4, 0.1}}, []int{3})
	assert.ErrorIs(t, err, ErrInvalidLabel)

	err = metric.Update([][]float64{{0.5, 0.4, 1.1}}, []int{0})
	assert.ErrorIs(t, err, ErrInvalidProbability)

	// rejected batches leave no trace
	assert.Equal(t, 5, metric.Count())
}

func TestMetric_Reset(t *testing.T) {
	metric, err := NewMetric(ece30())
	require.NoError(t, err)

	probs, labels := multiClass()
	require.NoError(t, metric.Update(probs, labels))
	metric.Reset()
	assert.Equal(t, 0, metric.Count())

	gce, err := metric.Result()
	require.NoError(t, err)
	assert.Equal(t, 0.0, gce)

	// a different width is accepted after a reset
	binary, binaryLabels := binaryClass()
	require.NoError(t, metric.UpdateBinary(binary, binaryLabels))
	gce, err = metric.Result()
	require.NoError(t, err)
	assert.InDelta(t, 0.18125, gce, delta)
}

func TestMetric_Concurrent(t *testing.T) {
	probs, labels := multiClass()
	metric, err := NewMetric(SCEConfig())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, metric.Update(probs, labels))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, metric.Count())

	// repeating the same batch keeps the per-bin averages intact
	streamed, err := metric.Result()
	require.NoError(t, err)
	expected, err := SCE(probs, labels)
	require.NoError(t, err)
	assert.InDelta(t, expected, streamed, delta)
}
