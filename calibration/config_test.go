package calibration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {

	type test struct {
		parse func(s string) (interface{}, error)
		input string
		value interface{}
		err   error
	}

	scheme := func(s string) (interface{}, error) { return ParseScheme(s) }
	norm := func(s string) (interface{}, error) { return ParseNorm(s) }
	reduction := func(s string) (interface{}, error) { return ParseReduction(s) }

	tests := map[string]test{
		"even":              {parse: scheme, input: "even", value: Even},
		"adaptive":          {parse: scheme, input: " Adaptive ", value: Adaptive},
		"unknown-scheme":    {parse: scheme, input: "quantile", err: ErrUnknownScheme},
		"l1":                {parse: norm, input: "l1", value: L1},
		"l2":                {parse: norm, input: "L2", value: L2},
		"unknown-norm":      {parse: norm, input: "max", err: ErrUnknownNorm},
		"pooled":            {parse: reduction, input: "pooled", value: Pooled},
		"class-mean":        {parse: reduction, input: "class-mean", value: ClassMean},
		"unknown-reduction": {parse: reduction, input: "sum", err: ErrUnknownReduction},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := tt.parse(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig("adaptive", false, true, 0.01, "l2", 15)
	require.NoError(t, err)
	assert.Equal(t, ClassMean, cfg.Reduction)
	assert.Equal(t, Config{
		Scheme:           Adaptive,
		ClassConditional: true,
		Threshold:        0.01,
		Norm:             L2,
		Bins:             15,
	}, cfg)

	_, err = NewConfig("uneven", true, false, 0, "l1", 30)
	assert.ErrorIs(t, err, ErrUnknownScheme)

	_, err = NewConfig("even", true, false, 0, "l3", 30)
	assert.ErrorIs(t, err, ErrUnknownNorm)

	_, err = NewConfig("even", true, false, 0, "l1", 0)
	assert.ErrorIs(t, err, ErrInvalidBins)
}

func TestConfig_With(t *testing.T) {
	base := DefaultConfig()
	cfg := base.With(WithBins(10), WithMaxProb(false), WithReduction(Pooled))
	assert.Equal(t, 10, cfg.Bins)
	assert.False(t, cfg.MaxProb)
	assert.Equal(t, Pooled, cfg.Reduction)
	// the base config is a value and stays as is
	assert.Equal(t, DefaultConfig(), base)
}

func TestConfig_Bins(t *testing.T) {
	assert.Equal(t, 30, DefaultConfig().bins(1000))

	cfg := ACEConfig().With(WithDatapointsPerBin(100))
	assert.Equal(t, 10, cfg.bins(1000))
	assert.Equal(t, 10, cfg.bins(1099))
	assert.Equal(t, 1, cfg.bins(5))
}

func TestConfig_Mode(t *testing.T) {
	assert.Equal(t, topLabel, DefaultConfig().mode())
	assert.Equal(t, topLabel, DefaultConfig().With(WithClassConditional(true)).mode())
	assert.Equal(t, perClass, SCEConfig().mode())
	assert.Equal(t, perClass, SCEConfig().With(WithClassConditional(false)).mode())
	assert.Equal(t, pooled, SCEConfig().With(WithClassConditional(false), WithReduction(Pooled)).mode())
	// class conditional wins over the pooled reduction
	assert.Equal(t, perClass, SCEConfig().With(WithReduction(Pooled)).mode())
}

func TestConfig_JSON(t *testing.T) {
	cfg := TACEConfig()
	b, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"scheme":"adaptive","max_prob":false,"class_conditional":true,"threshold":0.01,"norm":"l1","bins":30,"reduction":"class-mean"}`, string(b))

	var decoded Config
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, cfg, decoded)

	err = json.Unmarshal([]byte(`{"scheme":"wide"}`), &decoded)
	assert.ErrorIs(t, err, ErrUnknownScheme)
}
