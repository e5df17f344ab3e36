package calibration

import (
	"fmt"
	"math"
	"strings"
)

// DefaultBins is the number of bins used when none is configured.
const DefaultBins = 30

// Scheme defines how the unit interval is split into bins.
type Scheme int

const (
	// Even splits [0,1] into bins of equal width.
	Even Scheme = iota
	// Adaptive places the bin edges at the empirical quantiles of the confidences,
	// so that every bin holds roughly the same number of examples.
	Adaptive
)

var schemes = map[string]Scheme{
	"even":     Even,
	"adaptive": Adaptive,
}

// ParseScheme parses the scheme name e.g. 'even' or 'adaptive'.
func ParseScheme(s string) (Scheme, error) {
	if scheme, ok := schemes[strings.ToLower(strings.TrimSpace(s))]; ok {
		return scheme, nil
	}
	return 0, fmt.Errorf("'%s': %w", s, ErrUnknownScheme)
}

func (s Scheme) String() string {
	switch s {
	case Even:
		return "even"
	case Adaptive:
		return "adaptive"
	}
	return fmt.Sprintf("scheme(%d)", int(s))
}

// Norm defines how per-bin deviations are reduced into one value.
type Norm int

const (
	// L1 is the occupancy weighted sum of absolute deviations.
	L1 Norm = iota
	// L2 is the root of the occupancy weighted sum of squared deviations.
	L2
)

var norms = map[string]Norm{
	"l1": L1,
	"l2": L2,
}

// ParseNorm parses the norm name e.g. 'l1' or 'l2'.
func ParseNorm(s string) (Norm, error) {
	if norm, ok := norms[strings.ToLower(strings.TrimSpace(s))]; ok {
		return norm, nil
	}
	return 0, fmt.Errorf("'%s': %w", s, ErrUnknownNorm)
}

func (n Norm) String() string {
	switch n {
	case L1:
		return "l1"
	case L2:
		return "l2"
	}
	return fmt.Sprintf("norm(%d)", int(n))
}

// Reduction defines how per-class predictions are combined when they are
// neither reduced to the top prediction nor evaluated class conditionally.
type Reduction int

const (
	// ClassMean evaluates each class on its own and averages the results, each class weighted equally.
	ClassMean Reduction = iota
	// Pooled flattens all class predictions into a single track.
	Pooled
)

var reductions = map[string]Reduction{
	"class-mean": ClassMean,
	"pooled":     Pooled,
}

// ParseReduction parses the reduction name e.g. 'class-mean' or 'pooled'.
func ParseReduction(s string) (Reduction, error) {
	if reduction, ok := reductions[strings.ToLower(strings.TrimSpace(s))]; ok {
		return reduction, nil
	}
	return 0, fmt.Errorf("'%s': %w", s, ErrUnknownReduction)
}

func (r Reduction) String() string {
	switch r {
	case ClassMean:
		return "class-mean"
	case Pooled:
		return "pooled"
	}
	return fmt.Sprintf("reduction(%d)", int(r))
}

// Config is the full set of options for a calibration error computation.
// It is a plain value, a computation never modifies it.
type Config struct {
	// Scheme is the binning scheme.
	Scheme Scheme `json:"scheme"`
	// MaxProb calibrates the top predicted class only.
	MaxProb bool `json:"max_prob"`
	// ClassConditional averages the per-class calibration errors, each class weighted equally.
	ClassConditional bool `json:"class_conditional"`
	// Threshold drops per-class predictions below it. Ignored for MaxProb.
	Threshold float64 `json:"threshold"`
	// Norm is the norm used to combine the per-bin deviations.
	Norm Norm `json:"norm"`
	// Bins is the number of bins.
	Bins int `json:"bins"`
	// DatapointsPerBin, if set, derives the number of bins from the number of examples.
	// Only valid for the Adaptive scheme.
	DatapointsPerBin int `json:"datapoints_per_bin,omitempty"`
	// Reduction applies to per-class predictions that are not class conditional.
	Reduction Reduction `json:"reduction"`
}

// DefaultConfig returns the top-label, even-binned, l1 configuration with DefaultBins bins.
func DefaultConfig() Config {
	return Config{
		Scheme:  Even,
		MaxProb: true,
		Norm:    L1,
		Bins:    DefaultBins,
	}
}

// NewConfig creates a config from the string representation of its options.
func NewConfig(scheme string, maxProb, classConditional bool, threshold float64, norm string, bins int) (Config, error) {
	s, err := ParseScheme(scheme)
	if err != nil {
		return Config{}, err
	}
	n, err := ParseNorm(norm)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Scheme:           s,
		MaxProb:          maxProb,
		ClassConditional: classConditional,
		Threshold:        threshold,
		Norm:             n,
		Bins:             bins,
	}
	return cfg, cfg.Validate()
}

// Option modifies a config.
type Option func(cfg *Config)

// WithScheme sets the binning scheme.
func WithScheme(scheme Scheme) Option {
	return func(cfg *Config) {
		cfg.Scheme = scheme
	}
}

// WithMaxProb toggles top-label calibration.
func WithMaxProb(maxProb bool) Option {
	return func(cfg *Config) {
		cfg.MaxProb = maxProb
	}
}

// WithClassConditional toggles class conditional averaging.
func WithClassConditional(classConditional bool) Option {
	return func(cfg *Config) {
		cfg.ClassConditional = classConditional
	}
}

// WithThreshold sets the minimum probability for per-class predictions.
func WithThreshold(threshold float64) Option {
	return func(cfg *Config) {
		cfg.Threshold = threshold
	}
}

// WithNorm sets the norm.
func WithNorm(norm Norm) Option {
	return func(cfg *Config) {
		cfg.Norm = norm
	}
}

// WithBins sets the number of bins.
func WithBins(bins int) Option {
	return func(cfg *Config) {
		cfg.Bins = bins
	}
}

// WithDatapointsPerBin derives the number of bins from the data size.
func WithDatapointsPerBin(n int) Option {
	return func(cfg *Config) {
		cfg.DatapointsPerBin = n
	}
}

// WithReduction sets the reduction for non class conditional per-class predictions.
func WithReduction(reduction Reduction) Option {
	return func(cfg *Config) {
		cfg.Reduction = reduction
	}
}

// With returns a copy of the config with the given options applied.
func (cfg Config) With(opts ...Option) Config {
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate checks that all the options are recognized and within range.
func (cfg Config) Validate() error {
	if _, ok := schemes[cfg.Scheme.String()]; !ok {
		return fmt.Errorf("'%v': %w", cfg.Scheme, ErrUnknownScheme)
	}
	if _, ok := norms[cfg.Norm.String()]; !ok {
		return fmt.Errorf("'%v': %w", cfg.Norm, ErrUnknownNorm)
	}
	if _, ok := reductions[cfg.Reduction.String()]; !ok {
		return fmt.Errorf("'%v': %w", cfg.Reduction, ErrUnknownReduction)
	}
	if math.IsNaN(cfg.Threshold) || cfg.Threshold < 0 || cfg.Threshold > 1 {
		return fmt.Errorf("'%v' must be within [0,1]: %w", cfg.Threshold, ErrInvalidThreshold)
	}
	switch {
	case cfg.DatapointsPerBin < 0:
		return fmt.Errorf("datapoints per bin '%d' must not be negative: %w", cfg.DatapointsPerBin, ErrInvalidBins)
	case cfg.DatapointsPerBin > 0 && cfg.Scheme != Adaptive:
		return fmt.Errorf("datapoints per bin requires the '%v' scheme, not '%v': %w", Adaptive, cfg.Scheme, ErrInvalidBins)
	case cfg.DatapointsPerBin == 0 && cfg.Bins <= 0:
		return fmt.Errorf("'%d' must be positive: %w", cfg.Bins, ErrInvalidBins)
	}
	return nil
}

// bins resolves the number of bins for a data set of the given size.
func (cfg Config) bins(size int) int {
	if cfg.DatapointsPerBin > 0 {
		if b := size / cfg.DatapointsPerBin; b > 0 {
			return b
		}
		return 1
	}
	return cfg.Bins
}

func (cfg Config) String() string {
	return fmt.Sprintf("scheme=%v max_prob=%v class_conditional=%v threshold=%v norm=%v bins=%d datapoints_per_bin=%d reduction=%v",
		cfg.Scheme, cfg.MaxProb, cfg.ClassConditional, cfg.Threshold, cfg.Norm, cfg.Bins, cfg.DatapointsPerBin, cfg.Reduction)
}

// MarshalText encodes the scheme by name.
func (s Scheme) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes the scheme from its name.
func (s *Scheme) UnmarshalText(b []byte) error {
	scheme, err := ParseScheme(string(b))
	if err != nil {
		return err
	}
	*s = scheme
	return nil
}

// MarshalText encodes the norm by name.
func (n Norm) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText decodes the norm from its name.
func (n *Norm) UnmarshalText(b []byte) error {
	norm, err := ParseNorm(string(b))
	if err != nil {
		return err
	}
	*n = norm
	return nil
}

// MarshalText encodes the reduction by name.
func (r Reduction) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes the reduction from its name.
func (r *Reduction) UnmarshalText(b []byte) error {
	reduction, err := ParseReduction(string(b))
	if err != nil {
		return err
	}
	*r = reduction
	return nil
}
