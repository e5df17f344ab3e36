package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/drakos74/go-calibration/calibration"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for a config that does not pass validation.
var ErrInvalid = errors.New("invalid config")

var validate = validator.New()

// Evaluation is a named calibration error computation.
// It starts from the preset, or the default configuration, and overrides any option that is set.
type Evaluation struct {
	Name             string   `yaml:"name" validate:"required"`
	Preset           string   `yaml:"preset,omitempty" validate:"omitempty,oneof=ece rmsce sce ace tace"`
	Scheme           string   `yaml:"scheme,omitempty" validate:"omitempty,oneof=even adaptive"`
	MaxProb          *bool    `yaml:"max_prob,omitempty"`
	ClassConditional *bool    `yaml:"class_conditional,omitempty"`
	Threshold        *float64 `yaml:"threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
	Norm             string   `yaml:"norm,omitempty" validate:"omitempty,oneof=l1 l2"`
	Bins             int      `yaml:"bins,omitempty" validate:"gte=0"`
	DatapointsPerBin int      `yaml:"datapoints_per_bin,omitempty" validate:"gte=0"`
	Reduction        string   `yaml:"reduction,omitempty" validate:"omitempty,oneof=pooled class-mean"`
}

// Config is the evaluation config.
type Config struct {
	// Bins applies to every evaluation that does not set its own.
	Bins        int          `yaml:"bins,omitempty" validate:"gte=0"`
	Evaluations []Evaluation `yaml:"evaluations" validate:"required,min=1,unique=Name,dive"`
}

// Default evaluates all the presets.
func Default() Config {
	presets := calibration.Presets()
	evaluations := make([]Evaluation, len(presets))
	for i, preset := range presets {
		evaluations[i] = Evaluation{
			Name:   preset,
			Preset: preset,
		}
	}
	return Config{Evaluations: evaluations}
}

// Parse decodes and validates a yaml config.
func Parse(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse yaml: %s: %w", err.Error(), ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load loads the config from the given file.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config '%s': %w", path, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("config '%s': %w", path, err)
	}
	log.Info().Str("path", path).Int("evaluations", len(cfg.Evaluations)).Msg("loaded config")
	return cfg, nil
}

// MustLoad loads the config for the given path and panics if it is not usable.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("could not load config: %s", err.Error()))
	}
	return cfg
}

// Validate checks the config structure and resolves every evaluation.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), ErrInvalid)
	}
	for _, e := range c.Evaluations {
		if _, err := e.Resolve(c.Bins); err != nil {
			return err
		}
	}
	return nil
}

// Resolve builds the calibration config of the evaluation.
// Bins fall back to the given default when the evaluation does not set them.
func (e Evaluation) Resolve(bins int) (calibration.Config, error) {
	cfg := calibration.DefaultConfig()
	if e.Preset != "" {
		preset, err := calibration.Preset(e.Preset)
		if err != nil {
			return calibration.Config{}, fmt.Errorf("evaluation '%s': %s: %w", e.Name, err.Error(), ErrInvalid)
		}
		cfg = preset
	}

	opts := make([]calibration.Option, 0)
	if e.Scheme != "" {
		scheme, err := calibration.ParseScheme(e.Scheme)
		if err != nil {
			return calibration.Config{}, fmt.Errorf("evaluation '%s': %s: %w", e.Name, err.Error(), ErrInvalid)
		}
		opts = append(opts, calibration.WithScheme(scheme))
	}
	if e.Norm != "" {
		norm, err := calibration.ParseNorm(e.Norm)
		if err != nil {
			return calibration.Config{}, fmt.Errorf("evaluation '%s': %s: %w", e.Name, err.Error(), ErrInvalid)
		}
		opts = append(opts, calibration.WithNorm(norm))
	}
	if e.Reduction != "" {
		reduction, err := calibration.ParseReduction(e.Reduction)
		if err != nil {
			return calibration.Config{}, fmt.Errorf("evaluation '%s': %s: %w", e.Name, err.Error(), ErrInvalid)
		}
		opts = append(opts, calibration.WithReduction(reduction))
	}
	if e.MaxProb != nil {
		opts = append(opts, calibration.WithMaxProb(*e.MaxProb))
	}
	if e.ClassConditional != nil {
		opts = append(opts, calibration.WithClassConditional(*e.ClassConditional))
	}
	if e.Threshold != nil {
		opts = append(opts, calibration.WithThreshold(*e.Threshold))
	}
	switch {
	case e.Bins > 0:
		opts = append(opts, calibration.WithBins(e.Bins))
	case bins > 0:
		opts = append(opts, calibration.WithBins(bins))
	}
	if e.DatapointsPerBin > 0 {
		opts = append(opts, calibration.WithDatapointsPerBin(e.DatapointsPerBin))
	}

	cfg = cfg.With(opts...)
	if err := cfg.Validate(); err != nil {
		return calibration.Config{}, fmt.Errorf("evaluation '%s': %s: %w", e.Name, err.Error(), ErrInvalid)
	}
	return cfg, nil
}
