package eval

import (
	"context"
	"fmt"

	"github.com/drakos74/go-calibration/calibration"
	"github.com/drakos74/go-calibration/internal/config"
	"github.com/drakos74/go-calibration/internal/dataset"
	calmath "github.com/drakos74/go-calibration/internal/math"
	"github.com/drakos74/go-calibration/internal/metrics"
	"github.com/drakos74/go-calibration/internal/report"
	"github.com/drakos74/go-calibration/internal/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Runner evaluates datasets against the configured calibration metrics.
type Runner struct {
	cfg         config.Config
	store       storage.Persistence
	metrics     *metrics.Metrics
	parallelism int
	bins        bool
}

// NewRunner creates a runner for the given config.
// Reports are discarded unless a storage is set.
func NewRunner(cfg config.Config) *Runner {
	return &Runner{
		cfg:         cfg,
		store:       storage.NewVoidStorage(),
		metrics:     metrics.New(),
		parallelism: 1,
	}
}

// WithStorage stores the reports in the given storage.
func (r *Runner) WithStorage(store storage.Persistence) *Runner {
	r.store = store
	return r
}

// WithMetrics records the evaluations in the given metrics.
func (r *Runner) WithMetrics(m *metrics.Metrics) *Runner {
	r.metrics = m
	return r
}

// WithParallelism evaluates up to n datasets at the same time.
func (r *Runner) WithParallelism(n int) *Runner {
	if n > 0 {
		r.parallelism = n
	}
	return r
}

// WithBins keeps the per-bin statistics in the reports.
func (r *Runner) WithBins(bins bool) *Runner {
	r.bins = bins
	return r
}

// Metrics returns the metrics the runner records into.
func (r *Runner) Metrics() *metrics.Metrics {
	return r.metrics
}

// Evaluate runs all evaluations on the dataset and stores the report.
// A failing evaluation is recorded in the report and does not stop the others.
func (r *Runner) Evaluate(ds dataset.Dataset) (*report.Report, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("dataset '%s': %w", ds.Name, err)
	}

	rep := report.New(ds.Name, ds.Size(), ds.Classes())
	probs := ds.Matrix()
	r.metrics.Examples(ds.Name, ds.Size())

	for _, e := range r.cfg.Evaluations {
		cfg, err := e.Resolve(r.cfg.Bins)
		if err != nil {
			return nil, err
		}
		result := report.Result{
			Name:   e.Name,
			Config: cfg,
		}
		calibrated, err := calibration.CalibrateMatrix(probs, ds.Labels, cfg)
		if err != nil {
			log.Error().
				Err(err).
				Str("dataset", ds.Name).
				Str("metric", e.Name).
				Str("config", cfg.String()).
				Msg("could not evaluate")
			result.Error = err.Error()
			r.metrics.Increment(ds.Name, metrics.StatusError)
			rep.Add(result)
			continue
		}
		result.Value = calibrated.Value
		if r.bins {
			result.Tracks = calibrated.Tracks
		}
		r.metrics.Observe(ds.Name, e.Name, calibrated.Value)
		r.metrics.Increment(ds.Name, metrics.StatusOK)
		log.Info().
			Str("dataset", ds.Name).
			Str("metric", e.Name).
			Str("value", calmath.Format(calibrated.Value, 6)).
			Msg("evaluated")
		rep.Add(result)
	}

	if err := r.store.Store(rep.Key(), rep); err != nil {
		log.Error().
			Err(err).
			Str("key", fmt.Sprintf("%+v", rep.Key())).
			Msg("could not store report")
		return rep, fmt.Errorf("could not store report: %w", err)
	}
	return rep, nil
}

// Run loads and evaluates the datasets at the given paths.
// Reports are returned in the order of the paths.
func (r *Runner) Run(ctx context.Context, paths ...string) ([]*report.Report, error) {
	reports := make([]*report.Report, len(paths))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.parallelism)
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ds, err := dataset.Load(path)
			if err != nil {
				return err
			}
			rep, err := r.Evaluate(ds)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
