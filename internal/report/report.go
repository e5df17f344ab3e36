package report

import (
	"io"
	"time"

	"github.com/drakos74/go-calibration/calibration"
	calmath "github.com/drakos74/go-calibration/internal/math"
	"github.com/drakos74/go-calibration/internal/storage"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
)

// Result is the outcome of one named evaluation.
type Result struct {
	Name   string              `json:"name"`
	Config calibration.Config  `json:"config"`
	Value  float64             `json:"value"`
	Tracks []calibration.Track `json:"tracks,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// Report collects the results of all evaluations of a dataset.
type Report struct {
	ID       string    `json:"id"`
	Dataset  string    `json:"dataset"`
	Examples int       `json:"examples"`
	Classes  int       `json:"classes"`
	Created  time.Time `json:"created"`
	Results  []Result  `json:"results"`
}

// New creates a new report with a fresh id.
func New(dataset string, examples, classes int) *Report {
	return &Report{
		ID:       uuid.New().String(),
		Dataset:  dataset,
		Examples: examples,
		Classes:  classes,
		Created:  time.Now(),
		Results:  make([]Result, 0),
	}
}

// Add appends a result.
func (r *Report) Add(result Result) {
	r.Results = append(r.Results, result)
}

// Failed returns the number of evaluations that did not produce a value.
func (r Report) Failed() int {
	var failed int
	for _, result := range r.Results {
		if result.Error != "" {
			failed++
		}
	}
	return failed
}

// Key is the storage key of the report.
func (r Report) Key() storage.Key {
	return storage.Key{
		Dataset: r.Dataset,
		Label:   r.ID,
	}
}

// Render writes the results as a table.
func (r Report) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"metric", "scheme", "max prob", "class cond", "threshold", "norm", "bins", "value"})
	for _, result := range r.Results {
		value := calmath.Format(result.Value, 6)
		if result.Error != "" {
			value = result.Error
		}
		cfg := result.Config
		bins := calmath.Format(float64(cfg.Bins), 0)
		if cfg.DatapointsPerBin > 0 {
			bins = calmath.Format(float64(cfg.DatapointsPerBin), 0) + "/bin"
		}
		table.Append([]string{
			result.Name,
			cfg.Scheme.String(),
			yesNo(cfg.MaxProb),
			yesNo(cfg.ClassConditional),
			calmath.Format(cfg.Threshold, 2),
			cfg.Norm.String(),
			bins,
			value,
		})
	}
	table.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
