package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	jsonstorage "github.com/drakos74/go-calibration/internal/storage/file/json"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalid is returned for a dataset that cannot form a prediction matrix.
var ErrInvalid = errors.New("invalid dataset")

// Dataset holds the predictions of a classifier and the true labels.
type Dataset struct {
	Name string `json:"name"`
	// Probs has one row of class probabilities per example.
	Probs [][]float64 `json:"-"`
	// Binary marks a dataset given as positive class probabilities.
	Binary bool  `json:"-"`
	Labels []int `json:"labels"`
}

type raw struct {
	Name   string          `json:"name"`
	Probs  json.RawMessage `json:"probs"`
	Labels []int           `json:"labels"`
}

// UnmarshalJSON accepts probs either as a list of rows or as a flat list of positive class probabilities.
func (d *Dataset) UnmarshalJSON(b []byte) error {
	var r raw
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	d.Name = r.Name
	d.Labels = r.Labels
	d.Probs = nil
	d.Binary = false
	if len(r.Probs) == 0 {
		return nil
	}

	var rows [][]float64
	if err := json.Unmarshal(r.Probs, &rows); err == nil {
		d.Probs = rows
		return nil
	}
	var flat []float64
	if err := json.Unmarshal(r.Probs, &flat); err != nil {
		return fmt.Errorf("probs must be a list of numbers or of rows: %s: %w", err.Error(), ErrInvalid)
	}
	d.Binary = true
	d.Probs = make([][]float64, len(flat))
	for i, p := range flat {
		d.Probs[i] = []float64{p}
	}
	return nil
}

// MarshalJSON writes binary datasets back in their flat form.
func (d Dataset) MarshalJSON() ([]byte, error) {
	var probs interface{} = d.Probs
	if d.Binary {
		flat := make([]float64, len(d.Probs))
		for i, row := range d.Probs {
			flat[i] = row[0]
		}
		probs = flat
	}
	if d.Probs == nil {
		probs = [][]float64{}
	}
	return json.Marshal(struct {
		Name   string      `json:"name"`
		Probs  interface{} `json:"probs"`
		Labels []int       `json:"labels"`
	}{
		Name:   d.Name,
		Probs:  probs,
		Labels: d.Labels,
	})
}

// Size returns the number of examples.
func (d Dataset) Size() int {
	return len(d.Probs)
}

// Classes returns the number of columns of the predictions.
func (d Dataset) Classes() int {
	if len(d.Probs) == 0 {
		return 0
	}
	return len(d.Probs[0])
}

// Validate checks that the predictions form a matrix and that every example has a label.
func (d Dataset) Validate() error {
	if len(d.Probs) != len(d.Labels) {
		return fmt.Errorf("%d labels for %d predictions: %w", len(d.Labels), len(d.Probs), ErrInvalid)
	}
	k := d.Classes()
	for i, row := range d.Probs {
		if len(row) != k || k == 0 {
			return fmt.Errorf("row %d has %d classes instead of %d: %w", i, len(row), k, ErrInvalid)
		}
	}
	return nil
}

// Matrix returns the predictions as an N x K matrix.
// The dataset must be valid.
func (d Dataset) Matrix() *mat.Dense {
	if len(d.Probs) == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(d.Size(), d.Classes(), nil)
	for i, row := range d.Probs {
		m.SetRow(i, row)
	}
	return m
}

// Load reads and validates the dataset at the given path.
// A dataset without a name is named after its file.
func Load(path string) (Dataset, error) {
	var d Dataset
	if err := jsonstorage.LoadFile(path, &d); err != nil {
		return Dataset{}, fmt.Errorf("could not load dataset: %w", err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := d.Validate(); err != nil {
		return Dataset{}, fmt.Errorf("dataset '%s': %w", d.Name, err)
	}
	return d, nil
}
