package storage

import "fmt"

// VoidStorage discards every report, e.g. when the evaluation runs without an output directory.
type VoidStorage struct{}

// NewVoidStorage creates a storage that keeps nothing.
func NewVoidStorage() *VoidStorage {
	return &VoidStorage{}
}

// Store drops the value.
func (v VoidStorage) Store(k Key, value interface{}) error {
	return nil
}

// Load always fails with NotFoundErr as nothing is ever kept.
func (v VoidStorage) Load(k Key, value interface{}) error {
	return fmt.Errorf("no value stored for '%s': %w", k.Path(), NotFoundErr)
}
