package spectrum

import (
	"errors"
	"fmt"
)

var (
	ErrDatasetNotFound  = errors.New("dataset not found")
	ErrMalformedDataset = errors.New("malformed dataset")
)

// DatasetNotFoundError means no backing resource exists for Key.
type DatasetNotFoundError struct {
	Key string
	Err error
}

func (e *DatasetNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dataset %s not found: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("dataset %s not found", e.Key)
}

func (e *DatasetNotFoundError) Is(target error) bool { return target == ErrDatasetNotFound }
func (e *DatasetNotFoundError) Unwrap() error        { return e.Err }

// MalformedDatasetError means the resource for Key exists but cannot be
// read as a spectrum table.
type MalformedDatasetError struct {
	Key    string
	Reason string
	Err    error
}

func (e *MalformedDatasetError) Error() string {
	msg := fmt.Sprintf("dataset %s malformed: %s", e.Key, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedDatasetError) Is(target error) bool { return target == ErrMalformedDataset }
func (e *MalformedDatasetError) Unwrap() error        { return e.Err }

// Unavailable reports whether err means a dataset could not be served,
// either because it is missing or malformed.
func Unavailable(err error) bool {
	return errors.Is(err, ErrDatasetNotFound) || errors.Is(err, ErrMalformedDataset)
}
