package hw

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSnapshot is returned when Collect is given no snapshot to fill.
	ErrNilSnapshot = errors.New("nil snapshot")

	ErrMemoryProbe  = errors.New("memory probe failed")
	ErrStorageProbe = errors.New("storage probe failed")
	ErrCPUProbe     = errors.New("cpu probe failed")
)

// ProbeError reports which probe aborted a collection. It matches both the
// probe's sentinel error and the underlying cause under errors.Is.
type ProbeError struct {
	Probe string
	Err   error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("%s probe: %v", e.Probe, e.Err)
}

func (e *ProbeError) Unwrap() []error {
	return []error{e.sentinel(), e.Err}
}

func (e *ProbeError) sentinel() error {
	switch e.Probe {
	case probeMemory:
		return ErrMemoryProbe
	case probeStorage:
		return ErrStorageProbe
	default:
		return ErrCPUProbe
	}
}

const (
	probeMemory  = "memory"
	probeStorage = "storage"
	probeCPU     = "cpu"
)
