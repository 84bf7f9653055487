package hw

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Provider is the platform-specific source of system information. Each
// supported OS contributes one implementation, selected at build time.
type Provider interface {
	Memory() (MemoryInfo, error)
	// Storage reports the volume that contains path.
	Storage(path string) (StorageInfo, error)
	CPU() (CPUInfo, error)
}

// Collector fills snapshots from a Provider. It holds no mutable state, so a
// single Collector may be shared across goroutines as long as each call gets
// its own Snapshot.
type Collector struct {
	provider    Provider
	storagePath string
	logger      *zap.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithProvider replaces the host platform provider.
func WithProvider(p Provider) Option {
	return func(c *Collector) {
		c.provider = p
	}
}

// WithStoragePath selects the volume reported by the storage probe. The
// default is the process working directory.
func WithStoragePath(path string) Option {
	return func(c *Collector) {
		c.storagePath = path
	}
}

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCollector creates a Collector backed by the host platform provider.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.provider == nil {
		c.provider = newPlatformProvider(c.logger)
	}
	return c
}

// Collect clears snap and fills it by running the memory, storage and CPU
// probes in that order. The first probe to fail aborts the collection and
// its error is returned as a *ProbeError; snap must not be used in that case.
func (c *Collector) Collect(snap *Snapshot) error {
	if snap == nil {
		return ErrNilSnapshot
	}

	*snap = Snapshot{}

	ram, err := c.provider.Memory()
	if err != nil {
		return c.fail(probeMemory, err)
	}
	snap.RAM = ram

	path, err := c.resolveStoragePath()
	if err != nil {
		return c.fail(probeStorage, err)
	}
	hdd, err := c.provider.Storage(path)
	if err != nil {
		return c.fail(probeStorage, err)
	}
	snap.HDD = hdd

	cpu, err := c.provider.CPU()
	if err != nil {
		return c.fail(probeCPU, err)
	}
	snap.CPU = cpu

	c.logger.Debug("collected system snapshot",
		zap.Uint64("ram_total_mb", snap.RAM.TotalMB),
		zap.Uint64("hdd_total_mb", snap.HDD.TotalMB),
		zap.String("hdd_path", snap.HDD.Path),
		zap.Uint32("cpu_cores", snap.CPU.Cores),
		zap.String("cpu_vendor", snap.CPU.VendorString()))

	return nil
}

func (c *Collector) resolveStoragePath() (string, error) {
	if c.storagePath != "" {
		return c.storagePath, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

func (c *Collector) fail(probe string, err error) error {
	c.logger.Warn("system snapshot probe failed", zap.String("probe", probe), zap.Error(err))
	return &ProbeError{Probe: probe, Err: err}
}

// Collect fills snap using the host platform provider and the working
// directory's volume.
func Collect(snap *Snapshot) error {
	return NewCollector().Collect(snap)
}

// NewSnapshot allocates a Snapshot and collects into it.
func NewSnapshot() (*Snapshot, error) {
	snap := &Snapshot{}
	if err := Collect(snap); err != nil {
		return nil, err
	}
	return snap, nil
}
