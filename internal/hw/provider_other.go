//go:build !linux && !windows

package hw

import "go.uber.org/zap"

// genericProvider serves the remaining gopsutil platforms (darwin, the
// BSDs). Clock speed comes from gopsutil's cpu.Info.
type genericProvider struct {
	hostQueries
	identify func() CPUInfo
	logger   *zap.Logger
}

// platformDiskFreeSpace is unset: volumes are read through disk.Usage.
var platformDiskFreeSpace func(path string) (freeAvail, total, totalFree uint64, err error)

func newPlatformProvider(logger *zap.Logger) Provider {
	return &genericProvider{
		hostQueries: defaultHostQueries(),
		identify:    identifyCPU,
		logger:      logger,
	}
}

func (p *genericProvider) Memory() (MemoryInfo, error) {
	return p.memory()
}

func (p *genericProvider) Storage(path string) (StorageInfo, error) {
	return p.storage(path)
}

func (p *genericProvider) CPU() (CPUInfo, error) {
	cores, err := p.cores()
	if err != nil {
		return CPUInfo{}, err
	}

	info := p.identify()
	info.Cores = cores
	info.FrequencyMHz = p.fallbackMHz(p.logger)

	return info, nil
}
