//go:build linux

package hw

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const procCPUInfo = "/proc/cpuinfo"

// linuxProvider reads memory and filesystem status through gopsutil and the
// clock speed from /proc/cpuinfo.
type linuxProvider struct {
	hostQueries
	cpuinfoPath string
	identify    func() CPUInfo
	logger      *zap.Logger
}

// platformDiskFreeSpace is unset: volumes are read through disk.Usage.
var platformDiskFreeSpace func(path string) (freeAvail, total, totalFree uint64, err error)

func newPlatformProvider(logger *zap.Logger) Provider {
	return &linuxProvider{
		hostQueries: defaultHostQueries(),
		cpuinfoPath: procCPUInfo,
		identify:    identifyCPU,
		logger:      logger,
	}
}

func (p *linuxProvider) Memory() (MemoryInfo, error) {
	return p.memory()
}

func (p *linuxProvider) Storage(path string) (StorageInfo, error) {
	return p.storage(path)
}

func (p *linuxProvider) CPU() (CPUInfo, error) {
	cores, err := p.cores()
	if err != nil {
		return CPUInfo{}, err
	}

	info := p.identify()
	info.Cores = cores
	info.FrequencyMHz = p.frequencyMHz()

	return info, nil
}

func (p *linuxProvider) frequencyMHz() uint32 {
	f, err := os.Open(p.cpuinfoPath)
	if err != nil {
		p.logger.Debug("cpuinfo unreadable", zap.String("path", p.cpuinfoPath), zap.Error(err))
		return p.fallbackMHz(p.logger)
	}
	defer f.Close()

	if mhz := parseCPUInfoMHz(f); mhz > 0 {
		return mhz
	}
	return p.fallbackMHz(p.logger)
}

// parseCPUInfoMHz returns the first "cpu MHz" value in /proc/cpuinfo
// format, rounded to whole MHz, or zero if there is none.
func parseCPUInfoMHz(r io.Reader) uint32 {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu MHz") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		mhz, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || mhz <= 0 {
			continue
		}
		return uint32(math.Round(mhz))
	}
	return 0
}
