package hw

import (
	"fmt"
	"math"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

// hostQueries are the gopsutil calls shared by every platform provider.
// Tests swap them out to simulate OS failures.
type hostQueries struct {
	virtualMemory func() (*mem.VirtualMemoryStat, error)
	diskUsage     func(path string) (*disk.UsageStat, error)
	// diskFreeSpace, when set, replaces diskUsage. It returns the bytes
	// available to the caller, the volume size and the total free bytes.
	diskFreeSpace func(path string) (freeAvail, total, totalFree uint64, err error)
	logicalCores  func() (int, error)
	cpuInfo       func() ([]cpu.InfoStat, error)
	detectedHz    func() int64
}

func defaultHostQueries() hostQueries {
	return hostQueries{
		virtualMemory: mem.VirtualMemory,
		diskUsage:     disk.Usage,
		diskFreeSpace: platformDiskFreeSpace,
		logicalCores:  func() (int, error) { return cpu.Counts(true) },
		cpuInfo:       cpu.Info,
		detectedHz:    func() int64 { return cpuid.CPU.Hz },
	}
}

func (q hostQueries) memory() (MemoryInfo, error) {
	vm, err := q.virtualMemory()
	if err != nil {
		return MemoryInfo{}, fmt.Errorf("failed to get virtual memory status: %w", err)
	}

	total, free := bytesToMB(vm.Total), bytesToMB(vm.Free)
	if free > total {
		free = total
	}

	return MemoryInfo{
		TotalMB: total,
		FreeMB:  free,
		InUse:   usagePercent(total, free),
	}, nil
}

func (q hostQueries) storage(path string) (StorageInfo, error) {
	totalBytes, freeBytes, err := q.diskSpace(path)
	if err != nil {
		return StorageInfo{}, fmt.Errorf("failed to get filesystem status for %s: %w", path, err)
	}

	total, free := bytesToMB(totalBytes), bytesToMB(freeBytes)
	if free > total {
		free = total
	}

	return StorageInfo{
		Path:    path,
		TotalMB: total,
		FreeMB:  free,
		InUse:   usagePercent(total, free),
	}, nil
}

// diskSpace returns the size and free bytes of the volume containing path.
// On unix free counts every free block (f_bfree), including those reserved
// for root; gopsutil's Free is f_bavail, so it is derived from Used, which
// is (f_blocks - f_bfree) * f_frsize. On Windows free is the space available
// to the caller.
func (q hostQueries) diskSpace(path string) (total, free uint64, err error) {
	if q.diskFreeSpace != nil {
		avail, size, _, err := q.diskFreeSpace(path)
		if err != nil {
			return 0, 0, err
		}
		return size, avail, nil
	}

	usage, err := q.diskUsage(path)
	if err != nil {
		return 0, 0, err
	}
	if usage.Used > usage.Total {
		return usage.Total, 0, nil
	}
	return usage.Total, usage.Total - usage.Used, nil
}

func (q hostQueries) cores() (uint32, error) {
	n, err := q.logicalCores()
	if err != nil {
		return 0, fmt.Errorf("failed to get logical processor count: %w", err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid logical processor count %d", n)
	}
	return uint32(n), nil
}

// fallbackMHz asks gopsutil and then klauspost/cpuid for a clock speed.
// It returns zero when neither knows.
func (q hostQueries) fallbackMHz(logger *zap.Logger) uint32 {
	infos, err := q.cpuInfo()
	if err != nil {
		logger.Debug("cpu info query failed", zap.Error(err))
	}
	for _, info := range infos {
		if info.Mhz > 0 {
			return uint32(math.Round(info.Mhz))
		}
	}

	if hz := q.detectedHz(); hz > 0 {
		return uint32(math.Round(float64(hz) / 1e6))
	}

	return 0
}

// bytesToMB converts a byte count to whole megabytes, rounding down.
func bytesToMB(b uint64) uint64 {
	return b >> 20
}

// usagePercent returns round(100 * (1 - free/total)) clamped to [0, 100].
// A zero total reports 0.
func usagePercent(total, free uint64) uint32 {
	if total == 0 {
		return 0
	}
	p := math.Round(100 * (1 - float64(free)/float64(total)))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return uint32(p)
}
