package hw

import (
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const mb = 1 << 20

func TestUsagePercent(t *testing.T) {
	tests := []struct {
		total, free uint64
		want        uint32
	}{
		{100, 100, 0},
		{100, 0, 100},
		{100, 25, 75},
		{3, 1, 67},
		{3, 2, 33},
		{1000, 1, 100},
		{0, 0, 0},
		{10, 20, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, usagePercent(tt.total, tt.free), "total=%d free=%d", tt.total, tt.free)
	}
}

func TestBytesToMB(t *testing.T) {
	assert.Equal(t, uint64(0), bytesToMB(mb-1))
	assert.Equal(t, uint64(1), bytesToMB(mb))
	assert.Equal(t, uint64(16384), bytesToMB(16*1024*mb))
}

func fakeQueries() hostQueries {
	return hostQueries{
		virtualMemory: func() (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 8192 * mb, Free: 2048 * mb}, nil
		},
		diskUsage: func(path string) (*disk.UsageStat, error) {
			return &disk.UsageStat{Path: path, Total: 1000 * mb, Used: 600 * mb, Free: 350 * mb}, nil
		},
		logicalCores: func() (int, error) { return 4, nil },
		cpuInfo:      func() ([]cpu.InfoStat, error) { return nil, nil },
		detectedHz:   func() int64 { return 0 },
	}
}

func TestHostQueriesMemory(t *testing.T) {
	ram, err := fakeQueries().memory()
	require.NoError(t, err)

	assert.Equal(t, MemoryInfo{TotalMB: 8192, FreeMB: 2048, InUse: 75}, ram)
	assert.LessOrEqual(t, ram.FreeMB, ram.TotalMB)
}

func TestHostQueriesMemoryError(t *testing.T) {
	q := fakeQueries()
	cause := errors.New("sysinfo failed")
	q.virtualMemory = func() (*mem.VirtualMemoryStat, error) { return nil, cause }

	_, err := q.memory()
	assert.ErrorIs(t, err, cause)
}

func TestHostQueriesStorage(t *testing.T) {
	hdd, err := fakeQueries().storage("/srv")
	require.NoError(t, err)

	assert.Equal(t, StorageInfo{Path: "/srv", TotalMB: 1000, FreeMB: 400, InUse: 60}, hdd)
}

func TestHostQueriesStorageCountsReservedBlocksAsFree(t *testing.T) {
	q := fakeQueries()
	// 1000 blocks, 200 free, 150 of them available to unprivileged users.
	q.diskUsage = func(path string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Total: 1000 * mb, Used: 800 * mb, Free: 150 * mb}, nil
	}

	hdd, err := q.storage("/")
	require.NoError(t, err)
	assert.Equal(t, uint64(200), hdd.FreeMB, "free must be total minus used, not the unprivileged figure")
	assert.Equal(t, uint32(80), hdd.InUse)
}

func TestHostQueriesStorageUsedExceedsTotal(t *testing.T) {
	q := fakeQueries()
	q.diskUsage = func(path string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Total: 10 * mb, Used: 11 * mb}, nil
	}

	hdd, err := q.storage(".")
	require.NoError(t, err)
	assert.Zero(t, hdd.FreeMB)
	assert.Equal(t, uint32(100), hdd.InUse)
}

func TestHostQueriesStorageDiskFreeSpace(t *testing.T) {
	q := fakeQueries()
	q.diskUsage = func(string) (*disk.UsageStat, error) {
		t.Fatal("disk.Usage must not be called when diskFreeSpace is set")
		return nil, nil
	}
	q.diskFreeSpace = func(path string) (uint64, uint64, uint64, error) {
		// Quota leaves the caller less than the volume's total free space.
		return 250 * mb, 1000 * mb, 400 * mb, nil
	}

	hdd, err := q.storage(`C:\`)
	require.NoError(t, err)
	assert.Equal(t, StorageInfo{Path: `C:\`, TotalMB: 1000, FreeMB: 250, InUse: 75}, hdd)
}

func TestHostQueriesStorageDiskFreeSpaceClampsFree(t *testing.T) {
	q := fakeQueries()
	q.diskFreeSpace = func(string) (uint64, uint64, uint64, error) {
		return 11 * mb, 10 * mb, 11 * mb, nil
	}

	hdd, err := q.storage(".")
	require.NoError(t, err)
	assert.Equal(t, hdd.TotalMB, hdd.FreeMB)
	assert.Zero(t, hdd.InUse)
}

func TestHostQueriesStorageDiskFreeSpaceError(t *testing.T) {
	q := fakeQueries()
	cause := errors.New("path not found")
	q.diskFreeSpace = func(string) (uint64, uint64, uint64, error) { return 0, 0, 0, cause }

	_, err := q.storage(`Z:\`)
	assert.ErrorIs(t, err, cause)
}

func TestHostQueriesStorageError(t *testing.T) {
	q := fakeQueries()
	q.diskUsage = func(string) (*disk.UsageStat, error) { return nil, errors.New("statfs: ENOENT") }

	_, err := q.storage("/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/missing")
}

func TestHostQueriesCores(t *testing.T) {
	q := fakeQueries()
	n, err := q.cores()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), n)

	q.logicalCores = func() (int, error) { return 0, nil }
	_, err = q.cores()
	assert.Error(t, err)

	q.logicalCores = func() (int, error) { return 0, errors.New("sysconf failed") }
	_, err = q.cores()
	assert.Error(t, err)
}

func TestFallbackMHz(t *testing.T) {
	log := zap.NewNop()

	q := fakeQueries()
	assert.Zero(t, q.fallbackMHz(log))

	q.detectedHz = func() int64 { return 2_400_000_000 }
	assert.Equal(t, uint32(2400), q.fallbackMHz(log))

	q.cpuInfo = func() ([]cpu.InfoStat, error) {
		return []cpu.InfoStat{{Mhz: 0}, {Mhz: 3599.6}}, nil
	}
	assert.Equal(t, uint32(3600), q.fallbackMHz(log))

	q.cpuInfo = func() ([]cpu.InfoStat, error) { return nil, errors.New("no cpuinfo") }
	assert.Equal(t, uint32(2400), q.fallbackMHz(log))
}

func TestCollectHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping host collection in short mode")
	}

	var snap Snapshot
	require.NoError(t, Collect(&snap))

	assert.LessOrEqual(t, snap.RAM.FreeMB, snap.RAM.TotalMB)
	assert.LessOrEqual(t, snap.HDD.FreeMB, snap.HDD.TotalMB)
	assert.LessOrEqual(t, snap.RAM.InUse, uint32(100))
	assert.LessOrEqual(t, snap.HDD.InUse, uint32(100))
	assert.NotZero(t, snap.CPU.Cores)
}
