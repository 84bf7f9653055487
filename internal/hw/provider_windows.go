//go:build windows

package hw

import (
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

var (
	modpowrprof                = windows.NewLazySystemDLL("powrprof.dll")
	procCallNtPowerInformation = modpowrprof.NewProc("CallNtPowerInformation")
)

// windowsProvider reads memory status through gopsutil (GlobalMemoryStatusEx),
// disk space through GetDiskFreeSpaceEx and the clock speed from the power
// management API.
type windowsProvider struct {
	hostQueries
	powerInformation powerInformationFunc
	identify         func() CPUInfo
	logger           *zap.Logger
}

func newPlatformProvider(logger *zap.Logger) Provider {
	return &windowsProvider{
		hostQueries:      defaultHostQueries(),
		powerInformation: callNtPowerInformation,
		identify:         identifyCPU,
		logger:           logger,
	}
}

func (p *windowsProvider) Memory() (MemoryInfo, error) {
	return p.memory()
}

func (p *windowsProvider) Storage(path string) (StorageInfo, error) {
	return p.storage(path)
}

func (p *windowsProvider) CPU() (CPUInfo, error) {
	cores, err := p.cores()
	if err != nil {
		return CPUInfo{}, err
	}

	info := p.identify()
	info.Cores = cores
	info.FrequencyMHz = p.powerFrequencyMHz(p.powerInformation, cores, p.logger)

	return info, nil
}

func callNtPowerInformation(level uintptr, buf unsafe.Pointer, size uintptr) (uintptr, error) {
	if err := procCallNtPowerInformation.Find(); err != nil {
		return 0, err
	}
	status, _, _ := procCallNtPowerInformation.Call(level, 0, 0, uintptr(buf), size)
	return status, nil
}

// platformDiskFreeSpace reports the volume containing path with
// GetDiskFreeSpaceEx.
func platformDiskFreeSpace(path string) (freeAvail, total, totalFree uint64, err error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0, 0, err
	}
	if err := windows.GetDiskFreeSpaceEx(p, &freeAvail, &total, &totalFree); err != nil {
		return 0, 0, 0, err
	}
	return freeAvail, total, totalFree, nil
}
