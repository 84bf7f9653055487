package hw

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"
)

// processorInformation is POWER_INFORMATION_LEVEL ProcessorInformation.
const processorInformation = 11

// processorPowerInformation mirrors PROCESSOR_POWER_INFORMATION.
type processorPowerInformation struct {
	Number           uint32
	MaxMhz           uint32
	CurrentMhz       uint32
	MhzLimit         uint32
	MaxIdleState     uint32
	CurrentIdleState uint32
}

// powerInformationFunc calls CallNtPowerInformation(level, NULL, 0, buf,
// size) and returns its NTSTATUS. err is set only when the call could not be
// made at all.
type powerInformationFunc func(level uintptr, buf unsafe.Pointer, size uintptr) (status uintptr, err error)

// powerInfoMaxMHz returns the maximum clock speed of processor 0. The
// output buffer holds one entry per logical processor, as the API requires.
func powerInfoMaxMHz(call powerInformationFunc, processors uint32) (uint32, error) {
	if processors == 0 {
		return 0, fmt.Errorf("invalid processor count 0")
	}

	buf := make([]processorPowerInformation, processors)
	size := uintptr(len(buf)) * unsafe.Sizeof(buf[0])

	status, err := call(processorInformation, unsafe.Pointer(&buf[0]), size)
	if err != nil {
		return 0, err
	}
	if status != 0 {
		return 0, fmt.Errorf("CallNtPowerInformation: NTSTATUS 0x%08x", status)
	}

	return buf[0].MaxMhz, nil
}

// powerFrequencyMHz prefers the power management figure and falls back to
// fallbackMHz when it is missing or zero.
func (q hostQueries) powerFrequencyMHz(call powerInformationFunc, processors uint32, logger *zap.Logger) uint32 {
	mhz, err := powerInfoMaxMHz(call, processors)
	if err != nil {
		logger.Debug("power information query failed", zap.Error(err))
	}
	if mhz == 0 {
		mhz = q.fallbackMHz(logger)
	}
	return mhz
}
