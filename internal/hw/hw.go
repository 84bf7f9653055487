package hw

import (
	"fmt"

	"github.com/jaypipes/ghw"
)

// Inventory returns a summary of the machine's processors, installed memory
// and block devices. It is independent of Collect and may take noticeably
// longer, since ghw walks sysfs (or WMI) for every device.
func Inventory() (*HardwareInfo, error) {
	cpu, err := ghw.CPU()
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU info: %w", err)
	}

	memory, err := ghw.Memory()
	if err != nil {
		return nil, fmt.Errorf("failed to get memory info: %w", err)
	}

	block, err := ghw.Block()
	if err != nil {
		return nil, fmt.Errorf("failed to get block storage info: %w", err)
	}

	info := &HardwareInfo{
		TotalCores: cpu.TotalCores,
		Memory: PhysicalMemory{
			TotalPhysicalBytes: memory.TotalPhysicalBytes,
			TotalUsableBytes:   memory.TotalUsableBytes,
		},
	}

	for _, p := range cpu.Processors {
		info.Processors = append(info.Processors, ProcessorInfo{
			ID:     p.ID,
			Vendor: p.Vendor,
			Model:  p.Model,
			Cores:  p.NumCores,
		})
	}

	for _, d := range block.Disks {
		info.Disks = append(info.Disks, DiskInfo{
			Name:      d.Name,
			Model:     d.Model,
			Vendor:    d.Vendor,
			SizeBytes: d.SizeBytes,
			DriveType: d.DriveType.String(),
		})
	}

	return info, nil
}
