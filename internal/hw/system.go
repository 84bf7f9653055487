package hw

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
)

// HostInfo retrieves the OS and kernel identity of the host.
func HostInfo() (*SystemInfo, error) {
	info, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	return &SystemInfo{
		Hostname:      info.Hostname,
		OS:            info.OS,
		Distro:        info.Platform,
		Version:       info.PlatformVersion,
		KernelVersion: info.KernelVersion,
		Architecture:  info.KernelArch,
	}, nil
}
