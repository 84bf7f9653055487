package hw

import (
	"bytes"
	"encoding/json"
)

// Snapshot is a single read-only view of the host's CPU, RAM and disk.
type Snapshot struct {
	CPU CPUInfo     `json:"cpu" yaml:"cpu"`
	RAM MemoryInfo  `json:"ram" yaml:"ram"`
	HDD StorageInfo `json:"hdd" yaml:"hdd"`
}

// CPUInfo describes the processor as reported by the OS and the CPUID instruction.
type CPUInfo struct {
	// Cores is the OS-reported logical processor count.
	Cores uint32
	// FrequencyMHz is best-effort and zero when the platform does not expose it.
	FrequencyMHz uint32

	Family uint32
	Model  uint32

	Vendor [12]byte
	Brand  [48]byte

	Features Features
}

// Features holds the SIMD extension flags decoded from CPUID leaf 1.
type Features struct {
	MMX   bool `json:"mmx" yaml:"mmx"`
	SSE   bool `json:"sse" yaml:"sse"`
	SSE2  bool `json:"sse2" yaml:"sse2"`
	SSE3  bool `json:"sse3" yaml:"sse3"`
	SSE41 bool `json:"sse4_1" yaml:"sse4_1"`
	SSE42 bool `json:"sse4_2" yaml:"sse4_2"`
	AVX   bool `json:"avx" yaml:"avx"`
}

// MemoryInfo holds RAM capacity in megabytes.
type MemoryInfo struct {
	TotalMB uint64 `json:"total_mb" yaml:"total_mb"`
	FreeMB  uint64 `json:"free_mb" yaml:"free_mb"`
	// InUse is a percentage in [0, 100].
	InUse uint32 `json:"in_use" yaml:"in_use"`
}

// StorageInfo holds capacity in megabytes for the volume containing Path.
type StorageInfo struct {
	Path    string `json:"path" yaml:"path"`
	TotalMB uint64 `json:"total_mb" yaml:"total_mb"`
	FreeMB  uint64 `json:"free_mb" yaml:"free_mb"`
	InUse   uint32 `json:"in_use" yaml:"in_use"`
}

// VendorString returns the vendor ID without NUL padding.
func (c CPUInfo) VendorString() string {
	return trimFixed(c.Vendor[:])
}

// BrandString returns the processor brand string without NUL padding or
// the leading spaces some vendors right-justify it with.
func (c CPUInfo) BrandString() string {
	return trimFixed(c.Brand[:])
}

func trimFixed(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(bytes.TrimSpace(b))
}

// cpuView is the encoded form of CPUInfo with the fixed byte arrays as text.
type cpuView struct {
	Cores        uint32   `json:"cores" yaml:"cores"`
	FrequencyMHz uint32   `json:"frequency_mhz" yaml:"frequency_mhz"`
	Vendor       string   `json:"vendor" yaml:"vendor"`
	Brand        string   `json:"brand" yaml:"brand"`
	Family       uint32   `json:"family" yaml:"family"`
	Model        uint32   `json:"model" yaml:"model"`
	Features     Features `json:"features" yaml:"features"`
}

func (c CPUInfo) view() cpuView {
	return cpuView{
		Cores:        c.Cores,
		FrequencyMHz: c.FrequencyMHz,
		Vendor:       c.VendorString(),
		Brand:        c.BrandString(),
		Family:       c.Family,
		Model:        c.Model,
		Features:     c.Features,
	}
}

// MarshalJSON encodes vendor and brand as strings.
func (c CPUInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.view())
}

// MarshalYAML implements yaml.Marshaler.
func (c CPUInfo) MarshalYAML() (interface{}, error) {
	return c.view(), nil
}

// HardwareInfo is a summary of the machine's physical hardware.
type HardwareInfo struct {
	Processors []ProcessorInfo `json:"processors" yaml:"processors"`
	TotalCores uint32          `json:"total_cores" yaml:"total_cores"`
	Memory     PhysicalMemory  `json:"memory" yaml:"memory"`
	Disks      []DiskInfo      `json:"disks" yaml:"disks"`
}

// ProcessorInfo describes one physical processor package.
type ProcessorInfo struct {
	ID     int    `json:"id" yaml:"id"`
	Vendor string `json:"vendor" yaml:"vendor"`
	Model  string `json:"model" yaml:"model"`
	Cores  uint32 `json:"cores" yaml:"cores"`
}

// PhysicalMemory holds installed and OS-usable memory in bytes.
type PhysicalMemory struct {
	TotalPhysicalBytes int64 `json:"total_physical_bytes" yaml:"total_physical_bytes"`
	TotalUsableBytes   int64 `json:"total_usable_bytes" yaml:"total_usable_bytes"`
}

// DiskInfo describes a block device.
type DiskInfo struct {
	Name      string `json:"name" yaml:"name"`
	Model     string `json:"model" yaml:"model"`
	Vendor    string `json:"vendor" yaml:"vendor"`
	SizeBytes uint64 `json:"size_bytes" yaml:"size_bytes"`
	DriveType string `json:"drive_type" yaml:"drive_type"`
}

// SystemInfo holds details about the host system.
type SystemInfo struct {
	Hostname      string `json:"hostname" yaml:"hostname"`
	OS            string `json:"os" yaml:"os"`
	Distro        string `json:"distro" yaml:"distro"`
	Version       string `json:"version" yaml:"version"`
	KernelVersion string `json:"kernelVersion" yaml:"kernelVersion"`
	Architecture  string `json:"architecture" yaml:"architecture"`
}
