//go:build !amd64 || !gc

package hw

import (
	"github.com/klauspost/cpuid/v2"
)

// identifyCPU falls back to klauspost/cpuid where the instruction cannot be
// issued directly. On non-x86 hosts the SIMD flags are always false.
func identifyCPU() CPUInfo {
	var info CPUInfo

	copy(info.Vendor[:], cpuid.CPU.VendorString)
	copy(info.Brand[:], cpuid.CPU.BrandName)

	if cpuid.CPU.Family > 0 {
		info.Family = uint32(cpuid.CPU.Family)
	}
	if cpuid.CPU.Model > 0 {
		info.Model = uint32(cpuid.CPU.Model)
	}

	info.Features = Features{
		MMX:   cpuid.CPU.Supports(cpuid.MMX),
		SSE:   cpuid.CPU.Supports(cpuid.SSE),
		SSE2:  cpuid.CPU.Supports(cpuid.SSE2),
		SSE3:  cpuid.CPU.Supports(cpuid.SSE3),
		SSE41: cpuid.CPU.Supports(cpuid.SSE4),
		SSE42: cpuid.CPU.Supports(cpuid.SSE42),
		AVX:   cpuid.CPU.Supports(cpuid.AVX),
	}

	return info
}
