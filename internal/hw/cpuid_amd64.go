//go:build amd64 && gc

package hw

// cpuidex is implemented in cpuid_amd64.s.
func cpuidex(eaxArg, ecxArg uint32) (eax, ebx, ecx, edx uint32)

func hostCPUID(leaf uint32) Registers {
	a, b, c, d := cpuidex(leaf, 0)
	return Registers{a, b, c, d}
}

// identifyCPU reads vendor, brand, signature and features straight from
// the CPUID instruction.
func identifyCPU() CPUInfo {
	return identifyWith(hostCPUID)
}
