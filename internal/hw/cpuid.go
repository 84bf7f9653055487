package hw

import "encoding/binary"

// CPUID leaves queried by the CPU probe.
const (
	leafVendor      uint32 = 0x00000000
	leafSignature   uint32 = 0x00000001
	leafMaxExtended uint32 = 0x80000000
	leafBrand0      uint32 = 0x80000002
	leafBrand1      uint32 = 0x80000003
	leafBrand2      uint32 = 0x80000004
)

// Registers holds the EAX, EBX, ECX and EDX outputs of one CPUID call.
type Registers [4]uint32

const (
	eax = iota
	ebx
	ecx
	edx
)

// cpuidFunc issues CPUID for a leaf (subleaf 0).
type cpuidFunc func(leaf uint32) Registers

// DecodeVendor assembles the 12-byte vendor ID from leaf 0. The text is
// stored in EBX, EDX, ECX order, little-endian within each register.
func DecodeVendor(r Registers) [12]byte {
	var v [12]byte
	binary.LittleEndian.PutUint32(v[0:4], r[ebx])
	binary.LittleEndian.PutUint32(v[4:8], r[edx])
	binary.LittleEndian.PutUint32(v[8:12], r[ecx])
	return v
}

// DecodeBrand concatenates the raw register bytes of leaves
// 0x80000002..0x80000004, in leaf order, into the 48-byte brand string.
func DecodeBrand(leaves [3]Registers) [48]byte {
	var b [48]byte
	for i, r := range leaves {
		for j, reg := range r {
			binary.LittleEndian.PutUint32(b[i*16+j*4:], reg)
		}
	}
	return b
}

// DecodeSignature extracts family and model from leaf 1 EAX. The extended
// family nibble is added to the base family; the extended model nibble is
// shifted into the high half of the model number.
func DecodeSignature(sig uint32) (family, model uint32) {
	family = ((sig >> 8) & 0xF) + ((sig >> 20) & 0xF)
	model = ((sig >> 4) & 0xF) + (((sig >> 16) & 0xF) << 4)
	return family, model
}

// DecodeFeatures reads the SIMD feature bits from leaf 1 ECX and EDX.
func DecodeFeatures(r Registers) Features {
	return Features{
		MMX:   bit(r[edx], 23),
		SSE:   bit(r[edx], 25),
		SSE2:  bit(r[edx], 26),
		SSE3:  bit(r[ecx], 0),
		SSE41: bit(r[ecx], 19),
		SSE42: bit(r[ecx], 20),
		AVX:   bit(r[ecx], 28),
	}
}

func bit(reg uint32, n uint) bool {
	return (reg>>n)&0x1 == 1
}

// identifyWith fills the CPUID-derived fields of a CPUInfo. Core count and
// frequency come from the OS and are left for the caller.
func identifyWith(query cpuidFunc) CPUInfo {
	var info CPUInfo

	info.Vendor = DecodeVendor(query(leafVendor))

	if query(leafMaxExtended)[eax] >= leafBrand2 {
		info.Brand = DecodeBrand([3]Registers{
			query(leafBrand0),
			query(leafBrand1),
			query(leafBrand2),
		})
	}

	sig := query(leafSignature)
	info.Family, info.Model = DecodeSignature(sig[eax])
	info.Features = DecodeFeatures(sig)

	return info
}
