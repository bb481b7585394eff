package encoding

import (
	"encoding/binary"
)

const (
	asciiMask8 = 0x8080808080808080
	wideMask16 = 0xFF00FF00FF00FF00

	// scanChunk is how many units are folded before checking for early exit.
	scanChunk = 64
)

// scanLevel selects how many bytes the classifiers fold per step.
type scanLevel uint8

const (
	scanByte scanLevel = iota
	scanWord           // one 64-bit word
	scanWide           // four 64-bit words, ORed before the test
)

// IsASCII reports whether every byte of b is below 0x80.
func IsASCII(b []byte) bool {
	i := 0
	if scan == scanWide {
		for ; i+32 <= len(b); i += 32 {
			w := binary.LittleEndian.Uint64(b[i:]) |
				binary.LittleEndian.Uint64(b[i+8:]) |
				binary.LittleEndian.Uint64(b[i+16:]) |
				binary.LittleEndian.Uint64(b[i+24:])
			if w&asciiMask8 != 0 {
				return false
			}
		}
	}
	if scan >= scanWord {
		for ; i+8 <= len(b); i += 8 {
			if binary.LittleEndian.Uint64(b[i:])&asciiMask8 != 0 {
				return false
			}
		}
	}
	for ; i < len(b); i++ {
		if b[i] >= 0x80 {
			return false
		}
	}
	return true
}

// IsASCII16 reports whether every unit of u is below 0x80.
func IsASCII16(u []uint16) bool {
	for len(u) > 0 {
		n := min(len(u), scanChunk)
		var acc uint16
		for _, c := range u[:n] {
			acc |= c
		}
		if acc >= 0x80 {
			return false
		}
		u = u[n:]
	}
	return true
}

// CanCompressLatin1 reports whether Latin-1 bytes fit the compressed
// encoding. Every byte is a code unit at most 0xFF, so this always holds.
func CanCompressLatin1([]byte) bool {
	return true
}

// CanCompressUTF16 reports whether every unit of u is at most 0xFF.
func CanCompressUTF16(u []uint16) bool {
	i := 0
	if scan == scanWide {
		for ; i+16 <= len(u); i += 16 {
			w := pack16(u[i:]) | pack16(u[i+4:]) | pack16(u[i+8:]) | pack16(u[i+12:])
			if w&wideMask16 != 0 {
				return false
			}
		}
	}
	if scan >= scanWord {
		for ; i+4 <= len(u); i += 4 {
			if pack16(u[i:])&wideMask16 != 0 {
				return false
			}
		}
	}
	for ; i < len(u); i++ {
		if u[i] > 0xFF {
			return false
		}
	}
	return true
}

func pack16(u []uint16) uint64 {
	_ = u[3]
	return uint64(u[0]) | uint64(u[1])<<16 | uint64(u[2])<<32 | uint64(u[3])<<48
}

// CanCompressUTF8 reports whether the decoded form of src fits the
// compressed encoding.
func CanCompressUTF8(src []byte) bool {
	for i := 0; i < len(src); {
		if src[i] < 0x80 {
			i++
			continue
		}
		u0, _, n, size := decodeOne(src[i:])
		if n != 1 || u0 > 0xFF {
			return false
		}
		i += size
	}
	return true
}

// FirstWide returns the index of the first unit of u above 0xFF, or -1.
func FirstWide(u []uint16) int {
	for i, c := range u {
		if c > 0xFF {
			return i
		}
	}
	return -1
}
