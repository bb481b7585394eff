package encoding

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ReplacementChar is substituted for undecodable input.
const ReplacementChar = 0xFFFD

// decodeOne decodes the sequence at the start of src. It returns one or two
// code units (n), and the number of bytes consumed (size). src must be
// non-empty.
func decodeOne(src []byte) (u0, u1 uint16, n, size int) {
	b0 := src[0]
	switch {
	case b0 < 0x80:
		return uint16(b0), 0, 1, 1

	case b0 == 0xC0:
		if len(src) > 1 && src[1] == 0x80 {
			return 0, 0, 1, 2
		}

	case b0 >= 0xC2 && b0 <= 0xDF:
		if len(src) > 1 && isCont(src[1]) {
			return uint16(b0&0x1F)<<6 | uint16(src[1]&0x3F), 0, 1, 2
		}

	case b0 >= 0xE0 && b0 <= 0xEF:
		if len(src) > 2 && isCont(src[1]) && isCont(src[2]) {
			u := uint16(b0&0x0F)<<12 | uint16(src[1]&0x3F)<<6 | uint16(src[2]&0x3F)
			if u >= 0x800 {
				return u, 0, 1, 3
			}
		}

	case b0 >= 0xF0 && b0 <= 0xF4:
		if len(src) > 3 && isCont(src[1]) && isCont(src[2]) && isCont(src[3]) {
			r := rune(b0&0x07)<<18 | rune(src[1]&0x3F)<<12 | rune(src[2]&0x3F)<<6 | rune(src[3]&0x3F)
			if r >= 0x10000 && r <= utf8.MaxRune {
				hi, lo := utf16.EncodeRune(r)
				return uint16(hi), uint16(lo), 2, 4
			}
		}
	}
	return ReplacementChar, 0, 1, 1
}

func isCont(b byte) bool {
	return b&0xC0 == 0x80
}

// UTF16Length returns the number of code units src decodes to.
func UTF16Length(src []byte) int {
	count := 0
	for i := 0; i < len(src); {
		if src[i] < 0x80 {
			count++
			i++
			continue
		}
		_, _, n, size := decodeOne(src[i:])
		count += n
		i += size
	}
	return count
}

// DecodeUTF16 decodes src into dst and returns the number of units written.
// dst must have room for len(src) units.
func DecodeUTF16(dst []uint16, src []byte) int {
	w := 0
	for i := 0; i < len(src); {
		if src[i] < 0x80 {
			dst[w] = uint16(src[i])
			w++
			i++
			continue
		}
		u0, u1, n, size := decodeOne(src[i:])
		dst[w] = u0
		if n == 2 {
			dst[w+1] = u1
		}
		w += n
		i += size
	}
	return w
}

// DecodeLatin1 decodes src into dst one byte per unit and returns the number
// of units written. src must satisfy CanCompressUTF8.
func DecodeLatin1(dst []byte, src []byte) int {
	w := 0
	for i := 0; i < len(src); {
		if src[i] < 0x80 {
			dst[w] = src[i]
			w++
			i++
			continue
		}
		u0, _, _, size := decodeOne(src[i:])
		dst[w] = byte(u0)
		w++
		i += size
	}
	return w
}

// AppendUTF8 appends the UTF-8 form of the UTF-16 units u to dst. Lone
// surrogates become U+FFFD.
func AppendUTF8(dst []byte, u []uint16) []byte {
	for i := 0; i < len(u); i++ {
		c := u[i]
		if c < 0x80 {
			dst = append(dst, byte(c))
			continue
		}
		r := rune(c)
		if utf16.IsSurrogate(r) {
			if i+1 < len(u) {
				if pair := utf16.DecodeRune(r, rune(u[i+1])); pair != utf8.RuneError {
					dst = utf8.AppendRune(dst, pair)
					i++
					continue
				}
			}
			r = utf8.RuneError
		}
		dst = utf8.AppendRune(dst, r)
	}
	return dst
}

// AppendLatin1UTF8 appends the UTF-8 form of the Latin-1 bytes b to dst.
func AppendLatin1UTF8(dst []byte, b []byte) []byte {
	if IsASCII(b) {
		return append(dst, b...)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		for _, c := range b {
			dst = utf8.AppendRune(dst, rune(c))
		}
		return dst
	}
	return append(dst, out...)
}

// EncodeUTF16 returns the UTF-16 units of the Go string s.
func EncodeUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// Widen zero-extends the Latin-1 bytes src into dst.
func Widen(dst []uint16, src []byte) {
	dst = dst[:len(src)]
	for i, c := range src {
		dst[i] = uint16(c)
	}
}

// Narrow truncates the units src into dst. Every unit must be at most 0xFF.
func Narrow(dst []byte, src []uint16) {
	dst = dst[:len(src)]
	for i, c := range src {
		dst[i] = byte(c)
	}
}
