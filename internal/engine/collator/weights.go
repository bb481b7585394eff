package collator

// primaryWeights ranks each Latin-1 code unit at the primary (base letter)
// level of the root collation. Zero marks units the fast path cannot judge:
// controls that collation ignores, and everything above 0x7F.
//
// Letters share a rank across case. 'l' and 'L' start contractions in the
// root table, but only with non-ASCII followers, which the fast path never
// scans past.
var primaryWeights = [256]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3, 4, 5, 0, 0, // 0x00
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x10
	6, 12, 16, 28, 38, 29, 27, 15, 17, 18, 24, 32, 9, 8, 14, 25, // 0x20  !"#$%&'()*+,-./
	39, 40, 41, 42, 43, 44, 45, 46, 47, 48, 11, 10, 33, 34, 35, 13, // 0x30 0-9 :;<=>?
	23, 49, 50, 51, 52, 53, 54, 55, 56, 57, 58, 59, 60, 61, 62, 63, // 0x40 @A-O
	64, 65, 66, 67, 68, 69, 70, 71, 72, 73, 74, 19, 26, 20, 31, 7, // 0x50 P-Z [\]^_
	30, 49, 50, 51, 52, 53, 54, 55, 56, 57, 58, 59, 60, 61, 62, 63, // 0x60 `a-o
	64, 65, 66, 67, 68, 69, 70, 71, 72, 73, 74, 21, 36, 22, 37, 0, // 0x70 p-z {|}~ DEL
}

// tertiaryWeights breaks ties between units of equal primary weight:
// lowercase sorts before uppercase.
var tertiaryWeights = [256]uint8{
	'A': 1, 'B': 1, 'C': 1, 'D': 1, 'E': 1, 'F': 1, 'G': 1, 'H': 1, 'I': 1,
	'J': 1, 'K': 1, 'L': 1, 'M': 1, 'N': 1, 'O': 1, 'P': 1, 'Q': 1, 'R': 1,
	'S': 1, 'T': 1, 'U': 1, 'V': 1, 'W': 1, 'X': 1, 'Y': 1, 'Z': 1,
}

// primaryWeight returns the primary weight of unit c, or 0 if the fast path
// cannot judge it.
func primaryWeight(c uint16) uint8 {
	if c > 0xFF {
		return 0
	}
	return primaryWeights[c]
}

// isFastComparable reports whether c has a fast-path weight.
func isFastComparable(c uint16) bool {
	return primaryWeight(c) != 0
}
