package zopfli

import "math/bits"

// lengthSymbolTable maps a match length (3-258) to its DEFLATE length
// symbol (257-285).
var lengthSymbolTable = [259]uint16{
	0, 0, 0, 257, 258, 259, 260, 261, 262, 263, 264,
	265, 265, 266, 266, 267, 267, 268, 268,
	269, 269, 269, 269, 270, 270, 270, 270,
	271, 271, 271, 271, 272, 272, 272, 272,
	273, 273, 273, 273, 273, 273, 273, 273,
	274, 274, 274, 274, 274, 274, 274, 274,
	275, 275, 275, 275, 275, 275, 275, 275,
	276, 276, 276, 276, 276, 276, 276, 276,
	277, 277, 277, 277, 277, 277, 277, 277,
	277, 277, 277, 277, 277, 277, 277, 277,
	278, 278, 278, 278, 278, 278, 278, 278,
	278, 278, 278, 278, 278, 278, 278, 278,
	279, 279, 279, 279, 279, 279, 279, 279,
	279, 279, 279, 279, 279, 279, 279, 279,
	280, 280, 280, 280, 280, 280, 280, 280,
	280, 280, 280, 280, 280, 280, 280, 280,
	281, 281, 281, 281, 281, 281, 281, 281,
	281, 281, 281, 281, 281, 281, 281, 281,
	281, 281, 281, 281, 281, 281, 281, 281,
	281, 281, 281, 281, 281, 281, 281, 281,
	282, 282, 282, 282, 282, 282, 282, 282,
	282, 282, 282, 282, 282, 282, 282, 282,
	282, 282, 282, 282, 282, 282, 282, 282,
	282, 282, 282, 282, 282, 282, 282, 282,
	283, 283, 283, 283, 283, 283, 283, 283,
	283, 283, 283, 283, 283, 283, 283, 283,
	283, 283, 283, 283, 283, 283, 283, 283,
	283, 283, 283, 283, 283, 283, 283, 283,
	284, 284, 284, 284, 284, 284, 284, 284,
	284, 284, 284, 284, 284, 284, 284, 284,
	284, 284, 284, 284, 284, 284, 284, 284,
	284, 284, 284, 284, 284, 284, 284, 285,
}

// lengthExtraBitsTable maps a match length to its number of extra bits.
var lengthExtraBitsTable = [259]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 0,
}

// lengthExtraBitsValueTable maps a match length to the value of its extra bits.
var lengthExtraBitsValueTable = [259]uint16{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 2, 3, 0,
	1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3, 4, 5, 6, 7, 0, 1, 2, 3, 4, 5,
	6, 7, 0, 1, 2, 3, 4, 5, 6, 7, 0, 1, 2, 3, 4, 5, 6, 7, 0, 1, 2, 3, 4, 5, 6,
	7, 8, 9, 10, 11, 12, 13, 14, 15, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
	13, 14, 15, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0, 1, 2,
	3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
	10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28,
	29, 30, 31, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17,
	18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 0, 1, 2, 3, 4, 5, 6,
	7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26,
	27, 28, 29, 30, 31, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 0,
}

// distSymbolExtraBitsTable maps a distance symbol (0-29) to its number of extra bits.
var distSymbolExtraBitsTable = [30]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// lengthSymbolExtraBitsTable maps a length symbol (257-285) to its number of extra bits.
var lengthSymbolExtraBitsTable = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// lengthSymbol returns the DEFLATE length symbol (257-285) for a match
// length in [3,258].
func lengthSymbol(length int) int {
	return int(lengthSymbolTable[length])
}

// lengthExtraBits returns the number of extra bits following the length
// symbol for a match length in [3,258].
func lengthExtraBits(length int) int {
	return int(lengthExtraBitsTable[length])
}

// lengthExtraBitsValue returns the value encoded in the length symbol's
// extra bits for a match length in [3,258].
func lengthExtraBitsValue(length int) int {
	return int(lengthExtraBitsValueTable[length])
}

// lengthSymbolExtraBits returns the number of extra bits for a length
// symbol (257-285) directly, without a length in hand.
func lengthSymbolExtraBits(symbol int) int {
	return int(lengthSymbolExtraBitsTable[symbol-257])
}

// distSymbol returns the DEFLATE distance symbol (0-29) for a distance in
// [1,32768].
//
// For d<5 the symbol is d-1. Otherwise, writing L = floor(log2(d-1)) and R
// for bit L-1 of (d-1), the symbol is 2L+R. This is the same branchless
// derivation the reference implementation uses, expressed with
// bits.LeadingZeros32 in place of the original's __builtin_clz.
func distSymbol(dist int) int {
	if dist < 5 {
		return dist - 1
	}
	l := 31 - bits.LeadingZeros32(uint32(dist-1))
	r := (dist - 1) >> (l - 1) & 1
	return l*2 + r
}

// distExtraBits returns the number of extra bits following the distance
// symbol for a distance in [1,32768].
func distExtraBits(dist int) int {
	if dist < 5 {
		return 0
	}
	return 31 - bits.LeadingZeros32(uint32(dist-1)) - 1
}

// distExtraBitsValue returns the value encoded in the distance symbol's
// extra bits for a distance in [1,32768].
func distExtraBitsValue(dist int) int {
	if dist < 5 {
		return 0
	}
	l := 31 - bits.LeadingZeros32(uint32(dist-1))
	return (dist - (1 + (1 << l))) & ((1 << (l - 1)) - 1)
}

// distSymbolExtraBits returns the number of extra bits for a distance
// symbol (0-29) directly, without a distance in hand.
func distSymbolExtraBits(symbol int) int {
	return int(distSymbolExtraBitsTable[symbol])
}
