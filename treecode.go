package zopfli

// clOrder is the order in which code-length code-lengths are transmitted
// in a dynamic block header, per RFC 1951 section 3.2.7.
var clOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// clToken is one entry of the run-length-encoded stream describing a pair
// of Huffman trees: either a literal code length (0-15, extra unused) or
// one of the three repeat codes.
type clToken struct {
	symbol int
	extra  int
}

func clExtraBits(symbol int) int {
	switch symbol {
	case 16:
		return 2
	case 17:
		return 3
	case 18:
		return 7
	default:
		return 0
	}
}

// dynamicTree is everything needed to both size and emit a dynamic block's
// header: the run-length token stream over the concatenated lit/len and
// distance code lengths, the Huffman code lengths (and, once assigned,
// codes) for the 19-symbol code-length alphabet those tokens are drawn
// from, and the trimmed HLIT/HDIST/HCLEN counts.
type dynamicTree struct {
	tokens    []clToken
	clLengths [19]int
	clSymbols [19]uint32
	hlit      int
	hdist     int
	hclen     int
	bits      int
}

// buildCLTokens run-length-encodes the concatenation of ll and d code
// lengths using symbols {0..15,16,17,18}, honoring which of the three
// repeat symbols the caller allows for this trial, matching each of the
// eight enable/disable combinations tried by calculateTreeSize.
func buildCLTokens(llLengths, dLengths []int, use16, use17, use18 bool) ([]clToken, [19]int, int, int) {
	hlit := 29
	for hlit > 0 && llLengths[257+hlit-1] == 0 {
		hlit--
	}
	hdist := 29
	for hdist > 0 && dLengths[1+hdist-1] == 0 {
		hdist--
	}
	hlit2 := hlit + 257
	total := hlit2 + hdist + 1

	at := func(i int) int {
		if i < hlit2 {
			return llLengths[i]
		}
		return dLengths[i-hlit2]
	}

	var counts [19]int
	var tokens []clToken

	push := func(symbol, extra int) {
		tokens = append(tokens, clToken{symbol, extra})
		counts[symbol]++
	}

	for i := 0; i < total; {
		symbol := at(i)
		count := 1
		if use16 || (symbol == 0 && (use17 || use18)) {
			for i+count < total && at(i+count) == symbol {
				count++
			}
		}

		switch {
		case symbol == 0 && count >= 3:
			remaining := count
			if use18 {
				for remaining >= 11 {
					c := remaining
					if c > 138 {
						c = 138
					}
					push(18, c-11)
					remaining -= c
				}
			}
			if use17 {
				for remaining >= 3 {
					c := remaining
					if c > 10 {
						c = 10
					}
					push(17, c-3)
					remaining -= c
				}
			}
			for remaining > 0 {
				push(symbol, 0)
				remaining--
			}
		case use16 && count >= 4:
			push(symbol, 0)
			remaining := count - 1
			for remaining >= 3 {
				c := remaining
				if c > 6 {
					c = 6
				}
				push(16, c-3)
				remaining -= c
			}
			for remaining > 0 {
				push(symbol, 0)
				remaining--
			}
		default:
			for k := 0; k < count; k++ {
				push(symbol, 0)
			}
		}

		i += count
	}

	return tokens, counts, hlit, hdist
}

// treeBits sizes a specific (use16,use17,use18) choice: it builds the
// token stream, derives a length-limited Huffman code over the 19-symbol
// code-length alphabet (max 7 bits, per RFC 1951's 3-bit code-length-code-
// length field), and totals the header plus body bits it would take to
// transmit it.
func treeBits(llLengths, dLengths []int, use16, use17, use18 bool) *dynamicTree {
	tokens, counts, hlit, hdist := buildCLTokens(llLengths, dLengths, use16, use17, use18)

	countsAsInts := make([]int, 19)
	copy(countsAsInts, counts[:])
	clLen := buildHuffmanLengths(countsAsInts, 7)

	hclen := 15
	for hclen > 0 && clLen[clOrder[hclen+4-1]] == 0 {
		hclen--
	}

	bits := 5 + 5 + 4 + (hclen+4)*3
	for _, t := range tokens {
		bits += clLen[t.symbol] + clExtraBits(t.symbol)
	}

	dt := &dynamicTree{tokens: tokens, hlit: hlit, hdist: hdist, hclen: hclen, bits: bits}
	copy(dt.clLengths[:], clLen)
	symbols := lengthsToSymbols(clLen, 7)
	copy(dt.clSymbols[:], symbols)
	return dt
}

// calculateTreeSize picks the cheapest of the eight combinations of
// enabling/disabling each repeat symbol; a real dynamic-tree cost
// calculator, replacing the constant placeholder some reference encoders
// use during development.
func calculateTreeSize(llLengths, dLengths []int) *dynamicTree {
	var best *dynamicTree
	for i := 0; i < 8; i++ {
		dt := treeBits(llLengths, dLengths, i&1 != 0, i&2 != 0, i&4 != 0)
		if best == nil || dt.bits < best.bits {
			best = dt
		}
	}
	return best
}
