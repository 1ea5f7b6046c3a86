package zopfli

// blockType identifies which of the three DEFLATE block encodings a
// sub-block will use.
type blockType int

const (
	blockStored blockType = iota
	blockFixed
	blockDynamic
)

// fixedTree returns RFC 1951's fixed Huffman code lengths.
func fixedTree() (ll, d []int) {
	ll = make([]int, numLL)
	d = make([]int, numD)
	for i := 0; i < 144; i++ {
		ll[i] = 8
	}
	for i := 144; i < 256; i++ {
		ll[i] = 9
	}
	for i := 256; i < 280; i++ {
		ll[i] = 7
	}
	for i := 280; i < numLL; i++ {
		ll[i] = 8
	}
	for i := range d {
		d[i] = 5
	}
	return ll, d
}

// patchDistanceCodesForBuggyDecoders forces at least two non-zero distance
// code lengths, at the cost of one spurious bit, so decoders that reject
// HDIST==0 (or a single distance code) still accept the stream.
func patchDistanceCodesForBuggyDecoders(d []int) {
	numDistCodes := 0
	for i := 0; i < 30; i++ {
		if d[i] > 0 {
			numDistCodes++
		}
		if numDistCodes >= 2 {
			return
		}
	}
	switch numDistCodes {
	case 0:
		d[0], d[1] = 1, 1
	case 1:
		if d[0] > 0 {
			d[1] = 1
		} else {
			d[0] = 1
		}
	}
}

// blockSymbolSize computes the size, in bits, of the LZ77 body of
// [lstart,lend) — not counting the block header or (for dynamic blocks)
// the tree — using the given code lengths.
func blockSymbolSize(llLengths, dLengths []int, store *lz77Store, lstart, lend int) int {
	if lstart+numLL*3 > lend {
		result := 0
		for i := lstart; i < lend; i++ {
			if store.dists[i] == 0 {
				result += llLengths[store.litlens[i]]
			} else {
				llSym := lengthSymbol(int(store.litlens[i]))
				dSym := distSymbol(int(store.dists[i]))
				result += llLengths[llSym] + dLengths[dSym]
				result += lengthSymbolExtraBits(llSym) + distSymbolExtraBits(dSym)
			}
		}
		return result + llLengths[256]
	}

	llCounts := make([]int, numLL)
	dCounts := make([]int, numD)
	store.histogram(lstart, lend, llCounts, dCounts)
	return blockSymbolSizeFromCounts(llCounts, dCounts, llLengths, dLengths)
}

func blockSymbolSizeFromCounts(llCounts, dCounts, llLengths, dLengths []int) int {
	result := 0
	for i := 0; i < 256; i++ {
		result += llLengths[i] * llCounts[i]
	}
	for i := 257; i < 286; i++ {
		result += llLengths[i] * llCounts[i]
		result += lengthSymbolExtraBits(i) * llCounts[i]
	}
	for i := 0; i < 30; i++ {
		result += dLengths[i] * dCounts[i]
		result += distSymbolExtraBits(i) * dCounts[i]
	}
	return result + llLengths[256]
}

// dynamicLengths derives dynamic-block Huffman code lengths for
// [lstart,lend), then checks whether RLE-quantizing the histogram first
// yields a smaller total (tree plus body); it keeps whichever is smaller.
func dynamicLengths(store *lz77Store, lstart, lend int) (llLengths, dLengths []int, bits float64) {
	llCounts := make([]int, numLL)
	dCounts := make([]int, numD)
	store.histogram(lstart, lend, llCounts, dCounts)
	llCounts[256] = 1

	llLengths = buildHuffmanLengths(llCounts, 15)
	dLengths = buildHuffmanLengths(dCounts, 15)
	patchDistanceCodesForBuggyDecoders(dLengths)

	treesize := calculateTreeSize(llLengths, dLengths)
	datasize := blockSymbolSizeFromCounts(llCounts, dCounts, llLengths, dLengths)

	llCounts2 := append([]int(nil), llCounts...)
	dCounts2 := append([]int(nil), dCounts...)
	optimizeForRLE(llCounts2)
	optimizeForRLE(dCounts2)
	llLengths2 := buildHuffmanLengths(llCounts2, 15)
	dLengths2 := buildHuffmanLengths(dCounts2, 15)
	patchDistanceCodesForBuggyDecoders(dLengths2)

	treesize2 := calculateTreeSize(llLengths2, dLengths2)
	datasize2 := blockSymbolSizeFromCounts(llCounts, dCounts, llLengths2, dLengths2)

	if treesize2.bits+datasize2 < treesize.bits+datasize {
		return llLengths2, dLengths2, float64(treesize2.bits + datasize2)
	}
	return llLengths, dLengths, float64(treesize.bits + datasize)
}

// estimateBlockSize computes the encoded size in bits of [lstart,lend)
// using the given block type, including its 3-bit BFINAL/BTYPE header.
func estimateBlockSize(store *lz77Store, lstart, lend int, bt blockType) float64 {
	switch bt {
	case blockStored:
		length := store.byteRange(lstart, lend)
		blocks := length / 65535
		if length%65535 != 0 {
			blocks++
		}
		return float64(blocks*5*8 + length*8)
	case blockFixed:
		ll, d := fixedTree()
		return 3 + float64(blockSymbolSize(ll, d, store, lstart, lend))
	default:
		_, _, bits := dynamicLengths(store, lstart, lend)
		return 3 + bits
	}
}

// estimateDynamicBlockSize is estimateBlockSize specialized to the
// dynamic block type, the one the optimal-parse iteration loop cares
// about when comparing candidate parses.
func estimateDynamicBlockSize(store *lz77Store, lstart, lend int) float64 {
	return estimateBlockSize(store, lstart, lend, blockDynamic)
}

// bestBlockSize returns the encoded size and type of whichever of
// stored/fixed/dynamic is cheapest for [lstart,lend). Fixed-tree costing
// is skipped when the store holds more than 1000 items, since it is
// expensive to compute and never wins once dynamic trees have enough data
// to specialize.
func bestBlockSize(store *lz77Store, lstart, lend int) (blockType, float64) {
	uncompressed := estimateBlockSize(store, lstart, lend, blockStored)

	fixed := largeFloat
	if store.size() <= 1000 {
		fixed = estimateBlockSize(store, lstart, lend, blockFixed)
	}

	dynamic := estimateBlockSize(store, lstart, lend, blockDynamic)

	switch {
	case uncompressed < fixed && uncompressed < dynamic:
		return blockStored, uncompressed
	case fixed < dynamic:
		return blockFixed, fixed
	default:
		return blockDynamic, dynamic
	}
}
