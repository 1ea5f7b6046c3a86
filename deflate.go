package zopfli

// deflate is the top-level entry point: it optionally chops input into
// master chunks no larger than masterBlockSize (each itself optionally
// sub-split by blockSplitBytes), and hands each chunk to deflatePart in
// order, marking only the very last block of the very last chunk final.
func deflate(bw *BitWriter, opts Options, input []byte, isFinal bool) error {
	bounds := []int{0, len(input)}
	if opts.BlockSplitting && len(input) > 0 {
		bounds = bounds[:1]
		for start := 0; start < len(input); start += masterBlockSize {
			end := start + masterBlockSize
			if end > len(input) {
				end = len(input)
			}
			for _, s := range blockSplitBytes(input[start:end], opts.BlockSplittingMax) {
				bounds = append(bounds, start+s)
			}
			bounds = append(bounds, end)
		}
	}

	for i := 0; i < len(bounds)-1; i++ {
		last := i == len(bounds)-2
		if err := deflatePart(bw, opts, input, bounds[i], bounds[i+1], isFinal && last); err != nil {
			return err
		}
	}
	return nil
}

// deflatePart compresses input[start:end) as one or more DEFLATE blocks:
// a greedy parse seeds an LZ77-level block split, and each resulting
// sub-range gets its own optimal parse, block-type choice, and emission.
func deflatePart(bw *BitWriter, opts Options, input []byte, start, end int, isFinal bool) error {
	bs := newBlockState(start, end, true)
	h := newRollingHash(windowSize)

	greedy := newLZ77Store(input)
	greedyParse(bs, h, input, start, end, greedy)

	itemSplits := []int{0, greedy.size()}
	if opts.BlockSplitting {
		splits := blockSplitLZ77(greedy, opts.BlockSplittingMax)
		itemSplits = append(append([]int{0}, splits...), greedy.size())
	}

	byteAt := func(idx int) int {
		switch {
		case idx <= 0:
			return start
		case idx >= greedy.size():
			return end
		default:
			return greedy.pos[idx]
		}
	}

	for i := 0; i < len(itemSplits)-1; i++ {
		lstart, lend := itemSplits[i], itemSplits[i+1]
		byteStart, byteEnd := byteAt(lstart), byteAt(lend)

		sub := lz77Optimal(bs, h, input, byteStart, byteEnd, opts.Iterations)
		bt, _ := bestBlockSize(sub, 0, sub.size())

		last := isFinal && i == len(itemSplits)-2
		bw.writeBlock(sub, 0, sub.size(), byteStart, byteEnd, bt, last)
	}
	return nil
}
