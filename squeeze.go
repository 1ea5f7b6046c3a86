package zopfli

import "math"

// symbolStats holds literal/length and distance symbol counts for a parse,
// plus the continuous (non-integral) per-symbol bit costs derived from
// them. The bit costs are an entropy estimate, not real Huffman code
// lengths: rebuilding an exact length-limited Huffman tree at every
// candidate position in the DP forward pass would be far too slow, and the
// entropy of the observed distribution is a good enough proxy to drive the
// search towards a parse whose real Huffman tree will be cheap.
type symbolStats struct {
	litlens [numLL]int
	dists   [numD]int
	llBits  [numLL]float64
	dBits   [numD]float64
}

// getStatistics counts how often each lit/len and distance symbol occurs
// in store, including one synthetic count for the end-of-block symbol.
func getStatistics(store *lz77Store) *symbolStats {
	st := &symbolStats{}
	for i := 0; i < store.size(); i++ {
		if store.dists[i] == 0 {
			st.litlens[store.litlens[i]]++
		} else {
			st.litlens[lengthSymbol(int(store.litlens[i]))]++
			st.dists[distSymbol(int(store.dists[i]))]++
		}
	}
	st.litlens[256] = 1
	return st
}

// calculateStatistics derives llBits/dBits from the current counts via
// Shannon entropy: -log2(p) for each symbol, relative to the alphabet's
// total count. A symbol with zero count costs log2(total), the same as a
// symbol seen once, so the DP never treats symbols the current parse did
// not use as free.
func (st *symbolStats) calculateStatistics() {
	calculateEntropy(st.litlens[:], st.llBits[:])
	calculateEntropy(st.dists[:], st.dBits[:])
}

func calculateEntropy(count []int, bits []float64) {
	sum := 0
	for _, c := range count {
		sum += c
	}
	log2sum := math.Log2(float64(sum))
	for i, c := range count {
		if c == 0 {
			bits[i] = log2sum
			continue
		}
		b := log2sum - math.Log2(float64(c))
		if b < 0 {
			b = 0
		}
		bits[i] = b
	}
}

func cloneStats(st *symbolStats) *symbolStats {
	c := *st
	return &c
}

// addWeighedStatFreqs blends two statistics' raw counts by weight, then
// re-derives bit costs from the blend. Used to slow convergence down after
// a randomization step, so the search doesn't immediately forget the
// history it was perturbed away from.
func addWeighedStatFreqs(a *symbolStats, wa float64, b *symbolStats, wb float64) *symbolStats {
	r := &symbolStats{}
	for i := range r.litlens {
		r.litlens[i] = int(float64(a.litlens[i])*wa + float64(b.litlens[i])*wb)
	}
	for i := range r.dists {
		r.dists[i] = int(float64(a.dists[i])*wa + float64(b.dists[i])*wb)
	}
	r.litlens[256] = 1
	r.calculateStatistics()
	return r
}

// randomizeStatFreqs perturbs counts with a deterministic LCG so repeated
// iterations with no improvement can escape a local minimum instead of
// converging to the same parse every time.
func randomizeStatFreqs(r *ranState, st *symbolStats) {
	randomizeFreqs(r, st.litlens[:])
	randomizeFreqs(r, st.dists[:])
	st.litlens[256] = 1
}

func randomizeFreqs(r *ranState, freqs []int) {
	n := len(freqs)
	for i := range freqs {
		if (r.next()>>4)%3 == 0 {
			freqs[i] = freqs[r.next()%uint32(n)]
		}
	}
}

// ranState is Zopfli's multiply-with-carry generator: small, deterministic,
// and reproducible across platforms, which matters because the encoder's
// output must be byte-identical for identical input and options.
type ranState struct {
	mw, mz uint32
}

func newRanState() *ranState { return &ranState{mw: 1, mz: 2} }

func (r *ranState) next() uint32 {
	r.mz = 36969*(r.mz&65535) + (r.mz >> 16)
	r.mw = 18000*(r.mw&65535) + (r.mw >> 16)
	return (r.mz << 16) + r.mw
}

// costModel gives the DP forward pass a bit-cost estimate for emitting a
// literal or a back-reference, without needing to know the real Huffman
// tree that will eventually be built for the finished parse.
type costModel interface {
	literalCost(b byte) float64
	matchCost(length, dist int) float64
}

type statsCostModel struct{ st *symbolStats }

func (m statsCostModel) literalCost(b byte) float64 { return m.st.llBits[b] }

func (m statsCostModel) matchCost(length, dist int) float64 {
	if dist == 0 {
		// dist 0 denotes a literal whose byte value is length, the same
		// encoding the LZ77 store uses, so cost it from the literal table.
		return m.st.llBits[length]
	}
	lsym := lengthSymbol(length)
	dsym := distSymbol(dist)
	return m.st.llBits[lsym] + float64(lengthExtraBits(length)) +
		m.st.dBits[dsym] + float64(distExtraBits(dist))
}

// fixedCostModel estimates with RFC 1951's fixed Huffman tables, for the
// one-shot fixed-tree DP variant.
type fixedCostModel struct{}

func (fixedCostModel) literalCost(b byte) float64 {
	if b <= 143 {
		return 8
	}
	return 9
}

func (fixedCostModel) matchCost(length, dist int) float64 {
	if dist == 0 {
		if length <= 143 {
			return 8
		}
		return 9
	}
	lsym := lengthSymbol(length)
	lbits := 7.0
	if lsym >= 280 {
		lbits = 8
	}
	return lbits + float64(lengthExtraBits(length)) + 5 + float64(distExtraBits(dist))
}

// costModelMinCost is a lower bound on the cost of emitting anything at
// all. It tries every literal, every length, and the smallest distance of
// each distance symbol (which has that symbol's cost), so it covers every
// distinct cost; it is used to prune candidates in the DP's inner loop
// that could not possibly improve on the current best path.
func costModelMinCost(m costModel) float64 {
	min := largeFloat
	for b := 0; b < 256; b++ {
		if c := m.literalCost(byte(b)); c < min {
			min = c
		}
	}
	dists := [...]int{1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
		257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577}
	for l := minMatch; l <= maxMatch; l++ {
		for _, d := range dists {
			if c := m.matchCost(l, d); c < min {
				min = c
			}
		}
	}
	return min
}

// lz77OptimalRun runs one forward/backward shortest-path pass over
// input[start:end] under cost model m, producing a new parse.
func lz77OptimalRun(bs *blockState, h *rollingHash, input []byte, start, end int, m costModel) *lz77Store {
	blocksize := end - start
	if blocksize == 0 {
		return newLZ77Store(input)
	}

	costs := make([]float64, blocksize+1)
	lengthArray := make([]int, blocksize+1)
	for i := 1; i <= blocksize; i++ {
		costs[i] = largeFloat
	}
	costs[0] = 0

	mincost := costModelMinCost(m)

	windowStart := 0
	if start > windowSize {
		windowStart = start - windowSize
	}
	h.reset()
	h.warmup(input, windowStart, end)
	for i := windowStart; i < start; i++ {
		h.update(input, i, end)
	}

	var sublen [259]uint16
	for i := start; i < end; i++ {
		j := i - start
		h.update(input, i, end)

		length, _ := findLongestMatch(bs, h, input, i, end, maxMatch, sublen[:])

		if i+1 <= end {
			newCost := costs[j] + m.literalCost(input[i])
			if newCost < costs[j+1] {
				costs[j+1] = newCost
				lengthArray[j+1] = 1
			}
		}

		kend := length
		for k := minMatch; k <= kend; k++ {
			if j+k > blocksize {
				break
			}
			if costs[j]+mincost > costs[j+k] {
				continue
			}
			newCost := costs[j] + m.matchCost(k, int(sublen[k]))
			if newCost < costs[j+k] {
				costs[j+k] = newCost
				lengthArray[j+k] = k
			}
		}
	}

	path := traceBackwards(blocksize, lengthArray)
	store := newLZ77Store(input)
	followPath(bs, h, input, start, end, path, store)
	return store
}

// traceBackwards reconstructs the sequence of step lengths (in forward
// order) that achieves costs[blocksize], by walking length_array backwards
// from the end of the block to its start.
func traceBackwards(blocksize int, lengthArray []int) []int {
	if blocksize == 0 {
		return nil
	}
	var path []int
	index := blocksize
	for {
		l := lengthArray[index]
		path = append(path, l)
		index -= l
		if index == 0 {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// followPath re-walks the block applying the lengths chosen by the
// backward trace, re-deriving each step's distance with a fresh
// longest-match query (the forward pass only recorded sublen distances
// transiently, so this is cheaper than threading them through the path).
func followPath(bs *blockState, h *rollingHash, input []byte, start, end int, path []int, store *lz77Store) {
	if start == end {
		return
	}

	windowStart := 0
	if start > windowSize {
		windowStart = start - windowSize
	}
	h.reset()
	h.warmup(input, windowStart, end)
	for i := windowStart; i < start; i++ {
		h.update(input, i, end)
	}

	pos := start
	for _, length := range path {
		h.update(input, pos, end)

		if length >= minMatch {
			matchedLen, dist := findLongestMatch(bs, h, input, pos, end, length, nil)
			_ = matchedLen
			verifyLenDist(input, pos, dist, length)
			store.storeLitLenDist(uint16(length), uint16(dist), pos)
		} else {
			length = 1
			store.storeLitLenDist(uint16(input[pos]), 0, pos)
		}

		for j := 1; j < length; j++ {
			h.update(input, pos+j, end)
		}
		pos += length
	}
}

// lz77Optimal is the outer iteration loop: seed statistics from a greedy
// parse, then repeatedly re-run the DP against a cost model refined from
// the previous parse's own statistics, keeping the best parse seen by
// actual encoded size and perturbing the statistics with ranState once
// the cost stops improving.
func lz77Optimal(bs *blockState, h *rollingHash, input []byte, start, end, iterations int) *lz77Store {
	stats := getStatistics(greedySeed(bs, h, input, start, end))
	stats.calculateStatistics()

	var beststats *symbolStats
	best := newLZ77Store(input)
	bestcost := largeFloat
	lastcost := 0.0
	lastRandomStep := -1
	ran := newRanState()

	for i := 0; i < iterations; i++ {
		current := lz77OptimalRun(bs, h, input, start, end, statsCostModel{stats})
		cost := estimateDynamicBlockSize(current, 0, current.size())

		if cost < bestcost {
			best = current
			beststats = cloneStats(stats)
			bestcost = cost
		}

		laststats := cloneStats(stats)
		stats = getStatistics(current)
		if lastRandomStep != -1 {
			stats = addWeighedStatFreqs(stats, 1.0, laststats, 0.5)
		} else {
			stats.calculateStatistics()
		}

		if i > 5 && cost == lastcost {
			stats = cloneStats(beststats)
			randomizeStatFreqs(ran, stats)
			stats.calculateStatistics()
			lastRandomStep = i
		}
		lastcost = cost
	}
	return best
}

func greedySeed(bs *blockState, h *rollingHash, input []byte, start, end int) *lz77Store {
	store := newLZ77Store(input)
	greedyParse(bs, h, input, start, end, store)
	return store
}

// lz77OptimalFixed runs a single DP pass against the fixed Huffman cost
// model, for callers that want the fixed-tree block type's parse without
// paying for the full iteration loop.
func lz77OptimalFixed(bs *blockState, h *rollingHash, input []byte, start, end int) *lz77Store {
	return lz77OptimalRun(bs, h, input, start, end, fixedCostModel{})
}
