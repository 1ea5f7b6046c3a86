package zopfli

// lengthScore ranks a candidate match the way a gzip-style lazy matcher
// does: prefer longer matches, but a match with dist > 1024 pays for its
// extra distance bits by scoring as if it were four bytes shorter.
func lengthScore(length, dist uint16) int {
	if dist <= 1024 {
		return int(length) - 1
	}
	return int(length) - 5
}

// greedyParse runs a single lazy-matching pass over input[start:end] and
// appends the resulting literals and back-references to store. It is used
// both to seed the first iteration of the optimal parser with real
// statistics, and (via blockSplitBytes in split.go) to estimate costs
// without running the expensive optimal parser at all.
func greedyParse(s *blockState, h *rollingHash, input []byte, start, end int, store *lz77Store) {
	if start == end {
		return
	}

	windowStart := 0
	if start > windowSize {
		windowStart = start - windowSize
	}

	var dummySublen [259]uint16

	var prevLength, prevDist uint16
	matchAvailable := false

	h.reset()
	h.warmup(input, windowStart, end)
	for i := windowStart; i < start; i++ {
		h.update(input, i, end)
	}

	for i := start; i < end; {
		h.update(input, i, end)

		length, dist := findLongestMatch(s, h, input, i, end, maxMatch, dummySublen[:])
		leng, d := uint16(length), uint16(dist)

		score := lengthScore(leng, d)
		prevScore := lengthScore(prevLength, prevDist)

		if matchAvailable {
			matchAvailable = false
			if score > prevScore+1 {
				store.storeLitLenDist(uint16(input[i-1]), 0, i-1)
				if score >= minMatch-1 && int(leng) < maxMatch {
					matchAvailable = true
					prevLength, prevDist = leng, d
					i++
					continue
				}
			} else {
				leng, d = prevLength, prevDist
				verifyLenDist(input, i-1, int(d), int(leng))
				store.storeLitLenDist(leng, d, i-1)
				for j := 2; j < int(leng); j++ {
					i++
					h.update(input, i, end)
				}
				i++
				continue
			}
		} else if score >= minMatch-1 && int(leng) < maxMatch {
			matchAvailable = true
			prevLength, prevDist = leng, d
			i++
			continue
		}

		if score >= minMatch-1 {
			verifyLenDist(input, i, int(d), int(leng))
			store.storeLitLenDist(leng, d, i)
		} else {
			leng = 1
			store.storeLitLenDist(uint16(input[i]), 0, i)
		}
		for j := 1; j < int(leng); j++ {
			i++
			h.update(input, i, end)
		}
		i++
	}
}
