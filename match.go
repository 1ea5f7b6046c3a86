// Copyright 2009 The Go Authors. All rights reserved.
// Copyright (c) 2015 Klaus Post
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zopfli

import (
	"encoding/binary"
	"math/bits"
)

// blockState holds the resources scoped to compressing a single [start,end)
// range of the input: the longest-match cache (when enabled) and the range
// bounds the cache's positions are relative to. It is analogous to the
// teacher's *compressor value, but zopfli's much heavier per-position
// caching makes it worth carving out as its own small type rather than
// folding into the parser.
type blockState struct {
	cache      *matchCache
	blockStart int
	blockEnd   int
}

func newBlockState(start, end int, withCache bool) *blockState {
	s := &blockState{blockStart: start, blockEnd: end}
	if withCache {
		s.cache = newMatchCache(end - start)
	}
	return s
}

// matchLen returns the number of leading bytes a and b have in common,
// comparing eight bytes at a time where possible, generalized to take an
// explicit cap instead of relying on len(a) alone.
func matchLen(a, b []byte, max int) int {
	if len(a) > max {
		a = a[:max]
	}
	if len(b) > len(a) {
		b = b[:len(a)]
	}
	var checked int
	for len(a) >= 8 && len(b) >= 8 {
		if diff := binary.LittleEndian.Uint64(a) ^ binary.LittleEndian.Uint64(b); diff != 0 {
			return checked + bits.TrailingZeros64(diff)>>3
		}
		checked += 8
		a = a[8:]
		b = b[8:]
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return checked + i
		}
	}
	return checked + len(a)
}

// verifyLenDist aborts if the claimed back-reference does not actually
// reproduce the input; this can only fail because of a bug in the matcher
// or its cache, per spec section 7.
func verifyLenDist(data []byte, pos, dist, length int) {
	if pos+length > len(data) {
		panic("zopfli: match runs past end of data")
	}
	for i := 0; i < length; i++ {
		if data[pos-dist+i] != data[pos+i] {
			panic("zopfli: match verification failed, cache or hash chain corrupted")
		}
	}
}

// findLongestMatch finds the longest back-reference at pos, no longer than
// limit and no longer than end-pos. If sublen is non-nil (length 259), it
// is filled in so that sublen[l] holds the distance of the first match of
// length l encountered, for every l in [3,length].
//
// It first asks the block's cache; a hit (full or partial) can shortcut or
// bound the hash-chain walk that follows. The hash-chain walk switches from
// the primary chain to the "same-run" secondary chain once the best match
// found so far is at least as long as the run of identical bytes at pos:
// beyond that point, the primary chain degenerates into a huge number of
// candidates that all start with the same run and the secondary chain finds
// distinct candidates much faster.
func findLongestMatch(s *blockState, h *rollingHash, data []byte, pos, end, limit int, sublen []uint16) (length, distance int) {
	var length16, dist16 uint16
	if s.cache != nil {
		cpos := pos - s.blockStart
		if s.cache.tryLoad(cpos, &limit, sublen, &dist16, &length16) {
			return int(length16), int(dist16)
		}
	}

	if end-pos < minMatch {
		return 0, 0
	}
	if pos+limit > end {
		limit = end - pos
	}

	hpos := uint16(pos & windowMask)
	bestDist := uint16(0)
	bestLength := uint16(1)

	prev := h.prev
	val2, hval2 := h.val2, h.hval2

	pp := h.head[h.val]
	if pp < 0 {
		storeAndReturn(s, pos, limit, sublen, bestDist, bestLength)
		return int(bestLength), int(bestDist)
	}

	p := prev[pp]
	var dist uint16
	if p < hpos {
		dist = hpos - p
	} else {
		dist = uint16(windowSize) - p + hpos
	}

	chain := maxChainHits
	usingSecondary := false

	for int(dist) < windowSize {
		if dist > 0 {
			scanPos := pos
			matchPos := pos - int(dist)

			currentLength := 0
			if pos+int(bestLength) >= end || data[scanPos+int(bestLength)] == data[matchPos+int(bestLength)] {
				same0 := h.same[pos&windowMask]
				if same0 > 2 && data[scanPos] == data[matchPos] {
					same1 := h.same[(pos-int(dist))&windowMask]
					same := same0
					if same1 < same {
						same = same1
					}
					if int(same) > limit {
						same = uint16(limit)
					}
					currentLength = int(same)
				}
				remaining := matchLen(data[scanPos+currentLength:], data[matchPos+currentLength:], limit-currentLength)
				currentLength += remaining
			}

			if currentLength > int(bestLength) {
				if sublen != nil {
					for j := int(bestLength) + 1; j <= currentLength; j++ {
						sublen[j] = dist
					}
				}
				bestDist = dist
				bestLength = uint16(currentLength)
				if currentLength >= limit {
					break
				}
			}
		}

		if !usingSecondary && int(bestLength) >= int(h.same[hpos]) && val2 == hval2[p] {
			prev = h.prev2
			usingSecondary = true
		}

		prevP := p
		p = prev[p]
		if p == prevP {
			break // uninitialized chain link
		}
		var step uint16
		if p < prevP {
			step = prevP - p
		} else {
			step = uint16(windowSize) - p + prevP
		}
		dist += step

		chain--
		if chain == 0 {
			break
		}
	}

	storeAndReturn(s, pos, limit, sublen, bestDist, bestLength)
	return int(bestLength), int(bestDist)
}

func storeAndReturn(s *blockState, pos, limit int, sublen []uint16, dist, length uint16) {
	if s.cache != nil {
		s.cache.store(pos-s.blockStart, limit, sublen, dist, length)
	}
}
