package zopfli

// cacheRuns is the number of (length, distance) runs kept per position in
// the longest-match cache's compressed sublen table.
const cacheRuns = 8

// matchCache remembers, for each position in a block, the best match
// length/distance found there and (when computed) a compressed sublen
// table mapping every achievable length to the distance that first reached
// it. find*Match consults it before doing any hash-chain work, so a block
// searched once with an unbounded limit never repeats that work when asked
// again with a smaller limit.
type matchCache struct {
	length []uint16
	dist   []uint16
	sublen []uint8 // cacheRuns*3 bytes per position: (lenDelta, distLo, distHi)
}

func newMatchCache(blockSize int) *matchCache {
	c := &matchCache{
		length: make([]uint16, blockSize),
		dist:   make([]uint16, blockSize),
		sublen: make([]uint8, cacheRuns*blockSize*3),
	}
	for i := range c.length {
		c.length[i] = 1
	}
	return c
}

// maxCachedSublen returns the longest length for which the sublen table at
// pos has a cached distance, or 0 if none is cached.
func (c *matchCache) maxCachedSublen(pos int) int {
	base := cacheRuns * pos * 3
	if c.sublen[base+1] == 0 && c.sublen[base+2] == 0 {
		return 0
	}
	return int(c.sublen[base+(cacheRuns-1)*3]) + 3
}

// storeSublen compresses sublen[3:length+1] into the cache at pos as runs
// of constant distance.
func (c *matchCache) storeSublen(sublen []uint16, pos, length int) {
	if length < 3 {
		return
	}
	base := cacheRuns * pos * 3
	j := 0
	bestlength := 0
	for i := 3; i <= length; i++ {
		if i == length || sublen[i] != sublen[i+1] {
			c.sublen[base+j*3] = uint8(i - 3)
			c.sublen[base+j*3+1] = uint8(sublen[i] % 256)
			c.sublen[base+j*3+2] = uint8((sublen[i] >> 8) % 256)
			bestlength = i
			j++
			if j >= cacheRuns {
				break
			}
		}
	}
	if j < cacheRuns {
		c.sublen[base+(cacheRuns-1)*3] = uint8(bestlength - 3)
	}
}

// loadSublen decompresses the cached sublen table at pos into sublen[0:length+1].
func (c *matchCache) loadSublen(pos, length int, sublen []uint16) {
	if length < 3 {
		return
	}
	maxlength := c.maxCachedSublen(pos)
	base := cacheRuns * pos * 3
	prevlength := 0
	for j := 0; j < cacheRuns; j++ {
		l := int(c.sublen[base+j*3]) + 3
		dist := uint16(c.sublen[base+j*3+1]) + 256*uint16(c.sublen[base+j*3+2])
		for i := prevlength; i <= l; i++ {
			sublen[i] = dist
		}
		if l == maxlength {
			break
		}
		prevlength = l + 1
	}
}

// store records a longest-match result at pos (relative to the block
// start), if the cache slot there is still empty and the search that
// produced it was unbounded (limit == maxMatch).
func (c *matchCache) store(pos, limit int, sublen []uint16, distance, length uint16) {
	// length>0 and dist==0 is otherwise invalid, and marks "not yet filled".
	available := c.length[pos] == 0 || c.dist[pos] != 0
	if limit != maxMatch || available {
		return
	}
	if length < minMatch {
		c.dist[pos] = 0
		c.length[pos] = 0
	} else {
		c.dist[pos] = distance
		c.length[pos] = length
	}
	if sublen != nil {
		c.storeSublen(sublen, pos, int(length))
	}
}

// tryLoad attempts to answer a longest-match query from the cache. It
// returns ok=true if it could answer outright, filling distance, length
// and (if sublen is non-nil) the sublen table. Otherwise it may still
// tighten *limit using what it does know, so the caller's own search can
// stop earlier.
func (c *matchCache) tryLoad(pos int, limit *int, sublen []uint16, distance, length *uint16) bool {
	available := c.length[pos] == 0 || c.dist[pos] != 0
	if !available {
		return false
	}
	maxSub := c.maxCachedSublen(pos)
	limitOK := *limit == maxMatch ||
		int(c.length[pos]) <= *limit ||
		(sublen != nil && maxSub >= *limit)
	if !limitOK {
		return false
	}
	if sublen == nil || int(c.length[pos]) <= maxSub {
		*length = c.length[pos]
		if int(*length) > *limit {
			*length = uint16(*limit)
		}
		if sublen != nil {
			c.loadSublen(pos, int(*length), sublen)
			*distance = sublen[*length]
		} else {
			*distance = c.dist[pos]
		}
		return true
	}
	// Can't answer the sublen query, but at least we know where to stop.
	*limit = int(c.length[pos])
	return false
}
