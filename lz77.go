package zopfli

// lz77Store is an append-only sequence of LZ77 items: each item is either a
// literal byte (dist == 0, litlen == the byte value) or a back-reference
// (dist in [1,32768], litlen in [3,258]).
//
// Every numLL-th (and numD-th) item, the running literal/length and
// distance histograms are snapshotted into llCounts/dCounts. A histogram
// over an arbitrary range [a,b) can then be computed in O(numLL+numD) by
// taking, for each boundary, the snapshot at the end of the chunk holding
// it and subtracting the handful of that chunk's items past the boundary,
// instead of rescanning the whole range.
type lz77Store struct {
	litlens []uint16
	dists   []uint16
	data    []byte
	pos     []int

	llSymbol []uint16
	dSymbol  []uint16

	llCounts []int // numLL entries per snapshot
	dCounts  []int // numD entries per snapshot
}

func newLZ77Store(data []byte) *lz77Store {
	return &lz77Store{data: data}
}

func (s *lz77Store) size() int { return len(s.litlens) }

// reset drops all items, keeping the underlying data reference.
func (s *lz77Store) reset() {
	s.litlens = s.litlens[:0]
	s.dists = s.dists[:0]
	s.pos = s.pos[:0]
	s.llSymbol = s.llSymbol[:0]
	s.dSymbol = s.dSymbol[:0]
	s.llCounts = s.llCounts[:0]
	s.dCounts = s.dCounts[:0]
}

// append appends items from other (a lightweight copy-append used when
// assembling a final store out of independently produced parses).
func (s *lz77Store) appendAll(other *lz77Store) {
	for i := 0; i < other.size(); i++ {
		s.storeLitLenDist(other.litlens[i], other.dists[i], other.pos[i])
	}
}

// storeLitLenDist appends one item: length==litlen and dist==0 for a
// literal, or a back-reference of (litlen, dist) otherwise.
func (s *lz77Store) storeLitLenDist(litlen, dist uint16, pos int) {
	origsize := s.size()
	llstart := numLL * (origsize / numLL)
	dstart := numD * (origsize / numD)

	if origsize%numLL == 0 {
		for i := 0; i < numLL; i++ {
			val := 0
			if origsize != 0 {
				val = s.llCounts[origsize-numLL+i]
			}
			s.llCounts = append(s.llCounts, val)
		}
	}
	if origsize%numD == 0 {
		for i := 0; i < numD; i++ {
			val := 0
			if origsize != 0 {
				val = s.dCounts[origsize-numD+i]
			}
			s.dCounts = append(s.dCounts, val)
		}
	}

	s.litlens = append(s.litlens, litlen)
	s.dists = append(s.dists, dist)
	s.pos = append(s.pos, pos)

	if dist == 0 {
		s.llSymbol = append(s.llSymbol, litlen)
		s.dSymbol = append(s.dSymbol, 0)
		s.llCounts[llstart+int(litlen)]++
	} else {
		llSym := uint16(lengthSymbol(int(litlen)))
		dSym := uint16(distSymbol(int(dist)))
		s.llSymbol = append(s.llSymbol, llSym)
		s.dSymbol = append(s.dSymbol, dSym)
		s.llCounts[llstart+int(llSym)]++
		s.dCounts[dstart+int(dSym)]++
	}
}

// histogramAt computes the exact ll/d histogram of items [0,lpos], using
// the cumulative snapshot at or above lpos and subtracting the handful of
// items strictly after lpos within that snapshot's chunk.
func (s *lz77Store) histogramAt(lpos int, llCounts, dCounts []int) {
	llpos := numLL * (lpos / numLL)
	dpos := numD * (lpos / numD)

	copy(llCounts, s.llCounts[llpos:llpos+numLL])
	end := llpos + numLL
	if s.size() < end {
		end = s.size()
	}
	for i := lpos + 1; i < end; i++ {
		if llCounts[s.llSymbol[i]] > 0 {
			llCounts[s.llSymbol[i]]--
		}
	}

	copy(dCounts, s.dCounts[dpos:dpos+numD])
	dend := dpos + numD
	if s.size() < dend {
		dend = s.size()
	}
	for i := lpos + 1; i < dend; i++ {
		if s.dists[i] != 0 && dCounts[s.dSymbol[i]] > 0 {
			dCounts[s.dSymbol[i]]--
		}
	}
}

// histogram computes the ll/d histogram over items [lstart,lend). It does
// not add the end-of-block symbol.
func (s *lz77Store) histogram(lstart, lend int, llCounts, dCounts []int) {
	if lstart+numLL*3 > lend {
		for i := range llCounts {
			llCounts[i] = 0
		}
		for i := range dCounts {
			dCounts[i] = 0
		}
		for i := lstart; i < lend; i++ {
			llCounts[s.llSymbol[i]]++
			if s.dists[i] != 0 {
				dCounts[s.dSymbol[i]]++
			}
		}
		return
	}

	s.histogramAt(lend-1, llCounts, dCounts)
	if lstart > 0 {
		llCounts2 := make([]int, numLL)
		dCounts2 := make([]int, numD)
		s.histogramAt(lstart-1, llCounts2, dCounts2)
		for i := range llCounts {
			llCounts[i] -= llCounts2[i]
		}
		for i := range dCounts {
			dCounts[i] -= dCounts2[i]
		}
	}
}

// byteRange returns the number of raw input bytes spanned by items
// [lstart,lend).
func (s *lz77Store) byteRange(lstart, lend int) int {
	if lstart == lend {
		return 0
	}
	l := lend - 1
	span := 1
	if s.dists[l] != 0 {
		span = int(s.litlens[l])
	}
	return s.pos[l] + span - s.pos[lstart]
}
