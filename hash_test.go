package zopfli

import "testing"

func feedHash(h *rollingHash, data []byte) {
	h.reset()
	if len(data) == 0 {
		return
	}
	h.warmup(data, 0, len(data))
	for i := 0; i < len(data); i++ {
		h.update(data, i, len(data))
	}
}

func TestRollingHashSamePositionsHashEqual(t *testing.T) {
	data := []byte("abcabcabcabcabc")
	h := newRollingHash(windowSize)
	feedHash(h, data)

	if h.hval[3] != h.hval[0] {
		t.Fatalf("positions 0 and 3 both start \"abc\" but hashed differently: %d vs %d", h.hval[0], h.hval[3])
	}
}

func TestRollingHashSameRunLength(t *testing.T) {
	data := []byte("aaaaaaaaaa")
	h := newRollingHash(windowSize)
	feedHash(h, data)

	if h.same[0] != uint16(len(data)-1) {
		t.Fatalf("same[0] = %d, want %d", h.same[0], len(data)-1)
	}
	if h.same[len(data)-1] != 0 {
		t.Fatalf("same[%d] = %d, want 0 (last byte has no following run)", len(data)-1, h.same[len(data)-1])
	}
}

func TestRollingHashChainLinksWithinWindow(t *testing.T) {
	data := []byte("xyzxyzxyz")
	h := newRollingHash(windowSize)
	feedHash(h, data)

	pos := 6
	p := h.prev[pos]
	if int(p) == pos {
		// No earlier position with the same hash is acceptable only if
		// none exists; here position 0 and 3 share pos 6's hash.
		t.Fatalf("prev[%d] points to itself, expected a link to an earlier matching position", pos)
	}
}

func TestRollingHashResetIsIdempotent(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	h := newRollingHash(windowSize)
	feedHash(h, data)
	first := append([]int32(nil), h.hval[:len(data)]...)

	feedHash(h, data)
	second := h.hval[:len(data)]
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("hval[%d] changed across reset+refeed: %d -> %d", i, first[i], second[i])
		}
	}
}
