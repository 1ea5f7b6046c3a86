package zopfli

import "testing"

func TestMatchLenBasic(t *testing.T) {
	tests := []struct {
		a, b string
		max  int
		want int
	}{
		{"abcdef", "abcxyz", 6, 3},
		{"abcdef", "abcdef", 6, 6},
		{"", "abc", 3, 0},
		{"abcdefgh", "abcdefzz", 100, 6},
		{"abcdefghi", "abcdefghz", 8, 8},
	}
	for _, tt := range tests {
		got := matchLen([]byte(tt.a), []byte(tt.b), tt.max)
		if got != tt.want {
			t.Errorf("matchLen(%q,%q,%d) = %d, want %d", tt.a, tt.b, tt.max, got, tt.want)
		}
	}
}

func TestFindLongestMatchFindsRepeat(t *testing.T) {
	data := []byte("the quick brown fox, the quick brown fox jumps")
	bs := newBlockState(0, len(data), true)
	h := newRollingHash(windowSize)
	h.reset()
	h.warmup(data, 0, len(data))

	repeatPos := len("the quick brown fox, ")
	for i := 0; i <= repeatPos; i++ {
		h.update(data, i, len(data))
	}

	length, dist := findLongestMatch(bs, h, data, repeatPos, len(data), maxMatch, nil)
	if length < minMatch {
		t.Fatalf("expected a match at the repeated phrase, got length %d", length)
	}
	verifyLenDist(data, repeatPos, dist, length) // panics on mismatch
}

func TestFindLongestMatchNoMatchAtStart(t *testing.T) {
	data := []byte("abcdefgh")
	bs := newBlockState(0, len(data), true)
	h := newRollingHash(windowSize)
	h.reset()
	h.warmup(data, 0, len(data))
	h.update(data, 0, len(data))

	length, _ := findLongestMatch(bs, h, data, 0, len(data), maxMatch, nil)
	if length >= minMatch {
		t.Fatalf("expected no match at the very first position, got length %d", length)
	}
}

func TestFindLongestMatchSublenIsMonotonicDistance(t *testing.T) {
	data := []byte("abcabcabcabcabc123456789")
	bs := newBlockState(0, len(data), true)
	h := newRollingHash(windowSize)
	h.reset()
	h.warmup(data, 0, len(data))
	pos := 12
	for i := 0; i <= pos; i++ {
		h.update(data, i, len(data))
	}

	var sublen [259]uint16
	length, dist := findLongestMatch(bs, h, data, pos, len(data), maxMatch, sublen[:])
	if length < minMatch {
		t.Fatal("expected a match inside the repeating \"abc\" run")
	}
	if sublen[length] != uint16(dist) {
		t.Fatalf("sublen[%d] = %d, want the returned distance %d", length, sublen[length], dist)
	}
	for l := minMatch; l <= length; l++ {
		if sublen[l] == 0 {
			t.Fatalf("sublen[%d] unset even though a match of length %d was found", l, length)
		}
		if l > minMatch && sublen[l] < sublen[l-1] {
			t.Fatalf("sublen[%d] = %d is nearer than sublen[%d] = %d", l, sublen[l], l-1, sublen[l-1])
		}
	}
}

func TestCacheMakesRepeatedQueryConsistent(t *testing.T) {
	data := []byte("mississippi mississippi mississippi")
	bs := newBlockState(0, len(data), true)
	h := newRollingHash(windowSize)
	h.reset()
	h.warmup(data, 0, len(data))
	pos := 13
	for i := 0; i <= pos; i++ {
		h.update(data, i, len(data))
	}

	l1, d1 := findLongestMatch(bs, h, data, pos, len(data), maxMatch, nil)
	l2, d2 := findLongestMatch(bs, h, data, pos, len(data), maxMatch, nil)
	if l1 != l2 || d1 != d2 {
		t.Fatalf("cache changed the answer: first (%d,%d), second (%d,%d)", l1, d1, l2, d2)
	}
}
