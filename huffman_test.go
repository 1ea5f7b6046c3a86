package zopfli

import "testing"

// krafSum computes Σ 2^-len(i) over nonzero lengths; a valid prefix code
// satisfies this sum <= 1, and a complete one-symbol-per-leaf code built by
// buildHuffmanLengths should hit exactly 1 whenever there are >= 2 symbols.
func kraftSum(lengths []int) float64 {
	sum := 0.0
	for _, l := range lengths {
		if l > 0 {
			sum += 1.0 / float64(uint64(1)<<uint(l))
		}
	}
	return sum
}

func TestBuildHuffmanLengthsKraftInequality(t *testing.T) {
	tests := [][]int{
		{5, 1, 1, 2, 3},
		{1, 1, 1, 1, 1, 1, 1, 1},
		{100, 1},
		{10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
	}
	for _, freq := range tests {
		lengths := buildHuffmanLengths(freq, 15)
		sum := kraftSum(lengths)
		if sum > 1.0001 {
			t.Fatalf("freq=%v: kraft sum %f > 1", freq, sum)
		}
		for i, f := range freq {
			if (f > 0) != (lengths[i] > 0) {
				t.Fatalf("freq=%v: lengths[%d]=%d inconsistent with freq %d", freq, i, lengths[i], f)
			}
		}
	}
}

func TestBuildHuffmanLengthsRespectsMaxBits(t *testing.T) {
	freq := make([]int, 300)
	for i := range freq {
		freq[i] = 1
	}
	lengths := buildHuffmanLengths(freq, 9)
	for i, l := range lengths {
		if l > 9 {
			t.Fatalf("lengths[%d] = %d exceeds maxbits=9", i, l)
		}
	}
	if kraftSum(lengths) > 1.0001 {
		t.Fatalf("kraft sum exceeds 1 with maxbits=9")
	}
}

func TestBuildHuffmanLengthsSmallAlphabets(t *testing.T) {
	if l := buildHuffmanLengths([]int{0, 0, 5, 0}, 15); l[2] != 1 {
		t.Fatalf("single nonzero symbol should get length 1, got %v", l)
	}
	l := buildHuffmanLengths([]int{0, 3, 0, 7}, 15)
	if l[1] != 1 || l[3] != 1 {
		t.Fatalf("two-symbol alphabet should get length 1 each, got %v", l)
	}
}

func TestLengthsToSymbolsCanonicalOrder(t *testing.T) {
	// RFC 1951 figure 3.2.2 worked example.
	lengths := []int{2, 1, 3, 3}
	symbols := lengthsToSymbols(lengths, 3)
	want := []uint32{2, 0, 6, 7}
	for i := range want {
		if symbols[i] != want[i] {
			t.Fatalf("symbols[%d] = %d, want %d", i, symbols[i], want[i])
		}
	}
}

func TestLengthsToSymbolsUniqueByLength(t *testing.T) {
	lengths := []int{0, 3, 3, 3, 3, 2, 1}
	symbols := lengthsToSymbols(lengths, 4)
	seen := map[[2]int]bool{}
	for i, l := range lengths {
		if l == 0 {
			continue
		}
		key := [2]int{l, int(symbols[i])}
		if seen[key] {
			t.Fatalf("duplicate code %d at length %d", symbols[i], l)
		}
		seen[key] = true
	}
}

func TestOptimizeForRLEPreservesTrailingZeros(t *testing.T) {
	counts := []int{5, 5, 5, 5, 5, 5, 5, 5, 3, 0, 0, 0}
	optimizeForRLE(counts)
	if counts[9] != 0 || counts[10] != 0 || counts[11] != 0 {
		t.Fatalf("optimizeForRLE touched trailing zeros: %v", counts)
	}
}

func TestOptimizeForRLEShortRunsUntouched(t *testing.T) {
	counts := []int{1, 2, 3, 20, 40}
	before := append([]int(nil), counts...)
	optimizeForRLE(counts)
	for i := range counts {
		if counts[i] != before[i] {
			t.Fatalf("short, non-repetitive histogram changed: %v -> %v", before, counts)
		}
	}
}
