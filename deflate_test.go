package zopfli

import (
	"bytes"
	"compress/flate"
	"io"
	"math/rand"
	"testing"
)

// roundTrip compresses input with opts and inflates the result with the
// standard library's DEFLATE reader, the standard cross-check for any
// from-scratch DEFLATE encoder.
func roundTrip(t *testing.T, opts Options, input []byte) []byte {
	t.Helper()
	out, err := Compress(opts, input)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	r := flate.NewReader(bytes.NewReader(out))
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("inflating our own output: %v", err)
	}
	if !bytes.Equal(got, input) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(input))
	}
	return out
}

func TestCompressEmptyInput(t *testing.T) {
	roundTrip(t, DefaultOptions, nil)
}

func TestCompressSingleByte(t *testing.T) {
	roundTrip(t, DefaultOptions, []byte("x"))
}

func TestCompressHighlyRepetitive(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 10000)
	out := roundTrip(t, DefaultOptions, data)
	if len(out) >= len(data)/4 {
		t.Fatalf("expected strong compression on a repetitive input: %d bytes in, %d bytes out", len(data), len(out))
	}
}

func TestCompressRandomIncompressible(t *testing.T) {
	data := make([]byte, 20000)
	rand.New(rand.NewSource(2)).Read(data)
	roundTrip(t, DefaultOptions, data)
}

func TestCompressTextWithoutBlockSplitting(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 500)
	opts := DefaultOptions
	opts.BlockSplitting = false
	roundTrip(t, opts, data)
}

func TestCompressLargeInputSpansMasterBlocks(t *testing.T) {
	data := bytes.Repeat([]byte("large master block coverage test data. "), 40000) // > masterBlockSize
	opts := Options{Iterations: 2, BlockSplitting: true, BlockSplittingMax: 5}
	roundTrip(t, opts, data)
}

func TestCompressIntoConcatenatesChunksWithSingleFinalBlock(t *testing.T) {
	var bw BitWriter
	part1 := []byte("first chunk of the stream, ")
	part2 := []byte("second and final chunk of the stream.")

	if err := CompressInto(&bw, DefaultOptions, part1, false); err != nil {
		t.Fatalf("CompressInto part1: %v", err)
	}
	if err := CompressInto(&bw, DefaultOptions, part2, true); err != nil {
		t.Fatalf("CompressInto part2: %v", err)
	}

	r := flate.NewReader(bytes.NewReader(bw.Bytes()))
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("inflating concatenated stream: %v", err)
	}
	want := append(append([]byte(nil), part1...), part2...)
	if !bytes.Equal(got, want) {
		t.Fatalf("concatenated round trip mismatch: got %q, want %q", got, want)
	}
}

func TestCompressRejectsInvalidOptions(t *testing.T) {
	if _, err := Compress(Options{Iterations: 0}, []byte("x")); err == nil {
		t.Fatal("expected an error for Iterations=0")
	}
	if _, err := Compress(Options{Iterations: 1, BlockSplittingMax: -1}, []byte("x")); err == nil {
		t.Fatal("expected an error for negative BlockSplittingMax")
	}
}

func FuzzCompressRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("a"))
	f.Add([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	f.Add([]byte("the quick brown fox jumps over the lazy dog"))
	f.Add(bytes.Repeat([]byte{0, 1, 2, 3}, 500))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1<<16 {
			t.Skip("keep fuzz iterations fast")
		}
		out, err := Compress(Options{Iterations: 2, BlockSplitting: true, BlockSplittingMax: 15}, data)
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}
		r := flate.NewReader(bytes.NewReader(out))
		defer r.Close()
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("inflate failed: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch for %d-byte input", len(data))
		}
	})
}
