package zopfli

const (
	// minMatch is the shortest back-reference DEFLATE can encode.
	minMatch = 3
	// maxMatch is the longest back-reference DEFLATE can encode.
	maxMatch = 258

	// windowSize is the DEFLATE sliding window size, and must be a power of two.
	windowSize = 32768
	windowMask = windowSize - 1

	// numLL is the number of literal/length symbols (0-285, plus 2 unused).
	numLL = 288
	// numD is the number of distance symbols (0-29, plus 2 unused).
	numD = 32

	// maxChainHits bounds how many hash-chain links findLongestMatch will
	// walk before giving up on finding a better match. The reference
	// implementation hardcodes this; we keep it as a tunable with the same
	// default (spec's Open Question on "max chain hits").
	maxChainHits = 8192

	// masterBlockSize bounds how much input is fed to a single deflatePart
	// call when block splitting is enabled, keeping iteration cost roughly
	// linear in input size for very large inputs.
	masterBlockSize = 1000000

	// largeFloat stands in for "infinitely expensive" when comparing costs.
	largeFloat = 1e30
)

// Options controls how hard the encoder searches for a small encoding.
// It is a small value type, safe to copy.
type Options struct {
	// Iterations bounds how many times the optimal-parse loop reruns to
	// refine its Huffman cost model. Higher values search harder for a
	// smaller encoding at the cost of time. Good values are 10-15 for
	// small inputs, fewer for inputs of several megabytes or more.
	Iterations int

	// BlockSplitting enables splitting the input into multiple DEFLATE
	// blocks at boundaries chosen to minimize total encoded size.
	BlockSplitting bool

	// BlockSplittingMax caps the number of blocks the splitter may produce,
	// so at most BlockSplittingMax-1 split points. Zero means unlimited.
	BlockSplittingMax int
}

// DefaultOptions matches the reference implementation's defaults.
var DefaultOptions = Options{
	Iterations:        15,
	BlockSplitting:    true,
	BlockSplittingMax: 15,
}

// Compress compresses input into a raw DEFLATE stream (no gzip or zlib
// framing) using opts, and returns the result.
func Compress(opts Options, input []byte) ([]byte, error) {
	if opts.Iterations <= 0 {
		return nil, errInvalidIterations(opts.Iterations)
	}
	if opts.BlockSplittingMax < 0 {
		return nil, errInvalidBlockSplittingMax(opts.BlockSplittingMax)
	}
	bw := new(BitWriter)
	if err := deflate(bw, opts, input, true); err != nil {
		return nil, err
	}
	return bw.out, nil
}

// CompressInto appends the DEFLATE encoding of input to bw, using opts.
// isFinal marks whether this is the last chunk of a larger stream; the
// final emitted block's BFINAL bit is set only when isFinal is true. This
// lets a caller (for example a future gzip/zlib wrapper) build up a single
// bitstream from multiple calls.
func CompressInto(bw *BitWriter, opts Options, input []byte, isFinal bool) error {
	if opts.Iterations <= 0 {
		return errInvalidIterations(opts.Iterations)
	}
	if opts.BlockSplittingMax < 0 {
		return errInvalidBlockSplittingMax(opts.BlockSplittingMax)
	}
	return deflate(bw, opts, input, isFinal)
}
