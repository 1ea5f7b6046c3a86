// Package zopfli implements a DEFLATE (RFC 1951) encoder that trades
// encoding time for output size.
//
// Unlike a conventional single-pass DEFLATE encoder, zopfli searches for an
// LZ77 parse and a Huffman code that jointly minimize the encoded length: it
// runs a shortest-path parse over the input using a cost model derived from
// the current Huffman statistics, refines those statistics from the
// resulting parse, and repeats for a configurable number of iterations. The
// output is a byte-for-byte standard DEFLATE stream; any conformant DEFLATE
// decoder can read it back.
//
// This package only implements the encoder. Decompression, streaming with
// bounded memory, random access and multithreading are out of scope: the
// encoder always sees the whole input at once.
package zopfli
