package fountain

// selectIndices draws count values directly from s and returns them as the
// packet's index set. Duplicates are possible, and when they occur they
// cancel pairwise once the indices are XORed together downstream, so no
// visited-set filtering is performed here: that would require the encoder
// and decoder to agree on an additional piece of shared state beyond the
// seed, and direct-draw and without-replacement selection are not
// interoperable with each other.
func selectIndices(count int, s *stream) []uint32 {
	out := make([]uint32, count)
	for i := range out {
		out[i] = uint32(s.next())
	}
	return out
}

// indicesForSeed reproduces the encoder's exact derivation of a packet's
// degree and index set from its seed and K, the number of source chunks.
// The decoder calls this with the same (seed, k) to recompute the identical
// index set the encoder used. This single function is what keeps the two
// sides bit-for-bit in agreement.
func indicesForSeed(seed uint32, k int) (degree int, indices []uint32) {
	degreeStream := newStream(seed, k)
	degree = degreeStream.next() + 1
	indexSeed := degreeStream.next()

	indexStream := newStream(uint32(indexSeed), k)
	indices = selectIndices(degree, indexStream)
	return degree, indices
}
