package fountain

import "math/rand"

// Encoder emits a lazy, unbounded sequence of Packets from a source
// ChunkView. It is pull-based: Next computes one packet per call, on the
// caller's own goroutine, and holds no buffered backlog of future packets.
type Encoder struct {
	view        ChunkView
	payloadSize uint64
	chunkSize   uint32
	k           int
	seedRng     *rand.Rand
}

// NewEncoder constructs an Encoder over src, which must already hold
// payloadSize bytes (src.Length() chunks of chunkSize). seed is the
// top-level seed from which every packet's own per-packet seed is drawn; two
// Encoders built with the same (src contents, seed, chunkSize) emit
// identical packet streams.
func NewEncoder(src ChunkView, payloadSize uint64, chunkSize uint32, seed uint32) (*Encoder, error) {
	if chunkSize == 0 {
		return nil, ErrInvalidConfig
	}
	k := ChunkCount(int(payloadSize), chunkSize)
	if src.Length() != k {
		return nil, ErrInvalidConfig
	}
	if k > 0 && uint64(k-1)*uint64(chunkSize)+uint64(len(src.Read(k-1))) < payloadSize {
		return nil, ErrInvalidConfig
	}

	return &Encoder{
		view:        src,
		payloadSize: payloadSize,
		chunkSize:   chunkSize,
		k:           k,
		seedRng:     rand.New(rand.NewSource(int64(seed))),
	}, nil
}

// K returns the number of source chunks the encoder is splitting the payload
// into.
func (e *Encoder) K() int {
	return e.k
}

// Next produces the next packet in the stream. ok is false only when K is 0
// (an empty payload), in which case the stream is empty and Next must not be
// called again.
func (e *Encoder) Next() (p Packet, ok bool) {
	if e.k == 0 {
		return Packet{}, false
	}

	seed := e.seedRng.Uint32()
	_, indices := indicesForSeed(seed, e.k)

	chunks := make([][]byte, len(indices))
	for i, idx := range indices {
		chunks[i] = e.view.Read(int(idx))
	}

	return Packet{
		Seed:        seed,
		PayloadSize: e.payloadSize,
		ChunkSize:   e.chunkSize,
		Data:        combine(chunks),
	}, true
}
