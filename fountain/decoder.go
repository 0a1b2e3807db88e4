package fountain

// preparedPacket is a packet whose index set has been computed but which
// still has two or more unknown members; it sits in the decoder's deferred
// pool until a cascade reduces it to a single unknown index.
type preparedPacket struct {
	indices map[uint32]struct{}
	data    []byte
}

// Decoder runs the belief-propagation (peeling) algorithm: it resolves
// degree-1 packets immediately, defers the rest, and re-sweeps the deferred
// pool every time a new chunk is resolved.
type Decoder struct {
	dst         ChunkView
	payloadSize uint64
	chunkSize   uint32
	k           int
	resolved    map[uint32]struct{}
	deferred    []preparedPacket
}

// NewDecoder constructs a Decoder writing into dst, a ChunkView over a
// region sized to hold payloadSize bytes split into chunkSize chunks.
func NewDecoder(dst ChunkView, payloadSize uint64, chunkSize uint32) (*Decoder, error) {
	if chunkSize == 0 {
		return nil, ErrInvalidConfig
	}
	k := ChunkCount(int(payloadSize), chunkSize)
	if dst.Length() != k {
		return nil, ErrInvalidConfig
	}
	if k > 0 && uint64(k-1)*uint64(chunkSize)+uint64(len(dst.Read(k-1))) < payloadSize {
		return nil, ErrInvalidConfig
	}

	return &Decoder{
		dst:         dst,
		payloadSize: payloadSize,
		chunkSize:   chunkSize,
		k:           k,
		resolved:    make(map[uint32]struct{}, k),
	}, nil
}

// K returns the number of source chunks the decoder is reconstructing.
func (d *Decoder) K() int {
	return d.k
}

// Resolved returns the number of chunks resolved so far.
func (d *Decoder) Resolved() int {
	return len(d.resolved)
}

// Done reports whether every chunk has been resolved.
func (d *Decoder) Done() bool {
	return len(d.resolved) == d.k
}

// Feed consumes one packet. It returns the indices resolved as a direct
// result of this packet (including any cascaded resolutions it triggered),
// or a non-nil error if the packet disagrees with this decoder's
// configuration. A packet carrying no new information is not an error: it is
// silently discarded (len(resolvedNow) == 0, err == nil).
func (d *Decoder) Feed(p Packet) (resolvedNow []uint32, err error) {
	if p.ChunkSize != d.chunkSize || p.PayloadSize != d.payloadSize || uint32(len(p.Data)) > p.ChunkSize {
		return nil, ErrMalformedPacket
	}
	if d.k == 0 {
		return nil, nil
	}

	_, raw := indicesForSeed(p.Seed, d.k)
	set := reduceIndices(raw)

	var known, unknown []uint32
	for idx := range set {
		if _, ok := d.resolved[idx]; ok {
			known = append(known, idx)
		} else {
			unknown = append(unknown, idx)
		}
	}

	switch len(unknown) {
	case 0:
		return nil, nil
	case 1:
		i := unknown[0]
		d.resolve(i, foldOut(p.Data, known, d.dst))
		resolvedNow = append(resolvedNow, i)
		resolvedNow = append(resolvedNow, d.cascade()...)
		return resolvedNow, nil
	default:
		d.deferred = append(d.deferred, preparedPacket{
			indices: set,
			data:    p.Data,
		})
		return nil, nil
	}
}

// resolve records i as resolved and writes its true bytes into dst.
func (d *Decoder) resolve(i uint32, value []byte) {
	d.dst.Write(int(i), value)
	d.resolved[i] = struct{}{}
}

// cascade repeatedly sweeps the deferred pool, resolving any packet whose
// unknown-index count has dropped to one and dropping any packet whose
// indices are all resolved, until a full pass makes no progress.
func (d *Decoder) cascade() []uint32 {
	var resolvedNow []uint32

	for {
		progress := false
		remaining := d.deferred[:0]

		for _, q := range d.deferred {
			remainingIdx := setMinus(q.indices, d.resolved)
			if len(remainingIdx) == 0 {
				// Every index is already resolved: q carries nothing new.
				continue
			}
			if len(remainingIdx) != 1 {
				remaining = append(remaining, q)
				continue
			}

			i := remainingIdx[0]
			known := knownOf(q.indices, i)
			d.resolve(i, foldOut(q.data, known, d.dst))
			resolvedNow = append(resolvedNow, i)
			progress = true
		}

		d.deferred = remaining
		if !progress {
			break
		}
	}

	return resolvedNow
}

// foldOut XORs dst's current bytes at each index in known out of data,
// leaving exactly the unresolved index's contribution.
func foldOut(data []byte, known []uint32, dst ChunkView) []byte {
	x := data
	for _, j := range known {
		x = xor(x, dst.Read(int(j)))
	}
	return x
}

// reduceIndices collapses a raw sequence of draws (which may repeat an index)
// down to the set of indices with odd multiplicity: a chunk drawn an even
// number of times cancels itself out under XOR and contributes nothing to
// the packet's data, so it carries no information and drops out of the
// index set entirely. This is what makes the packet's actual information
// content match its on-the-wire data bytes.
func reduceIndices(raw []uint32) map[uint32]struct{} {
	counts := make(map[uint32]int, len(raw))
	for _, i := range raw {
		counts[i]++
	}

	set := make(map[uint32]struct{}, len(counts))
	for i, c := range counts {
		if c%2 == 1 {
			set[i] = struct{}{}
		}
	}
	return set
}

// setMinus returns the members of indices not present in resolved, as a
// slice (order is irrelevant, only membership and count matter).
func setMinus(indices map[uint32]struct{}, resolved map[uint32]struct{}) []uint32 {
	out := make([]uint32, 0, len(indices))
	for i := range indices {
		if _, ok := resolved[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}

// knownOf returns every member of indices except excluded.
func knownOf(indices map[uint32]struct{}, excluded uint32) []uint32 {
	out := make([]uint32, 0, len(indices))
	for i := range indices {
		if i != excluded {
			out = append(out, i)
		}
	}
	return out
}
