package fountain

// Packet is one LT-encoded block: a seed plus the XOR of the degree-many
// source chunks it selects. seed, together with K, is all a decoder needs to
// recompute exactly which chunks were folded into data.
type Packet struct {
	Seed        uint32
	PayloadSize uint64
	ChunkSize   uint32
	Data        []byte
}
