package fountain

// ChunkView is an indexed view over a contiguous byte region, split into
// fixed-size chunks. The last chunk may be shorter than the others. A
// ChunkView does not own the underlying region; it only references it, and
// is not safe for concurrent readers and writers.
type ChunkView interface {
	// Length returns the number of chunks the view is split into.
	Length() int

	// ChunkSize returns the configured chunk size C.
	ChunkSize() uint32

	// Read returns a freshly allocated copy of chunk i.
	Read(i int) []byte

	// Write copies up to len(data) bytes into chunk i's region. Bytes beyond
	// the view's capacity are silently dropped, matching the last chunk's
	// short length.
	Write(i int, data []byte)
}

// byteChunkView is the only ChunkView implementation: a plain in-memory byte
// slice sliced into chunks of chunkSize, the last one truncated to whatever
// remains.
type byteChunkView struct {
	region    []byte
	chunkSize uint32
}

// NewChunkView wraps region as a ChunkView of the given chunk size. The
// returned view references region directly; it is never copied.
func NewChunkView(region []byte, chunkSize uint32) (ChunkView, error) {
	if chunkSize == 0 {
		return nil, ErrInvalidConfig
	}
	return &byteChunkView{region: region, chunkSize: chunkSize}, nil
}

// ChunkCount returns ceil(capacity / chunkSize), the value the spec calls K.
func ChunkCount(capacity int, chunkSize uint32) int {
	if chunkSize == 0 {
		return 0
	}
	c := uint64(capacity)
	cs := uint64(chunkSize)
	return int((c + cs - 1) / cs)
}

func (v *byteChunkView) Length() int {
	return ChunkCount(len(v.region), v.chunkSize)
}

func (v *byteChunkView) ChunkSize() uint32 {
	return v.chunkSize
}

func (v *byteChunkView) Read(i int) []byte {
	start, end := v.bounds(i)
	out := make([]byte, end-start)
	copy(out, v.region[start:end])
	return out
}

func (v *byteChunkView) Write(i int, data []byte) {
	start, end := v.bounds(i)
	n := end - start
	if n > len(data) {
		n = len(data)
	}
	copy(v.region[start:start+n], data[:n])
}

func (v *byteChunkView) bounds(i int) (start, end int) {
	start = i * int(v.chunkSize)
	end = start + int(v.chunkSize)
	if end > len(v.region) {
		end = len(v.region)
	}
	return start, end
}
