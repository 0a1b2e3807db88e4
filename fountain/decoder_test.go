package fountain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newResolvedDecoder builds a decoder over a payloadSize-byte region split
// into chunkSize chunks and marks the given indices as already resolved with
// the given bytes, without going through Feed.
func newResolvedDecoder(t *testing.T, known map[uint32][]byte, k int, chunkSize uint32, payloadSize uint64) *Decoder {
	t.Helper()

	region := make([]byte, payloadSize)
	view, err := NewChunkView(region, chunkSize)
	require.NoError(t, err)

	d, err := NewDecoder(view, payloadSize, chunkSize)
	require.NoError(t, err)

	for idx, data := range known {
		d.resolve(idx, data)
	}
	return d
}

func TestDecoderResolvesFromPreparedPacket(t *testing.T) {
	one := []byte("abcd")
	two := []byte("efgh")
	three := []byte("ijk")

	d := newResolvedDecoder(t, map[uint32][]byte{1: two, 2: three}, 3, 4, 11)

	data := combine([][]byte{one, two, three})
	d.deferred = append(d.deferred, preparedPacket{
		indices: map[uint32]struct{}{0: {}, 1: {}, 2: {}},
		data:    data,
	})

	resolved := d.cascade()
	require.Equal(t, []uint32{0}, resolved)
	require.Equal(t, one, d.dst.Read(0))
	require.Empty(t, d.deferred)
}

func TestDecoderDoesNotResolveUnderAvailablePreparedPacket(t *testing.T) {
	one := []byte("abcd")
	two := []byte("efgh")
	three := []byte("ijk")

	d := newResolvedDecoder(t, map[uint32][]byte{1: two}, 3, 4, 11)

	data := combine([][]byte{one, two, three})
	d.deferred = append(d.deferred, preparedPacket{
		indices: map[uint32]struct{}{0: {}, 1: {}, 2: {}},
		data:    data,
	})

	resolved := d.cascade()
	require.Empty(t, resolved)
	require.Len(t, d.deferred, 1)

	// Chunk 0 must not have been touched.
	require.Equal(t, make([]byte, 4), d.dst.Read(0))
}

func TestFeedRejectsMismatchedHeader(t *testing.T) {
	region := make([]byte, 8)
	view, err := NewChunkView(region, 4)
	require.NoError(t, err)
	d, err := NewDecoder(view, 8, 4)
	require.NoError(t, err)

	_, err = d.Feed(Packet{Seed: 1, PayloadSize: 999, ChunkSize: 4, Data: []byte("abcd")})
	require.ErrorIs(t, err, ErrMalformedPacket)

	_, err = d.Feed(Packet{Seed: 1, PayloadSize: 8, ChunkSize: 4, Data: []byte("abcde")})
	require.ErrorIs(t, err, ErrMalformedPacket)
}

func TestFeedRedundantPacketIsDiscarded(t *testing.T) {
	region := make([]byte, 4)
	view, err := NewChunkView(region, 4)
	require.NoError(t, err)
	d, err := NewDecoder(view, 4, 4)
	require.NoError(t, err)
	d.resolve(0, []byte("abcd"))

	resolved, err := d.Feed(Packet{Seed: 1, PayloadSize: 4, ChunkSize: 4, Data: []byte("abcd")})
	require.NoError(t, err)
	require.Empty(t, resolved)
}
