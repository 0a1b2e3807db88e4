package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moratsam/ltfountain/fountain"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	p := fountain.Packet{
		Seed:        12345,
		PayloadSize: 11,
		ChunkSize:   4,
		Data:        []byte("ijk"), // short final chunk
	}

	buf := bytes.NewReader(MarshalPacket(p))
	got, err := UnmarshalPacket(buf)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestUnmarshalBackToBackFrames(t *testing.T) {
	p1 := fountain.Packet{Seed: 1, PayloadSize: 8, ChunkSize: 4, Data: []byte("abcd")}
	p2 := fountain.Packet{Seed: 2, PayloadSize: 8, ChunkSize: 4, Data: []byte("efgh")}

	var buf bytes.Buffer
	buf.Write(MarshalPacket(p1))
	buf.Write(MarshalPacket(p2))

	got1, err := UnmarshalPacket(&buf)
	require.NoError(t, err)
	require.Equal(t, p1, got1)

	got2, err := UnmarshalPacket(&buf)
	require.NoError(t, err)
	require.Equal(t, p2, got2)

	_, err = UnmarshalPacket(&buf)
	require.ErrorIs(t, err, io.EOF)
}

func TestUnmarshalRejectsOversizedDataLength(t *testing.T) {
	p := fountain.Packet{Seed: 1, PayloadSize: 8, ChunkSize: 4, Data: []byte("abcd")}
	frame := MarshalPacket(p)
	// Corrupt the declared data length to exceed chunk_size.
	frame[19] = 0xFF

	_, err := UnmarshalPacket(bytes.NewReader(frame[:headerSize]))
	require.ErrorIs(t, err, fountain.ErrMalformedPacket)
}
