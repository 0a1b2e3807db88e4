// Package wire frames fountain.Packet values for transport over any
// io.Reader/io.Writer (a file, in this repository's CLI). This framing is
// the caller's responsibility: the fountain package itself never touches an
// io.Reader or io.Writer.
package wire

import (
	"encoding/binary"
	"io"

	"github.com/moratsam/ltfountain/fountain"
	"github.com/moratsam/ltfountain/util"
)

// headerSize is the fixed size, in bytes, of a packet's frame header:
// seed(4) + payload_size(8) + chunk_size(4) + data_len(4).
const headerSize = 4 + 8 + 4 + 4

// MarshalPacket encodes p as seed|payload_size|chunk_size|len(data)|data, all
// integers big-endian.
func MarshalPacket(p fountain.Packet) []byte {
	out := make([]byte, headerSize+len(p.Data))
	binary.BigEndian.PutUint32(out[0:4], p.Seed)
	binary.BigEndian.PutUint64(out[4:12], p.PayloadSize)
	binary.BigEndian.PutUint32(out[12:16], p.ChunkSize)
	binary.BigEndian.PutUint32(out[16:20], uint32(len(p.Data)))
	copy(out[headerSize:], p.Data)
	return out
}

// UnmarshalPacket reads one framed packet from r. It returns io.EOF
// unmodified when r is exhausted exactly at a frame boundary (an exhausted
// packet stream, not an error); any other short read, or a data length
// exceeding chunk_size, is reported as fountain.ErrMalformedPacket.
func UnmarshalPacket(r io.Reader) (fountain.Packet, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.EOF {
			return fountain.Packet{}, io.EOF
		}
		return fountain.Packet{}, util.WrapErr("read packet header", fountain.ErrMalformedPacket)
	}

	seed := binary.BigEndian.Uint32(header[0:4])
	payloadSize := binary.BigEndian.Uint64(header[4:12])
	chunkSize := binary.BigEndian.Uint32(header[12:16])
	dataLen := binary.BigEndian.Uint32(header[16:20])

	if dataLen > chunkSize {
		return fountain.Packet{}, fountain.ErrMalformedPacket
	}

	data := make([]byte, dataLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return fountain.Packet{}, util.WrapErr("read packet data", fountain.ErrMalformedPacket)
	}

	return fountain.Packet{
		Seed:        seed,
		PayloadSize: payloadSize,
		ChunkSize:   chunkSize,
		Data:        data,
	}, nil
}
