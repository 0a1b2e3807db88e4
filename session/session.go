// Package session is the file-backed ambient shell around the fountain
// core: it opens a source file, drives an Encoder, and writes framed
// packets out to shard files; and conversely opens shard files, drives a
// Decoder, and writes the reconstructed payload back out.
package session

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/moratsam/ltfountain/fountain"
	fio "github.com/moratsam/ltfountain/io"
	"github.com/moratsam/ltfountain/util"
	"github.com/moratsam/ltfountain/wire"
)

// DecodeResult reports how a Decode run ended, so the caller can tell a
// clean finish from an exhausted-stream under-delivery.
type DecodeResult struct {
	Consumed int
	Resolved int
	K        int
}

// Complete reports whether every source chunk was resolved.
func (r DecodeResult) Complete() bool {
	return r.Resolved == r.K
}

// Session holds no state between calls; it exists only to group the
// file-backed Encode/Decode entry points. A Session is not safe for
// concurrent Encode or Decode calls.
type Session struct{}

// NewSession constructs a Session.
func NewSession() *Session {
	return &Session{}
}

// Encode reads srcPath fully into memory, builds an Encoder over it, and
// writes packetCount framed packets round-robin across shardCount files
// named outPrefix_<i>.pkt. packetCount is a convenience knob for a finite
// run: the underlying stream is unbounded, and a caller wanting more
// redundancy can re-run Encode with a larger packetCount.
func (s *Session) Encode(srcPath string, seed uint32, chunkSize uint32, shardCount, packetCount int, outPrefix string) error {
	if shardCount <= 0 {
		return util.WrapErr("encode", fountain.ErrInvalidConfig)
	}

	f, err := fio.OpenFile(srcPath)
	if err != nil {
		return util.WrapErr("open source file", err)
	}
	defer f.Close()

	payload, err := fio.ReadAll(f)
	if err != nil {
		return util.WrapErr("read source file", err)
	}

	src, err := fountain.NewChunkView(payload, chunkSize)
	if err != nil {
		return util.WrapErr("build source chunk view", err)
	}
	enc, err := fountain.NewEncoder(src, uint64(len(payload)), chunkSize, seed)
	if err != nil {
		return util.WrapErr("build encoder", err)
	}

	shards := make([]*os.File, shardCount)
	for i := range shards {
		shards[i], err = fio.CreateFile(outPrefix + "_" + strconv.Itoa(i) + ".pkt")
		if err != nil {
			return util.WrapErr("create shard file", err)
		}
		defer shards[i].Close()
	}

	now := time.Now()
	for i := 0; i < packetCount; i++ {
		p, ok := enc.Next()
		if !ok { // K == 0: nothing to encode.
			break
		}
		shard := shards[i%shardCount]
		if err := fio.WriteTo(shard, wire.MarshalPacket(p)); err != nil {
			return util.WrapErr("write packet", err)
		}
	}

	fmt.Println("encode time:", time.Since(now))
	return nil
}

// Decode opens shardPaths, round-robins packet reads across them in the same
// interleaved order Encode wrote them, and feeds each into a fresh Decoder
// over a payloadSize-byte destination. It stops when the decoder has
// resolved every chunk or every shard is exhausted, then writes whatever was
// reconstructed (complete or partial) to outPath.
func (s *Session) Decode(shardPaths []string, payloadSize uint64, chunkSize uint32, outPath string) (DecodeResult, error) {
	shards := make([]*os.File, len(shardPaths))
	for i, path := range shardPaths {
		f, err := fio.OpenFile(path)
		if err != nil {
			return DecodeResult{}, util.WrapErr("open shard file", err)
		}
		defer f.Close()
		shards[i] = f
	}

	dst := make([]byte, payloadSize)
	dstView, err := fountain.NewChunkView(dst, chunkSize)
	if err != nil {
		return DecodeResult{}, util.WrapErr("build destination chunk view", err)
	}
	dec, err := fountain.NewDecoder(dstView, payloadSize, chunkSize)
	if err != nil {
		return DecodeResult{}, util.WrapErr("build decoder", err)
	}

	now := time.Now()
	consumed := 0
	exhausted := make([]bool, len(shards))

	for !dec.Done() && !allTrue(exhausted) {
		for i, shard := range shards {
			if exhausted[i] {
				continue
			}
			// A single shard has no resync point once a frame fails to
			// parse (we don't know how many bytes to skip to find the next
			// header), so any read/parse failure retires that shard for
			// the rest of this Decode call rather than aborting the whole
			// reconstruction.
			p, err := wire.UnmarshalPacket(shard)
			if err != nil {
				exhausted[i] = true
				continue
			}

			if _, err := dec.Feed(p); err != nil {
				return DecodeResult{}, util.WrapErr("feed packet", err)
			}
			consumed++

			if dec.Done() {
				break
			}
		}
	}

	out, err := fio.CreateFile(outPath)
	if err != nil {
		return DecodeResult{}, util.WrapErr("create output file", err)
	}
	defer out.Close()
	if err := fio.WriteTo(out, dst); err != nil {
		return DecodeResult{}, util.WrapErr("write output file", err)
	}

	fmt.Println("decode time:", time.Since(now))
	return DecodeResult{Consumed: consumed, Resolved: dec.Resolved(), K: dec.K()}, nil
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}
