package fountain

import "golang.org/x/xerrors"

// ErrInvalidConfig is returned at encoder/decoder construction time when the
// caller's parameters can never produce a valid codec: a zero chunk size, or
// a byte region that cannot hold the declared payload.
var ErrInvalidConfig = xerrors.New("fountain: invalid configuration")

// ErrMalformedPacket is returned by Decoder.Feed when an incoming packet's
// header disagrees with the decoder it was fed to.
var ErrMalformedPacket = xerrors.New("fountain: malformed packet")
