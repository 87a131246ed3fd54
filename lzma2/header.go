package lzma2

// Size limits of a single chunk.
const (
	// maximum length of the compressed data of a packed chunk and of
	// the data of an uncompressed chunk
	maxPackedSize = 1 << 16
	// maximum length of the uncompressed data of a packed chunk
	maxUnpackedSize = 1 << 21
)

// chunkHeader represents the parsed header of a chunk. For uncompressed
// chunks only unpackedSize is set; props is only valid if the control
// byte announces new properties.
type chunkHeader struct {
	ctrl         control
	unpackedSize int
	packedSize   int
	props        Properties
}

func getBE16(p []byte) uint16 {
	return uint16(p[0])<<8 | uint16(p[1])
}

// parseHeader parses the remainder of a chunk header. p must start with
// the byte following the control byte c. It returns the number of bytes
// consumed, which is valid on error as well: truncated size fields
// report ErrInputLimit with nothing consumed, a missing property byte
// reports it with the four size bytes consumed.
func (c control) parseHeader(p []byte) (h chunkHeader, n int, err error) {
	h.ctrl = c
	if !c.packed() {
		if len(p) < 2 {
			return h, 0, ErrInputLimit
		}
		h.unpackedSize = int(getBE16(p)) + 1
		return h, 2, nil
	}
	if len(p) < 4 {
		return h, 0, ErrInputLimit
	}
	h.unpackedSize = c.unpackedSizeHighBits() + int(getBE16(p)) + 1
	h.packedSize = int(getBE16(p[2:])) + 1
	n = 4
	if !c.newProps() {
		return h, n, nil
	}
	if len(p) < 5 {
		return h, n, ErrInputLimit
	}
	n = 5
	if err = h.props.fromByte(p[4]); err != nil {
		return h, n, err
	}
	return h, n, nil
}
