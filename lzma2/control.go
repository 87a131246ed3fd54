package lzma2

// control is the first byte of every chunk and selects the chunk kind
// together with its reset behavior. For packed chunks the low five bits
// carry the high bits of the uncompressed size and must be masked out
// before comparing against the packed selectors.
type control byte

// Constants for control bytes.
const (
	// end of stream
	eosCtrl control = 0x00
	// uncompressed data, with a dictionary reset
	copyResetDictCtrl control = 0x01
	// uncompressed data
	copyCtrl control = 0x02
	// mask for the selector bits of a packed chunk
	packedMask control = 0xe0
	// packed chunk; no reset
	packedCtrl control = 0x80
	// packed chunk; reset state
	packedResetStateCtrl control = 0xa0
	// packed chunk; reset state, new properties
	packedNewPropsCtrl control = 0xc0
	// packed chunk; reset state, new properties, reset dictionary
	packedResetDictCtrl control = 0xe0
)

func (c control) eos() bool {
	return c == eosCtrl
}

func (c control) packed() bool {
	return c&packedCtrl == packedCtrl
}

// reserved reports whether c is one of the unassigned control bytes
// 0x03 to 0x7f.
func (c control) reserved() bool {
	return !c.packed() && c > copyCtrl
}

func (c control) resetDict() bool {
	if !c.packed() {
		return c == copyResetDictCtrl
	}
	return c&packedMask == packedResetDictCtrl
}

func (c control) resetState() bool {
	if !c.packed() {
		return false
	}
	return c&packedMask >= packedResetStateCtrl
}

func (c control) newProps() bool {
	if !c.packed() {
		return false
	}
	return c&packedMask >= packedNewPropsCtrl
}

// unpackedSizeHighBits returns the contribution of the control byte to
// the uncompressed size of a packed chunk.
func (c control) unpackedSizeHighBits() int {
	if !c.packed() {
		return 0
	}
	return int(c&^packedMask) << 16
}
