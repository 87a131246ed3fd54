package lzma2

// Range coder constants.
const (
	rcShiftBits = 8
	rcTopBits   = 24
	rcTopValue  = 1 << rcTopBits
	rcInitBytes = 5
)

// rcInit initializes the range coder for a packed chunk. The first of
// the five init bytes is discarded, the following four are read
// big-endian into the code register. The caller must have verified that
// rcInitBytes bytes are available.
func (f *frame) rcInit() {
	f.nrange = 0xffffffff
	p := f.in[f.incount+1:]
	f.code = uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 |
		uint32(p[3])
	f.incount += rcInitBytes
}

// normalize refills the range register if it has fallen below the top
// value. It must be called before every probabilistic decision. If a
// byte is needed past the end of the chunk's compressed data it returns
// errRangeLimit.
func (f *frame) normalize() error {
	if f.nrange >= rcTopValue {
		return nil
	}
	f.nrange <<= rcShiftBits
	if f.incount >= f.rcLimit {
		return errRangeLimit
	}
	f.code = f.code<<rcShiftBits | uint32(f.in[f.incount])
	f.incount++
	return nil
}

// decodeBit decodes a single bit under the probability p and adapts p
// toward the observed outcome. The range register must be normalized.
func (f *frame) decodeBit(p *prob) uint32 {
	bound := p.bound(f.nrange)
	var b uint32
	if f.code < bound {
		f.nrange = bound
	} else {
		f.code -= bound
		f.nrange -= bound
		b = 1
	}
	p.adapt(b)
	return b
}

// treeDecode decodes a fixed-size value of the given bit width,
// most-significant bit first, using the probability tree ps.
func (f *frame) treeDecode(ps []prob, bits uint) (v uint32, err error) {
	m := uint32(1)
	limit := uint32(1) << bits
	for m < limit {
		if err = f.normalize(); err != nil {
			return 0, err
		}
		m = m<<1 | f.decodeBit(&ps[m])
	}
	return m - limit, nil
}

// treeReverseDecode decodes a fixed-size value least-significant bit
// first using the probability tree ps.
func (f *frame) treeReverseDecode(ps []prob, bits uint) (v uint32, err error) {
	m := uint32(1)
	for j := uint(0); j < bits; j++ {
		if err = f.normalize(); err != nil {
			return 0, err
		}
		b := f.decodeBit(&ps[m])
		m = m<<1 | b
		v |= b << j
	}
	return v, nil
}

// directDecode decodes n bits with fixed probability 0.5,
// most-significant bit first.
func (f *frame) directDecode(n uint) (v uint32, err error) {
	for ; n > 0; n-- {
		if err = f.normalize(); err != nil {
			return 0, err
		}
		f.nrange >>= 1
		f.code -= f.nrange
		t := 0 - (f.code >> 31)
		f.code += f.nrange & t
		v = v<<1 | (t+1)&1
	}
	return v, nil
}
