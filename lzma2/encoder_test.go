package lzma2

import (
	"bytes"
	"math/bits"
)

// This file implements a minimal LZMA2 encoder for the tests. It drives
// the same probability model as the decoder, so round trips exercise
// every decode path against genuinely compressed data. Only the tests
// need it; the package itself ships no encoder.

// rangeEncoder is the counterpart of the range decoder. The cache and
// cacheSize fields implement the usual carry handling; the first byte
// written is the zero byte the decoder discards during init.
type rangeEncoder struct {
	buf       *bytes.Buffer
	nrange    uint32
	low       uint64
	cacheSize int64
	cache     byte
}

func newRangeEncoder(buf *bytes.Buffer) *rangeEncoder {
	return &rangeEncoder{buf: buf, nrange: 0xffffffff, cacheSize: 1}
}

func (e *rangeEncoder) shiftLow() {
	if uint32(e.low) < 0xff000000 || e.low>>32 != 0 {
		tmp := e.cache
		for {
			e.buf.WriteByte(tmp + byte(e.low>>32))
			tmp = 0xff
			e.cacheSize--
			if e.cacheSize <= 0 {
				break
			}
		}
		e.cache = byte(e.low >> 24)
	}
	e.cacheSize++
	e.low = uint64(uint32(e.low) << 8)
}

func (e *rangeEncoder) normalize() {
	if e.nrange >= rcTopValue {
		return
	}
	e.nrange <<= rcShiftBits
	e.shiftLow()
}

func (e *rangeEncoder) encodeBit(b uint32, p *prob) {
	bound := p.bound(e.nrange)
	if b&1 == 0 {
		e.nrange = bound
	} else {
		e.low += uint64(bound)
		e.nrange -= bound
	}
	p.adapt(b & 1)
	e.normalize()
}

func (e *rangeEncoder) encodeDirect(b uint32) {
	e.nrange >>= 1
	e.low += uint64(e.nrange) & (0 - (uint64(b) & 1))
	e.normalize()
}

func (e *rangeEncoder) close() {
	for i := 0; i < 5; i++ {
		e.shiftLow()
	}
}

func treeEncode(e *rangeEncoder, ps []prob, nbits uint, v uint32) {
	m := uint32(1)
	for i := int(nbits) - 1; i >= 0; i-- {
		b := v >> uint(i) & 1
		e.encodeBit(b, &ps[m])
		m = m<<1 | b
	}
}

func treeReverseEncode(e *rangeEncoder, ps []prob, nbits uint, v uint32) {
	m := uint32(1)
	for j := uint(0); j < nbits; j++ {
		b := v >> j & 1
		e.encodeBit(b, &ps[m])
		m = m<<1 | b
	}
}

// op describes a single operation for the test encoder.
type op struct {
	isLit    bool
	lit      byte
	isShort  bool
	repIdx   int // -1 for a plain match
	dist     uint32
	matchLen uint32
}

func tLit(b byte) op            { return op{isLit: true, lit: b} }
func tMatch(dist, n uint32) op  { return op{repIdx: -1, dist: dist, matchLen: n} }
func tRep(idx int, n uint32) op { return op{repIdx: idx, matchLen: n} }
func tShortRep() op             { return op{isShort: true} }

func tLits(s string) []op {
	ops := make([]op, len(s))
	for i := 0; i < len(s); i++ {
		ops[i] = tLit(s[i])
	}
	return ops
}

// streamEncoder assembles an LZMA2 chunk stream. It mirrors the decoder
// state byte for byte: the probability model, the state register, the
// repetition distances and the dictionary history.
type streamEncoder struct {
	buf   bytes.Buffer // the chunk stream
	plain bytes.Buffer // the uncompressed data the stream describes

	props   Properties
	posMask uint32
	lpMask  uint32

	state uint32
	rep   [4]uint32
	probs *probs
	hist  []byte // history since the last dictionary reset
}

func newStreamEncoder(p Properties) *streamEncoder {
	s := &streamEncoder{props: p, probs: new(probs)}
	s.probs.reset()
	s.applyProps()
	return s
}

func (s *streamEncoder) applyProps() {
	s.posMask = 1<<uint(s.props.PB) - 1
	s.lpMask = 1<<uint(s.props.LP) - 1
}

func (s *streamEncoder) setProps(p Properties) {
	s.props = p
	s.applyProps()
}

func (s *streamEncoder) updateLiteral() {
	switch {
	case s.state < 4:
		s.state = 0
	case s.state < 10:
		s.state -= 3
	default:
		s.state -= 6
	}
}

func (s *streamEncoder) updateMatch() {
	if s.state < litStates {
		s.state = 7
	} else {
		s.state = 10
	}
}

func (s *streamEncoder) updateRep() {
	if s.state < litStates {
		s.state = 8
	} else {
		s.state = 11
	}
}

func (s *streamEncoder) updateShortRep() {
	if s.state < litStates {
		s.state = 9
	} else {
		s.state = 11
	}
}

// copyHist appends the bytes a match of the given distance and length
// produces. An invalid distance appends zero bytes so that deliberately
// broken streams stay well-defined on the encoder side.
func (s *streamEncoder) copyHist(dist uint32, n int) {
	if int(dist) > len(s.hist) || dist == 0 {
		for i := 0; i < n; i++ {
			s.hist = append(s.hist, 0)
		}
		return
	}
	src := len(s.hist) - int(dist)
	for i := 0; i < n; i++ {
		s.hist = append(s.hist, s.hist[src])
		src++
	}
}

func (s *streamEncoder) encodeLiteral(e *rangeEncoder, b byte) {
	prev := byte(0)
	if len(s.hist) > 0 {
		prev = s.hist[len(s.hist)-1]
	}
	pos := uint32(len(s.hist))
	i := uint32(prev)>>(8-uint(s.props.LC)) |
		(pos&s.lpMask)<<uint(s.props.LC)
	ps := &s.probs.literal[i]
	symbol := uint32(1)
	r := uint32(b)
	if s.state < litStates {
		for symbol < 0x100 {
			bit := r >> 7 & 1
			r <<= 1
			e.encodeBit(bit, &ps[symbol])
			symbol = symbol<<1 | bit
		}
		return
	}
	matchByte := uint32(s.hist[len(s.hist)-1-int(s.rep[0])])
	offset := uint32(0x100)
	for symbol < 0x100 {
		matchByte <<= 1
		matchBit := matchByte & offset
		bit := r >> 7 & 1
		r <<= 1
		e.encodeBit(bit, &ps[offset+matchBit+symbol])
		symbol = symbol<<1 | bit
		if bit != 0 {
			offset &= matchBit
		} else {
			offset &^= matchBit
		}
	}
}

func (s *streamEncoder) encodeLen(e *rangeEncoder, l *lengthProbs,
	posState, n uint32) {
	v := n - minMatchLen
	switch {
	case v < lenLowSymbols:
		e.encodeBit(0, &l.choice)
		treeEncode(e, l.low[posState][:], lenLowBits, v)
	case v < lenLowSymbols+lenMidSymbols:
		e.encodeBit(1, &l.choice)
		e.encodeBit(0, &l.choice2)
		treeEncode(e, l.mid[posState][:], lenMidBits, v-lenLowSymbols)
	default:
		e.encodeBit(1, &l.choice)
		e.encodeBit(1, &l.choice2)
		treeEncode(e, l.high[:], lenHighBits,
			v-lenLowSymbols-lenMidSymbols)
	}
}

func distSlotFor(d uint32) uint32 {
	if d < startDistModel {
		return d
	}
	b := uint32(bits.Len32(d)) - 1
	return b<<1 | d>>(b-1)&1
}

func (s *streamEncoder) encodeDistance(e *rangeEncoder, n, d uint32) {
	slotCtx := n - minMatchLen
	if slotCtx >= distStates {
		slotCtx = distStates - 1
	}
	slot := distSlotFor(d)
	treeEncode(e, s.probs.distSlot[slotCtx][:], distSlotBits, slot)
	if slot < startDistModel {
		return
	}
	nbits := uint(slot>>1) - 1
	base := (2 | slot&1) << nbits
	if slot < endDistModel {
		treeReverseEncode(e, s.probs.distSpecial[base-slot-1:],
			nbits, d-base)
		return
	}
	direct := d >> alignBits & (1<<(nbits-alignBits) - 1)
	for i := int(nbits-alignBits) - 1; i >= 0; i-- {
		e.encodeDirect(direct >> uint(i) & 1)
	}
	treeReverseEncode(e, s.probs.distAlign[:], alignBits,
		d&(alignSize-1))
}

func (s *streamEncoder) encodeOp(e *rangeEncoder, o op) {
	posState := uint32(len(s.hist)) & s.posMask
	switch {
	case o.isLit:
		e.encodeBit(0, &s.probs.isMatch[s.state][posState])
		s.encodeLiteral(e, o.lit)
		s.updateLiteral()
		s.hist = append(s.hist, o.lit)
	case o.isShort:
		e.encodeBit(1, &s.probs.isMatch[s.state][posState])
		e.encodeBit(1, &s.probs.isRep[s.state])
		e.encodeBit(0, &s.probs.isRep0[s.state])
		e.encodeBit(0, &s.probs.isRep0Long[s.state][posState])
		s.updateShortRep()
		s.copyHist(s.rep[0]+1, 1)
	case o.repIdx >= 0:
		e.encodeBit(1, &s.probs.isMatch[s.state][posState])
		e.encodeBit(1, &s.probs.isRep[s.state])
		switch o.repIdx {
		case 0:
			e.encodeBit(0, &s.probs.isRep0[s.state])
			e.encodeBit(1, &s.probs.isRep0Long[s.state][posState])
		case 1:
			e.encodeBit(1, &s.probs.isRep0[s.state])
			e.encodeBit(0, &s.probs.isRep1[s.state])
			d := s.rep[1]
			s.rep[1] = s.rep[0]
			s.rep[0] = d
		case 2:
			e.encodeBit(1, &s.probs.isRep0[s.state])
			e.encodeBit(1, &s.probs.isRep1[s.state])
			e.encodeBit(0, &s.probs.isRep2[s.state])
			d := s.rep[2]
			s.rep[2] = s.rep[1]
			s.rep[1] = s.rep[0]
			s.rep[0] = d
		case 3:
			e.encodeBit(1, &s.probs.isRep0[s.state])
			e.encodeBit(1, &s.probs.isRep1[s.state])
			e.encodeBit(1, &s.probs.isRep2[s.state])
			d := s.rep[3]
			s.rep[3] = s.rep[2]
			s.rep[2] = s.rep[1]
			s.rep[1] = s.rep[0]
			s.rep[0] = d
		}
		s.updateRep()
		s.encodeLen(e, &s.probs.repLen, posState, o.matchLen)
		s.copyHist(s.rep[0]+1, int(o.matchLen))
	default:
		e.encodeBit(1, &s.probs.isMatch[s.state][posState])
		e.encodeBit(0, &s.probs.isRep[s.state])
		s.rep[3], s.rep[2], s.rep[1] = s.rep[2], s.rep[1], s.rep[0]
		s.updateMatch()
		s.encodeLen(e, &s.probs.matchLen, posState, o.matchLen)
		s.encodeDistance(e, o.matchLen, o.dist-1)
		s.rep[0] = o.dist - 1
		s.copyHist(o.dist, int(o.matchLen))
	}
}

// packedChunk encodes the operations as a packed chunk with the given
// selector (packedCtrl, packedResetStateCtrl, packedNewPropsCtrl or
// packedResetDictCtrl).
func (s *streamEncoder) packedChunk(c control, ops []op) {
	s.packedChunkSized(c, ops, -1)
}

// packedChunkSized is packedChunk with an override for the declared
// uncompressed size; declared < 0 uses the true size. The override
// exists so tests can produce streams whose declaration and content
// disagree.
func (s *streamEncoder) packedChunkSized(c control, ops []op, declared int) {
	if c.resetDict() {
		s.hist = s.hist[:0]
	}
	if c.resetState() {
		s.state = 0
		s.rep = [4]uint32{}
		s.probs.reset()
	}
	var data bytes.Buffer
	e := newRangeEncoder(&data)
	base := len(s.hist)
	for _, o := range ops {
		s.encodeOp(e, o)
	}
	e.close()
	produced := s.hist[base:]
	s.plain.Write(produced)

	u := len(produced)
	if declared >= 0 {
		u = declared
	}
	cz := data.Len()
	if u < 1 || u > maxUnpackedSize {
		panic("chunk uncompressed size out of range")
	}
	if cz < rcInitBytes || cz > maxPackedSize {
		panic("chunk compressed size out of range")
	}
	s.buf.WriteByte(byte(c) | byte((u-1)>>16))
	s.buf.WriteByte(byte((u - 1) >> 8))
	s.buf.WriteByte(byte(u - 1))
	s.buf.WriteByte(byte((cz - 1) >> 8))
	s.buf.WriteByte(byte(cz - 1))
	if c.newProps() {
		s.buf.WriteByte(s.props.byte())
	}
	s.buf.Write(data.Bytes())
}

// uncompressedChunk emits the data as a stored chunk.
func (s *streamEncoder) uncompressedChunk(data []byte, resetDict bool) {
	c := copyCtrl
	if resetDict {
		c = copyResetDictCtrl
		s.hist = s.hist[:0]
	}
	s.buf.WriteByte(byte(c))
	s.buf.WriteByte(byte((len(data) - 1) >> 8))
	s.buf.WriteByte(byte(len(data) - 1))
	s.buf.Write(data)
	s.hist = append(s.hist, data...)
	s.plain.Write(data)
}

func (s *streamEncoder) end() {
	s.buf.WriteByte(byte(eosCtrl))
}

func (s *streamEncoder) stream() []byte   { return s.buf.Bytes() }
func (s *streamEncoder) expected() []byte { return s.plain.Bytes() }
