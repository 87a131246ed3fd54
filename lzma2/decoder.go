package lzma2

import "github.com/ulikunitz/lz"

// frame holds the complete working state of one Uncompress call: the
// input and output cursors, the range coder registers, the LZMA
// parameters and the probability model. All fields are fixed-size, so
// the frame lives in the caller's stack frame and the decoder performs
// no allocations.
type frame struct {
	in      []byte
	incount int
	rcLimit int

	out        []byte
	outcount   int
	dictOrigin int

	props   Properties
	posMask uint32
	lpMask  uint32

	state uint32
	rep   [4]uint32

	nrange uint32
	code   uint32

	probs probs
}

// setProperties installs new LZMA properties and the derived position
// masks.
func (f *frame) setProperties(p Properties) {
	f.props = p
	f.posMask = 1<<uint(p.PB) - 1
	f.lpMask = 1<<uint(p.LP) - 1
}

// lzmaReset resets the decoder state, the repetition distances and the
// probability model. The range coder is reinitialized separately for
// every packed chunk.
func (f *frame) lzmaReset() {
	f.state = 0
	f.rep = [4]uint32{}
	f.probs.reset()
}

// readSeq decodes a single operation. A literal is returned as
// lz.Seq{LitLen: 1, Aux: byte}; matches and repetitions carry the match
// length and the actual distance in Offset. The caller must have
// normalized the range coder.
func (f *frame) readSeq(posState uint32) (seq lz.Seq, err error) {
	if f.decodeBit(&f.probs.isMatch[f.state][posState]) == 0 {
		s, err := f.decodeLiteral()
		if err != nil {
			return lz.Seq{}, err
		}
		f.updateStateLiteral()
		return lz.Seq{LitLen: 1, Aux: uint32(s)}, nil
	}

	if err = f.normalize(); err != nil {
		return lz.Seq{}, err
	}
	if f.decodeBit(&f.probs.isRep[f.state]) == 0 {
		// simple match
		f.rep[3], f.rep[2], f.rep[1] = f.rep[2], f.rep[1], f.rep[0]
		f.updateStateMatch()
		n, err := f.decodeLen(&f.probs.matchLen, posState)
		if err != nil {
			return lz.Seq{}, err
		}
		if f.rep[0], err = f.decodeDistance(n); err != nil {
			return lz.Seq{}, err
		}
		return lz.Seq{MatchLen: n, Offset: f.rep[0] + 1}, nil
	}

	if err = f.normalize(); err != nil {
		return lz.Seq{}, err
	}
	if f.decodeBit(&f.probs.isRep0[f.state]) == 0 {
		if err = f.normalize(); err != nil {
			return lz.Seq{}, err
		}
		if f.decodeBit(&f.probs.isRep0Long[f.state][posState]) == 0 {
			f.updateStateShortRep()
			return lz.Seq{MatchLen: 1, Offset: f.rep[0] + 1}, nil
		}
	} else {
		var dist uint32
		if err = f.normalize(); err != nil {
			return lz.Seq{}, err
		}
		if f.decodeBit(&f.probs.isRep1[f.state]) == 0 {
			dist = f.rep[1]
		} else {
			if err = f.normalize(); err != nil {
				return lz.Seq{}, err
			}
			if f.decodeBit(&f.probs.isRep2[f.state]) == 0 {
				dist = f.rep[2]
			} else {
				dist = f.rep[3]
				f.rep[3] = f.rep[2]
			}
			f.rep[2] = f.rep[1]
		}
		f.rep[1] = f.rep[0]
		f.rep[0] = dist
	}
	f.updateStateRep()
	n, err := f.decodeLen(&f.probs.repLen, posState)
	if err != nil {
		return lz.Seq{}, err
	}
	return lz.Seq{MatchLen: n, Offset: f.rep[0] + 1}, nil
}

// run decodes operations until the output reaches outLimit. The moreRun
// flag records whether outLimit was imposed by the chunk's declared
// uncompressed size; a match crossing such a limit means the stream
// produced more data than it declared.
func (f *frame) run(outLimit int, moreRun bool) error {
	for {
		if err := f.normalize(); err != nil {
			return err
		}
		if f.outcount >= outLimit {
			return nil
		}
		posState := uint32(f.outcount-f.dictOrigin) & f.posMask
		seq, err := f.readSeq(posState)
		if err != nil {
			return err
		}
		if seq.MatchLen == 0 {
			f.out[f.outcount] = byte(seq.Aux)
			f.outcount++
			continue
		}

		dist := seq.Offset - 1
		if uint32(f.outcount-f.dictOrigin) <= dist {
			return ErrData
		}
		n := int(seq.MatchLen)
		var limitErr error
		if outLimit-f.outcount < n {
			n = outLimit - f.outcount
			if moreRun {
				limitErr = ErrData
			} else {
				limitErr = ErrOutputLimit
			}
		}
		// The copy must run byte by byte: the distance may be smaller
		// than the length, in which case later bytes repeat earlier
		// ones written by the same operation.
		src := f.outcount - int(dist) - 1
		for i := 0; i < n; i++ {
			f.out[f.outcount] = f.out[src]
			f.outcount++
			src++
		}
		if limitErr != nil {
			return limitErr
		}
	}
}
