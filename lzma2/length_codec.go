package lzma2

// Length coding constants. Lengths are encoded in three ranges: 2..9
// with three bits, 10..17 with three bits and 18..273 with eight bits.
const (
	lenLowBits    = 3
	lenLowSymbols = 1 << lenLowBits
	lenMidBits    = 3
	lenMidSymbols = 1 << lenMidBits
	lenHighBits   = 8

	maxMatchLen = minMatchLen + lenLowSymbols + lenMidSymbols +
		(1 << lenHighBits) - 1
)

// lengthProbs holds the probability model for match or repetition
// lengths.
type lengthProbs struct {
	choice  prob
	choice2 prob
	low     [maxPosStates][lenLowSymbols]prob
	mid     [maxPosStates][lenMidSymbols]prob
	high    [1 << lenHighBits]prob
}

func (l *lengthProbs) reset() {
	l.choice = probInit
	l.choice2 = probInit
	for i := range l.low {
		fillProbs(l.low[i][:])
	}
	for i := range l.mid {
		fillProbs(l.mid[i][:])
	}
	fillProbs(l.high[:])
}

// decodeLen decodes a match length in the range 2..273 using the length
// model l and the position state.
func (f *frame) decodeLen(l *lengthProbs, posState uint32) (n uint32, err error) {
	if err = f.normalize(); err != nil {
		return 0, err
	}
	if f.decodeBit(&l.choice) == 0 {
		v, err := f.treeDecode(l.low[posState][:], lenLowBits)
		if err != nil {
			return 0, err
		}
		return minMatchLen + v, nil
	}
	if err = f.normalize(); err != nil {
		return 0, err
	}
	if f.decodeBit(&l.choice2) == 0 {
		v, err := f.treeDecode(l.mid[posState][:], lenMidBits)
		if err != nil {
			return 0, err
		}
		return minMatchLen + lenLowSymbols + v, nil
	}
	v, err := f.treeDecode(l.high[:], lenHighBits)
	if err != nil {
		return 0, err
	}
	return minMatchLen + lenLowSymbols + lenMidSymbols + v, nil
}
