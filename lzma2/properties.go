package lzma2

import "fmt"

// Properties define the LZMA properties of a chunk stream: the number
// of literal context bits, literal position bits and position bits.
type Properties struct {
	LC int
	LP int
	PB int
}

// byte returns the single byte that encodes the properties.
func (p Properties) byte() byte {
	return byte((p.PB*5+p.LP)*9 + p.LC)
}

// fromByte parses a property byte. The decoder supports at most 16
// literal coders, so property bytes with LC+LP > 4 are rejected along
// with values above the encodable maximum.
func (p *Properties) fromByte(b byte) error {
	if b > (4*5+4)*9+8 {
		return ErrData
	}
	p.LC = int(b % 9)
	b /= 9
	p.LP = int(b % 5)
	b /= 5
	p.PB = int(b)
	if p.LC+p.LP > maxLitCoderBits {
		return ErrData
	}
	return nil
}

// Verify checks the properties for validity.
func (p Properties) Verify() error {
	if !(0 <= p.LC && p.LC <= 8) {
		return fmt.Errorf("lzma2: LC out of range 0..8")
	}
	if !(0 <= p.LP && p.LP <= 4) {
		return fmt.Errorf("lzma2: LP out of range 0..4")
	}
	if !(0 <= p.PB && p.PB <= 4) {
		return fmt.Errorf("lzma2: PB out of range 0..4")
	}
	if p.LC+p.LP > maxLitCoderBits {
		return fmt.Errorf("lzma2: LC+LP exceeds %d", maxLitCoderBits)
	}
	return nil
}
