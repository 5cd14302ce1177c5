// SPDX-License-Identifier: GPL-2.0-only

package lzma

// Properties holds the three LZMA parameters that size every context
// table: the number of literal-context bits, literal-position bits, and
// position bits used for pos_state.
type Properties struct {
	LC int // literal context bits, 0..8
	LP int // literal position bits, 0..4
	PB int // position bits, 0..4
}

// lc+lp must not exceed 4 (capping the literal table at 16*3*256
// entries) and pb must not exceed 4.
const (
	maxLC      = 8
	maxLP      = 4
	maxPB      = 4
	maxLCLP    = 4
	maxPosBits = 4 // width of pos_state in context indices
)

// parseProperties decodes the single LZMA properties byte:
// byte = (pb*5 + lp)*9 + lc.
func parseProperties(b byte) (Properties, error) {
	v := int(b)
	if v >= 9*5*9 {
		return Properties{}, ErrInvalidProperties
	}
	lc := v % 9
	v /= 9
	lp := v % 5
	pb := v / 5
	p := Properties{LC: lc, LP: lp, PB: pb}
	if err := p.validate(); err != nil {
		return Properties{}, err
	}
	return p, nil
}

func (p Properties) validate() error {
	if p.LC < 0 || p.LC > maxLC || p.LP < 0 || p.LP > maxLP || p.PB < 0 || p.PB > maxPB {
		return ErrInvalidProperties
	}
	if p.LC+p.LP > maxLCLP {
		return ErrInvalidProperties
	}
	return nil
}

// byte encodes Properties back into the single-byte form used by LZMA1
// headers and LZMA2 "new properties" chunks.
func (p Properties) byte() byte {
	return byte((p.PB*5+p.LP)*9 + p.LC)
}

func (p Properties) posMask() uint32 {
	return uint32(1)<<uint(p.PB) - 1
}

func (p Properties) litPosMask() uint32 {
	return uint32(1)<<uint(p.LP) - 1
}

func (p Properties) litTableSize() int {
	return 0x300 << uint(p.LC+p.LP)
}
