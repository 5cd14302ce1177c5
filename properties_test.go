// SPDX-License-Identifier: GPL-2.0-only

package lzma

import (
	"errors"
	"testing"
)

func TestParseProperties(t *testing.T) {
	cases := []struct {
		b          byte
		lc, lp, pb int
	}{
		{0x5D, 3, 0, 2}, // the classic default
		{0x00, 0, 0, 0},
		{0x24, 0, 4, 0},
		{0xB8, 4, 0, 4},
	}
	for _, c := range cases {
		p, err := parseProperties(c.b)
		if err != nil {
			t.Fatalf("byte 0x%02x: %v", c.b, err)
		}
		if p.LC != c.lc || p.LP != c.lp || p.PB != c.pb {
			t.Fatalf("byte 0x%02x: got %+v", c.b, p)
		}
		if p.byte() != c.b {
			t.Fatalf("byte 0x%02x: re-encoded as 0x%02x", c.b, p.byte())
		}
	}
}

func TestParseProperties_Invalid(t *testing.T) {
	for _, b := range []byte{
		0x0D, // lc=4 lp=1: lc+lp > 4
		0xE1, // pb = 5
		0xFF,
	} {
		if _, err := parseProperties(b); !errors.Is(err, ErrInvalidProperties) {
			t.Fatalf("byte 0x%02x: expected ErrInvalidProperties, got %v", b, err)
		}
	}
}

func TestProperties_Masks(t *testing.T) {
	p := Properties{LC: 1, LP: 3, PB: 4}
	if p.posMask() != 0xF {
		t.Fatalf("posMask = %#x", p.posMask())
	}
	if p.litPosMask() != 0x7 {
		t.Fatalf("litPosMask = %#x", p.litPosMask())
	}
	if p.litTableSize() != 0x300<<4 {
		t.Fatalf("litTableSize = %#x", p.litTableSize())
	}
}

func TestProb_UpdateNeverSaturates(t *testing.T) {
	p := prob(probInit)
	for i := 0; i < 10000; i++ {
		p.update(0)
	}
	if p < 1 || p >= probMax {
		t.Fatalf("after zeros: p = %d", p)
	}
	for i := 0; i < 10000; i++ {
		p.update(1)
	}
	if p < 1 || p >= probMax {
		t.Fatalf("after ones: p = %d", p)
	}
}
