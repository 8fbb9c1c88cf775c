// SPDX-License-Identifier: MIT-0

package poly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func genPoly(t *rapid.T, label string) Poly {
	n := rapid.IntRange(0, 64).Draw(t, label+".len")
	p := New(n)
	bits := rapid.SliceOfN(rapid.Boolean(), n, n).Draw(t, label+".bits")
	for i, b := range bits {
		if b {
			p.bits.SetBit(&p.bits, p.length-1-i, 1)
		}
	}
	return p
}

func Test_RevIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPoly(t, "p")
		assert.True(t, p.Rev().Rev().Equal(p))
	})
}

func Test_NormIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPoly(t, "p")
		p.Norm()
		once := p.Clone()
		p.Norm()
		assert.True(t, p.Equal(once))
	})
}

func Test_NormLeavesEmptyOrTopBitSet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPoly(t, "p")
		p.Norm()
		if p.Len() > 0 {
			assert.Equal(t, uint(1), p.Coeff(0))
		}
	})
}

func Test_CrcRemainderShorterThanGenerator(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := genPoly(t, "m")
		g := genPoly(t, "g")
		if g.Len() == 0 {
			g = New(1)
			g.Sum(one(), 0)
		}
		r := Crc(m, g, New(0), New(0), MulXN, nil)
		assert.Less(t, r.Len(), g.Len()+1)
	})
}

func Test_CrcIsLinear(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 64).Draw(t, "n")
		a := genFixed(t, "a", n)
		b := genFixed(t, "b", n)
		g := genFixed(t, "g", rapid.IntRange(1, 32).Draw(t, "w"))
		if !g.Test() {
			g.Sum(one(), g.Len()-1)
		}

		var sum Poly
		sum = a.Clone()
		sum.Sum(b, 0)

		flagsChoices := []Flags{0, MulXN}
		flags := flagsChoices[rapid.IntRange(0, 1).Draw(t, "flags")]

		lhs := Crc(sum, g, New(g.Len()), New(g.Len()), flags, nil)
		ra := Crc(a, g, New(g.Len()), New(g.Len()), flags, nil)
		rb := Crc(b, g, New(g.Len()), New(g.Len()), flags, nil)
		rhs := ra.Clone()
		rhs.Sum(rb, 0)

		assert.True(t, lhs.Equal(rhs))
	})
}

func Test_CrcQuotientRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 24).Draw(t, "w")
		m := genFixed(t, "m", rapid.IntRange(0, 48).Draw(t, "mlen"))
		g := genFixed(t, "g", w)

		var q Poly
		r := Crc(m, g, New(w), New(w), MulXN, &q)

		divisor := New(w + 1)
		divisor.bits.SetBit(&divisor.bits, w, 1)
		divisor.Paste(g, 0, 1, w+1)

		product := polyMul(q, divisor)
		shiftedM := New(m.Len() + w)
		shiftedM.Paste(m, 0, 0, m.Len())
		product.Sum(shiftedM, product.Len()-shiftedM.Len())

		product.Realloc(w)
		assert.True(t, product.Equal(r))
	})
}

// genFixed draws a Poly of exactly n coefficients.
func genFixed(t *rapid.T, label string, n int) Poly {
	p := New(n)
	bits := rapid.SliceOfN(rapid.Boolean(), n, n).Draw(t, label+".bits")
	for i, b := range bits {
		if b {
			p.bits.SetBit(&p.bits, p.length-1-i, 1)
		}
	}
	return p
}

func one() Poly {
	p := New(1)
	p.bits.SetBit(&p.bits, 0, 1)
	return p
}

// polyMul computes the GF(2) product of a and b, the long way, for the
// quotient round-trip check: q·g ⊕ (m·x^w) must equal the remainder Crc
// returned alongside q.
func polyMul(a, b Poly) Poly {
	out := New(a.Len() + b.Len())
	for i := 0; i < a.Len(); i++ {
		if a.Coeff(i) == 0 {
			continue
		}
		shifted := New(out.Len())
		shifted.Paste(b, 0, i+1, i+1+b.Len())
		out.Sum(shifted, 0)
	}
	return out
}
