// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

package poly

// Flags selects optional behaviour of Crc. Unlike the richer flag set a
// Williams model carries (RefIn, RefOut, …), Crc itself only ever looks at
// MulXN: reflection is the caller's job, applied to the message and/or the
// result before and after calling Crc.
type Flags uint8

// MulXN selects the augmenting ("textbook") form of CRC division, in which
// the message is implicitly shifted up by len(gen) zero bits before
// reduction. Without it, Crc reduces the message directly against the
// register, which is the form used internally to fold Init into a
// sample's own bits without re-deriving it from scratch.
const MulXN Flags = 1 << 0

// Crc is the canonical CRC computation. Given a generator gen of width w
// (its implicit leading term is restored internally), an initial register
// value init and an output mask xorout, Crc returns the w-coefficient
// remainder of the message msg, division performed over GF(2).
//
//	Crc(m, g, i, x, MulXN, nil) == ((m·x^len(g)) + i·x^len(m)) mod g + x
//	Crc(m, g, i, x, 0, nil)     == (m + i·x^(len(m)-len(g))) mod g + x
//
// Without MulXN, no implicit shift of m is performed and init is XORed into
// the top len(g) coefficients of m (a message shorter than len(g) is first
// padded with leading zeros to len(g)). An empty init or xorout counts as
// zero. If quotient is non-nil, *quotient receives the quotient polynomial
// of the underlying division: len(msg) coefficients with MulXN, and
// len(msg)-len(g) without it (none when msg is not longer than gen).
func Crc(msg, gen, init, xorout Poly, flags Flags, quotient *Poly) Poly {
	w := gen.length

	var dividend Poly
	if flags&MulXN != 0 {
		dividend = New(msg.length + w)
		dividend.Paste(msg, 0, 0, msg.length)
		dividend.Sum(init, 0)
	} else {
		n := msg.length
		if n < w {
			n = w
		}
		dividend = New(n)
		dividend.Paste(msg, 0, n-msg.length, n)
		dividend.Sum(init, 0)
	}

	divisor := New(w + 1)
	divisor.bits.SetBit(&divisor.bits, w, 1) // restore the implicit leading term
	divisor.Paste(gen, 0, 1, w+1)

	rem := Mod(dividend, divisor, quotient)
	rem.Sum(xorout, 0)
	return rem
}

// Mod returns the remainder of dividing a by b over GF(2), treating both
// operands as explicit (no implicit leading term). If quotient is non-nil,
// *quotient receives the quotient. When len(a) < len(b), a is already
// reduced and is returned unchanged.
func Mod(a, b Poly, quotient *Poly) Poly {
	if !b.Test() {
		panic("poly: division by the zero polynomial")
	}
	rem := a.Clone()
	if a.length < b.length {
		if quotient != nil {
			*quotient = New(0)
		}
		return rem
	}

	qlen := a.length - b.length + 1
	var q Poly
	if quotient != nil {
		q = New(qlen)
	}
	for i := 0; i < qlen; i++ {
		if rem.Coeff(i) != 0 {
			if quotient != nil {
				q.bits.SetBit(&q.bits, q.length-1-i, 1)
			}
			rem.Sum(b, i)
		}
	}
	rem.Realloc(b.length - 1)

	if quotient != nil {
		*quotient = q
	}
	return rem
}
