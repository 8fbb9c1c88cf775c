// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

// Package poly implements arbitrary-width bit-polynomials over GF(2), the
// arithmetic that CRC RevEng's search pipeline is built on.
//
// A Poly is an ordered sequence of GF(2) coefficients indexed from the high
// (most significant) end. Its length is the number of coefficients it
// stores, not its mathematical degree: leading zero coefficients can exist
// between operations and are removed only by an explicit call to Norm.
// A Poly is cheap to copy by value, but a copy made by assignment shares
// the backing big.Int storage of the original, so an in-place method (Sum,
// Paste, Iter, Inv, Realloc) called on one can change the coefficients of
// the other. Clone returns a copy that shares nothing.
package poly

import "math/big"

// Poly is an arbitrary-width, big-endian vector of GF(2) coefficients.
// The zero value is the empty (zero-length) polynomial and is always
// shareable by value.
type Poly struct {
	length int
	bits   big.Int
}

// New allocates a polynomial of exactly n coefficients, all zero.
func New(n int) Poly {
	if n < 0 {
		panic("poly: negative length")
	}
	return Poly{length: n}
}

// Len returns the number of coefficients p stores.
func (p Poly) Len() int {
	return p.length
}

// Coeff returns the i-th coefficient counting from the high (most
// significant) end: Coeff(0) is the top bit.
func (p Poly) Coeff(i int) uint {
	if i < 0 || i >= p.length {
		panic("poly: coefficient index out of range")
	}
	return p.bits.Bit(p.length - 1 - i)
}

// Test reports whether p has any nonzero coefficient.
func (p Poly) Test() bool {
	return p.bits.Sign() != 0
}

// Clone returns an independent copy of p.
func (p Poly) Clone() Poly {
	var out Poly
	out.length = p.length
	out.bits.Set(&p.bits)
	return out
}

// Equal reports whether p and q have the same length and the same
// coefficients.
func (p Poly) Equal(q Poly) bool {
	return p.length == q.length && p.bits.Cmp(&q.bits) == 0
}

// Cmp compares p and q as unsigned integers of their respective (possibly
// different) lengths, ignoring length. Use Equal to additionally compare
// lengths.
func (p Poly) Cmp(q Poly) int {
	return p.bits.Cmp(&q.bits)
}

// Realloc resizes p to exactly n coefficients in place, right-aligned: bits
// at the high end are zero-padded when growing, and the lowest n
// coefficients survive when shrinking.
func (p *Poly) Realloc(n int) {
	if n < 0 {
		panic("poly: negative length")
	}
	if n < p.length {
		p.bits.And(&p.bits, mask(n))
	}
	p.length = n
}

// Inv complements p in place: every coefficient is flipped, as if p were
// XORed against an all-ones polynomial of the same length. The factor
// search uses this to turn a zero polynomial into the all-ones (largest
// representable) bound when validating a short-GCD range.
func (p *Poly) Inv() {
	p.bits.Xor(&p.bits, mask(p.length))
}

// First returns the index (from the high end) of the highest set
// coefficient, or p.Len() if p is zero.
func (p Poly) First() int {
	if p.length == 0 || !p.Test() {
		return p.length
	}
	return p.length - p.bits.BitLen()
}

// Norm drops leading zero coefficients so that, afterwards, p is empty or
// its top coefficient is 1.
func (p *Poly) Norm() {
	p.length = p.length - p.First()
}

// Iter interprets p's coefficients as a big-endian unsigned integer and
// adds one in place. It returns false if the increment carried past the
// top coefficient (i.e. p wrapped around to zero) and true otherwise,
// matching the convention the factor-search loop uses to detect
// end-of-range: `for factor.Iter() { ... }`.
func (p *Poly) Iter() bool {
	one := big.NewInt(1)
	p.bits.Add(&p.bits, one)
	if p.length == 0 {
		p.bits.SetInt64(0)
		return false
	}
	carried := p.bits.BitLen() > p.length
	if carried {
		p.bits.And(&p.bits, mask(p.length))
	}
	return !carried
}

// Rev reverses the coefficient order and returns the result as a new Poly.
func (p Poly) Rev() Poly {
	out := New(p.length)
	for i := 0; i < p.length; i++ {
		if p.Coeff(i) != 0 {
			out.bits.SetBit(&out.bits, i, 1)
		}
	}
	return out
}

// Rcp computes the reciprocal of a generator polynomial p stored without
// its implicit leading term: the full polynomial (leading term restored) is
// reversed and its new leading term dropped again, so the result's bottom
// coefficient is always 1 (e.g. 0x1021 becomes 0x0811, and back).
// This maps a generator polynomial to its bit-reflected counterpart, the
// form calini needs to run the CRC division backwards.
func (p Poly) Rcp() Poly {
	r := p.Rev()
	if r.length > 0 {
		r = Shift(r, 0, 1, r.length, 1)
		r.bits.SetBit(&r.bits, 0, 1)
	}
	return r
}

// Sum XORs src into dst starting at bit offset measured from dst's high
// end. dst must be at least offset+src.Len() coefficients long.
func (p *Poly) Sum(src Poly, offset int) {
	if offset < 0 || offset+src.length > p.length {
		panic("poly: sum out of range")
	}
	if src.length == 0 {
		return
	}
	shifted := new(big.Int).Lsh(&src.bits, uint(p.length-offset-src.length))
	p.bits.Xor(&p.bits, shifted)
}

// Shift returns a new Poly holding src[srcOff:srcEnd] starting at dstOff,
// preceded by dstOff zero coefficients and followed by pad zero
// coefficients at the low end. The result has exactly
// dstOff+(srcEnd-srcOff)+pad coefficients.
func Shift(src Poly, dstOff, srcOff, srcEnd, pad int) Poly {
	if srcOff < 0 || srcEnd > src.length || srcOff > srcEnd {
		panic("poly: shift range out of range")
	}
	n := srcEnd - srcOff
	out := New(dstOff + n + pad)
	for i := 0; i < n; i++ {
		if src.Coeff(srcOff+i) != 0 {
			out.bits.SetBit(&out.bits, out.length-1-(dstOff+i), 1)
		}
	}
	return out
}

// Paste embeds src[srcOff:srcOff+(dstEnd-dstOff)] into p at dstOff..dstEnd,
// in place (p is not resized; the embedded range must already fit).
func (p *Poly) Paste(src Poly, srcOff, dstOff, dstEnd int) {
	n := dstEnd - dstOff
	if n < 0 || srcOff+n > src.length || dstEnd > p.length {
		panic("poly: paste range out of range")
	}
	for i := 0; i < n; i++ {
		bit := src.Coeff(srcOff + i)
		p.bits.SetBit(&p.bits, p.length-1-(dstOff+i), bit)
	}
}

// Mpar returns the GF(2) parity (XOR-reduction) of p's coefficients, masked
// by the nonzero coefficients of mask. Both operands are implicitly
// right-aligned to the longer length for the purposes of the mask.
func Mpar(p, mask Poly) uint {
	n := p.length
	if mask.length > n {
		n = mask.length
	}
	parity := uint(0)
	for i := 0; i < n; i++ {
		var pb, mb uint
		if j := i - (n - p.length); j >= 0 {
			pb = p.Coeff(j)
		}
		if j := i - (n - mask.length); j >= 0 {
			mb = mask.Coeff(j)
		}
		parity ^= pb & mb
	}
	return parity
}

// mask returns a big.Int with the low n bits set.
func mask(n int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(n))
	return m.Sub(m, big.NewInt(1))
}
