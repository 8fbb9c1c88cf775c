// SPDX-License-Identifier: MIT-0

package reveng

import (
	"fmt"
	"strings"

	"github.com/robert-edward-lee/reveng/poly"
)

// checkString is the nine-byte ASCII string used to derive a model's Check
// and Residue fields.
var checkString = []byte("123456789")

// Model is the Williams-model record this engine searches over: a
// generator polynomial, initial register, output XOR mask, reflection
// flags, and the derived Check/Residue self-test values.
type Model struct {
	Spoly  poly.Poly // generator polynomial, width = Width()
	Init   poly.Poly // initial register value, width = Width()
	XorOut poly.Poly // output XOR mask, width = Width()
	Flags  Flags

	Check   poly.Poly // CRC of "123456789" under this model
	Residue poly.Poly // register contents after message‖check with XorOut=0
	Magic   poly.Poly // reserved, mirrors the reference implementation's field
	Name    string    // optional, cleared by Novel
}

// Width reports the CRC width in bits, i.e. the length of Spoly.
func (m Model) Width() int {
	return m.Spoly.Len()
}

// Canonicalize enforces width consistency across Spoly, Init and XorOut,
// clearing Init and XorOut if Spoly is empty. It does not pick a canonical
// reflection-equivalent form; see Reverse for mirroring between the two
// input/output reflection senses.
func (m *Model) Canonicalize() {
	w := m.Spoly.Len()
	if w == 0 {
		m.Init = poly.New(0)
		m.XorOut = poly.New(0)
		return
	}
	m.Init.Realloc(w)
	m.XorOut.Realloc(w)
}

// reflectByte reverses the bit order within a single byte.
func reflectByte(b byte) byte {
	var r byte
	for i := 0; i < 8; i++ {
		if b&(1<<uint(i)) != 0 {
			r |= 1 << uint(7-i)
		}
	}
	return r
}

// reflectedBytes is a precomputed per-byte bit-reversal table, mirroring
// the accelerator table pasztorpisti-go-crc builds for its own table-driven
// CRC; we use it the same way, to reflect input symbols when RefIn is set.
var reflectedBytes [256]byte

func init() {
	for i := 0; i < 256; i++ {
		reflectedBytes[i] = reflectByte(byte(i))
	}
}

// symbolPoly turns data into a message polynomial, reflecting each byte
// first if refin is set. Per spec, RefIn reverses bits within each input
// symbol; the resulting bytes are then read MSB-first like any other
// message.
func symbolPoly(data []byte, refin bool) poly.Poly {
	if !refin {
		return poly.FromBytes(data)
	}
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = reflectedBytes[b]
	}
	return poly.FromBytes(out)
}

// computeCheck derives m.Check: the CRC of "123456789" under m.
func (m *Model) computeCheck() {
	msg := symbolPoly(checkString, m.Flags&RefIn != 0)
	var mflags poly.Flags
	if m.Flags&MulXN != 0 {
		mflags |= poly.MulXN
	}
	zero := poly.New(m.Width())
	reg := poly.Crc(msg, m.Spoly, m.Init, zero, mflags, nil)
	if m.Flags&RefOut != 0 {
		reg = reg.Rev()
	}
	reg.Sum(m.XorOut, 0)
	m.Check = reg
}

// computeResidue derives m.Residue: the register contents after consuming
// "123456789" followed by its own (correct) CRC, with XorOut forced to
// zero. A host can recompute this over a received frame (message plus its
// trailing CRC) and compare against Residue to validate the frame without
// separately recomputing and comparing the check value.
func (m *Model) computeResidue() {
	w := m.Width()
	msg := symbolPoly(checkString, m.Flags&RefIn != 0)
	combined := poly.New(msg.Len() + w)
	combined.Paste(msg, 0, 0, msg.Len())
	chk := m.Check
	if m.Flags&RefOut != 0 {
		chk = chk.Rev()
	}
	combined.Paste(chk, 0, msg.Len(), msg.Len()+w)

	var mflags poly.Flags
	if m.Flags&MulXN != 0 {
		mflags |= poly.MulXN
	}
	zero := poly.New(w)
	reg := poly.Crc(combined, m.Spoly, m.Init, zero, mflags, nil)
	if m.Flags&RefOut != 0 {
		reg = reg.Rev()
	}
	m.Residue = reg
}

// finalize fills in Check and Residue; call it whenever Spoly, Init,
// XorOut or Flags change.
func (m *Model) finalize() {
	m.computeCheck()
	m.computeResidue()
}

// Params is the fixed-width convenience shape snksoft-crc.Parameters and
// go-gnss-spartn's crc.Parameters use: a flat {Width, Polynomial, Init,
// FinalXor, ReflectIn, ReflectOut} record for CRC widths that fit a
// uint64. NewModel converts one into the arbitrary-width Model the engine
// works with.
type Params struct {
	Width      uint
	Polynomial uint64
	Init       uint64
	FinalXor   uint64
	ReflectIn  bool
	ReflectOut bool
}

// NewModel builds a Model from p, finalized (Check/Residue filled in).
func NewModel(p Params) Model {
	flags := MulXN
	if p.ReflectIn {
		flags |= RefIn
	}
	if p.ReflectOut {
		flags |= RefOut
	}
	w := int(p.Width)
	m := Model{
		Spoly:  poly.FromUint64(w, p.Polynomial),
		Init:   poly.FromUint64(w, p.Init),
		XorOut: poly.FromUint64(w, p.FinalXor),
		Flags:  flags,
	}
	m.finalize()
	return m
}

// Finalize exposes finalize to callers outside the package, for hosts that
// assemble a Model by hand (e.g. from CLI flags) and need Check/Residue
// filled in before printing it.
func (m *Model) Finalize() {
	m.finalize()
}

// Calc computes the CRC of data under m, exactly as computeCheck does for
// the fixed "123456789" check string: reflecting input bytes first when
// RefIn is set, reducing augmented or not per MulXN, reflecting the
// register when RefOut is set, then applying XorOut.
func (m Model) Calc(data []byte) poly.Poly {
	msg := symbolPoly(data, m.Flags&RefIn != 0)
	var mflags poly.Flags
	if m.Flags&MulXN != 0 {
		mflags |= poly.MulXN
	}
	reg := poly.Crc(msg, m.Spoly, m.Init, poly.New(m.Width()), mflags, nil)
	if m.Flags&RefOut != 0 {
		reg = reg.Rev()
	}
	reg.Sum(m.XorOut, 0)
	return reg
}

// Reverse swaps m's reflection senses and mirrors Init/XorOut so the
// resulting model computes the same CRC under the opposite input/output
// reflection convention. It clears Name, since the mirrored model is not
// the named preset it started as.
func (m Model) Reverse() Model {
	out := m
	out.Spoly = m.Spoly.Rev()
	if m.Flags&RefIn != 0 {
		out.Init = m.Init
	} else {
		out.Init = m.Init.Rev()
	}
	if m.Flags&RefOut != 0 {
		out.XorOut = m.XorOut
	} else {
		out.XorOut = m.XorOut.Rev()
	}
	out.Flags ^= RefIn | RefOut
	out.Name = ""
	out.finalize()
	return out
}

// Novel marks m as not matching any preset, clearing its name.
func (m *Model) Novel() {
	m.Name = ""
}

// String renders m in the host-facing serialization format:
//
//	width=<w> poly=0x<hex> init=0x<hex> refin=<bool> refout=<bool> xorout=0x<hex> check=0x<hex> residue=0x<hex> name="<n>"
//
// The name field is omitted when m.Name is empty.
func (m Model) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "width=%d poly=%s init=%s refin=%t refout=%t xorout=%s check=%s residue=%s",
		m.Width(), m.Spoly.Hex(), m.Init.Hex(),
		m.Flags&RefIn != 0, m.Flags&RefOut != 0,
		m.XorOut.Hex(), m.Check.Hex(), m.Residue.Hex())
	if m.Name != "" {
		fmt.Fprintf(&b, " name=%q", m.Name)
	}
	return b.String()
}
