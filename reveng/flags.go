// SPDX-License-Identifier: MIT-0

// Package reveng implements the Williams-model CRC reverse-engineer: given
// a collection of (message‖CRC) bit-strings, it recovers the generator
// polynomial, initial register, output XOR mask and reflection senses of
// the algorithm that produced them.
package reveng

// Flags is the Williams-model bitset carried by a Model: how its generator,
// Init and XorOut interact with input and output, plus a few cosmetic
// toggles a host uses when printing a Model.
type Flags uint16

const (
	// RefIn reflects each input byte before it is consumed bit-by-bit.
	RefIn Flags = 1 << iota
	// RefOut reflects the final register before XorOut is applied.
	RefOut
	// MulXN selects the augmenting ("textbook") CRC form: the message is
	// implicitly shifted up by the generator's width before reduction.
	MulXN
	// RightJust right-justifies formatted polynomial values (cosmetic;
	// consulted only by the textual-formatting layer, not the engine).
	RightJust
	// Space inserts a space between formatted hex digit pairs (cosmetic).
	Space
	// Upper renders formatted hex digits in uppercase (cosmetic).
	Upper
	// Direct marks the input as raw/unencoded binary rather than hex text
	// (consulted only by file-reading code, not the engine).
	Direct
	// LittleEndian reads multi-byte input in little-endian byte order
	// (consulted only by file-reading code, not the engine).
	LittleEndian
	// Exhaustive asks engini to enumerate every consistent Init value
	// instead of stopping at the first one it finds.
	Exhaustive
)

// RFlags enumerates which fields of a search's guess Model are already
// known, and a couple of flags private to the search itself.
type RFlags uint16

const (
	// HaveP marks the generator polynomial as fixed; Reveng skips the
	// factor search entirely and completes Init/XorOut for that one poly.
	HaveP RFlags = 1 << iota
	// HaveI marks Init as fixed.
	HaveI
	// HaveX marks XorOut as fixed.
	HaveX
	// HaveRI marks the input reflection sense as fixed; otherwise callers
	// are expected to try both senses by issuing two searches.
	HaveRI
	// HaveRO marks the output reflection sense as fixed, analogous to
	// HaveRI.
	HaveRO
	// HaveQ marks qpoly (the search's range end) as meaningful; with it
	// clear qpoly is ignored and the search runs to the end of the space.
	HaveQ
)

// spmask bounds how often the progress callback fires during the factor
// search: roughly every spmask+1 iterations.
const spmask = 1<<16 - 1
