// SPDX-License-Identifier: MIT-0

package reveng

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robert-edward-lee/reveng/poly"
)

func Test_CRC16CCITTFALSE_Check(t *testing.T) {
	m := CRC16IBM3740.Model() // alias CRC-16/CCITT-FALSE
	got, ok := m.Check.Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(0x29b1), got)
}

func Test_CRC32_Check(t *testing.T) {
	m := CRC32ISOHDLC.Model()
	got, ok := m.Check.Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(0xcbf43926), got)
}

// samplesUnder builds n random 64-bit payloads, each followed by its CRC
// under m, concatenated into a single message‖CRC bit-string per sample.
func samplesUnder(t *testing.T, m Model, n int) []poly.Poly {
	t.Helper()
	out := make([]poly.Poly, n)
	for i := range out {
		payload := make([]byte, 8)
		_, err := rand.Read(payload)
		assert.NoError(t, err)
		crc := m.Calc(payload)
		combined := poly.New(64 + m.Width())
		combined.Paste(poly.FromBytes(payload), 0, 0, 64)
		combined.Paste(crc, 0, 64, 64+m.Width())
		out[i] = combined
	}
	return out
}

func Test_Reveng_KnownPoly(t *testing.T) {
	m := CRC16IBM3740.Model()
	args := samplesUnder(t, m, 3)

	guess := Model{Spoly: m.Spoly, Flags: m.Flags}
	results := Reveng(guess, poly.Poly{}, HaveP|HaveRI|HaveRO, args, Sink{})

	assert.Len(t, results, 1)
	init, ok := results[0].Init.Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(0xffff), init)
	xorout, ok := results[0].XorOut.Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(0), xorout)
}

// samplesWithLengths builds one sample per entry in lens (a payload length
// in bytes), each followed by its CRC under m. Unlike samplesUnder, payload
// lengths vary, so the resulting samples are not all the same length.
func samplesWithLengths(t *testing.T, m Model, lens []int) []poly.Poly {
	t.Helper()
	out := make([]poly.Poly, len(lens))
	for i, n := range lens {
		payload := make([]byte, n)
		_, err := rand.Read(payload)
		assert.NoError(t, err)
		crc := m.Calc(payload)
		combined := poly.New(8*n + m.Width())
		combined.Paste(poly.FromBytes(payload), 0, 0, 8*n)
		combined.Paste(crc, 0, 8*n, 8*n+m.Width())
		out[i] = combined
	}
	return out
}

// Unlike Test_Reveng_KnownPoly, these samples are not all the same length,
// so twoShortestArgs finds a genuine pair and engini runs its full
// transpose/row-echelon/enumeration path instead of falling back to calini.
func Test_Reveng_KnownPoly_VariableLength(t *testing.T) {
	m := CRC16ARC.Model()
	args := samplesWithLengths(t, m, []int{4, 8, 4, 8})

	guess := Model{Spoly: m.Spoly, Flags: m.Flags}
	results := Reveng(guess, poly.Poly{}, HaveP|HaveRI|HaveRO, args, Sink{})

	assert.Len(t, results, 1)
	init, ok := results[0].Init.Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(0), init)
	xorout, ok := results[0].XorOut.Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(0), xorout)
}

func Test_Reveng_UnknownPoly(t *testing.T) {
	m := CRC16ARC.Model()
	args := samplesUnder(t, m, 4)

	guess := Model{Spoly: poly.New(16)}
	results := Reveng(guess, poly.Poly{}, 0, args, Sink{})

	found := false
	for _, r := range results {
		if gp, ok := r.Spoly.Uint64(); ok && gp == 0x8005 {
			found = true
		}
	}
	assert.True(t, found, "expected CRC-16/ARC's generator polynomial among the results")
}

func Test_Reveng_InsufficientData(t *testing.T) {
	m := CRC16ARC.Model()
	args := samplesUnder(t, m, 2)

	guess := Model{Spoly: poly.New(16)}
	results := Reveng(guess, poly.Poly{}, 0, args, Sink{})
	assert.Empty(t, results)
}

func Test_Reveng_RangeRestriction(t *testing.T) {
	m := CRC16ARC.Model()
	args := samplesUnder(t, m, 4)

	guess := Model{Spoly: poly.New(16)}
	qpoly := poly.FromUint64(16, 0x8000)
	results := Reveng(guess, qpoly, HaveQ, args, Sink{})

	for _, r := range results {
		if gp, ok := r.Spoly.Uint64(); ok {
			assert.NotEqual(t, uint64(0x8005), gp)
		}
	}
}
