// SPDX-License-Identifier: MIT-0

package reveng

import "github.com/robert-edward-lee/reveng/poly"

// Reveng completes the parameters of guess by calculation or, if the
// generator polynomial is not already known, by brute-force search. args
// holds the sample message‖CRC bit-strings the search is run against;
// qpoly, when rflags carries HaveQ, bounds the generator search to
// candidates below it. Results are reported through sink.Found as they are
// confirmed; the returned slice collects the same models in the same
// order.
func Reveng(guess Model, qpoly poly.Poly, rflags RFlags, args []poly.Poly, sink Sink) []*Model {
	var results []*Model

	if rflags&HaveP != 0 {
		dispatch(&results, sink, guess.Spoly, guess.Flags, rflags, guess.Init, guess.XorOut, args)
		return results
	}

	if guess.Spoly.Len() == 0 {
		return results
	}

	w := guess.Spoly.Len()
	diffs := modpol(guess.Init, rflags, args)

	switch {
	case diffs.Len() < w+1:
		// The shortest difference is too short to carry the generator's
		// own top term; nothing to search.
		return results

	case diffs.Len() == w+1:
		// The shortest difference *is* the generator polynomial: chop its
		// implicit top term (present, since modpol's results are normalized).
		gpoly := poly.Shift(diffs, 0, 1, diffs.Len(), 0)
		dispatch(&results, sink, gpoly, guess.Flags, rflags, guess.Init, guess.XorOut, args)
		return results
	}

	factor := guess.Spoly.Clone()
	var qqpoly poly.Poly
	haveQ := rflags&HaveQ != 0
	if haveQ {
		qqpoly = qpoly.Clone()
	}

	// Truncate the trial factor (and the range end) when the GCD of
	// differences is compact enough that we must brute-force the cofactor
	// rather than the generator itself.
	short := diffs.Len() <= factor.Len()<<1
	if short {
		if haveQ || factor.Test() {
			rem := poly.New(diffs.Len() - factor.Len() - 1)
			rem.Inv()
			rem.Realloc(factor.Len())
			switch {
			case rem.Cmp(factor) < 0:
				// Start polynomial out of range: nothing to search.
				return results
			case haveQ && rem.Cmp(qqpoly) < 0:
				haveQ = false
			case haveQ:
				qqpoly.Realloc(diffs.Len() - factor.Len() - 1)
			}
		}
		factor.Realloc(diffs.Len() - factor.Len() - 1)
	}

	// Clear the least significant term; the search loop sets it on every
	// iteration. qqpoly needs no equivalent fix, as it is only ever
	// compared against odd candidates.
	factor = poly.Shift(factor, 0, 0, factor.Len()-1, 1)

	var spin, seq uint64
	var gpoly poly.Poly
	for factor.Iter() && (!haveQ || factor.Cmp(qqpoly) < 0) {
		if spin&spmask == 0 {
			sink.progress(factor, guess.Flags, seq)
			seq++
		}
		spin++

		candidate := factor.Clone()
		rem := poly.Crc(diffs, factor, poly.Poly{}, poly.Poly{}, 0, nil)
		if short && !rem.Test() {
			// factor (the cofactor) divides diffs cleanly: redo the
			// division keeping the quotient, which is the generator
			// itself; its leading term is dropped to match Spoly's form.
			var q poly.Poly
			poly.Crc(diffs, factor, poly.Poly{}, poly.Poly{}, 0, &q)
			gpoly = poly.Shift(q, 0, 1, q.Len()-1, 1)
			gpoly.Iter()
			candidate = gpoly
		}

		if !rem.Test() {
			dispatch(&results, sink, candidate, guess.Flags, rflags, guess.Init, guess.XorOut, args)
		}
		if !factor.Iter() {
			break
		}
	}

	return results
}

// dispatch routes a known generator polynomial to whichever completion
// routine fits what the caller already knows about Init and XorOut.
func dispatch(acc *[]*Model, sink Sink, divisor poly.Poly, flags Flags, rflags RFlags, init, xorout poly.Poly, args []poly.Poly) {
	switch {
	case rflags&HaveI != 0 && rflags&HaveX != 0:
		chkres(acc, sink, divisor, init, flags, xorout, args)
	case rflags&HaveI != 0:
		calout(acc, sink, divisor, init, flags, args)
	case rflags&HaveX != 0:
		calini(acc, sink, divisor, flags, xorout, args)
	default:
		engini(acc, sink, divisor, flags, args)
	}
}

// modpol returns the GCD of the pairwise differences between args. Pairs of
// equal length are always summed directly; pairs of unequal length are
// included only when rflags carries HaveI, right-aligned with init folded
// into the leading terms of each side.
func modpol(init poly.Poly, rflags RFlags, args []poly.Poly) poly.Poly {
	if len(args) < 2 {
		return poly.Poly{}
	}

	var gcd poly.Poly
	haveGCD := false

	for i, a := range args {
		alen := a.Len()
		for _, b := range args[i+1:] {
			blen := b.Len()

			var work poly.Poly
			switch {
			case alen == blen:
				work = a.Clone()
				work.Sum(b, 0)
			case rflags&HaveI != 0 && alen < blen:
				work = b.Clone()
				work.Sum(a, blen-alen)
				work.Sum(init, 0)
				work.Sum(init, blen-alen)
			case rflags&HaveI != 0: // alen > blen
				work = a.Clone()
				work.Sum(b, alen-blen)
				work.Sum(init, 0)
				work.Sum(init, alen-blen)
			default:
				continue
			}

			work.Norm()
			if work.Len() == 0 {
				continue
			}

			if !haveGCD {
				gcd = work
				haveGCD = true
				continue
			}

			for work.Len() > 0 {
				// Emulates one iteration of a correct GCD loop where
				// (short, long) -> (long, short), since mod(short, long)
				// == short whereas Mod left-aligns its operands.
				if gcd.Len() < work.Len() {
					gcd, work = work, gcd
				}
				rem := poly.Mod(gcd, work, nil)
				gcd = work
				work = rem
				work.Norm()
			}
		}
	}
	return gcd
}
