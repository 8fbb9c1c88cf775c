// SPDX-License-Identifier: MIT-0

package reveng

import "github.com/robert-edward-lee/reveng/poly"

// pivotRow is a row of the row-echelon matrix engini builds. Rather than
// the reference implementation's pointer-identity tests against two
// sentinel polynomials, each row explicitly says whether a pivot was
// installed for it; columns with no pivot are free variables, enumerated
// directly rather than toggled through a carry chain.
type pivotRow struct {
	owned bool
	poly  poly.Poly // meaningful only when owned
}

// shortestArg returns the shortest polynomial in args.
func shortestArg(args []poly.Poly) poly.Poly {
	best := args[0]
	for _, a := range args[1:] {
		if a.Len() < best.Len() {
			best = a
		}
	}
	return best
}

// twoShortestArgs returns the shortest argument and the shortest argument
// strictly longer than it, mirroring the reference implementation's
// search for the two samples engini needs to probe Init's contribution. Its
// second return is false if every argument has the same length.
func twoShortestArgs(args []poly.Poly) (a, b poly.Poly, ok bool) {
	a, b = args[0], args[0]
	alen, blen := a.Len(), b.Len()
	for _, arg := range args[1:] {
		l := arg.Len()
		switch {
		case l < alen:
			b, blen = a, alen
			a, alen = arg, l
		case l > alen && (sameArg(a, b) || l < blen):
			b, blen = arg, l
		}
	}
	return a, b, !sameArg(a, b)
}

func sameArg(a, b poly.Poly) bool {
	return a.Len() == b.Len() && a.Cmp(b) == 0
}

// engini searches for Init values consistent with args, for a known
// generator divisor. Method from Ewing, Gregory C. (March 2010),
// "Reverse-Engineering a CRC Algorithm", University of Canterbury.
func engini(acc *[]*Model, sink Sink, divisor poly.Poly, flags Flags, args []poly.Poly) {
	w := divisor.Len()

	a, b, ok := twoShortestArgs(args)
	if !ok {
		// No two samples of different length: solve assuming XorOut is 0.
		calini(acc, sink, divisor, flags, poly.New(w), args)
		return
	}
	alen, blen := a.Len(), b.Len()

	one := poly.New(1)
	one.Iter() // one == the single coefficient "1"

	// The potential contribution of Init's bottom bit.
	var seed poly.Poly
	if blen < w<<1 {
		seed = poly.New(w)
		seed.Sum(one, (w<<1)-1-blen)
		seed.Sum(one, (w<<1)-1-alen)
	} else {
		seed = poly.New(blen - w + 1)
		seed.Sum(one, 0)
		seed.Sum(one, blen-alen)
	}
	var base poly.Poly
	if seed.Len() > w {
		base = poly.Crc(seed, divisor, poly.Poly{}, poly.Poly{}, 0, nil)
	} else {
		base = seed
	}

	// The actual contribution of Init, read off the two shortest samples.
	ared := poly.Crc(a, divisor, poly.Poly{}, poly.Poly{}, 0, nil)
	target := poly.Crc(b, divisor, poly.Poly{}, ared, 0, nil)

	// Step the register forward one bit at a time from base, building the
	// w x w system relating each bit of Init to its contribution to the
	// register after w steps. The message fed to each step must be the
	// 1-bit zero polynomial, not the value "1": with MulXN, a 1-bit message
	// of value b computes x·reg ⊕ (b·x^w mod g'), and at b=1 that extra
	// term makes the step an affine map, not the linear one the matrix
	// solve requires.
	zero := poly.New(1)
	steps := make([]poly.Poly, w)
	steps[0] = base
	for k := 1; k < w; k++ {
		steps[k] = poly.Crc(zero, divisor, steps[k-1], poly.Poly{}, poly.MulXN, nil)
	}

	// Transpose into row-echelon form, augmented with target as the
	// system's right-hand side.
	rows := make([]pivotRow, w)
	for i := 0; i < w; i++ {
		row := poly.New(w + 1)
		for j := 0; j < w; j++ {
			row.Paste(steps[w-1-j], i, j, j+1)
		}
		if row.Test() {
			row.Paste(target, i, w, w+1)
		}
		j := row.First()
		for j < w && rows[j].owned {
			row.Sum(rows[j].poly, 0)
			j = row.First()
		}
		if j < w {
			rows[j] = pivotRow{owned: true, poly: row}
		}
	}

	free := make([]int, 0, w)
	for j, r := range rows {
		if !r.owned {
			free = append(free, j)
		}
	}

	exhaustive := flags&Exhaustive != 0
	combos := 1
	if exhaustive {
		combos = 1 << len(free)
	}
	for c := 0; c < combos; c++ {
		apoly := poly.New(w + 1)
		apoly.Sum(one, w)
		for bit, j := range free {
			if c&(1<<uint(bit)) != 0 {
				apoly.Sum(one, j)
			}
		}
		for i := w - 1; i >= 0; i-- {
			if !rows[i].owned {
				continue
			}
			if poly.Mpar(apoly, rows[i].poly) != 0 {
				apoly.Sum(one, i)
			}
		}
		// Drop the augmented column (apoly's bottom-most coefficient,
		// fixed at 1 throughout) to recover the solved Init value.
		init := poly.New(w)
		init.Paste(apoly, 0, 0, w)
		calout(acc, sink, divisor, init, flags, args)
	}
}

// calout calculates XorOut from the shortest argument, checks it against
// every argument and, if consistent, submits the model to the result set.
func calout(acc *[]*Model, sink Sink, divisor, init poly.Poly, flags Flags, args []poly.Poly) {
	if len(args) < 1 {
		return
	}
	a := shortestArg(args)

	xorout := poly.Crc(a, divisor, init, poly.Poly{}, 0, nil)
	// On a reflected-output algorithm, this calculation yields the mirror
	// of the actual XorOut, since in the Williams model RefOut intervenes
	// between Init and XorOut.
	if flags&RefOut != 0 {
		xorout = xorout.Rev()
	}

	chkres(acc, sink, divisor, init, flags, xorout, args)
}

// calini calculates Init by running the CRC division backwards from the
// shortest argument, checks it against every argument and, if consistent,
// submits the model to the result set.
func calini(acc *[]*Model, sink Sink, divisor poly.Poly, flags Flags, xorout poly.Poly, args []poly.Poly) {
	if len(args) < 1 {
		return
	}
	a := shortestArg(args)

	rcpdiv := divisor.Rcp()
	rxor := xorout.Clone()
	if flags&RefOut == 0 {
		rxor = rxor.Rev()
	}
	arg := a.Rev()

	init := poly.Crc(arg, rcpdiv, rxor, poly.Poly{}, 0, nil)
	init = init.Rev()

	chkres(acc, sink, divisor, init, flags, xorout, args)
}

// chkres checks a complete model against every argument, and appends it to
// the result set (calling sink.Found) if every sample's computed CRC is
// the zero residue.
func chkres(acc *[]*Model, sink Sink, divisor, init poly.Poly, flags Flags, xorout poly.Poly, args []poly.Poly) {
	xor := xorout.Clone()
	if flags&RefOut != 0 {
		xor = xor.Rev()
	}

	for _, a := range args {
		if poly.Crc(a, divisor, init, xor, 0, nil).Test() {
			return
		}
	}

	m := Model{
		Spoly:  divisor.Clone(),
		Init:   init.Clone(),
		XorOut: xorout.Clone(),
		Flags:  flags,
	}
	m.finalize()

	*acc = append(*acc, &m)
	sink.found(&m)
}
