// SPDX-License-Identifier: MIT-0

// Command crcreveng is a CLI front end for the reveng package: given one or
// more message‖CRC samples in hex, it either completes a partially known
// Williams model by calculation, searches for an unknown generator
// polynomial, computes the CRC of a fully specified model, or prints a
// preset by name.
package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/robert-edward-lee/reveng/poly"
	"github.com/robert-edward-lee/reveng/reveng"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

func main() {
	var (
		width    = pflag.IntP("width", "w", 0, "CRC width in bits")
		polyHex  = pflag.StringP("poly", "p", "", "generator polynomial, hex, +1 term implicit")
		rpolyHex = pflag.StringP("rpoly", "P", "", "generator polynomial in reciprocal notation, hex")
		initHex  = pflag.StringP("init", "i", "", "initial register value, hex")
		xoutHex  = pflag.StringP("xorout", "x", "", "output XOR mask, hex")
		qpolyHex = pflag.StringP("range-end", "q", "", "exclusive upper bound for a generator search, hex")
		preset   = pflag.StringP("model", "m", "", "start from a named preset, e.g. CRC-16/ARC")

		presetsFile = pflag.String("presets-file", "", "YAML file of user-defined presets, searched ahead of the built-in catalogue")

		refin     = pflag.Bool("refin", false, "reflect each input byte before consuming it")
		refout    = pflag.Bool("refout", false, "reflect the register before xorout is applied")
		little    = pflag.BoolP("little-endian", "l", false, "shorthand for --refin --refout")
		bigEndian = pflag.BoolP("big-endian", "b", false, "shorthand for neither --refin nor --refout")
		mulxn     = pflag.Bool("mulxn", true, "use the augmenting (textbook) CRC form")

		search     = pflag.BoolP("search", "s", false, "search for an unknown generator polynomial")
		calc       = pflag.BoolP("calc", "c", false, "compute the CRC of each argument under a fully specified model")
		dump       = pflag.BoolP("dump", "d", false, "print the model instead of running it")
		list       = pflag.BoolP("list", "D", false, "list every preset in the catalogue and exit")
		exhaustive = pflag.BoolP("exhaustive", "1", false, "enumerate every Init value consistent with the samples")
		verbose    = pflag.CountP("verbose", "v", "increase log verbosity (repeatable)")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] sample...\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Each sample is a hex string of an even number of digits: the message")
		fmt.Fprintln(os.Stderr, "bytes followed by the CRC bytes produced over them.")
		fmt.Fprintln(os.Stderr)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	switch *verbose {
	case 0:
		logger.SetLevel(log.WarnLevel)
	case 1:
		logger.SetLevel(log.InfoLevel)
	default:
		logger.SetLevel(log.DebugLevel)
	}

	if *presetsFile != "" {
		f, err := os.Open(*presetsFile)
		if err != nil {
			logger.Fatal("opening presets file", "path", *presetsFile, "err", err)
		}
		err = reveng.LoadPresets(f)
		f.Close()
		if err != nil {
			logger.Fatal("loading presets file", "path", *presetsFile, "err", err)
		}
	}

	if *list {
		for _, p := range reveng.Catalogue {
			fmt.Println(p.Model())
		}
		return
	}

	if *little && *bigEndian {
		logger.Fatal("--little-endian and --big-endian are mutually exclusive")
	}

	guess, rflags := buildGuess(*width, *polyHex, *rpolyHex, *initHex, *xoutHex, *preset, *refin, *refout, *little, *bigEndian, *mulxn, *exhaustive)

	args := pflag.Args()
	if len(args) == 0 && !*dump {
		pflag.Usage()
		os.Exit(1)
	}

	var qpoly poly.Poly
	if *qpolyHex != "" {
		qpoly = parseHexPoly(*qpolyHex)
		rflags |= reveng.HaveQ
	}

	switch {
	case *dump:
		runDump(guess)
	case *calc:
		runCalc(guess, args)
	case *search:
		runSearch(guess, qpoly, rflags&^reveng.HaveP, parseSamples(args))
	default:
		runComplete(guess, qpoly, rflags, parseSamples(args))
	}
}

// buildGuess assembles the partial Model and RFlags a CLI invocation
// describes, starting from a named preset when one is given and then
// layering the explicit flags on top.
func buildGuess(width int, polyHex, rpolyHex, initHex, xoutHex, presetName string, refin, refout, little, bigEndian, mulxn, exhaustive bool) (reveng.Model, reveng.RFlags) {
	var guess reveng.Model
	var rflags reveng.RFlags

	if presetName != "" {
		p := reveng.Find(presetName)
		if p == nil {
			logger.Fatal("preset not found", "name", presetName, "hint", "use -D to list presets")
		}
		guess = p.Model()
		rflags |= reveng.HaveP | reveng.HaveI | reveng.HaveX | reveng.HaveRI | reveng.HaveRO
		width = guess.Width()
	}

	switch {
	case polyHex != "":
		guess.Spoly = parseHexPoly(polyHex)
		rflags |= reveng.HaveP
		width = guess.Spoly.Len()
	case rpolyHex != "":
		guess.Spoly = parseHexPoly(rpolyHex).Rcp()
		rflags |= reveng.HaveP
		width = guess.Spoly.Len()
	case width > 0 && guess.Width() == 0:
		// No generator given: Spoly stays an all-zero placeholder of the
		// requested width, the form Reveng's factor search expects when
		// HaveP is unset.
		guess.Spoly = poly.New(width)
	}

	if width > 0 {
		guess.Canonicalize()
	}

	if initHex != "" {
		guess.Init = poly.FromBigInt(width, mustHex(initHex))
		rflags |= reveng.HaveI
	}
	if xoutHex != "" {
		guess.XorOut = poly.FromBigInt(width, mustHex(xoutHex))
		rflags |= reveng.HaveX
	}

	switch {
	case little:
		guess.Flags |= reveng.RefIn | reveng.RefOut
		rflags |= reveng.HaveRI | reveng.HaveRO
	case bigEndian:
		guess.Flags &^= reveng.RefIn | reveng.RefOut
		rflags |= reveng.HaveRI | reveng.HaveRO
	default:
		if refin {
			guess.Flags |= reveng.RefIn
			rflags |= reveng.HaveRI
		}
		if refout {
			guess.Flags |= reveng.RefOut
			rflags |= reveng.HaveRO
		}
	}
	if mulxn {
		guess.Flags |= reveng.MulXN
	}
	if exhaustive {
		guess.Flags |= reveng.Exhaustive
	}
	guess.Novel()

	return guess, rflags
}

// parseHexPoly turns a "0x..."-or-bare hex string into a Poly whose length
// is exactly four bits per hex digit.
func parseHexPoly(s string) poly.Poly {
	v := mustHex(s)
	digits := len(strings.TrimPrefix(s, "0x"))
	return poly.FromBigInt(digits*4, v)
}

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	if !ok {
		logger.Fatal("invalid hex value", "value", s)
	}
	return v
}

// parseSamples decodes each hex string (byte-aligned) into a message‖CRC
// polynomial, the form Reveng's args take.
func parseSamples(args []string) []poly.Poly {
	out := make([]poly.Poly, 0, len(args))
	for _, a := range args {
		b, err := hex.DecodeString(a)
		if err != nil {
			logger.Fatal("invalid sample (must be an even number of hex digits)", "value", a, "err", err)
		}
		out = append(out, poly.FromBytes(b))
	}
	return out
}

func runDump(guess reveng.Model) {
	guess.Canonicalize()
	guess.Finalize()
	fmt.Println(guess.String())
}

func runCalc(guess reveng.Model, args []string) {
	if guess.Width() == 0 {
		logger.Fatal("calc mode requires a fully specified model (-p/-P, -i, -x, -w)")
	}
	for _, a := range args {
		b, err := hex.DecodeString(a)
		if err != nil {
			logger.Fatal("invalid argument (must be an even number of hex digits)", "value", a, "err", err)
		}
		fmt.Println(guess.Calc(b).Hex())
	}
}

func runSearch(guess reveng.Model, qpoly poly.Poly, rflags reveng.RFlags, samples []poly.Poly) {
	if len(runEngine(guess, qpoly, rflags, samples)) == 0 {
		logger.Warn("no consistent model found")
	}
}

func runComplete(guess reveng.Model, qpoly poly.Poly, rflags reveng.RFlags, samples []poly.Poly) {
	if len(runEngine(guess, qpoly, rflags, samples)) == 0 {
		logger.Warn("no consistent model found")
	}
}

func runEngine(guess reveng.Model, qpoly poly.Poly, rflags reveng.RFlags, samples []poly.Poly) []*reveng.Model {
	sink := reveng.Sink{
		Found: func(m *reveng.Model) {
			fmt.Println(m.String())
		},
		Error: func(msg string) {
			logger.Error(msg)
			os.Exit(1)
		},
		Progress: func(candidate poly.Poly, flags reveng.Flags, seq uint64) {
			logger.Debug("search progress", "candidate", candidate.Hex(), "iteration", seq)
		},
	}
	return reveng.Reveng(guess, qpoly, rflags, samples, sink)
}
