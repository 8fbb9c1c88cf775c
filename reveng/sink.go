// SPDX-License-Identifier: MIT-0

package reveng

import "github.com/robert-edward-lee/reveng/poly"

// Sink bundles the callbacks a host supplies to Reveng. The engine never
// returns an error code: fatal conditions are reported through Error,
// "no solution" and "insufficient information" are expressed as an empty
// result slice, and every accepted model is announced through Found before
// the next candidate is tried.
type Sink struct {
	// Found is called once per confirmed model, in discovery order. The
	// engine does not reuse or mutate the Model afterward.
	Found func(m *Model)
	// Error is called on a fatal, unrecoverable condition. The contract
	// requires it not to return; if it does (or is nil), Reveng panics.
	Error func(msg string)
	// Progress is called roughly every 1<<16 iterations of the factor
	// search, with a sequence number starting at 1 (seq==0 is suppressed,
	// mirroring the reference CLI's first-report suppression).
	Progress func(candidate poly.Poly, flags Flags, seq uint64)
}

func (s Sink) found(m *Model) {
	if s.Found != nil {
		s.Found(m)
	}
}

func (s Sink) fatal(msg string) {
	if s.Error != nil {
		s.Error(msg)
	}
	panic("reveng: " + msg)
}

func (s Sink) progress(candidate poly.Poly, flags Flags, seq uint64) {
	if seq == 0 || s.Progress == nil {
		return
	}
	s.Progress(candidate, flags, seq)
}
