// Package redact masks sensitive argument values in parsed stack traces before they are
// surfaced to logging pipelines or support bundles.
//
// The trace format interleaves argument names and values, so masking is positional: once
// an argument value matches a configured sensitive name, the entry that follows it is
// replaced by Token. Input frames are never mutated; each redaction pass builds a fresh
// argument list.
package redact

import (
	"github.com/hashicorp/tracescrub/trace"
)

// Token is the fixed placeholder substituted for a sensitive value.
const Token = "[redacted]"

// DefaultSensitiveNames are the argument names masked when no custom list is configured.
var DefaultSensitiveNames = []string{"password", "passwd", "cc_number", "cc_exp", "ccv"}

// NameSet answers whether an argument name should trigger masking of the value that
// follows it. Matching is exact and case-sensitive, with no trimming or normalization.
type NameSet struct {
	names map[string]struct{}
}

// NewNameSet builds a NameSet from the given names. A nil slice selects
// DefaultSensitiveNames. A non-nil empty slice produces a set that matches nothing,
// which disables masking entirely.
func NewNameSet(names []string) *NameSet {
	if names == nil {
		names = DefaultSensitiveNames
	}
	s := &NameSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// Sensitive reports whether name is in the set.
func (s *NameSet) Sensitive(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Frames walks each frame's argument list in order and masks the value immediately
// following a sensitive name. A nil names set selects the defaults. Frame order, list
// order, and every pass-through field are preserved; the returned lists always have the
// same length as their inputs.
func Frames(frames []trace.CallFrame, names *NameSet) []trace.RedactedCallFrame {
	if names == nil {
		names = NewNameSet(nil)
	}
	out := make([]trace.RedactedCallFrame, len(frames))
	for i, f := range frames {
		out[i] = trace.RedactedCallFrame{
			CallFrame:    f,
			RedactedArgs: maskArgs(f.Args, names),
		}
	}
	return out
}

// maskArgs builds the redacted copy of args. The check always runs against the input
// list, never the output, so a masking token can never trigger a second masking.
func maskArgs(args []*string, names *NameSet) []*string {
	masked := make([]*string, 0, len(args))
	maskNext := false
	for _, arg := range args {
		if maskNext {
			// The original value is dropped no matter what it is; the entry after a
			// sensitive name is always that name's value under the pairing convention.
			token := Token
			masked = append(masked, &token)
			maskNext = false
			continue
		}
		masked = append(masked, arg)
		if arg != nil && names.Sensitive(*arg) {
			maskNext = true
		}
	}
	return masked
}

// Scrub parses raw with p and masks sensitive values in every resulting frame. It is the
// single entry point for callers holding an unparsed dump.
func Scrub(p trace.Parser, raw string, cfg Config) ([]trace.RedactedCallFrame, error) {
	names := NewNameSet(cfg.SensitiveNames)
	frames, err := p.Parse(raw)
	if err != nil {
		return nil, err
	}
	return Frames(frames, names), nil
}
